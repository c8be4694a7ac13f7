package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Alert.WindowMinutes)
	assert.Equal(t, 1.5, cfg.Alert.GrowthThreshold)
	assert.Equal(t, 1.8, cfg.Alert.HighThreshold)
	assert.Equal(t, 5, cfg.Alert.MinSample)
	assert.Equal(t, 2*time.Hour, cfg.Alert.Window())
	assert.Equal(t, 5*time.Minute, cfg.Alert.CycleInterval())
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("ALERT_WINDOW_MINUTES", "60")
	t.Setenv("ALERT_GROWTH_THRESHOLD", "2.0")
	t.Setenv("ALERT_MIN_SAMPLE", "10")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Alert.Window())
	assert.Equal(t, 2.0, cfg.Alert.GrowthThreshold)
	assert.Equal(t, 10, cfg.Alert.MinSample)
	assert.Contains(t, cfg.App.Addr(), "9090")
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ALERT_WINDOW_MINUTES", "not-a-number")
	t.Setenv("ALERT_GROWTH_THRESHOLD", "???")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Alert.WindowMinutes)
	assert.Equal(t, 1.5, cfg.Alert.GrowthThreshold)
}
