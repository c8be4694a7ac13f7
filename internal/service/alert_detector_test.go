package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govhotline/triage-service/internal/config"
	"github.com/govhotline/triage-service/internal/domain"
	"github.com/govhotline/triage-service/internal/events"
	"github.com/govhotline/triage-service/internal/repository"
)

func detectorConfig() config.AlertConfig {
	return config.AlertConfig{
		WindowMinutes:   120,
		GrowthThreshold: 1.5,
		HighThreshold:   1.8,
		MinSample:       5,
	}
}

func seedPair(t *testing.T, repo repository.TicketRepository, area string, category domain.Category, createdAt time.Time, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		ticket := domain.Ticket{
			Content:      fmt.Sprintf("%s相关诉求 %d", category, i),
			LocationInfo: area,
			Category:     category,
			Status:       domain.TicketStatusPending,
			CreatedAt:    createdAt.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(context.Background(), &ticket))
	}
}

func TestRunCycleRaisesHighSeverityAlert(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	now := time.Now()

	// 23 complaints in the current two hours against 12 in the same
	// window one day earlier: growth 1.92, above the high threshold.
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-time.Hour), 23)
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-25*time.Hour), 12)

	detector := NewAlertDetector(repo, nil, zap.NewNop(), detectorConfig())
	raised, err := detector.RunCycle(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, raised, 1)

	alert := raised[0]
	assert.Equal(t, "朝阳区", alert.Area)
	assert.Equal(t, domain.CategoryEnvironment, alert.Category)
	assert.Equal(t, 23, alert.WindowCount)
	assert.Equal(t, 12, alert.BaselineCount)
	assert.InDelta(t, 23.0/12.0, alert.GrowthRatio, 1e-9)
	assert.Equal(t, domain.AlertSeverityHigh, alert.Severity)
}

func TestRunCycleThresholds(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		window     int
		baseline   int
		fallback   float64
		wantRaised bool
		wantSev    domain.AlertSeverity
	}{
		{name: "below min sample never raises", window: 4, baseline: 1, wantRaised: false},
		{name: "growth below threshold", window: 6, baseline: 5, wantRaised: false},
		{name: "low severity between thresholds", window: 8, baseline: 5, wantRaised: true, wantSev: domain.AlertSeverityLow},
		{name: "high severity at threshold", window: 9, baseline: 5, wantRaised: true, wantSev: domain.AlertSeverityHigh},
		{name: "zero baseline without fallback", window: 10, baseline: 0, wantRaised: false},
		{name: "zero baseline uses configured fallback", window: 10, baseline: 0, fallback: 5, wantRaised: true, wantSev: domain.AlertSeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewMemoryTicketRepository()
			seedPair(t, repo, "海淀区", domain.CategoryNoise, now.Add(-time.Hour), tt.window)
			if tt.baseline > 0 {
				seedPair(t, repo, "海淀区", domain.CategoryNoise, now.Add(-25*time.Hour), tt.baseline)
			}

			cfg := detectorConfig()
			cfg.BaselineFallback = tt.fallback
			detector := NewAlertDetector(repo, nil, zap.NewNop(), cfg)

			raised, err := detector.RunCycle(context.Background(), now)
			require.NoError(t, err)
			if !tt.wantRaised {
				assert.Empty(t, raised)
				return
			}
			require.Len(t, raised, 1)
			assert.Equal(t, tt.wantSev, raised[0].Severity)
		})
	}
}

func TestRunCycleIsIdempotentOnUnchangedInput(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	now := time.Now()
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-time.Hour), 23)
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-25*time.Hour), 12)

	detector := NewAlertDetector(repo, nil, zap.NewNop(), detectorConfig())

	first, err := detector.RunCycle(context.Background(), now)
	require.NoError(t, err)
	second, err := detector.RunCycle(context.Background(), now.Add(time.Minute))
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].CreatedAt, second[0].CreatedAt)
	assert.Equal(t, first, detector.ActiveAlerts())
}

func TestRunCycleOneAlertPerPair(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	now := time.Now()
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-time.Hour), 20)
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-25*time.Hour), 5)
	seedPair(t, repo, "朝阳区", domain.CategoryNoise, now.Add(-time.Hour), 10)
	seedPair(t, repo, "朝阳区", domain.CategoryNoise, now.Add(-25*time.Hour), 5)

	detector := NewAlertDetector(repo, nil, zap.NewNop(), detectorConfig())
	raised, err := detector.RunCycle(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, raised, 2)
	// strongest growth first
	assert.Equal(t, domain.CategoryEnvironment, raised[0].Category)
	assert.Equal(t, domain.CategoryNoise, raised[1].Category)
}

func TestRunCycleDropsPairThatNoLongerQualifies(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	now := time.Now()
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-time.Hour), 20)
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-25*time.Hour), 5)

	detector := NewAlertDetector(repo, nil, zap.NewNop(), detectorConfig())
	raised, err := detector.RunCycle(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, raised, 1)

	// three hours later the spike has left the window
	later := now.Add(3 * time.Hour)
	raised, err = detector.RunCycle(context.Background(), later)
	require.NoError(t, err)
	assert.Empty(t, raised)
	assert.Empty(t, detector.ActiveAlerts())
}

func TestRunCycleSkipsMalformedTickets(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	now := time.Now()
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-time.Hour), 4)
	// missing location and missing category must not count toward the pair
	noLocation := domain.Ticket{
		Content: "缺少定位信息的诉求", Category: domain.CategoryEnvironment,
		Status: domain.TicketStatusPending, CreatedAt: now.Add(-time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), &noLocation))
	noCategory := domain.Ticket{
		Content: "缺少分类信息的诉求", LocationInfo: "朝阳区",
		Status: domain.TicketStatusPending, CreatedAt: now.Add(-time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), &noCategory))

	cfg := detectorConfig()
	cfg.BaselineFallback = 1
	detector := NewAlertDetector(repo, nil, zap.NewNop(), cfg)

	raised, err := detector.RunCycle(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, raised, "4 well-formed tickets stay below the minimum sample")
}

func TestUnchangedCycleDoesNotResetReadState(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	now := time.Now()
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-time.Hour), 23)
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-25*time.Hour), 12)

	dispatcher := events.NewInMemoryDispatcher()
	published := 0
	dispatcher.Subscribe(events.EventAlertRaised, func(ctx context.Context, event events.Event) error {
		published++
		return nil
	})
	center := NewNotificationCenter(zap.NewNop())
	center.RegisterHandlers(dispatcher)

	detector := NewAlertDetector(repo, dispatcher, zap.NewNop(), detectorConfig())

	_, err := detector.RunCycle(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 1, published)
	require.Equal(t, 1, center.UnreadCount())

	center.MarkAllRead()
	require.Equal(t, 0, center.UnreadCount())

	// the spike persists but nothing changed: the periodic cycle must not
	// announce it again or flip the read notification back to unread
	raised, err := detector.RunCycle(context.Background(), now.Add(5*time.Minute))
	require.NoError(t, err)
	require.Len(t, raised, 1, "alert stays active")
	assert.Equal(t, 1, published)
	assert.Equal(t, 0, center.UnreadCount())

	// fresh complaints move the counts: that is new information
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(6*time.Minute), 3)
	_, err = detector.RunCycle(context.Background(), now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, published)
	assert.Equal(t, 1, center.UnreadCount())
}

func TestRunCyclePublishesAlertEvents(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	now := time.Now()
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-time.Hour), 23)
	seedPair(t, repo, "朝阳区", domain.CategoryEnvironment, now.Add(-25*time.Hour), 12)

	dispatcher := events.NewInMemoryDispatcher()
	var received []events.Event
	dispatcher.Subscribe(events.EventAlertRaised, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	detector := NewAlertDetector(repo, dispatcher, zap.NewNop(), detectorConfig())
	_, err := detector.RunCycle(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(events.AlertRaisedPayload)
	require.True(t, ok)
	assert.Equal(t, "朝阳区", payload.Alert.Area)
}
