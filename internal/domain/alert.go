package domain

import "time"

// AlertSeverity grades a volume spike.
type AlertSeverity string

const (
	AlertSeverityLow  AlertSeverity = "low"
	AlertSeverityHigh AlertSeverity = "high"
)

// Alert reports an abnormal spike in complaint volume for an
// (area, category) pair. Alerts are recomputed per detection cycle
// and are not persisted.
type Alert struct {
	ID            string
	Area          string
	Category      Category
	WindowCount   int
	BaselineCount int
	GrowthRatio   float64
	Severity      AlertSeverity
	CreatedAt     time.Time
}

// PairKey identifies the (area, category) bucket an alert belongs to.
func (a Alert) PairKey() string {
	return a.Area + "|" + string(a.Category)
}
