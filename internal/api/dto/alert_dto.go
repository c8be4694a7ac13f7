package dto

import (
	"time"

	"github.com/govhotline/triage-service/internal/domain"
)

// AlertResponse is one active spike alert.
type AlertResponse struct {
	ID            string               `json:"id"`
	Area          string               `json:"area"`
	Category      domain.Category      `json:"category"`
	WindowCount   int                  `json:"window_count"`
	BaselineCount int                  `json:"baseline_count"`
	GrowthRatio   float64              `json:"growth_ratio"`
	Severity      domain.AlertSeverity `json:"severity"`
	CreatedAt     time.Time            `json:"created_at"`
}

// FromAlerts maps active alerts.
func FromAlerts(alerts []domain.Alert) []AlertResponse {
	out := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = AlertResponse{
			ID:            a.ID,
			Area:          a.Area,
			Category:      a.Category,
			WindowCount:   a.WindowCount,
			BaselineCount: a.BaselineCount,
			GrowthRatio:   a.GrowthRatio,
			Severity:      a.Severity,
			CreatedAt:     a.CreatedAt,
		}
	}
	return out
}
