package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govhotline/triage-service/internal/config"
	"github.com/govhotline/triage-service/internal/domain"
	"github.com/govhotline/triage-service/internal/events"
	"github.com/govhotline/triage-service/internal/repository"
)

// AlertDetector scans a trailing window of ticket creations grouped by
// (area, category) and raises an alert when volume grows past the configured
// threshold relative to the same window one day earlier. At most one alert
// is active per pair; a qualifying observation replaces the previous one.
type AlertDetector struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AlertConfig

	mu     sync.Mutex
	active map[string]domain.Alert
}

// NewAlertDetector constructs the detector.
func NewAlertDetector(tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AlertConfig) *AlertDetector {
	return &AlertDetector{
		tickets:    tickets,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		active:     make(map[string]domain.Alert),
	}
}

type pairBucket struct {
	area     string
	category domain.Category
}

// RunCycle executes one detection pass at the given reference time. The
// cycle operates on a snapshot from the store, so it tolerates running
// concurrently with ticket-creation writes. Running it twice on unchanged
// input produces an identical alert set and publishes no further events;
// only new alerts and alerts whose counts moved are announced.
func (d *AlertDetector) RunCycle(ctx context.Context, now time.Time) ([]domain.Alert, error) {
	window := d.cfg.Window()
	// one full baseline day plus the current window
	snapshot, err := d.tickets.ListCreatedSince(ctx, now.Add(-24*time.Hour-window))
	if err != nil {
		return nil, err
	}

	windowStart := now.Add(-window)
	baselineStart := windowStart.Add(-24 * time.Hour)
	baselineEnd := now.Add(-24 * time.Hour)

	windowCounts := make(map[pairBucket]int)
	baselineCounts := make(map[pairBucket]int)
	skipped := 0

	for _, ticket := range snapshot {
		if ticket.LocationInfo == "" || ticket.Category == "" || ticket.CreatedAt.IsZero() {
			skipped++
			continue
		}
		bucket := pairBucket{area: ticket.LocationInfo, category: ticket.Category}
		switch {
		case !ticket.CreatedAt.Before(windowStart) && !ticket.CreatedAt.After(now):
			windowCounts[bucket]++
		case !ticket.CreatedAt.Before(baselineStart) && ticket.CreatedAt.Before(baselineEnd):
			baselineCounts[bucket]++
		}
	}
	if skipped > 0 {
		d.logger.Debug("skipped malformed tickets in detection window", zap.Int("count", skipped))
	}

	next := make(map[string]domain.Alert)
	for bucket, count := range windowCounts {
		if count < d.cfg.MinSample {
			continue
		}
		baseline := float64(baselineCounts[bucket])
		if baseline == 0 {
			baseline = d.cfg.BaselineFallback
		}
		if baseline <= 0 {
			continue
		}
		ratio := float64(count) / baseline
		if ratio < d.cfg.GrowthThreshold {
			continue
		}

		severity := domain.AlertSeverityLow
		if ratio >= d.cfg.HighThreshold {
			severity = domain.AlertSeverityHigh
		}
		alert := domain.Alert{
			ID:            uuid.NewString(),
			Area:          bucket.area,
			Category:      bucket.category,
			WindowCount:   count,
			BaselineCount: baselineCounts[bucket],
			GrowthRatio:   ratio,
			Severity:      severity,
			CreatedAt:     now,
		}
		next[alert.PairKey()] = alert
	}

	d.mu.Lock()
	// keep identity stable when an active pair re-qualifies with the same
	// counts, so repeated cycles over unchanged input yield the same set;
	// only new or changed alerts are worth announcing downstream
	changed := make([]domain.Alert, 0, len(next))
	for key, alert := range next {
		if prev, ok := d.active[key]; ok &&
			prev.WindowCount == alert.WindowCount &&
			prev.BaselineCount == alert.BaselineCount {
			alert.ID = prev.ID
			alert.CreatedAt = prev.CreatedAt
			next[key] = alert
			continue
		}
		changed = append(changed, alert)
	}
	d.active = next
	raised := make([]domain.Alert, 0, len(next))
	for _, alert := range next {
		raised = append(raised, alert)
	}
	d.mu.Unlock()

	sortAlerts(raised)
	sortAlerts(changed)

	for _, alert := range changed {
		d.publish(ctx, alert)
	}
	return raised, nil
}

// ActiveAlerts returns a copy of the current alert set, strongest growth
// first.
func (d *AlertDetector) ActiveAlerts() []domain.Alert {
	d.mu.Lock()
	alerts := make([]domain.Alert, 0, len(d.active))
	for _, alert := range d.active {
		alerts = append(alerts, alert)
	}
	d.mu.Unlock()

	sortAlerts(alerts)
	return alerts
}

// sortAlerts orders alerts strongest growth first.
func sortAlerts(alerts []domain.Alert) {
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].GrowthRatio != alerts[j].GrowthRatio {
			return alerts[i].GrowthRatio > alerts[j].GrowthRatio
		}
		return alerts[i].PairKey() < alerts[j].PairKey()
	})
}

func (d *AlertDetector) publish(ctx context.Context, alert domain.Alert) {
	if d.dispatcher == nil {
		return
	}
	_ = d.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAlertRaised,
		Timestamp: alert.CreatedAt,
		Payload:   events.AlertRaisedPayload{Alert: alert},
	})
}
