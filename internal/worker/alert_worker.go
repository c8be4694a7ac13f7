package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/govhotline/triage-service/internal/observability"
	"github.com/govhotline/triage-service/internal/service"
)

// StartAlertWorker runs the spike detector on a periodic cycle until ctx is
// cancelled. Each cycle gets its own timeout so a slow store cannot stall
// detection indefinitely; a failed cycle is logged and the next one runs
// normally.
func StartAlertWorker(ctx context.Context, detector *service.AlertDetector, metrics *observability.Metrics, interval time.Duration, logger *zap.Logger) {
	if detector == nil {
		return
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				cycleCtx, cancel := context.WithTimeout(ctx, interval)
				alerts, err := detector.RunCycle(cycleCtx, now)
				cancel()
				if err != nil {
					logger.Error("alert detection cycle failed", zap.Error(err))
					continue
				}
				metrics.RecordDetectorCycle(len(alerts))
				if len(alerts) > 0 {
					logger.Info("alert detection cycle completed", zap.Int("active_alerts", len(alerts)))
				}
			}
		}
	}()
}
