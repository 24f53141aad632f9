package services

import (
	"context"
	"log/slog"
	"time"
)

// CountRefresher recomputes the admin sidebar badges on a fixed interval
type CountRefresher struct {
	dashboard *DashboardService
	interval  time.Duration
	logger    *slog.Logger
	// onRefresh, when set, observes every completed pass
	onRefresh func(err error)
}

func NewCountRefresher(dashboard *DashboardService, interval time.Duration, logger *slog.Logger) *CountRefresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CountRefresher{dashboard: dashboard, interval: interval, logger: logger}
}

// Run polls until ctx is cancelled
func (r *CountRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Count refresher started", slog.Duration("interval", r.interval))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Count refresher stopped")
			return
		case <-ticker.C:
			counts, err := r.dashboard.RefreshCounts(ctx)
			if err != nil {
				if ctx.Err() == nil {
					r.logger.Warn("Failed to refresh sidebar counts", slog.Any("error", err))
				}
			} else {
				r.logger.Debug("Sidebar counts refreshed",
					slog.Int64("unread", counts.UnreadNotifications),
					slog.Int64("open_tickets", counts.OpenTickets),
					slog.Int64("active_prospects", counts.ActiveProspects))
			}
			if r.onRefresh != nil {
				r.onRefresh(err)
			}
		}
	}
}
