package worker

import (
	"context"
	"time"

	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/platform/logger"
	"snapurl_admin/internal/snapurl"
)

// StatsPoller keeps the realtime analytics snapshot warm. It uses the
// gateway's service token, not any user session, and a failed tick only
// leaves the previous snapshot in place.
type StatsPoller struct {
	client    *snapurl.Client
	analytics *service.AnalyticsService
	token     string
	interval  time.Duration
}

func NewStatsPoller(client *snapurl.Client, analytics *service.AnalyticsService, token string, interval time.Duration) *StatsPoller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &StatsPoller{client: client, analytics: analytics, token: token, interval: interval}
}

func (p *StatsPoller) Start(ctx context.Context) {
	if p.token == "" {
		logger.Log.Info("stats poller disabled: no service token configured")
		return
	}
	logger.Log.Infow("stats poller started", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("stats poller stopping")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *StatsPoller) poll(ctx context.Context) {
	stats, err := p.client.RealtimeStats(ctx, p.token)
	if err != nil {
		logger.Log.Warnw("realtime stats poll failed", "err", err)
		return
	}
	p.analytics.SetRealtimeSnapshot(stats)
}
