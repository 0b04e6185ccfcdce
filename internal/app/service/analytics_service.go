package service

import (
	"context"
	"sync"

	"snapurl_admin/internal/common"
	"snapurl_admin/internal/domain/model"
	"snapurl_admin/internal/snapurl"
)

// AnalyticsService proxies analytics reads and serves the poller-maintained
// realtime snapshot so every open dashboard does not hammer the upstream.
type AnalyticsService struct {
	client *snapurl.Client

	mu       sync.RWMutex
	realtime *model.RealtimeStats
}

func NewAnalyticsService(client *snapurl.Client) *AnalyticsService {
	return &AnalyticsService{client: client}
}

func (s *AnalyticsService) Summary(ctx context.Context, token string) (*model.DashboardSummary, error) {
	return s.client.DashboardSummary(ctx, token)
}

func (s *AnalyticsService) ForLink(ctx context.Context, token, linkID string) (*model.LinkAnalytics, error) {
	if linkID == "" {
		return nil, common.ErrBadRequest
	}
	return s.client.LinkAnalytics(ctx, token, linkID)
}

func (s *AnalyticsService) Platform(ctx context.Context, token string) (*model.PlatformStats, error) {
	return s.client.PlatformStats(ctx, token)
}

// Realtime returns the cached snapshot when the poller has one, falling back
// to a direct upstream read.
func (s *AnalyticsService) Realtime(ctx context.Context, token string) (*model.RealtimeStats, error) {
	s.mu.RLock()
	cached := s.realtime
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return s.client.RealtimeStats(ctx, token)
}

// SetRealtimeSnapshot is called by the stats poller; it is the snapshot's
// only writer.
func (s *AnalyticsService) SetRealtimeSnapshot(stats *model.RealtimeStats) {
	s.mu.Lock()
	s.realtime = stats
	s.mu.Unlock()
}
