package snapurl

import (
	"context"
	"net/http"
	"net/url"

	"snapurl_admin/internal/domain/model"
)

// RealtimeStats fetches the live traffic snapshot the realtime view polls.
func (c *Client) RealtimeStats(ctx context.Context, token string) (*model.RealtimeStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/analytics/realtime", token, nil)
	if err != nil {
		return nil, err
	}
	var stats model.RealtimeStats
	if err := env.DecodeData(&stats); err != nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed realtime stats: " + err.Error()}
	}
	return &stats, nil
}

// PlatformStats backs the admin-only platform pages.
func (c *Client) PlatformStats(ctx context.Context, token string) (*model.PlatformStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/analytics/platform", token, nil)
	if err != nil {
		return nil, err
	}
	var stats model.PlatformStats
	if err := env.DecodeData(&stats); err != nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed platform stats: " + err.Error()}
	}
	return &stats, nil
}

// LinkAnalytics fetches the per-URL drill-down.
func (c *Client) LinkAnalytics(ctx context.Context, token, linkID string) (*model.LinkAnalytics, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/analytics/urls/"+url.PathEscape(linkID), token, nil)
	if err != nil {
		return nil, err
	}
	var stats model.LinkAnalytics
	if err := env.DecodeData(&stats); err != nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed url analytics: " + err.Error()}
	}
	return &stats, nil
}

// DashboardSummary fetches the landing-page aggregate.
func (c *Client) DashboardSummary(ctx context.Context, token string) (*model.DashboardSummary, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/analytics/summary", token, nil)
	if err != nil {
		return nil, err
	}
	var summary model.DashboardSummary
	if err := env.DecodeData(&summary); err != nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed dashboard summary: " + err.Error()}
	}
	return &summary, nil
}
