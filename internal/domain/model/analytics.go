package model

import (
	"time"
)

// RealtimeStats is the snapshot the realtime dashboard polls for.
type RealtimeStats struct {
	ActiveVisitors int64     `json:"active_visitors"`
	ClicksLastHour int64     `json:"clicks_last_hour"`
	ClicksToday    int64     `json:"clicks_today"`
	TopLinks       []LinkHit `json:"top_links,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type LinkHit struct {
	Alias  string `json:"alias"`
	Clicks int64  `json:"clicks"`
}

// PlatformStats backs the admin-only platform pages.
type PlatformStats struct {
	TotalUsers    int64     `json:"total_users"`
	TotalLinks    int64     `json:"total_links"`
	TotalClicks   int64     `json:"total_clicks"`
	ActiveUsers   int64     `json:"active_users"`
	StorageUsedMB float64   `json:"storage_used_mb"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// LinkAnalytics is the per-URL drill-down view.
type LinkAnalytics struct {
	LinkID       string           `json:"link_id"`
	TotalClicks  int64            `json:"total_clicks"`
	UniqueClicks int64            `json:"unique_clicks"`
	ByDay        []DayCount       `json:"by_day,omitempty"`
	ByReferrer   map[string]int64 `json:"by_referrer,omitempty"`
	ByCountry    map[string]int64 `json:"by_country,omitempty"`
}

type DayCount struct {
	Day    string `json:"day"`
	Clicks int64  `json:"clicks"`
}

// DashboardSummary is the landing-page aggregate for the signed-in user.
type DashboardSummary struct {
	TotalLinks  int64       `json:"total_links"`
	TotalClicks int64       `json:"total_clicks"`
	ClicksToday int64       `json:"clicks_today"`
	RecentLinks []ShortLink `json:"recent_links,omitempty"`
	BestOfMonth *ShortLink  `json:"best_of_month,omitempty"`
}
