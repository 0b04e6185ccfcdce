package model

import (
	"time"
)

// ShortLink is one shortened URL as managed on the dashboard's URL screens.
type ShortLink struct {
	ID          string     `json:"id"`
	Alias       string     `json:"alias"`
	Target      string     `json:"target"`
	Title       string     `json:"title,omitempty"`
	ClickCount  int64      `json:"click_count"`
	IsActive    bool       `json:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedByID string     `json:"created_by,omitempty"`
}
