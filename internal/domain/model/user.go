package model

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleDemo      = "demo"
)

// Preferences are the per-account settings the dashboard renders.
type Preferences struct {
	Theme              string `json:"theme,omitempty"`
	EmailNotifications bool   `json:"email_notifications"`
	Timezone           string `json:"timezone,omitempty"`
}

// Subscription is present only for paying accounts.
type Subscription struct {
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	RenewsAt  *time.Time `json:"renews_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// User mirrors the upstream SnapURL account object.
type User struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         string        `json:"role"`
	IsActive     bool          `json:"is_active"`
	Preferences  Preferences   `json:"preferences"`
	Subscription *Subscription `json:"subscription,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
