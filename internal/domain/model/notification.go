package model

import (
	"fmt"
	"time"
)

// NotificationCap is the hard limit on a user's notification list. Adding
// beyond the cap evicts the oldest entries.
const NotificationCap = 100

// Notification is a single in-app alert shown to the signed-in user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`

	// TimeAgo is derived on read and is not part of the persisted identity.
	TimeAgo string `json:"time_ago,omitempty"`
}

// RelativeTime renders the notification's age against now.
func (n Notification) RelativeTime(now time.Time) string {
	d := now.Sub(n.CreatedAt)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return n.CreatedAt.Format("Jan 2, 2006")
	}
}
