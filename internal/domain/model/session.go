package model

// Session is the gateway-side view of one signed-in browser.
//
// Invariant: IsAuthenticated is true iff User is non-nil and the token was
// accepted by the last validation call. Loading is true only while a
// session-affecting upstream call is in flight.
type Session struct {
	User            *User  `json:"user"`
	Token           string `json:"-"`
	IsAuthenticated bool   `json:"is_authenticated"`
	Loading         bool   `json:"loading"`
	Error           string `json:"error,omitempty"`
}

// Role returns the signed-in user's role, or "" when anonymous.
func (s Session) Role() string {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// UserID returns the signed-in user's id, or "" when anonymous.
func (s Session) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}
