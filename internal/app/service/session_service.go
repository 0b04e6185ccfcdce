package service

import (
	"context"
	"errors"
	"sync"

	"snapurl_admin/internal/domain/model"
	"snapurl_admin/internal/domain/repository"
	"snapurl_admin/internal/platform/logger"
	"snapurl_admin/internal/snapurl"

	"github.com/go-playground/validator/v10"
)

const sessionExpiredMsg = "Session expired. Please login again."

// Result is the tagged outcome of every session operation. Operations never
// return a Go error to the caller; failures resolve to Success=false with a
// human-readable message. Redirect, when set, tells the caller where to
// navigate next.
type Result struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg, Message: msg}
}

// SessionManager owns every Session and is its sole writer. All other
// components read sessions through Snapshot and never mutate them.
type SessionManager struct {
	client *snapurl.Client
	state  repository.ClientStateStore
	notes  *NotificationService // optional; profile updates emit a notification

	validate *validator.Validate

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// sessionEntry pairs the session snapshot with the bookkeeping that guards
// against late upstream responses writing into a cleared session.
type sessionEntry struct {
	snap model.Session
	gen  uint64 // bumped on every full clear

	// ctx is canceled when the session is cleared, so logout aborts any
	// in-flight upstream call for this session.
	ctx          context.Context
	cancel       context.CancelFunc
	bootstrapped bool
}

func NewSessionManager(client *snapurl.Client, state repository.ClientStateStore) *SessionManager {
	return &SessionManager{
		client:   client,
		state:    state,
		validate: validator.New(),
		sessions: make(map[string]*sessionEntry),
	}
}

// SetNotifier wires the notification store; kept optional so tests can run
// the manager bare.
func (m *SessionManager) SetNotifier(n *NotificationService) {
	m.notes = n
}

func (m *SessionManager) entry(sid string) *sessionEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sid]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		e = &sessionEntry{ctx: ctx, cancel: cancel}
		m.sessions[sid] = e
	}
	return e
}

// Snapshot returns a copy of the session for sid. Anonymous sessions read as
// the zero Session.
func (m *SessionManager) Snapshot(sid string) model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[sid]; ok {
		return e.snap
	}
	return model.Session{}
}

// begin marks the session loading, clears the error, and hands back the
// generation and cancelable context the upstream call must run under.
func (m *SessionManager) begin(sid string) (gen uint64, ctx context.Context) {
	e := m.entry(sid)
	m.mu.Lock()
	defer m.mu.Unlock()
	e.snap.Loading = true
	e.snap.Error = ""
	return e.gen, e.ctx
}

// finish applies a mutation if the session generation is unchanged; a late
// response after a clear is dropped. Loading is always cleared for the
// surviving generation.
func (m *SessionManager) finish(sid string, gen uint64, apply func(s *model.Session)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sid]
	if !ok || e.gen != gen {
		return false
	}
	e.snap.Loading = false
	if apply != nil {
		apply(&e.snap)
	}
	return true
}

// clearLocked wipes the session and invalidates in-flight work. Caller holds
// m.mu.
func (m *SessionManager) clearLocked(e *sessionEntry) {
	e.cancel()
	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.gen++
	e.snap = model.Session{}
}

// Bootstrap restores a persisted token, if any, and validates it upstream.
// It runs once per session; later calls are no-ops.
func (m *SessionManager) Bootstrap(ctx context.Context, sid string) Result {
	e := m.entry(sid)
	m.mu.Lock()
	if e.bootstrapped {
		m.mu.Unlock()
		return Result{Success: true}
	}
	e.bootstrapped = true
	m.mu.Unlock()

	token, err := m.state.LoadToken(ctx, sid)
	if err != nil {
		// No persisted token: nothing to restore, session stays anonymous.
		if !errors.Is(err, repository.ErrNoToken) {
			logger.Log.Warnw("token restore failed", "sid", sid, "err", err)
		}
		return Result{Success: true}
	}

	gen, opCtx := m.begin(sid)
	user, err := m.client.Validate(opCtx, token)
	if err != nil {
		if derr := m.state.DeleteToken(ctx, sid); derr != nil {
			logger.Log.Warnw("token delete failed", "sid", sid, "err", derr)
		}
		m.finish(sid, gen, func(s *model.Session) {
			s.User = nil
			s.Token = ""
			s.IsAuthenticated = false
			s.Error = sessionExpiredMsg
		})
		return failure(sessionExpiredMsg)
	}

	m.finish(sid, gen, func(s *model.Session) {
		s.User = user
		s.Token = token
		s.IsAuthenticated = true
	})
	return Result{Success: true, Data: user}
}

// LoginRequest carries login credentials. Validation failures surface before
// any network call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges credentials for a session. On success the token is
// persisted and the caller is pointed at the authenticated landing page.
func (m *SessionManager) Login(ctx context.Context, sid string, req LoginRequest) Result {
	if err := m.validate.Struct(req); err != nil {
		return failure("Please provide a valid email and password")
	}

	gen, opCtx := m.begin(sid)
	payload, err := m.client.Login(opCtx, req.Email, req.Password)
	if err != nil {
		msg := err.Error()
		m.finish(sid, gen, func(s *model.Session) { s.Error = msg })
		return failure(msg)
	}

	if err := m.state.SaveToken(ctx, sid, payload.Token); err != nil {
		logger.Log.Errorw("token persist failed", "sid", sid, "err", err)
	}
	if !m.finish(sid, gen, func(s *model.Session) {
		s.User = payload.User
		s.Token = payload.Token
		s.IsAuthenticated = true
	}) {
		return failure("Session was closed before login completed")
	}
	return Result{Success: true, Message: "Login successful", Data: payload.User, Redirect: "/dashboard"}
}

// RegisterRequest mirrors the registration form.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register has the same contract as Login against the registration endpoint.
func (m *SessionManager) Register(ctx context.Context, sid string, req RegisterRequest) Result {
	if err := m.validate.Struct(req); err != nil {
		return failure("Please fill in name, email and a password of at least 8 characters")
	}

	gen, opCtx := m.begin(sid)
	payload, err := m.client.Register(opCtx, req.Name, req.Email, req.Password)
	if err != nil {
		msg := err.Error()
		m.finish(sid, gen, func(s *model.Session) { s.Error = msg })
		return failure(msg)
	}

	if err := m.state.SaveToken(ctx, sid, payload.Token); err != nil {
		logger.Log.Errorw("token persist failed", "sid", sid, "err", err)
	}
	if !m.finish(sid, gen, func(s *model.Session) {
		s.User = payload.User
		s.Token = payload.Token
		s.IsAuthenticated = true
	}) {
		return failure("Session was closed before registration completed")
	}
	return Result{Success: true, Message: "Registration successful", Data: payload.User, Redirect: "/dashboard"}
}

// Logout clears the session. The upstream call is best-effort: its failure is
// logged and ignored, and the local clear happens unconditionally, so this
// operation cannot fail from the caller's perspective.
func (m *SessionManager) Logout(ctx context.Context, sid string) Result {
	token := m.Snapshot(sid).Token

	if token != "" {
		if err := m.client.Logout(ctx, token); err != nil {
			logger.Log.Warnw("upstream logout failed", "sid", sid, "err", err)
		}
	}

	if err := m.state.DeleteToken(ctx, sid); err != nil {
		logger.Log.Warnw("token delete failed", "sid", sid, "err", err)
	}

	m.mu.Lock()
	if e, ok := m.sessions[sid]; ok {
		m.clearLocked(e)
		e.bootstrapped = true // a cleared session needs no restore pass
	}
	m.mu.Unlock()

	return Result{Success: true, Message: "Logged out", Redirect: "/auth/login"}
}

// UpdateProfile applies a partial profile update and, on success, replaces
// the session's user in place.
func (m *SessionManager) UpdateProfile(ctx context.Context, sid string, update snapurl.ProfileUpdate) Result {
	snap := m.Snapshot(sid)
	if !snap.IsAuthenticated {
		return failure("Not authenticated")
	}

	gen, opCtx := m.begin(sid)
	user, err := m.client.UpdateProfile(opCtx, snap.Token, update)
	if err != nil {
		msg := err.Error()
		m.finish(sid, gen, func(s *model.Session) { s.Error = msg })
		return failure(msg)
	}

	if !m.finish(sid, gen, func(s *model.Session) { s.User = user }) {
		return failure("Session was closed before the update completed")
	}
	if m.notes != nil {
		m.notes.Add(ctx, m.Snapshot(sid), "Profile updated", "Your profile changes were saved.")
	}
	return Result{Success: true, Message: "Profile updated", Data: user}
}

// ChangePasswordRequest is validated client-side before any network call.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// ChangePassword rotates credentials; success carries a message only and
// leaves the session's user untouched.
func (m *SessionManager) ChangePassword(ctx context.Context, sid string, req ChangePasswordRequest) Result {
	snap := m.Snapshot(sid)
	if !snap.IsAuthenticated {
		return failure("Not authenticated")
	}
	if req.NewPassword != req.ConfirmPassword {
		return failure("New passwords do not match")
	}
	if err := m.validate.Struct(req); err != nil {
		return failure("New password must be at least 8 characters")
	}

	gen, opCtx := m.begin(sid)
	msg, err := m.client.ChangePassword(opCtx, snap.Token, req.CurrentPassword, req.NewPassword)
	if err != nil {
		errMsg := err.Error()
		m.finish(sid, gen, func(s *model.Session) { s.Error = errMsg })
		return failure(errMsg)
	}

	m.finish(sid, gen, nil)
	if msg == "" {
		msg = "Password changed"
	}
	return Result{Success: true, Message: msg}
}

// RefreshUser reconciles the session with the upstream profile. An
// authorization failure is a forced logout, not a retryable error.
func (m *SessionManager) RefreshUser(ctx context.Context, sid string) Result {
	snap := m.Snapshot(sid)
	if !snap.IsAuthenticated {
		return failure("Not authenticated")
	}

	gen, opCtx := m.begin(sid)
	user, err := m.client.Profile(opCtx, snap.Token)
	if err != nil {
		if snapurl.IsUnauthorized(err) {
			if derr := m.state.DeleteToken(ctx, sid); derr != nil {
				logger.Log.Warnw("token delete failed", "sid", sid, "err", derr)
			}
			m.mu.Lock()
			if e, ok := m.sessions[sid]; ok {
				m.clearLocked(e)
				e.bootstrapped = true
				e.snap.Error = sessionExpiredMsg
			}
			m.mu.Unlock()
			return Result{Success: false, Error: sessionExpiredMsg, Message: sessionExpiredMsg, Redirect: "/auth/login"}
		}
		msg := err.Error()
		m.finish(sid, gen, func(s *model.Session) { s.Error = msg })
		return failure(msg)
	}

	if !m.finish(sid, gen, func(s *model.Session) { s.User = user }) {
		return failure("Session was closed before the refresh completed")
	}
	return Result{Success: true, Data: user}
}

// ForgotPassword starts account recovery; no session state changes.
func (m *SessionManager) ForgotPassword(ctx context.Context, email string) Result {
	if email == "" {
		return failure("Email is required")
	}
	resetToken, err := m.client.ForgotPassword(ctx, email)
	if err != nil {
		return failure(err.Error())
	}
	res := Result{Success: true, Message: "If the account exists, a recovery email was sent"}
	if resetToken != "" {
		res.Data = map[string]string{"resetToken": resetToken}
	}
	return res
}

// ResetPassword completes account recovery with the emailed token.
func (m *SessionManager) ResetPassword(ctx context.Context, resetToken, newPassword string) Result {
	if resetToken == "" || len(newPassword) < 8 {
		return failure("A reset token and a password of at least 8 characters are required")
	}
	if err := m.client.ResetPassword(ctx, resetToken, newPassword); err != nil {
		return failure(err.Error())
	}
	return Result{Success: true, Message: "Password reset. Please login.", Redirect: "/auth/login"}
}
