package snapurl

import (
	"context"
	"net/http"

	"snapurl_admin/internal/domain/model"
)

// AuthPayload is the data payload of login/register responses.
type AuthPayload struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for a user and bearer token. No existing token
// is attached.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, SkipAuth())
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Kind: KindValidation, Message: failureMessage(env)}
	}
	var payload AuthPayload
	if err := env.DecodeData(&payload); err != nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed login response: " + err.Error()}
	}
	return &payload, nil
}

// Register creates an account with name/email/password only; same contract
// as Login.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthPayload, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body, SkipAuth())
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Kind: KindValidation, Message: failureMessage(env)}
	}
	var payload AuthPayload
	if err := env.DecodeData(&payload); err != nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed register response: " + err.Error()}
	}
	return &payload, nil
}

// Logout invalidates the token upstream.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil)
	return err
}

// Validate checks a persisted token and returns the user it belongs to.
func (c *Client) Validate(ctx context.Context, token string) (*model.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/validate", token, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		User *model.User `json:"user"`
	}
	if err := env.DecodeData(&payload); err != nil || payload.User == nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed validate response"}
	}
	return payload.User, nil
}

// Profile fetches the current account.
func (c *Client) Profile(ctx context.Context, token string) (*model.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/profile", token, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		User *model.User `json:"user"`
	}
	if err := env.DecodeData(&payload); err != nil || payload.User == nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed profile response"}
	}
	return payload.User, nil
}

// ProfileUpdate carries the mutable profile fields; nil pointers are omitted
// so the upstream applies a partial update.
type ProfileUpdate struct {
	Name        *string            `json:"name,omitempty"`
	Email       *string            `json:"email,omitempty"`
	Preferences *model.Preferences `json:"preferences,omitempty"`
}

// UpdateProfile applies a partial update and returns the updated user.
func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*model.User, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/auth/profile", token, update)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Kind: KindValidation, Message: failureMessage(env)}
	}
	var payload struct {
		User *model.User `json:"user"`
	}
	if err := env.DecodeData(&payload); err != nil || payload.User == nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed profile response"}
	}
	return payload.User, nil
}

// ChangePassword rotates credentials. Success carries a message only; no
// user state changes.
func (c *Client) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) (string, error) {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	env, err := c.do(ctx, http.MethodPut, "/api/auth/change-password", token, body)
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", &APIError{Kind: KindValidation, Message: failureMessage(env)}
	}
	return env.Message, nil
}

// ForgotPassword starts recovery; some deployments return the reset token in
// the payload for test environments.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": email}, SkipAuth())
	if err != nil {
		return "", err
	}
	var payload struct {
		ResetToken string `json:"resetToken"`
	}
	if len(env.Data) > 0 {
		_ = env.DecodeData(&payload)
	}
	return payload.ResetToken, nil
}

// ResetPassword completes recovery with the emailed reset token.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	body := map[string]string{"resetToken": resetToken, "newPassword": newPassword}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/reset-password", "", body, SkipAuth())
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Kind: KindValidation, Message: failureMessage(env)}
	}
	return nil
}

func failureMessage(env *Envelope) string {
	if env.Error != "" {
		return env.Error
	}
	if env.Message != "" {
		return env.Message
	}
	return "request failed"
}
