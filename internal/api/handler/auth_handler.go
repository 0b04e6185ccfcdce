package handler

import (
	"encoding/json"
	"net/http"

	apimw "snapurl_admin/internal/api/middleware"
	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/common"
	"snapurl_admin/internal/snapurl"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	manager *service.SessionManager
}

func NewAuthHandler(manager *service.SessionManager) *AuthHandler {
	return &AuthHandler{manager: manager}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
	r.Post("/auth/register", h.register)
	r.Post("/auth/logout", h.logout)
	r.Get("/auth/session", h.session)
	r.Get("/auth/profile", h.profile)
	r.Put("/auth/profile", h.updateProfile)
	r.Put("/auth/change-password", h.changePassword)
	r.Post("/auth/refresh", h.refresh)
	r.Post("/recovery/forgot", h.forgotPassword)
	r.Post("/recovery/reset", h.resetPassword)
}

// respondResult renders a session operation's tagged result. Failures map to
// 400 unless they are authorization failures.
func respondResult(w http.ResponseWriter, res service.Result) {
	code := http.StatusOK
	if !res.Success {
		code = http.StatusBadRequest
		if res.Error == "Not authenticated" || res.Redirect == "/auth/login" {
			code = http.StatusUnauthorized
		}
	}
	common.RespondWithJSON(w, code, res)
}

func sessionID(r *http.Request) string {
	sid, _ := apimw.SessionIDFromContext(r.Context())
	return sid
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	respondResult(w, h.manager.Login(r.Context(), sessionID(r), req))
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	respondResult(w, h.manager.Register(r.Context(), sessionID(r), req))
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.manager.Logout(r.Context(), sessionID(r)))
}

// session exposes the current session snapshot so the front-end can render
// auth state without a profile round-trip.
func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot(sessionID(r))
	common.RespondWithData(w, http.StatusOK, "", snap)
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot(sessionID(r))
	if !snap.IsAuthenticated {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	common.RespondWithData(w, http.StatusOK, "", snap.User)
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var update snapurl.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	respondResult(w, h.manager.UpdateProfile(r.Context(), sessionID(r), update))
}

func (h *AuthHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req service.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	respondResult(w, h.manager.ChangePassword(r.Context(), sessionID(r), req))
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.manager.RefreshUser(r.Context(), sessionID(r)))
}

func (h *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	respondResult(w, h.manager.ForgotPassword(r.Context(), req.Email))
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResetToken  string `json:"resetToken"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	respondResult(w, h.manager.ResetPassword(r.Context(), req.ResetToken, req.NewPassword))
}
