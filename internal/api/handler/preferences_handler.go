package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/common"

	"github.com/go-chi/chi/v5"
)

type PreferencesHandler struct {
	manager *service.SessionManager
	themes  *service.ThemeService
}

func NewPreferencesHandler(manager *service.SessionManager, themes *service.ThemeService) *PreferencesHandler {
	return &PreferencesHandler{manager: manager, themes: themes}
}

func (h *PreferencesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/theme", h.getTheme)
	r.Put("/theme", h.setTheme)
}

func (h *PreferencesHandler) getTheme(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot(sessionID(r))
	theme, err := h.themes.Get(r.Context(), snap.UserID())
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to load theme")
		return
	}
	common.RespondWithData(w, http.StatusOK, "", map[string]string{"theme": theme})
}

func (h *PreferencesHandler) setTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	snap := h.manager.Snapshot(sessionID(r))
	if err := h.themes.Set(r.Context(), snap.UserID(), req.Theme); err != nil {
		if errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrUnauthorized) {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to save theme")
		return
	}
	common.RespondWithData(w, http.StatusOK, "Theme saved", map[string]string{"theme": req.Theme})
}
