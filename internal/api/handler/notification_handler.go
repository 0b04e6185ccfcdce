package handler

import (
	"encoding/json"
	"net/http"

	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/common"

	"github.com/go-chi/chi/v5"
)

type NotificationHandler struct {
	manager *service.SessionManager
	notes   *service.NotificationService
}

func NewNotificationHandler(manager *service.SessionManager, notes *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{manager: manager, notes: notes}
}

func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Put("/{id}/read", h.markRead)
	r.Put("/read-all", h.markAllRead)
	r.Delete("/", h.clear)
}

func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot(sessionID(r))
	list, err := h.notes.List(r.Context(), snap)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to load notifications")
		return
	}
	common.RespondWithData(w, http.StatusOK, "", list)
}

func (h *NotificationHandler) add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Title == "" {
		common.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}
	snap := h.manager.Snapshot(sessionID(r))
	n := h.notes.Add(r.Context(), snap, req.Title, req.Message)
	if n == nil {
		// Anonymous sessions cannot hold notifications.
		common.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	common.RespondWithData(w, http.StatusCreated, "Notification added", n)
}

func (h *NotificationHandler) markRead(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot(sessionID(r))
	if err := h.notes.MarkRead(r.Context(), snap, chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	common.RespondWithData(w, http.StatusOK, "Notification marked read", nil)
}

func (h *NotificationHandler) markAllRead(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot(sessionID(r))
	if err := h.notes.MarkAllRead(r.Context(), snap); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to update notifications")
		return
	}
	common.RespondWithData(w, http.StatusOK, "All notifications marked read", nil)
}

func (h *NotificationHandler) clear(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot(sessionID(r))
	if err := h.notes.Clear(r.Context(), snap); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to clear notifications")
		return
	}
	common.RespondWithData(w, http.StatusOK, "Notifications cleared", nil)
}
