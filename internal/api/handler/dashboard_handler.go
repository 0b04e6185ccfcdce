package handler

import (
	"net/http"

	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/common"

	"github.com/go-chi/chi/v5"
)

// DashboardHandler serves the dashboard, analytics, and platform views. The
// gate has already decided access by the time these run; handlers only
// orchestrate upstream reads.
type DashboardHandler struct {
	manager   *service.SessionManager
	analytics *service.AnalyticsService
}

func NewDashboardHandler(manager *service.SessionManager, analytics *service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{manager: manager, analytics: analytics}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.summary)
	r.Get("/analytics/realtime", h.realtime)
	r.Get("/analytics/urls/{id}", h.linkAnalytics)
	r.Get("/platform", h.platform)
	r.Get("/platform/performance", h.platform)
	r.Get("/platform/security", h.platform)
}

func (h *DashboardHandler) token(r *http.Request) string {
	return h.manager.Snapshot(sessionID(r)).Token
}

func (h *DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.Summary(r.Context(), h.token(r))
	if err != nil {
		common.RespondWithError(w, statusFromUpstream(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "", summary)
}

func (h *DashboardHandler) realtime(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Realtime(r.Context(), h.token(r))
	if err != nil {
		common.RespondWithError(w, statusFromUpstream(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "", stats)
}

func (h *DashboardHandler) linkAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.ForLink(r.Context(), h.token(r), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, statusFromUpstream(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "", stats)
}

func (h *DashboardHandler) platform(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Platform(r.Context(), h.token(r))
	if err != nil {
		common.RespondWithError(w, statusFromUpstream(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "", stats)
}
