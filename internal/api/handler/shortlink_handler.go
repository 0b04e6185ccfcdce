package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/common"
	"snapurl_admin/internal/snapurl"

	"github.com/go-chi/chi/v5"
)

type ShortLinkHandler struct {
	manager *service.SessionManager
	links   *service.ShortLinkService
}

func NewShortLinkHandler(manager *service.SessionManager, links *service.ShortLinkService) *ShortLinkHandler {
	return &ShortLinkHandler{manager: manager, links: links}
}

func (h *ShortLinkHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *ShortLinkHandler) token(r *http.Request) string {
	return h.manager.Snapshot(sessionID(r)).Token
}

func (h *ShortLinkHandler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	result, err := h.links.List(r.Context(), h.token(r), page, perPage)
	if err != nil {
		common.RespondWithError(w, statusFromUpstream(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "", result)
}

func (h *ShortLinkHandler) create(w http.ResponseWriter, r *http.Request) {
	var req snapurl.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	link, err := h.links.Create(r.Context(), h.token(r), req)
	if err != nil {
		common.RespondWithError(w, statusFromUpstream(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusCreated, "Short link created", link)
}

func (h *ShortLinkHandler) get(w http.ResponseWriter, r *http.Request) {
	link, err := h.links.Get(r.Context(), h.token(r), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, statusFromUpstream(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "", link)
}

func (h *ShortLinkHandler) update(w http.ResponseWriter, r *http.Request) {
	var req snapurl.UpdateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	link, err := h.links.Update(r.Context(), h.token(r), chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondWithError(w, statusFromUpstream(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "Short link updated", link)
}

func (h *ShortLinkHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.links.Delete(r.Context(), h.token(r), chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, statusFromUpstream(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, "Short link deleted", nil)
}

// statusFromUpstream maps API client errors onto response codes, falling back
// to the domain error mapping.
func statusFromUpstream(err error) int {
	if apiErr, ok := err.(*snapurl.APIError); ok {
		switch apiErr.Kind {
		case snapurl.KindUnauthorized:
			return http.StatusUnauthorized
		case snapurl.KindValidation:
			return http.StatusBadRequest
		case snapurl.KindNetwork:
			return http.StatusBadGateway
		default:
			if apiErr.Status >= 400 {
				return apiErr.Status
			}
			return http.StatusBadGateway
		}
	}
	return common.HTTPStatusFromError(err)
}
