package middleware

import (
	"context"
	"net/http"

	"snapurl_admin/internal/access"
	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/common"
	"snapurl_admin/internal/common/security"
	"snapurl_admin/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type contextKey string

const SessionIDCtxKey contextKey = "sessionID"

// SessionCookieName is the jwtauth default cookie name, so the Verifier
// picks the signed session token up without extra configuration.
const SessionCookieName = "jwt"

// Sessioner resolves the browser's session id from the signed cookie, minting
// a fresh session (and cookie) when none is present, and runs the one-time
// session bootstrap before any gate decision.
func Sessioner(manager *service.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if token, claims, err := jwtauth.FromContext(r.Context()); err == nil && token != nil {
				if v, err := security.GetSessionIDFromClaims(claims); err == nil {
					sid = v
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				signed, err := security.GenerateSessionToken(sid)
				if err != nil {
					common.RespondWithError(w, http.StatusInternalServerError, "Failed to establish session")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    signed,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(config.AppConfig.SessionExp.Seconds()),
				})
			}

			manager.Bootstrap(r.Context(), sid)

			ctx := context.WithValue(r.Context(), SessionIDCtxKey, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Gate enforces the access-control verdict for every navigation. The page
// tree renders only on a granted verdict; everything else terminates here.
func Gate(manager *service.SessionManager, gate *access.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, _ := SessionIDFromContext(r.Context())
			snap := manager.Snapshot(sid)

			verdict := gate.Evaluate(r.URL.Path, snap)
			switch verdict.Decision {
			case access.DecisionPending:
				// Session still bootstrapping: render nothing.
				w.WriteHeader(http.StatusAccepted)
			case access.DecisionRedirectLogin:
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			case access.DecisionDenied:
				common.RespondWithJSON(w, http.StatusForbidden, common.Envelope{
					Success: false,
					Error:   "Access denied",
					Data:    map[string]interface{}{"required_roles": verdict.RequiredRoles},
				})
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// SessionIDFromContext returns the resolved session id for the request.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(SessionIDCtxKey).(string)
	return sid, ok
}
