package api

import (
	"net/http"
	"time"

	"snapurl_admin/internal/access"
	"snapurl_admin/internal/api/handler"
	apimw "snapurl_admin/internal/api/middleware"
	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	manager *service.SessionManager,
	gate *access.Gate,
	links *service.ShortLinkService,
	analytics *service.AnalyticsService,
	notes *service.NotificationService,
	themes *service.ThemeService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the signed session cookie and puts its claims in context. The
	// cookie may be absent; Sessioner mints one in that case.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// The page tree. The gate wraps all of it; public routes are resolved by
	// the gate's allow-list rather than by router grouping, so access is
	// decided in exactly one place.
	r.Group(func(page chi.Router) {
		page.Use(apimw.Sessioner(manager))
		page.Use(apimw.Gate(manager, gate))

		authHandler := handler.NewAuthHandler(manager)
		authHandler.RegisterRoutes(page)

		dashboardHandler := handler.NewDashboardHandler(manager, analytics)
		dashboardHandler.RegisterRoutes(page)

		linkHandler := handler.NewShortLinkHandler(manager, links)
		page.Route("/urls", linkHandler.RegisterRoutes)

		notificationHandler := handler.NewNotificationHandler(manager, notes)
		page.Route("/notifications", notificationHandler.RegisterRoutes)

		preferencesHandler := handler.NewPreferencesHandler(manager, themes)
		page.Route("/preferences", preferencesHandler.RegisterRoutes)
	})

	return r
}
