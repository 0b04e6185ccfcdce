package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"snapurl_admin/internal/access"
	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/common"
	"snapurl_admin/internal/common/security"
	"snapurl_admin/internal/domain/repository"
	"snapurl_admin/internal/platform/config"
	"snapurl_admin/internal/snapurl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSnapURL serves just enough of the upstream API for routing tests. The
// login role is derived from the email's local part.
func fakeSnapURL(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		role := "user"
		if req.Email == "root@snapurl.io" {
			role = "admin"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"user":  map[string]interface{}{"id": "u-" + role, "role": role, "email": req.Email, "is_active": true},
				"token": "tok-" + role,
			},
		})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	})
	mux.HandleFunc("GET /api/analytics/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"total_links": 3, "total_clicks": 42},
		})
	})
	mux.HandleFunc("GET /api/analytics/platform", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"total_users": 10},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func newTestApp(t *testing.T) *httptest.Server {
	t.Helper()
	config.Load()
	security.InitJWT()

	upstream := fakeSnapURL(t)
	client := snapurl.NewClient(upstream.URL, 5*time.Second)
	state := repository.NewMemoryClientStateStore()

	manager := service.NewSessionManager(client, state)
	notes := service.NewNotificationService(repository.NewMemoryNotificationRepository())
	manager.SetNotifier(notes)
	links := service.NewShortLinkService(client)
	analytics := service.NewAnalyticsService(client)
	themes := service.NewThemeService(state, config.AppConfig.DefaultTheme)

	router := NewRouter(manager, access.NewDefaultGate(), links, analytics, notes, themes)
	app := httptest.NewServer(router)
	t.Cleanup(app.Close)
	return app
}

// newBrowser returns a client that keeps the session cookie and never
// follows redirects, so gate decisions stay observable.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func login(t *testing.T, browser *http.Client, app *httptest.Server, email string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": "password123"})
	resp, err := browser.Post(app.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnauthenticatedDashboardRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)

	resp, err := browser.Get(app.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
}

func TestUserRoleDeniedOnPlatformWithRequiredRoles(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)
	login(t, browser, app, "ada@example.com")

	resp, err := browser.Get(app.URL + "/platform")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	var env common.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.Success)
	assert.Equal(t, "Access denied", env.Error)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"admin", "demo"}, data["required_roles"])
}

func TestAdminRoleGrantedOnPlatformPerformance(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)
	login(t, browser, app, "root@snapurl.io")

	resp, err := browser.Get(app.URL + "/platform/performance")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticatedDashboardRenders(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)
	login(t, browser, app, "ada@example.com")

	resp, err := browser.Get(app.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env common.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
}

func TestLogoutThenDashboardRedirects(t *testing.T) {
	app := newTestApp(t)
	browser := newBrowser(t)
	login(t, browser, app, "ada@example.com")

	resp, err := browser.Post(app.URL+"/auth/logout", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = browser.Get(app.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
}
