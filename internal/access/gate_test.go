package access

import (
	"testing"

	"snapurl_admin/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func authedSession(role string) model.Session {
	return model.Session{
		User:            &model.User{ID: "u1", Role: role},
		Token:           "tok",
		IsAuthenticated: true,
	}
}

func TestGatePublicRoutesAlwaysGranted(t *testing.T) {
	gate := NewDefaultGate()

	sessions := map[string]model.Session{
		"anonymous":     {},
		"authenticated": authedSession(model.RoleUser),
		"admin":         authedSession(model.RoleAdmin),
	}
	for name, sess := range sessions {
		for _, path := range []string{"/auth/login", "/auth/register", "/recovery"} {
			v := gate.Evaluate(path, sess)
			assert.Equal(t, DecisionGranted, v.Decision, "%s on %s", name, path)
		}
	}
}

func TestGateLoadingIsPending(t *testing.T) {
	gate := NewDefaultGate()

	v := gate.Evaluate("/dashboard", model.Session{Loading: true})
	assert.Equal(t, DecisionPending, v.Decision)

	// Loading outranks everything, public routes included.
	v = gate.Evaluate("/auth/login", model.Session{Loading: true})
	assert.Equal(t, DecisionPending, v.Decision)
}

func TestGateUnauthenticatedPrivateRouteRedirects(t *testing.T) {
	gate := NewDefaultGate()

	for _, path := range []string{"/dashboard", "/urls", "/platform", "/settings"} {
		v := gate.Evaluate(path, model.Session{})
		assert.Equal(t, DecisionRedirectLogin, v.Decision, path)
	}
}

func TestGateRoleRules(t *testing.T) {
	gate := NewDefaultGate()

	tests := []struct {
		role string
		path string
		want Decision
	}{
		{model.RoleAdmin, "/platform", DecisionGranted},
		{model.RoleAdmin, "/platform/performance", DecisionGranted},
		{model.RoleDemo, "/platform/security", DecisionGranted},
		{model.RoleUser, "/platform", DecisionDenied},
		{model.RoleModerator, "/platform/performance", DecisionDenied},
		{model.RoleUser, "/dashboard", DecisionGranted},
		{model.RoleUser, "/urls", DecisionGranted},
	}
	for _, tt := range tests {
		v := gate.Evaluate(tt.path, authedSession(tt.role))
		assert.Equal(t, tt.want, v.Decision, "role %s on %s", tt.role, tt.path)
	}
}

func TestGateDenialCarriesRequiredRoles(t *testing.T) {
	gate := NewDefaultGate()

	v := gate.Evaluate("/platform", authedSession(model.RoleUser))
	assert.Equal(t, DecisionDenied, v.Decision)
	assert.Equal(t, []string{model.RoleAdmin, model.RoleDemo}, v.RequiredRoles)

	v = gate.Evaluate("/dashboard", authedSession(model.RoleUser))
	assert.Empty(t, v.RequiredRoles)
}

func TestGateFirstMatchInDeclarationOrderWins(t *testing.T) {
	// Overlapping prefixes are not disambiguated by specificity; the first
	// rule in the table decides.
	gate := NewGate([]Rule{
		{Prefix: "/reports", Roles: []string{model.RoleAdmin}},
		{Prefix: "/reports/public", Roles: []string{model.RoleUser}},
	}, DefaultPublicRoutes)

	v := gate.Evaluate("/reports/public", authedSession(model.RoleUser))
	assert.Equal(t, DecisionDenied, v.Decision)
	assert.Equal(t, []string{model.RoleAdmin}, v.RequiredRoles)

	// With the specific rule first, the same path is granted.
	gate = NewGate([]Rule{
		{Prefix: "/reports/public", Roles: []string{model.RoleUser}},
		{Prefix: "/reports", Roles: []string{model.RoleAdmin}},
	}, DefaultPublicRoutes)

	v = gate.Evaluate("/reports/public", authedSession(model.RoleUser))
	assert.Equal(t, DecisionGranted, v.Decision)
}

func TestGateUnknownPathDefaultAllowsAuthenticated(t *testing.T) {
	gate := NewDefaultGate()

	v := gate.Evaluate("/some/unmapped/page", authedSession(model.RoleDemo))
	assert.Equal(t, DecisionGranted, v.Decision)
}
