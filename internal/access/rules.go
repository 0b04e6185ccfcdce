package access

import (
	"snapurl_admin/internal/domain/model"
)

// Rule restricts a route-path prefix to a set of roles. Rules are evaluated
// in declaration order and the first matching prefix wins, so the order of
// this table is significant: reordering it is a behavior change.
type Rule struct {
	Prefix string
	Roles  []string
}

// DefaultRules is the gate's compiled-in rule table.
var DefaultRules = []Rule{
	{Prefix: "/platform", Roles: []string{model.RoleAdmin, model.RoleDemo}},
	{Prefix: "/platform/performance", Roles: []string{model.RoleAdmin, model.RoleDemo}},
	{Prefix: "/platform/security", Roles: []string{model.RoleAdmin, model.RoleDemo}},
}

// DefaultPublicRoutes need no authentication at all.
var DefaultPublicRoutes = []string{
	"/auth/login",
	"/auth/register",
	"/recovery",
}
