// Package access decides, per navigation, whether the current session may
// view the current path. The gate is a pure function of (path, session
// snapshot); it performs no I/O and cannot fail at runtime.
package access

import (
	"strings"

	"snapurl_admin/internal/domain/model"
)

type Decision int

const (
	// DecisionPending means the session is still bootstrapping; render
	// nothing, neither content nor denial.
	DecisionPending Decision = iota
	DecisionGranted
	DecisionDenied
	DecisionRedirectLogin
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionGranted:
		return "granted"
	case DecisionDenied:
		return "denied"
	default:
		return "redirect-login"
	}
}

// Verdict is the gate's output for one navigation. RequiredRoles is set only
// on denial, for user-facing messaging.
type Verdict struct {
	Decision      Decision
	RequiredRoles []string
}

// Gate holds the compiled-in rule table and public allow-list.
type Gate struct {
	rules  []Rule
	public []string
}

func NewGate(rules []Rule, public []string) *Gate {
	return &Gate{rules: rules, public: public}
}

// NewDefaultGate builds the gate with the shipped rule table.
func NewDefaultGate() *Gate {
	return NewGate(DefaultRules, DefaultPublicRoutes)
}

// Evaluate runs the five transitions in order:
//  1. session still loading -> pending
//  2. public route -> granted, regardless of authentication
//  3. unauthenticated on a private route -> redirect to login
//  4. first matching rule -> granted iff role is allowed, else denied
//  5. no rule matched -> granted (default-allow for authenticated users)
func (g *Gate) Evaluate(path string, s model.Session) Verdict {
	if s.Loading {
		return Verdict{Decision: DecisionPending}
	}

	for _, p := range g.public {
		if strings.HasPrefix(path, p) {
			return Verdict{Decision: DecisionGranted}
		}
	}

	if !s.IsAuthenticated {
		return Verdict{Decision: DecisionRedirectLogin}
	}

	for _, rule := range g.rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		for _, role := range rule.Roles {
			if s.Role() == role {
				return Verdict{Decision: DecisionGranted}
			}
		}
		return Verdict{Decision: DecisionDenied, RequiredRoles: rule.Roles}
	}

	return Verdict{Decision: DecisionGranted}
}
