package guard

import (
	"strings"

	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
)

// The guard answers navigation questions for the frontend: given a path
// and the current user, may the view render, and if not, where should the
// client go instead.

const LoginPath = "/login"

type DecisionKind string

const (
	DecisionAllow    DecisionKind = "allow"
	DecisionRedirect DecisionKind = "redirect"
)

type Decision struct {
	Kind   DecisionKind `json:"decision"`
	Target string       `json:"target,omitempty"`
	// From carries the originally requested path so the client can return
	// to it after login.
	From   string `json:"from,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func Allow() Decision {
	return Decision{Kind: DecisionAllow}
}

func RedirectTo(target, from, reason string) Decision {
	return Decision{Kind: DecisionRedirect, Target: target, From: from, Reason: reason}
}

// RouteRule gates every path under Prefix on a permission. Fallback is
// where a logged-in user without the permission is sent.
type RouteRule struct {
	Prefix     string
	Permission auth.Permission
	Fallback   string
}

type Guard struct {
	rules []RouteRule
}

// DefaultRules mirrors the application's gated areas.
func DefaultRules() []RouteRule {
	return []RouteRule{
		{Prefix: "/admin/users", Permission: auth.PermManageUsers, Fallback: "/dashboard"},
		{Prefix: "/reports", Permission: auth.PermViewReports, Fallback: "/dashboard"},
		{Prefix: "/stock/transactions", Permission: auth.PermManageStockTransactions, Fallback: "/stock"},
		{Prefix: "/purchases/approvals", Permission: auth.PermApprovePurchaseRequest, Fallback: "/purchases"},
	}
}

func New(rules []RouteRule) *Guard {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Guard{rules: rules}
}

// Authorize decides whether a navigation target is reachable. The most
// specific matching rule wins. A rule whose fallback is the requested path
// itself allows rendering instead of redirecting, so the client can never
// be sent in a loop.
func (g *Guard) Authorize(path string, user *auth.User) Decision {
	rule, matched := g.match(path)

	if user == nil {
		if !matched {
			return Allow()
		}
		return RedirectTo(LoginPath, path, "authentication required")
	}

	if !matched {
		return Allow()
	}

	if user.HasPermission(rule.Permission) {
		return Allow()
	}

	if rule.Fallback == path {
		return Allow()
	}

	return RedirectTo(rule.Fallback, path, "you do not have access to this page")
}

func (g *Guard) match(path string) (RouteRule, bool) {
	var best RouteRule
	found := false
	for _, rule := range g.rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if !found || len(rule.Prefix) > len(best.Prefix) {
			best = rule
			found = true
		}
	}
	return best, found
}
