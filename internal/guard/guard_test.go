package guard_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	"github.com/frahmantamala/helpdesk-inventory/internal/guard"
)

func TestGuard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Guard Suite")
}

var _ = Describe("Guard", func() {
	var g *guard.Guard

	BeforeEach(func() {
		g = guard.New(nil)
	})

	Context("anonymous visitor", func() {
		It("is sent to login for gated paths, remembering where they came from", func() {
			decision := g.Authorize("/reports/monthly", nil)
			Expect(decision.Kind).To(Equal(guard.DecisionRedirect))
			Expect(decision.Target).To(Equal(guard.LoginPath))
			Expect(decision.From).To(Equal("/reports/monthly"))
		})

		It("may visit ungated paths", func() {
			decision := g.Authorize("/dashboard", nil)
			Expect(decision.Kind).To(Equal(guard.DecisionAllow))
		})
	})

	Context("logged-in user without the permission", func() {
		var visitor *auth.User

		BeforeEach(func() {
			visitor = &auth.User{ID: 7, Role: auth.RoleUser}
		})

		It("is redirected to the rule's fallback", func() {
			decision := g.Authorize("/admin/users", visitor)
			Expect(decision.Kind).To(Equal(guard.DecisionRedirect))
			Expect(decision.Target).To(Equal("/dashboard"))
		})

		It("may visit ungated paths", func() {
			decision := g.Authorize("/issues", visitor)
			Expect(decision.Kind).To(Equal(guard.DecisionAllow))
		})
	})

	Context("logged-in user with the permission", func() {
		It("may visit the gated path", func() {
			visitor := &auth.User{
				ID:          7,
				Role:        auth.RoleEmployee,
				Permissions: []auth.Permission{auth.PermViewReports},
			}
			decision := g.Authorize("/reports", visitor)
			Expect(decision.Kind).To(Equal(guard.DecisionAllow))
		})
	})

	Context("admin", func() {
		It("passes every gate without explicit permissions", func() {
			admin := &auth.User{ID: 1, Role: auth.RoleAdmin}
			for _, path := range []string{"/admin/users", "/reports", "/stock/transactions", "/purchases/approvals"} {
				Expect(g.Authorize(path, admin).Kind).To(Equal(guard.DecisionAllow), path)
			}
		})
	})

	Describe("redirect loops", func() {
		It("allows rendering when the fallback is the requested path itself", func() {
			rules := []guard.RouteRule{
				{Prefix: "/stock", Permission: auth.PermManageStockTransactions, Fallback: "/stock"},
			}
			loopGuard := guard.New(rules)

			visitor := &auth.User{ID: 7, Role: auth.RoleUser}
			decision := loopGuard.Authorize("/stock", visitor)
			Expect(decision.Kind).To(Equal(guard.DecisionAllow))
		})
	})

	Describe("rule matching", func() {
		It("prefers the most specific prefix", func() {
			rules := []guard.RouteRule{
				{Prefix: "/stock", Permission: auth.PermCreateStock, Fallback: "/dashboard"},
				{Prefix: "/stock/transactions", Permission: auth.PermManageStockTransactions, Fallback: "/stock"},
			}
			nested := guard.New(rules)

			// holds the broad permission but not the specific one
			visitor := &auth.User{
				ID:          7,
				Role:        auth.RoleEmployee,
				Permissions: []auth.Permission{auth.PermCreateStock},
			}

			decision := nested.Authorize("/stock/transactions/new", visitor)
			Expect(decision.Kind).To(Equal(guard.DecisionRedirect))
			Expect(decision.Target).To(Equal("/stock"))
		})

		It("gates everything under a prefix", func() {
			visitor := &auth.User{ID: 7, Role: auth.RoleUser}
			decision := g.Authorize("/admin/users/42/edit", visitor)
			Expect(decision.Kind).To(Equal(guard.DecisionRedirect))
		})
	})
})
