package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
)

var _ = Describe("Role", func() {
	Describe("ParseRole", func() {
		It("accepts the three known roles", func() {
			Expect(auth.ParseRole("admin")).To(Equal(auth.RoleAdmin))
			Expect(auth.ParseRole("employee")).To(Equal(auth.RoleEmployee))
			Expect(auth.ParseRole("user")).To(Equal(auth.RoleUser))
		})

		It("falls back to the least-privileged role for unknown values", func() {
			Expect(auth.ParseRole("superadmin")).To(Equal(auth.RoleUser))
			Expect(auth.ParseRole("")).To(Equal(auth.RoleUser))
			Expect(auth.ParseRole("Admin")).To(Equal(auth.RoleUser))
		})
	})

	Describe("HasRole", func() {
		It("matches exactly", func() {
			u := &auth.User{Role: auth.RoleEmployee}
			Expect(u.HasRole(auth.RoleEmployee)).To(BeTrue())
			Expect(u.HasRole(auth.RoleAdmin)).To(BeFalse())
			Expect(u.HasRole(auth.RoleAdmin, auth.RoleEmployee)).To(BeTrue())
		})

		It("never matches for a nil user", func() {
			var u *auth.User
			Expect(u.HasRole(auth.RoleUser)).To(BeFalse())
		})
	})
})

var _ = Describe("Permission", func() {
	Describe("HasPermission", func() {
		It("grants when any of the asked permissions is held", func() {
			u := &auth.User{
				Role:        auth.RoleEmployee,
				Permissions: []auth.Permission{auth.PermCreateIssue, auth.PermViewReports},
			}
			Expect(u.HasPermission(auth.PermViewReports)).To(BeTrue())
			Expect(u.HasPermission(auth.PermDeleteStock, auth.PermCreateIssue)).To(BeTrue())
		})

		It("denies when none of the asked permissions is held", func() {
			u := &auth.User{
				Role:        auth.RoleEmployee,
				Permissions: []auth.Permission{auth.PermCreateIssue},
			}
			Expect(u.HasPermission(auth.PermManageUsers)).To(BeFalse())
		})

		It("denies everything for an empty permission set", func() {
			u := &auth.User{Role: auth.RoleUser}
			Expect(u.HasPermission(auth.PermCreateIssue)).To(BeFalse())
		})

		It("lets admins pass every check regardless of the stored set", func() {
			u := &auth.User{Role: auth.RoleAdmin}
			Expect(u.HasPermission(auth.PermManageUsers)).To(BeTrue())
			Expect(u.HasPermission(auth.PermDeleteStock)).To(BeTrue())
		})

		It("never grants for a nil user", func() {
			var u *auth.User
			Expect(u.HasPermission(auth.PermCreateIssue)).To(BeFalse())
		})
	})

	Describe("FilterPermissions", func() {
		It("drops tags outside the closed set", func() {
			perms := auth.FilterPermissions([]string{
				"create_issue",
				"launch_rockets",
				"view_reports",
				"",
			})
			Expect(perms).To(Equal([]auth.Permission{auth.PermCreateIssue, auth.PermViewReports}))
		})
	})

	Describe("IsValidPermission", func() {
		It("knows all fourteen tags", func() {
			for _, p := range []auth.Permission{
				auth.PermCreateIssue, auth.PermEditIssue, auth.PermDeleteIssue,
				auth.PermAssignIssue, auth.PermResolveIssue,
				auth.PermCreateStock, auth.PermEditStock, auth.PermDeleteStock,
				auth.PermManageStockTransactions,
				auth.PermCreatePurchaseRequest, auth.PermApprovePurchaseRequest,
				auth.PermRejectPurchaseRequest,
				auth.PermViewReports, auth.PermManageUsers,
			} {
				Expect(auth.IsValidPermission(p)).To(BeTrue(), string(p))
			}
		})

		It("rejects arbitrary strings", func() {
			Expect(auth.IsValidPermission("root")).To(BeFalse())
		})
	})
})

var _ = Describe("EmailNormalizer", func() {
	It("lowercases and trims by default", func() {
		Expect(auth.NormalizeEmail("  User@Example.COM ")).To(Equal("user@example.com"))
	})

	It("rewrites the configured demo domain", func() {
		normalize := auth.NewDemoDomainNormalizer("example.com", "helpdesk.local")
		Expect(normalize("Tech@Example.com")).To(Equal("tech@helpdesk.local"))
	})

	It("leaves other domains alone", func() {
		normalize := auth.NewDemoDomainNormalizer("example.com", "helpdesk.local")
		Expect(normalize("tech@other.org")).To(Equal("tech@other.org"))
	})
})
