package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	"github.com/frahmantamala/helpdesk-inventory/internal/guard"
	"github.com/frahmantamala/helpdesk-inventory/internal/issue"
	"github.com/frahmantamala/helpdesk-inventory/internal/purchase"
	"github.com/frahmantamala/helpdesk-inventory/internal/report"
	"github.com/frahmantamala/helpdesk-inventory/internal/stock"
	"github.com/frahmantamala/helpdesk-inventory/internal/transport/middleware"
	"github.com/frahmantamala/helpdesk-inventory/internal/transport/swagger"
	"github.com/frahmantamala/helpdesk-inventory/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	Guard    *guard.Handler
	User     *user.Handler
	Issue    *issue.Handler
	Stock    *stock.Handler
	Purchase *purchase.Handler
	Report   *report.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, rbac *auth.RBACAuthorization, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/signup", h.Auth.Signup)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// The navigation guard answers for anonymous callers too
		r.Group(func(gr chi.Router) {
			gr.Use(h.Auth.OptionalAuthMiddleware)
			gr.Get("/navigation/authorize", h.Guard.Authorize)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			// Current user
			pr.Get("/users/me", h.User.GetCurrentUser)

			// User administration
			pr.Group(func(ur chi.Router) {
				ur.Use(rbac.RequireManageUsers())
				ur.Get("/users", h.User.ListUsers)
				ur.Post("/users", h.User.CreateUser)
				ur.Get("/users/{id}", h.User.GetUser)
				ur.Patch("/users/{id}", h.User.UpdateUser)
			})

			// Issue routes
			pr.Route("/issues", func(ir chi.Router) {
				ir.Get("/", h.Issue.ListIssues)
				ir.Get("/{id}", h.Issue.GetIssue)
				ir.Get("/{id}/comments", h.Issue.ListComments)
				ir.Post("/{id}/comments", h.Issue.AddComment)
				ir.Get("/{id}/stock-items", h.Issue.ListStockLinks)

				ir.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermCreateIssue))
					mr.Post("/", h.Issue.CreateIssue)
				})
				ir.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermEditIssue))
					mr.Patch("/{id}", h.Issue.UpdateIssue)
					mr.Patch("/{id}/status", h.Issue.ChangeStatus)
					mr.Patch("/{id}/escalate", h.Issue.EscalateIssue)
				})
				ir.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermDeleteIssue))
					mr.Delete("/{id}", h.Issue.DeleteIssue)
				})
				ir.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermAssignIssue))
					mr.Patch("/{id}/assign", h.Issue.AssignIssue)
				})
				ir.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermResolveIssue))
					mr.Patch("/{id}/resolve", h.Issue.ResolveIssue)
				})
				ir.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManageStockTransactions())
					mr.Post("/{id}/stock-items", h.Issue.LinkStockItem)
				})
			})

			// Stock routes
			pr.Route("/stock", func(sr chi.Router) {
				sr.Get("/", h.Stock.ListItems)
				sr.Get("/{id}", h.Stock.GetItem)
				sr.Get("/{id}/usage", h.Stock.GetUsageHistory)

				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermCreateStock))
					mr.Post("/", h.Stock.CreateItem)
				})
				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermEditStock))
					mr.Patch("/{id}", h.Stock.UpdateItem)
				})
				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermDeleteStock))
					mr.Delete("/{id}", h.Stock.DeleteItem)
				})
				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManageStockTransactions())
					mr.Post("/transactions", h.Stock.RecordTransaction)
				})
				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireViewReports())
					mr.Get("/usage/by-date", h.Stock.UsageByDate)
					mr.Get("/usage/by-category", h.Stock.UsageByCategory)
				})
			})

			// Purchase request routes
			pr.Route("/purchases", func(cr chi.Router) {
				cr.Get("/", h.Purchase.ListRequests)
				cr.Get("/{id}", h.Purchase.GetRequest)

				cr.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermCreatePurchaseRequest))
					mr.Post("/", h.Purchase.CreateRequest)
				})
				cr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireApprovePurchase())
					mr.Patch("/{id}/approve", h.Purchase.ApproveRequest)
					mr.Patch("/{id}/purchased", h.Purchase.MarkPurchased)
				})
				cr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireRejectPurchase())
					mr.Patch("/{id}/reject", h.Purchase.RejectRequest)
				})
			})

			// Report routes
			pr.Route("/reports", func(rr chi.Router) {
				rr.Use(rbac.RequireViewReports())
				rr.Get("/issues/by-status", h.Report.IssuesByStatus)
				rr.Get("/issues/by-type", h.Report.IssuesByType)
				rr.Get("/issues/by-month", h.Report.IssuesByMonth)
			})
		})
	})
}
