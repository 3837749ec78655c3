package rest

import (
	"log/slog"

	"github.com/frahmantamala/finance-app/internal/auth"
	"github.com/frahmantamala/finance-app/internal/budget"
	"github.com/frahmantamala/finance-app/internal/category"
	"github.com/frahmantamala/finance-app/internal/dashboard"
	"github.com/frahmantamala/finance-app/internal/expense"
	"github.com/frahmantamala/finance-app/internal/transport/middleware"
	"github.com/frahmantamala/finance-app/internal/transport/swagger"
	"github.com/frahmantamala/finance-app/internal/user"
	"github.com/go-chi/chi"
)

// Handlers groups everything mounted by RegisterAllRoutes. Health may be nil.
type Handlers struct {
	Health    *HealthHandler
	Auth      *auth.Handler
	RBAC      *auth.RBACAuthorization
	User      *user.Handler
	Category  *category.Handler
	Expense   *expense.Handler
	Budget    *budget.Handler
	Dashboard *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, allowedOrigins string, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", swagger.SpecHandler())
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.Health)
			r.Get("/ping", h.Health.Ping)
		}

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", h.Auth.Register)
			ar.Post("/login", h.Auth.Login)
			ar.Post("/refresh", h.Auth.RefreshToken)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetMe)
			pr.Put("/users/me", h.User.UpdateMe)
			pr.Get("/users/me/subscription", h.User.GetSubscription)
			pr.Put("/users/me/subscription", h.User.UpgradeSubscription)

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.GetCategories)
				cr.Post("/", h.Category.CreateCategory)
				cr.Post("/defaults", h.Category.AssignDefaults)
				cr.Get("/{id}", h.Category.GetCategory)
				cr.Put("/{id}", h.Category.UpdateCategory)
				cr.Delete("/{id}", h.Category.DeleteCategory)
				cr.Get("/{id}/expenses", h.Expense.GetCategoryExpenses)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Get("/", h.Expense.GetExpenses)
				er.Post("/", h.Expense.CreateExpense)
				er.Get("/{id}", h.Expense.GetExpense)
				er.Put("/{id}", h.Expense.UpdateExpense)
				er.Delete("/{id}", h.Expense.DeleteExpense)
			})

			pr.Route("/budgets", func(br chi.Router) {
				br.Get("/current", h.Budget.GetCurrentBudget)
				br.Get("/{year}/{month}", h.Budget.GetBudget)
				br.Put("/{year}/{month}", h.Budget.SetBudget)
			})

			pr.Get("/dashboard", h.Dashboard.GetSummary)

			pr.Route("/admin", func(adm chi.Router) {
				adm.Use(h.RBAC.RequireAdmin())
				adm.Get("/users", h.User.ListUsers)
				adm.Delete("/users/{id}", h.User.DeleteUser)
				adm.Put("/users/{id}/roles/{role}", h.User.AddRole)
				adm.Delete("/users/{id}/roles/{role}", h.User.RemoveRole)
				adm.Get("/categories", h.Category.GetAllCategories)
				adm.Get("/expenses", h.Expense.GetAllExpenses)
			})
		})
	})
}
