package cmd

import (
	"log/slog"

	"github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/auth"
	"github.com/frahmantamala/finance-app/internal/budget"
	"github.com/frahmantamala/finance-app/internal/category"
	"github.com/frahmantamala/finance-app/internal/core/database"
	budgetDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/budget"
	categoryDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/frahmantamala/finance-app/internal/currency"
	"github.com/frahmantamala/finance-app/internal/dashboard"
	"github.com/frahmantamala/finance-app/internal/expense"
	"github.com/frahmantamala/finance-app/internal/user"
	userPostgres "github.com/frahmantamala/finance-app/internal/user/postgres"
)

// Services is the wired service graph shared by the server and the CLI commands.
type Services struct {
	User      *user.Service
	Auth      *auth.Service
	Category  *category.Service
	Expense   *expense.Service
	Budget    *budget.Service
	Dashboard *dashboard.Service
}

func newServices(cfg *internal.Config, db *database.DB, lg *slog.Logger) *Services {
	users := user.NewService(userPostgres.NewRepository(db.SQL), cfg.Security.BCryptCost, lg)
	categories := category.NewService(repository.New[categoryDatamodel.Category](db.Gorm), lg)
	expenses := expense.NewService(repository.New[expenseDatamodel.Expense](db.Gorm), categories, lg)
	budgets := budget.NewService(repository.New[budgetDatamodel.Budget](db.Gorm), lg)

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	return &Services{
		User:      users,
		Auth:      auth.NewService(users, categories, tokens, lg),
		Category:  categories,
		Expense:   expenses,
		Budget:    budgets,
		Dashboard: dashboard.NewService(expenses, categories, budgets, currency.NewConverter(cfg.ExchangeRates), lg),
	}
}
