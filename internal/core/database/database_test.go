package database_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	migrations "github.com/frahmantamala/finance-app/db"
	"github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/category"
	"github.com/frahmantamala/finance-app/internal/core/database"
	"github.com/frahmantamala/finance-app/internal/core/datamodel"
	budgetDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/budget"
	categoryDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/expense"
	userDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/frahmantamala/finance-app/internal/expense"
	userPostgres "github.com/frahmantamala/finance-app/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func newBudget(userID string) *budgetDatamodel.Budget {
	return &budgetDatamodel.Budget{
		Base:     datamodel.NewBase(),
		UserID:   userID,
		Month:    3,
		Year:     2026,
		Amount:   decimal.RequireFromString("100"),
		Currency: "TZS",
	}
}

var _ = Describe("OpenInMemory", func() {
	It("migrates the schema and answers pings", func() {
		db, err := database.OpenInMemory(nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)

		Expect(db.Ping(context.Background())).To(Succeed())
		Expect(db.Gorm.Migrator().HasTable("budgets")).To(BeTrue())
		Expect(db.Gorm.Migrator().HasTable("user_roles")).To(BeTrue())
	})

	It("translates a duplicate budget period into gorm.ErrDuplicatedKey", func() {
		db, err := database.OpenInMemory(nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)

		repo := repository.New[budgetDatamodel.Budget](db.Gorm)
		first := repo.Begin()
		first.Add(newBudget("u1"))
		Expect(first.SaveChanges(context.Background())).To(Succeed())

		second := repo.Begin()
		second.Add(newBudget("u1"))
		Expect(second.SaveChanges(context.Background())).To(MatchError(gorm.ErrDuplicatedKey))
	})
})

// Runs only with FINANCE_PG_TESTS set and a reachable docker daemon.
var _ = Describe("Postgres", Ordered, func() {
	var (
		ctx       context.Context
		db        *database.DB
		container *tcpostgres.PostgresContainer
	)

	BeforeAll(func() {
		if os.Getenv("FINANCE_PG_TESTS") == "" {
			Skip("FINANCE_PG_TESTS not set")
		}
		ctx = context.Background()

		var err error
		container, err = tcpostgres.RunContainer(ctx,
			testcontainers.WithImage("postgres:16-alpine"),
			tcpostgres.WithDatabase("finance"),
			tcpostgres.WithUsername("finance"),
			tcpostgres.WithPassword("finance"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(time.Minute)),
		)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(container.Terminate(context.Background())).To(Succeed())
		})

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		Expect(err).NotTo(HaveOccurred())

		db, err = database.Open(internal.DatabaseConfig{Driver: internal.DriverPostgres, Source: dsn}, nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)

		goose.SetBaseFS(migrations.Migrations)
		Expect(goose.SetDialect("postgres")).To(Succeed())
		Expect(goose.UpContext(ctx, db.SQL.DB, "migrations")).To(Succeed())
	})

	It("stores users and roles through the identity store", func() {
		repo := userPostgres.NewRepository(db.SQL)
		u := &userDatamodel.User{ID: "pg-user", Email: "Ada@Example.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}
		Expect(repo.Create(ctx, u, internal.RoleUser)).To(Succeed())
		Expect(repo.AddToRole(ctx, u.ID, internal.RoleUser)).To(Succeed())

		got, err := repo.FindByEmail(ctx, "ada@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.ID).To(Equal("pg-user"))

		roles, err := repo.Roles(ctx, u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(roles).To(Equal([]string{internal.RoleUser}))
	})

	It("translates the unique budget period into gorm.ErrDuplicatedKey", func() {
		repo := repository.New[budgetDatamodel.Budget](db.Gorm)
		first := repo.Begin()
		first.Add(newBudget("pg-user"))
		Expect(first.SaveChanges(ctx)).To(Succeed())

		second := repo.Begin()
		second.Add(newBudget("pg-user"))
		Expect(second.SaveChanges(ctx)).To(MatchError(gorm.ErrDuplicatedKey))
	})

	It("round-trips an expense date with its recorded offset", func() {
		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
		categories := category.NewService(repository.New[categoryDatamodel.Category](db.Gorm), quiet)
		expenses := expense.NewService(repository.New[expenseDatamodel.Expense](db.Gorm), categories, quiet)

		food, err := categories.Create(ctx, "pg-user", category.CreateCategoryDTO{Name: "Food"})
		Expect(err).NotTo(HaveOccurred())

		lateNight := time.Date(2026, 3, 31, 23, 30, 0, 0, time.FixedZone("EAT", 3*60*60))
		created, err := expenses.Create(ctx, "pg-user", expense.CreateExpenseDTO{
			Amount:      decimal.RequireFromString("12.50"),
			Currency:    "TZS",
			ExpenseDate: lateNight,
			CategoryID:  food.ID,
		})
		Expect(err).NotTo(HaveOccurred())

		got, err := expenses.GetByID(ctx, created.ID, "pg-user")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.ExpenseDate.Equal(lateNight)).To(BeTrue())
		_, offset := got.ExpenseDate.Zone()
		Expect(offset).To(Equal(3 * 60 * 60))
		Expect(got.ExpenseDate.Month()).To(Equal(time.March))
		Expect(got.ExpenseDate.Day()).To(Equal(31))
	})

	It("rolls the schema back", func() {
		Expect(goose.DownToContext(ctx, db.SQL.DB, "migrations", 0)).To(Succeed())
		Expect(db.Gorm.Migrator().HasTable("users")).To(BeFalse())
	})
})
