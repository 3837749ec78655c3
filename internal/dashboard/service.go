package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/finance-app/internal/budget"
	"github.com/frahmantamala/finance-app/internal/category"
	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/frahmantamala/finance-app/internal/currency"
	"github.com/frahmantamala/finance-app/internal/expense"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ExpenseLister interface {
	ListForUser(ctx context.Context, userID string) ([]*expense.Expense, error)
}

type CategoryPager interface {
	GetPaged(ctx context.Context, pageNumber, pageSize int, userID string, filter category.Filter, orderBy []category.Order) (repository.PagedResult[*category.Category], error)
}

type BudgetReader interface {
	GetBudgetForMonth(ctx context.Context, userID string, month, year int) (*budget.Budget, error)
}

type Service struct {
	expenses   ExpenseLister
	categories CategoryPager
	budgets    BudgetReader
	converter  *currency.Converter
	logger     *slog.Logger
}

func NewService(expenses ExpenseLister, categories CategoryPager, budgets BudgetReader, converter *currency.Converter, logger *slog.Logger) *Service {
	return &Service{
		expenses:   expenses,
		categories: categories,
		budgets:    budgets,
		converter:  converter,
		logger:     logger,
	}
}

// Summary builds the dashboard of userID as seen at now. Month and day
// boundaries follow each expense's own recorded offset.
func (s *Service) Summary(ctx context.Context, userID string, now time.Time) (*Summary, error) {
	var (
		expenses      []*expense.Expense
		categoryCount int64
		monthBudget   *budget.Budget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListForUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		page, err := s.categories.GetPaged(gctx, 1, 1, userID, nil, nil)
		categoryCount = page.TotalItems
		return err
	})
	g.Go(func() error {
		var err error
		monthBudget, err = s.budgets.GetBudgetForMonth(gctx, userID, int(now.Month()), now.Year())
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to build dashboard", "user_id", userID, "error", err)
		return nil, err
	}

	summary := &Summary{
		TotalSpendUSD:     decimal.Zero,
		ExpenseCount:      len(expenses),
		CategoryCount:     categoryCount,
		ThisMonthSpendUSD: decimal.Zero,
	}

	since := now.Add(-TrendWindow)
	daily := map[string]*TrendPoint{}
	for _, e := range expenses {
		usd := s.converter.ToUSD(e.Amount, e.Currency)
		summary.TotalSpendUSD = summary.TotalSpendUSD.Add(usd)

		if sameMonth(e.ExpenseDate, now) {
			summary.ThisMonthSpendUSD = summary.ThisMonthSpendUSD.Add(usd)
		}
		if !e.ExpenseDate.Before(since) {
			y, m, d := e.ExpenseDate.Date()
			key := e.ExpenseDate.Format(time.DateOnly)
			p, ok := daily[key]
			if !ok {
				p = &TrendPoint{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), AmountUSD: decimal.Zero}
				daily[key] = p
			}
			p.AmountUSD = p.AmountUSD.Add(usd)
		}
	}

	summary.Trend = make([]TrendPoint, 0, len(daily))
	for _, p := range daily {
		summary.Trend = append(summary.Trend, *p)
	}
	sort.Slice(summary.Trend, func(i, j int) bool {
		return summary.Trend[i].Date.Before(summary.Trend[j].Date)
	})

	if monthBudget != nil {
		summary.Budget = budgetStatus(monthBudget, expenses, now)
	}
	return summary, nil
}

func sameMonth(t, now time.Time) bool {
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// budgetStatus counts only expenses recorded in the budget's currency.
func budgetStatus(b *budget.Budget, expenses []*expense.Expense, now time.Time) *BudgetStatus {
	spent := decimal.Zero
	for _, e := range expenses {
		if e.Currency == b.Currency && sameMonth(e.ExpenseDate, now) {
			spent = spent.Add(e.Amount)
		}
	}
	return &BudgetStatus{
		Month:     b.Month,
		Year:      b.Year,
		Amount:    b.Amount,
		Currency:  b.Currency,
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
		Exceeded:  spent.GreaterThanOrEqual(b.Amount),
	}
}
