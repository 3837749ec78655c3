package budget

import (
	"context"
	stderrors "errors"
	"log/slog"

	errors "github.com/frahmantamala/finance-app/internal"
	budgetDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/budget"
	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/frahmantamala/finance-app/internal/currency"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Filter = repository.Filter[budgetDatamodel.Budget]

type RepositoryAPI interface {
	First(ctx context.Context, filter Filter, includes ...string) (*budgetDatamodel.Budget, error)
	Begin() *repository.UnitOfWork[budgetDatamodel.Budget]
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func ForPeriod(userID string, month, year int) Filter {
	return repository.And(
		repository.Eq[budgetDatamodel.Budget]("user_id", userID),
		repository.Eq[budgetDatamodel.Budget]("month", month),
		repository.Eq[budgetDatamodel.Budget]("year", year),
	)
}

// GetBudgetForMonth returns nil without error when no budget is set or userID is blank.
func (s *Service) GetBudgetForMonth(ctx context.Context, userID string, month, year int) (*Budget, error) {
	row, err := s.find(ctx, userID, month, year)
	if err != nil || row == nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) find(ctx context.Context, userID string, month, year int) (*budgetDatamodel.Budget, error) {
	if userID == "" {
		return nil, nil
	}
	row, err := s.repo.First(ctx, ForPeriod(userID, month, year))
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get budget", "user_id", userID, "month", month, "year", year, "error", err)
		return nil, err
	}
	return row, nil
}

// SetBudget updates the period's budget in place, keeping its currency, or
// creates it. Losing a creation race to another writer yields ErrBudgetConflict.
func (s *Service) SetBudget(ctx context.Context, userID string, month, year int, amount decimal.Decimal, cur currency.Currency) (*Budget, error) {
	row, err := s.find(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	var b *Budget
	uow := s.repo.Begin()
	if row != nil {
		b = FromDataModel(row)
		if err := b.UpdateAmount(amount); err != nil {
			return nil, err
		}
		row = ToDataModel(b)
		uow.Update(row)
	} else {
		b, err = NewBudget(userID, month, year, amount, cur)
		if err != nil {
			return nil, err
		}
		row = ToDataModel(b)
		uow.Add(row)
	}

	if err := uow.SaveChanges(ctx); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("budget created concurrently", "user_id", userID, "month", month, "year", year)
			return nil, errors.ErrBudgetConflict.WithCause(err)
		}
		s.logger.Error("failed to save budget", "user_id", userID, "error", err)
		return nil, err
	}

	b.CreatedAt = row.CreatedAt
	b.UpdatedAt = row.UpdatedAt
	s.logger.Info("budget set", "user_id", userID, "month", month, "year", year, "amount", amount.String())
	return b, nil
}
