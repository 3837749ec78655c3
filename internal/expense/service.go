package expense

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/category"
	expenseDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/frahmantamala/finance-app/internal/currency"
	"github.com/google/uuid"
)

type (
	Filter = repository.Filter[expenseDatamodel.Expense]
	Order  = repository.Order[expenseDatamodel.Expense]
)

const includeCategory = "Category"

type RepositoryAPI interface {
	GetByID(ctx context.Context, id uuid.UUID, includes ...string) (*expenseDatamodel.Expense, error)
	FindOrdered(ctx context.Context, filter Filter, orderBy []Order, includes ...string) ([]expenseDatamodel.Expense, error)
	GetPaged(ctx context.Context, q repository.PageQuery[expenseDatamodel.Expense]) (repository.PagedResult[expenseDatamodel.Expense], error)
	Begin() *repository.UnitOfWork[expenseDatamodel.Expense]
}

// CategoryReader resolves a category the caller owns.
type CategoryReader interface {
	GetByID(ctx context.Context, id uuid.UUID, userID string) (*category.Category, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryReader
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryReader, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		logger:     logger,
	}
}

func OwnedBy(userID string) Filter {
	return repository.Eq[expenseDatamodel.Expense]("user_id", userID)
}

func InCategory(categoryID uuid.UUID) Filter {
	return repository.Eq[expenseDatamodel.Expense]("category_id", categoryID)
}

func InCurrency(cur currency.Currency) Filter {
	return repository.Eq[expenseDatamodel.Expense]("currency", cur.String())
}

// Between matches expense dates in [from, to); either bound may be nil.
func Between(from, to *time.Time) Filter {
	var filters []Filter
	if from != nil {
		filters = append(filters, repository.Where[expenseDatamodel.Expense]("expense_date >= ?", from.UTC()))
	}
	if to != nil {
		filters = append(filters, repository.Where[expenseDatamodel.Expense]("expense_date < ?", to.UTC()))
	}
	return repository.And(filters...)
}

// Newest orders by expense date, most recent first.
var Newest = []Order{repository.OrderBy[expenseDatamodel.Expense]("expense_date", true)}

// GetByID returns the expense with its category when it belongs to userID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID string) (*Expense, error) {
	row, err := s.loadOwned(ctx, id, userID, includeCategory)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) loadOwned(ctx context.Context, id uuid.UUID, userID string, includes ...string) (*expenseDatamodel.Expense, error) {
	row, err := s.repo.GetByID(ctx, id, includes...)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.ErrExpenseNotFound
		}
		s.logger.Error("failed to get expense", "expense_id", id, "error", err)
		return nil, err
	}
	if userID == "" || row.UserID != userID {
		s.logger.Warn("expense ownership mismatch", "expense_id", id, "user_id", userID)
		return nil, errors.ErrExpenseNotFound
	}
	return row, nil
}

// Add persists an already constructed expense as is.
func (s *Service) Add(ctx context.Context, e *Expense) error {
	row := ToDataModel(e)
	uow := s.repo.Begin()
	uow.Add(row)
	if err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error("failed to add expense", "expense_id", e.ID, "error", err)
		return err
	}
	e.syncBack(row)
	return nil
}

// Create validates the request, checks the category belongs to userID and persists the expense.
func (s *Service) Create(ctx context.Context, userID string, req CreateExpenseDTO) (*Expense, error) {
	cur, err := currency.Parse(req.Currency)
	if err != nil {
		return nil, err
	}
	e, err := NewExpense(req.Amount, cur, req.ExpenseDate, req.CategoryID, userID, req.Description, req.ReceiptPath)
	if err != nil {
		return nil, err
	}
	cat, err := s.ownedCategory(ctx, req.CategoryID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.Add(ctx, e); err != nil {
		return nil, err
	}
	e.Category = cat

	s.logger.Info("expense created", "expense_id", e.ID, "user_id", userID, "amount", e.Amount.String(), "currency", e.Currency)
	return e, nil
}

func (s *Service) ownedCategory(ctx context.Context, categoryID uuid.UUID, userID string) (*category.Category, error) {
	cat, err := s.categories.GetByID(ctx, categoryID, userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrCategoryNotFound) {
			return nil, errors.NewValidationFieldError("category_id", "category does not exist", errors.ErrCodeInvalidCategory)
		}
		return nil, err
	}
	return cat, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, userID string, req UpdateExpenseDTO) (*Expense, error) {
	row, err := s.loadOwned(ctx, id, userID, includeCategory)
	if err != nil {
		return nil, err
	}
	e := FromDataModel(row)

	cur, err := currency.Parse(req.Currency)
	if err != nil {
		return nil, err
	}
	if err := e.UpdateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := e.UpdateCurrency(cur); err != nil {
		return nil, err
	}
	if err := e.UpdateExpenseDate(req.ExpenseDate); err != nil {
		return nil, err
	}
	if err := e.UpdateDescription(req.Description); err != nil {
		return nil, err
	}
	if err := e.UpdateReceipt(req.ReceiptPath); err != nil {
		return nil, err
	}
	if req.CategoryID != e.CategoryID {
		cat, err := s.ownedCategory(ctx, req.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if err := e.UpdateCategory(req.CategoryID); err != nil {
			return nil, err
		}
		e.Category = cat
	}

	updated := ToDataModel(e)
	uow := s.repo.Begin()
	uow.Update(updated)
	if err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error("failed to update expense", "expense_id", id, "error", err)
		return nil, err
	}
	e.syncBack(updated)
	return e, nil
}

func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID, userID string) error {
	row, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	uow := s.repo.Begin()
	uow.SoftDelete(row)
	if err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error("failed to delete expense", "expense_id", id, "error", err)
		return err
	}
	s.logger.Info("expense deleted", "expense_id", id, "user_id", userID)
	return nil
}

// GetAll is the administrator listing across every user.
func (s *Service) GetAll(ctx context.Context) ([]*Expense, error) {
	rows, err := s.repo.FindOrdered(ctx, nil, Newest, includeCategory)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// ListForUser returns every expense of userID, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Expense, error) {
	rows, err := s.repo.FindOrdered(ctx, OwnedBy(userID), Newest, includeCategory)
	if err != nil {
		s.logger.Error("failed to list user expenses", "user_id", userID, "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// ListByCategory returns the user's expenses in one category, newest first.
func (s *Service) ListByCategory(ctx context.Context, categoryID uuid.UUID, userID string) ([]*Expense, error) {
	rows, err := s.repo.FindOrdered(ctx, repository.And(OwnedBy(userID), InCategory(categoryID)), Newest, includeCategory)
	if err != nil {
		s.logger.Error("failed to list expenses by category", "category_id", categoryID, "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) GetPaged(ctx context.Context, pageNumber, pageSize int, filter Filter, orderBy []Order) (repository.PagedResult[*Expense], error) {
	res, err := s.repo.GetPaged(ctx, repository.PageQuery[expenseDatamodel.Expense]{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Filter:     filter,
		OrderBy:    orderBy,
		Includes:   []string{includeCategory},
	})
	if err != nil {
		s.logger.Error("failed to page expenses", "error", err)
		return repository.PagedResult[*Expense]{}, err
	}
	return repository.MapPaged(res, func(row expenseDatamodel.Expense) *Expense {
		return FromDataModel(&row)
	}), nil
}

// GetByCategoryID pages through the user's expenses in one category, newest first.
func (s *Service) GetByCategoryID(ctx context.Context, categoryID uuid.UUID, userID string, pageNumber, pageSize int) (repository.PagedResult[*Expense], error) {
	return s.GetPaged(ctx, pageNumber, pageSize, repository.And(InCategory(categoryID), OwnedBy(userID)), Newest)
}

// GetPagedForUser pages through the user's expenses narrowed by q, newest first.
func (s *Service) GetPagedForUser(ctx context.Context, userID string, pageNumber, pageSize int, q ExpenseQuery) (repository.PagedResult[*Expense], error) {
	filters := []Filter{OwnedBy(userID)}
	if q.CategoryID != nil {
		filters = append(filters, InCategory(*q.CategoryID))
	}
	if q.Currency != "" {
		cur, err := currency.Parse(q.Currency)
		if err != nil {
			return repository.PagedResult[*Expense]{}, err
		}
		filters = append(filters, InCurrency(cur))
	}
	if q.From != nil || q.To != nil {
		filters = append(filters, Between(q.From, q.To))
	}
	return s.GetPaged(ctx, pageNumber, pageSize, repository.And(filters...), Newest)
}
