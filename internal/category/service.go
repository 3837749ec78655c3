package category

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/core/common/validation"
	categoryDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/category"
	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/google/uuid"
)

type (
	Filter = repository.Filter[categoryDatamodel.Category]
	Order  = repository.Order[categoryDatamodel.Category]
)

// RepositoryAPI is the slice of the generic repository the category service uses.
type RepositoryAPI interface {
	GetByID(ctx context.Context, id uuid.UUID, includes ...string) (*categoryDatamodel.Category, error)
	GetAll(ctx context.Context, includes ...string) ([]categoryDatamodel.Category, error)
	Find(ctx context.Context, filter Filter, includes ...string) ([]categoryDatamodel.Category, error)
	FindOrdered(ctx context.Context, filter Filter, orderBy []Order, includes ...string) ([]categoryDatamodel.Category, error)
	GetPaged(ctx context.Context, q repository.PageQuery[categoryDatamodel.Category]) (repository.PagedResult[categoryDatamodel.Category], error)
	Begin() *repository.UnitOfWork[categoryDatamodel.Category]
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

// OwnedBy matches the user's own categories. Templates never match.
func OwnedBy(userID string) Filter {
	return repository.And(
		repository.Eq[categoryDatamodel.Category]("user_id", userID),
		repository.Eq[categoryDatamodel.Category]("is_template", false),
	)
}

func Templates() Filter {
	return repository.Eq[categoryDatamodel.Category]("is_template", true)
}

// NameContains is a case-insensitive substring match on the name.
func NameContains(term string) Filter {
	return repository.Where[categoryDatamodel.Category]("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
}

var byName = []Order{repository.OrderBy[categoryDatamodel.Category]("name", false)}

// GetByID returns the category when it exists and belongs to userID. Missing
// and foreign categories both yield ErrCategoryNotFound.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID string) (*Category, error) {
	row, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) loadOwned(ctx context.Context, id uuid.UUID, userID string) (*categoryDatamodel.Category, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.ErrCategoryNotFound
		}
		s.logger.Error("failed to get category", "category_id", id, "error", err)
		return nil, err
	}
	if !FromDataModel(row).OwnedBy(userID) {
		s.logger.Warn("category ownership mismatch", "category_id", id, "user_id", userID)
		return nil, errors.ErrCategoryNotFound
	}
	return row, nil
}

func (s *Service) GetAll(ctx context.Context, userID string) ([]*Category, error) {
	rows, err := s.repo.FindOrdered(ctx, OwnedBy(userID), byName)
	if err != nil {
		s.logger.Error("failed to list categories", "user_id", userID, "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// GetPaged pages through the user's categories; filter is conjoined with the owner filter.
func (s *Service) GetPaged(ctx context.Context, pageNumber, pageSize int, userID string, filter Filter, orderBy []Order) (repository.PagedResult[*Category], error) {
	res, err := s.repo.GetPaged(ctx, repository.PageQuery[categoryDatamodel.Category]{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Filter:     repository.And(OwnedBy(userID), filter),
		OrderBy:    orderBy,
	})
	if err != nil {
		s.logger.Error("failed to page categories", "user_id", userID, "error", err)
		return repository.PagedResult[*Category]{}, err
	}
	return repository.MapPaged(res, func(row categoryDatamodel.Category) *Category {
		return FromDataModel(&row)
	}), nil
}

// GetCategories lists every category in the system for administrators and the caller's own otherwise.
func (s *Service) GetCategories(ctx context.Context, userID string, isAdmin bool) ([]*Category, error) {
	if !isAdmin {
		return s.GetAll(ctx, userID)
	}
	rows, err := s.repo.FindOrdered(ctx, nil, byName)
	if err != nil {
		s.logger.Error("failed to list all categories", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Create(ctx context.Context, userID string, req CreateCategoryDTO) (*Category, error) {
	c, err := NewCategory(req.Name, userID, req.Description, req.Icon, req.BadgeColor)
	if err != nil {
		return nil, err
	}

	row := ToDataModel(c)
	uow := s.repo.Begin()
	uow.Add(row)
	if err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error("failed to create category", "user_id", userID, "error", err)
		return nil, err
	}
	c.syncBack(row)

	s.logger.Info("category created", "category_id", c.ID, "user_id", userID)
	return c, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, userID string, req UpdateCategoryDTO) (*Category, error) {
	row, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	c := FromDataModel(row)
	if err := c.UpdateName(req.Name); err != nil {
		return nil, err
	}
	if err := c.UpdateDescription(req.Description); err != nil {
		return nil, err
	}
	c.UpdateIcon(req.Icon)
	if req.BadgeColor != nil && strings.TrimSpace(*req.BadgeColor) != "" {
		if err := c.UpdateBadgeColor(*req.BadgeColor); err != nil {
			return nil, err
		}
	}

	updated := ToDataModel(c)
	uow := s.repo.Begin()
	uow.Update(updated)
	if err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error("failed to update category", "category_id", id, "error", err)
		return nil, err
	}
	c.syncBack(updated)
	return c, nil
}

// Delete soft deletes an owned category. Its expenses keep pointing at it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	row, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	uow := s.repo.Begin()
	uow.SoftDelete(row)
	if err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error("failed to delete category", "category_id", id, "error", err)
		return err
	}
	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}

// AssignDefaultCategoriesToUser copies every template whose name the user does
// not already have. Repeated calls add nothing. Returns the number created.
func (s *Service) AssignDefaultCategoriesToUser(ctx context.Context, userID string) (int, error) {
	v := validation.NewValidator()
	v.Field("user_id", userID).Required()
	if err := v.Validate(); err != nil {
		return 0, err
	}

	existing, err := s.repo.Find(ctx, OwnedBy(userID))
	if err != nil {
		s.logger.Error("failed to load user categories", "user_id", userID, "error", err)
		return 0, err
	}
	templates, err := s.repo.Find(ctx, Templates())
	if err != nil {
		s.logger.Error("failed to load template categories", "error", err)
		return 0, err
	}

	have := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		have[c.Name] = struct{}{}
	}

	uow := s.repo.Begin()
	for _, t := range templates {
		if _, ok := have[t.Name]; ok {
			continue
		}
		c, err := NewCategory(t.Name, userID, t.Description, nil, nil)
		if err != nil {
			return 0, err
		}
		uow.Add(ToDataModel(c))
		have[t.Name] = struct{}{}
	}

	created := uow.Pending()
	if created == 0 {
		return 0, nil
	}
	if err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error("failed to assign default categories", "user_id", userID, "error", err)
		return 0, err
	}

	s.logger.Info("default categories assigned", "user_id", userID, "count", created)
	return created, nil
}

// SeedTemplates creates the named templates that do not exist yet.
func (s *Service) SeedTemplates(ctx context.Context, names []string) (int, error) {
	existing, err := s.repo.Find(ctx, Templates())
	if err != nil {
		s.logger.Error("failed to load template categories", "error", err)
		return 0, err
	}
	have := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		have[c.Name] = struct{}{}
	}

	uow := s.repo.Begin()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := have[name]; ok {
			continue
		}
		c, err := NewTemplateCategory(name, nil)
		if err != nil {
			return 0, err
		}
		uow.Add(ToDataModel(c))
		have[name] = struct{}{}
	}

	created := uow.Pending()
	if created == 0 {
		return 0, nil
	}
	if err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error("failed to seed template categories", "error", err)
		return 0, err
	}
	s.logger.Info("template categories seeded", "count", created)
	return created, nil
}
