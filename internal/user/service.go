package user

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	MaxNameLength     = 100
)

type RepositoryAPI interface {
	FindByID(ctx context.Context, id string) (*userDatamodel.User, error)
	FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	ListAll(ctx context.Context) ([]userDatamodel.User, error)
	Roles(ctx context.Context, userID string) ([]string, error)
	AllRoles(ctx context.Context) (map[string][]string, error)
	Create(ctx context.Context, u *userDatamodel.User, roles ...string) error
	AddToRole(ctx context.Context, userID, role string) error
	RemoveFromRole(ctx context.Context, userID, role string) error
	Delete(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID, firstName, lastName string, profileImagePath *string) error
	UpdatePlan(ctx context.Context, userID, plan string, assignedAt time.Time) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) GetByID(ctx context.Context, userID string) (*User, error) {
	row, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if !stderrors.Is(err, errors.ErrUserNotFound) {
			s.logger.Error("failed to get user", "user_id", userID, "error", err)
		}
		return nil, err
	}
	roles, err := s.repo.Roles(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get user roles", "user_id", userID, "error", err)
		return nil, err
	}
	return FromDataModel(row, roles), nil
}

func (s *Service) GetAllUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	roles, err := s.repo.AllRoles(ctx)
	if err != nil {
		s.logger.Error("failed to list user roles", "error", err)
		return nil, err
	}
	users := make([]*User, len(rows))
	for i := range rows {
		users[i] = FromDataModel(&rows[i], roles[rows[i].ID])
	}
	return users, nil
}

// DeleteUser is a no-op for unknown ids.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		s.logger.Error("failed to delete user", "user_id", userID, "error", err)
		return err
	}
	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

// AddUserToRole is idempotent; unknown users are ignored.
func (s *Service) AddUserToRole(ctx context.Context, userID, role string) error {
	if err := validateRole(role); err != nil {
		return err
	}
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if u.HasRole(role) {
		return nil
	}
	if err := s.repo.AddToRole(ctx, userID, role); err != nil {
		s.logger.Error("failed to add role", "user_id", userID, "role", role, "error", err)
		return err
	}
	s.logger.Info("role added", "user_id", userID, "role", role)
	return nil
}

// RemoveUserFromRole is idempotent; unknown users are ignored.
func (s *Service) RemoveUserFromRole(ctx context.Context, userID, role string) error {
	if err := validateRole(role); err != nil {
		return err
	}
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if !u.HasRole(role) {
		return nil
	}
	if err := s.repo.RemoveFromRole(ctx, userID, role); err != nil {
		s.logger.Error("failed to remove role", "user_id", userID, "role", role, "error", err)
		return err
	}
	s.logger.Info("role removed", "user_id", userID, "role", role)
	return nil
}

func validateRole(role string) error {
	if !IsKnownRole(role) {
		return errors.NewValidationFieldError("role", "unknown role "+role, errors.ErrCodeValidationFailed)
	}
	return nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileDTO) (*User, error) {
	v := validation.NewValidator()
	v.Field("first_name", req.FirstName).MaxLength(MaxNameLength)
	v.Field("last_name", req.LastName).MaxLength(MaxNameLength)
	v.Field("profile_image_path", req.ProfileImagePath).MaxLength(500)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfile(ctx, userID, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), req.ProfileImagePath); err != nil {
		if !stderrors.Is(err, errors.ErrUserNotFound) {
			s.logger.Error("failed to update profile", "user_id", userID, "error", err)
		}
		return nil, err
	}
	return s.GetByID(ctx, userID)
}

// Register creates an account in the User role. Emails are stored lower-cased.
func (s *Service) Register(ctx context.Context, req RegisterDTO) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	v := validation.NewValidator()
	v.Field("email", email).Required().MaxLength(256).Email()
	v.Field("password", req.Password).Required().MinLength(MinPasswordLength)
	v.Field("first_name", req.FirstName).MaxLength(MaxNameLength)
	v.Field("last_name", req.LastName).MaxLength(MaxNameLength)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, errors.ErrEmailTaken
	} else if !stderrors.Is(err, errors.ErrUserNotFound) {
		s.logger.Error("failed to look up email", "error", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	now := s.now()
	row := &userDatamodel.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   string(hash),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Plan:           string(PlanFree),
		PlanAssignedAt: now,
		CreatedAt:      now,
	}
	if err := s.repo.Create(ctx, row, errors.RoleUser); err != nil {
		s.logger.Error("failed to create user", "email", email, "error", err)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", row.ID)
	return FromDataModel(row, []string{errors.RoleUser}), nil
}

// VerifyCredentials returns the user when password matches. Unknown emails and
// wrong passwords yield the same error.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*User, error) {
	row, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up credentials", "error", err)
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	roles, err := s.repo.Roles(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row, roles), nil
}

// EnsureAdmin makes sure an account with email exists and holds the Admin role.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (*User, error) {
	row, err := s.repo.FindByEmail(ctx, email)
	var u *User
	switch {
	case err == nil:
		u = FromDataModel(row, nil)
	case stderrors.Is(err, errors.ErrUserNotFound):
		u, err = s.Register(ctx, RegisterDTO{Email: email, Password: password, FirstName: "Admin"})
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	if err := s.AddUserToRole(ctx, u.ID, errors.RoleAdmin); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, u.ID)
}
