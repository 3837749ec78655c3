package auth

import (
	"context"
	stderrors "errors"
	"log/slog"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/user"
)

type UserAuthenticator interface {
	VerifyCredentials(ctx context.Context, email, password string) (*user.User, error)
	GetByID(ctx context.Context, userID string) (*user.User, error)
	Register(ctx context.Context, req user.RegisterDTO) (*user.User, error)
}

type CategoryAssigner interface {
	AssignDefaultCategoriesToUser(ctx context.Context, userID string) (int, error)
}

type Service struct {
	users      UserAuthenticator
	categories CategoryAssigner
	tokens     TokenGeneratorAPI
	logger     *slog.Logger
}

func NewService(users UserAuthenticator, categories CategoryAssigner, tokens TokenGeneratorAPI, logger *slog.Logger) *Service {
	return &Service{
		users:      users,
		categories: categories,
		tokens:     tokens,
		logger:     logger,
	}
}

// Register creates the account and gives it the default categories. A failed
// category assignment is logged and does not undo the registration; the user
// can repeat it through the defaults endpoint.
func (s *Service) Register(ctx context.Context, req user.RegisterDTO) (*user.User, error) {
	u, err := s.users.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	created, err := s.categories.AssignDefaultCategoriesToUser(ctx, u.ID)
	if err != nil {
		s.logger.Error("failed to assign default categories", "user_id", u.ID, "error", err)
		return u, nil
	}
	s.logger.Info("default categories assigned", "user_id", u.ID, "created", created)
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}
	u, err := s.users.VerifyCredentials(ctx, dto.Email, dto.Password)
	if err != nil {
		return AuthTokens{}, err
	}
	return s.issue(u.Principal())
}

// RefreshTokens reloads the user so role changes are picked up on refresh.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return AuthTokens{}, errors.ErrInvalidToken
		}
		return AuthTokens{}, err
	}
	return s.issue(u.Principal())
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) issue(p *errors.Principal) (AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(p)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to sign access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(p)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to sign refresh token", err)
	}
	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}
