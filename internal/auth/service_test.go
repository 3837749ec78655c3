package auth_test

import (
	"context"
	stderrors "errors"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/auth"
	"github.com/frahmantamala/finance-app/internal/core/database"
	"github.com/frahmantamala/finance-app/internal/user"
	userPostgres "github.com/frahmantamala/finance-app/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type fakeAssigner struct {
	calls []string
	err   error
}

func (f *fakeAssigner) AssignDefaultCategoriesToUser(_ context.Context, userID string) (int, error) {
	f.calls = append(f.calls, userID)
	if f.err != nil {
		return 0, f.err
	}
	return 55, nil
}

var _ = Describe("AuthService", func() {
	var (
		ctx      context.Context
		users    *user.Service
		assigner *fakeAssigner
		service  *auth.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := database.OpenInMemory(nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)

		users = user.NewService(userPostgres.NewRepository(db.SQL), bcrypt.MinCost, quietLogger())
		assigner = &fakeAssigner{}
		tokens := auth.NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
		service = auth.NewService(users, assigner, tokens, quietLogger())
	})

	register := func() *user.User {
		u, err := service.Register(ctx, user.RegisterDTO{Email: "user@example.com", Password: "correct_password"})
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	Describe("Register", func() {
		It("assigns the default categories to the new user", func() {
			u := register()
			Expect(assigner.calls).To(Equal([]string{u.ID}))
		})

		It("keeps the account when assigning defaults fails", func() {
			assigner.err = stderrors.New("db down")
			u := register()
			_, err := users.GetByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("does not assign defaults when registration fails", func() {
			register()
			_, err := service.Register(ctx, user.RegisterDTO{Email: "user@example.com", Password: "correct_password"})
			Expect(err).To(MatchError(errors.ErrEmailTaken))
			Expect(assigner.calls).To(HaveLen(1))
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			register()
		})

		It("returns distinct access and refresh tokens carrying the roles", func() {
			tokens, err := service.Authenticate(ctx, auth.LoginDTO{Email: "user@example.com", Password: "correct_password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(Equal(tokens.RefreshToken))
			Expect(tokens.TokenType).To(Equal("Bearer"))
			Expect(tokens.ExpiresIn).To(BeNumerically("==", 900))

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Email).To(Equal("user@example.com"))
			Expect(claims.Roles).To(ConsistOf(errors.RoleUser))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: "user@example.com", Password: "wrong"})
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
		})

		It("validates the request", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Email: "user@example.com"})
			Expect(errors.IsValidation(err)).To(BeTrue())
		})
	})

	Describe("RefreshTokens", func() {
		It("picks up role changes made since login", func() {
			u := register()
			tokens, err := service.Authenticate(ctx, auth.LoginDTO{Email: "user@example.com", Password: "correct_password"})
			Expect(err).NotTo(HaveOccurred())

			Expect(users.AddUserToRole(ctx, u.ID, errors.RoleAdmin)).To(Succeed())

			refreshed, err := service.RefreshTokens(ctx, tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			claims, err := service.ValidateAccessToken(refreshed.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Roles).To(ContainElement(errors.RoleAdmin))
		})

		It("rejects an access token", func() {
			register()
			tokens, err := service.Authenticate(ctx, auth.LoginDTO{Email: "user@example.com", Password: "correct_password"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.RefreshTokens(ctx, tokens.AccessToken)
			Expect(err).To(MatchError(errors.ErrInvalidToken))
		})

		It("rejects tokens of deleted users", func() {
			u := register()
			tokens, err := service.Authenticate(ctx, auth.LoginDTO{Email: "user@example.com", Password: "correct_password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(users.DeleteUser(ctx, u.ID)).To(Succeed())

			_, err = service.RefreshTokens(ctx, tokens.RefreshToken)
			Expect(err).To(MatchError(errors.ErrInvalidToken))
		})
	})
})
