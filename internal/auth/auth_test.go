package auth_test

import (
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("JWTTokenGenerator", func() {
	var (
		gen   *auth.JWTTokenGenerator
		now   time.Time
		alice *errors.Principal
	)

	BeforeEach(func() {
		now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		gen = auth.NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
		gen.Now = func() time.Time { return now }
		alice = &errors.Principal{UserID: "alice", Email: "alice@example.com", Roles: []string{errors.RoleUser}}
	})

	It("round-trips the caller through an access token", func() {
		token, err := gen.GenerateAccessToken(alice)
		Expect(err).NotTo(HaveOccurred())

		claims, err := gen.ValidateAccessToken(token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.Principal()).To(Equal(alice))
		Expect(claims.TokenType).To(Equal(auth.TokenTypeAccess))
	})

	It("does not accept a refresh token as an access token", func() {
		refresh, err := gen.GenerateRefreshToken(alice)
		Expect(err).NotTo(HaveOccurred())

		_, err = gen.ValidateAccessToken(refresh)
		Expect(err).To(MatchError(errors.ErrInvalidToken))

		claims, err := gen.ValidateRefreshToken(refresh)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.UserID).To(Equal("alice"))
	})

	It("reports expiry separately from tampering", func() {
		token, err := gen.GenerateAccessToken(alice)
		Expect(err).NotTo(HaveOccurred())

		now = now.Add(16 * time.Minute)
		_, err = gen.ValidateAccessToken(token)
		Expect(err).To(MatchError(errors.ErrTokenExpired))

		_, err = gen.ValidateAccessToken(token + "x")
		Expect(err).To(MatchError(errors.ErrInvalidToken))
	})

	It("rejects tokens signed with another secret", func() {
		other := auth.NewJWTTokenGenerator("another-access-secret", "another-refresh-secret", time.Minute, time.Hour)
		token, err := other.GenerateAccessToken(alice)
		Expect(err).NotTo(HaveOccurred())

		_, err = gen.ValidateAccessToken(token)
		Expect(err).To(MatchError(errors.ErrInvalidToken))
	})
})
