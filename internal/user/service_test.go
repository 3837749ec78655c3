package user_test

import (
	"context"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/core/database"
	"github.com/frahmantamala/finance-app/internal/user"
	userPostgres "github.com/frahmantamala/finance-app/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("User Service", func() {
	var (
		ctx     context.Context
		service *user.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := database.OpenInMemory(nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)
		service = user.NewService(userPostgres.NewRepository(db.SQL), bcrypt.MinCost, quietLogger())
	})

	register := func(email string) *user.User {
		u, err := service.Register(ctx, user.RegisterDTO{Email: email, Password: "s3cretpass", FirstName: "Ada"})
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	Describe("Register", func() {
		It("stores a lower-cased email in the User role", func() {
			u := register("Ada@Example.com")
			Expect(u.Email).To(Equal("ada@example.com"))
			Expect(u.Roles).To(ConsistOf(errors.RoleUser))
			Expect(u.PasswordHash).NotTo(Equal("s3cretpass"))

			got, err := service.GetByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Email).To(Equal("ada@example.com"))
			Expect(got.Roles).To(ConsistOf(errors.RoleUser))
		})

		It("rejects a taken email regardless of case", func() {
			register("ada@example.com")
			_, err := service.Register(ctx, user.RegisterDTO{Email: "ADA@example.com", Password: "anotherpass"})
			Expect(err).To(MatchError(errors.ErrEmailTaken))
		})

		DescribeTable("rejects invalid input",
			func(email, password string) {
				_, err := service.Register(ctx, user.RegisterDTO{Email: email, Password: password})
				Expect(errors.IsValidation(err)).To(BeTrue())
			},
			Entry("malformed email", "not-an-email", "s3cretpass"),
			Entry("blank email", "", "s3cretpass"),
			Entry("short password", "ada@example.com", "short"),
		)
	})

	Describe("VerifyCredentials", func() {
		BeforeEach(func() {
			register("ada@example.com")
		})

		It("accepts the right password", func() {
			u, err := service.VerifyCredentials(ctx, "ada@example.com", "s3cretpass")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Roles).To(ConsistOf(errors.RoleUser))
		})

		It("answers the same error for a wrong password and an unknown email", func() {
			_, err := service.VerifyCredentials(ctx, "ada@example.com", "wrong-pass")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
			_, err = service.VerifyCredentials(ctx, "bob@example.com", "s3cretpass")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
		})
	})

	Describe("roles", func() {
		It("adds and removes roles idempotently", func() {
			u := register("ada@example.com")

			Expect(service.AddUserToRole(ctx, u.ID, errors.RoleAdmin)).To(Succeed())
			Expect(service.AddUserToRole(ctx, u.ID, errors.RoleAdmin)).To(Succeed())
			got, err := service.GetByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Roles).To(ConsistOf(errors.RoleAdmin, errors.RoleUser))
			Expect(got.IsAdmin()).To(BeTrue())

			Expect(service.RemoveUserFromRole(ctx, u.ID, errors.RoleAdmin)).To(Succeed())
			Expect(service.RemoveUserFromRole(ctx, u.ID, errors.RoleAdmin)).To(Succeed())
			got, err = service.GetByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Roles).To(ConsistOf(errors.RoleUser))
		})

		It("ignores unknown users", func() {
			Expect(service.AddUserToRole(ctx, "missing", errors.RoleAdmin)).To(Succeed())
			Expect(service.RemoveUserFromRole(ctx, "missing", errors.RoleAdmin)).To(Succeed())
		})

		It("rejects unknown roles", func() {
			u := register("ada@example.com")
			err := service.AddUserToRole(ctx, u.ID, "Owner")
			Expect(errors.IsValidation(err)).To(BeTrue())
		})
	})

	It("lists every user with a role display", func() {
		a := register("ada@example.com")
		register("bob@example.com")
		Expect(service.AddUserToRole(ctx, a.ID, errors.RoleAdmin)).To(Succeed())

		users, err := service.GetAllUsers(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(users).To(HaveLen(2))
		Expect(users[0].Email).To(Equal("ada@example.com"))
		Expect(users[0].RoleDisplay()).To(Equal("Admin, User"))
		Expect(users[1].RoleDisplay()).To(Equal("User"))
	})

	It("deletes a user and tolerates unknown ids", func() {
		u := register("ada@example.com")
		Expect(service.DeleteUser(ctx, u.ID)).To(Succeed())
		_, err := service.GetByID(ctx, u.ID)
		Expect(err).To(MatchError(errors.ErrUserNotFound))
		Expect(service.DeleteUser(ctx, u.ID)).To(Succeed())
	})

	It("updates the profile", func() {
		u := register("ada@example.com")
		path := "avatars/ada.png"
		got, err := service.UpdateProfile(ctx, u.ID, user.UpdateProfileDTO{FirstName: " Ada ", LastName: "Lovelace", ProfileImagePath: &path})
		Expect(err).NotTo(HaveOccurred())
		Expect(got.FirstName).To(Equal("Ada"))
		Expect(got.LastName).To(Equal("Lovelace"))
		Expect(*got.ProfileImagePath).To(Equal(path))

		_, err = service.UpdateProfile(ctx, "missing", user.UpdateProfileDTO{FirstName: "X"})
		Expect(err).To(MatchError(errors.ErrUserNotFound))
	})

	Describe("subscription plans", func() {
		It("starts new accounts on Free", func() {
			before := time.Now().Add(-time.Second)
			u := register("ada@example.com")
			Expect(u.Plan).To(Equal(user.PlanFree))

			sub, err := service.GetSubscription(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(sub.Plan).To(Equal(user.PlanFree))
			Expect(sub.AssignedAt).To(BeTemporally(">", before))
		})

		It("upgrades to a paid plan and stamps the assignment time", func() {
			u := register("ada@example.com")
			start, err := service.GetSubscription(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())

			sub, changed, err := service.UpgradePlan(ctx, u.ID, "pro")
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeTrue())
			Expect(sub.Plan).To(Equal(user.PlanPro))
			Expect(sub.AssignedAt).To(BeTemporally(">=", start.AssignedAt))

			got, err := service.GetByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Plan).To(Equal(user.PlanPro))
			Expect(got.ToResponse().Plan).To(Equal("Pro"))
		})

		It("leaves the current plan and its timestamp alone", func() {
			u := register("ada@example.com")
			first, _, err := service.UpgradePlan(ctx, u.ID, "Premium")
			Expect(err).NotTo(HaveOccurred())

			again, changed, err := service.UpgradePlan(ctx, u.ID, "PREMIUM")
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeFalse())
			Expect(again.AssignedAt.Equal(first.AssignedAt)).To(BeTrue())
		})

		DescribeTable("rejects plans that cannot be chosen",
			func(plan string) {
				u := register("ada@example.com")
				_, _, err := service.UpgradePlan(ctx, u.ID, plan)
				Expect(errors.IsValidation(err)).To(BeTrue())

				sub, err := service.GetSubscription(ctx, u.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(sub.Plan).To(Equal(user.PlanFree))
			},
			Entry("unknown plan", "Gold"),
			Entry("Free as an upgrade", "free"),
			Entry("blank", ""),
		)

		It("reports unknown users", func() {
			_, _, err := service.UpgradePlan(ctx, "missing", "Pro")
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})
	})

	It("promotes an existing account in EnsureAdmin and creates one otherwise", func() {
		admin, err := service.EnsureAdmin(ctx, "admin@example.com", "adminpass1")
		Expect(err).NotTo(HaveOccurred())
		Expect(admin.IsAdmin()).To(BeTrue())

		again, err := service.EnsureAdmin(ctx, "admin@example.com", "ignored-pass")
		Expect(err).NotTo(HaveOccurred())
		Expect(again.ID).To(Equal(admin.ID))

		_, err = service.VerifyCredentials(ctx, "admin@example.com", "adminpass1")
		Expect(err).NotTo(HaveOccurred())
	})
})
