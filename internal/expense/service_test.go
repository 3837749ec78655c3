package expense_test

import (
	"context"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/category"
	"github.com/frahmantamala/finance-app/internal/core/database"
	categoryDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/frahmantamala/finance-app/internal/currency"
	"github.com/frahmantamala/finance-app/internal/expense"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("Service", func() {
	var (
		ctx        context.Context
		db         *database.DB
		categories *category.Service
		service    *expense.Service
		groceries  *category.Category
		day        time.Time
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = database.OpenInMemory(nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)

		categories = category.NewService(repository.New[categoryDatamodel.Category](db.Gorm), quietLogger())
		service = expense.NewService(repository.New[expenseDatamodel.Expense](db.Gorm), categories, quietLogger())

		groceries, err = categories.Create(ctx, "alice", category.CreateCategoryDTO{Name: "Groceries"})
		Expect(err).NotTo(HaveOccurred())
		day = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	})

	create := func(userID string, categoryID uuid.UUID, amount string, date time.Time) *expense.Expense {
		e, err := service.Create(ctx, userID, expense.CreateExpenseDTO{
			Amount:      decimal.RequireFromString(amount),
			Currency:    "USD",
			ExpenseDate: date,
			CategoryID:  categoryID,
		})
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	It("creates an expense in the caller's category and reads it back with the category", func() {
		e, err := service.Create(ctx, "alice", expense.CreateExpenseDTO{
			Amount:      decimal.RequireFromString("45.50"),
			Currency:    "usd",
			ExpenseDate: day,
			CategoryID:  groceries.ID,
			Description: strPtr("weekly shop"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Currency).To(Equal(currency.USD))

		got, err := service.GetByID(ctx, e.ID, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Amount.Equal(decimal.RequireFromString("45.50"))).To(BeTrue())
		Expect(got.ExpenseDate.Equal(day)).To(BeTrue())
		Expect(got.Category).NotTo(BeNil())
		Expect(got.Category.Name).To(Equal("Groceries"))
	})

	It("reads the expense date back with the offset it was recorded at", func() {
		lateNight := time.Date(2026, 3, 31, 23, 30, 0, 0, time.FixedZone("EAT", 3*60*60))
		e := create("alice", groceries.ID, "8.00", lateNight)

		var row expenseDatamodel.Expense
		Expect(db.Gorm.Take(&row, "id = ?", e.ID).Error).To(Succeed())
		Expect(row.ExpenseOffset).To(Equal(180))
		Expect(row.ExpenseDate.Equal(lateNight)).To(BeTrue())

		got, err := service.GetByID(ctx, e.ID, "alice")
		Expect(err).NotTo(HaveOccurred())
		_, offset := got.ExpenseDate.Zone()
		Expect(offset).To(Equal(3 * 60 * 60))
		Expect(got.ExpenseDate.Month()).To(Equal(time.March))
		Expect(got.ExpenseDate.Day()).To(Equal(31))
	})

	It("refuses a category owned by someone else", func() {
		_, err := service.Create(ctx, "bob", expense.CreateExpenseDTO{
			Amount:      decimal.NewFromInt(5),
			Currency:    "USD",
			ExpenseDate: day,
			CategoryID:  groceries.ID,
		})
		Expect(errors.IsValidation(err)).To(BeTrue())
		appErr, _ := errors.IsAppError(err)
		Expect(appErr.Error()).To(ContainSubstring("category"))
	})

	It("rejects zero or sub-cent amounts and unknown currencies before touching the store", func() {
		_, err := service.Create(ctx, "alice", expense.CreateExpenseDTO{Amount: decimal.Zero, Currency: "USD", ExpenseDate: day, CategoryID: groceries.ID})
		Expect(errors.IsValidation(err)).To(BeTrue())

		_, err = service.Create(ctx, "alice", expense.CreateExpenseDTO{Amount: decimal.NewFromInt(1), Currency: "DOGE", ExpenseDate: day, CategoryID: groceries.ID})
		Expect(errors.IsValidation(err)).To(BeTrue())

		_, err = service.Create(ctx, "alice", expense.CreateExpenseDTO{Amount: decimal.RequireFromString("0.001"), Currency: "USD", ExpenseDate: day, CategoryID: groceries.ID})
		Expect(errors.IsValidation(err)).To(BeTrue())

		all, err := service.ListForUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(BeEmpty())
	})

	Describe("ownership", func() {
		var e *expense.Expense

		BeforeEach(func() {
			e = create("alice", groceries.ID, "12.00", day)
		})

		It("hides the expense from other users", func() {
			_, err := service.GetByID(ctx, e.ID, "bob")
			Expect(err).To(MatchError(errors.ErrExpenseNotFound))

			_, err = service.Update(ctx, e.ID, "bob", expense.UpdateExpenseDTO{Amount: decimal.NewFromInt(1), Currency: "USD", ExpenseDate: day, CategoryID: groceries.ID})
			Expect(err).To(MatchError(errors.ErrExpenseNotFound))

			Expect(service.SoftDelete(ctx, e.ID, "bob")).To(MatchError(errors.ErrExpenseNotFound))
		})

		It("scopes the by-category listing to the caller", func() {
			own, err := service.ListByCategory(ctx, groceries.ID, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(own).To(HaveLen(1))

			other, err := service.ListByCategory(ctx, groceries.ID, "bob")
			Expect(err).NotTo(HaveOccurred())
			Expect(other).To(BeEmpty())
		})
	})

	It("updates every field and stamps the update time", func() {
		e := create("alice", groceries.ID, "12.00", day)
		fuel, err := categories.Create(ctx, "alice", category.CreateCategoryDTO{Name: "Fuel / Gas"})
		Expect(err).NotTo(HaveOccurred())

		updated, err := service.Update(ctx, e.ID, "alice", expense.UpdateExpenseDTO{
			Amount:      decimal.RequireFromString("30.25"),
			Currency:    "EUR",
			ExpenseDate: day.Add(24 * time.Hour),
			CategoryID:  fuel.ID,
			ReceiptPath: strPtr("receipts/fuel.jpg"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.UpdatedAt).NotTo(BeNil())
		Expect(updated.Category.Name).To(Equal("Fuel / Gas"))

		got, err := service.GetByID(ctx, e.ID, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Amount.Equal(decimal.RequireFromString("30.25"))).To(BeTrue())
		Expect(got.Currency).To(Equal(currency.EUR))
		Expect(got.CategoryID).To(Equal(fuel.ID))
		Expect(*got.ReceiptPath).To(Equal("receipts/fuel.jpg"))
	})

	It("soft deletes and keeps the row", func() {
		e := create("alice", groceries.ID, "12.00", day)
		Expect(service.SoftDelete(ctx, e.ID, "alice")).To(Succeed())

		_, err := service.GetByID(ctx, e.ID, "alice")
		Expect(err).To(MatchError(errors.ErrExpenseNotFound))

		var n int64
		Expect(db.Gorm.Model(&expenseDatamodel.Expense{}).Where("id = ?", e.ID).Count(&n).Error).To(Succeed())
		Expect(n).To(BeNumerically("==", 1))
	})

	Describe("paging", func() {
		BeforeEach(func() {
			for i := 0; i < 7; i++ {
				create("alice", groceries.ID, "1.00", day.AddDate(0, 0, i))
			}
			other, err := categories.Create(ctx, "bob", category.CreateCategoryDTO{Name: "Groceries"})
			Expect(err).NotTo(HaveOccurred())
			create("bob", other.ID, "1.00", day)
		})

		It("orders a category's expenses newest first and counts only the caller's", func() {
			page, err := service.GetByCategoryID(ctx, groceries.ID, "alice", 1, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.TotalItems).To(BeNumerically("==", 7))
			Expect(page.Items).To(HaveLen(3))
			Expect(page.Items[0].ExpenseDate.Equal(day.AddDate(0, 0, 6))).To(BeTrue())
			Expect(page.Items[0].Category).NotTo(BeNil())

			last, err := service.GetByCategoryID(ctx, groceries.ID, "alice", 3, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(last.Items).To(HaveLen(1))
			Expect(last.Items[0].ExpenseDate.Equal(day)).To(BeTrue())
		})

		It("narrows by date range", func() {
			from := day.AddDate(0, 0, 2)
			to := day.AddDate(0, 0, 5)
			page, err := service.GetPagedForUser(ctx, "alice", 1, 10, expense.ExpenseQuery{From: &from, To: &to})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.TotalItems).To(BeNumerically("==", 3))
		})

		It("narrows by currency", func() {
			page, err := service.GetPagedForUser(ctx, "alice", 1, 10, expense.ExpenseQuery{Currency: "EUR"})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.TotalItems).To(BeZero())

			_, err = service.GetPagedForUser(ctx, "alice", 1, 10, expense.ExpenseQuery{Currency: "nope"})
			Expect(errors.IsValidation(err)).To(BeTrue())
		})

		It("lists everything for administrators", func() {
			all, err := service.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(8))
		})

		It("pages with a caller filter", func() {
			page, err := service.GetPaged(ctx, 1, 100, expense.OwnedBy("bob"), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
		})
	})

	It("cannot hard delete a category that still has expenses", func() {
		create("alice", groceries.ID, "12.00", day)
		categoryRepo := repository.New[categoryDatamodel.Category](db.Gorm)
		row, err := categoryRepo.GetByID(ctx, groceries.ID)
		Expect(err).NotTo(HaveOccurred())

		uow := categoryRepo.Begin()
		uow.Remove(row)
		Expect(uow.SaveChanges(ctx)).NotTo(Succeed())
	})
})
