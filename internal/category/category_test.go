package category_test

import (
	"strings"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category", func() {
	It("applies the default icon and badge color", func() {
		c, err := category.NewCategory("Groceries", "user-1", nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Icon).To(Equal(category.DefaultIcon))
		Expect(c.BadgeColor).To(Equal(category.DefaultBadgeColor))
		Expect(c.IsTemplate).To(BeFalse())
		Expect(c.OwnedBy("user-1")).To(BeTrue())
		Expect(c.OwnedBy("user-2")).To(BeFalse())
	})

	It("rejects a badge color that is not hex", func() {
		_, err := category.NewCategory("Groceries", "user-1", nil, nil, strPtr("blue"))
		Expect(err).To(HaveOccurred())
		Expect(errors.IsValidation(err)).To(BeTrue())
	})

	It("accepts an upper-case hex badge color", func() {
		c, err := category.NewCategory("Groceries", "user-1", nil, nil, strPtr("#ABCDEF"))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.BadgeColor).To(Equal("#ABCDEF"))
	})

	DescribeTable("name validation",
		func(name string, valid bool) {
			_, err := category.NewCategory(name, "user-1", nil, nil, nil)
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(HaveOccurred())
			}
		},
		Entry("blank", "", false),
		Entry("whitespace", "   ", false),
		Entry("one character", "x", true),
		Entry("100 characters", strings.Repeat("a", 100), true),
		Entry("101 characters", strings.Repeat("a", 101), false),
	)

	It("requires an owner", func() {
		_, err := category.NewCategory("Groceries", " ", nil, nil, nil)
		Expect(err).To(HaveOccurred())
	})

	It("limits the description length", func() {
		_, err := category.NewCategory("Groceries", "user-1", strPtr(strings.Repeat("d", 501)), nil, nil)
		Expect(err).To(HaveOccurred())
	})

	It("resets a blank icon to the default", func() {
		c, err := category.NewCategory("Groceries", "user-1", nil, strPtr("cart"), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Icon).To(Equal("cart"))
		c.UpdateIcon(strPtr(""))
		Expect(c.Icon).To(Equal(category.DefaultIcon))
	})

	It("keeps the old badge color when an update fails", func() {
		c, err := category.NewCategory("Groceries", "user-1", nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.UpdateBadgeColor("#12345")).NotTo(Succeed())
		Expect(c.BadgeColor).To(Equal(category.DefaultBadgeColor))
	})

	It("builds ownerless templates that nobody owns", func() {
		t, err := category.NewTemplateCategory("Groceries", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.IsTemplate).To(BeTrue())
		Expect(t.UserID).To(BeEmpty())
		Expect(t.OwnedBy("")).To(BeFalse())
	})

	It("ships the full default catalogue", func() {
		Expect(category.DefaultNames).To(HaveLen(55))
		Expect(category.DefaultNames[0]).To(Equal("Groceries"))
		Expect(category.DefaultNames[len(category.DefaultNames)-1]).To(Equal("Taxes"))
	})
})
