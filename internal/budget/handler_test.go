package budget_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/budget"
	"github.com/frahmantamala/finance-app/internal/core/database"
	budgetDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/budget"
	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/frahmantamala/finance-app/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Budget Handler Integration", func() {
	var router chi.Router

	BeforeEach(func() {
		db, err := database.OpenInMemory(nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)

		service := budget.NewService(repository.New[budgetDatamodel.Budget](db.Gorm), quietLogger())
		handler := budget.NewHandler(&transport.BaseHandler{Logger: quietLogger()}, service)
		handler.Now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }

		caller := &errors.Principal{UserID: "alice"}
		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(errors.ContextWithPrincipal(r.Context(), caller)))
			})
		})
		router.Get("/budgets/current", handler.GetCurrentBudget)
		router.Get("/budgets/{year}/{month}", handler.GetBudget)
		router.Put("/budgets/{year}/{month}", handler.SetBudget)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
		return w
	}

	It("offers the default currency when no budget is set", func() {
		w := do(http.MethodGet, "/budgets/current", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp budget.MonthBudgetResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Month).To(Equal(3))
		Expect(resp.Year).To(Equal(2026))
		Expect(resp.Budget).To(BeNil())
		Expect(resp.DefaultCurrency).To(Equal("TZS"))
	})

	It("sets a budget in the default currency and reads it back", func() {
		w := do(http.MethodPut, "/budgets/2026/3", `{"amount":"100"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/budgets/current", "")
		var resp budget.MonthBudgetResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Budget).NotTo(BeNil())
		Expect(resp.Budget.Amount).To(Equal("100.00"))
		Expect(resp.Budget.Currency).To(Equal("TZS"))
	})

	It("rejects invalid input", func() {
		Expect(do(http.MethodPut, "/budgets/2026/3", `{"amount":"0"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPut, "/budgets/2026/13", `{"amount":"10"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPut, "/budgets/2026/3", `{"amount":"10","currency":"ABC"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodGet, "/budgets/year/3", "").Code).To(Equal(http.StatusBadRequest))
	})
})
