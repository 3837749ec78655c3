package rest_test

import (
	"context"
	stderrors "errors"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/finance-app/internal/auth"
	"github.com/frahmantamala/finance-app/internal/budget"
	"github.com/frahmantamala/finance-app/internal/category"
	"github.com/frahmantamala/finance-app/internal/dashboard"
	"github.com/frahmantamala/finance-app/internal/expense"
	"github.com/frahmantamala/finance-app/internal/transport"
	"github.com/frahmantamala/finance-app/internal/transport/rest"
	"github.com/frahmantamala/finance-app/internal/transport/swagger"
	"github.com/frahmantamala/finance-app/internal/user"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

var _ = Describe("Router", func() {
	var (
		router *chi.Mux
		pinger *stubPinger
	)

	BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		base := &transport.BaseHandler{Logger: lg}
		pinger = &stubPinger{}

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			Health:    rest.NewHealthHandler(base, pinger, "sqlite"),
			Auth:      auth.NewHandler(base, nil),
			RBAC:      auth.NewRBACAuthorization(base),
			User:      user.NewHandler(base, nil),
			Category:  category.NewHandler(base, nil),
			Expense:   expense.NewHandler(base, nil),
			Budget:    budget.NewHandler(base, nil),
			Dashboard: dashboard.NewHandler(base, nil),
		}, "*", lg)
	})

	It("documents every mounted API route", func() {
		doc, err := swagger.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())

		var missing []string
		walk := func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if !strings.HasPrefix(route, "/api/v1/") {
				return nil
			}
			path := strings.TrimSuffix(strings.TrimPrefix(route, "/api/v1"), "/")
			item := doc.Paths.Value(path)
			if item == nil || item.GetOperation(method) == nil {
				missing = append(missing, method+" "+path)
			}
			return nil
		}
		Expect(chi.Walk(router, walk)).To(Succeed())
		Expect(missing).To(BeEmpty())
	})

	It("serves the OpenAPI document", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yml", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(HavePrefix("openapi: 3.0.3"))
	})

	It("reports an unreachable database as unhealthy", func() {
		pinger.err = stderrors.New("connection refused")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

		var resp rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Status).To(Equal(rest.HealthUnhealthy))
		Expect(resp.Components).To(HaveKey("sqlite"))
	})

	It("rejects protected routes without a token", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
