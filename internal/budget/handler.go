package budget

import (
	"context"
	"net/http"
	"strconv"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/core/common/validation"
	"github.com/frahmantamala/finance-app/internal/currency"
	"github.com/frahmantamala/finance-app/internal/transport"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

type ServiceAPI interface {
	GetBudgetForMonth(ctx context.Context, userID string, month, year int) (*Budget, error)
	SetBudget(ctx context.Context, userID string, month, year int, amount decimal.Decimal, cur currency.Currency) (*Budget, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Now     func() time.Time
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Now:         time.Now,
	}
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	year, yErr := strconv.Atoi(chi.URLParam(r, "year"))
	month, mErr := strconv.Atoi(chi.URLParam(r, "month"))
	if yErr != nil || mErr != nil {
		h.WriteAppError(w, errors.NewValidationError("month and year must be numbers", errors.ErrCodeValidationFailed))
		return 0, 0, false
	}
	return month, year, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, userID string, month, year int) {
	b, err := h.Service.GetBudgetForMonth(r.Context(), userID, month, year)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	resp := MonthBudgetResponse{Month: month, Year: year, DefaultCurrency: DefaultCurrency.String()}
	if b != nil {
		br := b.ToResponse()
		resp.Budget = &br
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCurrentBudget(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	now := h.Now()
	h.respond(w, r, p.UserID, int(now.Month()), now.Year())
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	month, year, ok := h.period(w, r)
	if !ok {
		return
	}
	h.respond(w, r, p.UserID, month, year)
}

// SetBudget upserts the period's budget. Requests must carry a positive amount.
func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	month, year, ok := h.period(w, r)
	if !ok {
		return
	}
	var req SetBudgetDTO
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	v := validation.NewValidator()
	v.Field("amount", req.Amount).PositiveDecimal(errors.ErrCodeInvalidAmount)
	if appErr := v.Validate(); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	cur := DefaultCurrency
	if req.Currency != "" {
		parsed, err := currency.Parse(req.Currency)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		cur = parsed
	}

	b, err := h.Service.SetBudget(r.Context(), p.UserID, month, year, req.Amount, cur)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, b.ToResponse())
}
