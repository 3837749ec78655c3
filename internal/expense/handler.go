package expense

import (
	"context"
	"net/http"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/frahmantamala/finance-app/internal/transport"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id uuid.UUID, userID string) (*Expense, error)
	Create(ctx context.Context, userID string, req CreateExpenseDTO) (*Expense, error)
	Update(ctx context.Context, id uuid.UUID, userID string, req UpdateExpenseDTO) (*Expense, error)
	SoftDelete(ctx context.Context, id uuid.UUID, userID string) error
	GetAll(ctx context.Context) ([]*Expense, error)
	GetByCategoryID(ctx context.Context, categoryID uuid.UUID, userID string, pageNumber, pageSize int) (repository.PagedResult[*Expense], error)
	GetPagedForUser(ctx context.Context, userID string, pageNumber, pageSize int, q ExpenseQuery) (repository.PagedResult[*Expense], error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func toResponses(expenses []*Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = e.ToResponse()
	}
	return out
}

func toPagedResponse(page repository.PagedResult[*Expense]) PagedExpensesResponse {
	return PagedExpensesResponse{
		Items:      toResponses(page.Items),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
	}
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func parseDate(field, raw string) (*time.Time, *errors.AppError) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, errors.NewValidationFieldError(field, "expected RFC 3339 or YYYY-MM-DD", errors.ErrCodeInvalidDate)
}

func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	q := ExpenseQuery{Currency: query.Get("currency")}
	if raw := query.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.WriteAppError(w, errors.NewValidationFieldError("category_id", "invalid id", errors.ErrCodeInvalidCategory))
			return
		}
		q.CategoryID = &id
	}
	var appErr *errors.AppError
	if q.From, appErr = parseDate("from", query.Get("from")); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	if q.To, appErr = parseDate("to", query.Get("to")); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	page, err := h.Service.GetPagedForUser(r.Context(), p.UserID,
		h.QueryInt(r, "page", 1), h.QueryInt(r, "size", repository.DefaultPageSize), q)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, toPagedResponse(page))
}

func (h *Handler) GetCategoryExpenses(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	categoryID, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	page, err := h.Service.GetByCategoryID(r.Context(), categoryID, p.UserID,
		h.QueryInt(r, "page", 1), h.QueryInt(r, "size", repository.DefaultPageSize))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, toPagedResponse(page))
}

func (h *Handler) GetAllExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ExpensesResponse{Expenses: toResponses(expenses)})
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.Service.GetByID(r.Context(), id, p.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e.ToResponse())
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	var req CreateExpenseDTO
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	e, err := h.Service.Create(r.Context(), p.UserID, req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e.ToResponse())
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateExpenseDTO
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	e, err := h.Service.Update(r.Context(), id, p.UserID, req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e.ToResponse())
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.SoftDelete(r.Context(), id, p.UserID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
