package category

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/finance-app/internal/core/repository"
	"github.com/frahmantamala/finance-app/internal/transport"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id uuid.UUID, userID string) (*Category, error)
	GetAll(ctx context.Context, userID string) ([]*Category, error)
	GetPaged(ctx context.Context, pageNumber, pageSize int, userID string, filter Filter, orderBy []Order) (repository.PagedResult[*Category], error)
	GetCategories(ctx context.Context, userID string, isAdmin bool) ([]*Category, error)
	Create(ctx context.Context, userID string, req CreateCategoryDTO) (*Category, error)
	Update(ctx context.Context, id uuid.UUID, userID string, req UpdateCategoryDTO) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	AssignDefaultCategoriesToUser(ctx context.Context, userID string) (int, error)
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

func toResponses(categories []*Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = c.ToResponse()
	}
	return out
}

// GetCategories lists the caller's categories. With a page parameter the list
// is paged and may be narrowed by ?q=.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("page") == "" {
		categories, err := h.Service.GetAll(r.Context(), p.UserID)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: toResponses(categories)})
		return
	}

	var filter Filter
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter = NameContains(q)
	}
	page, err := h.Service.GetPaged(r.Context(),
		h.QueryInt(r, "page", 1),
		h.QueryInt(r, "size", repository.DefaultPageSize),
		p.UserID, filter, byName)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, PagedCategoriesResponse{
		Items:      toResponses(page.Items),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
	})
}

// GetAllCategories is the administrator listing across every user.
func (h *Handler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	categories, err := h.Service.GetCategories(r.Context(), p.UserID, p.IsAdmin())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: toResponses(categories)})
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Service.GetByID(r.Context(), id, p.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c.ToResponse())
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	var req CreateCategoryDTO
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	c, err := h.Service.Create(r.Context(), p.UserID, req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c.ToResponse())
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateCategoryDTO
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	c, err := h.Service.Update(r.Context(), id, p.UserID, req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c.ToResponse())
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id, p.UserID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AssignDefaults(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	created, err := h.Service.AssignDefaultCategoriesToUser(r.Context(), p.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, AssignDefaultsResponse{Created: created})
}
