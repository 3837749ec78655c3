package user

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-app/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	GetAllUsers(ctx context.Context) ([]*User, error)
	DeleteUser(ctx context.Context, userID string) error
	AddUserToRole(ctx context.Context, userID, role string) error
	RemoveUserFromRole(ctx context.Context, userID, role string) error
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileDTO) (*User, error)
	GetSubscription(ctx context.Context, userID string) (*Subscription, error)
	UpgradePlan(ctx context.Context, userID, plan string) (*Subscription, bool, error)
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

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	u, err := h.Service.GetByID(r.Context(), p.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	var req UpdateProfileDTO
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	u, err := h.Service.UpdateProfile(r.Context(), p.UserID, req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}

func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	sub, err := h.Service.GetSubscription(r.Context(), p.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, SubscriptionResponse{Plan: string(sub.Plan), AssignedAt: sub.AssignedAt})
}

// UpgradeSubscription answers 200 either way; Changed is false when the caller was already on the plan.
func (h *Handler) UpgradeSubscription(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	var req UpgradePlanDTO
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	sub, changed, err := h.Service.UpgradePlan(r.Context(), p.UserID, req.Plan)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, SubscriptionResponse{Plan: string(sub.Plan), AssignedAt: sub.AssignedAt, Changed: changed})
}

// ListUsers is admin only; the router guards it.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAllUsers(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = u.ToResponse()
	}
	h.WriteJSON(w, http.StatusOK, UsersResponse{Users: out})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddRole(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.AddUserToRole(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "role")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveUserFromRole(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "role")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
