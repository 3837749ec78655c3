package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/finance-app/internal/transport"
)

type ServiceAPI interface {
	Summary(ctx context.Context, userID string, now time.Time) (*Summary, error)
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

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Principal(w, r)
	if !ok {
		return
	}
	summary, err := h.Service.Summary(r.Context(), p.UserID, h.Now())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary.ToResponse())
}
