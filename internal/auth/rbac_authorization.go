package auth

import (
	"net/http"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/transport"
	"github.com/frahmantamala/finance-app/pkg/logger"
)

// RBACAuthorization guards routes by role. It expects AuthMiddleware to have run.
type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(baseHandler *transport.BaseHandler) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: baseHandler}
}

// RequireRole lets the request through when the caller holds any of roles.
func (ra *RBACAuthorization) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := ra.Principal(w, r)
			if !ok {
				return
			}
			for _, role := range roles {
				if p.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.FromOr(r.Context(), ra.Logger).WarnContext(r.Context(), "access denied: missing role",
				"user_id", p.UserID,
				"required_roles", roles,
				"user_roles", p.Roles)
			ra.WriteAppError(w, errors.ErrForbidden)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(errors.RoleAdmin)
}
