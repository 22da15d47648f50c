package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"grassroots/warchest/internal/auth"
	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
)

// PermissionResolver is the slice of the permission service the route layer
// needs. Declared here so middleware does not depend on the services package.
type PermissionResolver interface {
	Resolve(ctx context.Context, userID string, perm constants.Permission, orgID *string) (bool, error)
}

// RequirePermission gates a route on the full resolution procedure. If the
// route carries an {orgID} param the check is org-scoped, otherwise global.
func RequirePermission(resolver PermissionResolver, perm constants.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondPermissionDenied(w, string(perm))
				return
			}

			var orgID *string
			if v := chi.URLParam(r, "orgID"); v != "" {
				orgID = &v
			}

			allowed, err := resolver.Resolve(r.Context(), claims.UserID(), perm, orgID)
			if err != nil {
				http.Error(w, "Permission check failed", http.StatusInternalServerError)
				return
			}

			if !allowed {
				common.RespondPermissionDenied(w, string(perm))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
