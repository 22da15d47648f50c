package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"grassroots/warchest/internal/auth"
	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/db/repositories"
)

// IsOrgMemberMiddleware requires an active membership in the organization
// named by the {orgID} route param. Super admins pass through.
func IsOrgMemberMiddleware(membershipRepo *repositories.MembershipRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondPermissionDenied(w, "organization member")
				return
			}

			if auth.IsSuperAdmin(claims.UserID()) {
				next.ServeHTTP(w, r)
				return
			}

			orgID := chi.URLParam(r, "orgID")
			membership, err := membershipRepo.GetByUserAndOrg(r.Context(), claims.UserID(), orgID)
			if err != nil || membership == nil || !membership.IsActive {
				common.RespondPermissionDenied(w, "organization member")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
