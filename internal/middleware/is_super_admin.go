package middleware

import (
	"net/http"

	"grassroots/warchest/internal/auth"
	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
)

func IsSuperAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondPermissionDenied(w, "super admin")
				return
			}

			if claims.PlatformRole() == constants.PlatformRoleSuperAdmin.String() ||
				auth.IsSuperAdmin(claims.UserID()) {
				next.ServeHTTP(w, r)
				return
			}
			common.RespondPermissionDenied(w, "super admin")

		})
	}

}
