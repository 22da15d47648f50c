package api

import (
	"net/http"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// CheckPermission handles POST /permissions/check: resolves one question
// about one user.
func (h *Handlers) CheckPermission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CheckPermissionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		allowed, err := h.deps.Services.Permission.Resolve(r.Context(), req.UserID, constants.Permission(req.Permission), req.OrgID)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Permission check", dtos.PermissionCheckResponse{
			UserID:     req.UserID,
			Permission: req.Permission,
			OrgID:      req.OrgID,
			Allowed:    allowed,
		})
	}
}

// MyPermissions handles GET /user/permissions?org_id=...: the caller's own
// effective set.
func (h *Handlers) MyPermissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var orgID *string
		if v := r.URL.Query().Get("org_id"); v != "" {
			orgID = &v
		}

		resp, err := h.deps.Services.Permission.EffectivePermissions(r.Context(), claims.UserID(), orgID)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Effective permissions", resp)
	}
}

// UserPermissions handles GET /admin/users/{userID}/permissions
func (h *Handlers) UserPermissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var orgID *string
		if v := r.URL.Query().Get("org_id"); v != "" {
			orgID = &v
		}

		resp, err := h.deps.Services.Permission.EffectivePermissions(r.Context(), chi.URLParam(r, "userID"), orgID)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Effective permissions", resp)
	}
}

// GrantPermission handles POST /admin/permissions/grant
func (h *Handlers) GrantPermission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.GrantPermissionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		override, err := h.deps.Services.Permission.Grant(r.Context(), claims.UserID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Permission granted", override, http.StatusCreated)
	}
}

// RevokePermission handles POST /admin/permissions/revoke
func (h *Handlers) RevokePermission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.RevokePermissionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := h.deps.Services.Permission.Revoke(r.Context(), claims.UserID(), &req); err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Permission revoked", nil)
	}
}

// ListPermissionOverrides handles GET /admin/users/{userID}/permissions/overrides
func (h *Handlers) ListPermissionOverrides() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var orgID *string
		if v := r.URL.Query().Get("org_id"); v != "" {
			orgID = &v
		}

		overrides, err := h.deps.Repo.Permission.ListOverrides(r.Context(), chi.URLParam(r, "userID"), orgID)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Permission overrides", overrides)
	}
}
