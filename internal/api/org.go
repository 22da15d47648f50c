package api

import (
	"net/http"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// RegisterOrganization handles POST /orgs/register
func (h *Handlers) RegisterOrganization() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.RegisterOrgRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Name == "" || req.Slug == "" {
			common.RespondError(w, initTime, nil, "name and slug are required", http.StatusBadRequest)
			return
		}

		resp, err := h.deps.Services.Registration.RegisterOrganization(r.Context(), claims.UserID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusConflict)
			return
		}

		common.RespondSuccess(w, initTime, "Organization registered", resp, http.StatusCreated)
	}
}

// GetOrganization handles GET /orgs/{orgID}
func (h *Handlers) GetOrganization() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		org, err := h.deps.Services.OrgMgmt.GetOrganization(r.Context(), chi.URLParam(r, "orgID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Organization", org)
	}
}

// AddOrgMember handles POST /orgs/{orgID}/members
func (h *Handlers) AddOrgMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.AddMemberRequest
		if !decodeBody(w, r, &req) {
			return
		}

		membership, err := h.deps.Services.OrgMgmt.AddMember(r.Context(), claims.UserID(), chi.URLParam(r, "orgID"), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Member added", membership, http.StatusCreated)
	}
}

// SetOrgMemberRole handles PUT /orgs/{orgID}/members/role
func (h *Handlers) SetOrgMemberRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.SetMemberRoleRequest
		if !decodeBody(w, r, &req) {
			return
		}

		membership, err := h.deps.Services.OrgMgmt.SetMemberRole(r.Context(), claims.UserID(), chi.URLParam(r, "orgID"), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Member role updated", membership)
	}
}

// RemoveOrgMember handles DELETE /orgs/{orgID}/members/{userID}
func (h *Handlers) RemoveOrgMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		err := h.deps.Services.OrgMgmt.RemoveMember(r.Context(), claims.UserID(), chi.URLParam(r, "orgID"), chi.URLParam(r, "userID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Member removed", nil)
	}
}

// ListOrgMembers handles GET /orgs/{orgID}/members
func (h *Handlers) ListOrgMembers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		members, err := h.deps.Services.OrgMgmt.ListMembers(r.Context(), chi.URLParam(r, "orgID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Organization members", members)
	}
}

// SetOrgVerification handles POST /admin/orgs/{orgID}/verification
func (h *Handlers) SetOrgVerification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req struct {
			Status string `json:"status"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		org, err := h.deps.Services.OrgMgmt.SetVerificationStatus(
			r.Context(), claims.UserID(), chi.URLParam(r, "orgID"), constants.VerificationStatus(req.Status))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Verification status updated", org)
	}
}
