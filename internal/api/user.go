package api

import (
	"net/http"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// RegisterUser handles POST /user/register
func (h *Handlers) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RegisterUserRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Email == "" || req.FullName == "" {
			common.RespondError(w, initTime, nil, "email and full_name are required", http.StatusBadRequest)
			return
		}

		resp, err := h.deps.Services.Registration.RegisterUser(r.Context(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusConflict)
			return
		}

		common.RespondSuccess(w, initTime, constants.StatusRegistered, resp, http.StatusCreated)
	}
}

// VerifyUser handles POST /user/verify: the donor submits compliance details
func (h *Handlers) VerifyUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.VerifyUserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		user, err := h.deps.Services.Registration.CompleteVerification(r.Context(), claims.UserID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Verification complete", user)
	}
}

// GetUserDetails handles GET /user/details
func (h *Handlers) GetUserDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		user, err := h.deps.Services.User.GetUser(r.Context(), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "User details", user)
	}
}

// SuspendUser handles POST /admin/users/{userID}/suspend
func (h *Handlers) SuspendUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		userID := chi.URLParam(r, "userID")
		if err := h.deps.Services.User.Suspend(r.Context(), claims.UserID(), userID); err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "User suspended", nil)
	}
}

// ReinstateUser handles POST /admin/users/{userID}/reinstate
func (h *Handlers) ReinstateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		userID := chi.URLParam(r, "userID")
		if err := h.deps.Services.User.Reinstate(r.Context(), claims.UserID(), userID); err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "User reinstated", nil)
	}
}

// SetPlatformRole handles POST /admin/users/{userID}/role
func (h *Handlers) SetPlatformRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req struct {
			Role string `json:"role"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		userID := chi.URLParam(r, "userID")
		err := h.deps.Services.User.SetPlatformRole(r.Context(), claims.UserID(), userID, constants.PlatformRole(req.Role))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Platform role updated", nil)
	}
}
