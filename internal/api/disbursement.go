package api

import (
	"net/http"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// CreateDisbursement handles POST /orgs/{orgID}/disbursements
func (h *Handlers) CreateDisbursement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.CreateDisbursementRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.OrgID = chi.URLParam(r, "orgID")

		disbursement, err := h.deps.Services.Disbursement.CreateDisbursement(r.Context(), claims.UserID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Disbursement created", disbursement, http.StatusCreated)
	}
}

// ApproveDisbursement handles POST /orgs/{orgID}/disbursements/{disbursementID}/approve
func (h *Handlers) ApproveDisbursement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		disbursement, err := h.deps.Services.Disbursement.Approve(r.Context(), chi.URLParam(r, "disbursementID"), claims.UserID())
		if err != nil {
			status := http.StatusBadRequest
			if err.Error() == constants.MsgSelfApproval {
				status = http.StatusForbidden
			}
			common.RespondError(w, initTime, err, constants.StatusError, status)
			return
		}

		common.RespondSuccess(w, initTime, "Disbursement approved", disbursement)
	}
}

// RejectDisbursement handles POST /orgs/{orgID}/disbursements/{disbursementID}/reject
func (h *Handlers) RejectDisbursement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		disbursement, err := h.deps.Services.Disbursement.Reject(r.Context(), chi.URLParam(r, "disbursementID"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Disbursement rejected", disbursement)
	}
}

// SetDisbursementStatus handles POST /admin/disbursements/{disbursementID}/status
// for the bank-transfer lifecycle after approval.
func (h *Handlers) SetDisbursementStatus() http.HandlerFunc {
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

		disbursementID := chi.URLParam(r, "disbursementID")
		actorID := claims.UserID()

		var err error
		var result interface{}
		switch constants.DisbursementStatus(req.Status) {
		case constants.DisbursementProcessing:
			result, err = h.deps.Services.Disbursement.MarkProcessing(r.Context(), disbursementID, actorID)
		case constants.DisbursementCompleted:
			result, err = h.deps.Services.Disbursement.MarkCompleted(r.Context(), disbursementID, actorID)
		case constants.DisbursementFailed:
			result, err = h.deps.Services.Disbursement.MarkFailed(r.Context(), disbursementID, actorID)
		default:
			common.RespondError(w, initTime, nil, "unknown status: "+req.Status, http.StatusBadRequest)
			return
		}

		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Disbursement status updated", result)
	}
}

// ListOrgDisbursements handles GET /orgs/{orgID}/disbursements
func (h *Handlers) ListOrgDisbursements() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		disbursements, err := h.deps.Services.Disbursement.ListByOrg(r.Context(), chi.URLParam(r, "orgID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Disbursements", disbursements)
	}
}
