package api

import (
	"net/http"
	"time"

	"grassroots/warchest/internal/auth"
	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// CreateDonation handles POST /donations. Anonymous donations come through
// with no user_id; authenticated ones are pinned to the caller.
func (h *Handlers) CreateDonation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateDonationRequest
		if !decodeBody(w, r, &req) {
			return
		}

		// A signed-in donor cannot donate as someone else, and an
		// unauthenticated caller can only donate anonymously
		claims := auth.GetUserClaims(r.Context())
		if req.UserID != nil {
			if claims == nil {
				common.RespondError(w, initTime, nil, "attributed donations require authentication", http.StatusUnauthorized)
				return
			}
			userID := claims.UserID()
			req.UserID = &userID
		}

		donation, err := h.deps.Services.Donation.CreateDonation(r.Context(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Donation created", donation, http.StatusCreated)
	}
}

// GetDonation handles GET /donations/{donationID}
func (h *Handlers) GetDonation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		donation, err := h.deps.Repo.Donation.GetByID(r.Context(), chi.URLParam(r, "donationID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Donation", donation)
	}
}

// ListFundraiserDonations handles GET /orgs/{orgID}/fundraisers/{fundraiserID}/donations
func (h *Handlers) ListFundraiserDonations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		donations, err := h.deps.Repo.Donation.GetAllByFundraiser(r.Context(), chi.URLParam(r, "fundraiserID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Donations", donations)
	}
}

// RefundDonation handles POST /orgs/{orgID}/donations/{donationID}/refund
func (h *Handlers) RefundDonation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		err := h.deps.Services.Donation.Refund(r.Context(), chi.URLParam(r, "donationID"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Donation refunded", nil)
	}
}
