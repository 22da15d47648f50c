package api

import (
	"net/http"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// CreateFundraiser handles POST /orgs/{orgID}/fundraisers
func (h *Handlers) CreateFundraiser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.CreateFundraiserRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.OrgID = chi.URLParam(r, "orgID")

		fundraiser, err := h.deps.Services.Fundraiser.CreateFundraiser(r.Context(), claims.UserID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Fundraiser created", fundraiser, http.StatusCreated)
	}
}

// PublishFundraiser handles POST /orgs/{orgID}/fundraisers/{fundraiserID}/publish
func (h *Handlers) PublishFundraiser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		fundraiser, err := h.deps.Services.Fundraiser.Publish(r.Context(), chi.URLParam(r, "fundraiserID"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Fundraiser published", fundraiser)
	}
}

// UnpublishFundraiser handles POST /orgs/{orgID}/fundraisers/{fundraiserID}/unpublish
func (h *Handlers) UnpublishFundraiser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		fundraiser, err := h.deps.Services.Fundraiser.Unpublish(r.Context(), chi.URLParam(r, "fundraiserID"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Fundraiser unpublished", fundraiser)
	}
}

// EditFundraiser handles PUT /orgs/{orgID}/fundraisers/{fundraiserID}
func (h *Handlers) EditFundraiser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.CreateFundraiserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		fundraiser, err := h.deps.Services.Fundraiser.Edit(r.Context(), chi.URLParam(r, "fundraiserID"), claims.UserID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Fundraiser updated", fundraiser)
	}
}

// ListOrgFundraisers handles GET /orgs/{orgID}/fundraisers
func (h *Handlers) ListOrgFundraisers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		fundraisers, err := h.deps.Services.Fundraiser.ListByOrg(r.Context(), chi.URLParam(r, "orgID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Fundraisers", fundraisers)
	}
}

// FundraiserSummary handles GET /public/fundraisers/{fundraiserID}/summary
func (h *Handlers) FundraiserSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		summary, err := h.deps.Services.Donation.FundraiserSummary(r.Context(), chi.URLParam(r, "fundraiserID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Fundraiser summary", summary)
	}
}

// FundraiserDonorTotals handles GET /orgs/{orgID}/fundraisers/{fundraiserID}/donors
func (h *Handlers) FundraiserDonorTotals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		totals, err := h.deps.Services.Donation.DonorTotals(r.Context(), chi.URLParam(r, "fundraiserID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Donor totals", totals)
	}
}
