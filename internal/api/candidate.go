package api

import (
	"net/http"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
)

// ListCandidates handles GET /public/candidates
func (h *Handlers) ListCandidates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		candidates, err := h.deps.Services.CandidateImport.ListCandidates(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Candidates", candidates)
	}
}

// LastCandidateSync handles GET /admin/candidates/last-sync
func (h *Handlers) LastCandidateSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		history, err := h.deps.Services.CandidateImport.LastSync(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Last candidate sync", history)
	}
}
