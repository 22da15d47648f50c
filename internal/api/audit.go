package api

import (
	"net/http"
	"strconv"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"

	"github.com/go-chi/chi/v5"
)

// EntityAuditHistory handles GET /admin/audit/{entityType}/{entityID}?limit=N
func (h *Handlers) EntityAuditHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 0 {
				common.RespondError(w, initTime, nil, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		entries, err := h.deps.Services.Audit.History(
			r.Context(),
			chi.URLParam(r, "entityType"),
			chi.URLParam(r, "entityID"),
			limit,
		)
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Audit history", entries)
	}
}
