package api

import (
	"net/http"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/jobs"
	"grassroots/warchest/internal/models/dtos"
	"grassroots/warchest/internal/workers"
)

// JobsHandler exposes background job controls to platform operators.
type JobsHandler struct {
	candidateSync *jobs.CandidateSyncJob
	queueMonitor  *workers.WebhookQueueMonitor
}

func NewJobsHandler(candidateSync *jobs.CandidateSyncJob, queueMonitor *workers.WebhookQueueMonitor) *JobsHandler {
	return &JobsHandler{
		candidateSync: candidateSync,
		queueMonitor:  queueMonitor,
	}
}

// TriggerCandidateSync handles POST /admin/jobs/sync-candidates
func (h *JobsHandler) TriggerCandidateSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		if err := h.candidateSync.TriggerManual(r.Context(), claims.UserID()); err != nil {
			common.RespondError(w, initTime, err, constants.StatusError, http.StatusConflict)
			return
		}

		common.RespondSuccess(w, initTime, "Candidate sync completed", h.candidateSync.Status())
	}
}

// GetJobStatus handles GET /admin/jobs/status
func (h *JobsHandler) GetJobStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Job status", []dtos.JobStatusResponse{
			h.candidateSync.Status(),
		})
	}
}

// GetQueueDepth handles GET /admin/jobs/queue-depth
func (h *JobsHandler) GetQueueDepth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		length, pending, err := h.queueMonitor.Depth(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		common.RespondSuccess(w, initTime, "Queue depth", dtos.QueueDepthResponse{
			Stream:  constants.PaymentWebhookStream,
			Length:  length,
			Pending: pending,
		})
	}
}
