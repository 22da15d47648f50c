package api

import (
	"net/http"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/dtos"
)

// PaymentWebhook handles POST /webhooks/payment. Gateway callers are
// authenticated by API key upstream. The event is validated, queued, and
// acknowledged immediately; the queue worker applies it to the donation.
func (h *Handlers) PaymentWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.PaymentWebhookRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if req.DonationID == "" || req.Status == "" || req.EventID == "" {
			common.RespondError(w, initTime, nil, "donation_id, status and event_id are required", http.StatusBadRequest)
			return
		}

		switch constants.DonationStatus(req.Status) {
		case constants.DonationProcessing, constants.DonationCompleted,
			constants.DonationFailed, constants.DonationCancelled, constants.DonationRefunded:
		default:
			common.RespondError(w, initTime, nil, "unknown status: "+req.Status, http.StatusBadRequest)
			return
		}

		item := &common.WebhookQueueItem{
			EventID:     req.EventID,
			DonationID:  req.DonationID,
			GatewayTxID: req.GatewayTxID,
			Status:      req.Status,
			ReceivedAt:  initTime.UTC().Format(time.RFC3339),
		}

		if err := h.deps.Services.RedisQueue.EnqueueWebhook(r.Context(), constants.PaymentWebhookStream, item); err != nil {
			common.RespondError(w, initTime, err, constants.StatusError)
			return
		}

		// 202: accepted for processing, not yet applied
		common.RespondSuccess(w, initTime, "Event queued", map[string]string{"event_id": req.EventID}, http.StatusAccepted)
	}
}
