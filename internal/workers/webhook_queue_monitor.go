package workers

import (
	"context"
	"log"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/metrics"
)

// WebhookQueueMonitor samples stream depth and pending counts into metrics
// so a stuck worker shows up on a dashboard instead of in a refund dispute.
type WebhookQueueMonitor struct {
	redisQueue *common.RedisQueueService
	metrics    *metrics.MetricsRegistry
}

func NewWebhookQueueMonitor(redisQueue *common.RedisQueueService, metricsReg *metrics.MetricsRegistry) *WebhookQueueMonitor {
	return &WebhookQueueMonitor{
		redisQueue: redisQueue,
		metrics:    metricsReg,
	}
}

// Start begins monitoring the webhook stream.
func (m *WebhookQueueMonitor) Start(ctx context.Context, interval time.Duration) {
	log.Printf("[WebhookQueueMonitor] Starting queue monitoring (interval: %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	m.checkQueue(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[WebhookQueueMonitor] Shutting down")
			return
		case <-ticker.C:
			m.checkQueue(ctx)
		}
	}
}

func (m *WebhookQueueMonitor) checkQueue(ctx context.Context) {
	length, err := m.redisQueue.GetQueueLength(ctx, constants.PaymentWebhookStream)
	if err != nil {
		log.Printf("[WebhookQueueMonitor] Error fetching queue length: %v", err)
		return
	}

	pending, err := m.redisQueue.GetPendingCount(ctx, constants.PaymentWebhookStream, constants.PaymentWebhookGroup)
	if err != nil {
		log.Printf("[WebhookQueueMonitor] Error fetching pending count: %v", err)
		return
	}

	if m.metrics != nil {
		m.metrics.WebhookQueueDepth.WithLabelValues("queued").Set(float64(length))
		m.metrics.WebhookQueueDepth.WithLabelValues("pending").Set(float64(pending))
	}

	if pending > 100 {
		logging.Warn("webhook queue backlog",
			"stream", constants.PaymentWebhookStream,
			"length", length,
			"pending", pending,
		)
	}
}

// Depth returns the current stream stats for the ops endpoint.
func (m *WebhookQueueMonitor) Depth(ctx context.Context) (int64, int64, error) {
	length, err := m.redisQueue.GetQueueLength(ctx, constants.PaymentWebhookStream)
	if err != nil {
		return 0, 0, err
	}
	pending, err := m.redisQueue.GetPendingCount(ctx, constants.PaymentWebhookStream, constants.PaymentWebhookGroup)
	if err != nil {
		return 0, 0, err
	}
	return length, pending, nil
}
