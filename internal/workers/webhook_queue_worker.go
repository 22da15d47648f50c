package workers

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/services"
)

// WebhookQueueWorker drains the payment webhook stream and applies each
// gateway event to its donation. Events are acknowledged even when
// processing fails; an invalid transition will never become valid by
// retrying it.
type WebhookQueueWorker struct {
	workerID   string
	redisQueue *common.RedisQueueService
	donations  *services.DonationService
}

func NewWebhookQueueWorker(
	workerID string,
	redisQueue *common.RedisQueueService,
	donations *services.DonationService,
) *WebhookQueueWorker {
	return &WebhookQueueWorker{
		workerID:   workerID,
		redisQueue: redisQueue,
		donations:  donations,
	}
}

// Start spawns numWorkers consumers on the shared stream plus one goroutine
// reclaiming messages from dead consumers.
func (w *WebhookQueueWorker) Start(ctx context.Context, numWorkers int) error {
	log.Printf("[WebhookQueueWorker] Starting %d workers with ID prefix: %s", numWorkers, w.workerID)

	if err := w.redisQueue.CreateConsumerGroup(ctx, constants.PaymentWebhookStream, constants.PaymentWebhookGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		workerName := fmt.Sprintf("%s-worker-%d", w.workerID, i)

		go func(workerName string) {
			defer wg.Done()
			w.processQueue(ctx, workerName)
		}(workerName)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.claimStaleMessages(ctx)
	}()

	wg.Wait()
	log.Printf("[WebhookQueueWorker] All workers stopped")
	return nil
}

func (w *WebhookQueueWorker) processQueue(ctx context.Context, workerName string) {
	log.Printf("[%s] Started processing queue: %s", workerName, constants.PaymentWebhookStream)

	processedCount := 0
	errorCount := 0

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Shutting down. Processed: %d, Errors: %d", workerName, processedCount, errorCount)
			return
		default:
			item, messageID, err := w.redisQueue.DequeueWebhook(ctx, constants.PaymentWebhookStream, constants.PaymentWebhookGroup, workerName, 5*time.Second)
			if err != nil {
				log.Printf("[%s] Error dequeuing: %v", workerName, err)
				time.Sleep(1 * time.Second) // Back off on error
				continue
			}

			if item == nil {
				// Timeout, nothing queued
				continue
			}

			if err := w.processEvent(ctx, item); err != nil {
				log.Printf("[%s] Error processing event %s: %v", workerName, item.EventID, err)
				errorCount++
				// Still acknowledge: a bad transition stays bad on retry.
				// A DLQ would be the place for these in a larger deployment.
			} else {
				processedCount++
			}

			if err := w.redisQueue.AckWebhook(ctx, constants.PaymentWebhookStream, constants.PaymentWebhookGroup, messageID); err != nil {
				log.Printf("[%s] Error acknowledging message %s: %v", workerName, messageID, err)
			}
		}
	}
}

func (w *WebhookQueueWorker) processEvent(ctx context.Context, item *common.WebhookQueueItem) error {
	next := constants.DonationStatus(item.Status)
	switch next {
	case constants.DonationProcessing, constants.DonationCompleted,
		constants.DonationFailed, constants.DonationCancelled, constants.DonationRefunded:
	default:
		return fmt.Errorf("unknown gateway status: %s", item.Status)
	}

	return w.donations.ApplyGatewayStatus(ctx, item.DonationID, item.GatewayTxID, next)
}

// claimStaleMessages periodically adopts messages whose consumer died before
// acknowledging.
func (w *WebhookQueueWorker) claimStaleMessages(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	consumerName := fmt.Sprintf("%s-reclaimer", w.workerID)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			items, messageIDs, err := w.redisQueue.ClaimStaleWebhooks(ctx, constants.PaymentWebhookStream, constants.PaymentWebhookGroup, consumerName, 5*time.Minute)
			if err != nil {
				log.Printf("[WebhookQueueWorker] Error claiming stale messages: %v", err)
				continue
			}

			for i, item := range items {
				if err := w.processEvent(ctx, item); err != nil {
					log.Printf("[WebhookQueueWorker] Error processing reclaimed event %s: %v", item.EventID, err)
				}
				if err := w.redisQueue.AckWebhook(ctx, constants.PaymentWebhookStream, constants.PaymentWebhookGroup, messageIDs[i]); err != nil {
					log.Printf("[WebhookQueueWorker] Error acknowledging reclaimed message: %v", err)
				}
			}
		}
	}
}
