package workers

import (
	"context"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/metrics"
	"grassroots/warchest/internal/services"

	"gorm.io/gorm"
)

type WorkersContainer struct {
	QueueWorker    *WebhookQueueWorker
	QueueMonitor   *WebhookQueueMonitor
	Reconciliation *ReconciliationWorker
}

func InitWorkers(
	db *gorm.DB,
	redQ *common.RedisQueueService,
	donations *services.DonationService,
	fundraiserRepo *repositories.FundraiserRepository,
	donationRepo *repositories.DonationRepository,
	metricsReg *metrics.MetricsRegistry,
) *WorkersContainer {
	qWorker := NewWebhookQueueWorker("webhook_queue", redQ, donations)
	monitor := NewWebhookQueueMonitor(redQ, metricsReg)
	reconciler := NewReconciliationWorker(db, fundraiserRepo, donationRepo)

	go qWorker.Start(context.Background(), 5)
	go monitor.Start(context.Background(), 30*time.Second)
	go reconciler.Start(context.Background(), 15*time.Minute)

	return &WorkersContainer{
		QueueWorker:    qWorker,
		QueueMonitor:   monitor,
		Reconciliation: reconciler,
	}
}
