package workers

import (
	"context"
	"log"
	"time"

	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// ReconciliationWorker sweeps active fundraisers and re-derives each running
// total from completed donations. The transactional recompute should keep
// totals correct on its own; this catches drift from operator SQL or crashed
// transactions and logs loudly when it finds any.
type ReconciliationWorker struct {
	db             *gorm.DB
	fundraiserRepo *repositories.FundraiserRepository
	donationRepo   *repositories.DonationRepository
}

func NewReconciliationWorker(
	db *gorm.DB,
	fundraiserRepo *repositories.FundraiserRepository,
	donationRepo *repositories.DonationRepository,
) *ReconciliationWorker {
	return &ReconciliationWorker{
		db:             db,
		fundraiserRepo: fundraiserRepo,
		donationRepo:   donationRepo,
	}
}

// Start runs a sweep immediately and then on every tick.
func (w *ReconciliationWorker) Start(ctx context.Context, interval time.Duration) {
	log.Printf("[ReconciliationWorker] Starting (interval: %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[ReconciliationWorker] Shutting down")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep reconciles every active fundraiser once. Returns how many totals
// were corrected.
func (w *ReconciliationWorker) Sweep(ctx context.Context) int {
	fundraisers, err := w.fundraiserRepo.ListActive(ctx)
	if err != nil {
		log.Printf("[ReconciliationWorker] Error listing fundraisers: %v", err)
		return 0
	}

	corrected := 0
	for _, fundraiser := range fundraisers {
		actual, err := w.donationRepo.SumCompleted(ctx, fundraiser.ID)
		if err != nil {
			log.Printf("[ReconciliationWorker] Error summing donations for %s: %v", fundraiser.ID, err)
			continue
		}

		if actual == fundraiser.CurrentAmountCents {
			continue
		}

		logging.Warn("fundraiser total drift detected",
			"fundraiser_id", fundraiser.ID,
			"stored_cents", fundraiser.CurrentAmountCents,
			"actual_cents", actual,
		)

		err = w.db.WithContext(ctx).
			Model(&models.Fundraiser{}).
			Where("id = ?", fundraiser.ID).
			Update("current_amount_cents", actual).Error
		if err != nil {
			log.Printf("[ReconciliationWorker] Error correcting total for %s: %v", fundraiser.ID, err)
			continue
		}

		corrected++
	}

	if corrected > 0 {
		logging.Info("reconciliation sweep corrected totals",
			"corrected", corrected,
			"checked", len(fundraisers),
		)
	}

	return corrected
}
