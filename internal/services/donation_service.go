package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/metrics"
	"grassroots/warchest/internal/models/dtos"
	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// DonationService owns the donation lifecycle. Status changes come from the
// payment gateway and move through a fixed FSM; the fundraiser's running
// total is recomputed from completed donations inside the same transaction
// as every transition.
type DonationService struct {
	db             *gorm.DB
	donationRepo   *repositories.DonationRepository
	fundraiserRepo *repositories.FundraiserRepository
	orgRepo        *repositories.OrgRepository
	userRepo       *repositories.UserRepository
	cache          common.CacheInterface
	metrics        *metrics.MetricsRegistry
	audit          *AuditService
}

func NewDonationService(
	db *gorm.DB,
	donationRepo *repositories.DonationRepository,
	fundraiserRepo *repositories.FundraiserRepository,
	orgRepo *repositories.OrgRepository,
	userRepo *repositories.UserRepository,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	audit *AuditService,
) *DonationService {
	return &DonationService{
		db:             db,
		donationRepo:   donationRepo,
		fundraiserRepo: fundraiserRepo,
		orgRepo:        orgRepo,
		userRepo:       userRepo,
		cache:          cache,
		metrics:        metricsReg,
		audit:          audit,
	}
}

// AnonymousCapCents returns the ceiling for donations without donor
// identity. ANON_DONATION_CAP_CENTS overrides the default.
func AnonymousCapCents() int64 {
	if raw := os.Getenv("ANON_DONATION_CAP_CENTS"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return constants.AnonymousDonationCapCents
}

// CreateDonation records a new pending donation after gating checks. The
// gateway drives everything after this point via webhooks.
func (svc *DonationService) CreateDonation(ctx context.Context, req *dtos.CreateDonationRequest) (*models.Donation, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("donation amount must be positive")
	}

	if req.UserID == nil && req.AmountCents > AnonymousCapCents() {
		return nil, fmt.Errorf(constants.MsgAnonCapExceeded)
	}

	fundraiser, err := svc.fundraiserRepo.GetByID(ctx, req.FundraiserID)
	if err != nil {
		return nil, err
	}

	if !fundraiser.IsPublished {
		return nil, fmt.Errorf(constants.StatusFundraiserInactive)
	}
	if fundraiser.EndsAt != nil && fundraiser.EndsAt.Before(time.Now()) {
		return nil, fmt.Errorf(constants.StatusFundraiserInactive)
	}

	org, err := svc.orgRepo.GetByID(ctx, fundraiser.OrgID)
	if err != nil {
		return nil, err
	}
	if org.VerificationStatus != constants.VerificationVerified || !org.IsActive {
		return nil, fmt.Errorf(constants.StatusOrgNotVerified)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	donation := &models.Donation{
		FundraiserID: req.FundraiserID,
		UserID:       req.UserID,
		AmountCents:  req.AmountCents,
		Currency:     currency,
		Status:       constants.DonationPending,
	}

	if err := svc.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	svc.audit.Record(ctx, req.UserID, "donation.created", "donation", donation.ID, nil, donation)

	logging.Info("donation created",
		"donation_id", donation.ID,
		"fundraiser_id", donation.FundraiserID,
		"amount_cents", donation.AmountCents,
		"anonymous", req.UserID == nil,
	)

	return donation, nil
}

// ApplyGatewayStatus moves a donation along the FSM based on a gateway
// event and recomputes the fundraiser total in the same transaction.
// Re-delivered events land on a donation already in the target state and
// return without touching anything.
func (svc *DonationService) ApplyGatewayStatus(ctx context.Context, donationID, gatewayTxID string, next constants.DonationStatus) error {
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var donation models.Donation
		if err := tx.Where("id = ?", donationID).First(&donation).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("donation not found")
			}
			return fmt.Errorf("failed to fetch donation: %w", err)
		}

		if donation.Status == next {
			// Gateway retry, already applied
			logging.Debug("duplicate gateway event ignored",
				"donation_id", donationID,
				"gateway_tx_id", gatewayTxID,
				"status", string(next),
			)
			return nil
		}

		if !donation.Status.CanTransitionTo(next) {
			return fmt.Errorf("%s: %s -> %s", constants.MsgBadTransition, donation.Status, next)
		}

		before := donation

		donation.Status = next
		if gatewayTxID != "" {
			donation.GatewayTxID = &gatewayTxID
		}
		now := time.Now()
		switch next {
		case constants.DonationCompleted:
			donation.CompletedAt = &now
		case constants.DonationRefunded:
			donation.RefundedAt = &now
		}

		if err := tx.Save(&donation).Error; err != nil {
			return fmt.Errorf("failed to update donation: %w", err)
		}

		// Recompute, never increment. Running the aggregate inside the
		// transaction makes retries and concurrent events converge on
		// the same total.
		var total int64
		err := tx.Model(&models.Donation{}).
			Where("fundraiser_id = ? AND status = ?", donation.FundraiserID, constants.DonationCompleted).
			Select("COALESCE(SUM(amount_cents), 0)").
			Scan(&total).Error
		if err != nil {
			return fmt.Errorf("failed to sum completed donations: %w", err)
		}

		err = tx.Model(&models.Fundraiser{}).
			Where("id = ?", donation.FundraiserID).
			Update("current_amount_cents", total).Error
		if err != nil {
			return fmt.Errorf("failed to update fundraiser total: %w", err)
		}

		svc.cache.Delete(fmt.Sprintf("%s%s", constants.CachePrefixFundraiserSum, donation.FundraiserID))

		if svc.metrics != nil {
			svc.metrics.DonationsProcessedTotal.WithLabelValues(string(next)).Inc()
			if next == constants.DonationCompleted {
				svc.metrics.DonationAmountCentsTotal.WithLabelValues(donation.FundraiserID).Add(float64(donation.AmountCents))
			}
		}

		svc.audit.Record(ctx, nil, "donation.status_changed", "donation", donation.ID, before, donation)

		return nil
	})

	if err != nil {
		return err
	}

	logging.Info("donation status applied",
		"donation_id", donationID,
		"gateway_tx_id", gatewayTxID,
		"status", string(next),
	)

	return nil
}

// Refund moves a completed donation to refunded on behalf of an operator.
// Same FSM edge the gateway would use, so the total recompute applies.
func (svc *DonationService) Refund(ctx context.Context, donationID, actorID string) error {
	donation, err := svc.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return err
	}

	// The same-status shortcut in ApplyGatewayStatus exists for gateway
	// retries; an operator refunding twice is an error, not a retry.
	if donation.Status != constants.DonationCompleted {
		return fmt.Errorf("%s: %s -> %s", constants.MsgBadTransition, donation.Status, constants.DonationRefunded)
	}

	txID := ""
	if donation.GatewayTxID != nil {
		txID = *donation.GatewayTxID
	}

	if err := svc.ApplyGatewayStatus(ctx, donationID, txID, constants.DonationRefunded); err != nil {
		return err
	}

	svc.audit.Record(ctx, &actorID, "donation.refunded", "donation", donationID, nil, nil)
	return nil
}

// FundraiserSummary returns the public rollup for one fundraiser. The sum is
// served from cache for a short window; transitions invalidate it.
func (svc *DonationService) FundraiserSummary(ctx context.Context, fundraiserID string) (*dtos.FundraiserSummary, error) {
	fundraiser, err := svc.fundraiserRepo.GetByID(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%s", constants.CachePrefixFundraiserSum, fundraiserID)
	cached, err := svc.cache.GetOrSet(key, 30*time.Second, func() (any, error) {
		total, err := svc.donationRepo.SumCompleted(ctx, fundraiserID)
		if err != nil {
			return nil, err
		}
		return total, nil
	})
	if err != nil {
		return nil, err
	}

	total := fundraiser.CurrentAmountCents
	switch v := cached.(type) {
	case int64:
		total = v
	case float64: // Redis JSON round-trip
		total = int64(v)
	}

	count, err := svc.donationRepo.CountCompleted(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}

	return &dtos.FundraiserSummary{
		FundraiserID:       fundraiser.ID,
		Title:              fundraiser.Title,
		GoalAmountCents:    fundraiser.GoalAmountCents,
		CurrentAmountCents: total,
		DonationCount:      count,
		IsPublished:        fundraiser.IsPublished,
	}, nil
}

// DonorTotals aggregates completed donations per donor for a fundraiser and
// flags the ones crossing the itemization threshold.
func (svc *DonationService) DonorTotals(ctx context.Context, fundraiserID string) ([]dtos.DonorTotalEntry, error) {
	rows, err := svc.userRepo.DonorTotals(ctx, fundraiserID)
	if err != nil {
		return nil, fmt.Errorf("donor totals: %w", err)
	}

	entries := make([]dtos.DonorTotalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dtos.DonorTotalEntry{
			UserID:              row.UserID,
			TotalCents:          row.TotalCents,
			DonationCount:       row.DonationCount,
			RequiresItemization: row.RequiresItemization(constants.ItemizationThresholdCents),
		})
	}

	return entries, nil
}
