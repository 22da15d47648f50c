package services

import (
	"context"
	"fmt"
	"time"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/metrics"
	"grassroots/warchest/internal/models/dtos"
	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// DisbursementService pays collected funds out to organizations. Creation
// and approval must come from different users, and every donation can be
// paid out at most once.
type DisbursementService struct {
	db               *gorm.DB
	disbursementRepo *repositories.DisbursementRepository
	donationRepo     *repositories.DonationRepository
	fundraiserRepo   *repositories.FundraiserRepository
	orgRepo          *repositories.OrgRepository
	metrics          *metrics.MetricsRegistry
	audit            *AuditService
}

func NewDisbursementService(
	db *gorm.DB,
	disbursementRepo *repositories.DisbursementRepository,
	donationRepo *repositories.DonationRepository,
	fundraiserRepo *repositories.FundraiserRepository,
	orgRepo *repositories.OrgRepository,
	metricsReg *metrics.MetricsRegistry,
	audit *AuditService,
) *DisbursementService {
	return &DisbursementService{
		db:               db,
		disbursementRepo: disbursementRepo,
		donationRepo:     donationRepo,
		fundraiserRepo:   fundraiserRepo,
		orgRepo:          orgRepo,
		metrics:          metricsReg,
		audit:            audit,
	}
}

// CreateDisbursement bundles completed donations into a pending payout. The
// whole batch is validated and inserted in one transaction; one bad donation
// fails the lot.
func (svc *DisbursementService) CreateDisbursement(ctx context.Context, actorID string, req *dtos.CreateDisbursementRequest) (*models.Disbursement, error) {
	if len(req.DonationIDs) == 0 {
		return nil, fmt.Errorf("disbursement needs at least one donation")
	}

	org, err := svc.orgRepo.GetByID(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}
	if org.VerificationStatus != constants.VerificationVerified {
		return nil, fmt.Errorf(constants.StatusOrgNotVerified)
	}

	var disbursement *models.Disbursement

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var totalCents int64

		for _, donationID := range req.DonationIDs {
			var donation models.Donation
			if err := tx.Where("id = ?", donationID).First(&donation).Error; err != nil {
				return fmt.Errorf("donation %s not found", donationID)
			}

			if donation.Status != constants.DonationCompleted {
				return fmt.Errorf("donation %s is not completed", donationID)
			}

			var fundraiser models.Fundraiser
			if err := tx.Where("id = ?", donation.FundraiserID).First(&fundraiser).Error; err != nil {
				return fmt.Errorf("fundraiser for donation %s not found", donationID)
			}
			if fundraiser.OrgID != req.OrgID {
				return fmt.Errorf("donation %s belongs to a different organization", donationID)
			}

			var count int64
			if err := tx.Model(&models.DisbursementItem{}).
				Where("donation_id = ?", donationID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check disbursement items: %w", err)
			}
			if count > 0 {
				return fmt.Errorf("donation %s is already disbursed", donationID)
			}

			totalCents += donation.AmountCents
		}

		disbursement = &models.Disbursement{
			OrgID:       req.OrgID,
			AmountCents: totalCents,
			Status:      constants.DisbursementPending,
			CreatedBy:   actorID,
			Notes:       req.Notes,
		}

		if err := tx.Create(disbursement).Error; err != nil {
			return fmt.Errorf("failed to create disbursement: %w", err)
		}

		for _, donationID := range req.DonationIDs {
			item := models.DisbursementItem{
				DisbursementID: disbursement.ID,
				DonationID:     donationID,
			}
			// The unique index on donation_id is the real guard against
			// a concurrent double payout
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to attach donation %s: %w", donationID, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if svc.metrics != nil {
		svc.metrics.DisbursementsTotal.WithLabelValues(string(constants.DisbursementPending)).Inc()
	}
	svc.audit.Record(ctx, &actorID, "disbursement.created", "disbursement", disbursement.ID, nil, disbursement)

	logging.Info("disbursement created",
		"disbursement_id", disbursement.ID,
		"org_id", req.OrgID,
		"amount_cents", disbursement.AmountCents,
		"donation_count", len(req.DonationIDs),
		"created_by", actorID,
	)

	return disbursement, nil
}

// Approve applies the two-person rule and moves pending to approved.
func (svc *DisbursementService) Approve(ctx context.Context, disbursementID, approverID string) (*models.Disbursement, error) {
	disbursement, err := svc.disbursementRepo.GetByID(ctx, disbursementID)
	if err != nil {
		return nil, err
	}

	if disbursement.CreatedBy == approverID {
		return nil, fmt.Errorf(constants.MsgSelfApproval)
	}

	if !disbursement.Status.CanTransitionTo(constants.DisbursementApproved) {
		return nil, fmt.Errorf("%s: %s -> %s", constants.MsgBadTransition, disbursement.Status, constants.DisbursementApproved)
	}

	before := *disbursement

	now := time.Now()
	disbursement.Status = constants.DisbursementApproved
	disbursement.ApprovedBy = &approverID
	disbursement.ApprovedAt = &now

	if err := svc.disbursementRepo.Update(ctx, disbursement); err != nil {
		return nil, err
	}

	if svc.metrics != nil {
		svc.metrics.DisbursementsTotal.WithLabelValues(string(constants.DisbursementApproved)).Inc()
	}
	svc.audit.Record(ctx, &approverID, "disbursement.approved", "disbursement", disbursement.ID, before, disbursement)

	logging.Info("disbursement approved",
		"disbursement_id", disbursement.ID,
		"approved_by", approverID,
	)

	return disbursement, nil
}

// Reject moves pending to rejected.
func (svc *DisbursementService) Reject(ctx context.Context, disbursementID, actorID string) (*models.Disbursement, error) {
	return svc.transition(ctx, disbursementID, actorID, constants.DisbursementRejected, "disbursement.rejected")
}

// MarkProcessing records that the bank transfer started.
func (svc *DisbursementService) MarkProcessing(ctx context.Context, disbursementID, actorID string) (*models.Disbursement, error) {
	return svc.transition(ctx, disbursementID, actorID, constants.DisbursementProcessing, "disbursement.processing")
}

// MarkCompleted records a settled transfer.
func (svc *DisbursementService) MarkCompleted(ctx context.Context, disbursementID, actorID string) (*models.Disbursement, error) {
	return svc.transition(ctx, disbursementID, actorID, constants.DisbursementCompleted, "disbursement.completed")
}

// MarkFailed records a bounced transfer.
func (svc *DisbursementService) MarkFailed(ctx context.Context, disbursementID, actorID string) (*models.Disbursement, error) {
	return svc.transition(ctx, disbursementID, actorID, constants.DisbursementFailed, "disbursement.failed")
}

func (svc *DisbursementService) transition(ctx context.Context, disbursementID, actorID string, next constants.DisbursementStatus, action string) (*models.Disbursement, error) {
	disbursement, err := svc.disbursementRepo.GetByID(ctx, disbursementID)
	if err != nil {
		return nil, err
	}

	if !disbursement.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s: %s -> %s", constants.MsgBadTransition, disbursement.Status, next)
	}

	before := *disbursement
	disbursement.Status = next

	if err := svc.disbursementRepo.Update(ctx, disbursement); err != nil {
		return nil, err
	}

	if svc.metrics != nil {
		svc.metrics.DisbursementsTotal.WithLabelValues(string(next)).Inc()
	}
	svc.audit.Record(ctx, &actorID, action, "disbursement", disbursement.ID, before, disbursement)

	return disbursement, nil
}

// ListByOrg returns an organization's disbursements, newest first.
func (svc *DisbursementService) ListByOrg(ctx context.Context, orgID string) ([]models.Disbursement, error) {
	return svc.disbursementRepo.GetAllByOrgID(ctx, orgID)
}
