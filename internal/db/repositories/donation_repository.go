package repositories

import (
	"context"
	"fmt"

	"grassroots/warchest/internal/constants"
	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// DonationRepository manages donation data with GORM
type DonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// GetByID retrieves a donation by ID
func (r *DonationRepository) GetByID(ctx context.Context, id string) (*models.Donation, error) {
	var donation models.Donation

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&donation).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("donation not found")
		}
		return nil, fmt.Errorf("failed to fetch donation: %w", err)
	}

	return &donation, nil
}

// GetByGatewayTxID retrieves a donation by the payment gateway's transaction id
func (r *DonationRepository) GetByGatewayTxID(ctx context.Context, txID string) (*models.Donation, error) {
	var donation models.Donation

	err := r.db.WithContext(ctx).
		Where("gateway_tx_id = ?", txID).
		First(&donation).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("donation not found")
		}
		return nil, fmt.Errorf("failed to fetch donation: %w", err)
	}

	return &donation, nil
}

// GetAllByFundraiser retrieves donations for a fundraiser, newest first
func (r *DonationRepository) GetAllByFundraiser(ctx context.Context, fundraiserID string) ([]models.Donation, error) {
	var donations []models.Donation

	err := r.db.WithContext(ctx).
		Where("fundraiser_id = ?", fundraiserID).
		Order("created_at DESC").
		Find(&donations).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch donations: %w", err)
	}

	return donations, nil
}

// Create inserts a new donation
func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

// SumCompleted returns the authoritative total for a fundraiser: the sum of
// its completed donations. Always recomputed, never read from a counter.
func (r *DonationRepository) SumCompleted(ctx context.Context, fundraiserID string) (int64, error) {
	return sumCompleted(r.db.WithContext(ctx), fundraiserID)
}

func sumCompleted(tx *gorm.DB, fundraiserID string) (int64, error) {
	var total int64

	err := tx.Model(&models.Donation{}).
		Where("fundraiser_id = ? AND status = ?", fundraiserID, constants.DonationCompleted).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error

	if err != nil {
		return 0, fmt.Errorf("failed to sum completed donations: %w", err)
	}

	return total, nil
}

// CountCompleted returns the number of completed donations for a fundraiser
func (r *DonationRepository) CountCompleted(ctx context.Context, fundraiserID string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("fundraiser_id = ? AND status = ?", fundraiserID, constants.DonationCompleted).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count completed donations: %w", err)
	}

	return count, nil
}
