package repositories

import (
	"context"
	"fmt"

	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DisbursementRepository manages disbursement data with GORM
type DisbursementRepository struct {
	db *gorm.DB
}

// NewDisbursementRepository creates a new disbursement repository
func NewDisbursementRepository(db *gorm.DB) *DisbursementRepository {
	return &DisbursementRepository{db: db}
}

// GetByID retrieves a disbursement with its items preloaded
func (r *DisbursementRepository) GetByID(ctx context.Context, id string) (*models.Disbursement, error) {
	var disbursement models.Disbursement

	err := r.db.WithContext(ctx).
		Preload("Donations").
		Where("id = ?", id).
		First(&disbursement).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("disbursement not found")
		}
		return nil, fmt.Errorf("failed to fetch disbursement: %w", err)
	}

	return &disbursement, nil
}

// GetAllByOrgID retrieves disbursements for an organization, newest first
func (r *DisbursementRepository) GetAllByOrgID(ctx context.Context, orgID string) ([]models.Disbursement, error) {
	var disbursements []models.Disbursement

	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&disbursements).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch disbursements: %w", err)
	}

	return disbursements, nil
}

// Update saves disbursement changes. Items are append-only and written at
// creation time, so association writes are skipped.
func (r *DisbursementRepository) Update(ctx context.Context, disbursement *models.Disbursement) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(disbursement).Error; err != nil {
		return fmt.Errorf("failed to update disbursement: %w", err)
	}
	return nil
}

// IsDonationDisbursed reports whether a donation already belongs to a
// disbursement.
func (r *DisbursementRepository) IsDonationDisbursed(ctx context.Context, donationID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.DisbursementItem{}).
		Where("donation_id = ?", donationID).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check disbursement items: %w", err)
	}

	return count > 0, nil
}
