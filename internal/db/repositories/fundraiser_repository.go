package repositories

import (
	"context"
	"fmt"

	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FundraiserRepository manages fundraiser data with GORM
type FundraiserRepository struct {
	db *gorm.DB
}

// NewFundraiserRepository creates a new fundraiser repository
func NewFundraiserRepository(db *gorm.DB) *FundraiserRepository {
	return &FundraiserRepository{db: db}
}

// GetByID retrieves a fundraiser with its organization preloaded
func (r *FundraiserRepository) GetByID(ctx context.Context, id string) (*models.Fundraiser, error) {
	var fundraiser models.Fundraiser

	err := r.db.WithContext(ctx).
		Preload("Org").
		Where("id = ?", id).
		First(&fundraiser).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("fundraiser not found")
		}
		return nil, fmt.Errorf("failed to fetch fundraiser: %w", err)
	}

	return &fundraiser, nil
}

// GetAllByOrgID retrieves all fundraisers for an organization
func (r *FundraiserRepository) GetAllByOrgID(ctx context.Context, orgID string) ([]models.Fundraiser, error) {
	var fundraisers []models.Fundraiser

	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&fundraisers).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch fundraisers: %w", err)
	}

	return fundraisers, nil
}

// ListActive returns every published fundraiser, used by the reconciliation
// sweep.
func (r *FundraiserRepository) ListActive(ctx context.Context) ([]models.Fundraiser, error) {
	var fundraisers []models.Fundraiser

	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Find(&fundraisers).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list active fundraisers: %w", err)
	}

	return fundraisers, nil
}

// Create creates a new fundraiser
func (r *FundraiserRepository) Create(ctx context.Context, fundraiser *models.Fundraiser) error {
	if err := r.db.WithContext(ctx).Create(fundraiser).Error; err != nil {
		return fmt.Errorf("failed to create fundraiser: %w", err)
	}
	return nil
}

// Update saves fundraiser changes
func (r *FundraiserRepository) Update(ctx context.Context, fundraiser *models.Fundraiser) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(fundraiser).Error; err != nil {
		return fmt.Errorf("failed to update fundraiser: %w", err)
	}
	return nil
}
