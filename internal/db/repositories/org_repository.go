package repositories

import (
	"context"
	"fmt"

	"grassroots/warchest/internal/constants"
	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// OrgRepository manages organization data with GORM
type OrgRepository struct {
	db *gorm.DB
}

// NewOrgRepository creates a new organization repository
func NewOrgRepository(db *gorm.DB) *OrgRepository {
	return &OrgRepository{db: db}
}

// GetByID retrieves an organization by ID
func (r *OrgRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	var org models.Organization

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&org).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("organization not found")
		}
		return nil, fmt.Errorf("failed to fetch organization: %w", err)
	}

	return &org, nil
}

// GetBySlug retrieves an organization by its URL slug
func (r *OrgRepository) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	var org models.Organization

	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&org).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("organization not found")
		}
		return nil, fmt.Errorf("failed to fetch organization: %w", err)
	}

	return &org, nil
}

// Create creates a new organization
func (r *OrgRepository) Create(ctx context.Context, org *models.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

// SetVerificationStatus transitions an organization's vetting state
func (r *OrgRepository) SetVerificationStatus(ctx context.Context, id string, status constants.VerificationStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("id = ?", id).
		Update("verification_status", status)

	if res.Error != nil {
		return fmt.Errorf("failed to update verification status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("organization not found")
	}
	return nil
}
