package repositories

import (
	"context"
	"fmt"

	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipRepository manages org membership data with GORM
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// GetByUserAndOrg retrieves a user's membership in a specific organization
func (r *MembershipRepository) GetByUserAndOrg(ctx context.Context, userID, orgID string) (*models.OrgMembership, error) {
	var membership models.OrgMembership

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Org").
		Where("user_id = ? AND org_id = ? AND is_active = ?", userID, orgID, true).
		First(&membership).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}

	return &membership, nil
}

// GetAllByUserID retrieves all active memberships for a user (with org details)
func (r *MembershipRepository) GetAllByUserID(ctx context.Context, userID string) ([]models.OrgMembership, error) {
	var memberships []models.OrgMembership

	err := r.db.WithContext(ctx).
		Preload("Org").
		Joins("JOIN organizations o ON o.id = org_memberships.org_id").
		Where("user_id = ? AND org_memberships.is_active = ?", userID, true).
		Order("o.name ASC").
		Find(&memberships).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch user memberships: %w", err)
	}

	return memberships, nil
}

// GetAllByOrgID retrieves all active members of an organization with their roles
func (r *MembershipRepository) GetAllByOrgID(ctx context.Context, orgID string) ([]models.OrgMembership, error) {
	var memberships []models.OrgMembership

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("org_id = ? AND is_active = ?", orgID, true).
		Find(&memberships).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch organization members: %w", err)
	}

	return memberships, nil
}

// Create creates a new membership
func (r *MembershipRepository) Create(ctx context.Context, membership *models.OrgMembership) error {
	err := r.db.WithContext(ctx).Create(membership).Error
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// Update updates an existing membership
func (r *MembershipRepository) Update(ctx context.Context, membership *models.OrgMembership) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(membership).Error
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a membership by setting is_active to false
func (r *MembershipRepository) Deactivate(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Model(&models.OrgMembership{}).
		Where("id = ?", id).
		Update("is_active", false).Error

	if err != nil {
		return fmt.Errorf("failed to deactivate membership: %w", err)
	}
	return nil
}
