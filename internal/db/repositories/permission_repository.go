package repositories

import (
	"context"
	"fmt"
	"time"

	"grassroots/warchest/internal/constants"
	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// PermissionRepository manages the three-tier authorization data: the static
// permission catalog, default role grants, and per-user overrides.
type PermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// FindOverride returns the most specific live override for (user, permission,
// org). Org-scoped rows beat global rows; expired and revoked rows are
// filtered out here so resolution never sees them.
func (r *PermissionRepository) FindOverride(ctx context.Context, userID string, perm constants.Permission, orgID *string) (*models.UserPermission, error) {
	var override models.UserPermission

	q := r.db.WithContext(ctx).
		Where("user_id = ? AND permission = ? AND revoked = ?", userID, perm.String(), false).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())

	if orgID != nil {
		// Prefer the org-scoped row, fall back to a global one
		q = q.Where("org_id = ? OR org_id IS NULL", *orgID).
			Order("org_id IS NULL ASC")
	} else {
		q = q.Where("org_id IS NULL")
	}

	err := q.First(&override).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch permission override: %w", err)
	}

	return &override, nil
}

// HasOrgRoleGrant checks the role_permissions defaults for an org role
func (r *PermissionRepository) HasOrgRoleGrant(ctx context.Context, role constants.OrgRole, perm constants.Permission) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.RolePermission{}).
		Where("org_role = ? AND permission = ?", role, perm.String()).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check org role grant: %w", err)
	}

	return count > 0, nil
}

// HasPlatformRoleGrant checks the role_permissions defaults for a platform role
func (r *PermissionRepository) HasPlatformRoleGrant(ctx context.Context, role constants.PlatformRole, perm constants.Permission) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.RolePermission{}).
		Where("platform_role = ? AND permission = ?", role, perm.String()).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check platform role grant: %w", err)
	}

	return count > 0, nil
}

// ListOrgRoleGrants returns all default permissions for an org role
func (r *PermissionRepository) ListOrgRoleGrants(ctx context.Context, role constants.OrgRole) ([]string, error) {
	var perms []string

	err := r.db.WithContext(ctx).
		Model(&models.RolePermission{}).
		Where("org_role = ?", role).
		Pluck("permission", &perms).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list org role grants: %w", err)
	}

	return perms, nil
}

// ListPlatformRoleGrants returns all default permissions for a platform role
func (r *PermissionRepository) ListPlatformRoleGrants(ctx context.Context, role constants.PlatformRole) ([]string, error) {
	var perms []string

	err := r.db.WithContext(ctx).
		Model(&models.RolePermission{}).
		Where("platform_role = ?", role).
		Pluck("permission", &perms).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list platform role grants: %w", err)
	}

	return perms, nil
}

// ListOverrides returns all live overrides for a user, optionally org-scoped
func (r *PermissionRepository) ListOverrides(ctx context.Context, userID string, orgID *string) ([]models.UserPermission, error) {
	var overrides []models.UserPermission

	q := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked = ?", userID, false).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())

	if orgID != nil {
		q = q.Where("org_id = ? OR org_id IS NULL", *orgID)
	}

	if err := q.Find(&overrides).Error; err != nil {
		return nil, fmt.Errorf("failed to list permission overrides: %w", err)
	}

	return overrides, nil
}

// CreateOverride inserts a new user-permission override
func (r *PermissionRepository) CreateOverride(ctx context.Context, override *models.UserPermission) error {
	if err := r.db.WithContext(ctx).Create(override).Error; err != nil {
		return fmt.Errorf("failed to create permission override: %w", err)
	}
	return nil
}

// RevokeOverride marks matching overrides revoked. Rows are kept for the
// permission audit trail rather than deleted.
func (r *PermissionRepository) RevokeOverride(ctx context.Context, userID string, perm constants.Permission, orgID *string) error {
	q := r.db.WithContext(ctx).
		Model(&models.UserPermission{}).
		Where("user_id = ? AND permission = ? AND revoked = ?", userID, perm.String(), false)

	if orgID != nil {
		q = q.Where("org_id = ?", *orgID)
	} else {
		q = q.Where("org_id IS NULL")
	}

	if err := q.Update("revoked", true).Error; err != nil {
		return fmt.Errorf("failed to revoke permission override: %w", err)
	}
	return nil
}

// SeedDefaults writes the permission catalog and default role grants.
// Idempotent; existing rows are left alone.
func (r *PermissionRepository) SeedDefaults(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range constants.PermissionCatalog {
			var count int64
			if err := tx.Model(&models.Permission{}).Where("name = ?", p.String()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				if err := tx.Create(&models.Permission{Name: p.String()}).Error; err != nil {
					return fmt.Errorf("failed to seed permission %s: %w", p, err)
				}
			}
		}

		for role, perms := range constants.DefaultOrgRoleGrants {
			role := role
			for _, p := range perms {
				var count int64
				if err := tx.Model(&models.RolePermission{}).
					Where("org_role = ? AND permission = ?", role, p.String()).
					Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					if err := tx.Create(&models.RolePermission{OrgRole: &role, Permission: p.String()}).Error; err != nil {
						return fmt.Errorf("failed to seed org grant %s/%s: %w", role, p, err)
					}
				}
			}
		}

		for role, perms := range constants.DefaultPlatformRoleGrants {
			role := role
			for _, p := range perms {
				var count int64
				if err := tx.Model(&models.RolePermission{}).
					Where("platform_role = ? AND permission = ?", role, p.String()).
					Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					if err := tx.Create(&models.RolePermission{PlatformRole: &role, Permission: p.String()}).Error; err != nil {
						return fmt.Errorf("failed to seed platform grant %s/%s: %w", role, p, err)
					}
				}
			}
		}

		return nil
	})
}
