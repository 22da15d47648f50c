package repositories

import (
	"context"
	"fmt"

	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// AuditRepository appends to the audit tables. Reads are admin-only.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append writes one audit row
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

// AppendPermission writes one permission-audit row
func (r *AuditRepository) AppendPermission(ctx context.Context, entry *models.PermissionAuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append permission audit log: %w", err)
	}
	return nil
}

// ListByEntity returns the audit trail for one entity, newest first
func (r *AuditRepository) ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog

	if limit <= 0 {
		limit = 100
	}

	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return entries, nil
}
