package services

import (
	"context"
	"encoding/json"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	models "grassroots/warchest/internal/models/gorm"
)

// AuditService appends to the audit trail. Every method is best-effort: a
// failed audit write is logged and swallowed so it can never roll back or
// block the action being recorded.
type AuditService struct {
	auditRepo *repositories.AuditRepository
}

func NewAuditService(auditRepo *repositories.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record writes one audit entry. Before and after snapshots are marshaled to
// JSON; a nil snapshot stays NULL.
func (svc *AuditService) Record(ctx context.Context, actorID *string, action, entityType, entityID string, before, after any) {
	entry := &models.AuditLog{
		ActorID:      actorID,
		Action:       action,
		EntityType:   entityType,
		EntityID:     entityID,
		PartitionKey: common.MonthPartitionKey(time.Now()),
	}

	if before != nil {
		if data, err := json.Marshal(before); err == nil {
			s := string(data)
			entry.BeforeState = &s
		}
	}
	if after != nil {
		if data, err := json.Marshal(after); err == nil {
			s := string(data)
			entry.AfterState = &s
		}
	}

	if err := svc.auditRepo.Append(ctx, entry); err != nil {
		logging.Error("audit append failed",
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err.Error(),
		)
	}
}

// RecordPermissionChange writes to the dedicated permission audit stream.
func (svc *AuditService) RecordPermissionChange(ctx context.Context, userID, permission string, orgID *string, action, actorID string) {
	entry := &models.PermissionAuditLog{
		UserID:     userID,
		Permission: permission,
		OrgID:      orgID,
		Action:     action,
		ActorID:    actorID,
	}

	if err := svc.auditRepo.AppendPermission(ctx, entry); err != nil {
		logging.Error("permission audit append failed",
			"user_id", userID,
			"permission", permission,
			"action", action,
			"error", err.Error(),
		)
	}
}

// History returns the most recent audit entries for one entity.
func (svc *AuditService) History(ctx context.Context, entityType, entityID string, limit int) ([]models.AuditLog, error) {
	return svc.auditRepo.ListByEntity(ctx, entityType, entityID, limit)
}
