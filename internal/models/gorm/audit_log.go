package gorm

import "time"

// AuditLog is an append-only record of a state-changing action. PartitionKey
// is the YYYY-MM month bucket matching the table's range partitioning; the
// partitions themselves are managed by external DDL.
type AuditLog struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	ActorID      *string   `gorm:"column:actor_id;type:uuid;index"`
	Action       string    `gorm:"column:action;index"`
	EntityType   string    `gorm:"column:entity_type"`
	EntityID     string    `gorm:"column:entity_id"`
	BeforeState  *string   `gorm:"column:before_state;type:jsonb"`
	AfterState   *string   `gorm:"column:after_state;type:jsonb"`
	PartitionKey string    `gorm:"column:partition_key;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

// PermissionAuditLog records every grant/revoke of a user-permission
// override, separate from the general audit stream so compliance reviews can
// query it directly.
type PermissionAuditLog struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	UserID     string    `gorm:"column:user_id;type:uuid;index"`
	Permission string    `gorm:"column:permission"`
	OrgID      *string   `gorm:"column:org_id;type:uuid"`
	Action     string    `gorm:"column:action"` // granted | revoked
	ActorID    string    `gorm:"column:actor_id;type:uuid"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (PermissionAuditLog) TableName() string {
	return "permission_audit_logs"
}
