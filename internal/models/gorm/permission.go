package gorm

import (
	"time"

	"grassroots/warchest/internal/constants"
)

// Permission is a row in the static permission catalog.
type Permission struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Permission) TableName() string {
	return "permissions"
}

// RolePermission is a default grant for either an org role or a platform
// role. Exactly one of OrgRole / PlatformRole is set per row.
type RolePermission struct {
	ID           string                  `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	OrgRole      *constants.OrgRole      `gorm:"column:org_role;type:org_role;uniqueIndex:idx_role_perm"`
	PlatformRole *constants.PlatformRole `gorm:"column:platform_role;type:platform_role;uniqueIndex:idx_role_perm"`
	Permission   string                  `gorm:"column:permission;uniqueIndex:idx_role_perm"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (RolePermission) TableName() string {
	return "role_permissions"
}

// UserPermission is a per-user override: an explicit grant or denial that
// beats role defaults during resolution. OrgID nil means global scope.
// ExpiresAt nil means the override never expires.
type UserPermission struct {
	ID         string     `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	UserID     string     `gorm:"column:user_id;type:uuid;index"`
	Permission string     `gorm:"column:permission"`
	OrgID      *string    `gorm:"column:org_id;type:uuid"`
	Granted    bool       `gorm:"column:granted"`
	Revoked    bool       `gorm:"column:revoked;default:false"`
	ExpiresAt  *time.Time `gorm:"column:expires_at"`
	GrantedBy  string     `gorm:"column:granted_by;type:uuid"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	User User `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (UserPermission) TableName() string {
	return "user_permissions"
}
