package gorm

import (
	"time"

	"grassroots/warchest/internal/constants"
)

// User carries identity plus the compliance attributes FEC reporting needs
// (address, employer, occupation, citizenship). Rows are never hard-deleted;
// Status transitions do the work instead.
type User struct {
	ID           string                 `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	Email        string                 `gorm:"column:email;uniqueIndex"`
	FullName     string                 `gorm:"column:full_name"`
	PlatformRole constants.PlatformRole `gorm:"column:platform_role;type:platform_role;default:donor"`
	Status       constants.UserStatus   `gorm:"column:status;type:user_status;default:pending_verification"`

	// Compliance attributes, required before a donation can be itemized
	AddressLine1 *string `gorm:"column:address_line1"`
	AddressLine2 *string `gorm:"column:address_line2"`
	City         *string `gorm:"column:city"`
	State        *string `gorm:"column:state"`
	PostalCode   *string `gorm:"column:postal_code"`
	Employer     *string `gorm:"column:employer"`
	Occupation   *string `gorm:"column:occupation"`
	IsUSCitizen  bool    `gorm:"column:is_us_citizen;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Memberships []OrgMembership `gorm:"foreignKey:UserID"`
	Donations   []Donation      `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// OrgMembership links a user to an organization with a single role. The
// composite unique index enforces one membership row per (user, org) pair.
type OrgMembership struct {
	ID       string            `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	UserID   string            `gorm:"column:user_id;type:uuid;uniqueIndex:idx_memberships_user_org"`
	OrgID    string            `gorm:"column:org_id;type:uuid;uniqueIndex:idx_memberships_user_org"`
	Role     constants.OrgRole `gorm:"column:role;type:org_role"`
	IsActive bool              `gorm:"column:is_active;default:true"`
	JoinedAt time.Time         `gorm:"column:joined_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	User User         `gorm:"foreignKey:UserID"`
	Org  Organization `gorm:"foreignKey:OrgID"`
}

// TableName specifies the table name for GORM
func (OrgMembership) TableName() string {
	return "org_memberships"
}
