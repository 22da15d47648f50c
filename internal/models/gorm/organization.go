package gorm

import (
	"time"

	"grassroots/warchest/internal/constants"
)

// Organization is a political entity that can receive funds. It must reach
// verification_status 'verified' before any of its fundraisers may publish.
type Organization struct {
	ID                 string                       `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	Name               string                       `gorm:"column:name"`
	Slug               string                       `gorm:"column:slug;uniqueIndex"`
	FECCommitteeID     *string                      `gorm:"column:fec_committee_id"`
	VerificationStatus constants.VerificationStatus `gorm:"column:verification_status;type:verification_status;default:pending"`
	IsActive           bool                         `gorm:"column:is_active;default:true"`
	CreatedAt          time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                    `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Memberships []OrgMembership `gorm:"foreignKey:OrgID"`
	Fundraisers []Fundraiser    `gorm:"foreignKey:OrgID"`
}

// TableName specifies the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}
