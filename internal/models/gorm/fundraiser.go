package gorm

import "time"

// Fundraiser belongs to exactly one organization. CurrentAmountCents is a
// derived column: it is recomputed from completed donations inside the same
// transaction as any status change, never incremented in place.
type Fundraiser struct {
	ID                 string     `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	OrgID              string     `gorm:"column:org_id;type:uuid;index"`
	Title              string     `gorm:"column:title"`
	Description        string     `gorm:"column:description"`
	GoalAmountCents    int64      `gorm:"column:goal_amount_cents"`
	CurrentAmountCents int64      `gorm:"column:current_amount_cents;default:0"`
	IsPublished        bool       `gorm:"column:is_published;default:false"`
	PublishedAt        *time.Time `gorm:"column:published_at"`
	EndsAt             *time.Time `gorm:"column:ends_at"`
	CreatedBy          string     `gorm:"column:created_by;type:uuid"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Org       Organization `gorm:"foreignKey:OrgID"`
	Donations []Donation   `gorm:"foreignKey:FundraiserID"`
}

// TableName specifies the table name for GORM
func (Fundraiser) TableName() string {
	return "fundraisers"
}
