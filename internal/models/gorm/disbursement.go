package gorm

import (
	"time"

	"grassroots/warchest/internal/constants"
)

// Disbursement is an outbound payout from the platform to an organization.
// CreatedBy and ApprovedBy are distinct columns so the two-person rule can be
// checked at approval time.
type Disbursement struct {
	ID          string                       `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	OrgID       string                       `gorm:"column:org_id;type:uuid;index"`
	AmountCents int64                        `gorm:"column:amount_cents"`
	Status      constants.DisbursementStatus `gorm:"column:status;type:disbursement_status;default:pending"`
	CreatedBy   string                       `gorm:"column:created_by;type:uuid"`
	ApprovedBy  *string                      `gorm:"column:approved_by;type:uuid"`
	ApprovedAt  *time.Time                   `gorm:"column:approved_at"`
	Notes       string                       `gorm:"column:notes"`
	CreatedAt   time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                    `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Org       Organization       `gorm:"foreignKey:OrgID"`
	Donations []DisbursementItem `gorm:"foreignKey:DisbursementID"`
}

// TableName specifies the table name for GORM
func (Disbursement) TableName() string {
	return "disbursements"
}

// DisbursementItem ties a disbursement to the completed donations it pays
// out. The unique index on donation_id stops a donation from being disbursed
// twice.
type DisbursementItem struct {
	ID             string `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	DisbursementID string `gorm:"column:disbursement_id;type:uuid;index"`
	DonationID     string `gorm:"column:donation_id;type:uuid;uniqueIndex"`

	// Relationships
	Donation Donation `gorm:"foreignKey:DonationID"`
}

// TableName specifies the table name for GORM
func (DisbursementItem) TableName() string {
	return "disbursement_items"
}
