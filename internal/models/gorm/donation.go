package gorm

import (
	"time"

	"grassroots/warchest/internal/constants"
)

// Donation belongs to a fundraiser and optionally a user (nil UserID means
// anonymous). Status follows the gateway-driven FSM; GatewayTxID is the
// payment processor's transaction identifier, unique so webhook retries
// cannot apply twice.
type Donation struct {
	ID           string                   `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	FundraiserID string                   `gorm:"column:fundraiser_id;type:uuid;index"`
	UserID       *string                  `gorm:"column:user_id;type:uuid;index"`
	AmountCents  int64                    `gorm:"column:amount_cents"`
	Currency     string                   `gorm:"column:currency;default:USD"`
	Status       constants.DonationStatus `gorm:"column:status;type:donation_status;default:pending"`
	GatewayTxID  *string                  `gorm:"column:gateway_tx_id;uniqueIndex"`
	CompletedAt  *time.Time               `gorm:"column:completed_at"`
	RefundedAt   *time.Time               `gorm:"column:refunded_at"`
	CreatedAt    time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Fundraiser Fundraiser `gorm:"foreignKey:FundraiserID"`
	User       *User      `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (Donation) TableName() string {
	return "donations"
}
