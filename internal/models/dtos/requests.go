package dtos

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
}

type VerifyUserRequest struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Employer     string `json:"employer"`
	Occupation   string `json:"occupation"`
	IsUSCitizen  bool   `json:"is_us_citizen"`
}

type RegisterOrgRequest struct {
	Name           string `json:"name" validate:"required"`
	Slug           string `json:"slug" validate:"required,min=3"`
	FECCommitteeID string `json:"fec_committee_id"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type SetMemberRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type CreateFundraiserRequest struct {
	OrgID           string `json:"org_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	GoalAmountCents int64  `json:"goal_amount_cents"`
}

type CreateDonationRequest struct {
	FundraiserID string  `json:"fundraiser_id"`
	UserID       *string `json:"user_id"` // nil for anonymous
	AmountCents  int64   `json:"amount_cents"`
	Currency     string  `json:"currency"`
}

// PaymentWebhookRequest is the gateway's callback payload. The platform only
// persists the reported status and transaction id.
type PaymentWebhookRequest struct {
	DonationID  string `json:"donation_id"`
	GatewayTxID string `json:"gateway_tx_id"`
	Status      string `json:"status"`
	EventID     string `json:"event_id"`
}

type CreateDisbursementRequest struct {
	OrgID       string   `json:"org_id"`
	DonationIDs []string `json:"donation_ids"`
	Notes       string   `json:"notes"`
}

type GrantPermissionRequest struct {
	UserID     string  `json:"user_id"`
	Permission string  `json:"permission"`
	OrgID      *string `json:"org_id"` // nil for global scope
	Granted    bool    `json:"granted"`
	ExpiresAt  *string `json:"expires_at"` // RFC3339, nil = unbounded
}

type RevokePermissionRequest struct {
	UserID     string  `json:"user_id"`
	Permission string  `json:"permission"`
	OrgID      *string `json:"org_id"`
}

type CheckPermissionRequest struct {
	UserID     string  `json:"user_id"`
	Permission string  `json:"permission"`
	OrgID      *string `json:"org_id"`
}
