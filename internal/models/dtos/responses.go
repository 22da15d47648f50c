package dtos

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// RegistrationStep reports one stage of a multi-step operation so callers can
// see exactly which check failed.
type RegistrationStep struct {
	Name    string `json:"name"`
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type RegisterUserResponse struct {
	Email   string             `json:"email"`
	UserID  string             `json:"user_id,omitempty"`
	Status  bool               `json:"status"`
	Message string             `json:"message,omitempty"`
	Steps   []RegistrationStep `json:"steps"`
}

type RegisterOrgResponse struct {
	Slug    string             `json:"slug"`
	OrgID   string             `json:"org_id,omitempty"`
	Status  bool               `json:"status"`
	Message string             `json:"message,omitempty"`
	Steps   []RegistrationStep `json:"steps"`
}

type PermissionCheckResponse struct {
	UserID     string  `json:"user_id"`
	Permission string  `json:"permission"`
	OrgID      *string `json:"org_id,omitempty"`
	Allowed    bool    `json:"allowed"`
}

type EffectivePermissionsResponse struct {
	UserID      string   `json:"user_id"`
	OrgID       *string  `json:"org_id,omitempty"`
	Permissions []string `json:"permissions"`
}

type FundraiserSummary struct {
	FundraiserID       string `json:"fundraiser_id"`
	Title              string `json:"title"`
	GoalAmountCents    int64  `json:"goal_amount_cents"`
	CurrentAmountCents int64  `json:"current_amount_cents"`
	DonationCount      int64  `json:"donation_count"`
	IsPublished        bool   `json:"is_published"`
}

type DonorTotalEntry struct {
	UserID               *string `json:"user_id"`
	TotalCents           int64   `json:"total_cents"`
	DonationCount        int64   `json:"donation_count"`
	RequiresItemization  bool    `json:"requires_itemization"`
}

type JobStatusResponse struct {
	JobName   string `json:"job_name"`
	Running   bool   `json:"running"`
	LastRun   string `json:"last_run,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

type QueueDepthResponse struct {
	Stream  string `json:"stream"`
	Length  int64  `json:"length"`
	Pending int64  `json:"pending"`
}
