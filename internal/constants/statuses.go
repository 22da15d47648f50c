package constants

import (
	"database/sql/driver"
	"fmt"
)

// UserStatus mirrors the Postgres ENUM 'user_status'. Users are never hard
// deleted; they only move between these states.
type UserStatus string

const (
	UserStatusActive              UserStatus = "active"
	UserStatusSuspended           UserStatus = "suspended"
	UserStatusPendingVerification UserStatus = "pending_verification"
)

func (s UserStatus) String() string { return string(s) }

// Scan implements the sql.Scanner interface
func (s *UserStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = UserStatus(v)
	case []byte:
		*s = UserStatus(v)
	default:
		return fmt.Errorf("UserStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s UserStatus) Value() (driver.Value, error) { return string(s), nil }

// DonationStatus mirrors the Postgres ENUM 'donation_status'.
//
// Lifecycle: pending -> processing -> {completed | failed | cancelled},
// and completed -> refunded. Rows in a terminal state are immutable except
// for the refund transition.
type DonationStatus string

const (
	DonationPending    DonationStatus = "pending"
	DonationProcessing DonationStatus = "processing"
	DonationCompleted  DonationStatus = "completed"
	DonationFailed     DonationStatus = "failed"
	DonationCancelled  DonationStatus = "cancelled"
	DonationRefunded   DonationStatus = "refunded"
)

func (s DonationStatus) String() string { return string(s) }

// IsTerminal reports whether no further transition is allowed out of s,
// with the single exception of completed -> refunded.
func (s DonationStatus) IsTerminal() bool {
	switch s {
	case DonationCompleted, DonationFailed, DonationCancelled, DonationRefunded:
		return true
	}
	return false
}

var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationPending:    {DonationProcessing, DonationFailed, DonationCancelled},
	DonationProcessing: {DonationCompleted, DonationFailed, DonationCancelled},
	DonationCompleted:  {DonationRefunded},
}

// CanTransitionTo validates a single FSM edge.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	for _, allowed := range donationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Scan implements the sql.Scanner interface
func (s *DonationStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = DonationStatus(v)
	case []byte:
		*s = DonationStatus(v)
	default:
		return fmt.Errorf("DonationStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s DonationStatus) Value() (driver.Value, error) { return string(s), nil }

// DisbursementStatus mirrors the Postgres ENUM 'disbursement_status'.
//
// Lifecycle: pending -> {approved | rejected}, approved -> processing,
// processing -> {completed | failed}.
type DisbursementStatus string

const (
	DisbursementPending    DisbursementStatus = "pending"
	DisbursementApproved   DisbursementStatus = "approved"
	DisbursementRejected   DisbursementStatus = "rejected"
	DisbursementProcessing DisbursementStatus = "processing"
	DisbursementCompleted  DisbursementStatus = "completed"
	DisbursementFailed     DisbursementStatus = "failed"
)

func (s DisbursementStatus) String() string { return string(s) }

var disbursementTransitions = map[DisbursementStatus][]DisbursementStatus{
	DisbursementPending:    {DisbursementApproved, DisbursementRejected},
	DisbursementApproved:   {DisbursementProcessing},
	DisbursementProcessing: {DisbursementCompleted, DisbursementFailed},
}

// CanTransitionTo validates a single FSM edge.
func (s DisbursementStatus) CanTransitionTo(next DisbursementStatus) bool {
	for _, allowed := range disbursementTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Scan implements the sql.Scanner interface
func (s *DisbursementStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = DisbursementStatus(v)
	case []byte:
		*s = DisbursementStatus(v)
	default:
		return fmt.Errorf("DisbursementStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s DisbursementStatus) Value() (driver.Value, error) { return string(s), nil }

// VerificationStatus tracks an organization's vetting state. An organization
// must reach 'verified' before it may publish fundraisers.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) String() string { return string(s) }

// Scan implements the sql.Scanner interface
func (s *VerificationStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = VerificationStatus(v)
	case []byte:
		*s = VerificationStatus(v)
	default:
		return fmt.Errorf("VerificationStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s VerificationStatus) Value() (driver.Value, error) { return string(s), nil }
