package entities

// DonorTotal is one row of the per-donor completed-donation aggregation for
// a fundraiser. A nil UserID groups the anonymous donations.
type DonorTotal struct {
	UserID        *string `db:"user_id"`
	TotalCents    int64   `db:"total_cents"`
	DonationCount int64   `db:"donation_count"`
}

// RequiresItemization reports whether this donor's cumulative total crosses
// the regulatory disclosure threshold.
func (d DonorTotal) RequiresItemization(thresholdCents int64) bool {
	return d.TotalCents > thresholdCents
}
