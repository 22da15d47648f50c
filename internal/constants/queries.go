package constants

const (
	GetUserByEmail = `
	SELECT * FROM users WHERE email = $1
	`

	GetUserById = `
	SELECT * FROM users WHERE id = $1
	`

	GetStatusByApiKey = `
	SELECT id, status, label FROM api_keys WHERE key_hash = $1
	`

	// Per-donor completed totals for one fundraiser, used for itemization
	// threshold reporting. Anonymous donations group under NULL user_id.
	GetDonorTotalsByFundraiser = `
	SELECT user_id, SUM(amount_cents) AS total_cents, COUNT(*) AS donation_count
	FROM donations
	WHERE fundraiser_id = $1 AND status = 'completed'
	GROUP BY user_id
	ORDER BY total_cents DESC
	`

	// Recompute source of truth for a fundraiser's running total.
	SumCompletedDonations = `
	SELECT COALESCE(SUM(amount_cents), 0)
	FROM donations
	WHERE fundraiser_id = $1 AND status = 'completed'
	`
)
