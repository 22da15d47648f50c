package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceAPI       RequestSource = "API"
	RequestSourceWebClient RequestSource = "WEB_CLIENT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixPermission    CachePrefix = "PERM_"
	CachePrefixUserPerms     CachePrefix = "USER_PERMS_"
	CachePrefixCandidates    CachePrefix = "CANDIDATES_"
	CachePrefixFundraiserSum CachePrefix = "FR_SUM_"
)

const (
	// AnonymousDonationCapCents is the FEC-motivated ceiling for donations
	// made without donor identity. Overridable via ANON_DONATION_CAP_CENTS.
	AnonymousDonationCapCents int64 = 20000

	// ItemizationThresholdCents is the cumulative per-donor amount above
	// which donor identity must be disclosed in regulatory filings.
	ItemizationThresholdCents int64 = 20000

	// PaymentWebhookStream is the Redis stream carrying gateway callbacks.
	PaymentWebhookStream = "payment_webhooks"
	// PaymentWebhookGroup is the consumer group draining that stream.
	PaymentWebhookGroup = "warchest_workers"
)
