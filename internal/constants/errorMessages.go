package constants

const (
	StatusError              = "Error"
	StatusEmailTaken         = "Email already registered"
	StatusOrgNotVerified     = "Organization is not verified"
	StatusInsertFailed       = "Unable to insert"
	StatusRegistered         = "User has been registered"
	StatusSuspended          = "Account suspended"
	StatusMembershipExists   = "User is already a member of this organization"
	StatusFundraiserInactive = "Fundraiser is not accepting donations"
)

const (
	MsgPermissionDenied  = "Permission denied"
	MsgAnonCapExceeded   = "Anonymous donations above the cap must include donor identity"
	MsgBadTransition     = "Status transition not allowed"
	MsgSelfApproval      = "Disbursements must be approved by a different user than their creator"
	MsgUnknownPermission = "Unknown permission name"
	MsgDuplicateWebhook  = "Gateway event already applied"
)
