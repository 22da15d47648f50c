package constants

import (
	"fmt"
	"regexp"
)

// Permission is a validated 'resource.action' identifier. Wrapping the raw
// string keeps permission names out of handler code and catches typos at the
// boundary instead of deep inside a lookup.
type Permission string

const (
	PermFundraiserCreate    Permission = "fundraiser.create"
	PermFundraiserPublish   Permission = "fundraiser.publish"
	PermFundraiserEdit      Permission = "fundraiser.edit"
	PermDonationView        Permission = "donation.view"
	PermDonationRefund      Permission = "donation.refund"
	PermDisbursementCreate  Permission = "disbursement.create"
	PermDisbursementApprove Permission = "disbursement.approve"
	PermOrgManageMembers    Permission = "org.manage_members"
	PermOrgEditProfile      Permission = "org.edit_profile"
	PermOrgViewReports      Permission = "org.view_reports"
	PermUserManagePerms     Permission = "user.manage_permissions"
	PermAuditView           Permission = "audit.view"
	PermCandidateSync       Permission = "candidate.sync"
)

var permissionPattern = regexp.MustCompile(`^[a-z_]+\.[a-z_]+$`)

func (p Permission) String() string { return string(p) }

// Validate rejects anything that is not a known 'resource.action' shape.
func (p Permission) Validate() error {
	if !permissionPattern.MatchString(string(p)) {
		return fmt.Errorf("invalid permission name %q", string(p))
	}
	return nil
}

// PermissionCatalog lists every permission the platform knows about. Seeded
// into the permissions table; grants referencing unknown names are rejected.
var PermissionCatalog = []Permission{
	PermFundraiserCreate,
	PermFundraiserPublish,
	PermFundraiserEdit,
	PermDonationView,
	PermDonationRefund,
	PermDisbursementCreate,
	PermDisbursementApprove,
	PermOrgManageMembers,
	PermOrgEditProfile,
	PermOrgViewReports,
	PermUserManagePerms,
	PermAuditView,
	PermCandidateSync,
}

// DefaultOrgRoleGrants are the role_permissions rows for organization roles.
// Owner is intentionally absent: owners short-circuit to allow during
// resolution and need no explicit grants.
var DefaultOrgRoleGrants = map[OrgRole][]Permission{
	OrgRoleAdmin: {
		PermFundraiserCreate, PermFundraiserPublish, PermFundraiserEdit,
		PermDonationView, PermDonationRefund,
		PermDisbursementCreate, PermDisbursementApprove,
		PermOrgManageMembers, PermOrgEditProfile, PermOrgViewReports,
	},
	OrgRoleTreasurer: {
		PermDonationView, PermDisbursementCreate, PermDisbursementApprove,
		PermOrgViewReports,
	},
	OrgRoleCompliance: {
		PermDonationView, PermOrgViewReports, PermAuditView,
	},
	OrgRoleEditor: {
		PermFundraiserCreate, PermFundraiserEdit,
	},
	OrgRoleViewer: {
		PermOrgViewReports,
	},
}

// DefaultPlatformRoleGrants are the role_permissions rows for platform roles.
// super_admin is intentionally absent for the same reason as org owner.
var DefaultPlatformRoleGrants = map[PlatformRole][]Permission{
	PlatformRoleAdmin: {
		PermDonationView, PermOrgViewReports, PermAuditView,
		PermUserManagePerms, PermCandidateSync,
	},
}
