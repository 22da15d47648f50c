package constants

import (
	"database/sql/driver"
	"fmt"
)

// PlatformRole mirrors the Postgres ENUM 'platform_role'
type PlatformRole string

const (
	PlatformRoleDonor      PlatformRole = "donor"
	PlatformRoleOrgUser    PlatformRole = "org_user"
	PlatformRoleAdmin      PlatformRole = "platform_admin"
	PlatformRoleSuperAdmin PlatformRole = "super_admin"
)

// Stringer ­– convenient for fmt / logs
func (r PlatformRole) String() string { return string(r) }

// IsValid reports whether r is one of the known platform roles.
func (r PlatformRole) IsValid() bool {
	switch r {
	case PlatformRoleDonor, PlatformRoleOrgUser, PlatformRoleAdmin, PlatformRoleSuperAdmin:
		return true
	}
	return false
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *PlatformRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = PlatformRole(v)
	case []byte:
		*r = PlatformRole(v)
	default:
		return fmt.Errorf("PlatformRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r PlatformRole) Value() (driver.Value, error) { return string(r), nil }

// OrgRole mirrors the Postgres ENUM 'org_role'. Closed set; one membership row
// per (user, organization) pair carries exactly one of these.
type OrgRole string

const (
	OrgRoleOwner      OrgRole = "owner"
	OrgRoleAdmin      OrgRole = "admin"
	OrgRoleTreasurer  OrgRole = "treasurer"
	OrgRoleCompliance OrgRole = "compliance"
	OrgRoleEditor     OrgRole = "editor"
	OrgRoleViewer     OrgRole = "viewer"
)

func (r OrgRole) String() string { return string(r) }

// IsValid reports whether r is one of the known org roles.
func (r OrgRole) IsValid() bool {
	switch r {
	case OrgRoleOwner, OrgRoleAdmin, OrgRoleTreasurer, OrgRoleCompliance, OrgRoleEditor, OrgRoleViewer:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface
func (r *OrgRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = OrgRole(v)
	case []byte:
		*r = OrgRole(v)
	default:
		return fmt.Errorf("OrgRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r OrgRole) Value() (driver.Value, error) { return string(r), nil }
