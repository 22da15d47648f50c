package auth

import "grassroots/warchest/internal/constants"

// UserClaims is the authenticated identity attached to every request,
// whatever credential produced it.
type UserClaims interface {
	UserID() string
	PlatformRole() string
	Source() string
	Email() string
}

// JWTClaims is the identity parsed from a bearer token issued by the external
// identity provider.
type JWTClaims struct {
	UserUUID  string
	RoleValue constants.PlatformRole
	EmailVal  string
}

func (c *JWTClaims) UserID() string { return c.UserUUID }
func (c *JWTClaims) PlatformRole() string { // implements UserClaims
	return string(c.RoleValue)
}
func (c *JWTClaims) Source() string { return "JWT" }
func (c *JWTClaims) Email() string  { return c.EmailVal }

// APIKeyClaims is the identity of a service caller (payment gateway webhook,
// import tooling) authenticated with an X-API-Key credential.
type APIKeyClaims struct {
	KeyID    string
	KeyLabel string
}

func (c *APIKeyClaims) UserID() string       { return c.KeyID }
func (c *APIKeyClaims) PlatformRole() string { return "" }
func (c *APIKeyClaims) Source() string       { return "API_KEY" }
func (c *APIKeyClaims) Email() string        { return "" }
