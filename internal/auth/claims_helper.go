package auth

import (
	"fmt"
	"os"
	"strings"

	"grassroots/warchest/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the raw JWT payload shape the identity provider issues.
type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseBearerToken validates an HS256 token against the shared secret and
// returns the platform claims. The subject is the user's UUID.
func ParseBearerToken(tokenString string) (*JWTClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not configured")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}

	return &JWTClaims{
		UserUUID:  sub,
		RoleValue: constants.PlatformRole(claims.Role),
		EmailVal:  claims.Email,
	}, nil
}

// IsSuperAdmin checks the break-glass list of operator user ids from the
// environment. Normal super-admin access comes from the platform_role column;
// this is the bootstrap path before any roles exist.
func IsSuperAdmin(userID string) bool {
	raw := os.Getenv("SUPER_ADMIN_IDS")
	if raw == "" {
		return false
	}

	for _, id := range strings.Split(raw, ",") {
		if strings.TrimSpace(id) == userID {
			return true
		}
	}
	return false
}
