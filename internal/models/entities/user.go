package entities

import (
	"time"

	"grassroots/warchest/internal/constants"
)

type User struct {
	ID           string                 `db:"id"`
	Email        string                 `db:"email"`
	FullName     string                 `db:"full_name"`
	PlatformRole constants.PlatformRole `db:"platform_role"`
	Status       constants.UserStatus   `db:"status"`
	AddressLine1 *string                `db:"address_line1"`
	AddressLine2 *string                `db:"address_line2"`
	City         *string                `db:"city"`
	State        *string                `db:"state"`
	PostalCode   *string                `db:"postal_code"`
	Employer     *string                `db:"employer"`
	Occupation   *string                `db:"occupation"`
	IsUSCitizen  bool                   `db:"is_us_citizen"`
	CreatedAt    time.Time              `db:"created_at"`
	UpdatedAt    time.Time              `db:"updated_at"`
}
