package repositories

import (
	"context"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) InsertUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (
			email,
			full_name,
			platform_role,
			status
		)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at;
	`

	return r.db.QueryRowxContext(ctx, query,
		user.Email,
		user.FullName,
		user.PlatformRole,
		user.Status,
	).StructScan(user)
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {

	var user entities.User

	err := r.db.QueryRowxContext(ctx, constants.GetUserByEmail, email).StructScan(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) FindUserById(ctx context.Context, id string) (*entities.User, error) {

	var user entities.User

	err := r.db.QueryRowxContext(ctx, constants.GetUserById, id).StructScan(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// DonorTotals aggregates completed donations per donor for one fundraiser.
func (r *UserRepository) DonorTotals(ctx context.Context, fundraiserID string) ([]entities.DonorTotal, error) {
	var totals []entities.DonorTotal

	if err := r.db.SelectContext(ctx, &totals, constants.GetDonorTotalsByFundraiser, fundraiserID); err != nil {
		return nil, err
	}

	return totals, nil
}
