package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type KeysRepo struct {
	db *sqlx.DB
}

func NewApiKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db}
}

// GetStatus looks up a key by the hash of its plaintext. Only hashes are
// stored.
func (r *KeysRepo) GetStatus(ctx context.Context, apiKey string) (*entities.ApiKey, error) {
	var keyRes entities.ApiKey

	sum := sha256.Sum256([]byte(apiKey))
	keyHash := hex.EncodeToString(sum[:])

	err := r.db.QueryRowxContext(ctx, constants.GetStatusByApiKey, keyHash).StructScan(&keyRes)

	if err != nil {
		return nil, err
	}

	return &keyRes, nil
}
