package repositories

import (
	"context"
	"fmt"

	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// CandidateRepository manages the read-only candidate reference table and its
// sync history
type CandidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// ListAll returns every candidate row
func (r *CandidateRepository) ListAll(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&candidates).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	return candidates, nil
}

// ReplaceAll swaps the reference table wholesale inside one transaction. The
// feed is the source of truth; local rows carry no edits worth preserving.
func (r *CandidateRepository) ReplaceAll(ctx context.Context, candidates []models.Candidate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Candidate{}).Error; err != nil {
			return fmt.Errorf("failed to clear candidates: %w", err)
		}

		if len(candidates) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(candidates, 500).Error; err != nil {
			return fmt.Errorf("failed to insert candidates: %w", err)
		}

		return nil
	})
}

// RecordSync writes a sync-history row
func (r *CandidateRepository) RecordSync(ctx context.Context, history *models.CandidateSyncHistory) error {
	if err := r.db.WithContext(ctx).Create(history).Error; err != nil {
		return fmt.Errorf("failed to record candidate sync: %w", err)
	}
	return nil
}

// LastSync returns the most recent sync-history row, or nil if none exists
func (r *CandidateRepository) LastSync(ctx context.Context) (*models.CandidateSyncHistory, error) {
	var history models.CandidateSyncHistory

	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		First(&history).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch sync history: %w", err)
	}

	return &history, nil
}
