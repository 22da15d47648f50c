package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/metrics"
	"grassroots/warchest/internal/models/dtos"
	models "grassroots/warchest/internal/models/gorm"
	"grassroots/warchest/internal/providers"

	"golang.org/x/sync/errgroup"
)

// candidateFetchConcurrency caps parallel feed page fetches so the import
// stays under the feed's rate limit.
const candidateFetchConcurrency = 4

// CandidateImportService refreshes the candidate reference table from the
// regulatory feed. The import is wholesale: the new snapshot replaces the
// whole table in one transaction, so a failed run leaves the old data
// untouched and a re-run is idempotent.
type CandidateImportService struct {
	candidateRepo *repositories.CandidateRepository
	provider      providers.CandidateFeedProvider
	cache         common.CacheInterface
	metrics       *metrics.MetricsRegistry
	audit         *AuditService
}

func NewCandidateImportService(
	candidateRepo *repositories.CandidateRepository,
	provider providers.CandidateFeedProvider,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	audit *AuditService,
) *CandidateImportService {
	return &CandidateImportService{
		candidateRepo: candidateRepo,
		provider:      provider,
		cache:         cache,
		metrics:       metricsReg,
		audit:         audit,
	}
}

// RunImport performs one full refresh and records it in the sync history.
func (svc *CandidateImportService) RunImport(ctx context.Context, actorID *string) (*models.CandidateSyncHistory, error) {
	started := time.Now()

	history := &models.CandidateSyncHistory{
		StartedAt: started,
		Status:    "running",
	}

	rows, err := svc.fetchAll(ctx)
	if err != nil {
		svc.recordFailure(ctx, history, err)
		return history, err
	}

	candidates := svc.dedupe(rows)
	if len(candidates) == 0 {
		err := fmt.Errorf("feed returned no candidates, refusing to wipe table")
		svc.recordFailure(ctx, history, err)
		return history, err
	}

	if err := svc.candidateRepo.ReplaceAll(ctx, candidates); err != nil {
		svc.recordFailure(ctx, history, err)
		return history, err
	}

	completed := time.Now()
	history.CompletedAt = &completed
	history.RowCount = len(candidates)
	history.Status = "completed"

	if err := svc.candidateRepo.RecordSync(ctx, history); err != nil {
		logging.Error("failed to record candidate sync", "error", err.Error())
	}

	svc.cache.DeletePrefix(string(constants.CachePrefixCandidates))

	if svc.metrics != nil {
		svc.metrics.SyncJobDuration.WithLabelValues("candidate_sync").Observe(time.Since(started).Seconds())
	}
	svc.audit.Record(ctx, actorID, "candidate.feed_imported", "candidate_sync", history.ID, nil, history)

	logging.Info("candidate feed imported",
		"row_count", len(candidates),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return history, nil
}

// fetchAll pulls the first page to learn the page count, then fans out over
// the rest with a bounded errgroup.
func (svc *CandidateImportService) fetchAll(ctx context.Context) ([]models.Candidate, error) {
	first, err := svc.provider.FetchPage(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch feed page 1: %w", err)
	}

	pages := make([][]models.Candidate, first.TotalPages)
	pages[0] = mapFeedRecords(first.Results)

	if first.TotalPages > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(candidateFetchConcurrency)

		var mu sync.Mutex
		for page := 2; page <= first.TotalPages; page++ {
			page := page
			g.Go(func() error {
				resp, err := svc.provider.FetchPage(gctx, page)
				if err != nil {
					return fmt.Errorf("fetch feed page %d: %w", page, err)
				}
				mu.Lock()
				pages[page-1] = mapFeedRecords(resp.Results)
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var all []models.Candidate
	for _, page := range pages {
		all = append(all, page...)
	}
	return all, nil
}

// dedupe keeps the first row per FEC candidate id. The feed occasionally
// repeats rows across page boundaries.
func (svc *CandidateImportService) dedupe(rows []models.Candidate) []models.Candidate {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, row := range rows {
		if row.FECCandidateID == "" || seen[row.FECCandidateID] {
			continue
		}
		seen[row.FECCandidateID] = true
		out = append(out, row)
	}
	return out
}

func mapFeedRecords(records []dtos.CandidateFeedRecord) []models.Candidate {
	out := make([]models.Candidate, 0, len(records))
	for _, rec := range records {
		out = append(out, models.Candidate{
			FECCandidateID: rec.FECCandidateID,
			Name:           rec.Name,
			Party:          rec.Party,
			Office:         rec.Office,
			State:          rec.State,
			District:       rec.District,
			ElectionYear:   rec.ElectionYear,
		})
	}
	return out
}

func (svc *CandidateImportService) recordFailure(ctx context.Context, history *models.CandidateSyncHistory, cause error) {
	completed := time.Now()
	msg := cause.Error()
	history.CompletedAt = &completed
	history.Status = "failed"
	history.Error = &msg

	if err := svc.candidateRepo.RecordSync(ctx, history); err != nil {
		logging.Error("failed to record candidate sync failure", "error", err.Error())
	}

	logging.Error("candidate feed import failed", "error", msg)
}

// ListCandidates serves the reference table, cached briefly since the data
// only changes on import.
func (svc *CandidateImportService) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	val, err := svc.cache.GetOrSet(
		fmt.Sprintf("%sall", constants.CachePrefixCandidates),
		5*time.Minute,
		func() (any, error) {
			return svc.candidateRepo.ListAll(ctx)
		},
	)
	if err != nil {
		return nil, err
	}

	if candidates, ok := val.([]models.Candidate); ok {
		return candidates, nil
	}
	// Redis round-trips lose the concrete type; fall back to the DB
	return svc.candidateRepo.ListAll(ctx)
}

// LastSync returns the most recent import record.
func (svc *CandidateImportService) LastSync(ctx context.Context) (*models.CandidateSyncHistory, error) {
	return svc.candidateRepo.LastSync(ctx)
}
