package jobs

import (
	"context"
	"time"

	"grassroots/warchest/internal/services"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	importSvc *services.CandidateImportService,
) *CandidateSyncJob {
	// Candidate reference data refreshes daily; the feed itself updates
	// on roughly that cadence
	candidateSyncJob := NewCandidateSyncJob(importSvc)

	go candidateSyncJob.RunScheduled(ctx, 24*time.Hour)

	return candidateSyncJob
}
