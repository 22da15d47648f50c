package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"grassroots/warchest/internal/models/dtos"
	"grassroots/warchest/internal/services"
)

// CandidateSyncJob runs the feed import on a schedule and exposes a manual
// trigger for operators. Only one run can be in flight at a time; a trigger
// during a run is rejected rather than queued.
type CandidateSyncJob struct {
	importSvc *services.CandidateImportService

	mu        sync.Mutex
	running   bool
	lastRun   time.Time
	lastError string
}

func NewCandidateSyncJob(importSvc *services.CandidateImportService) *CandidateSyncJob {
	return &CandidateSyncJob{importSvc: importSvc}
}

// RunScheduled imports on every tick until the context is cancelled.
func (j *CandidateSyncJob) RunScheduled(ctx context.Context, interval time.Duration) {
	log.Printf("[CandidateSyncJob] Starting scheduled sync (interval: %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	j.run(ctx, nil)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[CandidateSyncJob] Shutting down")
			return
		case <-ticker.C:
			j.run(ctx, nil)
		}
	}
}

// TriggerManual starts an import on behalf of an operator.
func (j *CandidateSyncJob) TriggerManual(ctx context.Context, actorID string) error {
	return j.run(ctx, &actorID)
}

func (j *CandidateSyncJob) run(ctx context.Context, actorID *string) error {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return fmt.Errorf("candidate sync already running")
	}
	j.running = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		j.running = false
		j.mu.Unlock()
	}()

	_, err := j.importSvc.RunImport(ctx, actorID)

	j.mu.Lock()
	j.lastRun = time.Now()
	if err != nil {
		j.lastError = err.Error()
	} else {
		j.lastError = ""
	}
	j.mu.Unlock()

	return err
}

// Status reports the job state for the ops endpoint.
func (j *CandidateSyncJob) Status() dtos.JobStatusResponse {
	j.mu.Lock()
	defer j.mu.Unlock()

	resp := dtos.JobStatusResponse{
		JobName:   "candidate_sync",
		Running:   j.running,
		LastError: j.lastError,
	}
	if !j.lastRun.IsZero() {
		resp.LastRun = j.lastRun.Format(time.RFC3339)
	}
	return resp
}
