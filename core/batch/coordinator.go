// Package batch fans a batch export request out into individual jobs
// and aggregates the outcome. A single pair's failure never aborts the
// batch: every source/profile pair is always attempted.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"export-orchestrator/core/models"
	"export-orchestrator/core/naming"
	"export-orchestrator/core/notify"
	"export-orchestrator/core/orchestrator"
	"export-orchestrator/core/registry"

	gonanoid "github.com/matoous/go-nanoid/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// Coordinator executes batch export requests through the job orchestrator
type Coordinator struct {
	orchestrator *orchestrator.Orchestrator
	profiles     *registry.ProfileRegistry
	notifier     notify.BatchNotifier
}

// NewCoordinator creates a batch coordinator
func NewCoordinator(orch *orchestrator.Orchestrator, profiles *registry.ProfileRegistry) *Coordinator {
	return &Coordinator{orchestrator: orch, profiles: profiles}
}

// SetNotifier sets the sink for batch outcome notifications
func (c *Coordinator) SetNotifier(n notify.BatchNotifier) {
	c.notifier = n
}

// Create assigns identity and creation time to a request. Pure data
// construction: no job is spawned here.
func (c *Coordinator) Create(request models.BatchExportRequest) (*models.BatchExportRequest, error) {
	if len(request.SourceFiles) == 0 {
		return nil, errors.New("batch request has no source files")
	}
	if len(request.ExportProfiles) == 0 {
		return nil, errors.New("batch request has no export profiles")
	}
	if request.Scheduling.Type == models.ScheduleRecurring {
		return nil, errors.New("recurring batch schedules are not supported")
	}

	request.ID = "batch_" + gonanoid.Must(12)
	request.CreatedAt = time.Now()
	log.Printf("Created batch export request %s: %s", request.ID, request.Name)
	return &request, nil
}

// Execute enumerates the Cartesian product of source files and profiles
// and submits one job per pair. Excess pairs beyond the concurrency cap
// queue in submission order.
func (c *Coordinator) Execute(ctx context.Context, request *models.BatchExportRequest) (*models.BatchResult, error) {
	start := time.Now()
	log.Printf("Executing batch export %s: %d sources x %d profiles",
		request.ID, len(request.SourceFiles), len(request.ExportProfiles))

	if request.Scheduling.Type == models.ScheduleDelayed && request.Scheduling.DelayMinutes > 0 {
		delay := time.Duration(request.Scheduling.DelayMinutes) * time.Minute
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	maxConcurrent := int64(request.Scheduling.MaxConcurrentJobs)
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	sem := semaphore.NewWeighted(maxConcurrent)

	var (
		mu         sync.Mutex
		results    []*models.ExportJob
		failedJobs []models.FailedJob
		wg         sync.WaitGroup
	)

	for _, sourceFile := range request.SourceFiles {
		for _, profileID := range request.ExportProfiles {
			if err := sem.Acquire(ctx, 1); err != nil {
				mu.Lock()
				failedJobs = append(failedJobs, models.FailedJob{
					SourceFile: sourceFile,
					ProfileID:  profileID,
					Error:      err.Error(),
				})
				mu.Unlock()
				continue
			}

			wg.Add(1)
			go func(sourceFile, profileID string) {
				defer wg.Done()
				defer sem.Release(1)

				job, err := c.runPair(ctx, request, sourceFile, profileID)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failedJobs = append(failedJobs, models.FailedJob{
						SourceFile: sourceFile,
						ProfileID:  profileID,
						Error:      err.Error(),
					})
					return
				}
				results = append(results, job)
			}(sourceFile, profileID)
		}
	}

	wg.Wait()

	total := len(request.SourceFiles) * len(request.ExportProfiles)
	successRate := 0.0
	if total > 0 {
		successRate = float64(len(results)) / float64(total)
	}

	result := &models.BatchResult{
		BatchID:         request.ID,
		TotalJobs:       total,
		SuccessfulJobs:  len(results),
		FailedJobsCount: len(failedJobs),
		SuccessRate:     successRate,
		Results:         results,
		FailedJobs:      failedJobs,
		ExecutionTime:   time.Since(start),
	}

	log.Printf("Batch export %s completed: %d/%d successful", request.ID, result.SuccessfulJobs, total)
	c.dispatchNotification(request, result)
	return result, nil
}

// dispatchNotification fires the batch outcome at the notifier when
// the request's notification settings ask for it
func (c *Coordinator) dispatchNotification(request *models.BatchExportRequest, result *models.BatchResult) {
	if c.notifier == nil || !request.Notifications.Enabled {
		return
	}
	settings := request.Notifications
	failed := result.FailedJobsCount > 0
	if (failed && settings.NotifyOnFailure) || (!failed && settings.NotifyOnCompletion) {
		c.notifier.NotifyBatchFinished(request, result)
	}
}

// runPair exports one source/profile pair, retrying quality gate
// failures when the batch policy requests it
func (c *Coordinator) runPair(ctx context.Context, request *models.BatchExportRequest, sourceFile, profileID string) (*models.ExportJob, error) {
	// Resolve the profile before any path computation: a missing
	// profile fails the pair explicitly instead of surfacing later as
	// a broken output path.
	profile, err := c.profiles.Get(profileID)
	if err != nil {
		return nil, err
	}

	outputPath := c.batchOutputPath(sourceFile, profile, request)
	opts := orchestrator.Options{
		BatchID: request.ID,
		UserID:  request.CreatedBy,
	}
	if request.QualityValidation.Enabled {
		gate := request.QualityValidation
		opts.QualityGate = &gate
	}

	maxAttempts := 1
	if request.QualityValidation.Enabled && request.QualityValidation.AutoRetryOnFailure {
		maxAttempts += request.QualityValidation.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		opts.RetryCount = attempt

		job, err := c.orchestrator.Submit(ctx, sourceFile, profileID, outputPath, opts)
		if err != nil {
			return nil, err
		}

		done, err := c.orchestrator.Wait(ctx, job.ID)
		if err != nil {
			return nil, err
		}

		switch done.Status {
		case models.JobStatusCompleted:
			return done, nil
		case models.JobStatusCancelled:
			return nil, fmt.Errorf("job %s was cancelled", done.ID)
		default:
			lastErr = errors.New(done.ErrorMessage)
			if !retryable(done) {
				return nil, lastErr
			}
		}
	}
	return nil, lastErr
}

// Only quality gate failures are worth retrying; a bad source or a
// processor fault will fail the same way again.
func retryable(job *models.ExportJob) bool {
	return job.FailureKind == models.FailureQualityGate
}

// batchOutputPath derives the deterministic output path for a pair
func (c *Coordinator) batchOutputPath(sourceFile string, profile *models.ExportProfile, request *models.BatchExportRequest) string {
	base := filepath.Base(sourceFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	fileName := naming.Apply(base, request.NamingConvention, naming.Context{
		Profile: profile,
		Now:     request.CreatedAt,
	})
	return filepath.Join(request.OutputDirectory, fileName+"."+profile.Format.Extension)
}
