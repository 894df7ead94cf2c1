// Package orchestrator owns the export job state machine. Jobs move
// pending -> processing -> {completed, failed, cancelled}; the
// orchestrator is the single writer of every job's status and progress
// for the job's entire life.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"export-orchestrator/core/models"
	"export-orchestrator/core/notify"
	"export-orchestrator/core/processor"
	"export-orchestrator/core/quality"
	"export-orchestrator/core/registry"
	"export-orchestrator/storage"

	gonanoid "github.com/matoous/go-nanoid/v2"
	log "github.com/sirupsen/logrus"
)

// Progress checkpoints for the five pipeline stages.
const (
	progressStarted      = 10
	progressValidated    = 20
	progressPreprocessed = 40
	progressProcessed    = 80
	progressQualityDone  = 95
	progressComplete     = 100
)

// EventRecorder persists job state transitions. Recording is
// best-effort: a failing recorder never fails a job.
type EventRecorder interface {
	RecordTransition(jobID string, from *models.JobStatus, to models.JobStatus, reason string, meta map[string]interface{}) error
}

// Options carries per-submission settings
type Options struct {
	ProjectID   string
	UserID      string
	BatchID     string
	RetryCount  int
	QualityGate *models.QualityValidationSettings
}

type jobEntry struct {
	job      *models.ExportJob
	opts     Options
	doneOnce sync.Once
	done     chan struct{}
}

// Orchestrator sequences export jobs through their pipeline stages
type Orchestrator struct {
	profiles   *registry.ProfileRegistry
	processors *processor.Registry
	validator  *quality.Validator
	content    storage.ContentStore
	notifier   notify.Notifier
	events     EventRecorder

	mu    sync.RWMutex
	jobs  map[string]*jobEntry
	queue []string

	interval time.Duration
	stopChan chan struct{}
}

// NewOrchestrator creates an orchestrator. The event recorder and
// notifier may be nil.
func NewOrchestrator(
	profiles *registry.ProfileRegistry,
	processors *processor.Registry,
	validator *quality.Validator,
	content storage.ContentStore,
	notifier notify.Notifier,
	events EventRecorder,
) *Orchestrator {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Orchestrator{
		profiles:   profiles,
		processors: processors,
		validator:  validator,
		content:    content,
		notifier:   notifier,
		events:     events,
		jobs:       make(map[string]*jobEntry),
		interval:   100 * time.Millisecond,
		stopChan:   make(chan struct{}),
	}
}

// SetInterval sets the queue polling interval
func (o *Orchestrator) SetInterval(interval time.Duration) {
	o.interval = interval
}

// Start runs the dispatch loop that picks up pending jobs
func (o *Orchestrator) Start(ctx context.Context) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-o.stopChan:
			return
		case <-ticker.C:
			o.dispatch(ctx)
		}
	}
}

// Stop stops the dispatch loop
func (o *Orchestrator) Stop() {
	close(o.stopChan)
}

// Submit creates a new export job. The profile must resolve or the call
// fails with ErrProfileNotFound and no job is created.
func (o *Orchestrator) Submit(ctx context.Context, sourceFile, profileID, outputPath string, opts Options) (*models.ExportJob, error) {
	profile, err := o.profiles.Get(profileID)
	if err != nil {
		return nil, err
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(sourceFile, profile)
	}

	jobID := "export_" + gonanoid.Must(12)
	job := &models.ExportJob{
		ID:              jobID,
		SourceFile:      sourceFile,
		ExportProfileID: profileID,
		OutputPath:      outputPath,
		Status:          models.JobStatusPending,
		Progress:        0,
		StartTime:       time.Now(),
		QualityReport:   models.QualityReport{},
		OutputFiles:     []models.OutputFile{},
		Metadata: models.JobMetadata{
			SourceType: detectSourceType(sourceFile),
			ProjectID:  opts.ProjectID,
			UserID:     opts.UserID,
			BatchID:    opts.BatchID,
			RetryCount: opts.RetryCount,
		},
	}

	entry := &jobEntry{job: job, opts: opts, done: make(chan struct{})}

	o.mu.Lock()
	o.jobs[jobID] = entry
	o.queue = append(o.queue, jobID)
	o.mu.Unlock()

	if !o.persistCreate(o.snapshot(entry)) {
		o.recordTransition(jobID, nil, models.JobStatusPending, "job_created", nil)
	}
	log.Printf("Submitted export job %s: %s via %s", jobID, sourceFile, profileID)

	return o.snapshot(entry), nil
}

// GetJob returns a point-in-time copy of a job
func (o *Orchestrator) GetJob(jobID string) (*models.ExportJob, error) {
	o.mu.RLock()
	entry, ok := o.jobs[jobID]
	o.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrJobNotFound, jobID)
	}
	return o.snapshot(entry), nil
}

// GetProgress reports status, current step and an estimate of the
// remaining time. The estimate is -1 until the first checkpoint beyond
// zero has been reached.
func (o *Orchestrator) GetProgress(jobID string) (*models.Progress, error) {
	o.mu.RLock()
	entry, ok := o.jobs[jobID]
	if !ok {
		o.mu.RUnlock()
		return nil, fmt.Errorf("%w: %s", models.ErrJobNotFound, jobID)
	}
	job := entry.job
	progress := &models.Progress{
		JobID:        jobID,
		Status:       job.Status,
		Progress:     job.Progress,
		CurrentStep:  currentStep(job.Progress),
		QualityScore: job.QualityReport.OverallScore,
	}
	startTime := job.StartTime
	terminal := job.Status.Terminal()
	o.mu.RUnlock()

	switch {
	case terminal:
		progress.EstimatedRemaining = 0
	case progress.Progress == 0:
		progress.EstimatedRemaining = -1
	default:
		elapsed := time.Since(startTime)
		total := time.Duration(float64(elapsed) / (float64(progress.Progress) / 100))
		remaining := total - elapsed
		if remaining < 0 {
			remaining = 0
		}
		progress.EstimatedRemaining = remaining.Milliseconds()
	}

	return progress, nil
}

// Cancel requests cancellation of a job. Only pending and processing
// jobs can be cancelled; cancelling a terminal job is a no-op returning
// false. A job inside a processor call finishes that call but advances
// no further.
func (o *Orchestrator) Cancel(jobID string) bool {
	o.mu.Lock()
	entry, ok := o.jobs[jobID]
	if !ok {
		o.mu.Unlock()
		return false
	}
	if entry.job.Status.Terminal() {
		o.mu.Unlock()
		return false
	}

	now := time.Now()
	from := entry.job.Status
	entry.job.Status = models.JobStatusCancelled
	entry.job.EndTime = &now
	o.mu.Unlock()

	entry.doneOnce.Do(func() { close(entry.done) })
	o.recordTransition(jobID, &from, models.JobStatusCancelled, "cancel_requested", nil)
	o.persistResult(entry)
	log.Printf("Cancelled export job: %s", jobID)
	return true
}

// ListJobs returns snapshots of all known jobs, optionally filtered by status
func (o *Orchestrator) ListJobs(status *models.JobStatus) []*models.ExportJob {
	o.mu.RLock()
	entries := make([]*jobEntry, 0, len(o.jobs))
	for _, entry := range o.jobs {
		if status != nil && entry.job.Status != *status {
			continue
		}
		entries = append(entries, entry)
	}
	o.mu.RUnlock()

	jobs := make([]*models.ExportJob, 0, len(entries))
	for _, entry := range entries {
		jobs = append(jobs, o.snapshot(entry))
	}
	return jobs
}

// Abort forces a non-terminal job into the failed state. The watchdog
// uses this for jobs stuck in processing past their deadline.
func (o *Orchestrator) Abort(jobID, reason string) bool {
	o.mu.Lock()
	entry, ok := o.jobs[jobID]
	if !ok || entry.job.Status.Terminal() {
		o.mu.Unlock()
		return false
	}

	now := time.Now()
	from := entry.job.Status
	entry.job.Status = models.JobStatusFailed
	entry.job.ErrorMessage = reason
	entry.job.FailureKind = models.FailureAborted
	entry.job.EndTime = &now
	o.mu.Unlock()

	entry.doneOnce.Do(func() { close(entry.done) })
	o.recordTransition(jobID, &from, models.JobStatusFailed, "aborted", map[string]interface{}{
		"error": reason,
	})
	o.persistResult(entry)
	o.notifier.NotifyJobFailed(o.snapshot(entry))
	log.Printf("Aborted export job %s: %s", jobID, reason)
	return true
}

// Wait blocks until the job reaches a terminal state
func (o *Orchestrator) Wait(ctx context.Context, jobID string) (*models.ExportJob, error) {
	o.mu.RLock()
	entry, ok := o.jobs[jobID]
	o.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrJobNotFound, jobID)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-entry.done:
		return o.snapshot(entry), nil
	}
}

// dispatch drains the pending queue, running each job in its own goroutine
func (o *Orchestrator) dispatch(ctx context.Context) {
	for {
		o.mu.Lock()
		if len(o.queue) == 0 {
			o.mu.Unlock()
			return
		}
		jobID := o.queue[0]
		o.queue = o.queue[1:]
		entry, ok := o.jobs[jobID]
		o.mu.Unlock()

		if !ok {
			continue
		}
		go o.runJob(ctx, entry)
	}
}

// runJob executes the pipeline stages for one job
func (o *Orchestrator) runJob(ctx context.Context, entry *jobEntry) {
	jobID := entry.job.ID

	// A cancel may land between submission and pickup.
	if !o.transition(entry, models.JobStatusPending, models.JobStatusProcessing, "picked_up") {
		return
	}
	o.setProgress(entry, progressStarted)

	profile, err := o.profiles.Get(entry.job.ExportProfileID)
	if err != nil {
		o.fail(entry, err)
		return
	}

	// Stage 1: validate source.
	if o.cancelled(entry) {
		return
	}
	if _, err := o.content.GetSourceContent(ctx, entry.job.SourceFile); err != nil {
		o.fail(entry, fmt.Errorf("%w: %v", models.ErrInvalidSource, err))
		return
	}
	o.setProgress(entry, progressValidated)

	// Stage 2: preprocess content. Color management, font resolution
	// and image preparation hook in here once real encoders land.
	if o.cancelled(entry) {
		return
	}
	log.Printf("Pre-processing content for job %s", jobID)
	o.setProgress(entry, progressPreprocessed)

	// Stage 3: run the format processor.
	if o.cancelled(entry) {
		return
	}
	proc, err := o.processors.Get(profile.Format.Type)
	if err != nil {
		o.fail(entry, err)
		return
	}
	output, err := proc.Process(ctx, o.snapshot(entry), profile)
	if err != nil {
		o.fail(entry, err)
		return
	}
	o.mu.Lock()
	if !entry.job.Status.Terminal() {
		entry.job.OutputFiles = append(entry.job.OutputFiles, *output)
	}
	o.mu.Unlock()
	o.setProgress(entry, progressProcessed)

	// Stage 4: independent quality validation.
	if o.cancelled(entry) {
		return
	}
	report := o.validator.Validate(o.snapshot(entry), profile)
	o.mu.Lock()
	if !entry.job.Status.Terminal() {
		entry.job.QualityReport = *report
	}
	o.mu.Unlock()
	o.setProgress(entry, progressQualityDone)

	if err := checkQualityGate(report, entry.opts.QualityGate); err != nil {
		o.fail(entry, err)
		return
	}

	// Stage 5: finalize.
	if o.cancelled(entry) {
		return
	}
	o.complete(entry)
}

// transition moves a job between states, refusing to leave terminal states
func (o *Orchestrator) transition(entry *jobEntry, from, to models.JobStatus, reason string) bool {
	o.mu.Lock()
	if entry.job.Status != from || entry.job.Status.Terminal() {
		o.mu.Unlock()
		return false
	}
	entry.job.Status = to
	o.mu.Unlock()

	o.recordTransition(entry.job.ID, &from, to, reason, nil)
	return true
}

// setProgress raises a job's progress. Progress never decreases and
// freezes once the job is terminal.
func (o *Orchestrator) setProgress(entry *jobEntry, progress int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if entry.job.Status.Terminal() {
		return
	}
	if progress > entry.job.Progress {
		entry.job.Progress = progress
	}
}

// cancelled reports whether a job was cancelled at a stage boundary
func (o *Orchestrator) cancelled(entry *jobEntry) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return entry.job.Status == models.JobStatusCancelled
}

func (o *Orchestrator) complete(entry *jobEntry) {
	now := time.Now()

	o.mu.Lock()
	if entry.job.Status.Terminal() {
		o.mu.Unlock()
		return
	}
	from := entry.job.Status
	entry.job.Status = models.JobStatusCompleted
	entry.job.Progress = progressComplete
	entry.job.EndTime = &now
	entry.job.Metadata.ProcessingTime = now.Sub(entry.job.StartTime)
	o.mu.Unlock()

	entry.doneOnce.Do(func() { close(entry.done) })
	o.recordTransition(entry.job.ID, &from, models.JobStatusCompleted, "export_complete", nil)
	o.persistResult(entry)
	o.notifier.NotifyJobCompleted(o.snapshot(entry))
	log.Printf("Export job completed: %s", entry.job.ID)
}

func (o *Orchestrator) fail(entry *jobEntry, cause error) {
	now := time.Now()

	o.mu.Lock()
	if entry.job.Status.Terminal() {
		o.mu.Unlock()
		return
	}
	from := entry.job.Status
	entry.job.Status = models.JobStatusFailed
	entry.job.ErrorMessage = cause.Error()
	entry.job.FailureKind = classifyFailure(cause)
	entry.job.EndTime = &now
	o.mu.Unlock()

	entry.doneOnce.Do(func() { close(entry.done) })
	o.recordTransition(entry.job.ID, &from, models.JobStatusFailed, "export_failed", map[string]interface{}{
		"error": cause.Error(),
		"kind":  string(entry.job.FailureKind),
	})
	o.persistResult(entry)
	o.notifier.NotifyJobFailed(o.snapshot(entry))
	log.Printf("Export job failed: %s: %v", entry.job.ID, cause)
}

// classifyFailure maps a stage error onto the failure taxonomy
func classifyFailure(cause error) models.FailureKind {
	var gateErr *models.QualityGateError
	var procErr *models.ProcessingError
	switch {
	case errors.As(cause, &gateErr):
		return models.FailureQualityGate
	case errors.As(cause, &procErr):
		return models.FailureProcessing
	case errors.Is(cause, models.ErrInvalidSource):
		return models.FailureInvalidSource
	default:
		return models.FailureInternal
	}
}

func (o *Orchestrator) snapshot(entry *jobEntry) *models.ExportJob {
	o.mu.RLock()
	defer o.mu.RUnlock()

	copied := *entry.job
	copied.OutputFiles = append([]models.OutputFile(nil), entry.job.OutputFiles...)
	return &copied
}

// persistCreate stores the job row when the recorder supports it.
// Returns false when the caller should fall back to event-only recording.
func (o *Orchestrator) persistCreate(job *models.ExportJob) bool {
	type jobCreator interface {
		CreateJob(*models.ExportJob) error
	}
	creator, ok := o.events.(jobCreator)
	if !ok {
		return false
	}
	if err := creator.CreateJob(job); err != nil {
		log.Printf("Failed to persist job %s: %v", job.ID, err)
	}
	return true
}

// persistResult stores the terminal snapshot when the recorder supports it
func (o *Orchestrator) persistResult(entry *jobEntry) {
	type resultSaver interface {
		SaveJobResult(*models.ExportJob) error
	}
	saver, ok := o.events.(resultSaver)
	if !ok {
		return
	}
	if err := saver.SaveJobResult(o.snapshot(entry)); err != nil {
		log.Printf("Failed to persist result for job %s: %v", entry.job.ID, err)
	}
}

func (o *Orchestrator) recordTransition(jobID string, from *models.JobStatus, to models.JobStatus, reason string, meta map[string]interface{}) {
	if o.events == nil {
		return
	}
	if err := o.events.RecordTransition(jobID, from, to, reason, meta); err != nil {
		log.Printf("Failed to record transition for job %s: %v", jobID, err)
	}
}

func checkQualityGate(report *models.QualityReport, gate *models.QualityValidationSettings) error {
	if gate == nil || !gate.Enabled {
		return nil
	}

	critical := report.CountBySeverity(models.SeverityCritical)
	major := report.CountBySeverity(models.SeverityMajor)

	if (gate.FailOnCriticalIssues && critical > 0) || (gate.FailOnMajorIssues && major > 0) {
		return &models.QualityGateError{CriticalIssues: critical, MajorIssues: major}
	}
	return nil
}

func currentStep(progress int) string {
	switch {
	case progress < progressValidated:
		return "Validating source file"
	case progress < progressPreprocessed:
		return "Pre-processing content"
	case progress < progressProcessed:
		return "Converting format"
	case progress < progressQualityDone:
		return "Validating output"
	default:
		return "Finalizing export"
	}
}

func defaultOutputPath(sourceFile string, profile *models.ExportProfile) string {
	base := filepath.Base(sourceFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s.%s", base, profile.ID, profile.Format.Extension)
}

func detectSourceType(sourceFile string) models.SourceType {
	switch strings.ToLower(filepath.Ext(sourceFile)) {
	case ".svg", ".ai", ".eps":
		return models.SourceVector
	case ".pdf", ".indd":
		return models.SourceTypography
	case ".fig", ".sketch":
		return models.SourceCollaboration
	default:
		return models.SourceLayout
	}
}
