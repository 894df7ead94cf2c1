package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"export-orchestrator/core/compat"
	"export-orchestrator/core/models"
	"export-orchestrator/core/processor"
	"export-orchestrator/core/quality"
	"export-orchestrator/core/registry"
	"export-orchestrator/storage"
)

func newTestOrchestrator() (*Orchestrator, *storage.MemoryStore) {
	profiles := registry.NewProfileRegistry()
	processors := processor.NewRegistry()
	processor.RegisterBuiltins(processors)
	validator := quality.NewValidator(compat.NewRegistry())
	content := storage.NewMemoryStore()
	content.Put("poster.design", []byte("layout poster"))

	o := NewOrchestrator(profiles, processors, validator, content, nil, nil)
	o.SetInterval(5 * time.Millisecond)
	return o, content
}

func startOrchestrator(t *testing.T, o *Orchestrator) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go o.Start(ctx)
	return cancel
}

func TestSubmitAndComplete(t *testing.T) {
	o, _ := newTestOrchestrator()
	stop := startOrchestrator(t, o)
	defer stop()

	job, err := o.Submit(context.Background(), "poster.design", "print_ready_pdf", "", Options{UserID: "tester"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if job.Status != models.JobStatusPending {
		t.Errorf("initial status = %s, want pending", job.Status)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done, err := o.Wait(ctx, job.ID)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if done.Status != models.JobStatusCompleted {
		t.Fatalf("status = %s, want completed (error: %s)", done.Status, done.ErrorMessage)
	}
	if done.Progress != 100 {
		t.Errorf("progress = %d, want 100", done.Progress)
	}
	if len(done.OutputFiles) != 1 {
		t.Fatalf("output files = %d, want 1", len(done.OutputFiles))
	}
	if done.OutputFiles[0].Format != models.FormatPDF {
		t.Errorf("output format = %s, want pdf", done.OutputFiles[0].Format)
	}
	score := done.QualityReport.OverallScore
	if score < 0 || score > 1 {
		t.Errorf("quality score %v outside [0,1]", score)
	}
	if done.EndTime == nil {
		t.Error("completed job has no end time")
	}
}

func TestSubmitUnknownProfile(t *testing.T) {
	o, _ := newTestOrchestrator()

	_, err := o.Submit(context.Background(), "poster.design", "no_such_profile", "", Options{})
	if !errors.Is(err, models.ErrProfileNotFound) {
		t.Fatalf("Submit error = %v, want ErrProfileNotFound", err)
	}
}

func TestSubmitInvalidSourceFails(t *testing.T) {
	o, _ := newTestOrchestrator()
	stop := startOrchestrator(t, o)
	defer stop()

	job, err := o.Submit(context.Background(), "missing.design", "web_png", "", Options{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done, err := o.Wait(ctx, job.ID)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if done.Status != models.JobStatusFailed {
		t.Fatalf("status = %s, want failed", done.Status)
	}
	if done.ErrorMessage == "" {
		t.Error("failed job has no error message")
	}
	if done.FailureKind != models.FailureInvalidSource {
		t.Errorf("failure kind = %s, want invalid_source", done.FailureKind)
	}
}

// Cancelling before the dispatcher picks the job up must leave progress
// untouched and report true exactly once.
func TestCancelBeforePickup(t *testing.T) {
	o, _ := newTestOrchestrator() // dispatcher not started

	job, err := o.Submit(context.Background(), "poster.design", "print_ready_pdf", "", Options{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !o.Cancel(job.ID) {
		t.Fatal("Cancel = false, want true")
	}

	cancelled, err := o.GetJob(job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if cancelled.Status != models.JobStatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	if cancelled.Progress != 0 {
		t.Errorf("progress = %d, want 0 (unchanged)", cancelled.Progress)
	}

	if o.Cancel(job.ID) {
		t.Error("second Cancel = true, want false")
	}
}

func TestCancelCompletedJob(t *testing.T) {
	o, _ := newTestOrchestrator()
	stop := startOrchestrator(t, o)
	defer stop()

	job, _ := o.Submit(context.Background(), "poster.design", "web_png", "", Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := o.Wait(ctx, job.ID); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if o.Cancel(job.ID) {
		t.Error("Cancel on completed job = true, want false")
	}
}

func TestCancelUnknownJob(t *testing.T) {
	o, _ := newTestOrchestrator()
	if o.Cancel("export_missing") {
		t.Error("Cancel on unknown job = true, want false")
	}
}

// Terminal jobs never mutate again.
func TestTerminalJobIsImmutable(t *testing.T) {
	o, _ := newTestOrchestrator()
	stop := startOrchestrator(t, o)
	defer stop()

	job, _ := o.Submit(context.Background(), "poster.design", "vector_svg", "", Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	first, err := o.Wait(ctx, job.ID)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	second, err := o.GetJob(job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}

	if first.Status != second.Status || first.Progress != second.Progress {
		t.Errorf("terminal job mutated: %s/%d -> %s/%d",
			first.Status, first.Progress, second.Status, second.Progress)
	}
	if first.ErrorMessage != second.ErrorMessage || len(first.OutputFiles) != len(second.OutputFiles) {
		t.Error("terminal job fields mutated after completion")
	}
}

func TestGetProgress(t *testing.T) {
	o, _ := newTestOrchestrator()

	job, _ := o.Submit(context.Background(), "poster.design", "social_jpg", "", Options{})

	progress, err := o.GetProgress(job.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.EstimatedRemaining != -1 {
		t.Errorf("estimated remaining = %d, want -1 before first checkpoint", progress.EstimatedRemaining)
	}
	if progress.CurrentStep != "Validating source file" {
		t.Errorf("current step = %q", progress.CurrentStep)
	}

	stop := startOrchestrator(t, o)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := o.Wait(ctx, job.ID); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	final, err := o.GetProgress(job.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if final.Status != models.JobStatusCompleted || final.Progress != 100 {
		t.Errorf("final progress = %s/%d, want completed/100", final.Status, final.Progress)
	}
	if final.EstimatedRemaining != 0 {
		t.Errorf("estimated remaining = %d, want 0 for terminal job", final.EstimatedRemaining)
	}
}

func TestQualityGateFailure(t *testing.T) {
	o, content := newTestOrchestrator()
	content.Put("huge.design", []byte(strings.Repeat("x", 64)))
	stop := startOrchestrator(t, o)
	defer stop()

	// social_jpg has a 500KB limit; the jpg stub produces ~128KB at 85%
	// quality, so force a failure through a profile with a tiny limit.
	profiles := registry.NewProfileRegistry()
	tiny, _ := profiles.Get("social_jpg")
	tiny.ID = ""
	tiny.Name = "Tiny JPG"
	tiny.Optimization.FileSizeLimit = 1
	tinyID, err := o.profiles.Register(tiny)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	gate := &models.QualityValidationSettings{
		Enabled:              true,
		FailOnMajorIssues:    true,
		FailOnCriticalIssues: true,
	}
	job, err := o.Submit(context.Background(), "huge.design", tinyID, "", Options{QualityGate: gate})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done, err := o.Wait(ctx, job.ID)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if done.Status != models.JobStatusFailed {
		t.Fatalf("status = %s, want failed", done.Status)
	}
	if !strings.Contains(done.ErrorMessage, "quality gate") {
		t.Errorf("error message = %q, want quality gate failure", done.ErrorMessage)
	}
	if done.FailureKind != models.FailureQualityGate {
		t.Errorf("failure kind = %s, want quality_gate", done.FailureKind)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	o, _ := newTestOrchestrator()
	stop := startOrchestrator(t, o)
	defer stop()

	job, err := o.Submit(context.Background(), "decks/poster.design", "print_ready_pdf", "", Options{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if job.OutputPath != "poster_print_ready_pdf.pdf" {
		t.Errorf("output path = %q, want poster_print_ready_pdf.pdf", job.OutputPath)
	}
}

func TestAbortPendingJob(t *testing.T) {
	o, _ := newTestOrchestrator()

	job, err := o.Submit(context.Background(), "poster.design", "web_png", "", Options{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !o.Abort(job.ID, "processing deadline exceeded") {
		t.Fatal("Abort returned false for a pending job")
	}

	aborted, err := o.GetJob(job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if aborted.Status != models.JobStatusFailed {
		t.Errorf("status = %s, want failed", aborted.Status)
	}
	if aborted.ErrorMessage != "processing deadline exceeded" {
		t.Errorf("error message = %q", aborted.ErrorMessage)
	}
	if aborted.EndTime == nil {
		t.Error("end time not set")
	}
	if aborted.FailureKind != models.FailureAborted {
		t.Errorf("failure kind = %s, want aborted", aborted.FailureKind)
	}

	// A terminal job cannot be aborted again.
	if o.Abort(job.ID, "again") {
		t.Error("Abort succeeded on a terminal job")
	}
	if o.Abort("export_missing", "gone") {
		t.Error("Abort succeeded on an unknown job")
	}
}

func TestListJobsFilter(t *testing.T) {
	o, _ := newTestOrchestrator()

	first, _ := o.Submit(context.Background(), "poster.design", "web_png", "", Options{})
	second, _ := o.Submit(context.Background(), "poster.design", "social_jpg", "", Options{})
	o.Abort(second.ID, "stuck")

	if got := len(o.ListJobs(nil)); got != 2 {
		t.Fatalf("ListJobs(nil) = %d jobs, want 2", got)
	}

	pending := models.JobStatusPending
	pendingJobs := o.ListJobs(&pending)
	if len(pendingJobs) != 1 || pendingJobs[0].ID != first.ID {
		t.Errorf("pending filter returned %d jobs", len(pendingJobs))
	}

	failed := models.JobStatusFailed
	failedJobs := o.ListJobs(&failed)
	if len(failedJobs) != 1 || failedJobs[0].ID != second.ID {
		t.Errorf("failed filter returned %d jobs", len(failedJobs))
	}
}
