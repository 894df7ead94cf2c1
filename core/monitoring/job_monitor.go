package monitoring

import (
	"context"
	"time"

	"export-orchestrator/core/models"
	"export-orchestrator/core/orchestrator"

	log "github.com/sirupsen/logrus"
)

// Watchdog fails export jobs stuck in processing past their deadline.
// A wedged processor otherwise leaves a job non-terminal forever and
// its waiters blocked.
type Watchdog struct {
	orchestrator *orchestrator.Orchestrator
	deadline     time.Duration
	interval     time.Duration
}

// NewWatchdog creates a watchdog with the given processing deadline
func NewWatchdog(orch *orchestrator.Orchestrator, deadline time.Duration) *Watchdog {
	return &Watchdog{
		orchestrator: orch,
		deadline:     deadline,
		interval:     30 * time.Second,
	}
}

// SetInterval overrides the sweep interval. Tests use a short one.
func (w *Watchdog) SetInterval(interval time.Duration) {
	w.interval = interval
}

// Start runs the sweep loop until the context is cancelled
func (w *Watchdog) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// sweep aborts processing jobs older than the deadline
func (w *Watchdog) sweep() {
	status := models.JobStatusProcessing
	for _, job := range w.orchestrator.ListJobs(&status) {
		age := time.Since(job.StartTime)
		if age <= w.deadline {
			continue
		}
		if w.orchestrator.Abort(job.ID, "processing deadline exceeded") {
			log.Printf("Watchdog aborted stuck job %s after %s", job.ID, age.Round(time.Second))
		}
	}
}
