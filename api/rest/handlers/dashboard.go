package handlers

import (
	"encoding/json"
	"net/http"

	"export-orchestrator/core/models"
	"export-orchestrator/core/monitoring"
	"export-orchestrator/core/orchestrator"
)

// FailureSource reads recent failed transitions from the ledger
type FailureSource interface {
	RecentFailures(limit int) ([]models.JobEvent, error)
}

// DashboardHandler handles dashboard API requests
type DashboardHandler struct {
	orchestrator *orchestrator.Orchestrator
	stats        *monitoring.StatsTracker
	exporter     *monitoring.MetricsExporter
	failures     FailureSource
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	orch *orchestrator.Orchestrator,
	stats *monitoring.StatsTracker,
	exporter *monitoring.MetricsExporter,
	failures FailureSource,
) *DashboardHandler {
	return &DashboardHandler{
		orchestrator: orch,
		stats:        stats,
		exporter:     exporter,
		failures:     failures,
	}
}

// GetSummary handles GET /v1/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	counts := make(map[models.JobStatus]int)
	for _, job := range h.orchestrator.ListJobs(nil) {
		counts[job.Status]++
	}

	completed := counts[models.JobStatusCompleted]
	terminal := completed + counts[models.JobStatusFailed] + counts[models.JobStatusCancelled]
	successRate := 0.0
	if terminal > 0 {
		successRate = float64(completed) / float64(terminal)
	}

	profiles := make([]map[string]interface{}, 0)
	for id, stats := range h.stats.Snapshot() {
		profiles = append(profiles, map[string]interface{}{
			"profile_id":            id,
			"completed":             stats.Completed,
			"failed":                stats.Failed,
			"bytes_produced":        stats.BytesProduced,
			"average_quality":       stats.AverageQuality(),
			"average_processing_ms": stats.AverageProcessing().Milliseconds(),
		})
	}

	recentFailures := make([]map[string]interface{}, 0)
	if h.failures != nil {
		if failed, err := h.failures.RecentFailures(10); err == nil {
			for _, event := range failed {
				recentFailures = append(recentFailures, map[string]interface{}{
					"job_id": event.JobID,
					"at":     event.At,
					"reason": event.Reason,
				})
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobs_by_status":  counts,
		"success_rate":    successRate,
		"profiles":        profiles,
		"recent_failures": recentFailures,
	})
}

// GetMetrics handles GET /metrics in Prometheus text format
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	w.Write([]byte(h.exporter.GetPrometheusMetrics()))
}
