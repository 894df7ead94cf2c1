package monitoring

import (
	"fmt"
	"sort"
	"strings"

	"export-orchestrator/core/models"
	"export-orchestrator/core/orchestrator"
)

// MetricsExporter exports metrics for Prometheus/Grafana
type MetricsExporter struct {
	orchestrator *orchestrator.Orchestrator
	stats        *StatsTracker
}

// NewMetricsExporter creates a new metrics exporter
func NewMetricsExporter(orch *orchestrator.Orchestrator, stats *StatsTracker) *MetricsExporter {
	return &MetricsExporter{
		orchestrator: orch,
		stats:        stats,
	}
}

// GetPrometheusMetrics returns metrics in Prometheus text format
func (me *MetricsExporter) GetPrometheusMetrics() string {
	var b strings.Builder

	// Job count by status
	counts := make(map[models.JobStatus]int)
	for _, job := range me.orchestrator.ListJobs(nil) {
		counts[job.Status]++
	}

	b.WriteString("# HELP export_jobs_total Number of export jobs by status\n")
	b.WriteString("# TYPE export_jobs_total gauge\n")
	for _, status := range []models.JobStatus{
		models.JobStatusPending,
		models.JobStatusProcessing,
		models.JobStatusCompleted,
		models.JobStatusFailed,
		models.JobStatusCancelled,
	} {
		fmt.Fprintf(&b, "export_jobs_total{status=%q} %d\n", status, counts[status])
	}

	completed := counts[models.JobStatusCompleted]
	terminal := completed + counts[models.JobStatusFailed] + counts[models.JobStatusCancelled]
	successRate := 0.0
	if terminal > 0 {
		successRate = float64(completed) / float64(terminal)
	}
	b.WriteString("# HELP export_success_rate Fraction of terminal jobs that completed\n")
	b.WriteString("# TYPE export_success_rate gauge\n")
	fmt.Fprintf(&b, "export_success_rate %.4f\n", successRate)

	// Per-profile breakdown, sorted for stable output
	snapshot := me.stats.Snapshot()
	profileIDs := make([]string, 0, len(snapshot))
	for id := range snapshot {
		profileIDs = append(profileIDs, id)
	}
	sort.Strings(profileIDs)

	b.WriteString("# HELP export_profile_jobs_total Export jobs per profile by outcome\n")
	b.WriteString("# TYPE export_profile_jobs_total counter\n")
	for _, id := range profileIDs {
		stats := snapshot[id]
		fmt.Fprintf(&b, "export_profile_jobs_total{profile_id=%q,outcome=\"completed\"} %d\n", id, stats.Completed)
		fmt.Fprintf(&b, "export_profile_jobs_total{profile_id=%q,outcome=\"failed\"} %d\n", id, stats.Failed)
	}

	b.WriteString("# HELP export_profile_bytes_total Bytes produced per profile\n")
	b.WriteString("# TYPE export_profile_bytes_total counter\n")
	for _, id := range profileIDs {
		fmt.Fprintf(&b, "export_profile_bytes_total{profile_id=%q} %d\n", id, snapshot[id].BytesProduced)
	}

	b.WriteString("# HELP export_profile_quality_avg Mean overall quality score per profile\n")
	b.WriteString("# TYPE export_profile_quality_avg gauge\n")
	for _, id := range profileIDs {
		stats := snapshot[id]
		fmt.Fprintf(&b, "export_profile_quality_avg{profile_id=%q} %.4f\n", id, stats.AverageQuality())
	}

	b.WriteString("# HELP export_profile_processing_seconds_avg Mean processing time per profile\n")
	b.WriteString("# TYPE export_profile_processing_seconds_avg gauge\n")
	for _, id := range profileIDs {
		stats := snapshot[id]
		fmt.Fprintf(&b, "export_profile_processing_seconds_avg{profile_id=%q} %.4f\n", id, stats.AverageProcessing().Seconds())
	}

	return b.String()
}
