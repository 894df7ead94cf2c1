package monitoring

import (
	"sync"
	"time"

	"export-orchestrator/core/models"
)

// StatsTracker accumulates per profile export statistics. It receives
// job outcomes through the notifier interface, so the orchestrator
// needs no knowledge of it.
type StatsTracker struct {
	mu       sync.RWMutex
	profiles map[string]*ProfileStats
}

// ProfileStats aggregates outcomes for one export profile
type ProfileStats struct {
	ProfileID       string
	Completed       int
	Failed          int
	BytesProduced   int64
	QualitySum      float64
	TotalProcessing time.Duration
}

// AverageQuality returns the mean overall quality score of completed jobs
func (s *ProfileStats) AverageQuality() float64 {
	if s.Completed == 0 {
		return 0
	}
	return s.QualitySum / float64(s.Completed)
}

// AverageProcessing returns the mean processing time of completed jobs
func (s *ProfileStats) AverageProcessing() time.Duration {
	if s.Completed == 0 {
		return 0
	}
	return s.TotalProcessing / time.Duration(s.Completed)
}

// NewStatsTracker creates an empty stats tracker
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{profiles: make(map[string]*ProfileStats)}
}

// NotifyJobCompleted records a completed job
func (t *StatsTracker) NotifyJobCompleted(job *models.ExportJob) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := t.get(job.ExportProfileID)
	stats.Completed++
	stats.QualitySum += job.QualityReport.OverallScore
	stats.TotalProcessing += job.Metadata.ProcessingTime
	for _, output := range job.OutputFiles {
		stats.BytesProduced += output.Size
	}
}

// NotifyJobFailed records a failed job
func (t *StatsTracker) NotifyJobFailed(job *models.ExportJob) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.get(job.ExportProfileID).Failed++
}

func (t *StatsTracker) get(profileID string) *ProfileStats {
	stats, ok := t.profiles[profileID]
	if !ok {
		stats = &ProfileStats{ProfileID: profileID}
		t.profiles[profileID] = stats
	}
	return stats
}

// Snapshot returns a copy of all per profile stats
func (t *StatsTracker) Snapshot() map[string]ProfileStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]ProfileStats, len(t.profiles))
	for id, stats := range t.profiles {
		out[id] = *stats
	}
	return out
}
