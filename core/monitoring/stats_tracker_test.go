package monitoring

import (
	"strings"
	"testing"
	"time"

	"export-orchestrator/core/compat"
	"export-orchestrator/core/models"
	"export-orchestrator/core/orchestrator"
	"export-orchestrator/core/processor"
	"export-orchestrator/core/quality"
	"export-orchestrator/core/registry"
	"export-orchestrator/storage"
)

func TestStatsTrackerAggregates(t *testing.T) {
	tracker := NewStatsTracker()

	tracker.NotifyJobCompleted(&models.ExportJob{
		ExportProfileID: "web_png",
		QualityReport:   models.QualityReport{OverallScore: 0.9},
		Metadata:        models.JobMetadata{ProcessingTime: 2 * time.Second},
		OutputFiles:     []models.OutputFile{{Size: 1000}, {Size: 500}},
	})
	tracker.NotifyJobCompleted(&models.ExportJob{
		ExportProfileID: "web_png",
		QualityReport:   models.QualityReport{OverallScore: 0.7},
		Metadata:        models.JobMetadata{ProcessingTime: 4 * time.Second},
		OutputFiles:     []models.OutputFile{{Size: 1500}},
	})
	tracker.NotifyJobFailed(&models.ExportJob{ExportProfileID: "web_png"})

	stats := tracker.Snapshot()["web_png"]
	if stats.Completed != 2 || stats.Failed != 1 {
		t.Errorf("completed/failed = %d/%d, want 2/1", stats.Completed, stats.Failed)
	}
	if stats.BytesProduced != 3000 {
		t.Errorf("bytes = %d, want 3000", stats.BytesProduced)
	}
	if got := stats.AverageQuality(); got < 0.799 || got > 0.801 {
		t.Errorf("average quality = %v, want 0.8", got)
	}
	if stats.AverageProcessing() != 3*time.Second {
		t.Errorf("average processing = %v, want 3s", stats.AverageProcessing())
	}
}

func TestStatsTrackerEmptyProfile(t *testing.T) {
	var stats ProfileStats
	if stats.AverageQuality() != 0 || stats.AverageProcessing() != 0 {
		t.Error("empty stats should average to zero")
	}
}

func TestMetricsExporterOutput(t *testing.T) {
	profiles := registry.NewProfileRegistry()
	processors := processor.NewRegistry()
	processor.RegisterBuiltins(processors)
	validator := quality.NewValidator(compat.NewRegistry())
	content := storage.NewMemoryStore()

	orch := orchestrator.NewOrchestrator(profiles, processors, validator, content, nil, nil)

	tracker := NewStatsTracker()
	tracker.NotifyJobCompleted(&models.ExportJob{
		ExportProfileID: "web_png",
		QualityReport:   models.QualityReport{OverallScore: 0.9},
		OutputFiles:     []models.OutputFile{{Size: 2048}},
	})

	exporter := NewMetricsExporter(orch, tracker)
	metrics := exporter.GetPrometheusMetrics()

	for _, want := range []string{
		`export_jobs_total{status="pending"} 0`,
		"export_success_rate 0.0000",
		`export_profile_jobs_total{profile_id="web_png",outcome="completed"} 1`,
		`export_profile_bytes_total{profile_id="web_png"} 2048`,
		`export_profile_quality_avg{profile_id="web_png"} 0.9000`,
	} {
		if !strings.Contains(metrics, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
