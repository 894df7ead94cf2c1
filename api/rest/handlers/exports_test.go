package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"export-orchestrator/core/compat"
	"export-orchestrator/core/models"
	"export-orchestrator/core/orchestrator"
	"export-orchestrator/core/processor"
	"export-orchestrator/core/quality"
	"export-orchestrator/core/registry"
	"export-orchestrator/storage"

	"github.com/gorilla/mux"
)

type fakeEventSource struct {
	events []models.JobEvent
}

func (f *fakeEventSource) GetJobEvents(jobID string, limit int) ([]models.JobEvent, error) {
	return f.events, nil
}

type fakeOutputSource struct {
	outputs   []models.OutputFile
	gotFormat *models.FormatType
}

func (f *fakeOutputSource) GetJobOutputs(jobID string, format *models.FormatType) ([]models.OutputFile, error) {
	f.gotFormat = format
	return f.outputs, nil
}

func newExportTestSetup(t *testing.T) (*orchestrator.Orchestrator, *fakeEventSource, *fakeOutputSource, *mux.Router) {
	t.Helper()

	profiles := registry.NewProfileRegistry()
	processors := processor.NewRegistry()
	processor.RegisterBuiltins(processors)
	validator := quality.NewValidator(compat.NewRegistry())
	content := storage.NewMemoryStore()
	content.Put("brochure.design", []byte("layout brochure"))

	orch := orchestrator.NewOrchestrator(profiles, processors, validator, content, nil, nil)

	events := &fakeEventSource{}
	outputs := &fakeOutputSource{}
	handler := NewExportHandler(orch, events, outputs)

	r := mux.NewRouter()
	r.HandleFunc("/v1/exports/{id}/events", handler.GetExportEvents).Methods("GET")
	r.HandleFunc("/v1/exports/{id}/outputs", handler.GetExportOutputs).Methods("GET")
	return orch, events, outputs, r
}

func TestGetExportOutputs(t *testing.T) {
	orch, _, outputs, router := newExportTestSetup(t)

	job, err := orch.Submit(context.Background(), "brochure.design", "web_png", "", orchestrator.Options{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	outputs.outputs = []models.OutputFile{
		{Path: "out/brochure.png", Size: 2048, Format: models.FormatPNG, Checksum: "abc123"},
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/exports/"+job.ID+"/outputs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Items []models.OutputFile `json:"items"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].Path != "out/brochure.png" {
		t.Errorf("items = %+v", body.Items)
	}
	if outputs.gotFormat != nil {
		t.Error("format filter passed without a format query param")
	}
}

func TestGetExportOutputsFormatFilter(t *testing.T) {
	orch, _, outputs, router := newExportTestSetup(t)

	job, err := orch.Submit(context.Background(), "brochure.design", "web_png", "", orchestrator.Options{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/exports/"+job.ID+"/outputs?format=png", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if outputs.gotFormat == nil || *outputs.gotFormat != models.FormatPNG {
		t.Errorf("format filter = %v, want png", outputs.gotFormat)
	}
}

func TestGetExportOutputsUnknownJob(t *testing.T) {
	_, _, _, router := newExportTestSetup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/exports/export_missing/outputs", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetExportEvents(t *testing.T) {
	orch, events, _, router := newExportTestSetup(t)

	job, err := orch.Submit(context.Background(), "brochure.design", "web_png", "", orchestrator.Options{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	pending := models.JobStatusPending
	events.events = []models.JobEvent{
		{JobID: job.ID, At: time.Now(), ToStatus: models.JobStatusPending, Reason: "job_created"},
		{JobID: job.ID, At: time.Now(), FromStatus: &pending, ToStatus: models.JobStatusProcessing, Reason: "picked_up"},
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/exports/"+job.ID+"/events", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Items []map[string]interface{} `json:"items"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(body.Items))
	}
	if body.Items[1]["from_status"] != "pending" {
		t.Errorf("from_status = %v, want pending", body.Items[1]["from_status"])
	}
}
