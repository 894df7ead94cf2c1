package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"export-orchestrator/core/models"
	"export-orchestrator/core/orchestrator"

	"github.com/gorilla/mux"
)

// EventSource reads a job's persisted transition ledger
type EventSource interface {
	GetJobEvents(jobID string, limit int) ([]models.JobEvent, error)
}

// OutputSource reads a job's persisted output file rows
type OutputSource interface {
	GetJobOutputs(jobID string, format *models.FormatType) ([]models.OutputFile, error)
}

// ExportHandler handles export job HTTP requests
type ExportHandler struct {
	orchestrator *orchestrator.Orchestrator
	events       EventSource
	outputs      OutputSource
}

// NewExportHandler creates a new export handler
func NewExportHandler(orch *orchestrator.Orchestrator, events EventSource, outputs OutputSource) *ExportHandler {
	return &ExportHandler{
		orchestrator: orch,
		events:       events,
		outputs:      outputs,
	}
}

// SubmitExportRequest represents the request to submit an export job
type SubmitExportRequest struct {
	SourceFile string `json:"source_file"`
	ProfileID  string `json:"profile_id"`
	OutputPath string `json:"output_path,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
}

// SubmitExportResponse represents the response after submitting a job
type SubmitExportResponse struct {
	ID     string           `json:"id"`
	Status models.JobStatus `json:"status"`
}

// SubmitExport handles POST /v1/exports
func (h *ExportHandler) SubmitExport(w http.ResponseWriter, r *http.Request) {
	var req SubmitExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SourceFile == "" || req.ProfileID == "" {
		http.Error(w, "source_file and profile_id are required", http.StatusBadRequest)
		return
	}

	opts := orchestrator.Options{
		ProjectID: req.ProjectID,
		UserID:    "default-user", // TODO: Extract from auth token
	}

	job, err := h.orchestrator.Submit(r.Context(), req.SourceFile, req.ProfileID, req.OutputPath, opts)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to submit export: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SubmitExportResponse{ID: job.ID, Status: job.Status})
}

// GetExport handles GET /v1/exports/{id}
func (h *ExportHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	job, err := h.orchestrator.GetJob(jobID)
	if err != nil {
		http.Error(w, "Export job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// GetExportProgress handles GET /v1/exports/{id}/progress
func (h *ExportHandler) GetExportProgress(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	progress, err := h.orchestrator.GetProgress(jobID)
	if err != nil {
		http.Error(w, "Export job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progress)
}

// ListExports handles GET /v1/exports
func (h *ExportHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	var status *models.JobStatus
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		s := models.JobStatus(statusParam)
		status = &s
	}

	limit := 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		fmt.Sscanf(limitParam, "%d", &limit)
	}

	jobs := h.orchestrator.ListJobs(status)
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}

	items := make([]map[string]interface{}, len(jobs))
	for i, job := range jobs {
		items[i] = map[string]interface{}{
			"id":          job.ID,
			"source_file": job.SourceFile,
			"profile_id":  job.ExportProfileID,
			"status":      job.Status,
			"progress":    job.Progress,
			"start_time":  job.StartTime,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
}

// CancelExport handles POST /v1/exports/{id}/cancel
func (h *ExportHandler) CancelExport(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	if _, err := h.orchestrator.GetJob(jobID); err != nil {
		http.Error(w, "Export job not found", http.StatusNotFound)
		return
	}

	cancelled := h.orchestrator.Cancel(jobID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":        jobID,
		"cancelled": cancelled,
	})
}

// GetExportEvents handles GET /v1/exports/{id}/events
func (h *ExportHandler) GetExportEvents(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	if _, err := h.orchestrator.GetJob(jobID); err != nil {
		http.Error(w, "Export job not found", http.StatusNotFound)
		return
	}

	events, err := h.events.GetJobEvents(jobID, 100)
	if err != nil {
		http.Error(w, "Failed to fetch events: "+err.Error(), http.StatusInternalServerError)
		return
	}

	items := make([]map[string]interface{}, len(events))
	for i, event := range events {
		item := map[string]interface{}{
			"at":        event.At,
			"to_status": event.ToStatus,
			"reason":    event.Reason,
		}
		if event.FromStatus != nil {
			item["from_status"] = *event.FromStatus
		}
		items[i] = item
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
}

// GetExportOutputs handles GET /v1/exports/{id}/outputs
func (h *ExportHandler) GetExportOutputs(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	if _, err := h.orchestrator.GetJob(jobID); err != nil {
		http.Error(w, "Export job not found", http.StatusNotFound)
		return
	}

	var format *models.FormatType
	if formatParam := r.URL.Query().Get("format"); formatParam != "" {
		f := models.FormatType(formatParam)
		format = &f
	}

	outputs, err := h.outputs.GetJobOutputs(jobID, format)
	if err != nil {
		http.Error(w, "Failed to fetch outputs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if outputs == nil {
		outputs = []models.OutputFile{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"items": outputs})
}
