package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"export-orchestrator/core/batch"
	"export-orchestrator/core/models"
	"export-orchestrator/core/spec"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// BatchHandler handles batch export HTTP requests. Execution is
// asynchronous: submission returns the batch id and the result is
// polled for.
type BatchHandler struct {
	coordinator *batch.Coordinator

	mu      sync.RWMutex
	running map[string]bool
	results map[string]*models.BatchResult
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(coordinator *batch.Coordinator) *BatchHandler {
	return &BatchHandler{
		coordinator: coordinator,
		running:     make(map[string]bool),
		results:     make(map[string]*models.BatchResult),
	}
}

// SubmitBatchRequest represents the request to submit a batch export.
// Either a YAML spec or an inline request document is accepted.
type SubmitBatchRequest struct {
	SpecYAML string                     `json:"spec_yaml,omitempty"`
	Batch    *models.BatchExportRequest `json:"batch,omitempty"`
}

// SubmitBatch handles POST /v1/batches
func (h *BatchHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req SubmitBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	batchReq := req.Batch
	if req.SpecYAML != "" {
		parsed, err := spec.ParseBatchSpec(req.SpecYAML)
		if err != nil {
			http.Error(w, "Invalid batch spec: "+err.Error(), http.StatusBadRequest)
			return
		}
		batchReq = parsed
	}
	if batchReq == nil {
		http.Error(w, "Either spec_yaml or batch is required", http.StatusBadRequest)
		return
	}

	created, err := h.coordinator.Create(*batchReq)
	if err != nil {
		http.Error(w, "Invalid batch request: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.running[created.ID] = true
	h.mu.Unlock()

	go func() {
		result, err := h.coordinator.Execute(context.Background(), created)

		h.mu.Lock()
		delete(h.running, created.ID)
		if err == nil {
			h.results[created.ID] = result
		}
		h.mu.Unlock()

		if err != nil {
			log.Printf("Batch %s execution failed: %v", created.ID, err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":     created.ID,
		"status": "running",
	})
}

// GetBatch handles GET /v1/batches/{id}
func (h *BatchHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["id"]

	h.mu.RLock()
	running := h.running[batchID]
	result := h.results[batchID]
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if running {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     batchID,
			"status": "running",
		})
		return
	}
	if result == nil {
		http.Error(w, "Batch not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":     batchID,
		"status": "finished",
		"result": result,
	})
}
