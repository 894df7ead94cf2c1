package handlers

import (
	"encoding/json"
	"net/http"

	"export-orchestrator/core/compat"
	"export-orchestrator/core/models"
)

// CompatHandler handles compatibility validation HTTP requests
type CompatHandler struct {
	registry *compat.Registry
}

// NewCompatHandler creates a new compatibility handler
func NewCompatHandler(reg *compat.Registry) *CompatHandler {
	return &CompatHandler{registry: reg}
}

// ValidateCompatRequest represents a compatibility validation request
type ValidateCompatRequest struct {
	Format       models.FormatType                 `json:"format"`
	Requirements []models.CompatibilityRequirement `json:"requirements"`
}

// ValidateCompat handles POST /v1/compatibility/validate
func (h *CompatHandler) ValidateCompat(w http.ResponseWriter, r *http.Request) {
	var req ValidateCompatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Format == "" {
		http.Error(w, "format is required", http.StatusBadRequest)
		return
	}

	validation := h.registry.Validate(req.Format, req.Requirements)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(validation)
}
