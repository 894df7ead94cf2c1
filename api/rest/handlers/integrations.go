package handlers

import (
	"encoding/json"
	"net/http"

	"export-orchestrator/core/integration"
	"export-orchestrator/core/models"

	"github.com/gorilla/mux"
)

// IntegrationHandler handles integration config HTTP requests
type IntegrationHandler struct {
	store *integration.Store
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(store *integration.Store) *IntegrationHandler {
	return &IntegrationHandler{store: store}
}

// ListIntegrations handles GET /v1/integrations
func (h *IntegrationHandler) ListIntegrations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"items": h.store.List()})
}

// GetIntegration handles GET /v1/integrations/{name}
func (h *IntegrationHandler) GetIntegration(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	cfg, err := h.store.Get(name)
	if err != nil {
		http.Error(w, "Integration not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

// ConfigureIntegration handles PUT /v1/integrations/{name}
func (h *IntegrationHandler) ConfigureIntegration(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var update models.IntegrationConfig
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cfg := h.store.Configure(name, update)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}
