package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"export-orchestrator/core/models"
	"export-orchestrator/core/registry"
	"export-orchestrator/core/spec"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// ProfileStore mirrors profile mutations to durable storage. The
// registry stays the source of truth at runtime; persistence is
// best-effort and never fails a request.
type ProfileStore interface {
	SaveProfile(profile *models.ExportProfile) error
	DeleteProfile(id string) error
}

// ProfileHandler handles export profile HTTP requests
type ProfileHandler struct {
	registry *registry.ProfileRegistry
	store    ProfileStore
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(reg *registry.ProfileRegistry, store ProfileStore) *ProfileHandler {
	return &ProfileHandler{registry: reg, store: store}
}

func (h *ProfileHandler) persist(profile *models.ExportProfile) {
	if h.store == nil {
		return
	}
	if err := h.store.SaveProfile(profile); err != nil {
		log.Printf("Failed to persist profile %s: %v", profile.ID, err)
	}
}

// CreateProfileRequest represents the request to register a profile.
// Either a YAML spec or an inline profile document is accepted.
type CreateProfileRequest struct {
	SpecYAML string                `json:"spec_yaml,omitempty"`
	Profile  *models.ExportProfile `json:"profile,omitempty"`
}

// CreateProfile handles POST /v1/profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile := req.Profile
	if req.SpecYAML != "" {
		parsed, err := spec.ParseProfileSpec(req.SpecYAML)
		if err != nil {
			http.Error(w, "Invalid profile spec: "+err.Error(), http.StatusBadRequest)
			return
		}
		profile = parsed
	}
	if profile == nil {
		http.Error(w, "Either spec_yaml or profile is required", http.StatusBadRequest)
		return
	}

	id, err := h.registry.Register(profile)
	if err != nil {
		http.Error(w, "Invalid profile: "+err.Error(), http.StatusBadRequest)
		return
	}
	if registered, err := h.registry.Get(id); err == nil {
		h.persist(registered)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// GetProfile handles GET /v1/profiles/{id}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	profile, err := h.registry.Get(id)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// ListProfiles handles GET /v1/profiles
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := h.registry.List()

	category := r.URL.Query().Get("category")
	if category != "" {
		filtered := profiles[:0]
		for _, p := range profiles {
			if string(p.Category) == category {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"items": profiles})
}

// UpdateProfile handles PUT /v1/profiles/{id}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var updated models.ExportProfile
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.registry.Update(id, &updated)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Invalid profile: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.persist(profile)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// DeleteProfile handles DELETE /v1/profiles/{id}
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if !h.registry.Remove(id) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if h.store != nil {
		if err := h.store.DeleteProfile(id); err != nil {
			log.Printf("Failed to delete stored profile %s: %v", id, err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFormats handles GET /v1/formats
func (h *ProfileHandler) ListFormats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"formats": registry.SupportedFormats})
}
