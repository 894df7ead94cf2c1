// Package registry stores named export profiles. Reads are concurrent;
// writes to a profile are exclusive with reads of the same id.
package registry

import (
	"fmt"
	"sync"
	"time"

	"export-orchestrator/core/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ProfileRegistry holds export profiles in memory
type ProfileRegistry struct {
	mu       sync.RWMutex
	profiles map[string]*models.ExportProfile
	validate *validator.Validate
}

// NewProfileRegistry creates a registry seeded with the built-in profiles
func NewProfileRegistry() *ProfileRegistry {
	r := &ProfileRegistry{
		profiles: make(map[string]*models.ExportProfile),
		validate: validator.New(),
	}
	for _, profile := range BuiltinProfiles() {
		r.profiles[profile.ID] = profile
	}
	return r
}

// Register stores a profile and assigns an id when none was supplied
func (r *ProfileRegistry) Register(profile *models.ExportProfile) (string, error) {
	if err := r.validateProfile(profile); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID == "" {
		profile.ID = "profile_" + uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	stored := *profile
	r.profiles[profile.ID] = &stored
	return profile.ID, nil
}

// Get returns the profile for an id
func (r *ProfileRegistry) Get(id string) (*models.ExportProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrProfileNotFound, id)
	}

	copied := *profile
	return &copied, nil
}

// List returns all registered profiles
func (r *ProfileRegistry) List() []*models.ExportProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*models.ExportProfile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		copied := *profile
		profiles = append(profiles, &copied)
	}
	return profiles
}

// Update applies changed fields to an existing profile. The format type
// is immutable after creation and never changes through an update.
func (r *ProfileRegistry) Update(id string, updated *models.ExportProfile) (*models.ExportProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrProfileNotFound, id)
	}

	next := *updated
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.Format.Type = current.Format.Type

	if err := r.validateProfile(&next); err != nil {
		return nil, err
	}

	r.profiles[id] = &next
	copied := next
	return &copied, nil
}

// Remove deletes a profile and reports whether it existed
func (r *ProfileRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.profiles[id]
	delete(r.profiles, id)
	return ok
}

func (r *ProfileRegistry) validateProfile(profile *models.ExportProfile) error {
	if profile == nil {
		return models.ErrInvalidProfile
	}
	if err := r.validate.Struct(profile); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidProfile, err)
	}
	if profile.QualitySettings.QualityPercentage == 0 && profile.QualitySettings.CompressionLevel == "" {
		return fmt.Errorf("%w: at least one quality setting is required", models.ErrInvalidProfile)
	}
	return nil
}
