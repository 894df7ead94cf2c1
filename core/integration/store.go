// Package integration stores per external tool sync configuration.
// Configs are opaque to the export pipeline; the store only guarantees
// consistent reads and last-write-wins updates per tool.
package integration

import (
	"fmt"
	"sync"

	"export-orchestrator/core/models"

	log "github.com/sirupsen/logrus"
)

// Store holds integration configs keyed by tool name
type Store struct {
	mu      sync.RWMutex
	configs map[string]*models.IntegrationConfig
}

// NewStore creates a store seeded with the known tool integrations,
// all disabled until explicitly configured
func NewStore() *Store {
	s := &Store{configs: make(map[string]*models.IntegrationConfig)}
	for _, cfg := range defaultConfigs() {
		s.configs[cfg.Name] = cfg
	}
	return s
}

func defaultConfigs() []*models.IntegrationConfig {
	return []*models.IntegrationConfig{
		{
			Name:    "adobe_creative_suite",
			Enabled: false,
			Version: "2024",
			Auth: models.IntegrationAuth{
				Type:   "api_key",
				Scopes: []string{"cc_libraries", "assets", "files", "folders"},
			},
			SyncDirection:      "bidirectional",
			ConflictResolution: "manual",
			AutoSync:           false,
			SyncIntervalMin:    60,
		},
		{
			Name:    "figma",
			Enabled: false,
			Auth: models.IntegrationAuth{
				Type: "bearer",
			},
			SyncDirection:      "bidirectional",
			ConflictResolution: "manual",
			AutoSync:           false,
			SyncIntervalMin:    30,
			ExportDefaults: map[string]string{
				"export_format": "svg",
				"scale_factors": "1,2,3",
			},
		},
		{
			Name:    "sketch",
			Enabled: false,
			Auth: models.IntegrationAuth{
				Type: "bearer",
			},
			SyncDirection: "bidirectional",
			AutoSync:      false,
		},
		{
			Name:    "canva",
			Enabled: false,
			Auth: models.IntegrationAuth{
				Type: "api_key",
			},
			SyncDirection: "bidirectional",
			AutoSync:      false,
		},
	}
}

// Get returns a copy of one tool's config
func (s *Store) Get(name string) (*models.IntegrationConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[name]
	if !ok {
		return nil, fmt.Errorf("unknown integration: %s", name)
	}
	copied := *cfg
	return &copied, nil
}

// List returns copies of all configs
func (s *Store) List() []*models.IntegrationConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configs := make([]*models.IntegrationConfig, 0, len(s.configs))
	for _, cfg := range s.configs {
		copied := *cfg
		configs = append(configs, &copied)
	}
	return configs
}

// Configure merges an update into one tool's config. Unknown tools are
// registered as custom integrations.
func (s *Store) Configure(name string, update models.IntegrationConfig) *models.IntegrationConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.configs[name]
	if !ok {
		update.Name = name
		s.configs[name] = &update
		log.Printf("Registered custom integration: %s", name)
		copied := update
		return &copied
	}

	merged := *current
	merged.Enabled = update.Enabled
	if update.Version != "" {
		merged.Version = update.Version
	}
	if update.APIEndpoint != "" {
		merged.APIEndpoint = update.APIEndpoint
	}
	if update.Auth.Type != "" {
		merged.Auth = update.Auth
	}
	if update.SyncDirection != "" {
		merged.SyncDirection = update.SyncDirection
	}
	if update.ConflictResolution != "" {
		merged.ConflictResolution = update.ConflictResolution
	}
	merged.AutoSync = update.AutoSync
	if update.SyncIntervalMin > 0 {
		merged.SyncIntervalMin = update.SyncIntervalMin
	}
	if update.ExportDefaults != nil {
		merged.ExportDefaults = update.ExportDefaults
	}

	s.configs[name] = &merged
	log.Printf("Updated %s integration configuration", name)
	copied := merged
	return &copied
}
