package integration

import (
	"testing"

	"export-orchestrator/core/models"
)

func TestDefaultsSeededDisabled(t *testing.T) {
	s := NewStore()

	for _, name := range []string{"adobe_creative_suite", "figma", "sketch", "canva"} {
		cfg, err := s.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if cfg.Enabled {
			t.Errorf("%s enabled by default", name)
		}
		if cfg.SyncDirection != "bidirectional" {
			t.Errorf("%s sync direction = %q", name, cfg.SyncDirection)
		}
	}

	if len(s.List()) != 4 {
		t.Errorf("List() returned %d configs, want 4", len(s.List()))
	}
}

func TestConfigureMergesUpdate(t *testing.T) {
	s := NewStore()

	updated := s.Configure("figma", models.IntegrationConfig{
		Enabled:       true,
		SyncDirection: "export_only",
	})
	if !updated.Enabled || updated.SyncDirection != "export_only" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.SyncIntervalMin != 30 {
		t.Errorf("sync interval = %d, want seeded 30 preserved", updated.SyncIntervalMin)
	}

	stored, err := s.Get("figma")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !stored.Enabled || stored.SyncDirection != "export_only" {
		t.Errorf("stored config not updated: %+v", stored)
	}
}

func TestConfigureRegistersCustomIntegration(t *testing.T) {
	s := NewStore()

	s.Configure("dropbox", models.IntegrationConfig{
		Enabled:       true,
		SyncDirection: "export_only",
	})

	cfg, err := s.Get("dropbox")
	if err != nil {
		t.Fatalf("Get after Configure: %v", err)
	}
	if cfg.Name != "dropbox" || !cfg.Enabled {
		t.Errorf("custom integration = %+v", cfg)
	}
}

func TestGetUnknownIntegration(t *testing.T) {
	s := NewStore()
	if _, err := s.Get("procreate"); err == nil {
		t.Error("unknown integration returned without error")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()

	cfg, _ := s.Get("sketch")
	cfg.Enabled = true

	again, _ := s.Get("sketch")
	if again.Enabled {
		t.Error("mutating a returned config changed the store")
	}
}
