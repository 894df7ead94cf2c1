package registry

import (
	"errors"
	"testing"

	"export-orchestrator/core/models"
)

func customProfile() *models.ExportProfile {
	return &models.ExportProfile{
		Name:            "Archive PDF",
		Category:        models.CategoryArchive,
		Format:          SupportedFormats[models.FormatPDF],
		QualitySettings: DefaultQualitySettings(),
	}
}

func TestBuiltinProfilesSeeded(t *testing.T) {
	r := NewProfileRegistry()

	for _, id := range []string{"print_ready_pdf", "web_png", "social_jpg", "mobile_webp", "vector_svg", "print_eps"} {
		profile, err := r.Get(id)
		if err != nil {
			t.Errorf("Get(%s): %v", id, err)
			continue
		}
		if profile.Format.Type == "" {
			t.Errorf("builtin %s has no format type", id)
		}
	}

	if len(r.List()) != 6 {
		t.Errorf("List() = %d profiles, want 6", len(r.List()))
	}
}

func TestRegisterAssignsID(t *testing.T) {
	r := NewProfileRegistry()

	id, err := r.Register(customProfile())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id == "" {
		t.Fatal("Register returned empty id")
	}

	got, err := r.Get(id)
	if err != nil {
		t.Fatalf("Get(%s): %v", id, err)
	}
	if got.Name != "Archive PDF" {
		t.Errorf("Name = %q, want %q", got.Name, "Archive PDF")
	}
}

func TestRegisterRejectsInvalidProfile(t *testing.T) {
	r := NewProfileRegistry()

	tests := []struct {
		name    string
		profile *models.ExportProfile
	}{
		{"nil profile", nil},
		{"missing format type", &models.ExportProfile{Name: "x", Category: models.CategoryWeb, QualitySettings: DefaultQualitySettings()}},
		{"no quality settings", &models.ExportProfile{Name: "x", Category: models.CategoryWeb, Format: SupportedFormats[models.FormatPNG], QualitySettings: models.QualitySettings{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Register(tt.profile); !errors.Is(err, models.ErrInvalidProfile) {
				t.Errorf("Register() error = %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestGetUnknownProfile(t *testing.T) {
	r := NewProfileRegistry()

	if _, err := r.Get("no_such_profile"); !errors.Is(err, models.ErrProfileNotFound) {
		t.Errorf("Get() error = %v, want ErrProfileNotFound", err)
	}
}

func TestUpdateKeepsFormatTypeImmutable(t *testing.T) {
	r := NewProfileRegistry()
	id, err := r.Register(customProfile())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	patch := customProfile()
	patch.Name = "Archive PDF v2"
	patch.Format = SupportedFormats[models.FormatPNG] // must not stick

	updated, err := r.Update(id, patch)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Archive PDF v2" {
		t.Errorf("Name = %q, want updated name", updated.Name)
	}
	if updated.Format.Type != models.FormatPDF {
		t.Errorf("Format.Type = %s, want pdf (immutable)", updated.Format.Type)
	}
}

func TestRemove(t *testing.T) {
	r := NewProfileRegistry()
	id, _ := r.Register(customProfile())

	if !r.Remove(id) {
		t.Error("Remove(existing) = false, want true")
	}
	if r.Remove(id) {
		t.Error("Remove(removed) = true, want false")
	}
}
