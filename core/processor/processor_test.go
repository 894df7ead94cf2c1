package processor

import (
	"context"
	"errors"
	"testing"

	"export-orchestrator/core/models"
)

func testProfile(format models.FormatType) *models.ExportProfile {
	return &models.ExportProfile{
		ID:     "test_profile",
		Name:   "Test Profile",
		Format: models.ExportFormat{Type: format},
		QualitySettings: models.QualitySettings{
			QualityPercentage: 90,
		},
		ResolutionSettings: models.ResolutionSettings{DPI: 300},
	}
}

func TestRegistryDispatch(t *testing.T) {
	registry := NewRegistry()
	RegisterBuiltins(registry)

	for _, format := range []models.FormatType{
		models.FormatPDF, models.FormatSVG, models.FormatPNG,
		models.FormatJPG, models.FormatWebP, models.FormatEPS, models.FormatAI,
	} {
		if _, err := registry.Get(format); err != nil {
			t.Errorf("Get(%s) returned error: %v", format, err)
		}
	}

	if _, err := registry.Get(models.FormatType("tiff")); err == nil {
		t.Error("Get(tiff) succeeded, want error")
	}
}

func TestStubProcessDeterministic(t *testing.T) {
	registry := NewRegistry()
	RegisterBuiltins(registry)

	p, err := registry.Get(models.FormatPDF)
	if err != nil {
		t.Fatalf("Get(pdf): %v", err)
	}

	job := &models.ExportJob{
		ID:         "export_1",
		SourceFile: "poster.design",
		OutputPath: "poster_test_profile.pdf",
	}
	profile := testProfile(models.FormatPDF)

	first, err := p.Process(context.Background(), job, profile)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	second, err := p.Process(context.Background(), job, profile)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if first.Checksum != second.Checksum {
		t.Errorf("checksums differ: %s != %s", first.Checksum, second.Checksum)
	}
	if first.Size != second.Size {
		t.Errorf("sizes differ: %d != %d", first.Size, second.Size)
	}
	if first.QualityScore < 0 || first.QualityScore > 1 {
		t.Errorf("quality score %v outside [0,1]", first.QualityScore)
	}
}

func TestStubProcessFormatMismatch(t *testing.T) {
	p := NewStubProcessor(models.FormatPNG, 1024, 0.9, 0.9, true)

	job := &models.ExportJob{ID: "export_2", SourceFile: "poster.design"}
	_, err := p.Process(context.Background(), job, testProfile(models.FormatPDF))
	if err == nil {
		t.Fatal("Process with mismatched profile succeeded")
	}

	var procErr *models.ProcessingError
	if !errors.As(err, &procErr) {
		t.Errorf("error is %T, want *models.ProcessingError", err)
	}
}
