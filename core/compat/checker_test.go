package compat

import (
	"testing"

	"export-orchestrator/core/models"
)

func TestValidateKnownFormats(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		format    models.FormatType
		wantScore float64
	}{
		{models.FormatPDF, 0.95},
		{models.FormatSVG, 0.88},
		{models.FormatPNG, 0.92},
		{models.FormatWebP, 0.92},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			v := registry.Validate(tt.format, nil)
			if !v.Compatible {
				t.Errorf("Validate(%s) compatible = false, want true", tt.format)
			}
			if v.Score != tt.wantScore {
				t.Errorf("Validate(%s) score = %v, want %v", tt.format, v.Score, tt.wantScore)
			}
			if len(v.Recommendations) == 0 {
				t.Errorf("Validate(%s) returned no recommendations", tt.format)
			}
		})
	}
}

func TestValidateUnknownFormat(t *testing.T) {
	registry := NewRegistry()

	v := registry.Validate(models.FormatType("tiff"), nil)
	if v.Compatible {
		t.Error("unknown format reported compatible")
	}
	if v.Score != 0 {
		t.Errorf("unknown format score = %v, want 0", v.Score)
	}
	if len(v.Issues) != 1 {
		t.Errorf("unknown format issues = %d, want 1", len(v.Issues))
	}
}

func TestValidateUnknownRequirementType(t *testing.T) {
	registry := NewRegistry()

	reqs := []models.CompatibilityRequirement{
		{Type: "resolution", Value: "300", Comparison: "greater_than"},
		{Type: "holographic", Value: "yes", Comparison: "supports"},
	}
	v := registry.Validate(models.FormatPDF, reqs)
	if len(v.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(v.Issues))
	}
	if v.Score >= 0.95 {
		t.Errorf("score = %v, want below base score", v.Score)
	}
}
