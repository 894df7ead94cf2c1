package quality

import (
	"testing"

	"export-orchestrator/core/compat"
	"export-orchestrator/core/models"
)

func newValidator() *Validator {
	return NewValidator(compat.NewRegistry())
}

func jobWithOutput(size int64, format models.FormatType) *models.ExportJob {
	return &models.ExportJob{
		ID:         "export_q1",
		SourceFile: "poster.design",
		OutputFiles: []models.OutputFile{
			{Path: "poster.pdf", Size: size, Format: format, Checksum: "aa"},
		},
	}
}

func profileFor(format models.FormatType, sizeLimit int64) *models.ExportProfile {
	return &models.ExportProfile{
		ID:     "p1",
		Name:   "Profile",
		Format: models.ExportFormat{Type: format, SupportsText: true},
		QualitySettings: models.QualitySettings{
			QualityPercentage: 95,
			AntiAliasing:      true,
			OptimizeForWeb:    true,
		},
		Optimization: models.OptimizationSettings{
			FileSizeLimit:  sizeLimit,
			OptimizeImages: true,
		},
		Metadata: models.ExportMetadata{Title: "Poster"},
	}
}

func TestValidateReturnsCompleteReport(t *testing.T) {
	v := newValidator()

	report := v.Validate(jobWithOutput(500*1024, models.FormatPDF), profileFor(models.FormatPDF, 0))

	if report.OverallScore <= 0 || report.OverallScore > 1 {
		t.Errorf("overall score %v outside (0,1]", report.OverallScore)
	}
	if len(report.ValidationResults) == 0 {
		t.Error("no validation results in report")
	}
	if report.Issues == nil || report.Recommendations == nil {
		t.Error("issues and recommendations must be non-nil even when empty")
	}
}

func TestValidateUnlimitedSizeScoresFull(t *testing.T) {
	v := newValidator()

	report := v.Validate(jobWithOutput(10*1024*1024, models.FormatPDF), profileFor(models.FormatPDF, 0))
	if report.FileSizeScore != 1 {
		t.Errorf("file size score = %v, want 1 for unlimited profile", report.FileSizeScore)
	}
}

func TestValidateSizeLimitExceeded(t *testing.T) {
	v := newValidator()

	report := v.Validate(jobWithOutput(2*1024*1024, models.FormatPNG), profileFor(models.FormatPNG, 1024*1024))
	if report.FileSizeScore >= 1 {
		t.Errorf("file size score = %v, want below 1", report.FileSizeScore)
	}

	found := false
	for _, issue := range report.Issues {
		if issue.Category == "compression" && issue.Severity == models.SeverityMajor {
			found = true
		}
	}
	if !found {
		t.Error("expected a major compression issue for oversized output")
	}

	failed := false
	for _, result := range report.ValidationResults {
		if result.CheckName == "File Size" && !result.Passed {
			failed = true
		}
	}
	if !failed {
		t.Error("File Size check should fail for oversized output")
	}
}

// A report can fail individual checks while keeping a usable overall
// score; blocking is batch policy, not the validator's call.
func TestValidateFailedCheckDoesNotZeroOverall(t *testing.T) {
	v := newValidator()

	report := v.Validate(jobWithOutput(4*1024*1024, models.FormatJPG), profileFor(models.FormatJPG, 512*1024))
	if report.OverallScore <= 0 {
		t.Errorf("overall score = %v, want above 0 despite failed size check", report.OverallScore)
	}
}
