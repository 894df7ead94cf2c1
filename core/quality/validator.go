// Package quality scores produced exports against a profile. The
// validator never trusts processor-reported scores as final and always
// returns a complete report, even with zero issues.
package quality

import (
	"fmt"

	"export-orchestrator/core/compat"
	"export-orchestrator/core/models"
)

// Overall score weights. File size and compatibility carry the most
// signal after the raw profile quality percentage.
const (
	weightFileSize      = 0.25
	weightQuality       = 0.30
	weightCompatibility = 0.25
	weightAccessibility = 0.10
	weightPerformance   = 0.10
)

// Validator produces quality reports for finished export stages
type Validator struct {
	compat *compat.Registry
}

// NewValidator creates a validator backed by the given compatibility registry
func NewValidator(compatRegistry *compat.Registry) *Validator {
	return &Validator{compat: compatRegistry}
}

// Validate scores a job's output against its profile and returns a
// complete report. Individual checks may fail without the overall score
// dropping below a caller's threshold; whether failed checks block
// completion is batch policy, not decided here.
func (v *Validator) Validate(job *models.ExportJob, profile *models.ExportProfile) *models.QualityReport {
	report := &models.QualityReport{
		Issues:            []models.Issue{},
		Recommendations:   []models.Recommendation{},
		ValidationResults: []models.ValidationResult{},
	}

	var totalSize int64
	for _, out := range job.OutputFiles {
		totalSize += out.Size
	}

	report.FileSizeScore = v.scoreFileSize(totalSize, profile, report)
	report.QualityScore = float64(profile.QualitySettings.QualityPercentage) / 100
	report.CompatibilityScore = v.scoreCompatibility(profile, report)
	report.AccessibilityScore = v.scoreAccessibility(profile, report)
	report.PerformanceScore = v.scorePerformance(totalSize, profile, report)

	report.OverallScore = weightFileSize*report.FileSizeScore +
		weightQuality*report.QualityScore +
		weightCompatibility*report.CompatibilityScore +
		weightAccessibility*report.AccessibilityScore +
		weightPerformance*report.PerformanceScore

	return report
}

// scoreFileSize rates output size against the profile's limit.
// A zero limit means unlimited and scores full marks.
func (v *Validator) scoreFileSize(totalSize int64, profile *models.ExportProfile, report *models.QualityReport) float64 {
	limit := profile.Optimization.FileSizeLimit
	if limit == 0 {
		report.ValidationResults = append(report.ValidationResults, models.ValidationResult{
			CheckName: "File Size",
			Passed:    true,
			Score:     1,
			Details:   "no size limit configured",
		})
		return 1
	}

	if totalSize <= limit {
		report.ValidationResults = append(report.ValidationResults, models.ValidationResult{
			CheckName: "File Size",
			Passed:    true,
			Score:     1,
			Details:   fmt.Sprintf("%d bytes within the %d byte limit", totalSize, limit),
		})
		return 1
	}

	score := float64(limit) / float64(totalSize)
	report.ValidationResults = append(report.ValidationResults, models.ValidationResult{
		CheckName: "File Size",
		Passed:    false,
		Score:     score,
		Details:   fmt.Sprintf("%d bytes exceeds the %d byte limit", totalSize, limit),
	})
	report.Issues = append(report.Issues, models.Issue{
		Severity:    models.SeverityMajor,
		Category:    "compression",
		Title:       "Output exceeds size limit",
		Description: fmt.Sprintf("output is %d bytes, limit is %d bytes", totalSize, limit),
		Solution:    "lower the quality percentage or enable image optimization",
		AutoFixable: true,
	})
	return score
}

func (v *Validator) scoreCompatibility(profile *models.ExportProfile, report *models.QualityReport) float64 {
	validation := v.compat.Validate(profile.Format.Type, nil)

	report.ValidationResults = append(report.ValidationResults, models.ValidationResult{
		CheckName: "Format Compatibility",
		Passed:    validation.Compatible,
		Score:     validation.Score,
		Details:   fmt.Sprintf("%s scored %.2f against its target ecosystem", profile.Format.Type, validation.Score),
	})

	if !validation.Compatible {
		report.Issues = append(report.Issues, models.Issue{
			Severity:    models.SeverityCritical,
			Category:    "compatibility",
			Title:       "Format not supported by target ecosystem",
			Description: fmt.Sprintf("no tool in the target ecosystem accepts %s output", profile.Format.Type),
			Solution:    "export with a profile whose format the target ecosystem supports",
		})
	}
	for _, rec := range validation.Recommendations {
		report.Recommendations = append(report.Recommendations, models.Recommendation{
			Category:    "compatibility",
			Title:       rec,
			EffortLevel: "minimal",
		})
	}

	return validation.Score
}

// scoreAccessibility applies cheap heuristics: text support, metadata
// presence and anti-aliasing each raise the floor.
func (v *Validator) scoreAccessibility(profile *models.ExportProfile, report *models.QualityReport) float64 {
	score := 0.6
	if profile.Format.SupportsText {
		score += 0.2
	}
	if profile.Metadata.Title != "" || profile.Metadata.Description != "" {
		score += 0.1
	}
	if profile.QualitySettings.AntiAliasing {
		score += 0.1
	}
	if score > 1 {
		score = 1
	}

	passed := score >= 0.7
	report.ValidationResults = append(report.ValidationResults, models.ValidationResult{
		CheckName: "Accessibility",
		Passed:    passed,
		Score:     score,
		Details:   fmt.Sprintf("accessibility heuristics scored %.2f", score),
	})
	if !passed {
		report.Issues = append(report.Issues, models.Issue{
			Severity:    models.SeverityMinor,
			Category:    "accessibility",
			Title:       "Low accessibility score",
			Description: "the output format carries no text and the profile has no descriptive metadata",
			Solution:    "add a title and description to the profile metadata",
			AutoFixable: false,
		})
	}

	return score
}

func (v *Validator) scorePerformance(totalSize int64, profile *models.ExportProfile, report *models.QualityReport) float64 {
	score := 0.5
	if profile.QualitySettings.OptimizeForWeb {
		score += 0.2
	}
	if totalSize > 0 && totalSize <= 1024*1024 {
		score += 0.2
	}
	if profile.Optimization.OptimizeImages {
		score += 0.1
	}
	if score > 1 {
		score = 1
	}

	report.ValidationResults = append(report.ValidationResults, models.ValidationResult{
		CheckName: "Performance",
		Passed:    score >= 0.5,
		Score:     score,
		Details:   fmt.Sprintf("delivery performance scored %.2f", score),
	})

	return score
}
