// Package compat validates output formats against external-tool
// requirements. One checker exists per target ecosystem; lookups for an
// unknown format/target pair report incompatibility instead of failing.
package compat

import (
	"fmt"

	"export-orchestrator/core/models"
)

// Checker validates a set of requirements for one target ecosystem
type Checker interface {
	Name() string
	Supports(format models.FormatType) bool
	Validate(format models.FormatType, requirements []models.CompatibilityRequirement) models.CompatibilityValidation
}

// Registry routes a format to the checker for its target ecosystem
type Registry struct {
	checkers map[string]Checker
	byFormat map[models.FormatType]string
}

// NewRegistry creates a registry with the built-in ecosystem checkers
func NewRegistry() *Registry {
	r := &Registry{
		checkers: make(map[string]Checker),
		byFormat: make(map[models.FormatType]string),
	}

	r.Register(&ecosystemChecker{
		name:           "adobe",
		formats:        []models.FormatType{models.FormatPDF, models.FormatEPS, models.FormatAI},
		baseScore:      0.95,
		recommendation: "Export to latest PDF format for best compatibility",
	})
	r.Register(&ecosystemChecker{
		name:           "figma",
		formats:        []models.FormatType{models.FormatSVG},
		baseScore:      0.88,
		recommendation: "SVG format provides best Figma compatibility",
	})
	r.Register(&ecosystemChecker{
		name:           "web",
		formats:        []models.FormatType{models.FormatPNG, models.FormatJPG, models.FormatWebP},
		baseScore:      0.92,
		recommendation: "Use WebP for modern browsers, PNG for legacy support",
	})
	r.Register(&ecosystemChecker{
		name:           "print",
		formats:        []models.FormatType{models.FormatPDF, models.FormatEPS},
		baseScore:      0.90,
		recommendation: "Ensure 300 DPI minimum for print quality",
	})

	return r
}

// Register adds a checker and claims its formats. A format already
// claimed keeps its first checker, so print-specific formats stay with
// the checker registered for them first.
func (r *Registry) Register(c Checker) {
	r.checkers[c.Name()] = c
	for format := range allFormats {
		if c.Supports(format) {
			if _, taken := r.byFormat[format]; !taken {
				r.byFormat[format] = c.Name()
			}
		}
	}
}

// Validate checks a format against the given requirements using the
// checker for the format's ecosystem. Never returns an error: an
// unknown format yields compatible=false with a single explaining issue.
func (r *Registry) Validate(format models.FormatType, requirements []models.CompatibilityRequirement) models.CompatibilityValidation {
	name, ok := r.byFormat[format]
	if !ok {
		return models.CompatibilityValidation{
			Compatible:      false,
			Issues:          []string{fmt.Sprintf("no compatibility checker available for %s", format)},
			Recommendations: []string{"use a supported format"},
			Score:           0,
		}
	}
	return r.checkers[name].Validate(format, requirements)
}

var allFormats = map[models.FormatType]struct{}{
	models.FormatPDF:  {},
	models.FormatEPS:  {},
	models.FormatAI:   {},
	models.FormatSVG:  {},
	models.FormatPNG:  {},
	models.FormatJPG:  {},
	models.FormatWebP: {},
}

// ecosystemChecker is the built-in checker implementation shared by the
// adobe, figma, web and print ecosystems
type ecosystemChecker struct {
	name           string
	formats        []models.FormatType
	baseScore      float64
	recommendation string
}

func (c *ecosystemChecker) Name() string { return c.name }

func (c *ecosystemChecker) Supports(format models.FormatType) bool {
	for _, f := range c.formats {
		if f == format {
			return true
		}
	}
	return false
}

func (c *ecosystemChecker) Validate(format models.FormatType, requirements []models.CompatibilityRequirement) models.CompatibilityValidation {
	validation := models.CompatibilityValidation{
		Compatible:      true,
		Issues:          []string{},
		Recommendations: []string{c.recommendation},
		Score:           c.baseScore,
	}

	if !c.Supports(format) {
		validation.Compatible = false
		validation.Score = 0
		validation.Issues = append(validation.Issues,
			fmt.Sprintf("%s is not supported by the %s ecosystem", format, c.name))
		return validation
	}

	for _, req := range requirements {
		if !knownRequirementTypes[req.Type] {
			validation.Issues = append(validation.Issues,
				fmt.Sprintf("unknown requirement type %q cannot be verified", req.Type))
			validation.Score -= 0.1
		}
	}
	if validation.Score < 0 {
		validation.Score = 0
	}
	if len(validation.Issues) > 0 && validation.Score < 0.5 {
		validation.Compatible = false
	}

	return validation
}

var knownRequirementTypes = map[string]bool{
	"resolution":     true,
	"color_space":    true,
	"format_version": true,
	"features":       true,
	"size":           true,
}
