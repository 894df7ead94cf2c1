package models

// CompatibilityRequirement is one external-tool constraint a format is
// checked against
type CompatibilityRequirement struct {
	Type       string `json:"type"` // resolution | color_space | format_version | features | size
	Value      string `json:"value"`
	Comparison string `json:"comparison"` // equals | greater_than | less_than | contains | supports
}

// CompatibilityValidation is the outcome of checking a format against a
// set of requirements
type CompatibilityValidation struct {
	Compatible      bool     `json:"compatible"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Score           float64  `json:"score"`
}
