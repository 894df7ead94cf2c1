package models

// QualityReport is the multi-dimensional score produced after a job's
// processing stage. Read-only once attached to a job.
type QualityReport struct {
	OverallScore       float64            `json:"overall_score"`
	FileSizeScore      float64            `json:"file_size_score"`
	QualityScore       float64            `json:"quality_score"`
	CompatibilityScore float64            `json:"compatibility_score"`
	AccessibilityScore float64            `json:"accessibility_score"`
	PerformanceScore   float64            `json:"performance_score"`
	Issues             []Issue            `json:"issues"`
	Recommendations    []Recommendation   `json:"recommendations"`
	ValidationResults  []ValidationResult `json:"validation_results"`
}

// IssueSeverity ranks how serious an issue is
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityMajor    IssueSeverity = "major"
	SeverityMinor    IssueSeverity = "minor"
	SeverityInfo     IssueSeverity = "info"
)

// Issue is a single problem found during quality validation
type Issue struct {
	Severity     IssueSeverity `json:"severity"`
	Category     string        `json:"category"` // color | resolution | compression | metadata | compatibility | accessibility
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Solution     string        `json:"solution"`
	AutoFixable  bool          `json:"automated_fix_available"`
}

// Recommendation suggests an improvement that is not a defect
type Recommendation struct {
	Category            string  `json:"category"`
	Title               string  `json:"title"`
	Description         string  `json:"description"`
	ExpectedImprovement float64 `json:"expected_improvement"`
	EffortLevel         string  `json:"effort_level"` // minimal | moderate | significant
}

// ValidationResult is one discrete pass/fail check
type ValidationResult struct {
	CheckName string  `json:"check_name"`
	Passed    bool    `json:"passed"`
	Score     float64 `json:"score"`
	Details   string  `json:"details"`
}

// CountBySeverity returns the number of issues at the given severity
func (r *QualityReport) CountBySeverity(sev IssueSeverity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}
