package models

import "time"

// ExportJob represents one execution of "take source X, apply profile P,
// produce output". The orchestrator is the only writer for its lifetime.
type ExportJob struct {
	ID              string        `json:"id"`
	SourceFile      string        `json:"source_file"`
	ExportProfileID string        `json:"export_profile_id"`
	OutputPath      string        `json:"output_path"`
	Status          JobStatus     `json:"status"`
	Progress        int           `json:"progress"` // 0-100, monotonically non-decreasing
	StartTime       time.Time     `json:"start_time"`
	EndTime         *time.Time    `json:"end_time,omitempty"`
	ErrorMessage    string        `json:"error_message,omitempty"`
	FailureKind     FailureKind   `json:"failure_kind,omitempty"`
	QualityReport   QualityReport `json:"quality_report"`
	OutputFiles     []OutputFile  `json:"output_files"`
	Metadata        JobMetadata   `json:"metadata"`
}

// JobStatus represents the current status of an export job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Terminal reports whether a status permits no further transitions
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// FailureKind classifies why a job failed. Retry policies branch on
// the kind instead of parsing error messages.
type FailureKind string

const (
	FailureInvalidSource FailureKind = "invalid_source"
	FailureProcessing    FailureKind = "processing"
	FailureQualityGate   FailureKind = "quality_gate"
	FailureAborted       FailureKind = "aborted"
	FailureInternal      FailureKind = "internal"
)

// SourceType classifies the source artifact of a job
type SourceType string

const (
	SourceVector        SourceType = "vector"
	SourceTypography    SourceType = "typography"
	SourceLayout        SourceType = "layout"
	SourceCollaboration SourceType = "collaboration"
)

// JobMetadata carries ownership and batch attribution for a job
type JobMetadata struct {
	SourceType     SourceType    `json:"source_type"`
	ProjectID      string        `json:"project_id"`
	UserID         string        `json:"user_id"`
	BatchID        string        `json:"batch_id,omitempty"`
	RetryCount     int           `json:"retry_count"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// OutputFile describes one produced artifact. Immutable after creation.
type OutputFile struct {
	Path               string     `json:"path"`
	Size               int64      `json:"size"`
	Format             FormatType `json:"format"`
	Checksum           string     `json:"checksum"`
	QualityScore       float64    `json:"quality_score"` // 0-1
	Optimized          bool       `json:"optimized"`
	AccessibilityScore float64    `json:"accessibility_score"` // 0-1
}

// Progress is a point-in-time view of a running job
type Progress struct {
	JobID              string    `json:"job_id"`
	Status             JobStatus `json:"status"`
	Progress           int       `json:"progress"`
	CurrentStep        string    `json:"current_step"`
	EstimatedRemaining int64     `json:"estimated_remaining"` // milliseconds, -1 = unknown
	QualityScore       float64   `json:"quality_score"`
}
