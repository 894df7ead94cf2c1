package models

import "time"

// BatchExportRequest describes N source files exported through M
// profiles. Consumed once by the batch coordinator.
type BatchExportRequest struct {
	ID                string                    `json:"id"`
	Name              string                    `json:"name"`
	Description       string                    `json:"description"`
	SourceFiles       []string                  `json:"source_files"`
	ExportProfiles    []string                  `json:"export_profiles"`
	OutputDirectory   string                    `json:"output_directory"`
	NamingConvention  NamingConvention          `json:"naming_convention"`
	Scheduling        ExportScheduling          `json:"scheduling"`
	Notifications     NotificationSettings      `json:"notification_settings"`
	QualityValidation QualityValidationSettings `json:"quality_validation"`
	CreatedBy         string                    `json:"created_by"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// ScheduleType controls when a batch starts executing
type ScheduleType string

const (
	ScheduleImmediate ScheduleType = "immediate"
	ScheduleDelayed   ScheduleType = "delayed"
	ScheduleRecurring ScheduleType = "recurring"
)

// ExportScheduling bounds batch execution
type ExportScheduling struct {
	Type              ScheduleType `json:"schedule_type"`
	DelayMinutes      int          `json:"delay_minutes,omitempty"`
	MaxConcurrentJobs int          `json:"max_concurrent_jobs"`
	Priority          string       `json:"priority"` // low | normal | high | urgent
}

// NotificationSettings describes where batch outcomes are announced.
// Delivery is fire-and-forget; failures are logged and never fail a job.
type NotificationSettings struct {
	Enabled            bool     `json:"enabled"`
	EmailAddresses     []string `json:"email_addresses,omitempty"`
	WebhookURL         string   `json:"webhook_url,omitempty"`
	NotifyOnCompletion bool     `json:"notify_on_completion"`
	NotifyOnFailure    bool     `json:"notify_on_failure"`
}

// QualityValidationSettings is the batch-level quality gate policy
type QualityValidationSettings struct {
	Enabled              bool   `json:"enabled"`
	ValidationLevel      string `json:"validation_level"` // basic | standard | comprehensive
	FailOnCriticalIssues bool   `json:"fail_on_critical_issues"`
	FailOnMajorIssues    bool   `json:"fail_on_major_issues"`
	AutoRetryOnFailure   bool   `json:"auto_retry_on_failure"`
	MaxRetries           int    `json:"max_retries"`
}

// BatchResult aggregates the outcome of one batch execution
type BatchResult struct {
	BatchID         string        `json:"batch_id"`
	TotalJobs       int           `json:"total_jobs"`
	SuccessfulJobs  int           `json:"successful_jobs"`
	FailedJobsCount int           `json:"failed_jobs_count"`
	SuccessRate     float64       `json:"success_rate"`
	Results         []*ExportJob  `json:"results"`
	FailedJobs      []FailedJob   `json:"failed_jobs"`
	ExecutionTime   time.Duration `json:"execution_time"`
}

// FailedJob records one source/profile pair that could not be exported
type FailedJob struct {
	SourceFile string `json:"source_file"`
	ProfileID  string `json:"profile_id"`
	Error      string `json:"error"`
}
