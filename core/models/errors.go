package models

import (
	"errors"
	"fmt"
)

// Shared error taxonomy for the export pipeline. Submission-time errors
// (ErrProfileNotFound) fail before a job is created; stage errors move
// the job to failed with the message recorded.
var (
	ErrProfileNotFound = errors.New("export profile not found")
	ErrInvalidProfile  = errors.New("invalid export profile")
	ErrJobNotFound     = errors.New("export job not found")
	ErrJobCancelled    = errors.New("export job cancelled")
	ErrInvalidSource   = errors.New("invalid source file")
)

// ProcessingError is raised by a format processor on any internal fault.
// It carries enough detail for the orchestrator to record in the job's
// error message.
type ProcessingError struct {
	Format FormatType
	Stage  string
	Detail string
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing %s failed at %s: %s", e.Format, e.Stage, e.Detail)
}

// QualityGateError reports a violated batch quality policy
type QualityGateError struct {
	CriticalIssues int
	MajorIssues    int
}

func (e *QualityGateError) Error() string {
	return fmt.Sprintf("quality gate failed: %d critical, %d major issues violate batch policy", e.CriticalIssues, e.MajorIssues)
}
