package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"export-orchestrator/core/models"
)

// JobRepository handles database operations for export jobs
type JobRepository struct {
	db      *DB
	outputs *OutputRepository
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db, outputs: NewOutputRepository(db)}
}

// CreateJob creates a new export job in the database
func (r *JobRepository) CreateJob(job *models.ExportJob) error {
	query := `
		INSERT INTO export_jobs (
			id, source_file, export_profile_id, output_path, status, progress,
			source_type, project_id, user_id, batch_id, retry_count,
			start_time, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		)
	`

	var batchID *string
	if job.Metadata.BatchID != "" {
		batchID = &job.Metadata.BatchID
	}

	_, err := r.db.Exec(query,
		job.ID,
		job.SourceFile,
		job.ExportProfileID,
		job.OutputPath,
		job.Status,
		job.Progress,
		job.Metadata.SourceType,
		job.Metadata.ProjectID,
		job.Metadata.UserID,
		batchID,
		job.Metadata.RetryCount,
		job.StartTime,
	)
	if err != nil {
		return err
	}

	// Create initial event
	return r.CreateJobEvent(job.ID, nil, job.Status, "job_created", nil)
}

// GetJob retrieves an export job by ID
func (r *JobRepository) GetJob(id string) (*models.ExportJob, error) {
	query := `
		SELECT id, source_file, export_profile_id, output_path, status, progress,
			source_type, project_id, user_id, batch_id, retry_count,
			error_message, failure_kind, quality_report_json, output_files_json,
			start_time, end_time, processing_time_ms
		FROM export_jobs
		WHERE id = $1
	`

	var job models.ExportJob
	var batchID sql.NullString
	var errorMessage sql.NullString
	var failureKind sql.NullString
	var qualityReportJSON sql.NullString
	var outputFilesJSON sql.NullString
	var endTime sql.NullTime
	var processingTimeMS sql.NullInt64

	err := r.db.QueryRow(query, id).Scan(
		&job.ID,
		&job.SourceFile,
		&job.ExportProfileID,
		&job.OutputPath,
		&job.Status,
		&job.Progress,
		&job.Metadata.SourceType,
		&job.Metadata.ProjectID,
		&job.Metadata.UserID,
		&batchID,
		&job.Metadata.RetryCount,
		&errorMessage,
		&failureKind,
		&qualityReportJSON,
		&outputFilesJSON,
		&job.StartTime,
		&endTime,
		&processingTimeMS,
	)
	if err != nil {
		return nil, err
	}

	if batchID.Valid {
		job.Metadata.BatchID = batchID.String
	}
	if errorMessage.Valid {
		job.ErrorMessage = errorMessage.String
	}
	if failureKind.Valid {
		job.FailureKind = models.FailureKind(failureKind.String)
	}
	if qualityReportJSON.Valid && qualityReportJSON.String != "" {
		json.Unmarshal([]byte(qualityReportJSON.String), &job.QualityReport)
	}
	if outputFilesJSON.Valid && outputFilesJSON.String != "" {
		json.Unmarshal([]byte(outputFilesJSON.String), &job.OutputFiles)
	}
	if endTime.Valid {
		job.EndTime = &endTime.Time
	}
	if processingTimeMS.Valid {
		job.Metadata.ProcessingTime = time.Duration(processingTimeMS.Int64) * time.Millisecond
	}

	return &job, nil
}

// UpdateJobStatus updates job status atomically with event logging
func (r *JobRepository) UpdateJobStatus(jobID string, fromStatus, toStatus models.JobStatus, reason string, meta map[string]interface{}) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `UPDATE export_jobs SET status = $1, updated_at = NOW() WHERE id = $2`
	if _, err := tx.Exec(updateQuery, toStatus, jobID); err != nil {
		return err
	}

	if err := r.createJobEventTx(tx, jobID, &fromStatus, toStatus, reason, meta); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateJobProgress records the latest progress checkpoint for a job
func (r *JobRepository) UpdateJobProgress(jobID string, progress int, currentStep string) error {
	query := `UPDATE export_jobs SET progress = $1, current_step = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.Exec(query, progress, currentStep, jobID)
	return err
}

// SaveJobResult persists the terminal snapshot of a finished job and
// replaces its output file rows in the same transaction
func (r *JobRepository) SaveJobResult(job *models.ExportJob) error {
	qualityReportJSON, err := json.Marshal(job.QualityReport)
	if err != nil {
		return fmt.Errorf("failed to marshal quality report: %w", err)
	}
	outputFilesJSON, err := json.Marshal(job.OutputFiles)
	if err != nil {
		return fmt.Errorf("failed to marshal output files: %w", err)
	}

	query := `
		UPDATE export_jobs SET
			status = $1, progress = $2, error_message = $3, failure_kind = $4,
			quality_report_json = $5, output_files_json = $6,
			end_time = $7, processing_time_ms = $8, updated_at = NOW()
		WHERE id = $9
	`

	var errorMessage *string
	if job.ErrorMessage != "" {
		errorMessage = &job.ErrorMessage
	}
	var failureKind *string
	if job.FailureKind != "" {
		kind := string(job.FailureKind)
		failureKind = &kind
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(query,
		job.Status,
		job.Progress,
		errorMessage,
		failureKind,
		string(qualityReportJSON),
		string(outputFilesJSON),
		job.EndTime,
		job.Metadata.ProcessingTime.Milliseconds(),
		job.ID,
	)
	if err != nil {
		return err
	}

	if err := r.outputs.replaceJobOutputsTx(tx, job.ID, job.OutputFiles); err != nil {
		return err
	}

	return tx.Commit()
}

// RecordTransition logs a status transition without touching other columns.
// Satisfies the orchestrator's event recorder.
func (r *JobRepository) RecordTransition(jobID string, fromStatus *models.JobStatus, toStatus models.JobStatus, reason string, meta map[string]interface{}) error {
	if fromStatus == nil {
		return r.CreateJobEvent(jobID, nil, toStatus, reason, meta)
	}
	return r.UpdateJobStatus(jobID, *fromStatus, toStatus, reason, meta)
}

// CreateJobEvent creates a job event
func (r *JobRepository) CreateJobEvent(jobID string, fromStatus *models.JobStatus, toStatus models.JobStatus, reason string, meta map[string]interface{}) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.createJobEventTx(tx, jobID, fromStatus, toStatus, reason, meta); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *JobRepository) createJobEventTx(tx *sql.Tx, jobID string, fromStatus *models.JobStatus, toStatus models.JobStatus, reason string, meta map[string]interface{}) error {
	query := `
		INSERT INTO job_events (job_id, from_status, to_status, reason, meta_json)
		VALUES ($1, $2, $3, $4, $5)
	`

	var fromStatusStr *string
	if fromStatus != nil {
		s := string(*fromStatus)
		fromStatusStr = &s
	}

	metaJSON := "{}"
	if meta != nil {
		metaBytes, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to marshal event meta: %w", err)
		}
		metaJSON = string(metaBytes)
	}

	_, err := tx.Exec(query, jobID, fromStatusStr, toStatus, reason, metaJSON)
	return err
}

// ListJobs lists export jobs with optional filters
func (r *JobRepository) ListJobs(batchID string, status *models.JobStatus, limit int) ([]*models.ExportJob, error) {
	query := `
		SELECT id, source_file, export_profile_id, output_path, status, progress, start_time
		FROM export_jobs
		WHERE 1=1
	`
	args := []interface{}{}
	argIndex := 1

	if batchID != "" {
		query += fmt.Sprintf(" AND batch_id = $%d", argIndex)
		args = append(args, batchID)
		argIndex++
	}
	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY start_time DESC LIMIT $%d", argIndex)
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.ExportJob
	for rows.Next() {
		var job models.ExportJob
		err := rows.Scan(
			&job.ID,
			&job.SourceFile,
			&job.ExportProfileID,
			&job.OutputPath,
			&job.Status,
			&job.Progress,
			&job.StartTime,
		)
		if err != nil {
			continue
		}
		jobs = append(jobs, &job)
	}

	return jobs, nil
}

// CountByStatus returns the number of jobs per status
func (r *JobRepository) CountByStatus() (map[models.JobStatus]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM export_jobs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.JobStatus]int)
	for rows.Next() {
		var status models.JobStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			continue
		}
		counts[status] = count
	}
	return counts, nil
}
