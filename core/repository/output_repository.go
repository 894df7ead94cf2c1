package repository

import (
	"database/sql"
	"fmt"

	"export-orchestrator/core/models"
)

// OutputRepository handles database operations for produced output
// files. Rows are written by the job repository when a job reaches a
// terminal state; a retried job replaces its earlier rows.
type OutputRepository struct {
	db *DB
}

// NewOutputRepository creates a new output repository
func NewOutputRepository(db *DB) *OutputRepository {
	return &OutputRepository{db: db}
}

// replaceJobOutputsTx replaces the recorded files for a job inside an
// open transaction
func (r *OutputRepository) replaceJobOutputsTx(tx *sql.Tx, jobID string, outputs []models.OutputFile) error {
	if _, err := tx.Exec(`DELETE FROM output_files WHERE job_id = $1`, jobID); err != nil {
		return err
	}

	query := `
		INSERT INTO output_files (
			job_id, path, size_bytes, format, checksum,
			quality_score, accessibility_score, optimized, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	for _, output := range outputs {
		_, err := tx.Exec(query,
			jobID,
			output.Path,
			output.Size,
			output.Format,
			output.Checksum,
			output.QualityScore,
			output.AccessibilityScore,
			output.Optimized,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetJobOutputs retrieves the files produced by a job
func (r *OutputRepository) GetJobOutputs(jobID string, format *models.FormatType) ([]models.OutputFile, error) {
	query := `
		SELECT path, size_bytes, format, checksum,
			quality_score, accessibility_score, optimized
		FROM output_files
		WHERE job_id = $1
	`
	args := []interface{}{jobID}

	if format != nil {
		query += fmt.Sprintf(" AND format = $%d", len(args)+1)
		args = append(args, *format)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []models.OutputFile
	for rows.Next() {
		var output models.OutputFile
		err := rows.Scan(
			&output.Path,
			&output.Size,
			&output.Format,
			&output.Checksum,
			&output.QualityScore,
			&output.AccessibilityScore,
			&output.Optimized,
		)
		if err != nil {
			continue
		}
		outputs = append(outputs, output)
	}

	return outputs, nil
}
