package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"export-orchestrator/core/models"
)

// ProfileRepository persists export profiles as JSON documents.
// The in-memory registry remains the source of truth at runtime;
// this repository only provides durability across restarts.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// SaveProfile inserts or replaces a profile document
func (r *ProfileRepository) SaveProfile(profile *models.ExportProfile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
		INSERT INTO export_profiles (id, name, category, profile_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			profile_json = EXCLUDED.profile_json,
			updated_at = NOW()
	`

	_, err = r.db.Exec(query, profile.ID, profile.Name, profile.Category, string(doc))
	return err
}

// GetProfile retrieves a profile by ID
func (r *ProfileRepository) GetProfile(id string) (*models.ExportProfile, error) {
	var doc string
	err := r.db.QueryRow(`SELECT profile_json FROM export_profiles WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrProfileNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var profile models.ExportProfile
	if err := json.Unmarshal([]byte(doc), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", id, err)
	}
	return &profile, nil
}

// ListProfiles retrieves all stored profiles
func (r *ProfileRepository) ListProfiles() ([]*models.ExportProfile, error) {
	rows, err := r.db.Query(`SELECT profile_json FROM export_profiles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.ExportProfile
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			continue
		}
		var profile models.ExportProfile
		if err := json.Unmarshal([]byte(doc), &profile); err != nil {
			continue
		}
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}

// DeleteProfile removes a stored profile
func (r *ProfileRepository) DeleteProfile(id string) error {
	_, err := r.db.Exec(`DELETE FROM export_profiles WHERE id = $1`, id)
	return err
}
