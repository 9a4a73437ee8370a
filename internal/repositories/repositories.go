package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/bestekar/internal/models"
	"github.com/desertthunder/bestekar/internal/shared"
)

// PreferenceRepository stores [models.Preference] rows in the preferences table.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new [PreferenceRepository] with the given database connection
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the preference stored under key, or an error wrapping [shared.ErrPreferenceMissing].
func (r *PreferenceRepository) Get(ctx context.Context, key string) (*models.Preference, error) {
	query := `SELECT key, value, updated_at FROM preferences WHERE key = ?`

	var pref models.Preference
	err := r.db.QueryRowContext(ctx, query, key).Scan(&pref.Key, &pref.Value, &pref.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrPreferenceMissing, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preference: %w", err)
	}
	return &pref, nil
}

// Set inserts or replaces the preference and stamps UpdatedAt.
func (r *PreferenceRepository) Set(ctx context.Context, pref *models.Preference) error {
	if err := pref.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	pref.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, pref.Key, pref.Value, pref.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}

// Delete removes the preference. Deleting a missing key is not an error.
func (r *PreferenceRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}

// List returns all preferences ordered by key.
func (r *PreferenceRepository) List(ctx context.Context) ([]*models.Preference, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM preferences ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*models.Preference
	for rows.Next() {
		var pref models.Preference
		if err := rows.Scan(&pref.Key, &pref.Value, &pref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, &pref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return prefs, nil
}
