package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")
)

// SettingsRepository defines the interface for user settings data access.
// Settings are an opaque JSON document keyed by user.
type SettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (json.RawMessage, error)
	Upsert(ctx context.Context, userID uuid.UUID, settings json.RawMessage) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the settings document for a user
func (r *settingsRepository) Get(ctx context.Context, userID uuid.UUID) (json.RawMessage, error) {
	query := `SELECT json_settings FROM settings WHERE user_id = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return json.RawMessage(raw), nil
}

// Upsert inserts or replaces the settings document for a user
func (r *settingsRepository) Upsert(ctx context.Context, userID uuid.UUID, settings json.RawMessage) error {
	query := `
		INSERT INTO settings (user_id, json_settings, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET json_settings = $2, updated_at = $3
	`

	if _, err := r.db.ExecContext(ctx, query, userID, []byte(settings), time.Now()); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	return nil
}
