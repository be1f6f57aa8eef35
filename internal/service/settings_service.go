package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aukdevgh/project-backend/internal/repository"

	"github.com/google/uuid"
)

// SettingsService defines the interface for user settings logic
type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (json.RawMessage, error)
	Upsert(ctx context.Context, userID uuid.UUID, settings json.RawMessage) (json.RawMessage, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new instance of SettingsService
func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// Get returns the user's settings document. Callers see
// repository.ErrSettingsNotFound when none has been stored yet.
func (s *settingsService) Get(ctx context.Context, userID uuid.UUID) (json.RawMessage, error) {
	return s.settingsRepo.Get(ctx, userID)
}

// Upsert stores the settings document and returns the saved value
func (s *settingsService) Upsert(ctx context.Context, userID uuid.UUID, settings json.RawMessage) (json.RawMessage, error) {
	if err := s.settingsRepo.Upsert(ctx, userID, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
