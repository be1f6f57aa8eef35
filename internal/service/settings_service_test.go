package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aukdevgh/project-backend/internal/repository"

	"github.com/google/uuid"
)

type mockSettingsRepository struct {
	docs map[uuid.UUID]json.RawMessage
}

func (m *mockSettingsRepository) Get(ctx context.Context, userID uuid.UUID) (json.RawMessage, error) {
	doc, ok := m.docs[userID]
	if !ok {
		return nil, repository.ErrSettingsNotFound
	}
	return doc, nil
}

func (m *mockSettingsRepository) Upsert(ctx context.Context, userID uuid.UUID, settings json.RawMessage) error {
	if m.docs == nil {
		m.docs = make(map[uuid.UUID]json.RawMessage)
	}
	m.docs[userID] = settings
	return nil
}

func TestSettingsUpsertAndGet(t *testing.T) {
	service := NewSettingsService(&mockSettingsRepository{})
	ctx := context.Background()
	userID := uuid.New()

	if _, err := service.Get(ctx, userID); err != repository.ErrSettingsNotFound {
		t.Errorf("unset settings returned %v, want ErrSettingsNotFound", err)
	}

	doc := json.RawMessage(`{"currency":"usd","theme":"dark"}`)
	saved, err := service.Upsert(ctx, userID, doc)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if string(saved) != string(doc) {
		t.Errorf("saved = %s", saved)
	}

	got, err := service.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("got = %s", got)
	}

	// A second upsert replaces the whole document
	replacement := json.RawMessage(`{"currency":"eur"}`)
	if _, err := service.Upsert(ctx, userID, replacement); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	got, _ = service.Get(ctx, userID)
	if string(got) != string(replacement) {
		t.Errorf("after replace = %s", got)
	}
}
