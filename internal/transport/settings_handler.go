package transport

import (
	"encoding/json"
	"net/http"

	"github.com/aukdevgh/project-backend/internal/middleware"
	"github.com/aukdevgh/project-backend/internal/repository"
	"github.com/aukdevgh/project-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsRequest wraps the opaque settings document
type SettingsRequest struct {
	JSONSettings json.RawMessage `json:"jsonSettings" validate:"required"`
}

// SettingsHandler handles HTTP requests for user settings
type SettingsHandler struct {
	settingsService service.SettingsService
	logger          *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, logger: logger}
}

// RegisterRoutes registers all settings routes behind the auth gate
func (h *SettingsHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/settings", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.Get)
		r.Put("/", h.Upsert)
	})
}

// Get returns the user's stored settings document
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	settings, err := h.settingsService.Get(r.Context(), userID)
	if err != nil {
		if err == repository.ErrSettingsNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "Settings not found")
			return
		}

		h.logger.Error("Failed to get settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(settings)
}

// Upsert creates or replaces the user's settings document
func (h *SettingsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req SettingsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.settingsService.Upsert(r.Context(), userID, req.JSONSettings)
	if err != nil {
		h.logger.Error("Failed to save settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]json.RawMessage{"jsonSettings": saved})
}
