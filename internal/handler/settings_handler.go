package handler

import (
	"net/http"

	"order-dashboard/internal/model"
	"order-dashboard/internal/service"

	"github.com/rs/zerolog"
)

// SettingsHandler handles the user preference requests.
type SettingsHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(svc service.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: svc,
		logger:  logger.With().Str("handler", "settings").Logger(),
	}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Current())
}

// Update handles PATCH /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.PreferencesUpdate
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	prefs, err := h.service.Update(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to save settings", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
