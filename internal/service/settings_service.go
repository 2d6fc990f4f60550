package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"order-dashboard/internal/model"
	"order-dashboard/internal/repository"

	"github.com/rs/zerolog"
)

// settingsService implements SettingsService.
type settingsService struct {
	repo   repository.PreferenceRepository
	logger zerolog.Logger

	mu      sync.RWMutex
	current model.Preferences
}

// NewSettingsService creates a settings service starting from the defaults.
func NewSettingsService(repo repository.PreferenceRepository, logger zerolog.Logger) SettingsService {
	return &settingsService{
		repo:    repo,
		logger:  logger.With().Str("service", "settings").Logger(),
		current: model.DefaultPreferences(),
	}
}

// Load reads the theme preference. Unknown stored values are ignored.
func (s *settingsService) Load(ctx context.Context) (model.Preferences, error) {
	prefs := model.DefaultPreferences()

	value, err := s.repo.Get(ctx, model.ThemePreferenceKey)
	switch {
	case errors.Is(err, repository.ErrPreferenceNotFound):
		s.logger.Debug().Msg("no stored theme preference, using default")
	case err != nil:
		return prefs, fmt.Errorf("failed to load preferences: %w", err)
	case model.Theme(value).Valid():
		prefs.Theme = model.Theme(value)
	default:
		s.logger.Warn().Str("value", value).Msg("ignoring invalid stored theme preference")
	}

	s.mu.Lock()
	s.current = prefs
	s.mu.Unlock()

	s.logger.Info().Str("theme", string(prefs.Theme)).Msg("preferences loaded")

	return prefs, nil
}

func (s *settingsService) Current() model.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Update validates and persists the change. The in-memory preferences only
// change once the write succeeded.
func (s *settingsService) Update(ctx context.Context, update model.PreferencesUpdate) (model.Preferences, error) {
	if update.Theme == nil {
		return s.Current(), model.ErrSettingsUnchanged
	}

	theme := model.Theme(*update.Theme)
	if !theme.Valid() {
		return s.Current(), model.ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ctx, model.ThemePreferenceKey, string(theme)); err != nil {
		s.logger.Error().Err(err).Str("theme", string(theme)).Msg("failed to persist theme preference")
		return s.current, fmt.Errorf("failed to save preferences: %w", err)
	}
	s.current.Theme = theme

	s.logger.Info().Str("theme", string(theme)).Msg("theme preference updated")

	return s.current, nil
}
