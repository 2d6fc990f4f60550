package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// filePreferenceRepository stores preferences as a flat JSON object on disk.
type filePreferenceRepository struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewFilePreferenceRepository creates a JSON-file-backed preference repository.
// The file is created on first write.
func NewFilePreferenceRepository(path string, logger zerolog.Logger) PreferenceRepository {
	return &filePreferenceRepository{
		path:   path,
		logger: logger.With().Str("repository", "preference-file").Logger(),
	}
}

func (r *filePreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", ErrPreferenceNotFound
	}
	return value, nil
}

func (r *filePreferenceRepository) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		r.logger.Error().Err(err).Str("file", r.path).Msg("failed to write preferences")
		return fmt.Errorf("failed to write preferences file %s: %w", r.path, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace preferences file %s: %w", r.path, err)
	}

	r.logger.Debug().Str("key", key).Msg("preference saved")

	return nil
}

// read loads the preference map; a missing file is an empty map.
func (r *filePreferenceRepository) read() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("file", r.path).Msg("failed to read preferences")
		return nil, fmt.Errorf("failed to read preferences file %s: %w", r.path, err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		r.logger.Error().Err(err).Str("file", r.path).Msg("preferences file is corrupt")
		return nil, fmt.Errorf("failed to decode preferences file %s: %w", r.path, err)
	}
	return values, nil
}
