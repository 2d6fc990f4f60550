package repository

import (
	"context"
	"errors"
)

// ErrPreferenceNotFound is returned when no value is stored under a key.
var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceRepository persists small string-valued user preferences.
type PreferenceRepository interface {
	// Get returns the value stored under key or ErrPreferenceNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
