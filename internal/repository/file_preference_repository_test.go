package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePreferenceRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	repo := NewFilePreferenceRepository(path, zerolog.Nop())

	_, err := repo.Get(ctx, "themeMode")
	assert.ErrorIs(t, err, ErrPreferenceNotFound)

	require.NoError(t, repo.Set(ctx, "themeMode", "dark"))
	value, err := repo.Get(ctx, "themeMode")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	require.NoError(t, repo.Set(ctx, "themeMode", "light"))
	value, err = repo.Get(ctx, "themeMode")
	require.NoError(t, err)
	assert.Equal(t, "light", value)
}

func TestFilePreferenceRepository_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")

	require.NoError(t, NewFilePreferenceRepository(path, zerolog.Nop()).Set(ctx, "themeMode", "dark"))

	value, err := NewFilePreferenceRepository(path, zerolog.Nop()).Get(ctx, "themeMode")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)
}

func TestFilePreferenceRepository_KeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"other":"value"}`), 0o644))

	repo := NewFilePreferenceRepository(path, zerolog.Nop())
	require.NoError(t, repo.Set(ctx, "themeMode", "dark"))

	other, err := repo.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "value", other)
}

func TestFilePreferenceRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	repo := NewFilePreferenceRepository(path, zerolog.Nop())

	_, err := repo.Get(context.Background(), "themeMode")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPreferenceNotFound)
}

func TestFilePreferenceRepository_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewFilePreferenceRepository(path, zerolog.Nop()).Get(context.Background(), "themeMode")
	assert.ErrorIs(t, err, ErrPreferenceNotFound)
}
