package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileSaver writes exports into a local directory.
type fileSaver struct {
	dir    string
	logger zerolog.Logger
}

// NewFileSaver creates a saver that writes into dir, creating it on demand.
func NewFileSaver(dir string, logger zerolog.Logger) Saver {
	return &fileSaver{
		dir:    dir,
		logger: logger.With().Str("component", "export-file-saver").Logger(),
	}
}

func (s *fileSaver) Destination() string {
	return "file"
}

// Save writes data to dir/name. An existing file with the same name is replaced.
func (s *fileSaver) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid export name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create export directory")
		return "", fmt.Errorf("failed to create export directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write export file")
		return "", fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to move export file into place %s: %w", path, err)
	}

	s.logger.Info().
		Str("file", path).
		Int("bytes", len(data)).
		Msg("export written")

	return path, nil
}
