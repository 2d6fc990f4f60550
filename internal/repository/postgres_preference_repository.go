package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// Querier is the subset of pgxpool.Pool used by the repository.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresPreferenceRepository implements PreferenceRepository using PostgreSQL.
type postgresPreferenceRepository struct {
	db     Querier
	logger zerolog.Logger
}

// NewPostgresPreferenceRepository creates a PostgreSQL-backed preference repository.
func NewPostgresPreferenceRepository(db Querier, logger zerolog.Logger) PreferenceRepository {
	return &postgresPreferenceRepository{
		db:     db,
		logger: logger.With().Str("repository", "preference-postgres").Logger(),
	}
}

func (r *postgresPreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	query := `
		SELECT value
		FROM preferences
		WHERE key = $1
	`

	var value string
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("key", key).Msg("preference not found")
			return "", ErrPreferenceNotFound
		}
		r.logger.Error().Err(err).Str("key", key).Msg("failed to query preference")
		return "", fmt.Errorf("failed to query preference %s: %w", key, err)
	}

	return value, nil
}

func (r *postgresPreferenceRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to upsert preference")
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}

	r.logger.Debug().Str("key", key).Msg("preference saved")

	return nil
}
