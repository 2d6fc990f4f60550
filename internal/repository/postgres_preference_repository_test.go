package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return pgconn.NewCommandTag(args.String(0)), args.Error(1)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(pgx.Row)
}

type stubRow struct {
	value string
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

func TestPostgresPreferenceRepository_Get(t *testing.T) {
	tests := []struct {
		name        string
		row         stubRow
		expected    string
		expectedErr error
		expectErr   bool
	}{
		{name: "Found", row: stubRow{value: "dark"}, expected: "dark"},
		{name: "Not found", row: stubRow{err: pgx.ErrNoRows}, expectedErr: ErrPreferenceNotFound, expectErr: true},
		{name: "Query failure", row: stubRow{err: errors.New("connection reset")}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(mockQuerier)
			db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), []any{"themeMode"}).Return(tt.row)

			repo := NewPostgresPreferenceRepository(db, zerolog.Nop())
			value, err := repo.Get(context.Background(), "themeMode")

			if tt.expectErr {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
			db.AssertExpectations(t)
		})
	}
}

func TestPostgresPreferenceRepository_Set(t *testing.T) {
	db := new(mockQuerier)
	db.On("Exec", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "INSERT INTO preferences") && strings.Contains(sql, "ON CONFLICT (key)")
	}), []any{"themeMode", "dark"}).Return("INSERT 0 1", nil)

	repo := NewPostgresPreferenceRepository(db, zerolog.Nop())

	require.NoError(t, repo.Set(context.Background(), "themeMode", "dark"))
	db.AssertExpectations(t)
}

func TestPostgresPreferenceRepository_SetError(t *testing.T) {
	db := new(mockQuerier)
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("read-only transaction"))

	repo := NewPostgresPreferenceRepository(db, zerolog.Nop())

	err := repo.Set(context.Background(), "themeMode", "dark")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only transaction")
}
