package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"order-dashboard/internal/config"
	"order-dashboard/internal/database"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		migrationsPath string
		down           bool
	)
	flag.StringVar(&migrationsPath, "migrations-path", "", "path to migration files (overrides MIGRATIONS_PATH)")
	flag.BoolVar(&down, "down", false, "roll back the most recent migration instead of applying pending ones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}
	if migrationsPath == "" {
		migrationsPath = cfg.Database.MigrationsPath
	}

	logger := config.NewLogger(cfg.Logger).With().Str("component", "migrator").Logger()
	dsn := cfg.Database.ConnectionString()

	if down {
		if err := database.Rollback(dsn, migrationsPath, logger); err != nil {
			return err
		}
	} else if err := database.Migrate(dsn, migrationsPath, logger); err != nil {
		return err
	}

	return listTables(dsn, logger)
}

// listTables prints the public tables so operators can confirm the schema.
func listTables(dsn string, logger zerolog.Logger) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		return fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading tables: %w", err)
	}

	logger.Info().Strs("tables", tables).Msg("current tables in the database")
	return nil
}
