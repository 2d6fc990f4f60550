package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	OrdersAPI OrdersAPIConfig
	Dashboard DashboardConfig
	Settings  SettingsConfig
	Database  DatabaseConfig
	Export    ExportConfig
	S3        S3Config
	Metrics   MetricsConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// OrdersAPIConfig holds the remote orders API settings.
type OrdersAPIConfig struct {
	BaseURL string
	Timeout int // seconds
}

// DashboardConfig holds dashboard session behaviour.
type DashboardConfig struct {
	PageSize         int
	SyncRefreshDelay int // milliseconds
	Timezone         string
}

// SettingsConfig selects where user preferences are persisted.
type SettingsConfig struct {
	Backend string // "file" or "postgres"
	File    string
}

// DatabaseConfig holds database-related configuration.
// Only used when the settings backend is postgres.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	MigrationsPath  string
}

// ExportConfig holds the local CSV export directory.
type ExportConfig struct {
	Dir string
}

// S3Config holds AWS S3 configuration for CSV exports.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "exports/")
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

const (
	SettingsBackendFile     = "file"
	SettingsBackendPostgres = "postgres"

	DefaultOrdersAPIBaseURL = "https://ecommerce-backend-bmyp.onrender.com/api"
)

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		OrdersAPI: OrdersAPIConfig{
			BaseURL: getEnv("ORDERS_API_BASE_URL", DefaultOrdersAPIBaseURL),
			Timeout: getEnvAsInt("ORDERS_API_TIMEOUT", 30),
		},
		Dashboard: DashboardConfig{
			PageSize:         getEnvAsInt("DASHBOARD_PAGE_SIZE", 10),
			SyncRefreshDelay: getEnvAsInt("SYNC_REFRESH_DELAY_MS", 3000),
			Timezone:         getEnv("DASHBOARD_TIMEZONE", "Local"),
		},
		Settings: SettingsConfig{
			Backend: getEnv("SETTINGS_BACKEND", SettingsBackendFile),
			File:    getEnv("SETTINGS_FILE", "data/preferences.json"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "order_dashboard"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 5),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Export: ExportConfig{
			Dir: getEnv("EXPORT_DIR", "exports"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "exports/"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	u, err := url.Parse(c.OrdersAPI.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid orders API base URL: %q", c.OrdersAPI.BaseURL)
	}

	if c.OrdersAPI.Timeout < 1 {
		return fmt.Errorf("orders API timeout must be at least 1 second")
	}

	if c.Dashboard.PageSize < 1 {
		return fmt.Errorf("dashboard page size must be at least 1")
	}

	if c.Dashboard.SyncRefreshDelay < 0 {
		return fmt.Errorf("sync refresh delay cannot be negative")
	}

	if _, err := time.LoadLocation(c.Dashboard.Timezone); err != nil {
		return fmt.Errorf("invalid dashboard timezone %q: %w", c.Dashboard.Timezone, err)
	}

	switch c.Settings.Backend {
	case SettingsBackendFile:
		if c.Settings.File == "" {
			return fmt.Errorf("settings file is required for the file backend")
		}
	case SettingsBackendPostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid settings backend: %s (must be file or postgres)", c.Settings.Backend)
	}

	if c.Export.Dir == "" {
		return fmt.Errorf("export directory is required")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// Validate validates the database settings.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RequestTimeout returns the orders API timeout as a duration.
func (c *OrdersAPIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// RefreshDelay returns the post-sync refresh delay as a duration.
func (c *DashboardConfig) RefreshDelay() time.Duration {
	return time.Duration(c.SyncRefreshDelay) * time.Millisecond
}

// Location resolves the configured time zone. Validate guarantees it loads.
func (c *DashboardConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
