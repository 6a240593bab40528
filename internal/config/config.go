// Package config defines service configuration structures and loading hooks.
//
// Values are layered: defaults from New, then an optional YAML file named by
// SCOUT_CONFIG, then SCOUT_* environment variables.
package config

import (
	"context"
	"runtime"
	"time"
)

// Store drivers accepted by StoreDriver.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Log formats accepted by LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreDriver picks the persistence backend: memory or sqlite.
	StoreDriver string `koanf:"store_driver"`

	// SQLitePath is the database file used when StoreDriver is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// EventQueueSize bounds the in-memory change event queue.
	EventQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of snapshot refresh workers.
	WorkerCount int `koanf:"worker_count"`

	// IdempotencySize caps how many Idempotency-Key values are remembered.
	IdempotencySize int `koanf:"idempotency_size"`

	// IdempotencyTTL expires remembered keys. Zero keeps them until evicted.
	IdempotencyTTL time.Duration `koanf:"idempotency_ttl"`

	// MaxSearchLength caps the board search term.
	MaxSearchLength int `koanf:"max_search_length"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MetricsRefreshInterval is how often process gauges are sampled.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`

	// MetricsLabels are attached to every exported series. File only.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       LogFormatText,
		Addr:            ":9080",
		StoreDriver:     StoreMemory,
		SQLitePath:      "scoutdesk.db",
		EventQueueSize:  10_000,
		WorkerCount:     runtime.NumCPU(),
		IdempotencySize: 50_000,
		IdempotencyTTL:  24 * time.Hour,
		MaxSearchLength: 100,
		ShutdownTimeout: 10 * time.Second,

		MetricsRefreshInterval: 10 * time.Second,
	}
}

// Validate reports the first invalid setting, wrapped with ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case c.StoreDriver != StoreMemory && c.StoreDriver != StoreSQLite:
		return invalid("store_driver must be memory or sqlite, got %q", c.StoreDriver)
	case c.StoreDriver == StoreSQLite && c.SQLitePath == "":
		return invalid("sqlite_path must not be empty when store_driver is sqlite")
	case c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON:
		return invalid("log_format must be text or json, got %q", c.LogFormat)
	case c.EventQueueSize < 0:
		return invalid("queue_size must not be negative")
	case c.WorkerCount < 0:
		return invalid("worker_count must not be negative")
	case c.IdempotencySize < 0:
		return invalid("idempotency_size must not be negative")
	case c.MaxSearchLength <= 0:
		return invalid("max_search_length must be positive")
	case c.MetricsRefreshInterval <= 0:
		return invalid("metrics_refresh_interval must be positive")
	}
	return nil
}
