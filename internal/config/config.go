// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"regexp"
	"time"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects "console" or "json" log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8001".
	Addr string `koanf:"addr"`

	// DBDriver is "mysql" or "pgx".
	DBDriver string `koanf:"db_driver"`

	// DBDSN overrides the DSN assembled from the discrete db_* fields.
	DBDSN string `koanf:"db_dsn"`

	DBHost     string `koanf:"db_host"`
	DBPort     int    `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`

	// DBTable is the table holding one row per job posting.
	DBTable string `koanf:"db_table"`

	// Driver-level timeouts in milliseconds.
	DBConnectTimeoutMS int `koanf:"db_connect_timeout_ms"`
	DBReadTimeoutMS    int `koanf:"db_read_timeout_ms"`
	DBWriteTimeoutMS   int `koanf:"db_write_timeout_ms"`

	// DBMaxOpenConns caps the connection pool.
	DBMaxOpenConns int `koanf:"db_max_open_conns"`

	// FetchTimeoutMS bounds one dashboard fetch end to end.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// BreakerFailureThreshold is the number of consecutive upstream failures
	// that opens the circuit; BreakerOpenTimeoutMS is how long it stays open.
	BreakerFailureThreshold int `koanf:"breaker_failure_threshold"`
	BreakerOpenTimeoutMS    int `koanf:"breaker_open_timeout_ms"`

	// MaxScatterPoints caps section7.
	MaxScatterPoints int `koanf:"max_scatter_points"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		LogFormat:               "console",
		Addr:                    ":8001",
		DBDriver:                DriverMySQL,
		DBHost:                  "db",
		DBPort:                  3306,
		DBUser:                  "admin",
		DBName:                  "project_db",
		DBTable:                 "temp_raw_data",
		DBConnectTimeoutMS:      10_000,
		DBReadTimeoutMS:         30_000,
		DBWriteTimeoutMS:        30_000,
		DBMaxOpenConns:          10,
		FetchTimeoutMS:          20_000,
		BreakerFailureThreshold: 5,
		BreakerOpenTimeoutMS:    30_000,
		MaxScatterPoints:        25,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// BreakerOpenTimeout returns BreakerOpenTimeoutMS as a duration.
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutMS) * time.Millisecond
}

// Validate checks the fields that would otherwise fail late at request time.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DBDriver != DriverMySQL && c.DBDriver != DriverPostgres:
		return fmt.Errorf("%w: db_driver must be %q or %q, got %q", ErrInvalidConfig, DriverMySQL, DriverPostgres, c.DBDriver)
	case !tableNamePattern.MatchString(c.DBTable):
		return fmt.Errorf("%w: db_table %q is not a valid identifier", ErrInvalidConfig, c.DBTable)
	case c.DBDSN == "" && c.DBHost == "":
		return fmt.Errorf("%w: db_host or db_dsn is required", ErrInvalidConfig)
	case c.DBDSN == "" && (c.DBPort <= 0 || c.DBPort > 65535):
		return fmt.Errorf("%w: db_port %d out of range", ErrInvalidConfig, c.DBPort)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.BreakerFailureThreshold <= 0:
		return fmt.Errorf("%w: breaker_failure_threshold must be positive", ErrInvalidConfig)
	case c.MaxScatterPoints < 0:
		return fmt.Errorf("%w: max_scatter_points must not be negative", ErrInvalidConfig)
	}
	return nil
}
