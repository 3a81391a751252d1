// Package config reads the server configuration from the environment.
//
// Every setting has a default, so `blogd serve` works with no environment
// at all: port 8080, SQLite at data/blog.db, text logs at info level.
// Command-line flags override whatever Load returns.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds everything the server needs to start.
type Config struct {
	Port        int
	Driver      string // sqlite, postgres or memory
	DBPath      string // SQLite file
	DatabaseURL string // PostgreSQL connection string
	LogLevel    string // debug, info, warn, error
	LogFormat   string // text or json
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:      8080,
		Driver:    DriverSQLite,
		DBPath:    "data/blog.db",
		LogLevel:  "info",
		LogFormat: FormatText,
	}
}

// Load starts from Default and applies PORT, BLOG_DRIVER, DB_PATH,
// DATABASE_URL, LOG_LEVEL and LOG_FORMAT. It fails only when PORT is not a
// number; call Validate for everything else.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT value %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("BLOG_DRIVER"); v != "" {
		cfg.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	return cfg, nil
}

// Validate reports every problem with cfg at once.
func (c Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range 1-65535", c.Port))
	}

	switch c.Driver {
	case DriverSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("sqlite driver needs a database path"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("postgres driver needs DATABASE_URL"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown driver %q (want sqlite, postgres or memory)", c.Driver))
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if c.LogFormat != FormatText && c.LogFormat != FormatJSON {
		errs = append(errs, fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat))
	}

	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Addr is the listen address for net/http.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
