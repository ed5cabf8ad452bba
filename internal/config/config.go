package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// DefaultStorageKey is the key the task collection is persisted under.
const DefaultStorageKey = "professionalTasks"

// Config holds all configuration options for the task manager
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Validation  ValidationConfig  `toml:"validation"`
	Display     DisplayConfig     `toml:"display"`
	Application ApplicationConfig `toml:"application"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	Backend        string        `toml:"backend" env:"TM_STORAGE_BACKEND"`
	Dir            string        `toml:"dir" env:"TM_DATA_DIR"`
	Filename       string        `toml:"filename" env:"TM_DB_FILENAME"`
	Key            string        `toml:"key" env:"TM_STORAGE_KEY"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"TM_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `toml:"write_timeout" env:"TM_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"TM_DATA_DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMaxLength int `toml:"task_name_max_length" env:"TM_VALIDATION_TASK_NAME_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat    string `toml:"date_format" env:"TM_DISPLAY_DATE_FORMAT"`
	DefaultFilter string `toml:"default_filter" env:"TM_DISPLAY_DEFAULT_FILTER"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout  time.Duration `toml:"timeout" env:"TM_APP_TIMEOUT"`
	Verbose  bool          `toml:"verbose" env:"TM_APP_VERBOSE"`
	LogLevel string        `toml:"log_level" env:"TM_LOG_LEVEL"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(homeDir, ".tm")

	return &Config{
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			Dir:            defaultDataDir,
			Filename:       "tm.db",
			Key:            DefaultStorageKey,
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			TaskNameMaxLength: 0,
		},
		Display: DisplayConfig{
			DateFormat:    "Jan 2, 2006",
			DefaultFilter: "All",
		},
		Application: ApplicationConfig{
			Timeout:  60 * time.Second,
			Verbose:  false,
			LogLevel: "info",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetQueryTimeout returns the storage read timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Storage.QueryTimeout
}

// GetWriteTimeout returns the storage write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Storage.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if backend := os.Getenv("TM_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if dir := os.Getenv("TM_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TM_DB_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if key := os.Getenv("TM_STORAGE_KEY"); key != "" {
		c.Storage.Key = key
	}
	if timeout := os.Getenv("TM_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(timeout, c.Storage.QueryTimeout)
	}
	if timeout := os.Getenv("TM_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(timeout, c.Storage.WriteTimeout)
	}
	if perms := os.Getenv("TM_DATA_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Validation configuration
	if maxLen := os.Getenv("TM_VALIDATION_TASK_NAME_MAX"); maxLen != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.TaskNameMaxLength)
	}

	// Display configuration
	if format := os.Getenv("TM_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if filter := os.Getenv("TM_DISPLAY_DEFAULT_FILTER"); filter != "" {
		c.Display.DefaultFilter = filter
	}

	// Application configuration
	if timeout := os.Getenv("TM_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TM_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if level := os.Getenv("TM_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = strings.ToLower(level)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return &ConfigError{Field: "storage.backend", Message: "backend must be one of sqlite, file, memory"}
	}
	if c.Storage.Backend != BackendMemory && c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "data directory cannot be empty"}
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return &ConfigError{Field: "storage.key", Message: "storage key cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.TaskNameMaxLength < 0 {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length cannot be negative"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	switch strings.ToLower(c.Display.DefaultFilter) {
	case "all", "high", "medium", "low", "completed":
	default:
		return &ConfigError{Field: "display.default_filter", Message: "default filter must be one of All, High, Medium, Low, Completed"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch c.Application.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "application.log_level", Message: "log level must be one of debug, info, warn, error"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
