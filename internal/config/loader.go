package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFiles are looked up in the working directory when no
// config file is named explicitly.
var DefaultConfigFiles = []string{"tm.toml", ".tm.toml"}

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	// ConfigFile, when set, must exist and is decoded before the environment.
	ConfigFile string
	// WorkDir is searched for DefaultConfigFiles. Empty means the process cwd.
	WorkDir string
	// FileUsed is the config file that was decoded, if any.
	FileUsed string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if one is found
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if overrides != nil && overrides.ConfigFile != nil {
		l.ConfigFile = *overrides.ConfigFile
	}

	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadFile() error {
	path := l.ConfigFile
	if path == "" {
		path = os.Getenv("TM_CONFIG")
	}
	if path != "" {
		if err := decodeFile(l.config, path); err != nil {
			return fmt.Errorf("load config file %s: %w", path, err)
		}
		l.FileUsed = path
		return nil
	}

	for _, name := range DefaultConfigFiles {
		candidate := name
		if l.WorkDir != "" {
			candidate = filepath.Join(l.WorkDir, name)
		}
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat config file %s: %w", candidate, err)
		}
		if err := decodeFile(l.config, candidate); err != nil {
			return fmt.Errorf("load config file %s: %w", candidate, err)
		}
		l.FileUsed = candidate
		return nil
	}
	return nil
}

func decodeFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)
	cfg.Application.LogLevel = strings.ToLower(cfg.Application.LogLevel)
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	// Storage overrides
	Backend        *string
	DataDir        *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration
	DirPermissions *uint32
	StorageKey     *string

	// Validation overrides
	TaskNameMaxLength *int

	// Display overrides
	DateFormat    *string
	DefaultFilter *string

	// Application overrides
	Timeout  *time.Duration
	Verbose  *bool
	LogLevel *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Storage overrides
	if overrides.Backend != nil {
		config.Storage.Backend = strings.ToLower(*overrides.Backend)
	}
	if overrides.DataDir != nil {
		config.Storage.Dir = *overrides.DataDir
	}
	if overrides.DBFilename != nil {
		config.Storage.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Storage.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Storage.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.DirPermissions != nil {
		config.Storage.DirPermissions = *overrides.DirPermissions
	}
	if overrides.StorageKey != nil {
		config.Storage.Key = *overrides.StorageKey
	}

	// Validation overrides
	if overrides.TaskNameMaxLength != nil {
		config.Validation.TaskNameMaxLength = *overrides.TaskNameMaxLength
	}

	// Display overrides
	if overrides.DateFormat != nil {
		config.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.DefaultFilter != nil {
		config.Display.DefaultFilter = *overrides.DefaultFilter
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = strings.ToLower(*overrides.LogLevel)
	}
}
