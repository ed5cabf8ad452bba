package config

import (
	"fmt"
	"os"

	"task-manager/internal/repository"
	"task-manager/internal/repository/file"
	"task-manager/internal/repository/memory"
	"task-manager/internal/repository/sqlite"
)

// CreateRepository creates the key-value store selected by the configuration
func CreateRepository(config *Config) (repository.KeyValueStore, error) {
	perm := os.FileMode(config.Storage.DirPermissions)

	switch config.Storage.Backend {
	case BackendMemory:
		return memory.New(), nil

	case BackendFile:
		repo, err := file.New(config.Storage.Dir, perm)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		return repo, nil

	case BackendSQLite:
		if err := os.MkdirAll(config.Storage.Dir, perm); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), sqlite.Options{
			QueryTimeout: config.GetQueryTimeout(),
			WriteTimeout: config.GetWriteTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
}

// CreateTestRepository creates an in-memory SQLite repository for testing
func CreateTestRepository() (repository.KeyValueStore, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
