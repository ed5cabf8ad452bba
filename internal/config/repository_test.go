package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/repository/file"
	"task-manager/internal/repository/memory"
	"task-manager/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		check   func(t *testing.T, repo interface{})
	}{
		{"sqlite", BackendSQLite, func(t *testing.T, repo interface{}) { assert.IsType(t, &sqlite.SQLiteRepository{}, repo) }},
		{"file", BackendFile, func(t *testing.T, repo interface{}) { assert.IsType(t, &file.Repository{}, repo) }},
		{"memory", BackendMemory, func(t *testing.T, repo interface{}) { assert.IsType(t, &memory.Repository{}, repo) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Storage.Backend = tt.backend
			cfg.Storage.Dir = t.TempDir()

			repo, err := CreateRepository(cfg)
			require.NoError(t, err)
			defer repo.Close()
			tt.check(t, repo)

			ctx := context.Background()
			require.NoError(t, repo.Set(ctx, cfg.Storage.Key, []byte(`[]`)))

			value, found, err := repo.Get(ctx, cfg.Storage.Key)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[]`, string(value))
		})
	}
}

func TestCreateRepository_UnknownBackend(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = "redis"

	_, err := CreateRepository(cfg)
	assert.Error(t, err)
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, found, err := repo.Get(context.Background(), DefaultStorageKey)
	require.NoError(t, err)
	assert.False(t, found)
}
