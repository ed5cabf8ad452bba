package main

import (
	"fmt"
	"io"
	"os"

	"task-manager/internal/api"
	"task-manager/internal/cli"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/services"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// getEnvironment determines the current environment from TM_ENV
func getEnvironment() Environment {
	switch Environment(os.Getenv("TM_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}

// apiFactory builds the task API over the storage the environment and
// configuration select
type apiFactory struct {
	env Environment
}

// newAPIFactory creates a factory for the given environment
func newAPIFactory(env Environment) cli.APIFactory {
	f := &apiFactory{env: env}
	return f.create
}

func (f *apiFactory) create(cfg *config.Config) (api.API, io.Closer, error) {
	switch f.env {
	case Testing:
		// Nothing outlives the process
		cfg.Storage.Backend = config.BackendMemory
	case Development:
		// Keep development data next to the checkout
		cfg.Storage.Dir = "."
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s repository: %w", f.env, err)
	}
	logger := logging.Default()
	logger.Debug("storage opened", "env", f.env, "backend", cfg.Storage.Backend, "key", cfg.Storage.Key)

	store := services.NewTaskStore(repo, services.StoreOptionsFromConfig(cfg, logger))
	container := services.NewServiceContainer(store, services.NewTimeService(nil))

	return api.New(container), repo, nil
}
