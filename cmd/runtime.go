package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"kg-sync/core/config"
	"kg-sync/core/database"
	"kg-sync/core/kg"
	"kg-sync/core/logger"
	"kg-sync/core/source"
	"kg-sync/core/storage"

	"go.uber.org/zap"
)

// loadRuntime loads and checks the configuration and builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

func newGraphClient(cfg *config.Config) (kg.Client, error) {
	client, err := kg.NewClient(cfg.API)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	return client, nil
}

// sourceDeps connects only what location needs: storage for s3:// inputs,
// the catalog database for db: inputs.
func sourceDeps(cfg *config.Config, location string) (source.Deps, error) {
	deps := source.Deps{Bucket: cfg.Storage.Bucket, Table: cfg.Database.Table}

	switch {
	case strings.HasPrefix(location, "s3://"):
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return deps, fmt.Errorf("failed to create storage client: %w", err)
		}
		deps.Storage = store
	case strings.HasPrefix(location, "db:"):
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return deps, err
		}
		deps.DB = db
	}
	return deps, nil
}

// confirm prompts on stdin unless assumeYes is set.
func confirm(prompt string, assumeYes bool) bool {
	if assumeYes {
		return true
	}

	fmt.Printf("%s Type 'yes' to confirm: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
