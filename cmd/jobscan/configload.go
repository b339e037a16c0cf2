package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscan/internal/config"
	"github.com/jonathan/jobscan/internal/db"
)

// mergedConfig loads the optional config file, applies explicitly set CLI
// flags on top of it, and validates the result. Command-line arguments take
// priority over config file values.
func mergedConfig(cmd *cobra.Command, configPath string, applyFlags func(*config.Config)) (config.Config, error) {
	var cfg config.Config

	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
		}
	}

	applyFlags(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// connectDatabase opens the PostgreSQL pool named by the config or the
// DATABASE_URL environment variable.
func connectDatabase(ctx context.Context, cfg config.Config) (*db.DB, error) {
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}
