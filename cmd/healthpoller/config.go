package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/healthpoller/config"
)

// loadConfig reads the file named by the --config flag, or falls back to
// defaults and the environment when no file is given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		cfg, err := config.FromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load config from environment: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
