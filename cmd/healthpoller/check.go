package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/healthpoller"
)

// errNotHealthy makes the command exit non-zero without a usage dump.
var errNotHealthy = errors.New("backend is not healthy")

// checkCmd probes the endpoint once.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the endpoint once and print the indicator",
	Long: `Probe the health endpoint a single time and print the indicator text.

The endpoint is taken from --url, then the config file, then
BACKEND_HEALTH_URL.

Exit codes:
  0 - Backend healthy
  1 - Backend down, or no endpoint configured

Example:
  healthpoller check --url http://localhost:3000/health
  healthpoller check -c config.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("config", "c", "", "path to config file")
	checkCmd.Flags().String("url", "", "endpoint to probe (overrides config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	endpoint := cfg.Endpoint
	if u, _ := cmd.Flags().GetString("url"); u != "" {
		endpoint = u
	}

	result := healthpoller.ProbeOnce(cmd.Context(), endpoint, cfg.ProbeTimeout())
	fmt.Fprintln(cmd.OutOrStdout(), healthpoller.Render(result.Status).Text)

	switch result.Status {
	case healthpoller.StatusHealthy:
		return nil
	case healthpoller.StatusUnknown:
		return errors.New("no endpoint configured")
	default:
		if result.Err != nil {
			return fmt.Errorf("%w: %v", errNotHealthy, result.Err)
		}
		return fmt.Errorf("%w: status code %d", errNotHealthy, result.StatusCode)
	}
}
