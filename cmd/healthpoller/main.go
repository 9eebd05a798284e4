// Package main is the entry point for the healthpoller CLI.
//
// Usage:
//
//	healthpoller serve                 # Poll BACKEND_HEALTH_URL and serve the status page
//	healthpoller serve -c config.yaml  # Same, with a config file
//	healthpoller check --url URL       # Probe once and print the indicator
//	healthpoller validate -c config.yaml
//	healthpoller version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "healthpoller",
	Short: "Backend health indicator",
	Long: `healthpoller watches one HTTP health endpoint and reports whether the
backend is reachable.

It probes the endpoint immediately and then every poll interval, and shows the
result as one of three states: "Checking...", "Backend healthy" or
"Backend down". Only a 2xx response counts as healthy.

Quick start:
  export BACKEND_HEALTH_URL=http://localhost:3000/health
  healthpoller serve
  open http://localhost:8080

Example config:
  endpoint: ${BACKEND_HEALTH_URL}
  poll_interval: 10s
  timeout: 5s
  port: 8080`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this healthpoller binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "healthpoller %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
