package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/healthpoller"
	"github.com/jpalmerr/healthpoller/dashboard"
	"github.com/jpalmerr/healthpoller/internal/logging"
	"github.com/jpalmerr/healthpoller/internal/metrics"
	"github.com/jpalmerr/healthpoller/internal/server"
	"github.com/jpalmerr/healthpoller/internal/store"
)

const (
	shutdownTimeout = 10 * time.Second
)

// serveCmd starts polling and the status page server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll the endpoint and serve the status page",
	Long: `Start the health poller and the status page server.

The server will:
  - Load configuration from the config file, or from BACKEND_HEALTH_URL
  - Probe the endpoint immediately and then every poll interval
  - Serve the status page, /api/status, /api/sse and /metrics

With no endpoint configured the indicator stays at "Checking..." and no
request is ever made.

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  BACKEND_HEALTH_URL=http://localhost:3000/health healthpoller serve
  healthpoller serve -c /etc/healthpoller/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	logger.Info("config loaded",
		"endpoint", cfg.Endpoint,
		"poll_interval", cfg.PollInterval.Duration().String(),
		"timeout", cfg.ProbeTimeout().String(),
	)

	st := store.NewMemoryStore(snapshotOf(healthpoller.StatusUnknown, nil))

	var (
		collector      *metrics.Collector
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled() {
		collector = metrics.NewCollector(nil)
		metricsHandler = collector.Handler()
	}

	p, err := healthpoller.New(cfg.Endpoint,
		healthpoller.WithInterval(cfg.PollInterval.Duration()),
		healthpoller.WithTimeout(cfg.ProbeTimeout()),
		healthpoller.WithLogger(logger),
		healthpoller.WithStatusCallback(func(r healthpoller.ProbeResult) {
			// store update first so the page and SSE stream see the new state
			checkedAt := r.CheckedAt
			st.Update(snapshotOf(r.Status, &checkedAt))
			if collector != nil {
				collector.ObserveProbe(string(r.Status), r.Latency)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create poller: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(st, cfg.Port, dashboard.Assets, cfg.Title, metricsHandler, logger)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	logger.Info("server listening", "addr", srv.Addr().String())

	p.Start(ctx)

	<-ctx.Done()

	// wait for in-flight probes with a bound
	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		logger.Info("shutdown complete")
	case <-time.After(shutdownTimeout):
		logger.Warn("shutdown timed out",
			"timeout", shutdownTimeout.String(),
			"action", "forcing exit",
		)
	}
	return nil
}

// snapshotOf renders status into the snapshot shape the server publishes.
func snapshotOf(status healthpoller.Status, checkedAt *time.Time) store.Snapshot {
	ind := healthpoller.Render(status)
	return store.Snapshot{
		Status:    string(status),
		Tone:      string(ind.Tone),
		Text:      ind.Text,
		CheckedAt: checkedAt,
	}
}
