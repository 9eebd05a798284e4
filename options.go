package healthpoller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// pollerConfig holds mutable state during Poller construction.
type pollerConfig struct {
	interval        time.Duration
	timeout         time.Duration
	logger          *slog.Logger
	prober          Prober
	httpClient      *http.Client
	statusCallbacks []func(ProbeResult)
}

// Option is a function that configures a [Poller] during construction.
//
// Option implements the functional options pattern. Options return an error
// if validation fails.
type Option func(*pollerConfig) error

// WithInterval sets the period between probes.
//
// Defaults to [DefaultInterval] (10 seconds) if not specified.
//
// Returns an error if the duration is zero or negative.
func WithInterval(d time.Duration) Option {
	return func(cfg *pollerConfig) error {
		if d <= 0 {
			return errors.New("polling interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithTimeout sets the per-probe request timeout used by the default HTTP
// prober. Zero disables the timeout, leaving only the HTTP client's own
// limits. Defaults to 10 seconds.
//
// Returns an error if the duration is negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *pollerConfig) error {
		if d < 0 {
			return errors.New("timeout cannot be negative")
		}
		cfg.timeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Poller.
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *pollerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithProber replaces the default HTTP prober.
//
// The prober must honor context cancellation; [Poller.Stop] waits for
// in-flight probes to return. When set, [WithHTTPClient] and [WithTimeout]
// have no effect.
//
// Returns an error if the prober is nil.
func WithProber(p Prober) Option {
	return func(cfg *pollerConfig) error {
		if p == nil {
			return errors.New("prober cannot be nil")
		}
		cfg.prober = p
		return nil
	}
}

// WithHTTPClient sets the *http.Client used by the default HTTP prober.
// Nil leaves the default pooled client in place.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *pollerConfig) error {
		cfg.httpClient = hc
		return nil
	}
}

// WithStatusCallback registers a function to be called on every probe
// completion while the Poller is active.
//
// The callback runs after the status has been updated, so [Poller.Status]
// called from inside it returns the new value. Callbacks never fire after
// [Poller.Stop] has taken effect.
//
// Multiple callbacks may be registered; they execute in registration order.
// Callbacks are invoked one result at a time and must be non-blocking.
// They must not call [Poller.Stop] or [Poller.Start]. Panics within
// callbacks are recovered and logged.
//
// Example:
//
//	p, err := healthpoller.New(url,
//	    healthpoller.WithStatusCallback(func(r healthpoller.ProbeResult) {
//	        if r.Status == healthpoller.StatusUnhealthy {
//	            log.Printf("ALERT: %s is down", r.Endpoint)
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithStatusCallback(cb func(ProbeResult)) Option {
	return func(cfg *pollerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.statusCallbacks = append(cfg.statusCallbacks, cb)
		return nil
	}
}
