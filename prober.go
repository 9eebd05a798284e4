package healthpoller

import (
	"context"
	"log/slog"
	"time"

	"github.com/jpalmerr/healthpoller/internal/probe"
)

// Prober issues a single health probe against an endpoint.
//
// Probe returns the HTTP status code of the response. A non-nil error
// means the probe failed at the transport level (or the response could not
// be read); the status code is then ignored.
type Prober interface {
	Probe(ctx context.Context, endpoint string) (statusCode int, err error)
}

// ProberFunc adapts an ordinary function to the [Prober] interface.
type ProberFunc func(ctx context.Context, endpoint string) (int, error)

// Probe calls f(ctx, endpoint).
func (f ProberFunc) Probe(ctx context.Context, endpoint string) (int, error) {
	return f(ctx, endpoint)
}

// httpProber is the default [Prober]: an uncached GET with a per-probe timeout.
// The body is drained but never affects the outcome.
type httpProber struct {
	client  *probe.Client
	timeout time.Duration
	logger  *slog.Logger
}

func (h *httpProber) Probe(ctx context.Context, endpoint string) (int, error) {
	resp := h.client.Get(ctx, endpoint, h.timeout)
	if resp.BodyError != nil && h.logger != nil {
		h.logger.Debug("response body drain failed",
			"endpoint", endpoint,
			"status_code", resp.StatusCode,
			"error", resp.BodyError.Error(),
		)
	}
	return resp.StatusCode, resp.Error
}

func (h *httpProber) close() {
	h.client.Close()
}

// ProbeOnce issues a single probe with the default HTTP prober and returns
// the resulting [ProbeResult]. It never schedules anything and is the
// one-shot counterpart of a [Poller].
//
// An empty endpoint yields [StatusUnknown] without any network call.
func ProbeOnce(ctx context.Context, endpoint string, timeout time.Duration) ProbeResult {
	if endpoint == "" {
		return ProbeResult{Status: StatusUnknown, CheckedAt: time.Now()}
	}

	client := probe.NewClient()
	defer client.Close()

	resp := client.Get(ctx, endpoint, timeout)
	return buildResult(endpoint, resp.StatusCode, resp.Latency, resp.Error)
}

// buildResult collapses a probe outcome into a [ProbeResult].
func buildResult(endpoint string, code int, latency time.Duration, err error) ProbeResult {
	status := statusFromCode(code)
	if err != nil {
		status = StatusUnhealthy
	}
	return ProbeResult{
		Endpoint:   endpoint,
		Status:     status,
		StatusCode: code,
		Latency:    latency,
		CheckedAt:  time.Now(),
		Err:        err,
	}
}
