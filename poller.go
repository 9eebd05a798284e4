package healthpoller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/healthpoller/internal/probe"
	"github.com/jpalmerr/healthpoller/internal/schedule"
)

const (
	// DefaultInterval is the period between probes.
	DefaultInterval = 10 * time.Second

	defaultTimeout = 10 * time.Second
)

// Poller repeatedly probes one HTTP endpoint and tracks its health.
//
// A Poller is created with [New] and driven by an explicit lifecycle:
// [Poller.Start] activates it and [Poller.Stop] deactivates it. While active
// it probes immediately, then once per interval. Probes run concurrently
// and never block each other; the status always reflects the most recently
// completed probe.
//
// The typical lifecycle is:
//
//	p, err := healthpoller.New(os.Getenv("BACKEND_HEALTH_URL"))
//	if err != nil {
//	    return err
//	}
//	p.Start(ctx)
//	defer p.Stop()
//
//	fmt.Println(p.Indicator().Text)
//
// All methods are safe for concurrent use.
type Poller struct {
	endpoint  string
	interval  time.Duration
	prober    Prober
	logger    *slog.Logger
	callbacks []func(ProbeResult)

	// mu serializes lifecycle changes with result application, so a result
	// is either applied before Stop takes effect or not at all.
	mu     sync.Mutex
	cycle  *cycle
	active atomic.Bool

	stateMu sync.RWMutex
	status  Status
}

// cycle is one activation of a Poller. It owns the poll timer and tracks
// the probes dispatched during the activation.
type cycle struct {
	task    *schedule.Task
	cancel  context.CancelFunc
	release func() bool
	wg      sync.WaitGroup
	done    chan struct{}
}

// New creates a [Poller] for endpoint.
//
// An empty endpoint is valid: the Poller never probes and its status stays
// [StatusUnknown]. A non-empty endpoint must be an absolute http or https
// URL.
//
// Example:
//
//	p, err := healthpoller.New("https://api.example.com/health",
//	    healthpoller.WithInterval(30*time.Second),
//	    healthpoller.WithLogger(logger),
//	)
func New(endpoint string, opts ...Option) (*Poller, error) {
	if endpoint != "" {
		if err := validateEndpoint(endpoint); err != nil {
			return nil, err
		}
	}

	cfg := &pollerConfig{
		interval: DefaultInterval,
		timeout:  defaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	prober := cfg.prober
	if prober == nil {
		prober = &httpProber{
			client:  probe.NewClientWith(cfg.httpClient),
			timeout: cfg.timeout,
			logger:  logger,
		}
	}

	return &Poller{
		endpoint:  endpoint,
		interval:  cfg.interval,
		prober:    prober,
		logger:    logger,
		callbacks: cfg.callbacks(),
		status:    StatusUnknown,
	}, nil
}

func (cfg *pollerConfig) callbacks() []func(ProbeResult) {
	cp := make([]func(ProbeResult), len(cfg.statusCallbacks))
	copy(cp, cfg.statusCallbacks)
	return cp
}

// validateEndpoint checks that endpoint is an absolute http(s) URL.
func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("endpoint URL must have a scheme (http:// or https://)")
	}
	if u.Host == "" {
		return errors.New("endpoint URL must have a host")
	}
	return nil
}

// Start activates the Poller.
//
// Start is non-blocking. It resets the status to [StatusUnknown], issues one
// probe immediately and schedules a repeating probe every interval. With an
// empty endpoint nothing is probed or scheduled, but the Poller is still
// considered active.
//
// Cancelling ctx deactivates the Poller as if [Poller.Stop] were called.
// Start is a no-op if the Poller is already active or ctx is already done.
// A stopped Poller may be started again; each activation begins from
// [StatusUnknown].
func (p *Poller) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cycle != nil || ctx.Err() != nil {
		return
	}

	c := &cycle{done: make(chan struct{})}
	p.cycle = c
	p.active.Store(true)
	p.setStatus(StatusUnknown)

	if p.endpoint == "" {
		p.logger.Info("health poller started without endpoint, polling disabled")
		c.release = context.AfterFunc(ctx, func() { p.deactivate(c) })
		return
	}

	probeCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	p.logger.Info("health poller started",
		"endpoint", p.endpoint,
		"interval", p.interval.String(),
	)

	p.dispatch(probeCtx, c)
	c.task = schedule.Every(p.interval, func() { p.dispatch(probeCtx, c) })
	c.release = context.AfterFunc(ctx, func() { p.deactivate(c) })
}

// Stop deactivates the Poller.
//
// Stop cancels the poll timer and any in-flight probes, and blocks until
// all probe goroutines have returned. From the moment Stop takes effect no
// probe result changes the status and no callback fires; the status stays
// frozen at its value at deactivation.
//
// Stop is idempotent and safe to call before Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	c := p.cycle
	p.mu.Unlock()

	if c == nil {
		return
	}
	if c.release != nil {
		c.release()
	}
	p.deactivate(c)
}

// deactivate tears down c if it is still the current cycle, otherwise it
// waits for the concurrent teardown to finish.
func (p *Poller) deactivate(c *cycle) {
	p.mu.Lock()
	if p.cycle != c {
		p.mu.Unlock()
		<-c.done
		return
	}
	p.cycle = nil
	p.active.Store(false)
	p.mu.Unlock()

	c.task.Cancel()
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	close(c.done)

	if closer, ok := p.prober.(interface{ close() }); ok {
		closer.close()
	}

	p.logger.Info("health poller stopped", "endpoint", p.endpoint, "status", p.Status())
}

// dispatch runs one probe on its own goroutine.
func (p *Poller) dispatch(ctx context.Context, c *cycle) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		p.apply(c, p.runProbe(ctx))
	}()
}

// runProbe performs one probe and collapses the outcome into a result.
func (p *Poller) runProbe(ctx context.Context) ProbeResult {
	start := time.Now()
	code, err := p.safeProbe(ctx)
	return buildResult(p.endpoint, code, time.Since(start), err)
}

// safeProbe calls the prober with panic recovery.
// A panic is logged with a correlation ID and reported as a probe error.
func (p *Poller) safeProbe(ctx context.Context) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("prober panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			code = 0
			err = fmt.Errorf("prober panic (correlation_id: %s)", correlationID)
		}
	}()
	return p.prober.Probe(ctx, p.endpoint)
}

// apply records result if c is still the active cycle, then notifies
// callbacks. Results from a deactivated cycle are dropped.
func (p *Poller) apply(c *cycle, result ProbeResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cycle != c {
		return
	}

	p.setStatus(result.Status)

	logAttrs := []any{
		"status", result.Status,
		"endpoint", result.Endpoint,
		"status_code", result.StatusCode,
		"latency_ms", result.Latency.Milliseconds(),
	}
	if result.Err != nil {
		p.logger.Warn("probe failed", append(logAttrs, "error", result.Err.Error())...)
	} else {
		p.logger.Debug("probe completed", logAttrs...)
	}

	for _, cb := range p.callbacks {
		invokeCallbackSafe(cb, result, p.logger)
	}
}

func (p *Poller) setStatus(s Status) {
	p.stateMu.Lock()
	p.status = s
	p.stateMu.Unlock()
}

// Status returns the current [Status].
func (p *Poller) Status() Status {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.status
}

// Indicator returns the rendered [Indicator] for the current status.
func (p *Poller) Indicator() Indicator {
	return Render(p.Status())
}

// Active reports whether the Poller is between Start and Stop.
func (p *Poller) Active() bool {
	return p.active.Load()
}

// Endpoint returns the configured endpoint URL, which may be empty.
func (p *Poller) Endpoint() string {
	return p.endpoint
}

// Interval returns the configured period between probes.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// invokeCallbackSafe calls a status callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(ProbeResult), result ProbeResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("status callback panicked",
				"correlation_id", uuid.NewString(),
				"panic", r,
				"endpoint", result.Endpoint,
			)
		}
	}()
	cb(result)
}
