// Package healthpoller reports whether a backend's HTTP health endpoint is
// reachable.
//
// A [Poller] probes one endpoint immediately when started and then on a
// fixed interval (10 seconds by default). Each probe is an uncached GET;
// only a 2xx response counts as healthy. Any other status code, network
// failure or timeout counts as unhealthy. Before the first probe completes
// the status is unknown.
//
// # Quick Start
//
//	p, err := healthpoller.New(os.Getenv("BACKEND_HEALTH_URL"))
//	if err != nil {
//	    return err
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	p.Start(ctx)
//	defer p.Stop()
//
// An empty endpoint is not an error: the Poller never issues a request and
// the status stays [StatusUnknown].
//
// # Rendering
//
// [Render] maps a [Status] to an [Indicator]:
//
//	StatusUnknown   -> neutral  "Checking..."
//	StatusHealthy   -> positive "Backend healthy"
//	StatusUnhealthy -> negative "Backend down"
//
// # Ordering
//
// Probes are not serialized. If a probe outlives the interval, the next one
// starts anyway, and whichever completes last determines the status. After
// [Poller.Stop] no result is applied, including those of probes that were
// in flight.
//
// # Callbacks
//
// [WithStatusCallback] registers a function invoked after every applied
// result. Callbacks run synchronously on the probe goroutine and must not
// call Start or Stop on the same Poller.
//
// # Thread Safety
//
// All exported methods of [Poller] are safe for concurrent use.
package healthpoller
