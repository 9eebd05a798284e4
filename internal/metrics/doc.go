// Package metrics exposes Prometheus metrics for the health poller.
//
// Metrics:
//   - healthpoller_probes_total: completed probes by outcome
//   - healthpoller_probe_duration_seconds: probe latency histogram
//   - healthpoller_status: 1 for the current status, 0 for the others
//
// Metrics live on a private registry served by [Collector.Handler].
package metrics
