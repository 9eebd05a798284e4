// Package server provides the HTTP server for the healthpoller status page.
//
// This package is internal to healthpoller and handles all HTTP concerns:
//
//   - Status page: Serves the embedded page at "/" with the indicator rendered in
//   - REST API: JSON snapshot at "/api/status"
//   - Server-Sent Events: Live snapshot updates at "/api/sse"
//   - Metrics: Prometheus exposition at "/metrics" when enabled
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
