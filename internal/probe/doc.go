// Package probe provides the HTTP client used to probe health endpoints.
//
// This package is internal to healthpoller. A probe is a single uncached
// GET whose outcome is the response status code; the body is drained and
// discarded so connections can be reused.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with per-request timeouts
//   - [Response]: status code, latency and transport error of one probe
//
// Users of the healthpoller library should not need to interact with this
// package directly.
package probe
