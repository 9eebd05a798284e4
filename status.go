package healthpoller

import "time"

// Status represents the health state tracked by a [Poller].
//
// Status is a string type that holds one of three predefined values:
// [StatusUnknown], [StatusHealthy], or [StatusUnhealthy]. The string form
// is what appears in logs, metrics labels and the JSON status API.
type Status string

const (
	// StatusUnknown indicates no probe has completed yet, or that polling
	// is disabled because no endpoint is configured.
	StatusUnknown Status = "unknown"

	// StatusHealthy indicates the most recently completed probe received a
	// 2xx response.
	StatusHealthy Status = "healthy"

	// StatusUnhealthy indicates the most recently completed probe received
	// a non-2xx response or failed at the transport level.
	StatusUnhealthy Status = "unhealthy"
)

// String returns the string representation of the status.
// This implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}

// Tone is the visual class of an [Indicator].
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// Indicator is the render output for a [Status]: a tone plus short text.
//
// Indicator never carries error details; transport and HTTP failures
// render identically.
type Indicator struct {
	Tone Tone   `json:"tone"`
	Text string `json:"text"`
}

// Render maps a [Status] to its [Indicator].
//
// Render is a pure function with no side effects:
//   - [StatusUnknown] renders neutral "Checking..."
//   - [StatusHealthy] renders positive "Backend healthy"
//   - [StatusUnhealthy] renders negative "Backend down"
//
// Unrecognized values render as [StatusUnknown].
func Render(s Status) Indicator {
	switch s {
	case StatusHealthy:
		return Indicator{Tone: TonePositive, Text: "Backend healthy"}
	case StatusUnhealthy:
		return Indicator{Tone: ToneNegative, Text: "Backend down"}
	default:
		return Indicator{Tone: ToneNeutral, Text: "Checking..."}
	}
}

// statusFromCode maps an HTTP status code to a [Status].
// Only the ok class (200-299) is healthy.
func statusFromCode(code int) Status {
	if code >= 200 && code < 300 {
		return StatusHealthy
	}
	return StatusUnhealthy
}

// ProbeResult holds the outcome of one completed probe.
//
// ProbeResult is delivered to callbacks registered with [WithStatusCallback]
// after the result has been applied to the poller's status.
type ProbeResult struct {
	// Endpoint is the URL that was probed.
	Endpoint string

	// Status is the status the probe resolved to.
	Status Status

	// StatusCode is the HTTP status code returned by the endpoint.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the time taken to complete the probe.
	Latency time.Duration

	// CheckedAt is the time the probe completed.
	CheckedAt time.Time

	// Err contains any error that occurred during the probe. It is for
	// diagnostics only and is never part of the rendered output.
	Err error
}
