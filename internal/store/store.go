package store

import "time"

// Snapshot is the render-ready state of the health indicator.
//
// Snapshot is the storage representation used by the JSON API and SSE
// stream. It is decoupled from the poller's types and deliberately carries
// no error text.
type Snapshot struct {
	// Status is the health status ("unknown", "healthy", "unhealthy").
	Status string `json:"status"`

	// Tone is the indicator class ("neutral", "positive", "negative").
	Tone string `json:"tone"`

	// Text is the indicator text shown to users.
	Text string `json:"text"`

	// CheckedAt is when the last probe completed.
	// nil until the first probe has completed.
	CheckedAt *time.Time `json:"checked_at"`
}

// Store defines the interface for storing and subscribing to snapshots.
//
// Store implementations must be safe for concurrent access.
type Store interface {
	// Update replaces the current snapshot and notifies all subscribers.
	Update(snap Snapshot)

	// Latest returns the current snapshot.
	Latest() Snapshot

	// Subscribe returns a channel that receives snapshot updates.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan Snapshot

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan Snapshot)
}
