// Package store provides storage and pub/sub for the latest health snapshot.
//
// This package is internal to healthpoller and holds what the status page
// renders. It implements a publish-subscribe pattern so connected page
// clients receive every new snapshot in real time.
//
// The main components are:
//
//   - [Store]: Interface defining storage and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//   - [Snapshot]: Render-ready representation of the current status
//
// Subscribers receive updates via channels with non-blocking sends (slow
// subscribers will miss updates rather than block the poller).
package store
