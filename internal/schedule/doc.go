// Package schedule provides a cancellable repeating task.
//
// A [Task] invokes a callback on a fixed period until it is cancelled.
// It is the timer primitive behind the health poller: exactly one Task is
// held per active poller and it is cancelled on deactivation.
package schedule
