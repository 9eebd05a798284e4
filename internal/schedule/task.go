package schedule

import (
	"sync"
	"time"
)

// Task is a handle to a repeating callback started with [Every].
//
// The callback runs on the task's own goroutine, one tick at a time.
// Callers that need ticks to overlap should dispatch their work to a new
// goroutine from inside the callback.
type Task struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Every starts calling fn once per interval, with the first call one
// interval after Every returns. It panics if interval is not positive,
// matching [time.NewTicker].
func Every(interval time.Duration, fn func()) *Task {
	t := &Task{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer close(t.done)
		defer ticker.Stop()

		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				// a tick may race with Cancel; cancellation wins
				select {
				case <-t.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return t
}

// Cancel stops the task and blocks until its goroutine has exited.
//
// When Cancel returns no further tick will fire. Cancel is idempotent and
// safe on a nil Task. It must not be called from inside the task's own
// callback.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.stop) })
	<-t.done
}
