package store

import (
	"sync"
	"testing"
	"time"
)

func checking() Snapshot {
	return Snapshot{Status: "unknown", Tone: "neutral", Text: "Checking..."}
}

func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore(checking())

	got := store.Latest()
	if got.Status != "unknown" || got.Text != "Checking..." {
		t.Errorf("Latest() = %+v, want initial snapshot", got)
	}
	if got.CheckedAt != nil {
		t.Errorf("Latest().CheckedAt = %v, want nil", got.CheckedAt)
	}
}

func TestMemoryStore_UpdateOverwrites(t *testing.T) {
	store := NewMemoryStore(checking())

	now := time.Now()
	store.Update(Snapshot{Status: "healthy", Tone: "positive", Text: "Backend healthy", CheckedAt: &now})
	store.Update(Snapshot{Status: "unhealthy", Tone: "negative", Text: "Backend down", CheckedAt: &now})

	got := store.Latest()
	if got.Status != "unhealthy" {
		t.Errorf("Latest().Status = %v, want %v", got.Status, "unhealthy")
	}
	if got.Text != "Backend down" {
		t.Errorf("Latest().Text = %v, want %v", got.Text, "Backend down")
	}
}

func TestMemoryStore_Subscribe(t *testing.T) {
	store := NewMemoryStore(checking())

	ch := store.Subscribe()
	go store.Update(Snapshot{Status: "healthy"})

	select {
	case snap := <-ch:
		if snap.Status != "healthy" {
			t.Errorf("received Status = %v, want %v", snap.Status, "healthy")
		}
	case <-time.After(time.Second):
		t.Error("Subscribe() channel did not receive update")
	}
}

func TestMemoryStore_MultipleSubscribers(t *testing.T) {
	store := NewMemoryStore(checking())

	ch1 := store.Subscribe()
	ch2 := store.Subscribe()
	ch3 := store.Subscribe()

	go store.Update(Snapshot{Status: "healthy"})

	received := 0
	timeout := time.After(time.Second)

	for received < 3 {
		select {
		case <-ch1:
			received++
		case <-ch2:
			received++
		case <-ch3:
			received++
		case <-timeout:
			t.Fatalf("Only received %d/3 updates", received)
		}
	}
}

func TestMemoryStore_Unsubscribe(t *testing.T) {
	store := NewMemoryStore(checking())

	ch := store.Subscribe()
	store.Unsubscribe(ch)
	store.Unsubscribe(ch) // second call is a no-op

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Unsubscribe() channel should be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Unsubscribe() channel should be closed immediately")
	}

	if got := store.Subscribers(); got != 0 {
		t.Errorf("Subscribers() = %d, want 0", got)
	}
}

func TestMemoryStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	store := NewMemoryStore(checking())

	// never read
	_ = store.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10*subscriberBuffer; i++ {
			store.Update(Snapshot{Status: "healthy"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("Update() blocked on slow subscriber")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(checking())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Update(Snapshot{Status: "healthy"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Latest()
			}
		}()
		go func() {
			defer wg.Done()
			ch := store.Subscribe()
			time.Sleep(10 * time.Millisecond)
			store.Unsubscribe(ch)
		}()
	}

	wg.Wait()
}
