package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// StartMockHealthServer runs a mock health endpoint that flips between up
// and down every 20-60 seconds. Call this in a goroutine before starting
// the poller.
func StartMockHealthServer(addr string) {
	var (
		mu           sync.Mutex
		up           = true
		nextChangeAt = time.Now().Add(nextFlip())
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		// simulate small latency variance
		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		mu.Lock()
		if time.Now().After(nextChangeAt) {
			up = !up
			nextChangeAt = time.Now().Add(nextFlip())
			slog.Info("mock backend changed", "up", up)
		}
		healthy := up
		mu.Unlock()

		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}

func nextFlip() time.Duration {
	return time.Duration(20+rand.Intn(41)) * time.Second
}
