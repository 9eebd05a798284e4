// Example program embedding the poller as a library.
//
// Usage:
//
//	go run ./example
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/healthpoller"
)

func main() {
	// start mock backend (see mock_server.go)
	go StartMockHealthServer(":9999")
	time.Sleep(100 * time.Millisecond)

	p, err := healthpoller.New("http://localhost:9999/health",
		healthpoller.WithInterval(5*time.Second),
		healthpoller.WithTimeout(2*time.Second),
		healthpoller.WithStatusCallback(func(r healthpoller.ProbeResult) {
			fmt.Printf("%s  %-16s (%d, %s)\n",
				r.CheckedAt.Format(time.TimeOnly),
				healthpoller.Render(r.Status).Text,
				r.StatusCode,
				r.Latency.Round(time.Millisecond),
			)
		}),
	)
	if err != nil {
		slog.Error("failed to create poller", "error", err)
		os.Exit(1)
	}

	fmt.Println("Polling mock backend every 5s, press Ctrl+C to stop")
	fmt.Println(p.Indicator().Text)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p.Start(ctx)
	<-ctx.Done()
	p.Stop()
}
