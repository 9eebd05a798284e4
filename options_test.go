package healthpoller

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestWithInterval(t *testing.T) {
	tests := []struct {
		name    string
		d       time.Duration
		wantErr bool
	}{
		{"positive", 30 * time.Second, false},
		{"zero", 0, true},
		{"negative", -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New("https://example.com", WithInterval(tt.d))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.Interval() != tt.d {
				t.Errorf("Interval() = %v, want %v", p.Interval(), tt.d)
			}
		})
	}
}

func TestWithTimeout(t *testing.T) {
	tests := []struct {
		name    string
		d       time.Duration
		wantErr bool
	}{
		{"positive", 5 * time.Second, false},
		{"zero disables", 0, false},
		{"negative", -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New("https://example.com", WithTimeout(tt.d))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			hp, ok := p.prober.(*httpProber)
			if !ok {
				t.Fatalf("prober = %T, want *httpProber", p.prober)
			}
			if hp.timeout != tt.d {
				t.Errorf("timeout = %v, want %v", hp.timeout, tt.d)
			}
		})
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p, err := New("", WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p.Start(context.Background())
	p.Stop()

	if !strings.Contains(buf.String(), "polling disabled") {
		t.Errorf("custom logger not used, got: %s", buf.String())
	}
}

func TestWithLogger_Nil(t *testing.T) {
	_, err := New("https://example.com", WithLogger(nil))
	if err == nil {
		t.Error("New() expected error for nil logger")
	}
}

func TestWithProber_Nil(t *testing.T) {
	_, err := New("https://example.com", WithProber(nil))
	if err == nil {
		t.Error("New() expected error for nil prober")
	}
}

func TestWithProber_ReplacesDefault(t *testing.T) {
	prober := ProberFunc(func(ctx context.Context, endpoint string) (int, error) {
		return http.StatusOK, nil
	})

	p, err := New("https://example.com", WithProber(prober))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := p.prober.(ProberFunc); !ok {
		t.Errorf("prober = %T, want ProberFunc", p.prober)
	}
}

func TestWithHTTPClient_Nil(t *testing.T) {
	p, err := New("https://example.com", WithHTTPClient(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := p.prober.(*httpProber); !ok {
		t.Errorf("prober = %T, want *httpProber", p.prober)
	}
}

func TestWithStatusCallback_NilIgnored(t *testing.T) {
	p, err := New("https://example.com", WithStatusCallback(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(p.callbacks) != 0 {
		t.Errorf("len(callbacks) = %d, want 0", len(p.callbacks))
	}
}

func TestWithStatusCallback_RegistrationOrder(t *testing.T) {
	prober := ProberFunc(func(ctx context.Context, endpoint string) (int, error) {
		return http.StatusOK, nil
	})

	order := make(chan int, 2)
	p, err := New("https://example.com",
		WithProber(prober),
		WithLogger(testLogger()),
		WithStatusCallback(func(ProbeResult) { order <- 1 }),
		WithStatusCallback(func(ProbeResult) { order <- 2 }),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p.Start(context.Background())
	defer p.Stop()

	for want := 1; want <= 2; want++ {
		select {
		case got := <-order:
			if got != want {
				t.Errorf("callback order: got %d, want %d", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for callbacks")
		}
	}
}
