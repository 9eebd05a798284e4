package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv(EndpointEnvVar, "")

	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Endpoint != "" {
		t.Errorf("Endpoint = %q, want empty", cfg.Endpoint)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.PollInterval.Duration() != 10*time.Second {
		t.Errorf("PollInterval = %v, want 10s", cfg.PollInterval.Duration())
	}
	if cfg.ProbeTimeout() != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.ProbeTimeout())
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, LogLevelInfo)
	}
	if cfg.Log.Format != LogFormatJSON {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, LogFormatJSON)
	}
	if !cfg.MetricsEnabled() {
		t.Error("MetricsEnabled() = false, want true by default")
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
endpoint: https://api.example.com/health
poll_interval: 30s
timeout: 2s
port: 9090
title: Payments backend
metrics: false
log:
  level: debug
  format: text
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Endpoint != "https://api.example.com/health" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.PollInterval.Duration() != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval.Duration())
	}
	if cfg.ProbeTimeout() != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.ProbeTimeout())
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Title != "Payments backend" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.MetricsEnabled() {
		t.Error("MetricsEnabled() = true, want false")
	}
	if cfg.Log.Level != LogLevelDebug || cfg.Log.Format != LogFormatText {
		t.Errorf("Log = %+v, want debug/text", cfg.Log)
	}
}

func TestParse_EndpointFromEnv(t *testing.T) {
	t.Setenv(EndpointEnvVar, "http://localhost:3000/health")

	cfg, err := Parse([]byte("port: 9000\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Endpoint != "http://localhost:3000/health" {
		t.Errorf("Endpoint = %q, want value from %s", cfg.Endpoint, EndpointEnvVar)
	}
}

func TestParse_FileEndpointWinsOverEnv(t *testing.T) {
	t.Setenv(EndpointEnvVar, "http://from-env/health")

	cfg, err := Parse([]byte("endpoint: http://from-file/health\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Endpoint != "http://from-file/health" {
		t.Errorf("Endpoint = %q, want file value", cfg.Endpoint)
	}
}

func TestParse_EnvVarExpansion(t *testing.T) {
	t.Setenv("HEALTH_HOST", "api.internal")

	cfg, err := Parse([]byte("endpoint: https://${HEALTH_HOST}/health\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Endpoint != "https://api.internal/health" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
}

func TestParse_EnvVarDefault(t *testing.T) {
	os.Unsetenv("HEALTHPOLLER_TEST_UNSET")

	cfg, err := Parse([]byte("endpoint: ${HEALTHPOLLER_TEST_UNSET:-https://fallback.example.com/health}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Endpoint != "https://fallback.example.com/health" {
		t.Errorf("Endpoint = %q, want default value", cfg.Endpoint)
	}
}

func TestParse_EnvVarMissingDisablesPolling(t *testing.T) {
	t.Setenv(EndpointEnvVar, "")
	os.Unsetenv(EndpointEnvVar)

	cfg, err := Parse([]byte("endpoint: ${BACKEND_HEALTH_URL}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Endpoint != "" {
		t.Errorf("Endpoint = %q, want empty", cfg.Endpoint)
	}
}

func TestParse_EnvVarMissingInsideURL(t *testing.T) {
	os.Unsetenv("HEALTHPOLLER_TEST_UNSET")

	_, err := Parse([]byte("endpoint: ${HEALTHPOLLER_TEST_UNSET}/health\n"))
	if err == nil {
		t.Fatal("Parse() expected error for a URL left without scheme")
	}
	if !strings.Contains(err.Error(), "endpoint") {
		t.Errorf("error = %v, want it to mention endpoint", err)
	}
}

func TestParse_ZeroTimeoutDisablesTimeout(t *testing.T) {
	cfg, err := Parse([]byte("timeout: 0s\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := cfg.ProbeTimeout(); got != 0 {
		t.Errorf("ProbeTimeout() = %v, want 0", got)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	t.Setenv(EndpointEnvVar, "")

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "endpoint without scheme",
			yaml:    "endpoint: api.example.com/health\n",
			wantErr: "endpoint",
		},
		{
			name:    "endpoint with unsupported scheme",
			yaml:    "endpoint: ftp://example.com/health\n",
			wantErr: "endpoint",
		},
		{
			name:    "poll interval too short",
			yaml:    "poll_interval: 500ms\n",
			wantErr: "poll_interval",
		},
		{
			name:    "negative timeout",
			yaml:    "timeout: -1s\n",
			wantErr: "timeout",
		},
		{
			name:    "port too large",
			yaml:    "port: 70000\n",
			wantErr: "port",
		},
		{
			name:    "negative port",
			yaml:    "port: -1\n",
			wantErr: "port",
		},
		{
			name:    "unknown log level",
			yaml:    "log:\n  level: verbose\n",
			wantErr: "level",
		},
		{
			name:    "unknown log format",
			yaml:    "log:\n  format: xml\n",
			wantErr: "format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	_, err := Parse([]byte("poll_interval: soon\n"))
	if err == nil {
		t.Fatal("Parse() expected error")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("error = %v, want invalid duration", err)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("port: [unclosed\n"))
	if err == nil {
		t.Fatal("Parse() expected error")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("error = %v, want parse failure", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthpoller.yaml")
	if err := os.WriteFile(path, []byte("endpoint: http://localhost:8081/health\nport: 9191\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9191 {
		t.Errorf("Port = %d, want 9191", cfg.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EndpointEnvVar, "https://api.example.com/health")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Endpoint != "https://api.example.com/health" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
}

func TestFromEnv_InvalidURL(t *testing.T) {
	t.Setenv(EndpointEnvVar, "not a url")

	if _, err := FromEnv(); err == nil {
		t.Fatal("FromEnv() expected error for malformed URL")
	}
}
