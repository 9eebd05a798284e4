// Package config provides configuration loading for the healthpoller binary.
//
// Configuration comes from an optional YAML file plus the process
// environment. The probed endpoint is normally supplied through the
// BACKEND_HEALTH_URL environment variable; leaving it unset disables
// polling rather than failing.
//
// Example configuration:
//
//	endpoint: ${BACKEND_HEALTH_URL:-https://api.example.com/health}
//	poll_interval: 10s
//	timeout: 5s
//	port: 8080
//	title: Payments backend
//	log:
//	  level: info
//	  format: json
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// EndpointEnvVar names the environment variable holding the endpoint URL.
const EndpointEnvVar = "BACKEND_HEALTH_URL"

const (
	defaultPort         = 8080
	defaultPollInterval = 10 * time.Second
	defaultTimeout      = 10 * time.Second

	// minPollInterval prevents accidental DoS of the endpoint.
	minPollInterval = time.Second
)

// Log levels and formats accepted in the log section.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config is the root configuration structure.
//
// Use [Load], [Parse] or [FromEnv] to create a Config.
type Config struct {
	// Endpoint is the health URL to probe. Empty disables polling.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// PollInterval is the time between probes. Defaults to 10s.
	PollInterval Duration `yaml:"poll_interval" json:"poll_interval"`

	// Timeout is the per-probe request timeout. Defaults to 10s when
	// absent; an explicit 0s disables it.
	Timeout *Duration `yaml:"timeout" json:"timeout"`

	// Port is the HTTP port for the status page. Defaults to 8080.
	Port int `yaml:"port" json:"port"`

	// Title is the status page title.
	Title string `yaml:"title" json:"title"`

	// Metrics toggles the /metrics endpoint. Defaults to enabled.
	Metrics *bool `yaml:"metrics" json:"metrics"`

	// Log configures the logger.
	Log LogConfig `yaml:"log" json:"log"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string `yaml:"level" json:"level"`

	// Format is json or text. Defaults to json.
	Format string `yaml:"format" json:"format"`
}

// ProbeTimeout returns the per-probe timeout, zero meaning none.
func (c *Config) ProbeTimeout() time.Duration {
	if c.Timeout == nil {
		return defaultTimeout
	}
	return c.Timeout.Duration()
}

// MetricsEnabled reports whether the /metrics endpoint should be served.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics == nil || *c.Metrics
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
// An unset variable without a default expands to the empty string, so a
// missing endpoint disables polling instead of failing the load.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		if value, exists := os.LookupEnv(submatches[1]); exists {
			return value
		}
		if len(submatches) > 3 {
			return submatches[3]
		}
		return ""
	})
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// FromEnv builds a Config from defaults and the environment alone.
func FromEnv() (*Config, error) {
	return Parse(nil)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in the endpoint. If the endpoint is
// empty afterwards, including when it only referenced unset variables, it
// is taken from [EndpointEnvVar]. Defaults are applied before validation.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.Endpoint = expandEnvVars(cfg.Endpoint)
	if cfg.Endpoint == "" {
		cfg.Endpoint = os.Getenv(EndpointEnvVar)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.PollInterval == 0 {
		c.PollInterval = Duration(defaultPollInterval)
	}
	if c.Timeout == nil {
		d := Duration(defaultTimeout)
		c.Timeout = &d
	}
	if c.Log.Level == "" {
		c.Log.Level = LogLevelInfo
	}
	if c.Log.Format == "" {
		c.Log.Format = LogFormatJSON
	}
}

// Validate checks the configuration. An empty endpoint is valid.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint,
			is.URL,
			validation.By(validateHTTPURL),
		),
		validation.Field(&c.PollInterval,
			validation.By(validateMinDuration(minPollInterval)),
		),
		validation.Field(&c.Timeout,
			validation.By(validateMinDuration(0)),
		),
		validation.Field(&c.Port,
			validation.Required,
			validation.Min(1),
			validation.Max(65535),
		),
		validation.Field(&c.Log),
	)
}

// Validate implements validation.Validatable for the log section.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
		validation.Field(&l.Format,
			validation.In(LogFormatJSON, LogFormatText),
		),
	)
}

func validateHTTPURL(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if s == "" {
		return nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "must use http or https")
	}
	return nil
}

func validateMinDuration(min time.Duration) validation.RuleFunc {
	return func(value interface{}) error {
		var d Duration
		switch v := value.(type) {
		case Duration:
			d = v
		case *Duration:
			if v == nil {
				return nil
			}
			d = *v
		default:
			return errors.New("must be a duration")
		}
		if d.Duration() < min {
			return validation.NewError("validation_duration_too_small",
				fmt.Sprintf("must be at least %s", min))
		}
		return nil
	}
}
