package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/jobmerge/internal/adapter"
	"github.com/amishk599/jobmerge/internal/model"
)

// Config is the root configuration for the aggregator.
type Config struct {
	Server      ServerConfig
	Fetch       FetchConfig
	Aggregation AggregationConfig
	RateLimit   RateLimitConfig
	Sources     []SourceConfig
}

// ServerConfig controls the HTTP listener used by `serve`.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FetchConfig controls upstream requests.
type FetchConfig struct {
	Timeout   time.Duration // per-request timeout, default 15s
	UserAgent string        // identifying header sent upstream
}

// AggregationConfig controls failure handling across sources.
type AggregationConfig struct {
	AllowPartial bool // return surviving sources when one fails
}

// RateLimitConfig throttles the listings endpoint.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// SourceConfig names one upstream document.
type SourceConfig struct {
	Name model.Source `yaml:"name"`
	URL  string       `yaml:"url"`
}

const (
	defaultAddr         = ":8080"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultRPS          = 1.0
	defaultBurst        = 5
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Server      rawServerConfig      `yaml:"server"`
	Fetch       rawFetchConfig       `yaml:"fetch"`
	Aggregation rawAggregationConfig `yaml:"aggregation"`
	RateLimit   rawRateLimitConfig   `yaml:"rate_limit"`
	Sources     []SourceConfig       `yaml:"sources"`
}

type rawServerConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

type rawFetchConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

type rawAggregationConfig struct {
	AllowPartial bool `yaml:"allow_partial"`
}

type rawRateLimitConfig struct {
	RequestsPerSecond *float64 `yaml:"requests_per_second"`
	Burst             *int     `yaml:"burst"`
}

// Default returns the built-in configuration: the three known sources at
// their published URLs, a 15s fetch timeout, and all-or-nothing aggregation.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         defaultAddr,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		Fetch: FetchConfig{
			Timeout:   adapter.DefaultTimeout,
			UserAgent: adapter.DefaultUserAgent,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: defaultRPS,
			Burst:             defaultBurst,
		},
		Sources: defaultSources(),
	}
}

func defaultSources() []SourceConfig {
	out := make([]SourceConfig, 0, len(model.Sources))
	for _, s := range model.Sources {
		out = append(out, SourceConfig{Name: s, URL: adapter.DefaultURL(s)})
	}
	return out
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
// Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Server.Addr != "" {
		cfg.Server.Addr = raw.Server.Addr
	}
	if err := parseDuration(raw.Server.ReadTimeout, "server.read_timeout", &cfg.Server.ReadTimeout); err != nil {
		return nil, err
	}
	if err := parseDuration(raw.Server.WriteTimeout, "server.write_timeout", &cfg.Server.WriteTimeout); err != nil {
		return nil, err
	}
	if err := parseDuration(raw.Fetch.Timeout, "fetch.timeout", &cfg.Fetch.Timeout); err != nil {
		return nil, err
	}
	if raw.Fetch.UserAgent != "" {
		cfg.Fetch.UserAgent = raw.Fetch.UserAgent
	}

	cfg.Aggregation.AllowPartial = raw.Aggregation.AllowPartial

	if raw.RateLimit.RequestsPerSecond != nil {
		cfg.RateLimit.RequestsPerSecond = *raw.RateLimit.RequestsPerSecond
	}
	if raw.RateLimit.Burst != nil {
		cfg.RateLimit.Burst = *raw.RateLimit.Burst
	}

	if len(raw.Sources) > 0 {
		cfg.Sources = mergeSources(raw.Sources)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when path does not
// exist and required is false.
func LoadOrDefault(path string, required bool) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && !required && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// mergeSources applies URL overrides to the default source list. Sources are
// always returned in the fixed pipeline order. Unknown names are kept so
// validate can reject them.
func mergeSources(overrides []SourceConfig) []SourceConfig {
	out := defaultSources()
	for _, o := range overrides {
		matched := false
		for i := range out {
			if out[i].Name == o.Name {
				out[i].URL = o.URL
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, o)
		}
	}
	return out
}

func parseDuration(raw, field string, dst *time.Duration) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse %s %q: %w", field, raw, err)
	}
	*dst = d
	return nil
}

func validate(cfg *Config) error {
	if cfg.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive, got %v", cfg.Fetch.Timeout)
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be positive, got %v", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be positive, got %d", cfg.RateLimit.Burst)
	}

	seen := make(map[model.Source]bool)
	for _, s := range cfg.Sources {
		if !s.Name.Valid() {
			return fmt.Errorf("unknown source %q", s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("source %q listed more than once", s.Name)
		}
		seen[s.Name] = true
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
	}

	return nil
}
