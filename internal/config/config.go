// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers an optional YAML file and env vars.
// - External errors are wrapped via this package's sentinel errors.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Provider credentials. An empty credential disables that provider.
	DataForSEOLogin    string `koanf:"dataforseo_login"`
	DataForSEOPassword string `koanf:"dataforseo_password"`
	SerpAPIKey         string `koanf:"serpapi_key"`
	SEMrushKey         string `koanf:"semrush_key"`

	// RateLimitMS is the per-provider minimum delay between calls.
	RateLimitMS map[string]int `koanf:"rate_limit_ms"`

	// FetchTimeoutMS bounds each provider HTTP request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// ResearchDeadlineMS bounds the whole fan-out for one run.
	ResearchDeadlineMS int `koanf:"research_deadline_ms"`

	// FetchWorkers bounds concurrency for per-keyword providers.
	FetchWorkers int `koanf:"fetch_workers"`

	// FetchRetries and FetchBackoffMS control transient-error retries.
	FetchRetries   int `koanf:"fetch_retries"`
	FetchBackoffMS int `koanf:"fetch_backoff_ms"`

	// MaxResults caps the final ranked record list.
	MaxResults int `koanf:"max_results"`
}

// Default configuration values.
const (
	defaultAddr            = ":9090"
	defaultRateLimitMS     = 1000
	defaultFetchTimeoutMS  = 30_000
	defaultDeadlineMS      = 120_000
	defaultFetchWorkers    = 4
	defaultFetchRetries    = 2
	defaultFetchBackoffMS  = 500
	defaultMaxResults      = 100
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Addr:     defaultAddr,
		RateLimitMS: map[string]int{
			"DataForSEO": defaultRateLimitMS,
			"SerpApi":    defaultRateLimitMS,
			"SEMrush":    defaultRateLimitMS,
		},
		FetchTimeoutMS:     defaultFetchTimeoutMS,
		ResearchDeadlineMS: defaultDeadlineMS,
		FetchWorkers:       defaultFetchWorkers,
		FetchRetries:       defaultFetchRetries,
		FetchBackoffMS:     defaultFetchBackoffMS,
		MaxResults:         defaultMaxResults,
	}
}

// FetchTimeout returns the per-request timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// ResearchDeadline returns the overall fan-out deadline as a duration.
func (c *Config) ResearchDeadline() time.Duration {
	return time.Duration(c.ResearchDeadlineMS) * time.Millisecond
}

// FetchBackoff returns the retry backoff as a duration.
func (c *Config) FetchBackoff() time.Duration {
	return time.Duration(c.FetchBackoffMS) * time.Millisecond
}

// ProviderDelay returns the configured delay for a provider id, falling back
// to the default network-provider delay.
func (c *Config) ProviderDelay(providerID string) time.Duration {
	if ms, ok := c.RateLimitMS[providerID]; ok && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultRateLimitMS * time.Millisecond
}
