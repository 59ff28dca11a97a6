package provider

import (
	"time"

	"github.com/seolab/kwscout/pkg/logger"
)

// registryConfig carries shared settings applied to every network provider.
type registryConfig struct {
	fetchTimeout time.Duration
	workers      int
	retries      int
	backoff      time.Duration
	log          logger.Logger

	// Endpoint overrides, used by tests to point providers at local servers.
	dataForSEOBaseURL string
	serpAPIBaseURL    string
	semrushBaseURL    string
}

// RegistryOption applies a configuration option to the provider registry.
type RegistryOption func(*registryConfig)

// WithFetchTimeout bounds each provider's HTTP requests.
func WithFetchTimeout(d time.Duration) RegistryOption {
	return func(c *registryConfig) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithWorkers sets the bounded concurrency for per-keyword providers.
func WithWorkers(n int) RegistryOption {
	return func(c *registryConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithRetries sets the number of retries for transient transport errors.
func WithRetries(n int, backoff time.Duration) RegistryOption {
	return func(c *registryConfig) {
		if n >= 0 {
			c.retries = n
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

// WithLogger sets a custom logger for the providers.
func WithLogger(log logger.Logger) RegistryOption {
	return func(c *registryConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDataForSEOBaseURL overrides the DataForSEO endpoint.
func WithDataForSEOBaseURL(u string) RegistryOption {
	return func(c *registryConfig) { c.dataForSEOBaseURL = u }
}

// WithSerpAPIBaseURL overrides the SerpApi endpoint.
func WithSerpAPIBaseURL(u string) RegistryOption {
	return func(c *registryConfig) { c.serpAPIBaseURL = u }
}

// WithSEMrushBaseURL overrides the SEMrush endpoint.
func WithSEMrushBaseURL(u string) RegistryOption {
	return func(c *registryConfig) { c.semrushBaseURL = u }
}
