// Package provider defines the keyword metrics provider capability and its
// closed set of variants.
package provider

import (
	"context"
	"time"

	"github.com/seolab/kwscout/internal/domain/model"
	"github.com/seolab/kwscout/internal/provider/ratelimit"
	"github.com/seolab/kwscout/pkg/logger"
	"github.com/seolab/kwscout/pkg/metrics"
)

// Provider identifiers, also used as observation source tags.
const (
	NameDataForSEO = "DataForSEO"
	NameSerpAPI    = "SerpApi"
	NameSEMrush    = "SEMrush"
	NameGenerated  = "Generated"
)

// Client fetches raw metric observations for a batch of keywords from one
// source. Fetch never fails: transport, authentication and payload-shape
// errors are caught internally, logged, and converted to an empty result.
// Implementations may truncate the input batch to their own maximum size.
type Client interface {
	Name() string
	Fetch(ctx context.Context, keywords []string) []model.Observation
}

// Credentials holds the out-of-band provider secrets. An empty credential
// disables the corresponding provider without error.
type Credentials struct {
	DataForSEOLogin    string
	DataForSEOPassword string
	SerpAPIKey         string
	SEMrushKey         string
}

// Registry is the active set of providers for a run, in fixed priority
// order. The heuristic generator is always last and always present.
type Registry struct {
	clients []Client
}

// NewRegistry selects the enabled providers based on which credentials are
// present and appends the always-available heuristic generator.
func NewRegistry(creds Credentials, limiter *ratelimit.Limiter, opts ...RegistryOption) *Registry {
	cfg := registryConfig{
		fetchTimeout: 30 * time.Second,
		workers:      4,
		retries:      2,
		backoff:      500 * time.Millisecond,
		log:          logger.Named("provider"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{}
	if creds.DataForSEOLogin != "" && creds.DataForSEOPassword != "" {
		r.clients = append(r.clients, newDataForSEO(creds.DataForSEOLogin, creds.DataForSEOPassword, limiter, cfg))
	}
	if creds.SerpAPIKey != "" {
		r.clients = append(r.clients, newSerpAPI(creds.SerpAPIKey, limiter, cfg))
	}
	if creds.SEMrushKey != "" {
		r.clients = append(r.clients, newSEMrush(creds.SEMrushKey, limiter, cfg))
	}
	r.clients = append(r.clients, NewGenerated())
	return r
}

// Clients returns the active providers in priority order.
func (r *Registry) Clients() []Client {
	return r.clients
}

// NetworkCount reports how many network-backed providers are enabled.
func (r *Registry) NetworkCount() int {
	n := 0
	for _, c := range r.clients {
		if c.Name() != NameGenerated {
			n++
		}
	}
	return n
}

// instrumentedFetch wraps a fetch call with duration and observation metrics.
func instrumentedFetch(ctx context.Context, name string, fetch func(ctx context.Context) []model.Observation) []model.Observation {
	start := time.Now()
	obs := fetch(ctx)
	metrics.RecordProviderFetch(name, time.Since(start).Seconds())
	metrics.RecordProviderObservations(name, len(obs))
	return obs
}
