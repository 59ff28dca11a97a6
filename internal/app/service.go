// Package app orchestrates the keyword research pipeline: concurrent
// provider fan-out, merge, scoring, ranking and summary statistics.
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seolab/kwscout/internal/domain/merge"
	"github.com/seolab/kwscout/internal/domain/model"
	"github.com/seolab/kwscout/internal/domain/rank"
	"github.com/seolab/kwscout/internal/domain/score"
	"github.com/seolab/kwscout/internal/domain/stats"
	"github.com/seolab/kwscout/internal/provider"
	"github.com/seolab/kwscout/pkg/logger"
	"github.com/seolab/kwscout/pkg/metrics"
)

// defaultDeadline bounds one research run when no option overrides it.
const defaultDeadline = 2 * time.Minute

// Request carries one research invocation. Budget and Goals are optional;
// without them records keep only their opportunity score.
type Request struct {
	Seeds  []string
	Budget model.BudgetTier
	Goals  []model.CampaignGoal
}

// analyzed reports whether campaign-context scoring applies.
func (r Request) analyzed() bool {
	return r.Budget != "" || len(r.Goals) > 0
}

// Result is the output of one research run.
type Result struct {
	RunID   string          `json:"run_id"`
	Records []model.Record  `json:"keywords"`
	Summary *stats.Summary  `json:"summary"`
}

// Service runs the research pipeline against an active provider set.
type Service struct {
	registry   *provider.Registry
	deadline   time.Duration
	maxResults int
	log        logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithResearchDeadline bounds the whole provider fan-out for one run.
func WithResearchDeadline(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.deadline = d
		}
	}
}

// WithMaxResults caps the final ranked record list.
func WithMaxResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service over the given provider registry.
func New(registry *provider.Registry, opts ...Option) *Service {
	s := &Service{
		registry:   registry,
		deadline:   defaultDeadline,
		maxResults: rank.DefaultCap,
		log:        logger.Named("research"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Research runs the full pipeline for the given seeds. Provider failures
// degrade silently to fewer observations; only an empty seed list or a
// zero-record outcome is an error.
func (s *Service) Research(ctx context.Context, req Request) (Result, error) {
	seeds := cleanSeeds(req.Seeds)
	if len(seeds) == 0 {
		metrics.RecordResearchFailure()
		return Result{}, ErrNoSeeds
	}

	runID := uuid.NewString()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	observations := s.fanOut(ctx, runID, seeds)

	records, multiSource := merge.Merge(observations)
	metrics.RecordMerge(len(observations), multiSource)
	if len(records) == 0 {
		metrics.RecordResearchFailure()
		return Result{}, ErrNoResults
	}

	score.ApplyOpportunity(records)
	if req.analyzed() {
		score.NewAnalyzer(req.Budget, req.Goals).Apply(records)
	}

	ranked := rank.Rank(records, s.maxResults)
	summary := stats.Compute(ranked)

	elapsed := time.Since(start)
	metrics.RecordResearchRun(elapsed.Seconds(), len(ranked))
	s.log.Info(ctx, "research run complete",
		logger.String("runID", runID),
		logger.Int("seeds", len(seeds)),
		logger.Int("observations", len(observations)),
		logger.Int("records", len(ranked)),
		logger.Duration("elapsed", elapsed),
	)

	return Result{RunID: runID, Records: ranked, Summary: summary}, nil
}

// fanOut schedules every enabled provider at once and gathers their
// observations behind a barrier. Results are concatenated in registry
// priority order so merging stays deterministic regardless of which
// provider finishes first. A failing or panicking provider contributes an
// empty slice without affecting its siblings.
func (s *Service) fanOut(ctx context.Context, runID string, seeds []string) []model.Observation {
	clients := s.registry.Clients()
	results := make([][]model.Observation, len(clients))

	var wg sync.WaitGroup
	for i, client := range clients {
		wg.Add(1)
		go func(i int, client provider.Client) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.log.Error(ctx, "provider panicked",
						logger.String("runID", runID),
						logger.String("provider", client.Name()),
						logger.Any("panic", r),
					)
				}
			}()
			results[i] = client.Fetch(ctx, seeds)
		}(i, client)
	}
	wg.Wait()

	var all []model.Observation
	for i, obs := range results {
		if len(obs) == 0 {
			s.log.Debug(ctx, "provider contributed no observations",
				logger.String("runID", runID),
				logger.String("provider", clients[i].Name()),
			)
			continue
		}
		all = append(all, obs...)
	}
	return all
}

// cleanSeeds trims seeds and drops empty entries.
func cleanSeeds(seeds []string) []string {
	out := make([]string, 0, len(seeds))
	for _, s := range seeds {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
