package provider

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/seolab/kwscout/internal/domain/intent"
	"github.com/seolab/kwscout/internal/domain/model"
	"github.com/seolab/kwscout/internal/provider/ratelimit"
	"github.com/seolab/kwscout/pkg/logger"
	"github.com/seolab/kwscout/pkg/metrics"
)

const (
	semrushDefaultBaseURL = "https://api.semrush.com"
	semrushKeywordCap     = 20
	semrushMinColumns     = 6
)

// semrush queries the SEMrush columnar text API one keyword at a time and
// parses its semicolon-delimited response.
type semrush struct {
	key      string
	baseURL  string
	limiter  *ratelimit.Limiter
	fetcher  *httpFetcher
	workers  int
	log      logger.Logger
	disabled atomic.Bool
}

func newSEMrush(key string, limiter *ratelimit.Limiter, cfg registryConfig) *semrush {
	baseURL := cfg.semrushBaseURL
	if baseURL == "" {
		baseURL = semrushDefaultBaseURL
	}
	return &semrush{
		key:     key,
		baseURL: baseURL,
		limiter: limiter,
		fetcher: newHTTPFetcher(cfg.fetchTimeout, cfg.retries, cfg.backoff),
		workers: cfg.workers,
		log:     cfg.log.Named("semrush"),
	}
}

func (s *semrush) Name() string { return NameSEMrush }

// Fetch queries the first 20 keywords through the bounded worker pool.
func (s *semrush) Fetch(ctx context.Context, keywords []string) []model.Observation {
	if s.disabled.Load() || len(keywords) == 0 {
		return nil
	}
	if len(keywords) > semrushKeywordCap {
		keywords = keywords[:semrushKeywordCap]
	}
	return instrumentedFetch(ctx, NameSEMrush, func(ctx context.Context) []model.Observation {
		return fetchEach(ctx, keywords, s.workers, s.fetchOne)
	})
}

func (s *semrush) fetchOne(ctx context.Context, keyword string) []model.Observation {
	if s.disabled.Load() {
		return nil
	}
	obs, err := s.query(ctx, keyword)
	if err != nil {
		s.fail(ctx, keyword, err)
		return nil
	}
	return obs
}

func (s *semrush) query(ctx context.Context, keyword string) ([]model.Observation, error) {
	if err := s.limiter.Acquire(ctx, NameSEMrush); err != nil {
		return nil, err
	}

	raw, err := s.fetcher.do(ctx, func(ctx context.Context) (*http.Request, error) {
		q := url.Values{}
		q.Set("type", "phrase_these")
		q.Set("key", s.key)
		q.Set("phrase", keyword)
		q.Set("database", "us")
		q.Set("export_columns", "Ph,Nq,Cp,Co,Nr,Td")
		return http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/?"+q.Encode(), nil)
	})
	if err != nil {
		return nil, err
	}

	return parseSemrush(string(raw)), nil
}

// parseSemrush reads the columnar response: a header line followed by
// semicolon-delimited rows of Ph;Nq;Cp;Co;Nr;Td. Rows with fewer than six
// columns are skipped; non-numeric fields default to zero.
func parseSemrush(body string) []model.Observation {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < 2 {
		return nil
	}

	var out []model.Observation
	for _, line := range lines[1:] {
		parts := strings.Split(strings.TrimSpace(line), ";")
		if line == "" || len(parts) < semrushMinColumns {
			continue
		}

		competition := parseFloatOrZero(parts[3])
		obs := model.NewObservation(parts[0], NameSEMrush)
		obs.SearchVolume = parseIntOrZero(parts[1])
		obs.CPC = parseFloatOrZero(parts[2])
		obs.Competition = competitionFromScore(competition)
		obs.Difficulty = int(competition * 100)
		obs.Intent = intent.Classify(parts[0])
		out = append(out, obs)
	}
	return out
}

func parseIntOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseFloatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func (s *semrush) fail(ctx context.Context, keyword string, err error) {
	metrics.RecordProviderError(NameSEMrush)
	if errors.Is(err, ErrAuth) {
		s.disabled.Store(true)
		metrics.RecordProviderDisabled(NameSEMrush)
		s.log.Warn(ctx, "authentication rejected, provider disabled for this run", logger.Error(err))
		return
	}
	s.log.Warn(ctx, "keyword fetch failed", logger.String("keyword", keyword), logger.Error(err))
}
