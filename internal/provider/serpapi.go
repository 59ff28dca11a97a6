package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/seolab/kwscout/internal/domain/intent"
	"github.com/seolab/kwscout/internal/domain/model"
	"github.com/seolab/kwscout/internal/provider/ratelimit"
	"github.com/seolab/kwscout/pkg/logger"
	"github.com/seolab/kwscout/pkg/metrics"
)

const (
	serpAPIDefaultBaseURL = "https://serpapi.com"
	serpAPIKeywordCap     = 20
	serpAPIRelatedCap     = 10
	serpAPIAnswerCap      = 5
)

// serpAPI issues one SERP request per keyword and derives metrics from the
// result shape: volume from the organic result count, cpc and difficulty
// from keyword-text heuristics, related keywords from ancillary fields.
type serpAPI struct {
	key      string
	baseURL  string
	limiter  *ratelimit.Limiter
	fetcher  *httpFetcher
	workers  int
	log      logger.Logger
	disabled atomic.Bool
}

func newSerpAPI(key string, limiter *ratelimit.Limiter, cfg registryConfig) *serpAPI {
	baseURL := cfg.serpAPIBaseURL
	if baseURL == "" {
		baseURL = serpAPIDefaultBaseURL
	}
	return &serpAPI{
		key:     key,
		baseURL: baseURL,
		limiter: limiter,
		fetcher: newHTTPFetcher(cfg.fetchTimeout, cfg.retries, cfg.backoff),
		workers: cfg.workers,
		log:     cfg.log.Named("serpapi"),
	}
}

func (s *serpAPI) Name() string { return NameSerpAPI }

// Fetch queries the first 20 keywords through the bounded worker pool, each
// request gated by the shared rate limiter. Per-keyword failures drop that
// keyword only.
func (s *serpAPI) Fetch(ctx context.Context, keywords []string) []model.Observation {
	if s.disabled.Load() || len(keywords) == 0 {
		return nil
	}
	if len(keywords) > serpAPIKeywordCap {
		keywords = keywords[:serpAPIKeywordCap]
	}
	return instrumentedFetch(ctx, NameSerpAPI, func(ctx context.Context) []model.Observation {
		return fetchEach(ctx, keywords, s.workers, s.fetchOne)
	})
}

func (s *serpAPI) fetchOne(ctx context.Context, keyword string) []model.Observation {
	if s.disabled.Load() {
		return nil
	}
	obs, err := s.query(ctx, keyword)
	if err != nil {
		s.fail(ctx, keyword, err)
		return nil
	}
	return []model.Observation{obs}
}

type serpResponse struct {
	OrganicResults []json.RawMessage `json:"organic_results"`
	PeopleAlsoAsk  []struct {
		Question string `json:"question"`
	} `json:"people_also_ask"`
	RelatedSearches []struct {
		Query string `json:"query"`
	} `json:"related_searches"`
}

func (s *serpAPI) query(ctx context.Context, keyword string) (model.Observation, error) {
	if err := s.limiter.Acquire(ctx, NameSerpAPI); err != nil {
		return model.Observation{}, err
	}

	raw, err := s.fetcher.do(ctx, func(ctx context.Context) (*http.Request, error) {
		q := url.Values{}
		q.Set("q", keyword)
		q.Set("engine", "google")
		q.Set("api_key", s.key)
		q.Set("location", "United States")
		q.Set("gl", "us")
		q.Set("hl", "en")
		return http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+q.Encode(), nil)
	})
	if err != nil {
		return model.Observation{}, err
	}

	var resp serpResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.Observation{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	obs := model.NewObservation(keyword, NameSerpAPI)
	obs.SearchVolume = volumeFromResultCount(len(resp.OrganicResults))
	obs.CPC = estimateCPC(keyword)
	obs.Competition = estimateCompetition(keyword)
	obs.Difficulty = estimateDifficulty(keyword)
	obs.Intent = intent.Classify(keyword)
	obs.RelatedKeywords = relatedFrom(resp)
	return obs, nil
}

// relatedFrom collects up to 5 "people also ask" questions and 5 related
// searches, capped at 10 total.
func relatedFrom(resp serpResponse) []string {
	var related []string
	for i, item := range resp.PeopleAlsoAsk {
		if i >= serpAPIAnswerCap {
			break
		}
		if item.Question != "" {
			related = append(related, item.Question)
		}
	}
	for i, item := range resp.RelatedSearches {
		if i >= serpAPIAnswerCap {
			break
		}
		if item.Query != "" {
			related = append(related, item.Query)
		}
	}
	if len(related) > serpAPIRelatedCap {
		related = related[:serpAPIRelatedCap]
	}
	return related
}

func (s *serpAPI) fail(ctx context.Context, keyword string, err error) {
	metrics.RecordProviderError(NameSerpAPI)
	if errors.Is(err, ErrAuth) {
		s.disabled.Store(true)
		metrics.RecordProviderDisabled(NameSerpAPI)
		s.log.Warn(ctx, "authentication rejected, provider disabled for this run", logger.Error(err))
		return
	}
	s.log.Warn(ctx, "keyword fetch failed", logger.String("keyword", keyword), logger.Error(err))
}
