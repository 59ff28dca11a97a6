package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync/atomic"

	"github.com/seolab/kwscout/internal/domain/intent"
	"github.com/seolab/kwscout/internal/domain/model"
	"github.com/seolab/kwscout/internal/provider/ratelimit"
	"github.com/seolab/kwscout/pkg/logger"
	"github.com/seolab/kwscout/pkg/metrics"
)

const (
	dataForSEODefaultBaseURL = "https://api.dataforseo.com"
	dataForSEOBatchCap       = 50
	dataForSEOResultCap      = 100
	dataForSEOOKStatus       = 20000
)

// dataForSEO queries the DataForSEO Labs keyword suggestions endpoint in one
// batched call per fetch.
type dataForSEO struct {
	login    string
	password string
	baseURL  string
	limiter  *ratelimit.Limiter
	fetcher  *httpFetcher
	log      logger.Logger
	disabled atomic.Bool
}

func newDataForSEO(login, password string, limiter *ratelimit.Limiter, cfg registryConfig) *dataForSEO {
	baseURL := cfg.dataForSEOBaseURL
	if baseURL == "" {
		baseURL = dataForSEODefaultBaseURL
	}
	return &dataForSEO{
		login:    login,
		password: password,
		baseURL:  baseURL,
		limiter:  limiter,
		fetcher:  newHTTPFetcher(cfg.fetchTimeout, cfg.retries, cfg.backoff),
		log:      cfg.log.Named("dataforseo"),
	}
}

func (d *dataForSEO) Name() string { return NameDataForSEO }

// Fetch issues one batched request for the first 50 keywords. Any failure is
// logged and yields an empty result.
func (d *dataForSEO) Fetch(ctx context.Context, keywords []string) []model.Observation {
	if d.disabled.Load() || len(keywords) == 0 {
		return nil
	}
	return instrumentedFetch(ctx, NameDataForSEO, func(ctx context.Context) []model.Observation {
		obs, err := d.fetch(ctx, keywords)
		if err != nil {
			d.fail(ctx, err)
			return nil
		}
		return obs
	})
}

func (d *dataForSEO) fetch(ctx context.Context, keywords []string) ([]model.Observation, error) {
	if err := d.limiter.Acquire(ctx, NameDataForSEO); err != nil {
		return nil, err
	}

	if len(keywords) > dataForSEOBatchCap {
		keywords = keywords[:dataForSEOBatchCap]
	}
	payload := []map[string]any{{
		"keywords":          keywords,
		"language_name":     "English",
		"location_code":     2840,
		"include_serp_info": true,
	}}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	raw, err := d.fetcher.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			d.baseURL+"/v3/dataforseo_labs/google/keyword_suggestions/live", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(d.login, d.password)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	return d.parse(raw)
}

type dfsResponse struct {
	StatusCode int       `json:"status_code"`
	Tasks      []dfsTask `json:"tasks"`
}

type dfsTask struct {
	StatusCode int         `json:"status_code"`
	Result     []dfsResult `json:"result"`
}

type dfsResult struct {
	Items []dfsItem `json:"items"`
}

type dfsItem struct {
	Keyword     string         `json:"keyword"`
	KeywordInfo dfsKeywordInfo `json:"keyword_info"`
}

type dfsKeywordInfo struct {
	SearchVolume int     `json:"search_volume"`
	CPC          float64 `json:"cpc"`
	Competition  float64 `json:"competition"`
	Trend        []int   `json:"search_volume_trend"`
}

func (d *dataForSEO) parse(raw []byte) ([]model.Observation, error) {
	var resp dfsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if resp.StatusCode != dataForSEOOKStatus {
		return nil, fmt.Errorf("%w: api status %d", ErrParse, resp.StatusCode)
	}

	var out []model.Observation
	for _, task := range resp.Tasks {
		if task.StatusCode != dataForSEOOKStatus {
			continue
		}
		for _, result := range task.Result {
			for _, item := range result.Items {
				obs := model.NewObservation(item.Keyword, NameDataForSEO)
				obs.SearchVolume = item.KeywordInfo.SearchVolume
				obs.CPC = item.KeywordInfo.CPC
				obs.Competition = competitionFromScore(item.KeywordInfo.Competition)
				obs.Difficulty = int(math.Round(item.KeywordInfo.Competition * 100))
				obs.Intent = intent.Classify(item.Keyword)
				obs.TrendData = item.KeywordInfo.Trend
				out = append(out, obs)
				if len(out) >= dataForSEOResultCap {
					return out, nil
				}
			}
		}
	}
	return out, nil
}

func (d *dataForSEO) fail(ctx context.Context, err error) {
	metrics.RecordProviderError(NameDataForSEO)
	if errors.Is(err, ErrAuth) {
		d.disabled.Store(true)
		metrics.RecordProviderDisabled(NameDataForSEO)
		d.log.Warn(ctx, "authentication rejected, provider disabled for this run", logger.Error(err))
		return
	}
	d.log.Warn(ctx, "fetch failed, contributing no observations", logger.Error(err))
}
