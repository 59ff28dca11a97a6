package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/seolab/kwscout/internal/domain/model"
	"github.com/seolab/kwscout/internal/provider"
	"github.com/seolab/kwscout/internal/provider/ratelimit"
	. "github.com/smartystreets/goconvey/convey"
)

// noDelay builds a limiter that never waits, for fast tests.
func noDelay() *ratelimit.Limiter {
	return ratelimit.New(ratelimit.WithDefaultDelay(0))
}

// networkClient returns the first (network-backed) client of the registry.
func networkClient(r *provider.Registry) provider.Client {
	return r.Clients()[0]
}

func TestDataForSEOFetch(t *testing.T) {
	Convey("Given a DataForSEO endpoint returning one task", t, func() {
		var gotAuth atomic.Bool
		var gotPath atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath.Store(r.URL.Path)
			if user, pass, ok := r.BasicAuth(); ok && user == "login" && pass == "secret" {
				gotAuth.Store(true)
			}
			resp := map[string]any{
				"status_code": 20000,
				"tasks": []map[string]any{{
					"status_code": 20000,
					"result": []map[string]any{{
						"items": []map[string]any{
							{
								"keyword": "buy snow tires",
								"keyword_info": map[string]any{
									"search_volume":       5400,
									"cpc":                 2.35,
									"competition":         0.82,
									"search_volume_trend": []int{100, 110, 120},
								},
							},
							{
								"keyword": "snow tire guide",
								"keyword_info": map[string]any{
									"search_volume": 880,
									"cpc":           0.45,
									"competition":   0.21,
								},
							},
						},
					}},
				}},
			}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer srv.Close()

		registry := provider.NewRegistry(
			provider.Credentials{DataForSEOLogin: "login", DataForSEOPassword: "secret"},
			noDelay(),
			provider.WithDataForSEOBaseURL(srv.URL),
		)
		client := networkClient(registry)

		Convey("The client identifies itself and hits the suggestions endpoint", func() {
			observations := client.Fetch(context.Background(), []string{"snow tires"})

			So(client.Name(), ShouldEqual, provider.NameDataForSEO)
			So(gotPath.Load(), ShouldEqual, "/v3/dataforseo_labs/google/keyword_suggestions/live")
			So(gotAuth.Load(), ShouldBeTrue)
			So(observations, ShouldHaveLength, 2)
		})

		Convey("Observations map the API fields and derive the rest", func() {
			observations := client.Fetch(context.Background(), []string{"snow tires"})

			first := observations[0]
			So(first.Keyword, ShouldEqual, "buy snow tires")
			So(first.SearchVolume, ShouldEqual, 5400)
			So(first.CPC, ShouldEqual, 2.35)
			So(first.Competition, ShouldEqual, model.CompetitionHigh)
			So(first.Difficulty, ShouldEqual, 82)
			So(first.Intent, ShouldEqual, model.IntentCommercial)
			So(first.TrendData, ShouldResemble, []int{100, 110, 120})
			So(first.Source, ShouldEqual, provider.NameDataForSEO)

			second := observations[1]
			So(second.Competition, ShouldEqual, model.CompetitionLow)
			So(second.Difficulty, ShouldEqual, 21)
		})
	})

	Convey("Given an API-level error status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"status_code": 40101})
		}))
		defer srv.Close()

		registry := provider.NewRegistry(
			provider.Credentials{DataForSEOLogin: "l", DataForSEOPassword: "p"},
			noDelay(),
			provider.WithDataForSEOBaseURL(srv.URL),
		)

		Convey("The fetch degrades to no observations", func() {
			So(networkClient(registry).Fetch(context.Background(), []string{"kw"}), ShouldBeEmpty)
		})
	})

	Convey("Given an endpoint that rejects credentials", t, func() {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		registry := provider.NewRegistry(
			provider.Credentials{DataForSEOLogin: "l", DataForSEOPassword: "bad"},
			noDelay(),
			provider.WithDataForSEOBaseURL(srv.URL),
		)
		client := networkClient(registry)

		Convey("The provider disables itself after the first rejection", func() {
			So(client.Fetch(context.Background(), []string{"kw"}), ShouldBeEmpty)
			So(client.Fetch(context.Background(), []string{"kw"}), ShouldBeEmpty)
			So(calls.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given an endpoint that fails once with a 500", t, func() {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status_code": 20000,
				"tasks": []map[string]any{{
					"status_code": 20000,
					"result": []map[string]any{{
						"items": []map[string]any{{
							"keyword":      "kw",
							"keyword_info": map[string]any{"search_volume": 10},
						}},
					}},
				}},
			})
		}))
		defer srv.Close()

		registry := provider.NewRegistry(
			provider.Credentials{DataForSEOLogin: "l", DataForSEOPassword: "p"},
			noDelay(),
			provider.WithDataForSEOBaseURL(srv.URL),
			provider.WithRetries(2, 1),
		)

		Convey("The retry recovers the batch", func() {
			observations := networkClient(registry).Fetch(context.Background(), []string{"kw"})
			So(observations, ShouldHaveLength, 1)
			So(calls.Load(), ShouldEqual, 2)
		})
	})

	Convey("Given no keywords", t, func() {
		registry := provider.NewRegistry(
			provider.Credentials{DataForSEOLogin: "l", DataForSEOPassword: "p"},
			noDelay(),
			provider.WithDataForSEOBaseURL("http://127.0.0.1:0"),
		)

		Convey("The fetch short-circuits", func() {
			So(networkClient(registry).Fetch(context.Background(), nil), ShouldBeEmpty)
		})
	})
}
