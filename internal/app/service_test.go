package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seolab/kwscout/internal/app"
	"github.com/seolab/kwscout/internal/domain/model"
	"github.com/seolab/kwscout/internal/provider"
	"github.com/seolab/kwscout/internal/provider/ratelimit"
	. "github.com/smartystreets/goconvey/convey"
)

func generatorOnly() *provider.Registry {
	return provider.NewRegistry(provider.Credentials{}, ratelimit.New(ratelimit.WithDefaultDelay(0)))
}

func TestResearch(t *testing.T) {
	Convey("Given a service with no provider credentials", t, func() {
		svc := app.New(generatorOnly())

		Convey("A seed list still produces ranked records from the generator", func() {
			result, err := svc.Research(context.Background(), app.Request{Seeds: []string{"tire dealers"}})

			So(err, ShouldBeNil)
			So(result.RunID, ShouldNotBeBlank)
			So(result.Records, ShouldNotBeEmpty)
			So(len(result.Records), ShouldBeLessThanOrEqualTo, 50)

			for _, r := range result.Records {
				So(r.Sources, ShouldResemble, []string{provider.NameGenerated})
				So(r.OpportunityScore, ShouldBeGreaterThan, 0)
				So(r.Analyzed, ShouldBeFalse)
			}
		})

		Convey("Records come out sorted by their rank score", func() {
			result, err := svc.Research(context.Background(), app.Request{Seeds: []string{"tire dealers"}})

			So(err, ShouldBeNil)
			for i := 1; i < len(result.Records); i++ {
				So(result.Records[i-1].RankScore(), ShouldBeGreaterThanOrEqualTo, result.Records[i].RankScore())
			}
		})

		Convey("The summary covers the final record list", func() {
			result, err := svc.Research(context.Background(), app.Request{Seeds: []string{"tire dealers"}})

			So(err, ShouldBeNil)
			So(result.Summary, ShouldNotBeNil)
			So(result.Summary.TotalKeywords, ShouldEqual, len(result.Records))
			So(result.Summary.Insights, ShouldHaveLength, 4)
		})

		Convey("Each run gets a distinct id", func() {
			first, _ := svc.Research(context.Background(), app.Request{Seeds: []string{"a"}})
			second, _ := svc.Research(context.Background(), app.Request{Seeds: []string{"a"}})
			So(first.RunID, ShouldNotEqual, second.RunID)
		})

		Convey("An empty seed list fails fast", func() {
			_, err := svc.Research(context.Background(), app.Request{})
			So(errors.Is(err, app.ErrNoSeeds), ShouldBeTrue)
		})

		Convey("Whitespace-only seeds count as empty", func() {
			_, err := svc.Research(context.Background(), app.Request{Seeds: []string{"  ", "\t"}})
			So(errors.Is(err, app.ErrNoSeeds), ShouldBeTrue)
		})
	})

	Convey("Given a budget and campaign goals", t, func() {
		svc := app.New(generatorOnly())

		result, err := svc.Research(context.Background(), app.Request{
			Seeds:  []string{"tire dealers"},
			Budget: model.BudgetMedium,
			Goals:  []model.CampaignGoal{model.GoalLeadGeneration},
		})

		Convey("Every record carries the campaign-context scores", func() {
			So(err, ShouldBeNil)
			for _, r := range result.Records {
				So(r.Analyzed, ShouldBeTrue)
				So(r.EnhancedScore, ShouldBeGreaterThan, 0)
				So(r.Recommendation, ShouldNotBeBlank)
				So(r.CompetitionAnalysis.Strategy, ShouldNotBeBlank)
			}
		})

		Convey("Ranking switches to the enhanced score", func() {
			for i := 1; i < len(result.Records); i++ {
				So(result.Records[i-1].EnhancedScore, ShouldBeGreaterThanOrEqualTo, result.Records[i].EnhancedScore)
			}
		})
	})

	Convey("Given a budget tier alone", t, func() {
		svc := app.New(generatorOnly())

		result, err := svc.Research(context.Background(), app.Request{
			Seeds:  []string{"tire dealers"},
			Budget: model.BudgetLow,
		})

		Convey("Campaign scoring still applies", func() {
			So(err, ShouldBeNil)
			So(result.Records[0].Analyzed, ShouldBeTrue)
			So(result.Records[0].GoalAlignmentScore, ShouldEqual, 0)
		})
	})

	Convey("Given a network provider alongside the generator", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status_code": 20000,
				"tasks": []map[string]any{{
					"status_code": 20000,
					"result": []map[string]any{{
						"items": []map[string]any{{
							"keyword": "best tire dealers",
							"keyword_info": map[string]any{
								"search_volume": 9000,
								"cpc":           2.10,
								"competition":   0.5,
							},
						}},
					}},
				}},
			})
		}))
		defer srv.Close()

		registry := provider.NewRegistry(
			provider.Credentials{DataForSEOLogin: "l", DataForSEOPassword: "p"},
			ratelimit.New(ratelimit.WithDefaultDelay(0)),
			provider.WithDataForSEOBaseURL(srv.URL),
		)
		svc := app.New(registry)

		result, err := svc.Research(context.Background(), app.Request{Seeds: []string{"tire dealers"}})

		Convey("Observations from both sources merge into one record set", func() {
			So(err, ShouldBeNil)
			So(result.Records, ShouldNotBeEmpty)

			var merged *model.Record
			for i := range result.Records {
				if result.Records[i].Keyword == "best tire dealers" {
					merged = &result.Records[i]
					break
				}
			}
			So(merged, ShouldNotBeNil)
			So(merged.Sources, ShouldContain, provider.NameDataForSEO)
			So(merged.Sources, ShouldContain, provider.NameGenerated)
		})
	})

	Convey("Given a failing network provider", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		registry := provider.NewRegistry(
			provider.Credentials{SerpAPIKey: "k"},
			ratelimit.New(ratelimit.WithDefaultDelay(0)),
			provider.WithSerpAPIBaseURL(srv.URL),
			provider.WithRetries(0, 1),
		)
		svc := app.New(registry)

		Convey("The run still succeeds on generator output alone", func() {
			result, err := svc.Research(context.Background(), app.Request{Seeds: []string{"tire dealers"}})

			So(err, ShouldBeNil)
			So(result.Records, ShouldNotBeEmpty)
			for _, r := range result.Records {
				So(r.Sources, ShouldResemble, []string{provider.NameGenerated})
			}
		})
	})

	Convey("Given a max results cap", t, func() {
		svc := app.New(generatorOnly(), app.WithMaxResults(5))

		Convey("The final list is truncated after ranking", func() {
			result, err := svc.Research(context.Background(), app.Request{Seeds: []string{"tire dealers"}})
			So(err, ShouldBeNil)
			So(result.Records, ShouldHaveLength, 5)
		})
	})
}
