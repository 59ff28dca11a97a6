package merge_test

import (
	"testing"

	"github.com/seolab/kwscout/internal/domain/merge"
	"github.com/seolab/kwscout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func obs(keyword, source string, volume int, cpc float64, difficulty int) model.Observation {
	o := model.NewObservation(keyword, source)
	o.SearchVolume = volume
	o.CPC = cpc
	o.Difficulty = difficulty
	return o
}

func TestMerge(t *testing.T) {
	Convey("Given the same keyword reported by three providers", t, func() {
		observations := []model.Observation{
			obs("seo tools", "DataForSEO", 1000, 1.00, 10),
			obs("SEO Tools", "SerpApi", 2000, 2.00, 20),
			obs("seo tools ", "SEMrush", 3000, 3.00, 30),
		}

		records, multiSource := merge.Merge(observations)

		Convey("They collapse into a single record", func() {
			So(records, ShouldHaveLength, 1)
			So(multiSource, ShouldEqual, 1)
		})

		Convey("Numeric fields are averaged", func() {
			So(records[0].SearchVolume, ShouldEqual, 2000)
			So(records[0].CPC, ShouldEqual, 2.00)
			So(records[0].Difficulty, ShouldEqual, 20)
		})

		Convey("All three sources are recorded in arrival order", func() {
			So(records[0].Sources, ShouldResemble, []string{"DataForSEO", "SerpApi", "SEMrush"})
		})

		Convey("The display keyword comes from the first observation", func() {
			So(records[0].Keyword, ShouldEqual, "seo tools")
		})
	})

	Convey("Given integer averages that do not divide evenly", t, func() {
		observations := []model.Observation{
			obs("widgets", "DataForSEO", 1000, 1.005, 11),
			obs("widgets", "SerpApi", 1001, 1.000, 12),
		}

		records, _ := merge.Merge(observations)

		Convey("Volume and difficulty floor toward zero", func() {
			So(records[0].SearchVolume, ShouldEqual, 1000)
			So(records[0].Difficulty, ShouldEqual, 11)
		})

		Convey("CPC rounds to two decimals", func() {
			So(records[0].CPC, ShouldEqual, 1.00)
		})
	})

	Convey("Given distinct keywords", t, func() {
		observations := []model.Observation{
			obs("alpha", "Generated", 100, 0.50, 30),
			obs("beta", "Generated", 200, 0.60, 30),
			obs("gamma", "Generated", 300, 0.70, 30),
		}

		records, multiSource := merge.Merge(observations)

		Convey("Each stays its own record in first-seen order", func() {
			So(records, ShouldHaveLength, 3)
			So(records[0].Keyword, ShouldEqual, "alpha")
			So(records[1].Keyword, ShouldEqual, "beta")
			So(records[2].Keyword, ShouldEqual, "gamma")
			So(multiSource, ShouldEqual, 0)
		})

		Convey("Single-member groups keep their numbers untouched", func() {
			So(records[0].SearchVolume, ShouldEqual, 100)
			So(records[0].CPC, ShouldEqual, 0.50)
		})
	})

	Convey("Given a duplicate source inside one group", t, func() {
		observations := []model.Observation{
			obs("alpha", "SerpApi", 100, 1.0, 10),
			obs("alpha", "SerpApi", 300, 3.0, 30),
		}

		records, _ := merge.Merge(observations)

		Convey("The source list is de-duplicated but both contribute to the mean", func() {
			So(records[0].Sources, ShouldResemble, []string{"SerpApi"})
			So(records[0].SearchVolume, ShouldEqual, 200)
		})
	})

	Convey("Given blank keywords and empty input", t, func() {
		Convey("Whitespace-only keywords are dropped", func() {
			records, _ := merge.Merge([]model.Observation{obs("   ", "SerpApi", 10, 1, 1)})
			So(records, ShouldBeEmpty)
		})

		Convey("Empty input yields an empty slice", func() {
			records, multiSource := merge.Merge(nil)
			So(records, ShouldBeEmpty)
			So(multiSource, ShouldEqual, 0)
		})
	})

	Convey("Given categorical fields that disagree across sources", t, func() {
		first := obs("drill bits", "DataForSEO", 500, 2.0, 40)
		first.Competition = model.CompetitionHigh
		first.Intent = model.IntentCommercial
		first.TrendData = []int{1, 2, 3}
		first.RelatedKeywords = []string{"drill sets"}

		second := obs("drill bits", "SerpApi", 700, 2.4, 60)
		second.Competition = model.CompetitionLow
		second.Intent = model.IntentInformational

		records, _ := merge.Merge([]model.Observation{first, second})

		Convey("The first observation wins for categorical fields", func() {
			So(records[0].Competition, ShouldEqual, model.CompetitionHigh)
			So(records[0].Intent, ShouldEqual, model.IntentCommercial)
			So(records[0].TrendData, ShouldResemble, []int{1, 2, 3})
			So(records[0].RelatedKeywords, ShouldResemble, []string{"drill sets"})
		})
	})
}
