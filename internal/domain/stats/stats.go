// Package stats derives summary statistics over a ranked record list.
package stats

import (
	"math"

	"github.com/seolab/kwscout/internal/domain/model"
)

// topListSize bounds each top-performers sublist.
const topListSize = 5

// Distribution buckets a metric into high/medium/low counts.
type Distribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// TopKeywords holds the top-performer sublists by different criteria.
type TopKeywords struct {
	HighestOpportunity     []model.Record `json:"highest_opportunity"`
	HighestVolume          []model.Record `json:"highest_volume"`
	MostEfficient          []model.Record `json:"most_efficient"`
	HighestCommercialValue []model.Record `json:"highest_commercial_value"`
}

// Summary is the read-only aggregate computed over a final record list.
// It is fully recomputed on each run and never persisted.
type Summary struct {
	TotalKeywords       int     `json:"total_keywords"`
	AvgSearchVolume     int     `json:"avg_search_volume"`
	TotalSearchVolume   int     `json:"total_search_volume"`
	AvgCPC              float64 `json:"avg_cpc"`
	AvgDifficulty       float64 `json:"avg_difficulty"`
	AvgOpportunityScore float64 `json:"avg_opportunity_score"`

	VolumeDistribution      Distribution                `json:"volume_distribution"`
	CPCDistribution         Distribution                `json:"cpc_distribution"`
	IntentDistribution      map[model.Intent]int        `json:"intent_distribution"`
	CompetitionDistribution map[model.Competition]int   `json:"competition_distribution"`

	Insights        []string    `json:"insights"`
	Recommendations []string    `json:"recommendations"`
	TopKeywords     TopKeywords `json:"top_keywords"`
}

// Compute builds the full summary for a record list. Returns nil for an
// empty list.
func Compute(records []model.Record) *Summary {
	if len(records) == 0 {
		return nil
	}

	s := &Summary{
		TotalKeywords:           len(records),
		IntentDistribution:      make(map[model.Intent]int),
		CompetitionDistribution: make(map[model.Competition]int),
	}

	var totalCPC, totalDifficulty, totalScore float64
	for _, r := range records {
		s.TotalSearchVolume += r.SearchVolume
		totalCPC += r.CPC
		totalDifficulty += float64(r.Difficulty)
		totalScore += r.RankScore()

		bucketVolume(&s.VolumeDistribution, r.SearchVolume)
		bucketCPC(&s.CPCDistribution, r.CPC)
		s.IntentDistribution[r.Intent]++
		s.CompetitionDistribution[r.Competition]++
	}

	n := float64(len(records))
	s.AvgSearchVolume = s.TotalSearchVolume / len(records)
	s.AvgCPC = round2(totalCPC / n)
	s.AvgDifficulty = round1(totalDifficulty / n)
	s.AvgOpportunityScore = round2(totalScore / n)

	s.Insights = insights(records, s)
	s.Recommendations = recommendations(s)
	s.TopKeywords = topPerformers(records)
	return s
}

func bucketVolume(d *Distribution, volume int) {
	switch {
	case volume >= 10000:
		d.High++
	case volume >= 1000:
		d.Medium++
	default:
		d.Low++
	}
}

func bucketCPC(d *Distribution, cpc float64) {
	switch {
	case cpc >= 3.0:
		d.High++
	case cpc >= 1.0:
		d.Medium++
	default:
		d.Low++
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
