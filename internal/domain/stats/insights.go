package stats

import (
	"fmt"
	"sort"

	"github.com/seolab/kwscout/internal/domain/model"
)

// insights turns the aggregate metrics into textual observations, one per
// metric family, in a fixed order.
func insights(records []model.Record, s *Summary) []string {
	var out []string

	switch {
	case s.AvgSearchVolume >= 5000:
		out = append(out, "High-volume keywords dominate this topic - excellent traffic potential")
	case s.AvgSearchVolume >= 1000:
		out = append(out, "Good search volume across keywords - solid traffic opportunities")
	default:
		out = append(out, "Mostly long-tail keywords - focus on conversion over volume")
	}

	switch {
	case s.AvgCPC >= 3.0:
		out = append(out, "High CPC indicates strong commercial value and competition")
	case s.AvgCPC >= 1.0:
		out = append(out, "Moderate CPC suggests balanced commercial opportunity")
	default:
		out = append(out, "Low CPC keywords - cost-effective traffic acquisition possible")
	}

	commercialRatio := float64(s.IntentDistribution[model.IntentCommercial]) / float64(len(records))
	switch {
	case commercialRatio >= 0.3:
		out = append(out, "Strong commercial intent - good for conversion campaigns")
	case commercialRatio >= 0.1:
		out = append(out, "Mixed intent keywords - diversified campaign strategy recommended")
	default:
		out = append(out, "Primarily informational keywords - focus on content marketing")
	}

	switch {
	case s.AvgDifficulty >= 70:
		out = append(out, "High competition market - long-term SEO strategy needed")
	case s.AvgDifficulty >= 40:
		out = append(out, "Moderate competition - good opportunities with proper optimization")
	default:
		out = append(out, "Low competition environment - quick wins possible")
	}

	return out
}

// recommendations turns the summary into actionable suggestions.
func recommendations(s *Summary) []string {
	var out []string

	dailyBudget := s.AvgCPC * 50
	out = append(out, fmt.Sprintf("Recommended daily budget: $%.2f for moderate coverage", dailyBudget))

	if s.VolumeDistribution.High >= 5 {
		out = append(out, "Focus on high-volume keywords for maximum reach")
	} else {
		out = append(out, "Prioritize long-tail keywords for better conversion rates")
	}

	if s.IntentDistribution[model.IntentCommercial] >= 3 {
		out = append(out, "Create dedicated commercial intent campaigns for better ROI")
	}
	if s.IntentDistribution[model.IntentLocal] >= 3 {
		out = append(out, "Implement geo-targeted campaigns for local keywords")
	}
	if s.IntentDistribution[model.IntentInformational] >= 5 {
		out = append(out, "Develop content marketing strategy for informational keywords")
	}

	switch {
	case s.AvgDifficulty >= 70:
		out = append(out, "Consider PPC focus due to high organic competition")
	case s.AvgDifficulty <= 30:
		out = append(out, "Organic SEO could be highly effective for these keywords")
	}

	return out
}

// topPerformers builds the four top-5 sublists. Input order is preserved on
// ties through stable sorting of copies.
func topPerformers(records []model.Record) TopKeywords {
	byOpportunity := sortedCopy(records, func(a, b model.Record) bool {
		return a.RankScore() > b.RankScore()
	})
	byVolume := sortedCopy(records, func(a, b model.Record) bool {
		return a.SearchVolume > b.SearchVolume
	})
	byEfficiency := sortedCopy(records, func(a, b model.Record) bool {
		return a.EfficiencyScore > b.EfficiencyScore
	})

	var commercial []model.Record
	for _, r := range records {
		if r.Intent == model.IntentCommercial {
			commercial = append(commercial, r)
		}
	}
	byCommercialValue := sortedCopy(commercial, func(a, b model.Record) bool {
		return a.CPC > b.CPC
	})

	return TopKeywords{
		HighestOpportunity:     head(byOpportunity, topListSize),
		HighestVolume:          head(byVolume, topListSize),
		MostEfficient:          head(byEfficiency, topListSize),
		HighestCommercialValue: head(byCommercialValue, topListSize),
	}
}

func sortedCopy(records []model.Record, less func(a, b model.Record) bool) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func head(records []model.Record, n int) []model.Record {
	if len(records) > n {
		return records[:n]
	}
	return records
}
