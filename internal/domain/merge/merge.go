// Package merge folds multi-source keyword observations into single records.
package merge

import (
	"math"

	"github.com/seolab/kwscout/internal/domain/model"
)

// Merge groups observations by normalized keyword key and reduces each group
// to one record. Numeric fields are averaged across the group (integer means
// floor); categorical fields, trend data and related keywords come verbatim
// from the first observation in arrival order. Key order follows first
// appearance, so merging is deterministic for a fixed observation order.
// The second return value counts groups with more than one contributor.
func Merge(observations []model.Observation) ([]model.Record, int) {
	groups := make(map[string][]model.Observation, len(observations))
	var order []string

	for _, obs := range observations {
		key := obs.Key()
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], obs)
	}

	records := make([]model.Record, 0, len(order))
	multiSource := 0
	for _, key := range order {
		group := groups[key]
		if len(group) > 1 {
			multiSource++
		}
		records = append(records, reduce(group))
	}
	return records, multiSource
}

// reduce merges one non-empty group into a single record.
func reduce(group []model.Observation) model.Record {
	first := group[0]
	rec := model.Record{
		Keyword:         first.Keyword,
		SearchVolume:    first.SearchVolume,
		CPC:             round2(first.CPC),
		Competition:     first.Competition,
		Difficulty:      first.Difficulty,
		Intent:          first.Intent,
		TrendData:       first.TrendData,
		RelatedKeywords: first.RelatedKeywords,
		Sources:         sources(group),
	}

	if len(group) > 1 {
		var volume, difficulty int
		var cpc float64
		for _, obs := range group {
			volume += obs.SearchVolume
			cpc += obs.CPC
			difficulty += obs.Difficulty
		}
		rec.SearchVolume = volume / len(group)
		rec.CPC = round2(cpc / float64(len(group)))
		rec.Difficulty = difficulty / len(group)
	}
	return rec
}

// sources returns the de-duplicated provider ids in arrival order.
func sources(group []model.Observation) []string {
	seen := make(map[string]struct{}, len(group))
	out := make([]string, 0, len(group))
	for _, obs := range group {
		if _, ok := seen[obs.Source]; ok {
			continue
		}
		seen[obs.Source] = struct{}{}
		out = append(out, obs.Source)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
