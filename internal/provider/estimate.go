package provider

import (
	"math"
	"strings"

	"github.com/seolab/kwscout/internal/domain/model"
)

// Heuristic estimation rules shared by the generator and the SERP provider.

// estimateVolume estimates monthly search volume from keyword shape.
func estimateVolume(keyword string) int {
	volume := 1000
	words := len(strings.Fields(keyword))
	if words == 1 {
		volume *= 5
	} else if words > 4 {
		volume /= 3
	}

	lower := strings.ToLower(keyword)
	switch {
	case containsAny(lower, "near me", "local"):
		volume /= 2
	case containsAny(lower, "best", "top", "review"):
		volume *= 2
	case containsAny(lower, "how to", "what is", "guide"):
		volume = volume * 3 / 2
	}

	if volume < 100 {
		return 100
	}
	return volume
}

// estimateCPC estimates cost-per-click from keyword shape.
func estimateCPC(keyword string) float64 {
	cpc := 1.50
	lower := strings.ToLower(keyword)
	switch {
	case containsAny(lower, "buy", "price", "cost", "cheap", "best"):
		cpc *= 2
	case containsAny(lower, "how to", "what is", "guide", "tips"):
		cpc *= 0.5
	}
	return round2(cpc)
}

// estimateCompetition maps word count to a competition level: single-word
// terms are High, short phrases Medium, long-tail phrases Low.
func estimateCompetition(keyword string) model.Competition {
	switch words := len(strings.Fields(keyword)); {
	case words == 1:
		return model.CompetitionHigh
	case words <= 3:
		return model.CompetitionMedium
	default:
		return model.CompetitionLow
	}
}

// estimateDifficulty maps word count to a 0-100 difficulty score.
func estimateDifficulty(keyword string) int {
	switch words := len(strings.Fields(keyword)); {
	case words == 1:
		return 80
	case words <= 3:
		return 50
	default:
		return 30
	}
}

// volumeFromResultCount estimates volume from the number of organic SERP
// results returned for a query.
func volumeFromResultCount(n int) int {
	switch {
	case n >= 8:
		return 5000
	case n >= 5:
		return 2000
	case n >= 3:
		return 1000
	default:
		return 500
	}
}

// competitionFromScore converts a normalized 0-1 competition score to a level.
func competitionFromScore(score float64) model.Competition {
	switch {
	case score >= 0.7:
		return model.CompetitionHigh
	case score >= 0.4:
		return model.CompetitionMedium
	default:
		return model.CompetitionLow
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
