package provider

import (
	"context"
	"fmt"

	"github.com/seolab/kwscout/internal/domain/intent"
	"github.com/seolab/kwscout/internal/domain/model"
)

const (
	generatedSeedCap   = 10
	generatedOutputCap = 50
)

// generatedModifiers is the fixed vocabulary crossed with each seed keyword.
var generatedModifiers = []string{
	"best", "top", "cheap", "affordable", "near me", "reviews",
	"how to", "what is", "guide", "tips", "cost", "price",
	"vs", "comparison", "list", "services", "company", "local",
}

// Generated is the deterministic heuristic fallback provider. It performs no
// I/O, always succeeds, and is always part of the active provider set.
type Generated struct{}

// NewGenerated creates the heuristic generator.
func NewGenerated() *Generated { return &Generated{} }

func (g *Generated) Name() string { return NameGenerated }

// Fetch crosses the first 10 seeds with the modifier vocabulary to build
// candidate phrases, capped at 50 outputs, and estimates every metric with
// the shared keyword-shape heuristics.
func (g *Generated) Fetch(ctx context.Context, keywords []string) []model.Observation {
	return instrumentedFetch(ctx, NameGenerated, func(ctx context.Context) []model.Observation {
		return g.suggest(keywords)
	})
}

func (g *Generated) suggest(seeds []string) []model.Observation {
	if len(seeds) > generatedSeedCap {
		seeds = seeds[:generatedSeedCap]
	}

	var out []model.Observation
	for _, seed := range seeds {
		for _, modifier := range generatedModifiers {
			variations := []string{
				fmt.Sprintf("%s %s", modifier, seed),
				fmt.Sprintf("%s %s", seed, modifier),
				fmt.Sprintf("best %s", seed),
				fmt.Sprintf("%s near me", seed),
				fmt.Sprintf("how to choose %s", seed),
				fmt.Sprintf("%s reviews", seed),
			}
			for _, phrase := range variations {
				obs := model.NewObservation(phrase, NameGenerated)
				obs.SearchVolume = estimateVolume(phrase)
				obs.CPC = estimateCPC(phrase)
				obs.Competition = estimateCompetition(phrase)
				obs.Difficulty = estimateDifficulty(phrase)
				obs.Intent = intent.Classify(phrase)
				out = append(out, obs)
				if len(out) >= generatedOutputCap {
					return out
				}
			}
		}
	}
	return out
}
