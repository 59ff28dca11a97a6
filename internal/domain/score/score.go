// Package score computes the per-record scoring pipeline: opportunity,
// efficiency, budget fit, goal alignment and the composite enhanced score.
package score

import (
	"math"

	"github.com/seolab/kwscout/internal/domain/model"
)

// Enhanced score component weights.
const (
	weightOpportunity = 0.4
	weightEfficiency  = 0.3
	weightBudgetFit   = 0.2
	weightGoals       = 0.1

	maxScore = 10.0
)

// Opportunity computes the 0-10 opportunity score from volume, cpc,
// difficulty buckets and a fixed intent bonus, rounded to one decimal.
func Opportunity(volume int, cpc float64, difficulty int, in model.Intent) float64 {
	var s float64

	switch {
	case volume >= 10000:
		s += 3
	case volume >= 5000:
		s += 2.5
	case volume >= 1000:
		s += 2
	case volume >= 500:
		s += 1.5
	case volume >= 100:
		s += 1
	}

	switch {
	case cpc >= 5.0:
		s += 2
	case cpc >= 2.0:
		s += 1.5
	case cpc >= 1.0:
		s += 1
	case cpc >= 0.5:
		s += 0.5
	}

	switch {
	case difficulty <= 30:
		s += 3
	case difficulty <= 50:
		s += 2
	case difficulty <= 70:
		s += 1
	}

	switch in {
	case model.IntentCommercial:
		s += 2
	case model.IntentInvestigation, model.IntentLocal:
		s += 1.5
	case model.IntentNavigational:
		s += 0.5
	default:
		s += 1
	}

	return round1(math.Min(s, maxScore))
}

// ApplyOpportunity attaches the opportunity score to every record in place.
func ApplyOpportunity(records []model.Record) {
	for i := range records {
		r := &records[i]
		r.OpportunityScore = Opportunity(r.SearchVolume, r.CPC, r.Difficulty, r.Intent)
	}
}

// Efficiency computes the volume-per-cost-per-difficulty score. Zero when
// cpc or difficulty is non-positive; otherwise normalized into [0, 10] and
// rounded to two decimals.
func Efficiency(volume int, cpc float64, difficulty int) float64 {
	if cpc <= 0 || difficulty <= 0 {
		return 0
	}
	difficultyFactor := math.Max(1, float64(101-difficulty)) / 100
	efficiency := (float64(volume) / math.Max(cpc, 0.1)) * difficultyFactor
	return round2(math.Min(efficiency/1000, maxScore))
}

// BudgetFit compares the keyword's estimated monthly cost (cpc x 1000)
// against the budget tier bounds.
func BudgetFit(cpc float64, tier model.BudgetTier) float64 {
	minBudget, maxBudget := tier.Bounds()
	estimatedMonthlyCost := cpc * 1000

	switch {
	case estimatedMonthlyCost <= minBudget*0.1:
		return 10
	case estimatedMonthlyCost <= minBudget*0.3:
		return 8
	case estimatedMonthlyCost <= maxBudget*0.5:
		return 6
	case estimatedMonthlyCost <= maxBudget:
		return 4
	default:
		return 2
	}
}

// GoalAlignment scores how well an intent serves the campaign goals: +2 per
// goal whose intent set contains it, +1 for Mixed or Investigation intents
// that did not match, capped at 10.
func GoalAlignment(in model.Intent, goals []model.CampaignGoal) float64 {
	var s float64
	for _, goal := range goals {
		switch {
		case goal.Matches(in):
			s += 2
		case in == model.IntentMixed || in == model.IntentInvestigation:
			s += 1
		}
	}
	return math.Min(s, maxScore)
}

// Enhanced combines the four component scores into the weighted composite,
// rounded to two decimals and clamped to 10.
func Enhanced(opportunity, efficiency, budgetFit, goalAlignment float64) float64 {
	composite := opportunity*weightOpportunity +
		efficiency*weightEfficiency +
		budgetFit*weightBudgetFit +
		goalAlignment*weightGoals
	return round2(math.Min(composite, maxScore))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
