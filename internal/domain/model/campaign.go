package model

import "math"

// BudgetTier is a fixed monthly-spend bracket supplied by the caller.
type BudgetTier string

// Budget tiers.
const (
	BudgetLow        BudgetTier = "Low"
	BudgetMedium     BudgetTier = "Medium"
	BudgetHigh       BudgetTier = "High"
	BudgetEnterprise BudgetTier = "Enterprise"
)

// Bounds returns the (min, max) USD/month range for the tier. Unknown tiers
// fall back to the Medium bracket.
func (b BudgetTier) Bounds() (float64, float64) {
	switch b {
	case BudgetLow:
		return 0, 500
	case BudgetMedium:
		return 500, 2000
	case BudgetHigh:
		return 2000, 5000
	case BudgetEnterprise:
		return 5000, math.Inf(1)
	default:
		return 500, 2000
	}
}

// CampaignGoal is one of the fixed campaign objectives.
type CampaignGoal string

// Campaign goals.
const (
	GoalLeadGeneration     CampaignGoal = "Lead Generation"
	GoalBrandAwareness     CampaignGoal = "Brand Awareness"
	GoalSalesConversion    CampaignGoal = "Sales Conversion"
	GoalTrafficGrowth      CampaignGoal = "Traffic Growth"
	GoalLocalVisibility    CampaignGoal = "Local Visibility"
	GoalCompetitorAnalysis CampaignGoal = "Competitor Analysis"
)

// goalIntents maps each goal to the intents it aligns with.
var goalIntents = map[CampaignGoal][]Intent{
	GoalLeadGeneration:     {IntentCommercial, IntentInvestigation, IntentLocal},
	GoalBrandAwareness:     {IntentInformational, IntentNavigational, IntentMixed},
	GoalSalesConversion:    {IntentCommercial, IntentInvestigation},
	GoalTrafficGrowth:      {IntentInformational, IntentMixed, IntentNavigational},
	GoalLocalVisibility:    {IntentLocal, IntentCommercial},
	GoalCompetitorAnalysis: {IntentInvestigation, IntentCommercial},
}

// Matches reports whether intent is in the goal's aligned intent set.
func (g CampaignGoal) Matches(intent Intent) bool {
	for _, in := range goalIntents[g] {
		if in == intent {
			return true
		}
	}
	return false
}
