package score

import (
	"github.com/seolab/kwscout/internal/domain/model"
)

// Analyzer attaches campaign-context scores to records. It is only built
// when the caller supplied a budget tier and campaign goals; records scored
// without it keep just their opportunity score.
type Analyzer struct {
	budget model.BudgetTier
	goals  []model.CampaignGoal
}

// NewAnalyzer creates an analyzer for the given campaign context.
func NewAnalyzer(budget model.BudgetTier, goals []model.CampaignGoal) *Analyzer {
	return &Analyzer{budget: budget, goals: goals}
}

// Apply mutates every record once: efficiency, budget fit, goal alignment,
// the enhanced composite, plus the competition analysis and recommendation
// text derived from the scored values.
func (a *Analyzer) Apply(records []model.Record) {
	for i := range records {
		r := &records[i]
		r.EfficiencyScore = Efficiency(r.SearchVolume, r.CPC, r.Difficulty)
		r.BudgetFitScore = BudgetFit(r.CPC, a.budget)
		r.GoalAlignmentScore = GoalAlignment(r.Intent, a.goals)
		r.EnhancedScore = Enhanced(r.OpportunityScore, r.EfficiencyScore, r.BudgetFitScore, r.GoalAlignmentScore)
		r.CompetitionAnalysis = analyzeCompetition(r.Competition, r.Difficulty, r.CPC)
		r.Recommendation = recommendation(r)
		r.Analyzed = true
	}
}

// analyzeCompetition derives market indicators and a strategy hint from the
// record's competition level, difficulty and CPC.
func analyzeCompetition(level model.Competition, difficulty int, cpc float64) model.CompetitionAnalysis {
	analysis := model.CompetitionAnalysis{
		Level:           level,
		DifficultyScore: difficulty,
	}

	switch {
	case cpc > 5.0:
		analysis.MarketIndicators = append(analysis.MarketIndicators, "High commercial value")
	case cpc > 2.0:
		analysis.MarketIndicators = append(analysis.MarketIndicators, "Moderate commercial value")
	default:
		analysis.MarketIndicators = append(analysis.MarketIndicators, "Low commercial value")
	}

	switch {
	case difficulty > 80:
		analysis.MarketIndicators = append(analysis.MarketIndicators, "Highly competitive market")
		analysis.Strategy = "Consider long-tail variations or niche targeting"
	case difficulty > 60:
		analysis.MarketIndicators = append(analysis.MarketIndicators, "Competitive market")
		analysis.Strategy = "Requires strong content and backlink strategy"
	case difficulty > 40:
		analysis.MarketIndicators = append(analysis.MarketIndicators, "Moderately competitive")
		analysis.Strategy = "Good opportunity with proper optimization"
	default:
		analysis.MarketIndicators = append(analysis.MarketIndicators, "Low competition opportunity")
		analysis.Strategy = "High potential for quick wins"
	}

	return analysis
}

// recommendation picks the first matching guidance rule for a scored record.
func recommendation(r *model.Record) string {
	switch {
	case r.EfficiencyScore >= 8 && r.SearchVolume >= 1000:
		return "High priority: excellent opportunity with great efficiency"
	case r.Intent == model.IntentCommercial && r.CPC >= 2.0:
		return "Commercial focus: high-value keyword for conversion campaigns"
	case r.Intent == model.IntentLocal && r.SearchVolume >= 500:
		return "Local opportunity: great for geo-targeted campaigns"
	case r.Difficulty <= 30 && r.SearchVolume >= 100:
		return "Quick win: low competition with decent volume"
	case r.Intent == model.IntentInformational && r.SearchVolume >= 1000:
		return "Content marketing: ideal for educational campaigns"
	case r.EfficiencyScore >= 6:
		return "Recommended: good balance of metrics"
	case r.Difficulty >= 80:
		return "High competition: consider long-tail alternatives"
	case r.SearchVolume < 100:
		return "Low volume: monitor and test carefully"
	default:
		return "Evaluate against specific campaign needs"
	}
}
