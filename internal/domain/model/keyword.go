// Package model contains the domain types flowing through the research pipeline.
package model

import "strings"

// Competition is the categorical advertiser-competition level.
type Competition string

// Competition levels.
const (
	CompetitionLow     Competition = "Low"
	CompetitionMedium  Competition = "Medium"
	CompetitionHigh    Competition = "High"
	CompetitionUnknown Competition = "Unknown"
)

// Intent is the categorical search-intent classification.
type Intent string

// Intent labels.
const (
	IntentCommercial    Intent = "Commercial"
	IntentInformational Intent = "Informational"
	IntentNavigational  Intent = "Navigational"
	IntentLocal         Intent = "Local"
	IntentInvestigation Intent = "Investigation"
	IntentMixed         Intent = "Mixed"
)

// Observation is one provider's view of one keyword. Every numeric field
// defaults to zero and every categorical field to its sentinel at
// construction time, so downstream math never deals with missing values.
// Immutable once produced.
type Observation struct {
	Keyword         string
	SearchVolume    int
	CPC             float64
	Competition     Competition
	Difficulty      int
	Intent          Intent
	TrendData       []int
	RelatedKeywords []string
	Source          string
}

// NewObservation builds an Observation with sentinel defaults applied.
func NewObservation(keyword, source string) Observation {
	return Observation{
		Keyword:     keyword,
		Competition: CompetitionUnknown,
		Intent:      IntentMixed,
		Source:      source,
	}
}

// Key returns the normalized grouping key for the observation.
func (o Observation) Key() string {
	return NormalizeKeyword(o.Keyword)
}

// NormalizeKeyword lowercases and trims a keyword for deduplication.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Record is the merged, scored unit of output. Created by the merger,
// mutated once by the scorer to attach campaign scores, read-only afterwards.
type Record struct {
	Keyword      string      `json:"keyword"`
	SearchVolume int         `json:"search_volume"`
	CPC          float64     `json:"cpc"`
	Competition  Competition `json:"competition"`
	Difficulty   int         `json:"difficulty"`
	Intent       Intent      `json:"intent"`

	OpportunityScore   float64 `json:"opportunity_score"`
	EfficiencyScore    float64 `json:"efficiency_score"`
	BudgetFitScore     float64 `json:"budget_fit_score"`
	GoalAlignmentScore float64 `json:"goal_alignment_score"`
	EnhancedScore      float64 `json:"enhanced_score"`
	// Analyzed reports whether the campaign scores above were computed;
	// without budget and goal context only OpportunityScore is meaningful.
	Analyzed bool `json:"analyzed"`

	Sources         []string `json:"sources"`
	TrendData       []int    `json:"trend_data"`
	RelatedKeywords []string `json:"related_keywords"`

	CompetitionAnalysis CompetitionAnalysis `json:"competition_analysis"`
	Recommendation      string              `json:"recommendation"`
}

// RankScore is the value the ranker orders by: the enhanced score when the
// record was analyzed, the opportunity score otherwise.
func (r Record) RankScore() float64 {
	if r.Analyzed {
		return r.EnhancedScore
	}
	return r.OpportunityScore
}

// CompetitionAnalysis carries market indicators derived from a record's
// competition level, difficulty and CPC.
type CompetitionAnalysis struct {
	Level            Competition `json:"level"`
	DifficultyScore  int         `json:"difficulty_score"`
	MarketIndicators []string    `json:"market_indicators"`
	Strategy         string      `json:"strategy_recommendation"`
}
