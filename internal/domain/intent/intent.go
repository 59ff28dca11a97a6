// Package intent classifies keywords into search-intent labels.
package intent

import (
	"strings"

	"github.com/seolab/kwscout/internal/domain/model"
)

// rule pairs an intent with the substrings that signal it. Rules are checked
// in order; the first matching rule wins.
type rule struct {
	intent model.Intent
	words  []string
}

var rules = []rule{
	{model.IntentCommercial, []string{"buy", "purchase", "price", "cost", "cheap", "deal", "discount"}},
	{model.IntentInformational, []string{"how to", "what is", "guide", "tips", "tutorial", "learn"}},
	{model.IntentNavigational, []string{"login", "website", "official", "contact"}},
	{model.IntentLocal, []string{"near me", "local", "store", "shop"}},
	{model.IntentInvestigation, []string{"review", "comparison", "vs", "best", "top"}},
}

// Classify determines the search intent of a keyword. Unmatched keywords
// are Mixed.
func Classify(keyword string) model.Intent {
	lower := strings.ToLower(keyword)
	for _, r := range rules {
		for _, w := range r.words {
			if strings.Contains(lower, w) {
				return r.intent
			}
		}
	}
	return model.IntentMixed
}
