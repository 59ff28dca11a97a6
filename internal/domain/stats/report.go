package stats

import (
	"fmt"
	"strings"

	"github.com/seolab/kwscout/internal/domain/model"
)

// Report renders a plain-text analysis report for a record list and its
// summary, suitable for export.
func Report(summary *Summary) string {
	if summary == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("# KEYWORD ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("## EXECUTIVE SUMMARY\n")
	fmt.Fprintf(&b, "Total Keywords Analyzed: %d\n", summary.TotalKeywords)
	fmt.Fprintf(&b, "Average Search Volume: %d\n", summary.AvgSearchVolume)
	fmt.Fprintf(&b, "Average CPC: $%.2f\n", summary.AvgCPC)
	fmt.Fprintf(&b, "Average Difficulty: %.1f/100\n\n", summary.AvgDifficulty)

	if len(summary.Insights) > 0 {
		b.WriteString("## KEY INSIGHTS\n")
		for i, insight := range summary.Insights {
			fmt.Fprintf(&b, "%d. %s\n", i+1, insight)
		}
		b.WriteString("\n")
	}

	if len(summary.Recommendations) > 0 {
		b.WriteString("## RECOMMENDATIONS\n")
		for i, rec := range summary.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	b.WriteString("## TOP PERFORMING KEYWORDS\n")
	writeTopList(&b, "Highest Opportunity", summary.TopKeywords.HighestOpportunity)
	writeTopList(&b, "Highest Volume", summary.TopKeywords.HighestVolume)
	writeTopList(&b, "Most Efficient", summary.TopKeywords.MostEfficient)
	writeTopList(&b, "Highest Commercial Value", summary.TopKeywords.HighestCommercialValue)

	return b.String()
}

func writeTopList(b *strings.Builder, title string, records []model.Record) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n", title)
	for _, r := range records {
		fmt.Fprintf(b, "- %s (Vol: %d, CPC: $%.2f, Score: %.1f)\n",
			r.Keyword, r.SearchVolume, r.CPC, r.RankScore())
	}
	b.WriteString("\n")
}
