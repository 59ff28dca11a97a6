// Package rank orders scored records for output.
package rank

import (
	"sort"

	"github.com/seolab/kwscout/internal/domain/model"
)

// DefaultCap bounds the final record list.
const DefaultCap = 100

// Rank stable-sorts records descending by their rank score (enhanced when
// analyzed, opportunity otherwise) and truncates to limit. Ties keep their
// prior relative order. A limit <= 0 falls back to DefaultCap.
func Rank(records []model.Record, limit int) []model.Record {
	if limit <= 0 {
		limit = DefaultCap
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RankScore() > records[j].RankScore()
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records
}
