// AngelaMos | 2026
// aggregate.go

package opinion

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// Collapse keeps exactly one row per opinion id. When the input carries
// several rows for the same opinion the one processed last wins. The result
// is in presentation order.
func Collapse(rows []Row) []Row {
	byID := lo.KeyBy(rows, func(r Row) int64 {
		return r.ID
	})

	out := lo.Values(byID)
	Sort(out)
	return out
}

// Sort orders rows by category, then by opinion id.
func Sort(rows []Row) {
	slices.SortFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

type bucket struct {
	suggestion bool
	open       bool
}

// Tally derives the report totals from an already collapsed list. It is the
// in-memory counterpart of the store's totals query and must agree with it.
func Tally(rows []Row) Totals {
	counts := lo.CountValuesBy(rows, func(r Row) bucket {
		return bucket{
			suggestion: r.Category == CategorySuggestion,
			open:       r.Status == StatusOpen,
		}
	})

	t := Totals{
		ComplaintsOpen:    counts[bucket{suggestion: false, open: true}],
		ComplaintsClosed:  counts[bucket{suggestion: false, open: false}],
		SuggestionsOpen:   counts[bucket{suggestion: true, open: true}],
		SuggestionsClosed: counts[bucket{suggestion: true, open: false}],
	}
	t.Complaints = t.ComplaintsOpen + t.ComplaintsClosed
	t.Suggestions = t.SuggestionsOpen + t.SuggestionsClosed

	return t
}
