package devdocs

import (
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the SequenceMatcher ratio of two strings in [0, 1]:
// twice the number of matched characters over the combined length.
func Similarity(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// containsFold reports whether name contains the trimmed query, ignoring case.
func containsFold(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(strings.TrimSpace(query)))
}

// FilterDocs keeps docs whose name contains query, ignoring case and
// surrounding whitespace in query. Order is preserved.
func FilterDocs(docs []*Doc, query string) []*Doc {
	out := make([]*Doc, 0, len(docs))
	for _, d := range docs {
		if containsFold(d.Name, query) {
			out = append(out, d)
		}
	}
	return out
}

// SearchEntries keeps entries whose name contains query and orders them by
// Similarity to query, best first. Equal scores keep their original order.
func SearchEntries(entries []*Entry, query string) []*Entry {
	type scored struct {
		entry *Entry
		score float64
	}

	matches := make([]scored, 0, len(entries))
	for _, e := range entries {
		if containsFold(e.Name, query) {
			matches = append(matches, scored{entry: e, score: Similarity(e.Name, query)})
		}
	}

	slices.SortStableFunc(matches, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	out := make([]*Entry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}
