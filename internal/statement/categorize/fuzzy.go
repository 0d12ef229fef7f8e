package categorize

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggester offers fuzzy near-miss category suggestions for
// transactions that fell through to the fallback category, catching
// misspelled descriptions like "netflx" or "farmacy". Suggestions are
// advisory and never change the assigned category.
type Suggester struct {
	keywords []string
	owner    []string // category name per keyword, parallel to keywords
}

// Suggestion thresholds: short tokens fuzzy-match almost anything, and
// large edit distances are noise.
const (
	minTokenLen = 4
	maxDistance = 2
)

// NewSuggester builds a suggester over the given category tables, in
// priority order.
func NewSuggester(tables ...[]Category) *Suggester {
	s := &Suggester{}
	for _, table := range tables {
		for _, cat := range table {
			for _, kw := range cat.Keywords {
				kw = strings.ToLower(strings.TrimSpace(kw))
				if kw == "" {
					continue
				}
				s.keywords = append(s.keywords, kw)
				s.owner = append(s.owner, cat.Name)
			}
		}
	}
	return s
}

// Suggest returns the category whose keyword most closely matches a
// token of the search text, or "" when nothing is close enough. Ties
// go to the earlier (higher-priority) keyword.
func (s *Suggester) Suggest(searchText string) string {
	if len(s.keywords) == 0 {
		return ""
	}

	bestCategory := ""
	bestDistance := maxDistance + 1

	for _, token := range strings.Fields(strings.ToLower(searchText)) {
		if len(token) < minTokenLen {
			continue
		}
		for _, rank := range fuzzy.RankFindFold(token, s.keywords) {
			if rank.Distance < 0 || rank.Distance > maxDistance {
				continue
			}
			if rank.Distance < bestDistance {
				bestDistance = rank.Distance
				bestCategory = s.owner[rank.OriginalIndex]
			}
		}
	}
	return bestCategory
}
