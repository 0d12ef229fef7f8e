package categorize

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"

	"github.com/kennedy-ak/expense/internal/statement"
)

// Engine matches transaction search text against keyword rules using an
// Aho-Corasick matcher: one pass through the text regardless of how
// many keywords are loaded. User categories always outrank built-in
// ones, and within each group earlier categories outrank later ones, so
// "first matching category wins" holds for the caller-supplied order.
type Engine struct {
	matcher  *ahocorasick.Matcher
	patterns []string
	meta     []patternMeta // parallel to patterns
	fallback string
	mu       sync.RWMutex
}

type patternMeta struct {
	category string
	priority int
}

// Priority bases keep every user rule above every built-in rule.
const (
	userPriorityBase    = 2_000_000
	defaultPriorityBase = 1_000_000
)

// NewEngine builds an engine from the caller's categories and a
// built-in rule table. The rule slices are read once during Build and
// never retained.
func NewEngine(userCategories, defaults []Category) *Engine {
	e := &Engine{fallback: FallbackCategory}
	e.Build(userCategories, defaults)
	return e
}

// Build (re)constructs the matcher. Safe to call while other goroutines
// are categorizing.
func (e *Engine) Build(userCategories, defaults []Category) {
	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[string]struct{})
	patterns := make([]string, 0, 64)
	meta := make([]patternMeta, 0, 64)

	// Patterns are added in descending priority, so on a duplicate
	// keyword the first (highest-priority) owner keeps it.
	add := func(cat Category, priority int) {
		for _, kw := range cat.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			patterns = append(patterns, kw)
			meta = append(meta, patternMeta{category: cat.Name, priority: priority})
		}
	}

	for i, cat := range userCategories {
		add(cat, userPriorityBase-i)
	}
	for i, cat := range defaults {
		add(cat, defaultPriorityBase-i)
	}

	e.patterns = patterns
	e.meta = meta
	if len(patterns) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(patterns)
	} else {
		e.matcher = nil
	}
}

// SearchText builds the lowercase haystack a transaction is matched
// against: payment type, reference, and counterparty label.
func SearchText(tx *statement.Transaction) string {
	return strings.ToLower(strings.Join([]string{
		tx.PaymentType,
		tx.Reference,
		tx.Counterparty(),
	}, " "))
}

// Categorize returns the category for one transaction. Pure with
// respect to shared state; safe to call concurrently.
func (e *Engine) Categorize(tx *statement.Transaction) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matcher == nil {
		return e.fallback
	}

	matches := e.matcher.MatchThreadSafe([]byte(SearchText(tx)))
	best := -1
	for _, idx := range matches {
		if idx < 0 || idx >= len(e.meta) {
			continue
		}
		if best < 0 || e.meta[idx].priority > e.meta[best].priority {
			best = idx
		}
	}
	if best < 0 {
		return e.fallback
	}
	return e.meta[best].category
}

// CategorizeAll assigns a category to every transaction in place.
func (e *Engine) CategorizeAll(txs []statement.Transaction) {
	for i := range txs {
		txs[i].Category = e.Categorize(&txs[i])
	}
}

// Fallback returns the category assigned when nothing matches.
func (e *Engine) Fallback() string {
	return e.fallback
}

// PatternCount returns the number of keywords loaded.
func (e *Engine) PatternCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.patterns)
}
