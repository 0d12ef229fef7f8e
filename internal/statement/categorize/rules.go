// Package categorize assigns category labels to normalized transactions
// using keyword rules: caller-supplied categories first, then a built-in
// table, then a fallback.
package categorize

// Category is a named set of keywords. A transaction whose search text
// contains any keyword (case-insensitive) belongs to the category.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// FallbackCategory is assigned when no keyword matches.
const FallbackCategory = "Other"

// DefaultRules returns the built-in category table. Order matters:
// earlier categories win when keywords overlap. The returned slice is
// freshly allocated, so callers may modify their copy freely.
func DefaultRules() []Category {
	return []Category{
		{Name: "Transport", Keywords: []string{"uber", "bolt", "taxi", "bus", "fuel", "petrol", "transport"}},
		{Name: "Food", Keywords: []string{"food", "restaurant", "pizza", "jumia food", "kfc", "chicken", "meal"}},
		{Name: "Shopping", Keywords: []string{"jumia", "tonaton", "shop", "store", "market", "mall"}},
		{Name: "Utilities", Keywords: []string{"airtime", "data", "ecg", "electricity", "water", "internet", "mtn"}},
		{Name: "Bank Transfer", Keywords: []string{"bank", "bankpush", "bank push", "transfer"}},
		{Name: "Healthcare", Keywords: []string{"hospital", "pharmacy", "clinic", "doctor", "medical"}},
		{Name: "Entertainment", Keywords: []string{"movie", "cinema", "netflix", "spotify", "game"}},
	}
}
