package core

import "strings"

// Filters is an ephemeral query specification narrowing the displayed
// expense subset. The zero value plus CategoryAll matches everything;
// filters are never persisted across sessions.
type Filters struct {
	Search    string
	Category  Category
	StartDate Date
	EndDate   Date
}

// DefaultFilters returns the reset state: empty search, all categories,
// no date bounds.
func DefaultFilters() Filters {
	return Filters{Category: CategoryAll}
}

// IsActive reports whether any predicate restricts the collection.
func (f Filters) IsActive() bool {
	return f.Search != "" || (f.Category != "" && f.Category != CategoryAll) ||
		!f.StartDate.IsZero() || !f.EndDate.IsZero()
}

// Matches evaluates every active predicate against e, combined with AND.
//
// The search term matches case-insensitively against description OR
// category. StartDate excludes expenses strictly before it; EndDate is
// inclusive of the whole end day.
func (f Filters) Matches(e Expense) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Description), q) &&
			!strings.Contains(strings.ToLower(string(e.Category)), q) {
			return false
		}
	}
	if f.Category != "" && f.Category != CategoryAll && e.Category != f.Category {
		return false
	}
	if !f.StartDate.IsZero() && e.Date.Before(f.StartDate.Time) {
		return false
	}
	if !f.EndDate.IsZero() && e.Date.After(f.EndDate.Time) {
		return false
	}
	return true
}

// ApplyFilters returns the expenses matching f, preserving input order.
// Sorting for display is a presentation concern.
func ApplyFilters(expenses []Expense, f Filters) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
