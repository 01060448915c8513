package core

import "time"

// Summary holds aggregate statistics derived from the full expense
// collection. It is recomputed on every collection change and never
// persisted.
type Summary struct {
	TotalSpending     Money
	MonthlySpending   Money
	CategoryBreakdown map[Category]Money
	AverageExpense    Money
	ExpenseCount      int
}

// ComputeSummary derives a Summary from expenses. The current date is an
// explicit parameter so "this month" is deterministic under test; callers
// pass time.Now().
//
// Categories with no expenses are absent from CategoryBreakdown; a missing
// key reads as zero. The average is rounded half-up to the nearest cent and
// is zero for an empty collection.
func ComputeSummary(expenses []Expense, now time.Time) Summary {
	s := Summary{
		CategoryBreakdown: make(map[Category]Money),
		ExpenseCount:      len(expenses),
	}

	for _, e := range expenses {
		s.TotalSpending.Cents += e.Amount.Cents
		s.CategoryBreakdown[e.Category] = s.CategoryBreakdown[e.Category].Add(e.Amount)
		if e.Date.SameMonth(now) {
			s.MonthlySpending.Cents += e.Amount.Cents
		}
	}

	if len(expenses) > 0 {
		n := int64(len(expenses))
		s.AverageExpense = Money{Cents: (s.TotalSpending.Cents + n/2) / n}
	}
	return s
}
