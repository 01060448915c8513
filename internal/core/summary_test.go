package core

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func expense(amountCents int64, cat Category, desc string, date Date) Expense {
	return Expense{
		ID:          desc,
		Date:        date,
		Description: desc,
		Amount:      Money{Cents: amountCents},
		Category:    cat,
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	s := ComputeSummary(nil, testNow)
	if s.ExpenseCount != 0 {
		t.Fatalf("count = %d", s.ExpenseCount)
	}
	if s.TotalSpending.Cents != 0 || s.MonthlySpending.Cents != 0 {
		t.Fatalf("totals must be zero")
	}
	if s.AverageExpense.Cents != 0 {
		t.Fatalf("average must be zero for empty collection, got %d", s.AverageExpense.Cents)
	}
	if len(s.CategoryBreakdown) != 0 {
		t.Fatalf("breakdown must be empty")
	}
}

func TestComputeSummarySingleExpense(t *testing.T) {
	// One expense: 42.50, Food, dated 2024-01-15.
	c := []Expense{expense(4250, Food, "Lunch", NewDate(2024, 1, 15))}
	s := ComputeSummary(c, testNow)

	if s.TotalSpending.Cents != 4250 {
		t.Fatalf("total = %d", s.TotalSpending.Cents)
	}
	if s.ExpenseCount != 1 {
		t.Fatalf("count = %d", s.ExpenseCount)
	}
	if s.MonthlySpending.Cents != 4250 {
		t.Fatalf("monthly = %d", s.MonthlySpending.Cents)
	}
}

func TestComputeSummaryBreakdownAndAverage(t *testing.T) {
	c := []Expense{
		expense(1000, Food, "Lunch", NewDate(2024, 1, 10)),
		expense(2000, Bills, "Electric", NewDate(2024, 1, 12)),
	}
	s := ComputeSummary(c, testNow)

	if s.TotalSpending.Cents != 3000 {
		t.Fatalf("total = %d", s.TotalSpending.Cents)
	}
	if s.AverageExpense.Cents != 1500 {
		t.Fatalf("average = %d", s.AverageExpense.Cents)
	}
	if got := s.CategoryBreakdown[Food].Cents; got != 1000 {
		t.Fatalf("food = %d", got)
	}
	if got := s.CategoryBreakdown[Bills].Cents; got != 2000 {
		t.Fatalf("bills = %d", got)
	}
	// Absent categories read as zero, not as entries.
	if _, present := s.CategoryBreakdown[Entertainment]; present {
		t.Fatalf("empty category must be absent from breakdown")
	}
	if s.CategoryBreakdown[Entertainment].Cents != 0 {
		t.Fatalf("missing key must read as zero")
	}
}

func TestComputeSummaryMonthlyUsesGivenClock(t *testing.T) {
	c := []Expense{
		expense(1000, Food, "this month", NewDate(2024, 1, 1)),
		expense(2000, Food, "last month", NewDate(2023, 12, 31)),
		expense(4000, Food, "same month last year", NewDate(2023, 1, 15)),
	}
	s := ComputeSummary(c, testNow)
	if s.MonthlySpending.Cents != 1000 {
		t.Fatalf("monthly = %d", s.MonthlySpending.Cents)
	}
	if s.TotalSpending.Cents != 7000 {
		t.Fatalf("total = %d", s.TotalSpending.Cents)
	}
}

func TestComputeSummaryCountMatchesLength(t *testing.T) {
	var c []Expense
	for i := 1; i <= 17; i++ {
		c = append(c, expense(int64(i*100), Other, "e", NewDate(2024, 1, 1)))
	}
	if s := ComputeSummary(c, testNow); s.ExpenseCount != len(c) {
		t.Fatalf("count %d != len %d", s.ExpenseCount, len(c))
	}
}
