package core

import (
	"testing"
	"time"
)

func TestTopCategoriesOrderingAndTieBreak(t *testing.T) {
	c := []Expense{
		expense(3000, Shopping, "a", NewDate(2024, 1, 1)),
		expense(1000, Food, "b", NewDate(2024, 1, 2)),
		expense(1000, Bills, "c", NewDate(2024, 1, 3)),
	}
	ranks := TopCategories(c)
	if len(ranks) != 3 {
		t.Fatalf("got %d ranks", len(ranks))
	}
	if ranks[0].Category != Shopping || ranks[0].Rank != 1 {
		t.Fatalf("top = %+v", ranks[0])
	}
	// Equal totals: Bills sorts before Food by name.
	if ranks[1].Category != Bills || ranks[2].Category != Food {
		t.Fatalf("tie-break wrong: %v, %v", ranks[1].Category, ranks[2].Category)
	}
	if ranks[0].Percentage != 60 {
		t.Fatalf("percentage = %f", ranks[0].Percentage)
	}
}

func TestTopVendorsAggregation(t *testing.T) {
	c := []Expense{
		expense(1000, Food, "Corner Cafe", NewDate(2024, 1, 1)),
		expense(3000, Food, "Corner Cafe", NewDate(2024, 1, 8)),
		expense(500, Shopping, "Corner Cafe", NewDate(2024, 1, 9)),
		expense(2500, Bills, "Utility Co", NewDate(2024, 1, 2)),
		expense(9900, Other, "   ", NewDate(2024, 1, 3)), // blank vendor, skipped
	}
	vendors := TopVendors(c)
	if len(vendors) != 2 {
		t.Fatalf("got %d vendors", len(vendors))
	}
	top := vendors[0]
	if top.Name != "Corner Cafe" || top.Total.Cents != 4500 || top.Count != 3 {
		t.Fatalf("top vendor = %+v", top)
	}
	if top.Average.Cents != 1500 {
		t.Fatalf("average = %d", top.Average.Cents)
	}
	if top.ByCategory[Food].Cents != 4000 || top.ByCategory[Shopping].Cents != 500 {
		t.Fatalf("breakdown = %+v", top.ByCategory)
	}
}

func TestMonthlyTrendZeroFills(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	c := []Expense{
		expense(1000, Food, "jan", NewDate(2024, 1, 5)),
		expense(2000, Food, "mar", NewDate(2024, 3, 5)),
		expense(4000, Food, "too old", NewDate(2023, 9, 5)),
	}
	trend := MonthlyTrend(c, now, 6)
	if len(trend) != 6 {
		t.Fatalf("got %d months", len(trend))
	}
	if trend[0].Month != time.October || trend[0].Year != 2023 {
		t.Fatalf("oldest = %+v", trend[0])
	}
	if trend[5].Month != time.March || trend[5].Total.Cents != 2000 {
		t.Fatalf("newest = %+v", trend[5])
	}
	if trend[3].Month != time.January || trend[3].Total.Cents != 1000 {
		t.Fatalf("january = %+v", trend[3])
	}
	if trend[4].Total.Cents != 0 {
		t.Fatalf("february should be zero-filled, got %d", trend[4].Total.Cents)
	}
}

func TestBudgetStreak(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	budget := Money{Cents: 10000}
	c := []Expense{
		expense(5000, Food, "today", NewDate(2024, 1, 10)),
		expense(9000, Food, "yesterday", NewDate(2024, 1, 9)),
		expense(15000, Shopping, "blowout", NewDate(2024, 1, 8)),
	}
	if got := BudgetStreak(c, now, budget); got != 2 {
		t.Fatalf("streak = %d", got)
	}
	// No expenses at all: the whole lookback window is under budget.
	if got := BudgetStreak(nil, now, budget); got != 365 {
		t.Fatalf("empty streak = %d", got)
	}
}
