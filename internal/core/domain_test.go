package core

import (
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2024, 1, 15), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 15 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("15/01/2024"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Fatalf("category %q: got %q, %v", c, got, err)
		}
	}
	if _, err := ParseCategory("Groceries"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if _, err := ParseCategory("All"); err == nil {
		t.Fatalf("All is a filter sentinel, not a category")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2024, 1, 15),
		Description: "Lunch",
		Amount:      Money{Cents: 4250},
		Category:    Food,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Date: Date{}, Description: "a", Amount: Money{Cents: 1}, Category: Food},
		{Date: NewDate(2024, 1, 1), Description: "  ", Amount: Money{Cents: 1}, Category: Food},
		{Date: NewDate(2024, 1, 1), Description: "a", Amount: Money{Cents: 0}, Category: Food},
		{Date: NewDate(2024, 1, 1), Description: "a", Amount: Money{Cents: 1}, Category: "Groceries"},
		{Date: NewDate(2024, 1, 1), Description: "a", Amount: Money{Cents: MaxAmountCents + 1}, Category: Food},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateSameMonth(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	if !NewDate(2024, 1, 1).SameMonth(now) {
		t.Fatalf("same month expected")
	}
	if NewDate(2023, 1, 20).SameMonth(now) {
		t.Fatalf("different year must not match")
	}
	if NewDate(2024, 2, 1).SameMonth(now) {
		t.Fatalf("different month must not match")
	}
}
