package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"42.50", 4250, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"1000000", 100_000_000, true},
		{"1000000.01", 0, false},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: got %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestMoneyDecimal(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{4250, "42.50"},
		{5, "0.05"},
		{100, "1.00"},
		{-1234, "-12.34"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Decimal(); got != tc.want {
			t.Fatalf("%d cents: got %q want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyDollarsRoundTrip(t *testing.T) {
	for _, cents := range []int64{1, 99, 100, 4250, 999999, MaxAmountCents} {
		m := Money{Cents: cents}
		if back := MoneyFromDollars(m.Dollars()); back != m {
			t.Fatalf("round trip %d -> %f -> %d", cents, m.Dollars(), back.Cents)
		}
	}
}

func TestMoneyUSD(t *testing.T) {
	if got := (Money{Cents: 4250}).USD(); got != "$42.50" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: -50}).USD(); got != "-$0.50" {
		t.Fatalf("got %q", got)
	}
}
