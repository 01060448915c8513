// Package core provides the expense domain model and pure computation
// over expense collections.
//
// This file contains money parsing and formatting. Amounts are stored as
// integer cents; dollars appear only at serialization and display
// boundaries.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// MaxAmountCents caps a single expense at $1,000,000.
const MaxAmountCents int64 = 100_000_000

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. The result is always positive
// cents within MaxAmountCents. Returns an error for invalid formats, negative
// values, zero, or amounts over the cap.
//
// Examples:
//
//	ParseDecimalToCents("42.50") -> 4250, nil
//	ParseDecimalToCents("12,34") -> 1234, nil
//	ParseDecimalToCents("12.346") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return 0, ErrInvalidAmount
	}
	// Split into integer and fractional part
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64 = 0
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 {
				if fracPart[2] >= '5' {
					fracCents++
				}
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	if cents > MaxAmountCents {
		return 0, ErrAmountTooLarge
	}
	return cents, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	if m.Cents > MaxAmountCents {
		return ErrAmountTooLarge
	}
	return nil
}

// Dollars returns the dollar value as a float64. Used for the durable JSON
// format and exports; calculations stay in cents.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// MoneyFromDollars converts a dollar amount to Money, rounding half away
// from zero to the nearest cent.
func MoneyFromDollars(d float64) Money {
	return Money{Cents: int64(math.Round(d * 100))}
}

// Decimal returns the amount with exactly two decimal digits and no
// currency symbol, e.g. "42.50".
func (m Money) Decimal() string {
	neg := m.Cents < 0
	cents := m.Cents
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// USD formats the amount as a US dollar string, e.g. "$42.50".
func (m Money) USD() string {
	if m.Cents < 0 {
		return "-$" + Money{Cents: -m.Cents}.Decimal()
	}
	return "$" + m.Decimal()
}

// Add returns the sum of m and n.
func (m Money) Add(n Money) Money {
	return Money{Cents: m.Cents + n.Cents}
}
