package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Entertainment  Category = "Entertainment"
	Shopping       Category = "Shopping"
	Bills          Category = "Bills"
	Other          Category = "Other"

	// CategoryAll is the filter sentinel meaning "no category restriction".
	// It is never a valid expense category.
	CategoryAll Category = "All"
)

// Categories lists every valid expense category in display order.
var Categories = []Category{Food, Transportation, Entertainment, Shopping, Bills, Other}

type (
	Category string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is a single recorded transaction. ID and the two timestamps
	// are owned by the store; callers never set them.
	Expense struct {
		ID          string
		Date        Date
		Description string
		Amount      Money
		Category    Category
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// ExpenseInput carries the user-editable fields of an expense,
	// already parsed and sanitized at the request boundary.
	ExpenseInput struct {
		Date        Date
		Description string
		Amount      Money
		Category    Category
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrFutureDate       = errors.New("date cannot be in the future")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidCategory  = errors.New("invalid category")
)

// IsValid reports whether c is one of the six expense categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory returns the category matching s, or ErrInvalidCategory.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DateOf truncates t to day precision in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ISO returns the date in YYYY-MM-DD form, the durable storage format.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// Display returns the date as a short localized date, e.g. "Jan 15, 2024".
func (d Date) Display() string {
	return d.Format("Jan 2, 2006")
}

// SameMonth reports whether d falls in the same calendar month and year as t.
func (d Date) SameMonth(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month()
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

func (in ExpenseInput) Validate() error {
	return Expense{
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
	}.Validate()
}
