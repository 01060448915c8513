package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/store"
)

// parseExpenseInput builds a validated ExpenseInput from form values.
// The date defaults to today when omitted and may not be in the future.
func parseExpenseInput(form url.Values, now time.Time) (core.ExpenseInput, error) {
	var in core.ExpenseInput

	today := core.DateOf(now)
	in.Date = today
	if v := strings.TrimSpace(form.Get("date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return in, err
		}
		in.Date = d
	}
	if in.Date.Time.After(today.Time) {
		return in, core.ErrFutureDate
	}

	in.Description = sanitizeInput(form.Get("description"))

	amount := strings.TrimSpace(form.Get("amount"))
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		return in, err
	}
	in.Amount = core.Money{Cents: cents}

	category, err := core.ParseCategory(form.Get("category"))
	if err != nil {
		return in, err
	}
	in.Category = category

	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}

// parseFilterUpdate builds a partial filter change from form values.
// Only present keys participate; absent keys keep the current filter.
func parseFilterUpdate(form url.Values) (store.FilterUpdate, error) {
	var update store.FilterUpdate

	if form.Has("search") {
		search := sanitizeInput(form.Get("search"))
		update.Search = &search
	}
	if form.Has("category") {
		raw := strings.TrimSpace(form.Get("category"))
		category := core.Category(raw)
		if raw == "" || category == core.CategoryAll {
			all := core.CategoryAll
			update.Category = &all
		} else if !category.IsValid() {
			return update, core.ErrInvalidCategory
		} else {
			update.Category = &category
		}
	}
	if form.Has("start") {
		date, err := parseOptionalDate(form.Get("start"))
		if err != nil {
			return update, fmt.Errorf("start date: %w", err)
		}
		update.StartDate = &date
	}
	if form.Has("end") {
		date, err := parseOptionalDate(form.Get("end"))
		if err != nil {
			return update, fmt.Errorf("end date: %w", err)
		}
		update.EndDate = &date
	}

	return update, nil
}

// parseOptionalDate treats an empty string as "no bound".
func parseOptionalDate(s string) (core.Date, error) {
	if strings.TrimSpace(s) == "" {
		return core.Date{}, nil
	}
	return core.ParseDate(s)
}

// parsePositiveInt reads a bounded positive integer query parameter,
// falling back to def when absent or unusable.
func parsePositiveInt(query url.Values, key string, def, max int) int {
	v := strings.TrimSpace(query.Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireGET is a convenience function for GET-only handlers.
func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet)
}

// RequireDeleteOrPOST is a convenience function for DELETE/POST handlers.
func RequireDeleteOrPOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodDelete, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on
// failure. Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}
