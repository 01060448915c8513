// Package export renders expense collections as downloadable CSV and JSON
// documents.
//
// The CSV column order is Date,Category,Description,Amount. Dates use the
// localized short form (1/15/2024) and amounts carry exactly two decimal
// digits. Descriptions are quoted only when they contain a comma or a quote
// character, with inner quotes doubled.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"spendlog/internal/core"
)

// ErrNoExpenses aborts an export before any content generation when the
// result set is empty. Surfaced to the user as a blocking notification.
var ErrNoExpenses = errors.New("no expenses to export")

// Template identifies one of the canned export layouts.
type Template string

const (
	TemplateFull             Template = "full-export"
	TemplateTaxReport        Template = "tax-report"
	TemplateMonthlySummary   Template = "monthly-summary"
	TemplateCategoryAnalysis Template = "category-analysis"
)

// Templates lists every export template in display order.
var Templates = []Template{TemplateFull, TemplateTaxReport, TemplateMonthlySummary, TemplateCategoryAnalysis}

func (t Template) IsValid() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

// CSV renders the standard expense listing.
func CSV(expenses []core.Expense) (string, error) {
	if len(expenses) == 0 {
		return "", ErrNoExpenses
	}
	var b strings.Builder
	b.WriteString("Date,Category,Description,Amount\n")
	for _, e := range expenses {
		writeRow(&b, shortDate(e.Date), string(e.Category), csvField(e.Description), e.Amount.Decimal())
	}
	return b.String(), nil
}

// JSON renders the collection as a pretty-printed array of
// {date, category, amount, description} objects, amount as a number.
func JSON(expenses []core.Expense) ([]byte, error) {
	if len(expenses) == 0 {
		return nil, ErrNoExpenses
	}
	type row struct {
		Date        string  `json:"date"`
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}
	rows := make([]row, len(expenses))
	for i, e := range expenses {
		rows[i] = row{
			Date:        e.Date.ISO(),
			Category:    string(e.Category),
			Amount:      e.Amount.Dollars(),
			Description: e.Description,
		}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// Render produces the content for the given template.
func Render(tmpl Template, expenses []core.Expense) (string, error) {
	if len(expenses) == 0 {
		return "", ErrNoExpenses
	}
	switch tmpl {
	case TemplateFull:
		return fullExportCSV(expenses)
	case TemplateTaxReport:
		return taxReportCSV(expenses)
	case TemplateMonthlySummary:
		return monthlySummaryCSV(expenses)
	case TemplateCategoryAnalysis:
		return categoryAnalysisCSV(expenses)
	default:
		return "", fmt.Errorf("unknown export template %q", tmpl)
	}
}

// fullExportCSV includes every stored field.
func fullExportCSV(expenses []core.Expense) (string, error) {
	var b strings.Builder
	b.WriteString("ID,Date,Category,Description,Amount,CreatedAt,UpdatedAt\n")
	for _, e := range expenses {
		writeRow(&b,
			e.ID,
			e.Date.ISO(),
			string(e.Category),
			csvField(e.Description),
			e.Amount.Decimal(),
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.UpdatedAt.UTC().Format(time.RFC3339),
		)
	}
	return b.String(), nil
}

// taxReportCSV is the standard listing followed by per-category totals.
func taxReportCSV(expenses []core.Expense) (string, error) {
	body, err := CSV(expenses)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\nCategory Totals\nCategory,Total\n")
	for _, r := range core.TopCategories(expenses) {
		writeRow(&b, string(r.Category), r.Amount.Decimal())
	}
	return b.String(), nil
}

// monthlySummaryCSV aggregates by month and category.
func monthlySummaryCSV(expenses []core.Expense) (string, error) {
	type key struct {
		month    string // YYYY-MM, sortable
		category core.Category
	}
	totals := make(map[key]core.Money)
	counts := make(map[key]int)
	for _, e := range expenses {
		k := key{month: e.Date.Format("2006-01"), category: e.Category}
		totals[k] = totals[k].Add(e.Amount)
		counts[k]++
	}

	keys := make([]key, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].month != keys[j].month {
			return keys[i].month < keys[j].month
		}
		return keys[i].category < keys[j].category
	})

	var b strings.Builder
	b.WriteString("Month,Category,Total,Average\n")
	for _, k := range keys {
		n := int64(counts[k])
		avg := core.Money{Cents: (totals[k].Cents + n/2) / n}
		writeRow(&b, k.month, string(k.category), totals[k].Decimal(), avg.Decimal())
	}
	return b.String(), nil
}

// categoryAnalysisCSV gives per-category totals with their share of total
// spending.
func categoryAnalysisCSV(expenses []core.Expense) (string, error) {
	var b strings.Builder
	b.WriteString("Category,Total,Percentage\n")
	for _, r := range core.TopCategories(expenses) {
		writeRow(&b, string(r.Category), r.Amount.Decimal(), fmt.Sprintf("%.1f%%", r.Percentage))
	}
	return b.String(), nil
}

// Filename builds a download name like "expenses_2024-01-20.csv".
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("2006-01-02"), ext)
}

func writeRow(b *strings.Builder, fields ...string) {
	b.WriteString(strings.Join(fields, ","))
	b.WriteByte('\n')
}

// csvField quotes a value only when it contains a comma or a quote,
// doubling inner quotes.
func csvField(s string) string {
	if !strings.ContainsAny(s, `",`) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// shortDate is the localized short date used in CSV exports, e.g. "1/15/2024".
func shortDate(d core.Date) string {
	return fmt.Sprintf("%d/%d/%d", int(d.Month()), d.Day(), d.Year())
}
