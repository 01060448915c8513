package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/storage"
)

var exportNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func fixture() []core.Expense {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return []core.Expense{
		{
			ID: "a1", Date: core.NewDate(2024, 1, 15), Description: "Lunch",
			Amount: core.Money{Cents: 4250}, Category: core.Food,
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "b2", Date: core.NewDate(2024, 1, 16), Description: `Cafe "Aroma", downtown`,
			Amount: core.Money{Cents: 1200}, Category: core.Food,
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "c3", Date: core.NewDate(2023, 12, 5), Description: "Electric",
			Amount: core.Money{Cents: 8000}, Category: core.Bills,
			CreatedAt: created, UpdatedAt: created,
		},
	}
}

func TestCSV(t *testing.T) {
	got, err := CSV(fixture())
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[0] != "Date,Category,Description,Amount" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "1/15/2024,Food,Lunch,42.50" {
		t.Fatalf("row 1 = %q", lines[1])
	}
	// Description with comma and quotes: quoted, inner quotes doubled.
	if lines[2] != `1/16/2024,Food,"Cafe ""Aroma"", downtown",12.00` {
		t.Fatalf("row 2 = %q", lines[2])
	}
}

func TestCSVEmptyCollectionAborts(t *testing.T) {
	if _, err := CSV(nil); !errors.Is(err, ErrNoExpenses) {
		t.Fatalf("got %v", err)
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(fixture())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var rows []struct {
		Date        string  `json:"date"`
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Date != "2024-01-15" || rows[0].Amount != 42.50 || rows[0].Category != "Food" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	// Pretty-printed output.
	if !strings.Contains(string(data), "\n  {") {
		t.Fatalf("expected indented JSON")
	}
}

func TestRenderTemplates(t *testing.T) {
	c := fixture()
	for _, tmpl := range Templates {
		got, err := Render(tmpl, c)
		if err != nil {
			t.Fatalf("%s: %v", tmpl, err)
		}
		if got == "" {
			t.Fatalf("%s: empty content", tmpl)
		}
	}
	if _, err := Render(Template("bogus"), c); err == nil {
		t.Fatalf("expected error for unknown template")
	}
	if _, err := Render(TemplateTaxReport, nil); !errors.Is(err, ErrNoExpenses) {
		t.Fatalf("empty set must abort, got %v", err)
	}
}

func TestTaxReportIncludesCategoryTotals(t *testing.T) {
	got, err := Render(TemplateTaxReport, fixture())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "Category Totals") {
		t.Fatalf("missing totals section:\n%s", got)
	}
	if !strings.Contains(got, "Bills,80.00") {
		t.Fatalf("missing Bills total:\n%s", got)
	}
}

func TestMonthlySummaryGroupsByMonth(t *testing.T) {
	got, err := Render(TemplateMonthlySummary, fixture())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[0] != "Month,Category,Total,Average" {
		t.Fatalf("header = %q", lines[0])
	}
	// December sorts before January; Food total for 2024-01 is 42.50+12.00.
	if lines[1] != "2023-12,Bills,80.00,80.00" {
		t.Fatalf("line 1 = %q", lines[1])
	}
	if lines[2] != "2024-01,Food,54.50,27.25" {
		t.Fatalf("line 2 = %q", lines[2])
	}
}

func TestSchedulerExportOnce(t *testing.T) {
	repo := storage.NewMemoryRepository()
	if err := repo.Save(context.Background(), fixture()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	dir := t.TempDir()
	s := NewScheduler(repo, dir, time.Hour)
	s.now = func() time.Time { return exportNow }

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := s.ExportOnce(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected csv+json snapshot, got %d files", len(entries))
	}
	csvData, err := os.ReadFile(filepath.Join(dir, "expenses_2024-01-20_120000.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.HasPrefix(string(csvData), "Date,Category,Description,Amount") {
		t.Fatalf("csv content = %q", csvData)
	}
}

func TestSchedulerSkipsEmptyCollection(t *testing.T) {
	dir := t.TempDir()
	s := NewScheduler(storage.NewMemoryRepository(), dir, time.Hour)
	if err := s.ExportOnce(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("empty collection must not produce files")
	}
}
