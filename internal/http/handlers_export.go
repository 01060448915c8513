package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"spendlog/internal/core"
	"spendlog/internal/export"
)

// exportTemplateNames lists the canned export layouts for the UI.
func exportTemplateNames() []string {
	names := make([]string, len(export.Templates))
	for i, t := range export.Templates {
		names[i] = string(t)
	}
	return names
}

// exportFilters reads the optional category/start/end query parameters
// narrowing an export beyond the store's display filters.
func exportFilters(query url.Values) (core.Filters, error) {
	f := core.DefaultFilters()
	if raw := strings.TrimSpace(query.Get("category")); raw != "" && raw != string(core.CategoryAll) {
		c, err := core.ParseCategory(raw)
		if err != nil {
			return f, err
		}
		f.Category = c
	}
	start, err := parseOptionalDate(query.Get("start"))
	if err != nil {
		return f, err
	}
	f.StartDate = start
	end, err := parseOptionalDate(query.Get("end"))
	if err != nil {
		return f, err
	}
	f.EndDate = end
	return f, nil
}

// exportExpenses resolves the rows an export endpoint covers: the store's
// displayed subset, narrowed further by any query-level filters.
func (s *Server) exportExpenses(r *http.Request) ([]core.Expense, error) {
	f, err := exportFilters(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return core.ApplyFilters(s.store.FilteredExpenses(), f), nil
}

// handleExportCSV streams the filtered collection as a CSV download. An
// optional template query selects one of the canned layouts; without it the
// plain four-column format is used. Category and date-range query parameters
// narrow the export independently of the on-screen filters.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	expenses, ferr := s.exportExpenses(r)
	if ferr != nil {
		BadRequestError("Invalid export filter").Write(w)
		return
	}

	var (
		body         string
		err          error
		templateName = strings.TrimSpace(r.URL.Query().Get("template"))
	)
	if templateName == "" {
		body, err = export.CSV(expenses)
	} else {
		tmpl := export.Template(templateName)
		if !tmpl.IsValid() {
			BadRequestError("Unknown export template").Write(w)
			return
		}
		body, err = export.Render(tmpl, expenses)
	}
	if err != nil {
		if errors.Is(err, export.ErrNoExpenses) {
			UnprocessableEntityError("No expenses to export").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
		InternalServerError("Export failed").Write(w)
		return
	}

	filename := export.Filename("expenses", "csv", s.now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(body))

	s.hub.RecordExport(exportTypeLabel(templateName), "Download", len(expenses), len(body))
	slog.InfoContext(r.Context(), "CSV export served", "template", templateName, "count", len(expenses))
}

// handleExportJSON streams the filtered collection as a JSON download.
func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	expenses, ferr := s.exportExpenses(r)
	if ferr != nil {
		BadRequestError("Invalid export filter").Write(w)
		return
	}
	body, err := export.JSON(expenses)
	if err != nil {
		if errors.Is(err, export.ErrNoExpenses) {
			UnprocessableEntityError("No expenses to export").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "JSON export failed", "error", err)
		InternalServerError("Export failed").Write(w)
		return
	}

	filename := export.Filename("expenses", "json", s.now())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(body)

	s.hub.RecordExport("JSON Export", "Download", len(expenses), len(body))
	slog.InfoContext(r.Context(), "JSON export served", "count", len(expenses))
}

// handleExportReport serves the printable HTML report inline so the
// browser can open it for printing. The same query filters apply as for
// the CSV and JSON downloads.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	expenses, ferr := s.exportExpenses(r)
	if ferr != nil {
		BadRequestError("Invalid export filter").Write(w)
		return
	}
	body, err := export.HTMLReport(expenses, s.now())
	if err != nil {
		if errors.Is(err, export.ErrNoExpenses) {
			UnprocessableEntityError("No expenses to export").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Report export failed", "error", err)
		InternalServerError("Export failed").Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))

	s.hub.RecordExport("Printable Report", "Download", len(expenses), len(body))
	slog.InfoContext(r.Context(), "Report export served", "count", len(expenses))
}

func exportTypeLabel(templateName string) string {
	switch export.Template(templateName) {
	case export.TemplateTaxReport:
		return "Tax Report"
	case export.TemplateMonthlySummary:
		return "Monthly Summary"
	case export.TemplateCategoryAnalysis:
		return "Category Analysis"
	default:
		return "Full Export"
	}
}
