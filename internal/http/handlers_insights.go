package http

import (
	"fmt"
	"net/http"

	"spendlog/internal/core"
)

// Insight partials are cached by route and query until the next mutation.
// A cache hit skips both aggregation and template execution.
func (s *Server) cachedPartial(w http.ResponseWriter, r *http.Request, name string, build func() any) {
	key := name + "?" + r.URL.RawQuery
	if html, ok := s.fragments.Get(key); ok {
		NewHTMXResponse().BodyHTML(html).Write(w)
		return
	}

	html, err := s.renderToString(name, build())
	if err != nil {
		InternalServerError("Rendering failed").Write(w)
		return
	}
	s.fragments.Set(key, html)
	NewHTMXResponse().BodyHTML(html).Write(w)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	s.cachedPartial(w, r, "summary.html", func() any {
		summary := s.store.Summary()

		type categoryAmount struct {
			Category string
			Amount   string
		}
		breakdown := make([]categoryAmount, 0, len(summary.CategoryBreakdown))
		for _, c := range core.Categories {
			if amount, ok := summary.CategoryBreakdown[c]; ok {
				breakdown = append(breakdown, categoryAmount{Category: string(c), Amount: amount.USD()})
			}
		}

		return struct {
			TotalSpending   string
			MonthlySpending string
			AverageExpense  string
			ExpenseCount    int
			Breakdown       []categoryAmount
		}{
			TotalSpending:   summary.TotalSpending.USD(),
			MonthlySpending: summary.MonthlySpending.USD(),
			AverageExpense:  summary.AverageExpense.USD(),
			ExpenseCount:    summary.ExpenseCount,
			Breakdown:       breakdown,
		}
	})
}

func (s *Server) handleTopCategories(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	limit := parsePositiveInt(r.URL.Query(), "limit", 6, len(core.Categories))
	s.cachedPartial(w, r, "top_categories.html", func() any {
		ranks := core.TopCategories(s.store.Expenses())
		if len(ranks) > limit {
			ranks = ranks[:limit]
		}

		type rankView struct {
			Rank       int
			Category   string
			Amount     string
			Count      int
			Percentage string
		}
		views := make([]rankView, len(ranks))
		for i, rank := range ranks {
			views[i] = rankView{
				Rank:       rank.Rank,
				Category:   string(rank.Category),
				Amount:     rank.Amount.USD(),
				Count:      rank.Count,
				Percentage: fmt.Sprintf("%.1f%%", rank.Percentage),
			}
		}
		return struct{ Ranks []rankView }{Ranks: views}
	})
}

func (s *Server) handleTopVendors(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	limit := parsePositiveInt(r.URL.Query(), "limit", 5, 50)
	s.cachedPartial(w, r, "top_vendors.html", func() any {
		vendors := core.TopVendors(s.store.Expenses())
		if len(vendors) > limit {
			vendors = vendors[:limit]
		}

		type vendorView struct {
			Name    string
			Total   string
			Count   int
			Average string
		}
		views := make([]vendorView, len(vendors))
		for i, v := range vendors {
			views[i] = vendorView{
				Name:    v.Name,
				Total:   v.Total.USD(),
				Count:   v.Count,
				Average: v.Average.USD(),
			}
		}
		return struct{ Vendors []vendorView }{Vendors: views}
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	months := parsePositiveInt(r.URL.Query(), "months", 6, 24)
	s.cachedPartial(w, r, "trend.html", func() any {
		trend := core.MonthlyTrend(s.store.Expenses(), s.now(), months)

		type monthView struct {
			Label string
			Total string
		}
		views := make([]monthView, len(trend))
		for i, m := range trend {
			views[i] = monthView{
				Label: fmt.Sprintf("%s %d", m.Month.String()[:3], m.Year),
				Total: m.Total.USD(),
			}
		}
		return struct{ Months []monthView }{Months: views}
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	s.cachedPartial(w, r, "streak.html", func() any {
		return struct {
			Days   int
			Budget string
		}{
			Days:   core.BudgetStreak(s.store.Expenses(), s.now(), s.dailyBudget),
			Budget: s.dailyBudget.USD(),
		}
	})
}
