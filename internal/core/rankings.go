package core

import (
	"sort"
	"strings"
	"time"
)

// CategoryRank is one row of the top-categories view.
type CategoryRank struct {
	Rank       int
	Category   Category
	Amount     Money
	Count      int
	Percentage float64 // share of total spending, 0-100
}

// VendorStats aggregates spending for one vendor. The trimmed expense
// description doubles as the vendor name; blank descriptions are skipped.
type VendorStats struct {
	Name       string
	Total      Money
	Count      int
	Average    Money
	ByCategory map[Category]Money
}

// MonthTotal is one point of the monthly spending trend.
type MonthTotal struct {
	Year  int
	Month time.Month
	Total Money
}

// TopCategories ranks categories by descending total amount. Ties break on
// ascending category name so the ordering is deterministic. Categories with
// no expenses are omitted.
func TopCategories(expenses []Expense) []CategoryRank {
	totals := make(map[Category]Money)
	counts := make(map[Category]int)
	var grand int64
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
		counts[e.Category]++
		grand += e.Amount.Cents
	}

	ranks := make([]CategoryRank, 0, len(totals))
	for c, amount := range totals {
		r := CategoryRank{Category: c, Amount: amount, Count: counts[c]}
		if grand > 0 {
			r.Percentage = float64(amount.Cents) / float64(grand) * 100
		}
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Amount.Cents != ranks[j].Amount.Cents {
			return ranks[i].Amount.Cents > ranks[j].Amount.Cents
		}
		return ranks[i].Category < ranks[j].Category
	})
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks
}

// TopVendors aggregates expenses by vendor and sorts by descending total,
// ties broken by ascending name.
func TopVendors(expenses []Expense) []VendorStats {
	byName := make(map[string]*VendorStats)
	for _, e := range expenses {
		name := trimVendor(e.Description)
		if name == "" {
			continue
		}
		v, ok := byName[name]
		if !ok {
			v = &VendorStats{Name: name, ByCategory: make(map[Category]Money)}
			byName[name] = v
		}
		v.Total = v.Total.Add(e.Amount)
		v.Count++
		v.ByCategory[e.Category] = v.ByCategory[e.Category].Add(e.Amount)
	}

	vendors := make([]VendorStats, 0, len(byName))
	for _, v := range byName {
		n := int64(v.Count)
		v.Average = Money{Cents: (v.Total.Cents + n/2) / n}
		vendors = append(vendors, *v)
	}
	sort.Slice(vendors, func(i, j int) bool {
		if vendors[i].Total.Cents != vendors[j].Total.Cents {
			return vendors[i].Total.Cents > vendors[j].Total.Cents
		}
		return vendors[i].Name < vendors[j].Name
	})
	return vendors
}

// MonthlyTrend returns totals for the last `months` calendar months ending
// with the month of now, oldest first. Months without expenses appear with
// a zero total.
func MonthlyTrend(expenses []Expense, now time.Time, months int) []MonthTotal {
	if months <= 0 {
		return nil
	}
	trend := make([]MonthTotal, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		t := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i-months+1, 0)
		trend[i] = MonthTotal{Year: t.Year(), Month: t.Month()}
		index[t.Format("2006-01")] = i
	}
	for _, e := range expenses {
		if i, ok := index[e.Date.Format("2006-01")]; ok {
			trend[i].Total = trend[i].Total.Add(e.Amount)
		}
	}
	return trend
}

// BudgetStreak counts consecutive days, ending today, whose total spend
// stayed at or under dailyBudget. The scan looks back at most a year.
func BudgetStreak(expenses []Expense, now time.Time, dailyBudget Money) int {
	perDay := make(map[string]int64)
	for _, e := range expenses {
		perDay[e.Date.ISO()] += e.Amount.Cents
	}

	streak := 0
	day := DateOf(now)
	for i := 0; i < 365; i++ {
		if perDay[day.ISO()] > dailyBudget.Cents {
			break
		}
		streak++
		day = Date{Time: day.AddDate(0, 0, -1)}
	}
	return streak
}

func trimVendor(description string) string {
	return strings.TrimSpace(description)
}
