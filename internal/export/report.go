package export

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"spendlog/internal/core"
)

// reportTmpl is a self-contained printable document. It carries its own
// styles so the download renders the same in a browser tab or a print
// dialog.
var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Expense Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 2rem; color: #1a1a2e; }
h1 { margin-bottom: 0.25rem; }
.generated { color: #666; margin-bottom: 1.5rem; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: 0.5rem 0.75rem; text-align: left; border-bottom: 1px solid #ddd; }
th { background: #f4f4f8; }
td.amount, th.amount { text-align: right; }
tfoot td { font-weight: bold; border-top: 2px solid #1a1a2e; }
@media print { body { margin: 0.5rem; } }
</style>
</head>
<body>
<h1>Expense Report</h1>
<p class="generated">Generated {{.Generated}} &middot; {{.Count}} expenses</p>
<table>
<thead>
<tr><th>Date</th><th>Description</th><th>Category</th><th class="amount">Amount</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Date}}</td><td>{{.Description}}</td><td>{{.Category}}</td><td class="amount">{{.Amount}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="3">Total</td><td class="amount">{{.Total}}</td></tr>
</tfoot>
</table>
</body>
</html>
`))

// HTMLReport renders the collection as a printable HTML document with a
// grand total row. The generated date reflects now.
func HTMLReport(expenses []core.Expense, now time.Time) (string, error) {
	if len(expenses) == 0 {
		return "", ErrNoExpenses
	}

	type row struct {
		Date        string
		Description string
		Category    string
		Amount      string
	}
	data := struct {
		Generated string
		Count     int
		Rows      []row
		Total     string
	}{
		Generated: now.Format("January 2, 2006"),
		Count:     len(expenses),
	}

	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
		data.Rows = append(data.Rows, row{
			Date:        shortDate(e.Date),
			Description: e.Description,
			Category:    string(e.Category),
			Amount:      e.Amount.USD(),
		})
	}
	data.Total = total.USD()

	var b strings.Builder
	if err := reportTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}
