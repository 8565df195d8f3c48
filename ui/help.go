package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const helpMarkdown = `## How to Use This Dashboard

1. **Upload** a CSV or Excel file of sales records.
2. **Map columns**: tell the dashboard which of your columns hold the
   sale date, sale amount, product ID, and quantity. Optional columns
   (costs, discounts, region, channel, and so on) unlock extra charts.
3. **Review the cleaning summary**: rows with missing required values,
   unparseable dates, or non-positive prices and quantities are dropped
   before any metric is computed.
4. **Filter** by date range or by categorical values such as region or
   sales channel. Every metric and chart recomputes from the full upload
   on each change.
5. **Download** the cleaned, filtered data as CSV at any time.

### Required columns

| Column | Meaning |
|---|---|
| Date of Sale | when the sale happened |
| Price | total sale amount |
| Product ID | product identifier |
| Quantity Sold | units sold, must be positive |

Metrics that need optional columns (gross profit, average discount,
correlations) show **N/A** until those columns are mapped.
`

// helpHTML renders the usage guide for the dashboard sidebar
func helpHTML() template.HTML {
	extensions := parser.CommonExtensions | parser.Tables
	p := parser.NewWithExtensions(extensions)

	opts := mdhtml.RendererOptions{Flags: mdhtml.CommonFlags}
	renderer := mdhtml.NewRenderer(opts)

	rendered := markdown.ToHTML([]byte(helpMarkdown), p, renderer)
	return template.HTML(rendered)
}
