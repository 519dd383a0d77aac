package printing

import (
	"context"
	"time"
)

// QuoteDocument is the data bound to the quote template
type QuoteDocument struct {
	StudioName string
	ClientName string
	Currency   string
	IssuedAt   time.Time
	ValidUntil time.Time
	Notes      string
	Lines      []QuoteDocumentLine
	Net        float64
	Vat        float64
	Gross      float64
}

// QuoteDocumentLine is one row of the quote table
type QuoteDocumentLine struct {
	Name      string
	Quantity  float64
	UnitPrice float64
	VatRate   float64
	VatMode   string
	Net       float64
	Vat       float64
	Gross     float64
}

// QuoteTemplate is the built-in quote layout
const QuoteTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{ title .ClientName }} Quote</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 20px; margin-bottom: 4px; }
  .meta { color: #666; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { padding: 6px 8px; border-bottom: 1px solid #ddd; text-align: right; }
  th:first-child, td:first-child { text-align: left; }
  tfoot td { font-weight: bold; border-bottom: none; }
  .notes { margin-top: 24px; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{ default "Studio" .StudioName }}</h1>
<div class="meta">
  Quote for {{ title .ClientName }}<br>
  Issued {{ formatDate .IssuedAt "" }}{{ if not .ValidUntil.IsZero }}, valid until {{ formatDate .ValidUntil "" }}{{ end }}
</div>
<table>
  <thead>
    <tr><th>Service</th><th>Qty</th><th>Unit price</th><th>VAT</th><th>Net</th><th>VAT amount</th><th>Total</th></tr>
  </thead>
  <tbody>
  {{- range .Lines }}
    <tr>
      <td>{{ .Name }}</td>
      <td>{{ formatNumber .Quantity 2 }}</td>
      <td>{{ formatMoney .UnitPrice $.Currency }}</td>
      <td>{{ formatPercent .VatRate }} {{ lower .VatMode }}</td>
      <td>{{ formatMoney .Net $.Currency }}</td>
      <td>{{ formatMoney .Vat $.Currency }}</td>
      <td>{{ formatMoney .Gross $.Currency }}</td>
    </tr>
  {{- end }}
  </tbody>
  <tfoot>
    <tr><td colspan="4">Total</td><td>{{ formatMoney .Net .Currency }}</td><td>{{ formatMoney .Vat .Currency }}</td><td>{{ formatMoney .Gross .Currency }}</td></tr>
  </tfoot>
</table>
{{ with .Notes }}<div class="notes">{{ . }}</div>{{ end }}
</body>
</html>
`

// RenderQuote renders the built-in quote template
func (e *TemplateEngine) RenderQuote(ctx context.Context, doc QuoteDocument) (string, error) {
	return e.RenderString(ctx, "quote", QuoteTemplate, doc)
}
