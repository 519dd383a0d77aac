package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders HTML templates with business data using html/template
// and a set of formatting functions.
type TemplateEngine struct {
	funcMap template.FuncMap
	lang    language.Tag
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithLanguage sets the language used for title casing
func WithLanguage(tag language.Tag) TemplateEngineOption {
	return func(e *TemplateEngine) {
		e.lang = tag
	}
}

// WithFuncs adds or overrides template functions
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewTemplateEngine creates a new template engine
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{lang: language.English}
	e.funcMap = template.FuncMap{
		"formatMoney":   formatMoney,
		"formatNumber":  formatNumber,
		"formatPercent": formatPercent,
		"formatDate":    formatDate,
		"upper":         strings.ToUpper,
		"lower":         strings.ToLower,
		"trim":          strings.TrimSpace,
		"default":       defaultString,
	}
	for _, opt := range opts {
		opt(e)
	}
	// title depends on the configured language; a Caser is not safe for concurrent use
	if _, ok := e.funcMap["title"]; !ok {
		lang := e.lang
		e.funcMap["title"] = func(s string) string { return cases.Title(lang).String(s) }
	}
	return e
}

// RenderString renders a template string with the provided data
func (e *TemplateEngine) RenderString(ctx context.Context, name, content string, data any) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}

// formatMoney formats an amount with two decimals, thousands separators and a currency code.
// Example: (1234.5, "EUR") -> "1,234.50 EUR"
func formatMoney(v any, currency string) string {
	s := formatNumber(v, 2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// formatNumber rounds half-up to places and adds thousands separators
func formatNumber(v any, places int) string {
	d := toDecimal(v).Round(int32(places))
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, fracPart, _ := strings.Cut(d.StringFixed(int32(places)), ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if fracPart != "" {
		return sign + b.String() + "." + fracPart
	}
	return sign + b.String()
}

// formatPercent renders a percentage value as "20%" or "8.5%"
func formatPercent(v any) string {
	return toDecimal(v).Round(2).String() + "%"
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = "2 Jan 2006"
	}
	return t.Format(layout)
}

func defaultString(def, v string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return *n
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		d, err := decimal.NewFromString(fmt.Sprint(v))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}
