package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// VatMode says whether a unit price already contains VAT
type VatMode string

const (
	VatModeInclusive VatMode = "inclusive"
	VatModeExclusive VatMode = "exclusive"
)

// ParseVatMode maps user input to a VatMode, defaulting to inclusive
func ParseVatMode(s string) VatMode {
	if strings.EqualFold(strings.TrimSpace(s), string(VatModeExclusive)) {
		return VatModeExclusive
	}
	return VatModeInclusive
}

// IsValid returns true for known modes
func (m VatMode) IsValid() bool {
	return m == VatModeInclusive || m == VatModeExclusive
}

// ServiceTotalsInput describes one priced line item.
// Nil quantity means 1, nil VAT rate means 0 and an empty mode means inclusive.
type ServiceTotalsInput struct {
	UnitPrice *float64
	Quantity  *float64
	VatRate   *float64 // percent, 20 means 20%
	VatMode   VatMode
}

// VatTotals is the net, VAT and gross breakdown of a line
type VatTotals struct {
	Net   float64 `json:"net"`
	Vat   float64 `json:"vat"`
	Gross float64 `json:"gross"`
}

// ComputeServiceTotals computes the VAT breakdown of a single line item.
// Invalid prices or quantities yield zero totals and an invalid rate means no VAT.
// Values are not rounded.
func ComputeServiceTotals(in ServiceTotalsInput) VatTotals {
	if in.UnitPrice == nil {
		return VatTotals{}
	}
	price := *in.UnitPrice
	quantity := 1.0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if !positiveFinite(price) || !positiveFinite(quantity) {
		return VatTotals{}
	}

	rate := 0.0
	if in.VatRate != nil {
		rate = *in.VatRate
	}
	if !positiveFinite(rate) {
		total := price * quantity
		return VatTotals{Net: total, Vat: 0, Gross: total}
	}

	multiplier := 1 + rate/100

	if in.VatMode == VatModeExclusive {
		grossPerUnit := price * multiplier
		return VatTotals{
			Net:   price * quantity,
			Vat:   (grossPerUnit - price) * quantity,
			Gross: grossPerUnit * quantity,
		}
	}

	vatPortion := price - price/multiplier
	return VatTotals{
		Net:   (price - vatPortion) * quantity,
		Vat:   vatPortion * quantity,
		Gross: price * quantity,
	}
}

// Add returns the element-wise sum of two breakdowns
func (t VatTotals) Add(other VatTotals) VatTotals {
	return VatTotals{
		Net:   t.Net + other.Net,
		Vat:   t.Vat + other.Vat,
		Gross: t.Gross + other.Gross,
	}
}

// Rounded rounds each component half away from zero to places decimals.
// Gross is rounded first and net is derived from it so the parts still add up.
func (t VatTotals) Rounded(places int32) VatTotals {
	gross := decimal.NewFromFloat(t.Gross).Round(places)
	vat := decimal.NewFromFloat(t.Vat).Round(places)
	net := gross.Sub(vat)
	return VatTotals{
		Net:   net.InexactFloat64(),
		Vat:   vat.InexactFloat64(),
		Gross: gross.InexactFloat64(),
	}
}

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
