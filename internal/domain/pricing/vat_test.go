package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestComputeServiceTotals(t *testing.T) {
	tests := []struct {
		name string
		in   ServiceTotalsInput
		want VatTotals
	}{
		{
			name: "inclusive vat",
			in:   ServiceTotalsInput{UnitPrice: f(120), Quantity: f(2), VatRate: f(20), VatMode: VatModeInclusive},
			want: VatTotals{Net: 200, Vat: 40, Gross: 240},
		},
		{
			name: "default mode is inclusive",
			in:   ServiceTotalsInput{UnitPrice: f(120), Quantity: f(2), VatRate: f(20)},
			want: VatTotals{Net: 200, Vat: 40, Gross: 240},
		},
		{
			name: "exclusive vat",
			in:   ServiceTotalsInput{UnitPrice: f(100), Quantity: f(3), VatRate: f(18), VatMode: VatModeExclusive},
			want: VatTotals{Net: 300, Vat: 54, Gross: 354},
		},
		{
			name: "quantity defaults to one",
			in:   ServiceTotalsInput{UnitPrice: f(50), VatRate: f(10), VatMode: VatModeExclusive},
			want: VatTotals{Net: 50, Vat: 5, Gross: 55},
		},
		{
			name: "missing rate means no vat",
			in:   ServiceTotalsInput{UnitPrice: f(80), Quantity: f(2)},
			want: VatTotals{Net: 160, Vat: 0, Gross: 160},
		},
		{
			name: "negative rate means no vat",
			in:   ServiceTotalsInput{UnitPrice: f(80), Quantity: f(1), VatRate: f(-5), VatMode: VatModeExclusive},
			want: VatTotals{Net: 80, Vat: 0, Gross: 80},
		},
		{
			name: "nan rate means no vat",
			in:   ServiceTotalsInput{UnitPrice: f(80), VatRate: f(math.NaN())},
			want: VatTotals{Net: 80, Vat: 0, Gross: 80},
		},
		{name: "zero price", in: ServiceTotalsInput{UnitPrice: f(0)}, want: VatTotals{}},
		{name: "nil price", in: ServiceTotalsInput{Quantity: f(3), VatRate: f(20)}, want: VatTotals{}},
		{name: "negative quantity", in: ServiceTotalsInput{UnitPrice: f(10), Quantity: f(-1)}, want: VatTotals{}},
		{name: "zero quantity", in: ServiceTotalsInput{UnitPrice: f(10), Quantity: f(0)}, want: VatTotals{}},
		{name: "infinite price", in: ServiceTotalsInput{UnitPrice: f(math.Inf(1))}, want: VatTotals{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeServiceTotals(tt.in)

			assert.InDelta(t, tt.want.Net, got.Net, 1e-9)
			assert.InDelta(t, tt.want.Vat, got.Vat, 1e-9)
			assert.InDelta(t, tt.want.Gross, got.Gross, 1e-9)
		})
	}
}

func TestComputeServiceTotals_PartsSumToGross(t *testing.T) {
	prices := []float64{0.01, 9.99, 120, 1234.56, 99999.5}
	quantities := []float64{0.5, 1, 3, 17}
	rates := []float64{0, 1, 8, 18, 20, 33.3}

	for _, mode := range []VatMode{VatModeInclusive, VatModeExclusive} {
		for _, p := range prices {
			for _, q := range quantities {
				for _, r := range rates {
					got := ComputeServiceTotals(ServiceTotalsInput{UnitPrice: f(p), Quantity: f(q), VatRate: f(r), VatMode: mode})

					assert.InEpsilon(t, got.Gross, got.Net+got.Vat, 1e-9, "mode=%s price=%v qty=%v rate=%v", mode, p, q, r)
					assert.GreaterOrEqual(t, got.Vat, 0.0)
					assert.GreaterOrEqual(t, got.Net, 0.0)
				}
			}
		}
	}
}

func TestVatTotals_Rounded(t *testing.T) {
	got := ComputeServiceTotals(ServiceTotalsInput{UnitPrice: f(99.99), Quantity: f(3), VatRate: f(18)}).Rounded(2)

	assert.Equal(t, 299.97, got.Gross)
	assert.Equal(t, 45.76, got.Vat)
	assert.Equal(t, 254.21, got.Net)
}

func TestParseVatMode(t *testing.T) {
	assert.Equal(t, VatModeExclusive, ParseVatMode(" Exclusive "))
	assert.Equal(t, VatModeInclusive, ParseVatMode("inclusive"))
	assert.Equal(t, VatModeInclusive, ParseVatMode(""))
	assert.Equal(t, VatModeInclusive, ParseVatMode("bogus"))
}
