package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates service successfully", func(t *testing.T) {
		s, err := NewService(tenantID, " Wedding Package ", "wedding", decimal.NewFromInt(12000), decimal.NewFromInt(20), "")

		require.NoError(t, err)
		assert.Equal(t, "Wedding Package", s.Name)
		assert.Equal(t, VatModeInclusive, s.VatMode)
		assert.True(t, s.Active)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewService(tenantID, "Prints", "", decimal.NewFromInt(-1), decimal.Zero, VatModeExclusive)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})

	t.Run("fails with rate above 100", func(t *testing.T) {
		_, err := NewService(tenantID, "Prints", "", decimal.NewFromInt(10), decimal.NewFromInt(101), VatModeExclusive)
		assert.Error(t, err)
	})

	t.Run("fails with unknown mode", func(t *testing.T) {
		_, err := NewService(tenantID, "Prints", "", decimal.NewFromInt(10), decimal.Zero, VatMode("gross"))
		assert.Error(t, err)
	})
}

func TestService_TotalsAndDeactivate(t *testing.T) {
	s, err := NewService(uuid.New(), "Album", "print", decimal.NewFromInt(100), decimal.NewFromInt(10), VatModeExclusive)
	require.NoError(t, err)

	totals := s.Totals(2)
	assert.InDelta(t, 200, totals.Net, 1e-9)
	assert.InDelta(t, 20, totals.Vat, 1e-9)
	assert.InDelta(t, 220, totals.Gross, 1e-9)

	require.NoError(t, s.Deactivate())
	assert.False(t, s.Active)
	assert.Error(t, s.Deactivate())
}

func TestNewQuote(t *testing.T) {
	album, _ := NewService(uuid.New(), "Album", "print", decimal.NewFromInt(100), decimal.NewFromInt(10), VatModeExclusive)

	t.Run("sums line totals", func(t *testing.T) {
		q, err := NewQuote("Jane Doe", "", []QuoteLine{
			LineFromService(album, 2),
			{Name: "Engagement shoot", UnitPrice: 120, Quantity: 1, VatRate: 20},
		})

		require.NoError(t, err)
		require.Len(t, q.Lines, 2)
		assert.Equal(t, "TRY", q.Currency)
		assert.Equal(t, VatModeInclusive, q.Lines[1].VatMode)
		assert.InDelta(t, 300, q.Totals.Net, 1e-9)
		assert.InDelta(t, 40, q.Totals.Vat, 1e-9)
		assert.InDelta(t, 340, q.Totals.Gross, 1e-9)
		assert.Equal(t, 340.0, q.RoundedTotals(2).Gross)
	})

	t.Run("fails without lines", func(t *testing.T) {
		_, err := NewQuote("Jane Doe", "EUR", nil)
		assert.Error(t, err)
	})
}
