package pricing

import (
	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
)

// QuoteLine is one priced row of a quote
type QuoteLine struct {
	ServiceID *uuid.UUID
	Name      string
	UnitPrice float64
	Quantity  float64
	VatRate   float64
	VatMode   VatMode
}

// Totals computes the line's VAT breakdown
func (l QuoteLine) Totals() VatTotals {
	return ComputeServiceTotals(ServiceTotalsInput{
		UnitPrice: &l.UnitPrice,
		Quantity:  &l.Quantity,
		VatRate:   &l.VatRate,
		VatMode:   l.VatMode,
	})
}

// LineFromService builds a quote line priced from a catalogue service
func LineFromService(s *Service, quantity float64) QuoteLine {
	id := s.ID
	return QuoteLine{
		ServiceID: &id,
		Name:      s.Name,
		UnitPrice: s.UnitPrice.InexactFloat64(),
		Quantity:  quantity,
		VatRate:   s.VatRate.InexactFloat64(),
		VatMode:   s.VatMode,
	}
}

// PricedLine is a quote line with its computed totals
type PricedLine struct {
	QuoteLine
	Totals VatTotals
}

// Quote is a priced proposal sent to a client
type Quote struct {
	ClientName string
	Currency   string
	Lines      []PricedLine
	Totals     VatTotals
}

// NewQuote prices every line and sums the totals.
// Lines that price to zero are kept so the client sees them.
func NewQuote(clientName, currency string, lines []QuoteLine) (*Quote, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_QUOTE", "Quote must contain at least one line")
	}
	if currency == "" {
		currency = "TRY"
	}

	q := &Quote{
		ClientName: clientName,
		Currency:   currency,
		Lines:      make([]PricedLine, 0, len(lines)),
	}
	for _, line := range lines {
		if line.VatMode == "" {
			line.VatMode = VatModeInclusive
		}
		totals := line.Totals()
		q.Lines = append(q.Lines, PricedLine{QuoteLine: line, Totals: totals})
		q.Totals = q.Totals.Add(totals)
	}
	return q, nil
}

// RoundedTotals returns the quote totals rounded for display
func (q *Quote) RoundedTotals(places int32) VatTotals {
	return q.Totals.Rounded(places)
}
