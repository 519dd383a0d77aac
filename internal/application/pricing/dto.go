package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// CreateServiceRequest represents a request to add a catalogue service
type CreateServiceRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Category  string          `json:"category" binding:"omitempty,max=100"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VatRate   decimal.Decimal `json:"vat_rate"`
	VatMode   string          `json:"vat_mode" binding:"omitempty,oneof=inclusive exclusive INCLUSIVE EXCLUSIVE"`
}

// UpdateServiceRequest represents a request to change a catalogue service
type UpdateServiceRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Category  string          `json:"category" binding:"omitempty,max=100"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VatRate   decimal.Decimal `json:"vat_rate"`
	VatMode   string          `json:"vat_mode" binding:"omitempty,oneof=inclusive exclusive INCLUSIVE EXCLUSIVE"`
}

// ServiceListFilter represents filter options for the catalogue list
type ServiceListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ServiceResponse represents a catalogue service in API responses
type ServiceResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VatRate   decimal.Decimal `json:"vat_rate"`
	VatMode   string          `json:"vat_mode"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// ToServiceResponse converts a domain Service
func ToServiceResponse(s *pricing.Service) ServiceResponse {
	return ServiceResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		UnitPrice: s.UnitPrice,
		VatRate:   s.VatRate,
		VatMode:   string(s.VatMode),
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}

// TotalsRequest is the input of the raw VAT calculator. Nil fields take the
// calculator's defaults.
type TotalsRequest struct {
	UnitPrice *float64 `json:"unit_price"`
	Quantity  *float64 `json:"quantity"`
	VatRate   *float64 `json:"vat_rate"`
	VatMode   string   `json:"vat_mode"`
}

// TotalsResponse carries exact and display-rounded totals
type TotalsResponse struct {
	Totals  pricing.VatTotals `json:"totals"`
	Rounded pricing.VatTotals `json:"rounded"`
}

// ServiceTotalsResponse is a TotalsResponse for a catalogue service
type ServiceTotalsResponse struct {
	ServiceID uuid.UUID `json:"service_id"`
	Quantity  float64   `json:"quantity"`
	TotalsResponse
}

// ComputeTotals runs the VAT calculator on raw input
func ComputeTotals(req TotalsRequest) TotalsResponse {
	totals := pricing.ComputeServiceTotals(pricing.ServiceTotalsInput{
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		VatRate:   req.VatRate,
		VatMode:   pricing.ParseVatMode(req.VatMode),
	})
	return TotalsResponse{Totals: totals, Rounded: totals.Rounded(DisplayPlaces)}
}

// DisplayPlaces is the number of decimals shown to clients
const DisplayPlaces = 2

// QuoteLineRequest is one quote row. With ServiceID set, name, price, rate and
// mode come from the catalogue and only Quantity is taken from the request.
type QuoteLineRequest struct {
	ServiceID *uuid.UUID `json:"service_id"`
	Name      string     `json:"name" binding:"required_without=ServiceID,max=200"`
	UnitPrice float64    `json:"unit_price" binding:"min=0"`
	Quantity  float64    `json:"quantity" binding:"min=0"`
	VatRate   float64    `json:"vat_rate" binding:"min=0,max=100"`
	VatMode   string     `json:"vat_mode"`
}

// CalculateQuoteRequest asks for a priced quote
type CalculateQuoteRequest struct {
	ClientName string             `json:"client_name" binding:"required,max=200"`
	Currency   string             `json:"currency" binding:"omitempty,len=3,alpha"`
	Notes      string             `json:"notes" binding:"max=5000"`
	ValidDays  int                `json:"valid_days" binding:"min=0,max=365"`
	Lines      []QuoteLineRequest `json:"lines" binding:"required,min=1,max=100,dive"`
}

// RenderQuoteRequest asks for a quote PDF
type RenderQuoteRequest struct {
	CalculateQuoteRequest
	PaperSize string `json:"paper_size" binding:"omitempty,oneof=A4 A5 LETTER"`
	Landscape bool   `json:"landscape"`
}

// QuoteLineResponse is a priced quote row
type QuoteLineResponse struct {
	ServiceID *uuid.UUID        `json:"service_id,omitempty"`
	Name      string            `json:"name"`
	UnitPrice float64           `json:"unit_price"`
	Quantity  float64           `json:"quantity"`
	VatRate   float64           `json:"vat_rate"`
	VatMode   string            `json:"vat_mode"`
	Totals    pricing.VatTotals `json:"totals"`
	Rounded   pricing.VatTotals `json:"rounded"`
}

// QuoteResponse is a priced quote
type QuoteResponse struct {
	ClientName string              `json:"client_name"`
	Currency   string              `json:"currency"`
	Lines      []QuoteLineResponse `json:"lines"`
	Totals     pricing.VatTotals   `json:"totals"`
	Rounded    pricing.VatTotals   `json:"rounded"`
}

// ToQuoteResponse converts a domain Quote
func ToQuoteResponse(q *pricing.Quote) QuoteResponse {
	lines := make([]QuoteLineResponse, len(q.Lines))
	for i, l := range q.Lines {
		lines[i] = QuoteLineResponse{
			ServiceID: l.ServiceID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			VatRate:   l.VatRate,
			VatMode:   string(l.VatMode),
			Totals:    l.Totals,
			Rounded:   l.Totals.Rounded(DisplayPlaces),
		}
	}
	return QuoteResponse{
		ClientName: q.ClientName,
		Currency:   q.Currency,
		Lines:      lines,
		Totals:     q.Totals,
		Rounded:    q.RoundedTotals(DisplayPlaces),
	}
}

// QuotePDF is a rendered quote
type QuotePDF struct {
	Data      []byte
	FileName  string
	PageCount int
}
