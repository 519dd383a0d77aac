package pricing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Service is a sellable studio service such as a wedding package or an extra print.
// It is the aggregate root of the service catalogue.
type Service struct {
	shared.TenantAggregateRoot
	Name      string
	Category  string
	UnitPrice decimal.Decimal
	VatRate   decimal.Decimal // percent
	VatMode   VatMode
	Active    bool
}

// NewService creates a new catalogue service
func NewService(tenantID uuid.UUID, name, category string, unitPrice, vatRate decimal.Decimal, mode VatMode) (*Service, error) {
	s := &Service{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Active:              true,
	}
	if err := s.apply(name, category, unitPrice, vatRate, mode); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the service's pricing details
func (s *Service) Update(name, category string, unitPrice, vatRate decimal.Decimal, mode VatMode) error {
	if err := s.apply(name, category, unitPrice, vatRate, mode); err != nil {
		return err
	}
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Deactivate hides the service from new quotes
func (s *Service) Deactivate() error {
	if !s.Active {
		return shared.NewDomainError("INVALID_STATE", "Service is already inactive")
	}
	s.Active = false
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Totals computes the VAT breakdown for quantity units of the service
func (s *Service) Totals(quantity float64) VatTotals {
	price := s.UnitPrice.InexactFloat64()
	rate := s.VatRate.InexactFloat64()
	return ComputeServiceTotals(ServiceTotalsInput{
		UnitPrice: &price,
		Quantity:  &quantity,
		VatRate:   &rate,
		VatMode:   s.VatMode,
	})
}

func (s *Service) apply(name, category string, unitPrice, vatRate decimal.Decimal, mode VatMode) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if len([]rune(name)) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot exceed 200 characters")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if vatRate.IsNegative() || vatRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_VAT_RATE", "VAT rate must be between 0 and 100")
	}
	if mode == "" {
		mode = VatModeInclusive
	}
	if !mode.IsValid() {
		return shared.NewDomainError("INVALID_VAT_MODE", "VAT mode must be inclusive or exclusive")
	}

	s.Name = name
	s.Category = strings.TrimSpace(category)
	s.UnitPrice = unitPrice
	s.VatRate = vatRate
	s.VatMode = mode
	return nil
}
