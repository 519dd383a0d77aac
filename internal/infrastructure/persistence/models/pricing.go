package models

import (
	"github.com/lumiso/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// ServiceModel is the persistence model for a catalogue service.
type ServiceModel struct {
	TenantAggregateModel
	Name      string          `gorm:"type:varchar(200);not null"`
	Category  string          `gorm:"type:varchar(100);index"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	VatRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	VatMode   string          `gorm:"type:varchar(20);not null;default:'inclusive'"`
	Active    bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the persistence model to a domain Service.
func (m *ServiceModel) ToDomain() *pricing.Service {
	return &pricing.Service{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Category:            m.Category,
		UnitPrice:           m.UnitPrice,
		VatRate:             m.VatRate,
		VatMode:             pricing.VatMode(m.VatMode),
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain Service.
func (m *ServiceModel) FromDomain(s *pricing.Service) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Name = s.Name
	m.Category = s.Category
	m.UnitPrice = s.UnitPrice
	m.VatRate = s.VatRate
	m.VatMode = string(s.VatMode)
	m.Active = s.Active
}

// ServiceModelFromDomain creates a new persistence model from a domain Service.
func ServiceModelFromDomain(s *pricing.Service) *ServiceModel {
	m := &ServiceModel{}
	m.FromDomain(s)
	return m
}
