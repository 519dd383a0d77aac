package models

import (
	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/lead"
)

// LeadStatusModel is the persistence model for a studio-defined lead status.
type LeadStatusModel struct {
	BaseModel
	TenantID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lead_status_tenant_name,priority:1"`
	Name          string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_lead_status_tenant_name,priority:2"`
	Color         string    `gorm:"type:varchar(7);not null"`
	SortOrder     int       `gorm:"not null;default:0"`
	IsSystemFinal bool      `gorm:"not null;default:false"`
	IsDefault     bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (LeadStatusModel) TableName() string {
	return "lead_statuses"
}

// ToDomain converts the persistence model to a domain LeadStatus.
func (m *LeadStatusModel) ToDomain() *lead.LeadStatus {
	return &lead.LeadStatus{
		BaseEntity:    m.BaseModel.ToDomain(),
		TenantID:      m.TenantID,
		Name:          m.Name,
		Color:         m.Color,
		SortOrder:     m.SortOrder,
		IsSystemFinal: m.IsSystemFinal,
		IsDefault:     m.IsDefault,
	}
}

// FromDomain populates the persistence model from a domain LeadStatus.
func (m *LeadStatusModel) FromDomain(s *lead.LeadStatus) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.TenantID = s.TenantID
	m.Name = s.Name
	m.Color = s.Color
	m.SortOrder = s.SortOrder
	m.IsSystemFinal = s.IsSystemFinal
	m.IsDefault = s.IsDefault
}

// LeadStatusModelFromDomain creates a new persistence model from a domain LeadStatus.
func LeadStatusModelFromDomain(s *lead.LeadStatus) *LeadStatusModel {
	m := &LeadStatusModel{}
	m.FromDomain(s)
	return m
}

// LeadModel is the persistence model for the Lead aggregate.
type LeadModel struct {
	TenantAggregateModel
	Name     string     `gorm:"type:varchar(200);not null"`
	Email    string     `gorm:"type:varchar(200);index"`
	Phone    string     `gorm:"type:varchar(50)"`
	Notes    string     `gorm:"type:text"`
	Status   string     `gorm:"type:varchar(100)"`
	StatusID *uuid.UUID `gorm:"type:uuid;index"`

	LeadStatus *LeadStatusModel `gorm:"foreignKey:StatusID"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead, resolving the
// preloaded status when present.
func (m *LeadModel) ToDomain() *lead.Lead {
	l := &lead.Lead{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Email:               m.Email,
		Phone:               m.Phone,
		Notes:               m.Notes,
		Status:              m.Status,
		StatusID:            m.StatusID,
	}
	if m.LeadStatus != nil {
		l.LeadStatus = m.LeadStatus.ToDomain()
	}
	return l
}

// ToSnapshot returns the lifecycle view of the persisted lead
func (m *LeadModel) ToSnapshot() lead.LifecycleSnapshot {
	s := lead.LifecycleSnapshot{
		Status:    m.Status,
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
	if m.LeadStatus != nil {
		s.StatusInfo = &lead.StatusInfo{
			Name:          m.LeadStatus.Name,
			IsSystemFinal: m.LeadStatus.IsSystemFinal,
		}
	}
	return s
}

// FromDomain populates the persistence model from a domain Lead.
// The status association is not copied; it is owned by LeadStatusModel.
func (m *LeadModel) FromDomain(l *lead.Lead) {
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	m.Name = l.Name
	m.Email = l.Email
	m.Phone = l.Phone
	m.Notes = l.Notes
	m.Status = l.Status
	m.StatusID = l.StatusID
}

// LeadModelFromDomain creates a new persistence model from a domain Lead.
func LeadModelFromDomain(l *lead.Lead) *LeadModel {
	m := &LeadModel{}
	m.FromDomain(l)
	return m
}
