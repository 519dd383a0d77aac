package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/calendar"
)

// SessionModel is the persistence model for a photo session.
type SessionModel struct {
	TenantAggregateModel
	LeadID          *uuid.UUID `gorm:"type:uuid;index"`
	Title           string     `gorm:"type:varchar(200);not null"`
	SessionDate     time.Time  `gorm:"type:date;not null;index"`
	StartMinute     int        `gorm:"not null"`
	DurationMinutes int        `gorm:"not null"`
	Location        string     `gorm:"type:varchar(300)"`
	Status          string     `gorm:"type:varchar(20);not null;default:'planned'"`
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts the persistence model to a domain Session.
func (m *SessionModel) ToDomain() *calendar.Session {
	return &calendar.Session{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		LeadID:              m.LeadID,
		Title:               m.Title,
		SessionDate:         calendar.DateOnly(m.SessionDate),
		StartMinute:         m.StartMinute,
		DurationMinutes:     m.DurationMinutes,
		Location:            m.Location,
		Status:              calendar.SessionStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Session.
func (m *SessionModel) FromDomain(s *calendar.Session) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.LeadID = s.LeadID
	m.Title = s.Title
	m.SessionDate = s.SessionDate
	m.StartMinute = s.StartMinute
	m.DurationMinutes = s.DurationMinutes
	m.Location = s.Location
	m.Status = string(s.Status)
}

// SessionModelFromDomain creates a new persistence model from a domain Session.
func SessionModelFromDomain(s *calendar.Session) *SessionModel {
	m := &SessionModel{}
	m.FromDomain(s)
	return m
}
