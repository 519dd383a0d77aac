package calendar

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
)

// SessionStatus represents the status of a photo session
type SessionStatus string

const (
	SessionStatusPlanned   SessionStatus = "planned"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Session is a scheduled photo shoot
type Session struct {
	shared.TenantAggregateRoot
	LeadID          *uuid.UUID
	Title           string
	SessionDate     time.Time // date only, midnight UTC
	StartMinute     int
	DurationMinutes int
	Location        string
	Status          SessionStatus
}

// NewSession creates a planned session
func NewSession(tenantID uuid.UUID, leadID *uuid.UUID, title string, date time.Time, startMinute, durationMinutes int) (*Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Session title cannot be empty")
	}
	if startMinute < 0 || startMinute >= MinutesPerDay {
		return nil, shared.NewDomainError("INVALID_TIME", "Start time must be within the day")
	}
	if durationMinutes <= 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration must be positive")
	}
	if startMinute+durationMinutes > MinutesPerDay {
		return nil, shared.NewDomainError("INVALID_DURATION", "Session cannot run past midnight")
	}

	return &Session{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		LeadID:              leadID,
		Title:               title,
		SessionDate:         DateOnly(date),
		StartMinute:         startMinute,
		DurationMinutes:     durationMinutes,
		Status:              SessionStatusPlanned,
	}, nil
}

// EndMinute returns the minute the session finishes
func (s *Session) EndMinute() int {
	return s.StartMinute + s.DurationMinutes
}

// Window returns the session's time-of-day range
func (s *Session) Window() TimeRange {
	return TimeRange{Start: s.StartMinute, End: s.EndMinute()}
}

// Complete marks a planned session as shot
func (s *Session) Complete() error {
	if s.Status != SessionStatusPlanned {
		return shared.NewDomainError("INVALID_STATE", "Only planned sessions can be completed")
	}
	s.Status = SessionStatusCompleted
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Cancel cancels a planned session
func (s *Session) Cancel() error {
	if s.Status != SessionStatusPlanned {
		return shared.NewDomainError("INVALID_STATE", "Only planned sessions can be cancelled")
	}
	s.Status = SessionStatusCancelled
	s.Touch()
	s.IncrementVersion()
	return nil
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
