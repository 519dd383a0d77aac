package calendar

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/calendar"
)

// DateLayout is the wire format of session dates
const DateLayout = "2006-01-02"

// CreateSessionRequest represents a request to schedule a session
type CreateSessionRequest struct {
	LeadID          *uuid.UUID `json:"lead_id"`
	Title           string     `json:"title" binding:"required,max=200"`
	Date            string     `json:"date" binding:"required,datetime=2006-01-02"`
	StartMinute     int        `json:"start_minute" binding:"min=0,max=1439"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,min=1,max=1440"`
	Location        string     `json:"location" binding:"max=300"`
}

// WeekQuery selects the week to list; any date inside the week works
type WeekQuery struct {
	WeekStart string `form:"week_start" binding:"omitempty,datetime=2006-01-02"`
	Padding   *int   `form:"padding" binding:"omitempty,min=0,max=720"`
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID              uuid.UUID  `json:"id"`
	LeadID          *uuid.UUID `json:"lead_id,omitempty"`
	Title           string     `json:"title"`
	Date            string     `json:"date"`
	StartMinute     int        `json:"start_minute"`
	EndMinute       int        `json:"end_minute"`
	DurationMinutes int        `json:"duration_minutes"`
	TimeLabel       string     `json:"time_label"`
	Location        string     `json:"location,omitempty"`
	Status          string     `json:"status"`
	Version         int        `json:"version"`
}

// ToSessionResponse converts a domain Session
func ToSessionResponse(s *calendar.Session) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		LeadID:          s.LeadID,
		Title:           s.Title,
		Date:            s.SessionDate.Format(DateLayout),
		StartMinute:     s.StartMinute,
		EndMinute:       s.EndMinute(),
		DurationMinutes: s.DurationMinutes,
		TimeLabel:       s.Window().Label(),
		Location:        s.Location,
		Status:          string(s.Status),
		Version:         s.Version,
	}
}

// WindowResponse is a clamped viewing window
type WindowResponse struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// ToWindowResponse converts a TimeRange
func ToWindowResponse(r calendar.TimeRange) WindowResponse {
	return WindowResponse{Start: r.Start, End: r.End, Label: r.Label()}
}

// WeekResponse is a week preview
type WeekResponse struct {
	WeekStart string            `json:"week_start"`
	WeekEnd   string            `json:"week_end"`
	Sessions  []SessionResponse `json:"sessions"`
	Window    WindowResponse    `json:"window"`
}

// ParseDate parses a DateLayout date
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
