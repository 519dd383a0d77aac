package calendar

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/calendar"
	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/lumiso/backend/internal/domain/shared"
)

// ScheduleService schedules sessions and builds week previews
type ScheduleService struct {
	sessions calendar.SessionRepository
	leads    lead.LeadRepository
	now      func() time.Time
}

// NewScheduleService creates a new ScheduleService. leads may be nil, in which
// case lead references are not checked.
func NewScheduleService(sessions calendar.SessionRepository, leads lead.LeadRepository) *ScheduleService {
	return &ScheduleService{sessions: sessions, leads: leads, now: time.Now}
}

// CreateSession schedules a planned session
func (s *ScheduleService) CreateSession(ctx context.Context, tenantID uuid.UUID, req CreateSessionRequest) (*SessionResponse, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "date must be formatted as YYYY-MM-DD")
	}
	if req.LeadID != nil && s.leads != nil {
		if _, err := s.leads.FindByIDForTenant(ctx, tenantID, *req.LeadID); err != nil {
			return nil, err
		}
	}

	session, err := calendar.NewSession(tenantID, req.LeadID, req.Title, date, req.StartMinute, req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	session.Location = strings.TrimSpace(req.Location)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// GetByID retrieves a session
func (s *ScheduleService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessions.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// Complete marks a planned session as shot
func (s *ScheduleService) Complete(ctx context.Context, tenantID, id uuid.UUID) (*SessionResponse, error) {
	return s.transition(ctx, tenantID, id, (*calendar.Session).Complete)
}

// Cancel cancels a planned session
func (s *ScheduleService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*SessionResponse, error) {
	return s.transition(ctx, tenantID, id, (*calendar.Session).Cancel)
}

func (s *ScheduleService) transition(ctx context.Context, tenantID, id uuid.UUID, apply func(*calendar.Session) error) (*SessionResponse, error) {
	session, err := s.sessions.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(session); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// ListWeek returns the sessions of the week containing query.WeekStart (today
// when empty) and the viewing window that fits them
func (s *ScheduleService) ListWeek(ctx context.Context, tenantID uuid.UUID, query WeekQuery) (*WeekResponse, error) {
	day := s.now()
	if query.WeekStart != "" {
		parsed, err := ParseDate(query.WeekStart)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "week_start must be formatted as YYYY-MM-DD")
		}
		day = parsed
	}
	padding := calendar.DefaultWindowPadding
	if query.Padding != nil {
		padding = *query.Padding
	}

	from, to := calendar.WeekBounds(day)
	sessions, err := s.sessions.FindBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = ToSessionResponse(&sessions[i])
	}
	return &WeekResponse{
		WeekStart: from.Format(DateLayout),
		WeekEnd:   to.AddDate(0, 0, -1).Format(DateLayout),
		Sessions:  responses,
		Window:    ToWindowResponse(calendar.WeekWindow(sessions, padding)),
	}, nil
}

// Clamp normalises an arbitrary viewing window
func (s *ScheduleService) Clamp(start, end int) WindowResponse {
	return ToWindowResponse(calendar.ClampRange(start, end))
}
