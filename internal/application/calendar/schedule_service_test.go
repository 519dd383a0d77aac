package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/calendar"
	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*calendar.Session, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Session), args.Error(1)
}

func (m *MockSessionRepository) FindBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]calendar.Session, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calendar.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, s *calendar.Session) error {
	return m.Called(ctx, s).Error(0)
}

// leadLookup satisfies lead.LeadRepository for the lead existence check only
type leadLookup struct {
	lead.LeadRepository
	known map[uuid.UUID]bool
}

func (l leadLookup) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*lead.Lead, error) {
	if !l.known[id] {
		return nil, shared.ErrNotFound
	}
	return lead.NewLead(tenantID, "Known Lead")
}

func mustSession(t *testing.T, tenantID uuid.UUID, date time.Time, start, duration int) calendar.Session {
	t.Helper()
	s, err := calendar.NewSession(tenantID, nil, "Shoot", date, start, duration)
	require.NoError(t, err)
	return *s
}

func TestScheduleService_CreateSession(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	leadID := uuid.New()

	tests := []struct {
		name    string
		req     CreateSessionRequest
		wantErr error
		check   func(t *testing.T, resp *SessionResponse)
	}{
		{
			name: "schedules a session for a known lead",
			req: CreateSessionRequest{
				LeadID:          &leadID,
				Title:           "Engagement shoot",
				Date:            "2026-05-20",
				StartMinute:     9 * 60,
				DurationMinutes: 90,
				Location:        "  Moda pier ",
			},
			check: func(t *testing.T, resp *SessionResponse) {
				assert.Equal(t, "2026-05-20", resp.Date)
				assert.Equal(t, 630, resp.EndMinute)
				assert.Equal(t, "9:00 AM - 10:30 AM", resp.TimeLabel)
				assert.Equal(t, "Moda pier", resp.Location)
				assert.Equal(t, "planned", resp.Status)
			},
		},
		{
			name:    "unknown lead",
			req:     CreateSessionRequest{LeadID: ptr(uuid.New()), Title: "x", Date: "2026-05-20", DurationMinutes: 30},
			wantErr: shared.ErrNotFound,
		},
		{
			name:    "bad date",
			req:     CreateSessionRequest{Title: "x", Date: "20/05/2026", DurationMinutes: 30},
			wantErr: shared.ErrInvalidInput,
		},
		{
			name:    "runs past midnight",
			req:     CreateSessionRequest{Title: "Night sky", Date: "2026-05-20", StartMinute: 23 * 60, DurationMinutes: 120},
			wantErr: shared.NewDomainError("INVALID_DURATION", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSessionRepository)
			repo.On("Save", ctx, mock.AnythingOfType("*calendar.Session")).Return(nil)
			svc := NewScheduleService(repo, leadLookup{known: map[uuid.UUID]bool{leadID: true}})

			resp, err := svc.CreateSession(ctx, tenantID, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.check(t, resp)
		})
	}
}

func TestScheduleService_ListWeek(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	monday := time.Date(2026, 5, 18, 0, 0, 0, 0, time.UTC)
	nextMonday := monday.AddDate(0, 0, 7)

	t.Run("window fits the week's sessions with padding", func(t *testing.T) {
		repo := new(MockSessionRepository)
		svc := NewScheduleService(repo, nil)
		cancelled := mustSession(t, tenantID, monday, 6*60, 30)
		require.NoError(t, cancelled.Cancel())
		repo.On("FindBetween", ctx, tenantID, monday, nextMonday).Return([]calendar.Session{
			mustSession(t, tenantID, monday, 8*60, 120),
			mustSession(t, tenantID, monday.AddDate(0, 0, 3), 13*60, 240),
			cancelled,
		}, nil)

		// a Thursday inside the week selects the same week
		week, err := svc.ListWeek(ctx, tenantID, WeekQuery{WeekStart: "2026-05-21"})

		require.NoError(t, err)
		assert.Equal(t, "2026-05-18", week.WeekStart)
		assert.Equal(t, "2026-05-24", week.WeekEnd)
		assert.Len(t, week.Sessions, 3)
		assert.Equal(t, WindowResponse{Start: 7 * 60, End: 18 * 60, Label: "7:00 AM - 6:00 PM"}, week.Window)
	})

	t.Run("empty week gets the default window", func(t *testing.T) {
		repo := new(MockSessionRepository)
		svc := NewScheduleService(repo, nil)
		svc.now = func() time.Time { return monday.Add(50 * time.Hour) }
		repo.On("FindBetween", ctx, tenantID, monday, nextMonday).Return([]calendar.Session{}, nil)

		week, err := svc.ListWeek(ctx, tenantID, WeekQuery{})

		require.NoError(t, err)
		assert.Empty(t, week.Sessions)
		assert.Equal(t, WindowResponse{Start: 9 * 60, End: 15 * 60, Label: "9:00 AM - 3:00 PM"}, week.Window)
	})

	t.Run("padding override", func(t *testing.T) {
		repo := new(MockSessionRepository)
		svc := NewScheduleService(repo, nil)
		repo.On("FindBetween", ctx, tenantID, monday, nextMonday).Return([]calendar.Session{
			mustSession(t, tenantID, monday, 6*60, 8*60),
		}, nil)
		zero := 0

		week, err := svc.ListWeek(ctx, tenantID, WeekQuery{WeekStart: "2026-05-18", Padding: &zero})

		require.NoError(t, err)
		assert.Equal(t, 6*60, week.Window.Start)
		assert.Equal(t, 14*60, week.Window.End)
	})

	t.Run("invalid week_start", func(t *testing.T) {
		svc := NewScheduleService(new(MockSessionRepository), nil)

		_, err := svc.ListWeek(ctx, tenantID, WeekQuery{WeekStart: "next week"})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestScheduleService_Transitions(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockSessionRepository)
	svc := NewScheduleService(repo, nil)
	session := mustSession(t, tenantID, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), 600, 60)

	repo.On("FindByIDForTenant", ctx, tenantID, session.ID).Return(&session, nil)
	repo.On("Save", ctx, &session).Return(nil)

	resp, err := svc.Complete(ctx, tenantID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	_, err = svc.Cancel(ctx, tenantID, session.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestScheduleService_Clamp(t *testing.T) {
	svc := NewScheduleService(nil, nil)

	tests := []struct {
		name       string
		start, end int
		want       WindowResponse
	}{
		{"inverted falls back to default", 600, 300, WindowResponse{Start: 540, End: 900, Label: "9:00 AM - 3:00 PM"}},
		{"short window grows around midpoint", 720, 780, WindowResponse{Start: 570, End: 930, Label: "9:30 AM - 3:30 PM"}},
		{"late window shifts inward", 1380, 1440, WindowResponse{Start: 1080, End: 1440, Label: "6:00 PM - 12:00 AM"}},
		{"wide window kept", 480, 1200, WindowResponse{Start: 480, End: 1200, Label: "8:00 AM - 8:00 PM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Clamp(tt.start, tt.end))
		})
	}
}

func ptr[T any](v T) *T { return &v }
