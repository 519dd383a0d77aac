package lead

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Mocks
// ============================================================================

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*lead.Lead, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lead.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]lead.Lead, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lead.Lead), args.Error(1)
}

func (m *MockLeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) ListSnapshots(ctx context.Context, tenantID uuid.UUID) ([]lead.LifecycleSnapshot, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lead.LifecycleSnapshot), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, l *lead.Lead) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLeadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockLeadStatusRepository struct {
	mock.Mock
}

func (m *MockLeadStatusRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*lead.LeadStatus, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lead.LeadStatus), args.Error(1)
}

func (m *MockLeadStatusRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]lead.LeadStatus, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lead.LeadStatus), args.Error(1)
}

func (m *MockLeadStatusRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadStatusRepository) Save(ctx context.Context, status *lead.LeadStatus) error {
	return m.Called(ctx, status).Error(0)
}

func (m *MockLeadStatusRepository) SaveBatch(ctx context.Context, statuses []*lead.LeadStatus) error {
	return m.Called(ctx, statuses).Error(0)
}

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, tenantID uuid.UUID) (*lead.Summary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lead.Summary), args.Error(1)
}

func (m *MockSummaryCache) Set(ctx context.Context, tenantID uuid.UUID, summary lead.Summary, ttl time.Duration) error {
	return m.Called(ctx, tenantID, summary, ttl).Error(0)
}

func (m *MockSummaryCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	return m.Called(ctx, tenantID).Error(0)
}

type recordingMetrics struct {
	created, closed int
	inactive        []int
}

func (r *recordingMetrics) LeadCreated(context.Context, uuid.UUID) { r.created++ }
func (r *recordingMetrics) LeadClosed(context.Context, uuid.UUID)  { r.closed++ }
func (r *recordingMetrics) InactiveLeads(_ context.Context, _ uuid.UUID, n int) {
	r.inactive = append(r.inactive, n)
}

// ============================================================================
// Helpers
// ============================================================================

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

type leadServiceFixture struct {
	leads    *MockLeadRepository
	statuses *MockLeadStatusRepository
	cache    *MockSummaryCache
	metrics  *recordingMetrics
	svc      *LeadService
}

func newLeadServiceFixture() *leadServiceFixture {
	f := &leadServiceFixture{
		leads:    new(MockLeadRepository),
		statuses: new(MockLeadStatusRepository),
		cache:    new(MockSummaryCache),
		metrics:  &recordingMetrics{},
	}
	f.svc = NewLeadService(f.leads, f.statuses, f.cache,
		ServiceConfig{InactiveDays: 14, SummaryTTL: time.Minute},
		WithMetrics(f.metrics),
		WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

func newStatus(t *testing.T, tenantID uuid.UUID, name string, final bool) *lead.LeadStatus {
	t.Helper()
	s, err := lead.NewLeadStatus(tenantID, name, "", 0)
	require.NoError(t, err)
	s.IsSystemFinal = final
	return s
}

// ============================================================================
// LeadService
// ============================================================================

func TestLeadService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates with contact details and structured status", func(t *testing.T) {
		f := newLeadServiceFixture()
		status := newStatus(t, tenantID, "New", false)

		f.statuses.On("FindByIDForTenant", mock.Anything, tenantID, status.ID).Return(status, nil)
		f.leads.On("Save", mock.Anything, mock.AnythingOfType("*lead.Lead")).Return(nil)
		f.cache.On("Invalidate", mock.Anything, tenantID).Return(nil)

		resp, err := f.svc.Create(ctx, tenantID, CreateLeadRequest{
			Name:     "Ayşe ve Mehmet Yılmaz",
			Email:    "ayse@example.com",
			StatusID: &status.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "AMY", resp.Initials)
		assert.Equal(t, "New", resp.Status)
		assert.Equal(t, "ayse@example.com", resp.Email)
		assert.False(t, resp.IsClosed)
		assert.Equal(t, 1, f.metrics.created)
		assert.Equal(t, 0, f.metrics.closed)
		f.cache.AssertCalled(t, "Invalidate", mock.Anything, tenantID)
	})

	t.Run("raw closed status counts as closed", func(t *testing.T) {
		f := newLeadServiceFixture()
		f.leads.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.cache.On("Invalidate", mock.Anything, tenantID).Return(nil)

		resp, err := f.svc.Create(ctx, tenantID, CreateLeadRequest{Name: "Old Import", Status: "Cancelled by client"})

		require.NoError(t, err)
		assert.True(t, resp.IsClosed)
		assert.Equal(t, 1, f.metrics.closed)
	})

	t.Run("invalid name", func(t *testing.T) {
		f := newLeadServiceFixture()

		_, err := f.svc.Create(ctx, tenantID, CreateLeadRequest{Name: "   "})

		require.Error(t, err)
		f.leads.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newLeadServiceFixture()
		statusID := uuid.New()
		f.statuses.On("FindByIDForTenant", mock.Anything, tenantID, statusID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Create(ctx, tenantID, CreateLeadRequest{Name: "Jane", StatusID: &statusID})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("cache invalidation failure does not fail the write", func(t *testing.T) {
		f := newLeadServiceFixture()
		f.leads.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.cache.On("Invalidate", mock.Anything, tenantID).Return(errors.New("redis down"))

		_, err := f.svc.Create(ctx, tenantID, CreateLeadRequest{Name: "Jane"})

		assert.NoError(t, err)
	})
}

func TestLeadService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	f := newLeadServiceFixture()
	l, err := lead.NewLead(tenantID, "Jane Doe")
	require.NoError(t, err)
	booked := newStatus(t, tenantID, "Booked", true)

	f.leads.On("FindByIDForTenant", mock.Anything, tenantID, l.ID).Return(l, nil)
	f.statuses.On("FindByIDForTenant", mock.Anything, tenantID, booked.ID).Return(booked, nil)
	f.leads.On("Save", mock.Anything, l).Return(nil)
	f.cache.On("Invalidate", mock.Anything, tenantID).Return(nil)

	resp, err := f.svc.ChangeStatus(ctx, tenantID, l.ID, ChangeStatusRequest{StatusID: booked.ID})

	require.NoError(t, err)
	assert.True(t, resp.IsClosed)
	assert.Equal(t, &booked.ID, resp.StatusID)
	assert.Equal(t, 1, f.metrics.closed)
	assert.Empty(t, l.GetDomainEvents())

	// same status again is rejected
	_, err = f.svc.ChangeStatus(ctx, tenantID, l.ID, ChangeStatusRequest{StatusID: booked.ID})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, 1, f.metrics.closed)
}

func TestLeadService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newLeadServiceFixture()

	stale, _ := lead.NewLead(tenantID, "Stale Lead")
	stale.CreatedAt = fixedNow.AddDate(0, 0, -30)
	stale.UpdatedAt = fixedNow.AddDate(0, 0, -20)
	fresh, _ := lead.NewLead(tenantID, "Fresh Lead")
	fresh.CreatedAt = fixedNow
	fresh.UpdatedAt = fixedNow

	statusID := uuid.New()
	f.leads.On("FindAllForTenant", mock.Anything, tenantID, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Page == 2 && filter.PageSize == 10 && filter.Search == "lead" && filter.Filters["status_id"] == statusID
	})).Return([]lead.Lead{*stale, *fresh}, nil)
	f.leads.On("CountForTenant", mock.Anything, tenantID, mock.Anything).Return(int64(12), nil)

	leads, total, err := f.svc.List(ctx, tenantID, LeadListFilter{Search: "lead", StatusID: statusID.String(), Page: 2, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, leads, 2)
	assert.True(t, leads[0].IsInactive)
	assert.False(t, leads[1].IsInactive)
	assert.Equal(t, "SL", leads[0].Initials)

	_, _, err = f.svc.List(ctx, tenantID, LeadListFilter{StatusID: "nope"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestLeadService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newLeadServiceFixture()
	l, _ := lead.NewLead(tenantID, "Jane")

	f.leads.On("FindByIDForTenant", mock.Anything, tenantID, l.ID).Return(l, nil)
	f.leads.On("Save", mock.Anything, l).Return(nil)
	f.leads.On("DeleteForTenant", mock.Anything, tenantID, l.ID).Return(nil)
	f.cache.On("Invalidate", mock.Anything, tenantID).Return(nil)

	resp, err := f.svc.Update(ctx, tenantID, l.ID, UpdateLeadRequest{Name: "Jane Smith", Phone: "+90 555 000 00 00"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", resp.Name)
	assert.Equal(t, "JS", resp.Initials)

	_, err = f.svc.Update(ctx, tenantID, l.ID, UpdateLeadRequest{Name: "Jane", Email: "not-an-email"})
	assert.Error(t, err)

	require.NoError(t, f.svc.Delete(ctx, tenantID, l.ID))
	f.cache.AssertNumberOfCalls(t, "Invalidate", 2)
}

func TestLeadService_Summary(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	snapshots := []lead.LifecycleSnapshot{
		{Status: "new", CreatedAt: fixedNow.AddDate(0, 0, -14)},
		{Status: "new", UpdatedAt: fixedNow.AddDate(0, 0, -3)},
		{Status: "lost", CreatedAt: fixedNow.AddDate(0, 0, -60)},
	}

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newLeadServiceFixture()
		cached := &lead.Summary{Total: 9, InactiveDays: 14}
		f.cache.On("Get", mock.Anything, tenantID).Return(cached, nil)

		summary, err := f.svc.Summary(ctx, tenantID, nil)

		require.NoError(t, err)
		assert.Same(t, cached, summary)
		f.leads.AssertNotCalled(t, "ListSnapshots", mock.Anything, mock.Anything)
	})

	t.Run("cache miss computes and stores", func(t *testing.T) {
		f := newLeadServiceFixture()
		f.cache.On("Get", mock.Anything, tenantID).Return(nil, nil)
		f.leads.On("ListSnapshots", mock.Anything, tenantID).Return(snapshots, nil)
		f.cache.On("Set", mock.Anything, tenantID, mock.AnythingOfType("lead.Summary"), time.Minute).Return(nil)

		summary, err := f.svc.Summary(ctx, tenantID, nil)

		require.NoError(t, err)
		assert.Equal(t, lead.Summary{Total: 3, Open: 2, Closed: 1, Inactive: 1, InactiveDays: 14, GeneratedAt: fixedNow}, *summary)
		assert.Equal(t, []int{1}, f.metrics.inactive)
		f.cache.AssertExpectations(t)
	})

	t.Run("cache read error falls through", func(t *testing.T) {
		f := newLeadServiceFixture()
		f.cache.On("Get", mock.Anything, tenantID).Return(nil, errors.New("timeout"))
		f.leads.On("ListSnapshots", mock.Anything, tenantID).Return(snapshots, nil)
		f.cache.On("Set", mock.Anything, tenantID, mock.Anything, mock.Anything).Return(nil)

		summary, err := f.svc.Summary(ctx, tenantID, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, summary.Total)
	})

	t.Run("override bypasses cache", func(t *testing.T) {
		f := newLeadServiceFixture()
		f.leads.On("ListSnapshots", mock.Anything, tenantID).Return(snapshots, nil)
		days := 2

		summary, err := f.svc.Summary(ctx, tenantID, &days)

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Inactive)
		assert.Equal(t, 2, summary.InactiveDays)
		f.cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.metrics.inactive)
	})

	t.Run("invalid override", func(t *testing.T) {
		f := newLeadServiceFixture()
		days := 0

		_, err := f.svc.Summary(ctx, tenantID, &days)

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("nil cache", func(t *testing.T) {
		leads := new(MockLeadRepository)
		leads.On("ListSnapshots", mock.Anything, tenantID).Return(snapshots, nil)
		svc := NewLeadService(leads, new(MockLeadStatusRepository), nil, ServiceConfig{}, WithClock(func() time.Time { return fixedNow }))

		summary, err := svc.Summary(ctx, tenantID, nil)

		require.NoError(t, err)
		assert.Equal(t, lead.DefaultInactiveDays, summary.InactiveDays)
	})
}

// ============================================================================
// LeadStatusService
// ============================================================================

func TestLeadStatusService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates final status", func(t *testing.T) {
		repo := new(MockLeadStatusRepository)
		svc := NewLeadStatusService(repo)
		repo.On("ExistsByName", ctx, tenantID, "Archived").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*lead.LeadStatus")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateLeadStatusRequest{Name: "Archived", Color: "#112233", IsFinal: true})

		require.NoError(t, err)
		assert.True(t, resp.IsSystemFinal)
		assert.Equal(t, "#112233", resp.Color)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockLeadStatusRepository)
		svc := NewLeadStatusService(repo)
		repo.On("ExistsByName", ctx, tenantID, "New").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateLeadStatusRequest{Name: "New"})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestLeadStatusService_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("seeds empty studio", func(t *testing.T) {
		repo := new(MockLeadStatusRepository)
		svc := NewLeadStatusService(repo)
		repo.On("FindAllForTenant", ctx, tenantID).Return([]lead.LeadStatus{}, nil)
		repo.On("SaveBatch", ctx, mock.MatchedBy(func(s []*lead.LeadStatus) bool { return len(s) == 4 })).Return(nil)

		statuses, err := svc.SeedDefaults(ctx, tenantID)

		require.NoError(t, err)
		require.Len(t, statuses, 4)
		assert.Equal(t, "New", statuses[0].Name)
		assert.True(t, statuses[0].IsDefault)
		assert.True(t, statuses[2].IsSystemFinal)
	})

	t.Run("keeps existing pipeline", func(t *testing.T) {
		repo := new(MockLeadStatusRepository)
		svc := NewLeadStatusService(repo)
		existing := *newStatus(t, tenantID, "Inquiry", false)
		repo.On("FindAllForTenant", ctx, tenantID).Return([]lead.LeadStatus{existing}, nil)

		statuses, err := svc.SeedDefaults(ctx, tenantID)

		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, "Inquiry", statuses[0].Name)
		repo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})
}
