package lead

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/lumiso/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Metrics records lead pipeline measurements
type Metrics interface {
	LeadCreated(ctx context.Context, tenantID uuid.UUID)
	LeadClosed(ctx context.Context, tenantID uuid.UUID)
	InactiveLeads(ctx context.Context, tenantID uuid.UUID, count int)
}

type nopMetrics struct{}

func (nopMetrics) LeadCreated(context.Context, uuid.UUID)        {}
func (nopMetrics) LeadClosed(context.Context, uuid.UUID)         {}
func (nopMetrics) InactiveLeads(context.Context, uuid.UUID, int) {}

// ServiceConfig holds lead pipeline settings
type ServiceConfig struct {
	// InactiveDays is the default inactivity threshold for summaries
	InactiveDays int
	// SummaryTTL is how long a computed summary is served from cache
	SummaryTTL time.Duration
}

// LeadServiceOption configures a LeadService
type LeadServiceOption func(*LeadService)

// WithMetrics sets the metrics recorder
func WithMetrics(m Metrics) LeadServiceOption {
	return func(s *LeadService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) LeadServiceOption {
	return func(s *LeadService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for inactivity checks
func WithClock(now func() time.Time) LeadServiceOption {
	return func(s *LeadService) {
		s.now = now
	}
}

// LeadService handles lead operations
type LeadService struct {
	leadRepo   lead.LeadRepository
	statusRepo lead.LeadStatusRepository
	cache      lead.SummaryCache
	config     ServiceConfig
	metrics    Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewLeadService creates a new LeadService. cache may be nil.
func NewLeadService(
	leadRepo lead.LeadRepository,
	statusRepo lead.LeadStatusRepository,
	cache lead.SummaryCache,
	config ServiceConfig,
	opts ...LeadServiceOption,
) *LeadService {
	if config.InactiveDays <= 0 {
		config.InactiveDays = lead.DefaultInactiveDays
	}
	if config.SummaryTTL <= 0 {
		config.SummaryTTL = 2 * time.Minute
	}
	s := &LeadService{
		leadRepo:   leadRepo,
		statusRepo: statusRepo,
		cache:      cache,
		config:     config,
		metrics:    nopMetrics{},
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a new lead
func (s *LeadService) Create(ctx context.Context, tenantID uuid.UUID, req CreateLeadRequest) (resp *LeadResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lead", "create", attribute.String("tenant_id", tenantID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	l, err := lead.NewLead(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Email != "" || req.Phone != "" || req.Notes != "" {
		if err := l.Update(req.Name, req.Email, req.Phone, req.Notes); err != nil {
			return nil, err
		}
	}

	switch {
	case req.StatusID != nil:
		status, err := s.statusRepo.FindByIDForTenant(ctx, tenantID, *req.StatusID)
		if err != nil {
			return nil, err
		}
		if err := l.ChangeStatus(status); err != nil {
			return nil, err
		}
	case req.Status != "":
		l.SetRawStatus(req.Status)
	}

	if err := s.leadRepo.Save(ctx, l); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, l)
	// free-text statuses raise no status event
	if req.StatusID == nil && l.IsClosed() {
		s.metrics.LeadClosed(ctx, tenantID)
	}
	s.invalidateSummary(ctx, tenantID)

	response := ToLeadResponse(l, s.config.InactiveDays, s.now())
	return &response, nil
}

// GetByID retrieves a lead by ID
func (s *LeadService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*LeadResponse, error) {
	l, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToLeadResponse(l, s.config.InactiveDays, s.now())
	return &response, nil
}

// List returns a page of leads and the total matching count
func (s *LeadService) List(ctx context.Context, tenantID uuid.UUID, filter LeadListFilter) ([]LeadResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.StatusID != "" {
		statusID, err := uuid.Parse(filter.StatusID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "status_id must be a UUID")
		}
		domainFilter.Filters["status_id"] = statusID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	leads, err := s.leadRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leadRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]LeadResponse, len(leads))
	for i := range leads {
		responses[i] = ToLeadResponse(&leads[i], s.config.InactiveDays, now)
	}
	return responses, total, nil
}

// Update replaces a lead's contact details
func (s *LeadService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateLeadRequest) (*LeadResponse, error) {
	l, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := l.Update(req.Name, req.Email, req.Phone, req.Notes); err != nil {
		return nil, err
	}
	if err := s.leadRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx, tenantID)

	response := ToLeadResponse(l, s.config.InactiveDays, s.now())
	return &response, nil
}

// ChangeStatus moves a lead to another pipeline status
func (s *LeadService) ChangeStatus(ctx context.Context, tenantID, id uuid.UUID, req ChangeStatusRequest) (resp *LeadResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lead", "change_status",
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("lead_id", id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	l, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	status, err := s.statusRepo.FindByIDForTenant(ctx, tenantID, req.StatusID)
	if err != nil {
		return nil, err
	}

	if err := l.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := s.leadRepo.Save(ctx, l); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, l)
	s.invalidateSummary(ctx, tenantID)

	response := ToLeadResponse(l, s.config.InactiveDays, s.now())
	return &response, nil
}

// Delete removes a lead
func (s *LeadService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.leadRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	s.invalidateSummary(ctx, tenantID)
	return nil
}

// Summary returns the studio's pipeline overview. inactiveDays overrides the
// configured threshold; overridden summaries are computed fresh and never cached.
func (s *LeadService) Summary(ctx context.Context, tenantID uuid.UUID, inactiveDays *int) (*lead.Summary, error) {
	days := s.config.InactiveDays
	if inactiveDays != nil {
		if *inactiveDays < 1 {
			return nil, shared.NewDomainError("INVALID_INPUT", "inactive_days must be at least 1")
		}
		days = *inactiveDays
	}
	useCache := s.cache != nil && days == s.config.InactiveDays

	if useCache {
		cached, err := s.cache.Get(ctx, tenantID)
		if err != nil {
			s.logger.Warn("Lead summary cache read failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	snapshots, err := s.leadRepo.ListSnapshots(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	summary := lead.Summarize(snapshots, days, s.now())

	if days == s.config.InactiveDays {
		s.metrics.InactiveLeads(ctx, tenantID, summary.Inactive)
	}
	if useCache {
		if err := s.cache.Set(ctx, tenantID, summary, s.config.SummaryTTL); err != nil {
			s.logger.Warn("Lead summary cache write failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		}
	}
	return &summary, nil
}

// publishEvents turns the lead's pending domain events into metrics and log
// entries once the lead is persisted
func (s *LeadService) publishEvents(ctx context.Context, l *lead.Lead) {
	for _, event := range l.GetDomainEvents() {
		switch e := event.(type) {
		case *lead.LeadCreatedEvent:
			s.metrics.LeadCreated(ctx, e.TenantID())
			s.logger.Info("Lead created",
				zap.String("tenant_id", e.TenantID().String()),
				zap.String("lead_id", e.LeadID.String()))
		case *lead.LeadStatusChangedEvent:
			if e.Closing {
				s.metrics.LeadClosed(ctx, e.TenantID())
			}
			s.logger.Info("Lead status changed",
				zap.String("tenant_id", e.TenantID().String()),
				zap.String("lead_id", e.LeadID.String()),
				zap.String("from", e.OldStatus),
				zap.String("to", e.NewStatus),
				zap.Bool("closed", e.Closed),
				zap.Bool("reopened", e.Reopened))
		}
	}
	l.ClearDomainEvents()
}

func (s *LeadService) invalidateSummary(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		s.logger.Warn("Lead summary cache invalidation failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
	}
}
