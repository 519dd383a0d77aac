package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/pricing"
	"github.com/lumiso/backend/internal/domain/shared"
)

// ServiceCatalogService manages a studio's sellable services
type ServiceCatalogService struct {
	repo pricing.ServiceRepository
}

// NewServiceCatalogService creates a new ServiceCatalogService
func NewServiceCatalogService(repo pricing.ServiceRepository) *ServiceCatalogService {
	return &ServiceCatalogService{repo: repo}
}

// Create adds a service to the catalogue
func (s *ServiceCatalogService) Create(ctx context.Context, tenantID uuid.UUID, req CreateServiceRequest) (*ServiceResponse, error) {
	svc, err := pricing.NewService(tenantID, req.Name, req.Category, req.UnitPrice, req.VatRate, pricing.ParseVatMode(req.VatMode))
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}
	response := ToServiceResponse(svc)
	return &response, nil
}

// GetByID retrieves a catalogue service
func (s *ServiceCatalogService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToServiceResponse(svc)
	return &response, nil
}

// List returns a page of services and the total matching count
func (s *ServiceCatalogService) List(ctx context.Context, tenantID uuid.UUID, filter ServiceListFilter) ([]ServiceResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	services, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ServiceResponse, len(services))
	for i := range services {
		responses[i] = ToServiceResponse(&services[i])
	}
	return responses, total, nil
}

// Update replaces a service's pricing details
func (s *ServiceCatalogService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	svc, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := svc.Update(req.Name, req.Category, req.UnitPrice, req.VatRate, pricing.ParseVatMode(req.VatMode)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}
	response := ToServiceResponse(svc)
	return &response, nil
}

// Deactivate hides a service from new quotes
func (s *ServiceCatalogService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := svc.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}
	response := ToServiceResponse(svc)
	return &response, nil
}

// Totals prices quantity units of a catalogue service
func (s *ServiceCatalogService) Totals(ctx context.Context, tenantID, id uuid.UUID, quantity float64) (*ServiceTotalsResponse, error) {
	svc, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	totals := svc.Totals(quantity)
	return &ServiceTotalsResponse{
		ServiceID: svc.ID,
		Quantity:  quantity,
		TotalsResponse: TotalsResponse{
			Totals:  totals,
			Rounded: totals.Rounded(DisplayPlaces),
		},
	}, nil
}
