package lead

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/lumiso/backend/internal/domain/shared"
)

// LeadStatusService manages a studio's pipeline statuses
type LeadStatusService struct {
	statusRepo lead.LeadStatusRepository
}

// NewLeadStatusService creates a new LeadStatusService
func NewLeadStatusService(statusRepo lead.LeadStatusRepository) *LeadStatusService {
	return &LeadStatusService{statusRepo: statusRepo}
}

// List returns the statuses in pipeline order
func (s *LeadStatusService) List(ctx context.Context, tenantID uuid.UUID) ([]LeadStatusResponse, error) {
	statuses, err := s.statusRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToLeadStatusResponses(statuses), nil
}

// Create adds a status; names are unique per studio, case-insensitively
func (s *LeadStatusService) Create(ctx context.Context, tenantID uuid.UUID, req CreateLeadStatusRequest) (*LeadStatusResponse, error) {
	exists, err := s.statusRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A status with this name already exists")
	}

	status, err := lead.NewLeadStatus(tenantID, req.Name, req.Color, req.SortOrder)
	if err != nil {
		return nil, err
	}
	if req.IsFinal {
		status.MarkFinal()
	}

	if err := s.statusRepo.Save(ctx, status); err != nil {
		return nil, err
	}
	response := ToLeadStatusResponse(status)
	return &response, nil
}

// SeedDefaults creates the default pipeline for a studio that has none.
// A studio that already has statuses keeps them unchanged.
func (s *LeadStatusService) SeedDefaults(ctx context.Context, tenantID uuid.UUID) ([]LeadStatusResponse, error) {
	existing, err := s.statusRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return ToLeadStatusResponses(existing), nil
	}

	defaults := lead.DefaultStatuses(tenantID)
	if err := s.statusRepo.SaveBatch(ctx, defaults); err != nil {
		return nil, err
	}

	responses := make([]LeadStatusResponse, len(defaults))
	for i, status := range defaults {
		responses[i] = ToLeadStatusResponse(status)
	}
	return responses, nil
}
