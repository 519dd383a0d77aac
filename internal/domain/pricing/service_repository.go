package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
)

// ServiceRepository defines the interface for catalogue persistence
type ServiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Service, error)

	// FindByIDs returns the services of a tenant with the given IDs, in any order
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Service, error)

	// FindAllForTenant supports filters "active" (bool) and "category" (string)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Service, error)

	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	Save(ctx context.Context, s *Service) error
}
