package lead

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
)

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	// FindByIDForTenant finds a lead by ID within a tenant, with its status resolved
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Lead, error)

	// FindAllForTenant finds leads for a tenant matching the filter.
	// Supported filters: "status_id" (uuid.UUID), "status" (string).
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Lead, error)

	// CountForTenant counts leads for a tenant matching the filter, ignoring pagination
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ListSnapshots returns the lifecycle view of every lead of a tenant
	ListSnapshots(ctx context.Context, tenantID uuid.UUID) ([]LifecycleSnapshot, error)

	// Save creates or updates a lead
	Save(ctx context.Context, l *Lead) error

	// DeleteForTenant deletes a lead within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// LeadStatusRepository defines the interface for lead status persistence
type LeadStatusRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*LeadStatus, error)

	// FindAllForTenant returns statuses ordered by sort order
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]LeadStatus, error)

	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)

	Save(ctx context.Context, status *LeadStatus) error

	SaveBatch(ctx context.Context, statuses []*LeadStatus) error
}
