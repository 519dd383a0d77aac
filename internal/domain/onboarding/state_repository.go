package onboarding

import (
	"context"

	"github.com/google/uuid"
)

// StateRepository defines the interface for onboarding state persistence
type StateRepository interface {
	// FindByUser returns shared.ErrNotFound when the user has no state yet
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) (*State, error)

	Save(ctx context.Context, s *State) error
}
