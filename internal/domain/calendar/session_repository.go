package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Session, error)

	// FindBetween returns sessions dated in [from, to), ordered by date and start
	FindBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Session, error)

	Save(ctx context.Context, s *Session) error
}
