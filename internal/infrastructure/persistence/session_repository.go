package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/calendar"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/lumiso/backend/internal/infrastructure/persistence/models"
	"github.com/lumiso/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormSessionRepository implements SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByIDForTenant finds a session by ID within a tenant
func (r *GormSessionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*calendar.Session, error) {
	var model models.SessionModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBetween returns sessions dated in [from, to), ordered chronologically
func (r *GormSessionRepository) FindBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]calendar.Session, error) {
	var rows []models.SessionModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("session_date >= ? AND session_date < ?", calendar.DateOnly(from), calendar.DateOnly(to)).
		Order("session_date ASC, start_minute ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	sessions := make([]calendar.Session, len(rows))
	for i := range rows {
		sessions[i] = *rows[i].ToDomain()
	}
	return sessions, nil
}

// Save creates or updates a session
func (r *GormSessionRepository) Save(ctx context.Context, s *calendar.Session) error {
	return r.db.WithContext(ctx).Save(models.SessionModelFromDomain(s)).Error
}

// Ensure GormSessionRepository implements SessionRepository
var _ calendar.SessionRepository = (*GormSessionRepository)(nil)
