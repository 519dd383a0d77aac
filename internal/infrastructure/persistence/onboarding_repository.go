package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/onboarding"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/lumiso/backend/internal/infrastructure/persistence/models"
	"github.com/lumiso/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormOnboardingStateRepository implements onboarding.StateRepository using GORM
type GormOnboardingStateRepository struct {
	db *gorm.DB
}

// NewGormOnboardingStateRepository creates a new GormOnboardingStateRepository
func NewGormOnboardingStateRepository(db *gorm.DB) *GormOnboardingStateRepository {
	return &GormOnboardingStateRepository{db: db}
}

// FindByUser returns the user's onboarding state, or shared.ErrNotFound if onboarding never began
func (r *GormOnboardingStateRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) (*onboarding.State, error) {
	var model models.OnboardingStateModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the onboarding state
func (r *GormOnboardingStateRepository) Save(ctx context.Context, s *onboarding.State) error {
	return r.db.WithContext(ctx).Save(models.OnboardingStateModelFromDomain(s)).Error
}

// Ensure GormOnboardingStateRepository implements StateRepository
var _ onboarding.StateRepository = (*GormOnboardingStateRepository)(nil)
