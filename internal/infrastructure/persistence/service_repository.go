package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/pricing"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/lumiso/backend/internal/infrastructure/persistence/models"
	"github.com/lumiso/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormServiceRepository implements ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByIDForTenant finds a service by ID within a tenant
func (r *GormServiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*pricing.Service, error) {
	var model models.ServiceModel
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

// FindByIDs returns the tenant's services among ids; unknown ids are skipped
func (r *GormServiceRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]pricing.Service, error) {
	if len(ids) == 0 {
		return []pricing.Service{}, nil
	}
	var rows []models.ServiceModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toServices(rows), nil
}

// FindAllForTenant finds all services for a tenant matching the filter
func (r *GormServiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]pricing.Service, error) {
	var rows []models.ServiceModel
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.ServiceModel{}).Scopes(tenant.Scope(tenantID)),
		filter,
	)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, ServiceSortFields, "name"))

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toServices(rows), nil
}

// CountForTenant counts services for a tenant
func (r *GormServiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.ServiceModel{}).Scopes(tenant.Scope(tenantID)),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a service
func (r *GormServiceRepository) Save(ctx context.Context, s *pricing.Service) error {
	return r.db.WithContext(ctx).Save(models.ServiceModelFromDomain(s)).Error
}

func (r *GormServiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		}
	}

	return query
}

func toServices(rows []models.ServiceModel) []pricing.Service {
	services := make([]pricing.Service, len(rows))
	for i := range rows {
		services[i] = *rows[i].ToDomain()
	}
	return services
}

// Ensure GormServiceRepository implements ServiceRepository
var _ pricing.ServiceRepository = (*GormServiceRepository)(nil)
