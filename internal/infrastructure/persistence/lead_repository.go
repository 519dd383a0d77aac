package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/lumiso/backend/internal/domain/shared"
	"github.com/lumiso/backend/internal/infrastructure/persistence/models"
	"github.com/lumiso/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLeadRepository implements LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByIDForTenant finds a lead by ID within a tenant, with its status preloaded
func (r *GormLeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*lead.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).
		Preload("LeadStatus").
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

// FindAllForTenant finds all leads for a tenant matching the filter
func (r *GormLeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]lead.Lead, error) {
	var rows []models.LeadModel
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).Preload("LeadStatus").Scopes(tenant.Scope(tenantID)),
		filter,
	)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, LeadSortFields, "created_at"))

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	leads := make([]lead.Lead, len(rows))
	for i := range rows {
		leads[i] = *rows[i].ToDomain()
	}
	return leads, nil
}

// CountForTenant counts leads for a tenant
func (r *GormLeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).Scopes(tenant.Scope(tenantID)),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListSnapshots returns the lifecycle view of every lead of a tenant
func (r *GormLeadRepository) ListSnapshots(ctx context.Context, tenantID uuid.UUID) ([]lead.LifecycleSnapshot, error) {
	var rows []models.LeadModel
	if err := r.db.WithContext(ctx).
		Select("id", "status", "status_id", "created_at", "updated_at").
		Preload("LeadStatus").
		Scopes(tenant.Scope(tenantID)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	snapshots := make([]lead.LifecycleSnapshot, len(rows))
	for i := range rows {
		snapshots[i] = rows[i].ToSnapshot()
	}
	return snapshots, nil
}

// Save creates or updates a lead. The status association is never written through the lead.
func (r *GormLeadRepository) Save(ctx context.Context, l *lead.Lead) error {
	model := models.LeadModelFromDomain(l)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error
}

// DeleteForTenant deletes a lead within a tenant
func (r *GormLeadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Delete(&models.LeadModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormLeadRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status_id":
			query = query.Where("status_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormLeadRepository implements LeadRepository
var _ lead.LeadRepository = (*GormLeadRepository)(nil)

// GormLeadStatusRepository implements LeadStatusRepository using GORM
type GormLeadStatusRepository struct {
	db *gorm.DB
}

// NewGormLeadStatusRepository creates a new GormLeadStatusRepository
func NewGormLeadStatusRepository(db *gorm.DB) *GormLeadStatusRepository {
	return &GormLeadStatusRepository{db: db}
}

// FindByIDForTenant finds a status by ID within a tenant
func (r *GormLeadStatusRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*lead.LeadStatus, error) {
	var model models.LeadStatusModel
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

// FindAllForTenant returns the tenant's statuses ordered by sort order
func (r *GormLeadStatusRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]lead.LeadStatus, error) {
	var rows []models.LeadStatusModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("sort_order ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	statuses := make([]lead.LeadStatus, len(rows))
	for i := range rows {
		statuses[i] = *rows[i].ToDomain()
	}
	return statuses, nil
}

// ExistsByName checks case-insensitively whether a status name is taken in the tenant
func (r *GormLeadStatusRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LeadStatusModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a lead status
func (r *GormLeadStatusRepository) Save(ctx context.Context, status *lead.LeadStatus) error {
	return r.db.WithContext(ctx).Save(models.LeadStatusModelFromDomain(status)).Error
}

// SaveBatch creates or updates multiple statuses in one transaction
func (r *GormLeadStatusRepository) SaveBatch(ctx context.Context, statuses []*lead.LeadStatus) error {
	if len(statuses) == 0 {
		return nil
	}
	rows := make([]*models.LeadStatusModel, len(statuses))
	for i, s := range statuses {
		rows[i] = models.LeadStatusModelFromDomain(s)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(rows).Error
	})
}

// Ensure GormLeadStatusRepository implements LeadStatusRepository
var _ lead.LeadStatusRepository = (*GormLeadStatusRepository)(nil)
