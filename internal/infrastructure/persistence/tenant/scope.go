// Package tenant provides studio (tenant) scoping for GORM queries.
//
// Every studio-owned table carries a tenant_id column; repositories apply
// Scope to each query so a studio can never read another studio's rows.
//
//	db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Find(&leads)
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the tenant column shared by all studio-owned tables
const Column = "tenant_id"

// ErrTenantIDRequired is returned when a scoped query is built without a tenant
var ErrTenantIDRequired = errors.New("tenant_id is required")

// Scope restricts a query to one tenant. The nil UUID fails the query instead
// of silently returning every tenant's rows.
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: Column},
			Value:  tenantID,
		})
	}
}
