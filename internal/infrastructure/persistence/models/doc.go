// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities so the domain layer stays free
// of ORM concerns.
//
// Each model provides ToDomain and FromDomain mappers; repositories only ever
// read and write models.
//
// Structure:
//   - base.go: shared columns (BaseModel, AggregateModel, TenantAggregateModel)
//   - lead.go: leads and studio-defined lead statuses
//   - pricing.go: service catalogue
//   - calendar.go: photo sessions
//   - onboarding.go: per-user onboarding progress
package models
