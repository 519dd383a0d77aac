package models

import (
	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/onboarding"
)

// OnboardingStateModel is the persistence model for a user's onboarding progress.
type OnboardingStateModel struct {
	TenantAggregateModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_onboarding_user"`
	Stage       string    `gorm:"type:varchar(20);not null;default:'not_started'"`
	CurrentStep int       `gorm:"not null;default:0"`
	TotalSteps  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OnboardingStateModel) TableName() string {
	return "onboarding_states"
}

// ToDomain converts the persistence model to a domain onboarding State.
func (m *OnboardingStateModel) ToDomain() *onboarding.State {
	return &onboarding.State{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		UserID:              m.UserID,
		Stage:               onboarding.Stage(m.Stage),
		CurrentStep:         m.CurrentStep,
		TotalSteps:          m.TotalSteps,
	}
}

// FromDomain populates the persistence model from a domain onboarding State.
func (m *OnboardingStateModel) FromDomain(s *onboarding.State) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.UserID = s.UserID
	m.Stage = string(s.Stage)
	m.CurrentStep = s.CurrentStep
	m.TotalSteps = s.TotalSteps
}

// OnboardingStateModelFromDomain creates a new persistence model from a domain onboarding State.
func OnboardingStateModelFromDomain(s *onboarding.State) *OnboardingStateModel {
	m := &OnboardingStateModel{}
	m.FromDomain(s)
	return m
}
