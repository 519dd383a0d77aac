package onboarding

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/shared"
)

// DefaultTotalSteps is the number of guided setup steps
const DefaultTotalSteps = 5

// State is the onboarding progress of one user in one studio
type State struct {
	shared.TenantAggregateRoot
	UserID      uuid.UUID
	Stage       Stage
	CurrentStep int
	TotalSteps  int
}

// NewState creates a not_started state
func NewState(tenantID, userID uuid.UUID, totalSteps int) *State {
	if totalSteps <= 0 {
		totalSteps = DefaultTotalSteps
	}
	return &State{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Stage:               StageNotStarted,
		TotalSteps:          totalSteps,
	}
}

// ShowModal records that the welcome modal was displayed
func (s *State) ShowModal() error {
	return s.transition(StageModalShown)
}

// Start begins the guided steps
func (s *State) Start() error {
	return s.transition(StageInProgress)
}

// Resume returns a skipped onboarding to the step where it stopped
func (s *State) Resume() error {
	if s.Stage != StageSkipped {
		return invalidTransition(s.Stage, StageInProgress)
	}
	return s.transition(StageInProgress)
}

// Skip leaves onboarding without finishing it
func (s *State) Skip() error {
	return s.transition(StageSkipped)
}

// Complete finishes onboarding
func (s *State) Complete() error {
	if err := s.transition(StageCompleted); err != nil {
		return err
	}
	s.CurrentStep = s.TotalSteps
	return nil
}

// Advance moves to the next step, completing onboarding after the last one
func (s *State) Advance() error {
	if s.Stage != StageInProgress {
		return shared.NewDomainError("INVALID_STATE", "Onboarding steps can only advance while in progress")
	}
	s.CurrentStep++
	if s.CurrentStep >= s.TotalSteps {
		return s.Complete()
	}
	s.Touch()
	s.IncrementVersion()
	return nil
}

func (s *State) transition(next Stage) error {
	if !s.Stage.CanTransitionTo(next) {
		return invalidTransition(s.Stage, next)
	}
	s.Stage = next
	s.Touch()
	s.IncrementVersion()
	return nil
}

func invalidTransition(from, to Stage) error {
	return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move onboarding from %s to %s", from, to))
}
