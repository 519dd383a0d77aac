package onboarding

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/onboarding"
	"github.com/lumiso/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StateResponse represents onboarding progress in API responses
type StateResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Stage       string    `json:"stage"`
	CurrentStep int       `json:"current_step"`
	TotalSteps  int       `json:"total_steps"`
	IsFinished  bool      `json:"is_finished"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToStateResponse converts a domain State
func ToStateResponse(s *onboarding.State) StateResponse {
	return StateResponse{
		UserID:      s.UserID,
		Stage:       string(s.Stage),
		CurrentStep: s.CurrentStep,
		TotalSteps:  s.TotalSteps,
		IsFinished:  s.Stage.IsTerminal(),
		UpdatedAt:   s.UpdatedAt,
	}
}

// OnboardingService drives the per-user guided setup
type OnboardingService struct {
	repo       onboarding.StateRepository
	totalSteps int
	logger     *zap.Logger
}

// NewOnboardingService creates a new OnboardingService. totalSteps <= 0 uses
// onboarding.DefaultTotalSteps.
func NewOnboardingService(repo onboarding.StateRepository, totalSteps int, logger *zap.Logger) *OnboardingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnboardingService{repo: repo, totalSteps: totalSteps, logger: logger}
}

// Get returns the user's state. A user without state gets a fresh not_started
// state, which is persisted.
func (s *OnboardingService) Get(ctx context.Context, tenantID, userID uuid.UUID) (*StateResponse, error) {
	state, err := s.load(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	response := ToStateResponse(state)
	return &response, nil
}

// ShowModal records that the welcome modal was displayed
func (s *OnboardingService) ShowModal(ctx context.Context, tenantID, userID uuid.UUID) (*StateResponse, error) {
	return s.apply(ctx, tenantID, userID, "show_modal", (*onboarding.State).ShowModal)
}

// Start begins the guided steps
func (s *OnboardingService) Start(ctx context.Context, tenantID, userID uuid.UUID) (*StateResponse, error) {
	return s.apply(ctx, tenantID, userID, "start", (*onboarding.State).Start)
}

// Advance moves to the next step
func (s *OnboardingService) Advance(ctx context.Context, tenantID, userID uuid.UUID) (*StateResponse, error) {
	return s.apply(ctx, tenantID, userID, "advance", (*onboarding.State).Advance)
}

// Complete finishes onboarding
func (s *OnboardingService) Complete(ctx context.Context, tenantID, userID uuid.UUID) (*StateResponse, error) {
	return s.apply(ctx, tenantID, userID, "complete", (*onboarding.State).Complete)
}

// Skip leaves onboarding unfinished
func (s *OnboardingService) Skip(ctx context.Context, tenantID, userID uuid.UUID) (*StateResponse, error) {
	return s.apply(ctx, tenantID, userID, "skip", (*onboarding.State).Skip)
}

// Resume returns a skipped onboarding to its last step
func (s *OnboardingService) Resume(ctx context.Context, tenantID, userID uuid.UUID) (*StateResponse, error) {
	return s.apply(ctx, tenantID, userID, "resume", (*onboarding.State).Resume)
}

func (s *OnboardingService) apply(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	action string,
	transition func(*onboarding.State) error,
) (*StateResponse, error) {
	state, err := s.load(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	from := state.Stage
	if err := transition(state); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, state); err != nil {
		return nil, err
	}

	s.logger.Debug("Onboarding transition",
		zap.String("user_id", userID.String()),
		zap.String("action", action),
		zap.String("from", string(from)),
		zap.String("to", string(state.Stage)),
	)
	response := ToStateResponse(state)
	return &response, nil
}

func (s *OnboardingService) load(ctx context.Context, tenantID, userID uuid.UUID) (*onboarding.State, error) {
	state, err := s.repo.FindByUser(ctx, tenantID, userID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	state = onboarding.NewState(tenantID, userID, s.totalSteps)
	if err := s.repo.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}
