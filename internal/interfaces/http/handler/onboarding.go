package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	onboardingapp "github.com/lumiso/backend/internal/application/onboarding"
)

type onboardingOp func(ctx context.Context, tenantID, userID uuid.UUID) (*onboardingapp.StateResponse, error)

// OnboardingHandler exposes the current user's guided setup
type OnboardingHandler struct {
	BaseHandler
	onboarding *onboardingapp.OnboardingService
}

// NewOnboardingHandler creates a new OnboardingHandler
func NewOnboardingHandler(onboarding *onboardingapp.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

// Get handles GET /onboarding
func (h *OnboardingHandler) Get(c *gin.Context) { h.run(c, h.onboarding.Get) }

// ShowModal handles POST /onboarding/modal
func (h *OnboardingHandler) ShowModal(c *gin.Context) { h.run(c, h.onboarding.ShowModal) }

// Start handles POST /onboarding/start
func (h *OnboardingHandler) Start(c *gin.Context) { h.run(c, h.onboarding.Start) }

// Advance handles POST /onboarding/advance
func (h *OnboardingHandler) Advance(c *gin.Context) { h.run(c, h.onboarding.Advance) }

// Complete handles POST /onboarding/complete
func (h *OnboardingHandler) Complete(c *gin.Context) { h.run(c, h.onboarding.Complete) }

// Skip handles POST /onboarding/skip
func (h *OnboardingHandler) Skip(c *gin.Context) { h.run(c, h.onboarding.Skip) }

// Resume handles POST /onboarding/resume
func (h *OnboardingHandler) Resume(c *gin.Context) { h.run(c, h.onboarding.Resume) }

func (h *OnboardingHandler) run(c *gin.Context, op onboardingOp) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	resp, err := op(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
