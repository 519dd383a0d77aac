package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	calendarapp "github.com/lumiso/backend/internal/application/calendar"
)

// CalendarHandler handles session scheduling and the week preview
type CalendarHandler struct {
	BaseHandler
	schedule *calendarapp.ScheduleService
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(schedule *calendarapp.ScheduleService) *CalendarHandler {
	return &CalendarHandler{schedule: schedule}
}

type sessionOp func(ctx context.Context, tenantID, id uuid.UUID) (*calendarapp.SessionResponse, error)

// ClampQuery is an arbitrary viewing window in minutes since midnight
type ClampQuery struct {
	Start int `form:"start"`
	End   int `form:"end"`
}

// CreateSession handles POST /sessions
func (h *CalendarHandler) CreateSession(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req calendarapp.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.schedule.CreateSession(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Week handles GET /sessions
func (h *CalendarHandler) Week(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var query calendarapp.WeekQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.schedule.ListWeek(c.Request.Context(), tenantID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetSession handles GET /sessions/:id
func (h *CalendarHandler) GetSession(c *gin.Context) {
	h.withSession(c, h.schedule.GetByID)
}

// CompleteSession handles POST /sessions/:id/complete
func (h *CalendarHandler) CompleteSession(c *gin.Context) {
	h.withSession(c, h.schedule.Complete)
}

// CancelSession handles POST /sessions/:id/cancel
func (h *CalendarHandler) CancelSession(c *gin.Context) {
	h.withSession(c, h.schedule.Cancel)
}

// Clamp handles GET /calendar/clamp
func (h *CalendarHandler) Clamp(c *gin.Context) {
	var query ClampQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	h.Success(c, h.schedule.Clamp(query.Start, query.End))
}

func (h *CalendarHandler) withSession(c *gin.Context, op sessionOp) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := op(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
