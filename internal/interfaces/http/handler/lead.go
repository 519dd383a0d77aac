package handler

import (
	"github.com/gin-gonic/gin"
	leadapp "github.com/lumiso/backend/internal/application/lead"
	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/lumiso/backend/internal/domain/shared"
)

// LeadHandler handles lead and pipeline status endpoints
type LeadHandler struct {
	BaseHandler
	leads    *leadapp.LeadService
	statuses *leadapp.LeadStatusService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leads *leadapp.LeadService, statuses *leadapp.LeadStatusService) *LeadHandler {
	return &LeadHandler{leads: leads, statuses: statuses}
}

// SummaryQuery overrides the inactivity threshold of the summary
type SummaryQuery struct {
	InactiveDays *int `form:"inactive_days" binding:"omitempty,min=1,max=3650"`
}

// InitialsQuery is the input of the initials utility
type InitialsQuery struct {
	Name     string `form:"name" binding:"max=500"`
	Fallback string `form:"fallback" binding:"max=10"`
	// Max caps the letters returned; zero or less returns the fallback
	Max *int `form:"max" binding:"omitempty,max=10"`
}

// InitialsResponse is the output of the initials utility
type InitialsResponse struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// Create handles POST /leads
func (h *LeadHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req leadapp.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.leads.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /leads
func (h *LeadHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter leadapp.LeadListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	leads, total, err := h.leads.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, leads, total, page, pageSize)
}

// GetByID handles GET /leads/:id
func (h *LeadHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.leads.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /leads/:id
func (h *LeadHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req leadapp.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.leads.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeStatus handles PUT /leads/:id/status
func (h *LeadHandler) ChangeStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req leadapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.leads.ChangeStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /leads/:id
func (h *LeadHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.leads.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary handles GET /leads/stats/summary
func (h *LeadHandler) Summary(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var query SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	summary, err := h.leads.Summary(c.Request.Context(), tenantID, query.InactiveDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Initials handles GET /leads/initials
func (h *LeadHandler) Initials(c *gin.Context) {
	var query InitialsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	opts := []lead.InitialsOption{lead.WithFallback(query.Fallback)}
	if query.Max != nil {
		opts = append(opts, lead.WithMaxInitials(*query.Max))
	}
	h.Success(c, InitialsResponse{
		Name:     query.Name,
		Initials: lead.ComputeInitials(query.Name, opts...),
	})
}

// ListStatuses handles GET /lead-statuses
func (h *LeadHandler) ListStatuses(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	statuses, err := h.statuses.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statuses)
}

// CreateStatus handles POST /lead-statuses
func (h *LeadHandler) CreateStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req leadapp.CreateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	status, err := h.statuses.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, status)
}

// SeedStatuses handles POST /lead-statuses/seed
func (h *LeadHandler) SeedStatuses(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	statuses, err := h.statuses.SeedDefaults(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statuses)
}

// pageOrDefault fills unset paging values the way shared.DefaultFilter does
func pageOrDefault(page, pageSize int) (int, int) {
	d := shared.DefaultFilter()
	if page < 1 {
		page = d.Page
	}
	if pageSize < 1 {
		pageSize = d.PageSize
	}
	return page, pageSize
}
