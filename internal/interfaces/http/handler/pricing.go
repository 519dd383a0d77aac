package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	galleryapp "github.com/lumiso/backend/internal/application/gallery"
	pricingapp "github.com/lumiso/backend/internal/application/pricing"
)

// PricingHandler handles the service catalogue, the VAT calculator and quotes
type PricingHandler struct {
	BaseHandler
	catalog *pricingapp.ServiceCatalogService
	quotes  *pricingapp.QuoteService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(catalog *pricingapp.ServiceCatalogService, quotes *pricingapp.QuoteService) *PricingHandler {
	return &PricingHandler{catalog: catalog, quotes: quotes}
}

// ServiceTotalsQuery selects how many units to price; one when omitted
type ServiceTotalsQuery struct {
	Quantity *float64 `form:"quantity" binding:"omitempty,gt=0"`
}

// CreateService handles POST /services
func (h *PricingHandler) CreateService(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req pricingapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.catalog.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListServices handles GET /services
func (h *PricingHandler) ListServices(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter pricingapp.ServiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	services, total, err := h.catalog.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, services, total, page, pageSize)
}

// GetService handles GET /services/:id
func (h *PricingHandler) GetService(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.catalog.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateService handles PUT /services/:id
func (h *PricingHandler) UpdateService(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req pricingapp.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.catalog.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeactivateService handles POST /services/:id/deactivate
func (h *PricingHandler) DeactivateService(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.catalog.Deactivate(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ServiceTotals handles GET /services/:id/totals
func (h *PricingHandler) ServiceTotals(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var query ServiceTotalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	quantity := 1.0
	if query.Quantity != nil {
		quantity = *query.Quantity
	}

	resp, err := h.catalog.Totals(c.Request.Context(), tenantID, id, quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Totals handles POST /pricing/totals. Invalid numbers fall back to the
// calculator defaults instead of failing.
func (h *PricingHandler) Totals(c *gin.Context) {
	var req pricingapp.TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.Success(c, pricingapp.ComputeTotals(req))
}

// CalculateQuote handles POST /quotes/calculate
func (h *PricingHandler) CalculateQuote(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req pricingapp.CalculateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.quotes.Calculate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RenderQuotePDF handles POST /quotes/pdf and answers with the PDF as an attachment
func (h *PricingHandler) RenderQuotePDF(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req pricingapp.RenderQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result := h.quotes.RenderPDF(c.Request.Context(), tenantID, req)
	if !result.IsOk() {
		h.HandleResultError(c, result.Err(), result.Kind())
		return
	}
	pdf := result.Value()
	c.Header("Content-Disposition", galleryapp.ContentDisposition(pdf.FileName))
	c.Header("X-Page-Count", strconv.Itoa(pdf.PageCount))
	c.Data(http.StatusOK, "application/pdf", pdf.Data)
}
