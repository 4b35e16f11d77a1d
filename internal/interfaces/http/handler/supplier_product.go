package handler

import (
	"github.com/gin-gonic/gin"
	appsourcing "github.com/sourcematch/backend/internal/application/sourcing"
	"github.com/sourcematch/backend/internal/domain/shared"
	"github.com/sourcematch/backend/internal/interfaces/http/dto"
	"github.com/sourcematch/backend/internal/interfaces/http/middleware"
)

// SupplierProductHandler handles supplier listing API endpoints
type SupplierProductHandler struct {
	BaseHandler
	service *appsourcing.SupplierProductService
}

// NewSupplierProductHandler creates a new SupplierProductHandler
func NewSupplierProductHandler(service *appsourcing.SupplierProductService) *SupplierProductHandler {
	return &SupplierProductHandler{service: service}
}

// Create registers a new supplier listing
func (h *SupplierProductHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req appsourcing.CreateSupplierProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID returns a single supplier listing
func (h *SupplierProductHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), tenantID, uri.UUID())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// ListBySupplier returns a paginated listing of one supplier's products.
// The matched query parameter narrows the listing to matched or unmatched
// products.
func (h *SupplierProductHandler) ListBySupplier(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Search:   listReq.Search,
	}
	switch c.Query("matched") {
	case "true":
		filter.Filters = map[string]interface{}{"matched": true}
	case "false":
		filter.Filters = map[string]interface{}{"matched": false}
	}

	products, total, err := h.service.ListBySupplier(c.Request.Context(), tenantID, uri.UUID(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Update edits the mutable fields of a supplier listing
func (h *SupplierProductHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var req appsourcing.UpdateSupplierProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), tenantID, uri.UUID(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// ReassignSupplier moves a listing to another supplier. Match state is not
// touched by a reassignment.
func (h *SupplierProductHandler) ReassignSupplier(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var req appsourcing.ReassignSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.service.ReassignSupplier(c.Request.Context(), tenantID, uri.UUID(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}
