package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appsourcing "github.com/sourcematch/backend/internal/application/sourcing"
	"github.com/sourcematch/backend/internal/interfaces/http/dto"
	"github.com/sourcematch/backend/internal/interfaces/http/middleware"
)

// MatchingHandler handles the matching workflow endpoints: suggestion
// listings, match confirmation and rejection, and bulk auto-confirm.
type MatchingHandler struct {
	BaseHandler
	matching     *appsourcing.MatchingService
	confirmation *appsourcing.ConfirmationService
	autoConfirm  *appsourcing.AutoConfirmService
}

// NewMatchingHandler creates a new MatchingHandler
func NewMatchingHandler(
	matching *appsourcing.MatchingService,
	confirmation *appsourcing.ConfirmationService,
	autoConfirm *appsourcing.AutoConfirmService,
) *MatchingHandler {
	return &MatchingHandler{
		matching:     matching,
		confirmation: confirmation,
		autoConfirm:  autoConfirm,
	}
}

// suggestParams carries the per-request overrides of the suggestion tunables
type suggestParams struct {
	MinSimilarity  *float64 `form:"min_similarity" binding:"omitempty,gte=0,lte=1"`
	MaxSuggestions *int     `form:"max_suggestions" binding:"omitempty,gte=1,lte=50"`
}

// Suggest returns match suggestions for one supplier product
func (h *MatchingHandler) Suggest(c *gin.Context) {
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

	var params suggestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	suggestions, err := h.matching.Suggest(c.Request.Context(), tenantID, uri.UUID(), params.MinSimilarity, params.MaxSuggestions)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, suggestions)
}

// ListWithSuggestions returns one supplier's products paired with their
// current suggestions, filtered and paginated
func (h *MatchingHandler) ListWithSuggestions(c *gin.Context) {
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

	var query appsourcing.SuggestionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.matching.ListWithSuggestions(c.Request.Context(), tenantID, uri.UUID(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, result.Total, result.Page, result.PageSize)
}

// Confirm records a manual match between a supplier product and a local
// product. Confirming over an existing different match succeeds and reports
// the overwrite in the outcome.
func (h *MatchingHandler) Confirm(c *gin.Context) {
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

	var req appsourcing.ConfirmMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	confirmedBy := actingUser(c)

	result, err := h.confirmation.Confirm(c.Request.Context(), tenantID, uri.UUID(), req, confirmedBy)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Reject permanently excludes a supplier product / local product pair from
// future suggestions. Rejecting the same pair again is a no-op.
func (h *MatchingHandler) Reject(c *gin.Context) {
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

	var req appsourcing.RejectSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	rejectedBy := actingUser(c)

	if err := h.confirmation.Reject(c.Request.Context(), tenantID, uri.UUID(), req, rejectedBy); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Unmatch clears the confirmed match of a supplier product
func (h *MatchingHandler) Unmatch(c *gin.Context) {
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

	product, err := h.confirmation.Unmatch(c.Request.Context(), tenantID, uri.UUID())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// BulkAutoConfirm confirms every unmatched product of a supplier whose top
// suggestion clears the threshold
func (h *MatchingHandler) BulkAutoConfirm(c *gin.Context) {
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

	// The body is optional; without one the configured threshold applies
	var req appsourcing.BulkAutoConfirmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	confirmedBy := actingUser(c)

	result, err := h.autoConfirm.BulkAutoConfirm(c.Request.Context(), tenantID, uri.UUID(), req, confirmedBy)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// actingUser resolves the user performing the operation. Attribution is
// best-effort until real authentication lands; a missing or malformed
// X-User-ID header yields the nil UUID.
func actingUser(c *gin.Context) uuid.UUID {
	userID, err := getUserID(c)
	if err != nil {
		return uuid.Nil
	}
	return userID
}
