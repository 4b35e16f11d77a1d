package sourcing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sourcematch/backend/internal/domain/catalog"
	"github.com/sourcematch/backend/internal/domain/sourcing"
)

// =============================================================================
// Supplier product DTOs
// =============================================================================

// CreateSupplierProductRequest represents a request to register a supplier listing
type CreateSupplierProductRequest struct {
	SupplierID    uuid.UUID        `json:"supplier_id" binding:"required"`
	SourceCode    string           `json:"source_code" binding:"max=100"`
	RawName       string           `json:"raw_name" binding:"required,min=1,max=300"`
	LocalizedName string           `json:"localized_name" binding:"max=300"`
	Price         *decimal.Decimal `json:"price"`
	Currency      string           `json:"currency" binding:"omitempty,len=3"`
	ImageURL      string           `json:"image_url" binding:"omitempty,url,max=500"`
	SourceURL     string           `json:"source_url" binding:"omitempty,url,max=500"`
}

// UpdateSupplierProductRequest represents a request to edit a supplier listing
type UpdateSupplierProductRequest struct {
	RawName       *string          `json:"raw_name" binding:"omitempty,min=1,max=300"`
	LocalizedName *string          `json:"localized_name" binding:"omitempty,max=300"`
	Price         *decimal.Decimal `json:"price"`
	Currency      *string          `json:"currency" binding:"omitempty,len=3"`
	ImageURL      *string          `json:"image_url" binding:"omitempty,max=500"`
	SourceURL     *string          `json:"source_url" binding:"omitempty,max=500"`
}

// ReassignSupplierRequest represents a request to move a listing to another supplier
type ReassignSupplierRequest struct {
	SupplierID uuid.UUID `json:"supplier_id" binding:"required"`
}

// SupplierProductResponse represents a supplier product in API responses.
// LocalProductCode and LocalProductName are filled from the catalog when
// the product has a confirmed match.
type SupplierProductResponse struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	SupplierID       uuid.UUID       `json:"supplier_id"`
	SourceCode       string          `json:"source_code,omitempty"`
	RawName          string          `json:"raw_name"`
	LocalizedName    string          `json:"localized_name,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Currency         string          `json:"currency"`
	ImageURL         string          `json:"image_url,omitempty"`
	SourceURL        string          `json:"source_url,omitempty"`
	LocalProductID   *uuid.UUID      `json:"local_product_id,omitempty"`
	LocalProductCode string          `json:"local_product_code,omitempty"`
	LocalProductName string          `json:"local_product_name,omitempty"`
	Confidence       float64         `json:"confidence"`
	ManualConfirmed  bool            `json:"manual_confirmed"`
	ConfirmedBy      *uuid.UUID      `json:"confirmed_by,omitempty"`
	ConfirmedAt      *time.Time      `json:"confirmed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToSupplierProductResponse converts a domain supplier product to a response.
// localProduct may be nil when the product is unmatched or the catalog row
// is unavailable.
func ToSupplierProductResponse(sp *sourcing.SupplierProduct, localProduct *catalog.Product) SupplierProductResponse {
	resp := SupplierProductResponse{
		ID:              sp.ID,
		TenantID:        sp.TenantID,
		SupplierID:      sp.SupplierID,
		SourceCode:      sp.SourceCode,
		RawName:         sp.RawName,
		LocalizedName:   sp.LocalizedName,
		Price:           sp.Price,
		Currency:        sp.Currency,
		ImageURL:        sp.ImageURL,
		SourceURL:       sp.SourceURL,
		LocalProductID:  sp.LocalProductID,
		Confidence:      sp.Confidence,
		ManualConfirmed: sp.ManualConfirmed,
		ConfirmedBy:     sp.ConfirmedBy,
		ConfirmedAt:     sp.ConfirmedAt,
		CreatedAt:       sp.CreatedAt,
		UpdatedAt:       sp.UpdatedAt,
	}
	if localProduct != nil {
		resp.LocalProductCode = localProduct.Code
		resp.LocalProductName = localProduct.Name
	}
	return resp
}

// =============================================================================
// Matching DTOs
// =============================================================================

// ConfirmMatchRequest represents a request to confirm a match
type ConfirmMatchRequest struct {
	LocalProductID *uuid.UUID `json:"local_product_id"`
	Confidence     *float64   `json:"confidence" binding:"omitempty,gte=0,lte=1"`
}

// RejectSuggestionRequest represents a request to reject a suggested pair
type RejectSuggestionRequest struct {
	LocalProductID *uuid.UUID `json:"local_product_id"`
}

// ConfirmOutcome tags how a confirmation completed
type ConfirmOutcome string

const (
	// OutcomeConfirmed is a plain confirmation of an unmatched product
	OutcomeConfirmed ConfirmOutcome = "confirmed"
	// OutcomeConfirmedWithOverwrite means an existing different match was replaced
	OutcomeConfirmedWithOverwrite ConfirmOutcome = "confirmed_with_overwrite"
)

// ConfirmMatchResult is the outcome of a confirmation
type ConfirmMatchResult struct {
	Outcome                ConfirmOutcome          `json:"outcome"`
	PreviousLocalProductID *uuid.UUID              `json:"previous_local_product_id,omitempty"`
	Product                SupplierProductResponse `json:"product"`
}

// SuggestionQuery carries the tunables of a suggestion listing
type SuggestionQuery struct {
	FilterType     string   `form:"filter_type" binding:"omitempty,oneof=all with_suggestions without_suggestions high_score"`
	MinSimilarity  *float64 `form:"min_similarity" binding:"omitempty,gte=0,lte=1"`
	MaxSuggestions *int     `form:"max_suggestions" binding:"omitempty,gte=1,lte=50"`
	Page           int      `form:"page" binding:"omitempty,gte=1"`
	PageSize       int      `form:"page_size" binding:"omitempty,gte=1,lte=200"`
}

// SupplierProductWithSuggestions pairs a supplier product with its current
// candidate suggestions
type SupplierProductWithSuggestions struct {
	Product     SupplierProductResponse   `json:"product"`
	Suggestions []sourcing.MatchSuggestion `json:"suggestions"`
}

// SuggestionListResult is a paginated suggestion listing. IsFallback is set
// when the requested filter matched nothing and the unfiltered listing was
// returned instead.
type SuggestionListResult struct {
	Items      []SupplierProductWithSuggestions `json:"items"`
	Total      int64                            `json:"total"`
	Page       int                              `json:"page"`
	PageSize   int                              `json:"page_size"`
	IsFallback bool                             `json:"is_fallback"`
}

// =============================================================================
// Bulk auto-confirm DTOs
// =============================================================================

// BulkAutoConfirmRequest represents a request to auto-confirm high-confidence
// matches for a supplier
type BulkAutoConfirmRequest struct {
	Threshold *float64 `json:"threshold" binding:"omitempty,gt=0,lte=1"`
}

// AutoConfirmFailure describes one supplier product that could not be
// auto-confirmed
type AutoConfirmFailure struct {
	SupplierProductID uuid.UUID  `json:"supplier_product_id"`
	LocalProductID    *uuid.UUID `json:"local_product_id,omitempty"`
	Reason            string     `json:"reason"`
}

// BulkAutoConfirmResult aggregates the outcome of a bulk auto-confirm run
type BulkAutoConfirmResult struct {
	ConfirmedCount int                  `json:"confirmed_count"`
	FailedCount    int                  `json:"failed_count"`
	Failures       []AutoConfirmFailure `json:"failures"`
}
