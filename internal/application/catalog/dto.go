package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new local product
type CreateProductRequest struct {
	Code          string `json:"code" binding:"required,min=1,max=50"`
	Name          string `json:"name" binding:"required,min=1,max=200"`
	LocalizedName string `json:"localized_name" binding:"max=200"`
	Brand         string `json:"brand" binding:"max=100"`
	Description   string `json:"description" binding:"max=2000"`
	ImageURL      string `json:"image_url" binding:"omitempty,url,max=500"`
}

// UpdateProductRequest represents a request to update a local product
type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Brand       *string `json:"brand" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url,max=500"`
}

// UpdateLocalizedNameRequest sets or clears the name used for matching
// against supplier listings. An empty value clears it.
type UpdateLocalizedNameRequest struct {
	LocalizedName string `json:"localized_name" binding:"max=200"`
}

// ProductResponse represents a local product in API responses
type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	LocalizedName string    `json:"localized_name"`
	Brand         string    `json:"brand"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		TenantID:      product.TenantID,
		Code:          product.Code,
		Name:          product.Name,
		LocalizedName: product.LocalizedName,
		Brand:         product.Brand,
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		Status:        string(product.Status),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
		Version:       product.Version,
	}
}
