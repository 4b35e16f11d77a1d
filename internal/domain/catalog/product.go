package catalog

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/shared"
)

// ProductStatus represents the status of a local product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a product/SKU in the local catalog.
// It is the aggregate root for catalog operations and the match target
// for supplier products in the sourcing context.
type Product struct {
	shared.TenantAggregateRoot
	Code          string        `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_code,priority:2"`
	Name          string        `gorm:"type:varchar(200);not null"`
	LocalizedName string        `gorm:"type:varchar(200)"` // Name in the supplier market language, used for matching
	Brand         string        `gorm:"type:varchar(100)"`
	Description   string        `gorm:"type:text"`
	ImageURL      string        `gorm:"type:varchar(500)"`
	Status        ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new local product
func NewProduct(tenantID uuid.UUID, code, name string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, brand, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if brand != "" && len(brand) > 100 {
		return shared.NewDomainError("INVALID_BRAND", "Brand cannot exceed 100 characters")
	}

	p.Name = name
	p.Brand = brand
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetLocalizedName sets the product name in the supplier market language.
// An empty value clears the localized name so matching falls back to Name.
func (p *Product) SetLocalizedName(localizedName string) error {
	if len(localizedName) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Localized name cannot exceed 200 characters")
	}

	old := p.LocalizedName
	p.LocalizedName = strings.TrimSpace(localizedName)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductLocalizedNameChangedEvent(p, old))

	return nil
}

// SetImageURL sets the product image URL
func (p *Product) SetImageURL(imageURL string) error {
	if imageURL != "" {
		if err := validateURL(imageURL); err != nil {
			return err
		}
	}

	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MatchingName returns the name used for similarity comparison:
// the localized name when present, otherwise the canonical name.
func (p *Product) MatchingName() string {
	if p.LocalizedName != "" {
		return p.LocalizedName
	}
	return p.Name
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_ACTIVATE", "Cannot activate a discontinued product")
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusActive))

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_DEACTIVATE", "Cannot deactivate a discontinued product")
	}

	oldStatus := p.Status
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusInactive))

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// validateProductCode validates the product code (SKU)
func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	// Code should be alphanumeric with underscores and hyphens
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateURL validates that a URL is well-formed http(s)
func validateURL(raw string) error {
	if len(raw) > 500 {
		return shared.NewDomainError("INVALID_URL", "URL cannot exceed 500 characters")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return shared.NewDomainError("INVALID_URL", "URL must be a valid http(s) address")
	}
	return nil
}
