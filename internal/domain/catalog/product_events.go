package catalog

import (
	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated              = "ProductCreated"
	EventTypeProductUpdated              = "ProductUpdated"
	EventTypeProductStatusChanged        = "ProductStatusChanged"
	EventTypeProductLocalizedNameChanged = "ProductLocalizedNameChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:       product.ID,
		Code:            product.Code,
		Name:            product.Name,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand,omitempty"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:       product.ID,
		Code:            product.Code,
		Name:            product.Name,
		Brand:           product.Brand,
	}
}

// ProductStatusChangedEvent is published when a product's status changes
type ProductStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID     `json:"product_id"`
	Code      string        `json:"code"`
	OldStatus ProductStatus `json:"old_status"`
	NewStatus ProductStatus `json:"new_status"`
}

// NewProductStatusChangedEvent creates a new ProductStatusChangedEvent
func NewProductStatusChangedEvent(product *Product, oldStatus, newStatus ProductStatus) *ProductStatusChangedEvent {
	return &ProductStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStatusChanged, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:       product.ID,
		Code:            product.Code,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ProductLocalizedNameChangedEvent is published when the localized name changes.
// Downstream match suggestions are recomputed from the new name on the next read.
type ProductLocalizedNameChangedEvent struct {
	shared.BaseDomainEvent
	ProductID        uuid.UUID `json:"product_id"`
	Code             string    `json:"code"`
	OldLocalizedName string    `json:"old_localized_name,omitempty"`
	NewLocalizedName string    `json:"new_localized_name,omitempty"`
}

// NewProductLocalizedNameChangedEvent creates a new ProductLocalizedNameChangedEvent
func NewProductLocalizedNameChangedEvent(product *Product, oldLocalizedName string) *ProductLocalizedNameChangedEvent {
	return &ProductLocalizedNameChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeProductLocalizedNameChanged, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:        product.ID,
		Code:             product.Code,
		OldLocalizedName: oldLocalizedName,
		NewLocalizedName: product.LocalizedName,
	}
}
