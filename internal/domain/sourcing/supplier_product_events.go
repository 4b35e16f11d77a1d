package sourcing

import (
	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSupplierProduct = "SupplierProduct"

// Event type constants
const (
	EventTypeSupplierProductCreated = "SupplierProductCreated"
	EventTypeSupplierProductUpdated = "SupplierProductUpdated"
	EventTypeMatchConfirmed         = "MatchConfirmed"
	EventTypeMatchUnmatched         = "MatchUnmatched"
	EventTypeSuggestionRejected     = "SuggestionRejected"
	EventTypeSupplierReassigned     = "SupplierReassigned"
)

// SupplierProductCreatedEvent is published when a supplier product is imported
type SupplierProductCreatedEvent struct {
	shared.BaseDomainEvent
	SupplierProductID uuid.UUID `json:"supplier_product_id"`
	SupplierID        uuid.UUID `json:"supplier_id"`
	RawName           string    `json:"raw_name"`
}

// NewSupplierProductCreatedEvent creates a new SupplierProductCreatedEvent
func NewSupplierProductCreatedEvent(sp *SupplierProduct) *SupplierProductCreatedEvent {
	return &SupplierProductCreatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeSupplierProductCreated, AggregateTypeSupplierProduct, sp.ID, sp.TenantID),
		SupplierProductID: sp.ID,
		SupplierID:        sp.SupplierID,
		RawName:           sp.RawName,
	}
}

// SupplierProductUpdatedEvent is published when listing fields change
type SupplierProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SupplierProductID uuid.UUID `json:"supplier_product_id"`
	RawName           string    `json:"raw_name"`
	LocalizedName     string    `json:"localized_name,omitempty"`
}

// NewSupplierProductUpdatedEvent creates a new SupplierProductUpdatedEvent
func NewSupplierProductUpdatedEvent(sp *SupplierProduct) *SupplierProductUpdatedEvent {
	return &SupplierProductUpdatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeSupplierProductUpdated, AggregateTypeSupplierProduct, sp.ID, sp.TenantID),
		SupplierProductID: sp.ID,
		RawName:           sp.RawName,
		LocalizedName:     sp.LocalizedName,
	}
}

// MatchConfirmedEvent is published when a match is confirmed.
// PreviousLocalProductID is set when the confirmation overwrote an
// existing different match.
type MatchConfirmedEvent struct {
	shared.BaseDomainEvent
	SupplierProductID      uuid.UUID  `json:"supplier_product_id"`
	LocalProductID         uuid.UUID  `json:"local_product_id"`
	PreviousLocalProductID *uuid.UUID `json:"previous_local_product_id,omitempty"`
	Confidence             float64    `json:"confidence"`
	ConfirmedBy            *uuid.UUID `json:"confirmed_by,omitempty"`
}

// NewMatchConfirmedEvent creates a new MatchConfirmedEvent
func NewMatchConfirmedEvent(sp *SupplierProduct, previous *uuid.UUID) *MatchConfirmedEvent {
	return &MatchConfirmedEvent{
		BaseDomainEvent:        shared.NewBaseDomainEvent(EventTypeMatchConfirmed, AggregateTypeSupplierProduct, sp.ID, sp.TenantID),
		SupplierProductID:      sp.ID,
		LocalProductID:         *sp.LocalProductID,
		PreviousLocalProductID: previous,
		Confidence:             sp.Confidence,
		ConfirmedBy:            sp.ConfirmedBy,
	}
}

// MatchUnmatchedEvent is published when a confirmed match is cleared
type MatchUnmatchedEvent struct {
	shared.BaseDomainEvent
	SupplierProductID      uuid.UUID  `json:"supplier_product_id"`
	PreviousLocalProductID *uuid.UUID `json:"previous_local_product_id,omitempty"`
}

// NewMatchUnmatchedEvent creates a new MatchUnmatchedEvent
func NewMatchUnmatchedEvent(sp *SupplierProduct, previous *uuid.UUID) *MatchUnmatchedEvent {
	return &MatchUnmatchedEvent{
		BaseDomainEvent:        shared.NewBaseDomainEvent(EventTypeMatchUnmatched, AggregateTypeSupplierProduct, sp.ID, sp.TenantID),
		SupplierProductID:      sp.ID,
		PreviousLocalProductID: previous,
	}
}

// SupplierReassignedEvent is published when a product moves between suppliers
type SupplierReassignedEvent struct {
	shared.BaseDomainEvent
	SupplierProductID uuid.UUID `json:"supplier_product_id"`
	OldSupplierID     uuid.UUID `json:"old_supplier_id"`
	NewSupplierID     uuid.UUID `json:"new_supplier_id"`
}

// NewSupplierReassignedEvent creates a new SupplierReassignedEvent
func NewSupplierReassignedEvent(sp *SupplierProduct, oldSupplierID uuid.UUID) *SupplierReassignedEvent {
	return &SupplierReassignedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeSupplierReassigned, AggregateTypeSupplierProduct, sp.ID, sp.TenantID),
		SupplierProductID: sp.ID,
		OldSupplierID:     oldSupplierID,
		NewSupplierID:     sp.SupplierID,
	}
}
