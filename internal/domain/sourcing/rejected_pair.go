package sourcing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/shared"
)

// RejectedPair records that a (supplier product, local product) candidate
// was rejected by an operator. Rejection is permanent: the suggestion
// generator never offers a rejected pair again, and there is no undo
// operation. Inserting the same pair twice is a no-op.
type RejectedPair struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rejected_pair,priority:1"`
	SupplierProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rejected_pair,priority:2"`
	LocalProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rejected_pair,priority:3"`
	RejectedBy        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time
}

// TableName returns the table name for GORM
func (RejectedPair) TableName() string {
	return "rejected_pairs"
}

// NewRejectedPair creates a new rejection record
func NewRejectedPair(tenantID, supplierProductID, localProductID uuid.UUID, rejectedBy *uuid.UUID) (*RejectedPair, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant ID is required")
	}
	if supplierProductID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier product ID is required")
	}
	if localProductID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Local product ID is required")
	}

	return &RejectedPair{
		ID:                uuid.New(),
		TenantID:          tenantID,
		SupplierProductID: supplierProductID,
		LocalProductID:    localProductID,
		RejectedBy:        rejectedBy,
		CreatedAt:         time.Now(),
	}, nil
}

// RejectedPairRepository defines the interface for the rejection cache.
// Add must be idempotent and safe under concurrent inserts of the same
// pair.
type RejectedPairRepository interface {
	// Add inserts a rejection. Inserting an existing pair is a no-op.
	Add(ctx context.Context, pair *RejectedPair) error

	// Exists reports whether the pair has been rejected
	Exists(ctx context.Context, tenantID, supplierProductID, localProductID uuid.UUID) (bool, error)

	// ListLocalProductIDs returns the local product IDs rejected for a
	// supplier product, for filtering suggestion candidates
	ListLocalProductIDs(ctx context.Context, tenantID, supplierProductID uuid.UUID) ([]uuid.UUID, error)

	// ListForSupplierProducts returns rejected local product IDs keyed by
	// supplier product ID, for batch suggestion generation
	ListForSupplierProducts(ctx context.Context, tenantID uuid.UUID, supplierProductIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)

	// CountForTenant counts rejections for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
