package sourcing

import (
	"context"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/shared"
)

// SupplierProductReader defines the interface for reading supplier products
type SupplierProductReader interface {
	// FindByID finds a supplier product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierProduct, error)

	// FindByIDForTenant finds a supplier product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*SupplierProduct, error)

	// FindByLocalProduct finds supplier products confirmed against a local product
	FindByLocalProduct(ctx context.Context, tenantID, localProductID uuid.UUID) ([]SupplierProduct, error)
}

// SupplierProductFinder defines the interface for searching supplier products
type SupplierProductFinder interface {
	// FindBySupplier finds supplier products for a supplier, paginated
	FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]SupplierProduct, error)

	// FindUnmatchedBySupplier finds supplier products without a confirmed match
	FindUnmatchedBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) ([]SupplierProduct, error)

	// CountBySupplier counts supplier products for a supplier
	CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) (int64, error)
}

// SupplierProductWriter defines the interface for persisting supplier products
type SupplierProductWriter interface {
	// Save creates or updates a supplier product
	Save(ctx context.Context, sp *SupplierProduct) error

	// Delete deletes a supplier product
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplierProductRepository defines the full interface for supplier product
// persistence
type SupplierProductRepository interface {
	SupplierProductReader
	SupplierProductFinder
	SupplierProductWriter
}
