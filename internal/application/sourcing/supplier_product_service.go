package sourcing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sourcematch/backend/internal/domain/catalog"
	"github.com/sourcematch/backend/internal/domain/partner"
	"github.com/sourcematch/backend/internal/domain/shared"
	"github.com/sourcematch/backend/internal/domain/sourcing"
)

// SupplierProductService handles supplier product CRUD and supplier
// reassignment
type SupplierProductService struct {
	supplierProducts sourcing.SupplierProductRepository
	products         catalog.ProductRepository
	suppliers        partner.SupplierRepository
}

// NewSupplierProductService creates a new SupplierProductService
func NewSupplierProductService(
	supplierProducts sourcing.SupplierProductRepository,
	products catalog.ProductRepository,
	suppliers partner.SupplierRepository,
) *SupplierProductService {
	return &SupplierProductService{
		supplierProducts: supplierProducts,
		products:         products,
		suppliers:        suppliers,
	}
}

// Create registers a supplier listing
func (s *SupplierProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierProductRequest) (*SupplierProductResponse, error) {
	supplier, err := s.suppliers.FindByIDForTenant(ctx, tenantID, req.SupplierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Supplier %s not found", req.SupplierID))
		}
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Supplier %s is not active", req.SupplierID))
	}

	sp, err := sourcing.NewSupplierProduct(tenantID, req.SupplierID, req.RawName)
	if err != nil {
		return nil, err
	}
	sp.SourceCode = req.SourceCode

	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}
	if req.LocalizedName != "" || req.Price != nil || req.Currency != "" {
		if err := sp.UpdateListing(req.RawName, req.LocalizedName, price, req.Currency); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != "" || req.SourceURL != "" {
		if err := sp.SetURLs(req.ImageURL, req.SourceURL); err != nil {
			return nil, err
		}
	}

	if err := s.supplierProducts.Save(ctx, sp); err != nil {
		return nil, err
	}

	resp := ToSupplierProductResponse(sp, nil)
	return &resp, nil
}

// GetByID retrieves a supplier product, enriched with its confirmed local
// product when matched
func (s *SupplierProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SupplierProductResponse, error) {
	sp, err := s.supplierProducts.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	resp := ToSupplierProductResponse(sp, s.lookupLocalProduct(ctx, tenantID, sp))
	return &resp, nil
}

// ListBySupplier lists a supplier's products with pagination
func (s *SupplierProductService) ListBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]SupplierProductResponse, int64, error) {
	if _, err := s.suppliers.FindByIDForTenant(ctx, tenantID, supplierID); err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, err := s.supplierProducts.FindBySupplier(ctx, tenantID, supplierID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierProducts.CountBySupplier(ctx, tenantID, supplierID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierProductResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToSupplierProductResponse(&items[i], s.lookupLocalProduct(ctx, tenantID, &items[i])))
	}
	return responses, total, nil
}

// Update edits a supplier listing's text, price, and URLs
func (s *SupplierProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateSupplierProductRequest) (*SupplierProductResponse, error) {
	sp, err := s.supplierProducts.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	rawName := sp.RawName
	if req.RawName != nil {
		rawName = *req.RawName
	}
	localizedName := sp.LocalizedName
	if req.LocalizedName != nil {
		localizedName = *req.LocalizedName
	}
	price := sp.Price
	if req.Price != nil {
		price = *req.Price
	}
	currency := ""
	if req.Currency != nil {
		currency = *req.Currency
	}

	if err := sp.UpdateListing(rawName, localizedName, price, currency); err != nil {
		return nil, err
	}

	if req.ImageURL != nil || req.SourceURL != nil {
		imageURL := sp.ImageURL
		if req.ImageURL != nil {
			imageURL = *req.ImageURL
		}
		sourceURL := sp.SourceURL
		if req.SourceURL != nil {
			sourceURL = *req.SourceURL
		}
		if err := sp.SetURLs(imageURL, sourceURL); err != nil {
			return nil, err
		}
	}

	if err := s.supplierProducts.Save(ctx, sp); err != nil {
		return nil, err
	}

	resp := ToSupplierProductResponse(sp, s.lookupLocalProduct(ctx, tenantID, sp))
	return &resp, nil
}

// ReassignSupplier moves a supplier product to another supplier. The target
// must exist and be active; match state and rejection history stay as they
// are.
func (s *SupplierProductService) ReassignSupplier(ctx context.Context, tenantID, id uuid.UUID, req ReassignSupplierRequest) (*SupplierProductResponse, error) {
	sp, err := s.supplierProducts.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	supplier, err := s.suppliers.FindByIDForTenant(ctx, tenantID, req.SupplierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Supplier %s not found", req.SupplierID))
		}
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Supplier %s is not active", req.SupplierID))
	}

	if err := sp.ReassignSupplier(req.SupplierID); err != nil {
		return nil, err
	}

	if err := s.supplierProducts.Save(ctx, sp); err != nil {
		return nil, err
	}

	resp := ToSupplierProductResponse(sp, s.lookupLocalProduct(ctx, tenantID, sp))
	return &resp, nil
}

// lookupLocalProduct fetches the confirmed local product for enrichment;
// a missing catalog row degrades to an unenriched response rather than an
// error
func (s *SupplierProductService) lookupLocalProduct(ctx context.Context, tenantID uuid.UUID, sp *sourcing.SupplierProduct) *catalog.Product {
	if sp.LocalProductID == nil {
		return nil
	}
	product, err := s.products.FindByIDForTenant(ctx, tenantID, *sp.LocalProductID)
	if err != nil {
		return nil
	}
	return product
}
