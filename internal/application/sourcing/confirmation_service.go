package sourcing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/catalog"
	"github.com/sourcematch/backend/internal/domain/shared"
	"github.com/sourcematch/backend/internal/domain/sourcing"
	"go.uber.org/zap"
)

// ConfirmationService drives the confirm / reject / unmatch state machine
// for supplier products
type ConfirmationService struct {
	supplierProducts sourcing.SupplierProductRepository
	products         catalog.ProductRepository
	rejections       sourcing.RejectedPairRepository
	logger           *zap.Logger
}

// NewConfirmationService creates a new ConfirmationService
func NewConfirmationService(
	supplierProducts sourcing.SupplierProductRepository,
	products catalog.ProductRepository,
	rejections sourcing.RejectedPairRepository,
	logger *zap.Logger,
) *ConfirmationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfirmationService{
		supplierProducts: supplierProducts,
		products:         products,
		rejections:       rejections,
		logger:           logger,
	}
}

// Confirm confirms a supplier product against a local product. Overwriting
// an existing different match succeeds: the replaced pair is logged as a
// warning and reported in the tagged result, never raised as an error.
func (s *ConfirmationService) Confirm(ctx context.Context, tenantID, supplierProductID uuid.UUID, req ConfirmMatchRequest, confirmedBy uuid.UUID) (*ConfirmMatchResult, error) {
	sp, err := s.supplierProducts.FindByIDForTenant(ctx, tenantID, supplierProductID)
	if err != nil {
		return nil, err
	}

	if req.LocalProductID == nil || *req.LocalProductID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "local_product_id is required")
	}
	localProductID := *req.LocalProductID

	localProduct, err := s.products.FindByIDForTenant(ctx, tenantID, localProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Local product %s not found", localProductID))
		}
		return nil, err
	}

	confidence := 1.0
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	previous, err := sp.ConfirmMatch(localProductID, confidence, confirmedBy)
	if err != nil {
		return nil, err
	}

	if err := s.supplierProducts.Save(ctx, sp); err != nil {
		return nil, err
	}

	outcome := OutcomeConfirmed
	if previous != nil {
		outcome = OutcomeConfirmedWithOverwrite
		s.logger.Warn("confirmed match overwrote existing match",
			zap.String("tenant_id", tenantID.String()),
			zap.String("supplier_product_id", sp.ID.String()),
			zap.String("previous_local_product_id", previous.String()),
			zap.String("local_product_id", localProductID.String()),
			zap.String("confirmed_by", confirmedBy.String()),
		)
	}

	return &ConfirmMatchResult{
		Outcome:                outcome,
		PreviousLocalProductID: previous,
		Product:                ToSupplierProductResponse(sp, localProduct),
	}, nil
}

// Reject permanently suppresses a (supplier product, local product) pair
// from future suggestions. Rejecting the same pair again is a no-op. When
// the rejected pair is the currently confirmed match, the product is also
// unmatched.
func (s *ConfirmationService) Reject(ctx context.Context, tenantID, supplierProductID uuid.UUID, req RejectSuggestionRequest, rejectedBy uuid.UUID) error {
	sp, err := s.supplierProducts.FindByIDForTenant(ctx, tenantID, supplierProductID)
	if err != nil {
		return err
	}

	if req.LocalProductID == nil || *req.LocalProductID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "local_product_id is required")
	}
	localProductID := *req.LocalProductID

	var by *uuid.UUID
	if rejectedBy != uuid.Nil {
		by = &rejectedBy
	}
	pair, err := sourcing.NewRejectedPair(tenantID, sp.ID, localProductID, by)
	if err != nil {
		return err
	}
	if err := s.rejections.Add(ctx, pair); err != nil {
		return err
	}

	if sp.IsConfirmedTo(localProductID) {
		sp.Unmatch()
		if err := s.supplierProducts.Save(ctx, sp); err != nil {
			return err
		}
	}

	return nil
}

// Unmatch clears the match state of a supplier product
func (s *ConfirmationService) Unmatch(ctx context.Context, tenantID, supplierProductID uuid.UUID) (*SupplierProductResponse, error) {
	sp, err := s.supplierProducts.FindByIDForTenant(ctx, tenantID, supplierProductID)
	if err != nil {
		return nil, err
	}

	sp.Unmatch()
	if err := s.supplierProducts.Save(ctx, sp); err != nil {
		return nil, err
	}

	resp := ToSupplierProductResponse(sp, nil)
	return &resp, nil
}
