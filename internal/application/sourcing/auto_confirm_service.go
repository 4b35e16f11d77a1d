package sourcing

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/catalog"
	"github.com/sourcematch/backend/internal/domain/partner"
	"github.com/sourcematch/backend/internal/domain/shared"
	"github.com/sourcematch/backend/internal/domain/sourcing"
	"go.uber.org/zap"
)

// AutoConfirmService bulk-confirms unmatched supplier products whose best
// suggestion is at or above a confidence threshold. Items are confirmed
// independently: one failure never rolls back the others.
type AutoConfirmService struct {
	supplierProducts sourcing.SupplierProductRepository
	products         catalog.ProductRepository
	rejections       sourcing.RejectedPairRepository
	suppliers        partner.SupplierRepository
	cfg              MatchingConfig
	logger           *zap.Logger
}

// NewAutoConfirmService creates a new AutoConfirmService
func NewAutoConfirmService(
	supplierProducts sourcing.SupplierProductRepository,
	products catalog.ProductRepository,
	rejections sourcing.RejectedPairRepository,
	suppliers partner.SupplierRepository,
	cfg MatchingConfig,
	logger *zap.Logger,
) *AutoConfirmService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoConfirmService{
		supplierProducts: supplierProducts,
		products:         products,
		rejections:       rejections,
		suppliers:        suppliers,
		cfg:              cfg,
		logger:           logger,
	}
}

// BulkAutoConfirm confirms every unmatched product of the supplier whose
// best non-rejected suggestion scores at or above the threshold. The run
// fans out over a bounded worker pool and collects every item's outcome;
// cancellation of the context fails the remaining items without discarding
// results already collected.
func (s *AutoConfirmService) BulkAutoConfirm(ctx context.Context, tenantID, supplierID uuid.UUID, req BulkAutoConfirmRequest, confirmedBy uuid.UUID) (*BulkAutoConfirmResult, error) {
	if _, err := s.suppliers.FindByIDForTenant(ctx, tenantID, supplierID); err != nil {
		return nil, err
	}

	threshold := s.cfg.AutoConfirmThreshold
	if threshold <= 0 {
		threshold = sourcing.HighScoreThreshold
	}
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold <= 0 || threshold > 1 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Threshold must be in (0, 1]")
	}

	unmatched, err := s.supplierProducts.FindUnmatchedBySupplier(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.products.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	spIDs := make([]uuid.UUID, 0, len(unmatched))
	for i := range unmatched {
		spIDs = append(spIDs, unmatched[i].ID)
	}
	rejectedByProduct, err := s.rejections.ListForSupplierProducts(ctx, tenantID, spIDs)
	if err != nil {
		return nil, err
	}

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(unmatched) && len(unmatched) > 0 {
		workers = len(unmatched)
	}

	result := &BulkAutoConfirmResult{Failures: make([]AutoConfirmFailure, 0)}
	var mu sync.Mutex
	var wg sync.WaitGroup
	items := make(chan *sourcing.SupplierProduct)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sp := range items {
				s.confirmOne(ctx, tenantID, sp, rejectedByProduct[sp.ID], candidates, threshold, confirmedBy, result, &mu)
			}
		}()
	}

	for i := range unmatched {
		items <- &unmatched[i]
	}
	close(items)
	wg.Wait()

	s.logger.Info("bulk auto-confirm finished",
		zap.String("tenant_id", tenantID.String()),
		zap.String("supplier_id", supplierID.String()),
		zap.Float64("threshold", threshold),
		zap.Int("scanned", len(unmatched)),
		zap.Int("confirmed", result.ConfirmedCount),
		zap.Int("failed", result.FailedCount),
	)

	return result, nil
}

// confirmOne processes a single supplier product and records its outcome.
// Items whose best suggestion falls below the threshold are skipped without
// counting as failures.
func (s *AutoConfirmService) confirmOne(ctx context.Context, tenantID uuid.UUID, sp *sourcing.SupplierProduct, rejectedIDs []uuid.UUID, candidates []catalog.Product, threshold float64, confirmedBy uuid.UUID, result *BulkAutoConfirmResult, mu *sync.Mutex) {
	if err := ctx.Err(); err != nil {
		mu.Lock()
		result.FailedCount++
		result.Failures = append(result.Failures, AutoConfirmFailure{
			SupplierProductID: sp.ID,
			Reason:            "cancelled: " + err.Error(),
		})
		mu.Unlock()
		return
	}

	rejected := make(map[uuid.UUID]struct{}, len(rejectedIDs))
	for _, id := range rejectedIDs {
		rejected[id] = struct{}{}
	}

	best := suggestFor(sp, candidates, rejected, threshold, 1)
	if len(best) == 0 {
		return
	}
	localProductID := best[0].LocalProductID

	// The candidate pool is loaded once before the fan-out; the product
	// may have been deleted since. Re-verify before confirming against it.
	if _, err := s.products.FindByIDForTenant(ctx, tenantID, localProductID); err != nil {
		mu.Lock()
		result.FailedCount++
		result.Failures = append(result.Failures, AutoConfirmFailure{
			SupplierProductID: sp.ID,
			LocalProductID:    &localProductID,
			Reason:            "local product " + localProductID.String() + ": " + err.Error(),
		})
		mu.Unlock()
		return
	}

	if _, err := sp.ConfirmMatch(localProductID, best[0].Similarity, confirmedBy); err != nil {
		mu.Lock()
		result.FailedCount++
		result.Failures = append(result.Failures, AutoConfirmFailure{
			SupplierProductID: sp.ID,
			LocalProductID:    &localProductID,
			Reason:            err.Error(),
		})
		mu.Unlock()
		return
	}

	if err := s.supplierProducts.Save(ctx, sp); err != nil {
		mu.Lock()
		result.FailedCount++
		result.Failures = append(result.Failures, AutoConfirmFailure{
			SupplierProductID: sp.ID,
			LocalProductID:    &localProductID,
			Reason:            err.Error(),
		})
		mu.Unlock()
		return
	}

	mu.Lock()
	result.ConfirmedCount++
	mu.Unlock()
}
