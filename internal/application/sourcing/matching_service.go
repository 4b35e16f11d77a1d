package sourcing

import (
	"context"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/catalog"
	"github.com/sourcematch/backend/internal/domain/partner"
	"github.com/sourcematch/backend/internal/domain/shared"
	"github.com/sourcematch/backend/internal/domain/sourcing"
)

// MatchingConfig carries the matching engine tunables
type MatchingConfig struct {
	// MinSimilarity is the default similarity cutoff for suggestions
	MinSimilarity float64
	// MaxSuggestions is the default cap on suggestions per supplier product
	MaxSuggestions int
	// AutoConfirmThreshold is the default cutoff for bulk auto-confirmation
	AutoConfirmThreshold float64
	// Workers bounds the bulk auto-confirm fan-out
	Workers int
}

// DefaultMatchingConfig returns the standard matching tunables
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		MinSimilarity:        0.9,
		MaxSuggestions:       5,
		AutoConfirmThreshold: sourcing.HighScoreThreshold,
		Workers:              4,
	}
}

// MatchingService generates ranked match suggestions for supplier products.
// Suggestions are recomputed on every call from the current catalog and
// rejection cache; nothing here is persisted.
type MatchingService struct {
	supplierProducts sourcing.SupplierProductRepository
	products         catalog.ProductRepository
	rejections       sourcing.RejectedPairRepository
	suppliers        partner.SupplierRepository
	cfg              MatchingConfig
}

// NewMatchingService creates a new MatchingService
func NewMatchingService(
	supplierProducts sourcing.SupplierProductRepository,
	products catalog.ProductRepository,
	rejections sourcing.RejectedPairRepository,
	suppliers partner.SupplierRepository,
	cfg MatchingConfig,
) *MatchingService {
	if cfg.MinSimilarity <= 0 {
		cfg.MinSimilarity = DefaultMatchingConfig().MinSimilarity
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultMatchingConfig().MaxSuggestions
	}
	if cfg.AutoConfirmThreshold <= 0 {
		cfg.AutoConfirmThreshold = DefaultMatchingConfig().AutoConfirmThreshold
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultMatchingConfig().Workers
	}
	return &MatchingService{
		supplierProducts: supplierProducts,
		products:         products,
		rejections:       rejections,
		suppliers:        suppliers,
		cfg:              cfg,
	}
}

// Config returns the effective matching tunables
func (s *MatchingService) Config() MatchingConfig {
	return s.cfg
}

// Suggest computes ranked suggestions for a single supplier product.
// Confirmed products keep their link until explicitly unmatched, so no
// candidates are recomputed for them, matching the batch listing.
func (s *MatchingService) Suggest(ctx context.Context, tenantID, supplierProductID uuid.UUID, minSimilarity *float64, maxSuggestions *int) ([]sourcing.MatchSuggestion, error) {
	sp, err := s.supplierProducts.FindByIDForTenant(ctx, tenantID, supplierProductID)
	if err != nil {
		return nil, err
	}
	if sp.IsConfirmed() {
		return []sourcing.MatchSuggestion{}, nil
	}

	candidates, err := s.products.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rejectedIDs, err := s.rejections.ListLocalProductIDs(ctx, tenantID, sp.ID)
	if err != nil {
		return nil, err
	}
	rejected := make(map[uuid.UUID]struct{}, len(rejectedIDs))
	for _, id := range rejectedIDs {
		rejected[id] = struct{}{}
	}

	minSim := s.cfg.MinSimilarity
	if minSimilarity != nil {
		minSim = *minSimilarity
	}
	limit := s.cfg.MaxSuggestions
	if maxSuggestions != nil {
		limit = *maxSuggestions
	}

	return suggestFor(sp, candidates, rejected, minSim, limit), nil
}

// ListWithSuggestions returns a paginated listing of a supplier's products,
// each with its current suggestions, filtered by the query's filter type.
// When the filter matches nothing the unfiltered listing is returned with
// IsFallback set, so the dashboard never shows an empty screen for an
// over-strict filter.
func (s *MatchingService) ListWithSuggestions(ctx context.Context, tenantID, supplierID uuid.UUID, query SuggestionQuery) (*SuggestionListResult, error) {
	if _, err := s.suppliers.FindByIDForTenant(ctx, tenantID, supplierID); err != nil {
		return nil, err
	}

	filterType, err := sourcing.ParseFilterType(query.FilterType)
	if err != nil {
		return nil, err
	}

	minSim := s.cfg.MinSimilarity
	if query.MinSimilarity != nil {
		minSim = *query.MinSimilarity
	}
	limit := s.cfg.MaxSuggestions
	if query.MaxSuggestions != nil {
		limit = *query.MaxSuggestions
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	// The filter depends on computed scores, so the whole supplier
	// catalog is scored and pagination happens on the filtered set.
	supplierProducts, err := s.supplierProducts.FindBySupplier(ctx, tenantID, supplierID, shared.Filter{
		OrderBy:  "created_at",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}

	candidates, err := s.products.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	spIDs := make([]uuid.UUID, 0, len(supplierProducts))
	for i := range supplierProducts {
		spIDs = append(spIDs, supplierProducts[i].ID)
	}
	rejectedByProduct, err := s.rejections.ListForSupplierProducts(ctx, tenantID, spIDs)
	if err != nil {
		return nil, err
	}

	productsByID := make(map[uuid.UUID]*catalog.Product, len(candidates))
	for i := range candidates {
		productsByID[candidates[i].ID] = &candidates[i]
	}

	entries := make([]SupplierProductWithSuggestions, 0, len(supplierProducts))
	for i := range supplierProducts {
		sp := &supplierProducts[i]

		var suggestions []sourcing.MatchSuggestion
		if !sp.IsConfirmed() {
			rejected := make(map[uuid.UUID]struct{})
			for _, id := range rejectedByProduct[sp.ID] {
				rejected[id] = struct{}{}
			}
			suggestions = suggestFor(sp, candidates, rejected, minSim, limit)
		}

		var localProduct *catalog.Product
		if sp.LocalProductID != nil {
			localProduct = productsByID[*sp.LocalProductID]
		}

		entries = append(entries, SupplierProductWithSuggestions{
			Product:     ToSupplierProductResponse(sp, localProduct),
			Suggestions: suggestions,
		})
	}

	filtered := filterEntries(entries, filterType)

	// An over-strict min_similarity can leave every product without a
	// single candidate. The suggestion-dependent filters say nothing
	// useful then (without_suggestions would match everything), so the
	// full listing is returned with the fallback tag instead.
	anySuggestions := false
	for i := range entries {
		if len(entries[i].Suggestions) > 0 {
			anySuggestions = true
			break
		}
	}

	isFallback := false
	if filterType != sourcing.FilterAll && len(entries) > 0 && (len(filtered) == 0 || !anySuggestions) {
		filtered = entries
		isFallback = true
	}

	total := int64(len(filtered))
	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return &SuggestionListResult{
		Items:      filtered[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		IsFallback: isFallback,
	}, nil
}

// suggestFor scores one supplier product against the candidate pool.
// Rejected pairs never appear; results are sorted by score descending with
// ties broken by ascending local product ID, then truncated.
func suggestFor(sp *sourcing.SupplierProduct, candidates []catalog.Product, rejected map[uuid.UUID]struct{}, minSimilarity float64, maxSuggestions int) []sourcing.MatchSuggestion {
	suggestions := make([]sourcing.MatchSuggestion, 0)
	for i := range candidates {
		product := &candidates[i]
		if _, ok := rejected[product.ID]; ok {
			continue
		}

		similarity, commonTokens := sourcing.Score(sp.MatchingName(), product.MatchingName())
		if similarity < minSimilarity {
			continue
		}

		suggestions = append(suggestions, sourcing.MatchSuggestion{
			LocalProductID: product.ID,
			Code:           product.Code,
			Name:           product.Name,
			LocalizedName:  product.LocalizedName,
			Similarity:     similarity,
			CommonTokens:   commonTokens,
		})
	}

	sourcing.SortSuggestions(suggestions)
	if maxSuggestions > 0 && len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// filterEntries applies a listing filter type over scored entries
func filterEntries(entries []SupplierProductWithSuggestions, filterType sourcing.FilterType) []SupplierProductWithSuggestions {
	if filterType == sourcing.FilterAll {
		return entries
	}

	filtered := make([]SupplierProductWithSuggestions, 0, len(entries))
	for _, entry := range entries {
		switch filterType {
		case sourcing.FilterWithSuggestions:
			if len(entry.Suggestions) > 0 {
				filtered = append(filtered, entry)
			}
		case sourcing.FilterWithoutSuggestions:
			if len(entry.Suggestions) == 0 && !entry.Product.ManualConfirmed {
				filtered = append(filtered, entry)
			}
		case sourcing.FilterHighScore:
			if len(entry.Suggestions) > 0 && entry.Suggestions[0].Similarity >= sourcing.HighScoreThreshold {
				filtered = append(filtered, entry)
			}
		}
	}
	return filtered
}
