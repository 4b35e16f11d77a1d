package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/sourcing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRejectedPairRepository implements sourcing.RejectedPairRepository
// using GORM
type GormRejectedPairRepository struct {
	db *gorm.DB
}

// NewGormRejectedPairRepository creates a new GormRejectedPairRepository
func NewGormRejectedPairRepository(db *gorm.DB) *GormRejectedPairRepository {
	return &GormRejectedPairRepository{db: db}
}

// Add records a rejected pair. Inserting a pair that is already recorded is
// a no-op, which makes rejection idempotent under concurrent requests.
func (r *GormRejectedPairRepository) Add(ctx context.Context, pair *sourcing.RejectedPair) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "tenant_id"},
				{Name: "supplier_product_id"},
				{Name: "local_product_id"},
			},
			DoNothing: true,
		}).
		Create(pair).Error
}

// Exists reports whether the pair has been rejected
func (r *GormRejectedPairRepository) Exists(ctx context.Context, tenantID, supplierProductID, localProductID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sourcing.RejectedPair{}).
		Where("tenant_id = ? AND supplier_product_id = ? AND local_product_id = ?",
			tenantID, supplierProductID, localProductID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListLocalProductIDs lists the local products rejected for a supplier product
func (r *GormRejectedPairRepository) ListLocalProductIDs(ctx context.Context, tenantID, supplierProductID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&sourcing.RejectedPair{}).
		Where("tenant_id = ? AND supplier_product_id = ?", tenantID, supplierProductID).
		Pluck("local_product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListForSupplierProducts batch-loads rejections for multiple supplier
// products, keyed by supplier product ID
func (r *GormRejectedPairRepository) ListForSupplierProducts(ctx context.Context, tenantID uuid.UUID, supplierProductIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID, len(supplierProductIDs))
	if len(supplierProductIDs) == 0 {
		return result, nil
	}

	var pairs []sourcing.RejectedPair
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND supplier_product_id IN ?", tenantID, supplierProductIDs).
		Find(&pairs).Error; err != nil {
		return nil, err
	}

	for i := range pairs {
		result[pairs[i].SupplierProductID] = append(result[pairs[i].SupplierProductID], pairs[i].LocalProductID)
	}
	return result, nil
}

// CountForTenant counts the tenant's rejected pairs
func (r *GormRejectedPairRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sourcing.RejectedPair{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormRejectedPairRepository implements RejectedPairRepository
var _ sourcing.RejectedPairRepository = (*GormRejectedPairRepository)(nil)
