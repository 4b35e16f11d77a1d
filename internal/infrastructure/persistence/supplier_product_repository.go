package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/shared"
	"github.com/sourcematch/backend/internal/domain/sourcing"
	"gorm.io/gorm"
)

// GormSupplierProductRepository implements sourcing.SupplierProductRepository
// using GORM
type GormSupplierProductRepository struct {
	db *gorm.DB
}

// NewGormSupplierProductRepository creates a new GormSupplierProductRepository
func NewGormSupplierProductRepository(db *gorm.DB) *GormSupplierProductRepository {
	return &GormSupplierProductRepository{db: db}
}

// FindByID finds a supplier product by its ID
func (r *GormSupplierProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*sourcing.SupplierProduct, error) {
	var sp sourcing.SupplierProduct
	if err := r.db.WithContext(ctx).First(&sp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sp, nil
}

// FindByIDForTenant finds a supplier product by ID within a tenant
func (r *GormSupplierProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sourcing.SupplierProduct, error) {
	var sp sourcing.SupplierProduct
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sp, nil
}

// FindByLocalProduct finds supplier products confirmed against a local product
func (r *GormSupplierProductRepository) FindByLocalProduct(ctx context.Context, tenantID, localProductID uuid.UUID) ([]sourcing.SupplierProduct, error) {
	var products []sourcing.SupplierProduct
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND local_product_id = ?", tenantID, localProductID).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindBySupplier finds supplier products belonging to a supplier
func (r *GormSupplierProductRepository) FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]sourcing.SupplierProduct, error) {
	var products []sourcing.SupplierProduct
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sourcing.SupplierProduct{}).
			Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID),
		filter,
	)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindUnmatchedBySupplier finds a supplier's products with no confirmed match
func (r *GormSupplierProductRepository) FindUnmatchedBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) ([]sourcing.SupplierProduct, error) {
	var products []sourcing.SupplierProduct
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND supplier_id = ? AND local_product_id IS NULL", tenantID, supplierID).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CountBySupplier counts a supplier's products
func (r *GormSupplierProductRepository) CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&sourcing.SupplierProduct{}).
		Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a supplier product
func (r *GormSupplierProductRepository) Save(ctx context.Context, sp *sourcing.SupplierProduct) error {
	return r.db.WithContext(ctx).Save(sp).Error
}

// Delete deletes a supplier product
func (r *GormSupplierProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sourcing.SupplierProduct{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormSupplierProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, SupplierProductSortFields, "created_at")
		sortOrder := ValidateSortOrder(filter.OrderDir)
		query = query.Order(sortField + " " + sortOrder)
	} else {
		query = query.Order("created_at ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSupplierProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("raw_name ILIKE ? OR localized_name ILIKE ? OR source_code ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "matched":
			if value == true {
				query = query.Where("local_product_id IS NOT NULL")
			} else {
				query = query.Where("local_product_id IS NULL")
			}
		case "manual_confirmed":
			query = query.Where("manual_confirmed = ?", value)
		}
	}

	return query
}

// Ensure GormSupplierProductRepository implements SupplierProductRepository
var _ sourcing.SupplierProductRepository = (*GormSupplierProductRepository)(nil)
