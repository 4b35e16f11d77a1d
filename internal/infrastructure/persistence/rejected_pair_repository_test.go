package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sourcematch/backend/internal/domain/sourcing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockRejectedPairRepository creates a GormRejectedPairRepository with a mocked SQL connection
func newMockRejectedPairRepository(t *testing.T) (*GormRejectedPairRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormRejectedPairRepository(gormDB), mock, mockDB
}

func TestGormRejectedPairRepository_Add(t *testing.T) {
	t.Run("inserts rejection with conflict do nothing", func(t *testing.T) {
		repo, mock, mockDB := newMockRejectedPairRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		pair, err := sourcing.NewRejectedPair(tenantID, uuid.New(), uuid.New(), nil)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "rejected_pairs" .* ON CONFLICT \("tenant_id","supplier_product_id","local_product_id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Add(context.Background(), pair)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserting an existing pair is a no-op", func(t *testing.T) {
		repo, mock, mockDB := newMockRejectedPairRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		pair, err := sourcing.NewRejectedPair(tenantID, uuid.New(), uuid.New(), nil)
		require.NoError(t, err)

		// The conflict clause swallows the duplicate, zero rows affected
		mock.ExpectExec(`INSERT INTO "rejected_pairs" .* ON CONFLICT \("tenant_id","supplier_product_id","local_product_id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Add(context.Background(), pair)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRejectedPairRepository_Exists(t *testing.T) {
	t.Run("returns true for rejected pair", func(t *testing.T) {
		repo, mock, mockDB := newMockRejectedPairRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		spID := uuid.New()
		lpID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "rejected_pairs" WHERE tenant_id = \$1 AND supplier_product_id = \$2 AND local_product_id = \$3`).
			WithArgs(tenantID, spID, lpID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.Exists(context.Background(), tenantID, spID, lpID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false for unrejected pair", func(t *testing.T) {
		repo, mock, mockDB := newMockRejectedPairRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		spID := uuid.New()
		lpID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "rejected_pairs" WHERE tenant_id = \$1 AND supplier_product_id = \$2 AND local_product_id = \$3`).
			WithArgs(tenantID, spID, lpID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.Exists(context.Background(), tenantID, spID, lpID)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRejectedPairRepository_ListLocalProductIDs(t *testing.T) {
	t.Run("lists rejected local product IDs for a supplier product", func(t *testing.T) {
		repo, mock, mockDB := newMockRejectedPairRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		spID := uuid.New()
		lp1 := uuid.New()
		lp2 := uuid.New()

		rows := sqlmock.NewRows([]string{"local_product_id"}).
			AddRow(lp1).
			AddRow(lp2)

		mock.ExpectQuery(`SELECT "local_product_id" FROM "rejected_pairs" WHERE tenant_id = \$1 AND supplier_product_id = \$2`).
			WithArgs(tenantID, spID).
			WillReturnRows(rows)

		ids, err := repo.ListLocalProductIDs(context.Background(), tenantID, spID)

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{lp1, lp2}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRejectedPairRepository_ListForSupplierProducts(t *testing.T) {
	t.Run("batch-loads rejections keyed by supplier product", func(t *testing.T) {
		repo, mock, mockDB := newMockRejectedPairRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		sp1 := uuid.New()
		sp2 := uuid.New()
		lp1 := uuid.New()
		lp2 := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "supplier_product_id", "local_product_id"}).
			AddRow(uuid.New(), tenantID, sp1, lp1).
			AddRow(uuid.New(), tenantID, sp1, lp2).
			AddRow(uuid.New(), tenantID, sp2, lp1)

		mock.ExpectQuery(`SELECT \* FROM "rejected_pairs" WHERE tenant_id = \$1 AND supplier_product_id IN \(\$2,\$3\)`).
			WithArgs(tenantID, sp1, sp2).
			WillReturnRows(rows)

		result, err := repo.ListForSupplierProducts(context.Background(), tenantID, []uuid.UUID{sp1, sp2})

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.ElementsMatch(t, []uuid.UUID{lp1, lp2}, result[sp1])
		assert.Equal(t, []uuid.UUID{lp1}, result[sp2])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty map for no supplier products", func(t *testing.T) {
		repo, _, mockDB := newMockRejectedPairRepository(t)
		defer mockDB.Close()

		result, err := repo.ListForSupplierProducts(context.Background(), uuid.New(), nil)

		assert.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestGormRejectedPairRepository_CountForTenant(t *testing.T) {
	t.Run("counts rejections for tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockRejectedPairRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "rejected_pairs" WHERE tenant_id = \$1`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountForTenant(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
