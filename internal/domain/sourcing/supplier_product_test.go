package sourcing

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplierProduct(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()

	t.Run("creates unmatched supplier product", func(t *testing.T) {
		sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
		require.NoError(t, err)
		require.NotNil(t, sp)

		assert.Equal(t, tenantID, sp.TenantID)
		assert.Equal(t, supplierID, sp.SupplierID)
		assert.Equal(t, "蓝牙耳机A1", sp.RawName)
		assert.False(t, sp.IsConfirmed())
		assert.Nil(t, sp.LocalProductID)
		assert.Nil(t, sp.ConfirmedAt)
		assert.Equal(t, "CNY", sp.Currency)
	})

	t.Run("fails with nil supplier ID", func(t *testing.T) {
		_, err := NewSupplierProduct(tenantID, uuid.Nil, "蓝牙耳机A1")
		require.Error(t, err)
	})

	t.Run("fails with blank name", func(t *testing.T) {
		_, err := NewSupplierProduct(tenantID, supplierID, "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestSupplierProductConfirmMatch(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()
	userID := uuid.New()

	newProduct := func(t *testing.T) *SupplierProduct {
		sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
		require.NoError(t, err)
		sp.ClearDomainEvents()
		return sp
	}

	t.Run("confirms an unmatched product", func(t *testing.T) {
		sp := newProduct(t)
		localProductID := uuid.New()

		previous, err := sp.ConfirmMatch(localProductID, 1.0, userID)
		require.NoError(t, err)
		assert.Nil(t, previous)

		assert.True(t, sp.IsConfirmed())
		require.NotNil(t, sp.LocalProductID)
		assert.Equal(t, localProductID, *sp.LocalProductID)
		assert.Equal(t, 1.0, sp.Confidence)
		require.NotNil(t, sp.ConfirmedBy)
		assert.Equal(t, userID, *sp.ConfirmedBy)
		assert.NotNil(t, sp.ConfirmedAt)
	})

	t.Run("fails with nil local product ID and leaves state untouched", func(t *testing.T) {
		sp := newProduct(t)

		_, err := sp.ConfirmMatch(uuid.Nil, 1.0, userID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Local product ID is required")

		assert.False(t, sp.IsConfirmed())
		assert.Nil(t, sp.LocalProductID)
		assert.Nil(t, sp.ConfirmedAt)
		assert.Empty(t, sp.GetDomainEvents())
	})

	t.Run("fails with out-of-range confidence", func(t *testing.T) {
		sp := newProduct(t)

		_, err := sp.ConfirmMatch(uuid.New(), 1.5, userID)
		require.Error(t, err)

		_, err = sp.ConfirmMatch(uuid.New(), -0.1, userID)
		require.Error(t, err)
	})

	t.Run("overwrite returns previous local product ID", func(t *testing.T) {
		sp := newProduct(t)
		first := uuid.New()
		second := uuid.New()

		previous, err := sp.ConfirmMatch(first, 1.0, userID)
		require.NoError(t, err)
		assert.Nil(t, previous)

		previous, err = sp.ConfirmMatch(second, 0.97, userID)
		require.NoError(t, err)
		require.NotNil(t, previous)
		assert.Equal(t, first, *previous)
		assert.Equal(t, second, *sp.LocalProductID)
		assert.Equal(t, 0.97, sp.Confidence)
	})

	t.Run("re-confirming the same pair is not an overwrite", func(t *testing.T) {
		sp := newProduct(t)
		localProductID := uuid.New()

		_, err := sp.ConfirmMatch(localProductID, 1.0, userID)
		require.NoError(t, err)

		previous, err := sp.ConfirmMatch(localProductID, 1.0, userID)
		require.NoError(t, err)
		assert.Nil(t, previous)
	})

	t.Run("publishes MatchConfirmed event with previous ID on overwrite", func(t *testing.T) {
		sp := newProduct(t)
		first := uuid.New()
		second := uuid.New()

		_, err := sp.ConfirmMatch(first, 1.0, userID)
		require.NoError(t, err)
		sp.ClearDomainEvents()

		_, err = sp.ConfirmMatch(second, 1.0, userID)
		require.NoError(t, err)

		events := sp.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*MatchConfirmedEvent)
		require.True(t, ok)
		assert.Equal(t, second, event.LocalProductID)
		require.NotNil(t, event.PreviousLocalProductID)
		assert.Equal(t, first, *event.PreviousLocalProductID)
	})
}

func TestSupplierProductUnmatch(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()

	t.Run("clears all match fields", func(t *testing.T) {
		sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
		require.NoError(t, err)
		_, err = sp.ConfirmMatch(uuid.New(), 1.0, uuid.New())
		require.NoError(t, err)

		sp.Unmatch()

		assert.False(t, sp.IsConfirmed())
		assert.Nil(t, sp.LocalProductID)
		assert.Equal(t, 0.0, sp.Confidence)
		assert.Nil(t, sp.ConfirmedBy)
		assert.Nil(t, sp.ConfirmedAt)
	})

	t.Run("unmatching an unmatched product is a no-op", func(t *testing.T) {
		sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
		require.NoError(t, err)
		sp.ClearDomainEvents()
		version := sp.GetVersion()

		sp.Unmatch()

		assert.Equal(t, version, sp.GetVersion())
		assert.Empty(t, sp.GetDomainEvents())
	})
}

func TestSupplierProductReassignSupplier(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()

	t.Run("reassigns without touching match state", func(t *testing.T) {
		sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
		require.NoError(t, err)
		localProductID := uuid.New()
		_, err = sp.ConfirmMatch(localProductID, 1.0, uuid.New())
		require.NoError(t, err)

		newSupplierID := uuid.New()
		require.NoError(t, sp.ReassignSupplier(newSupplierID))

		assert.Equal(t, newSupplierID, sp.SupplierID)
		assert.True(t, sp.IsConfirmed())
		assert.Equal(t, localProductID, *sp.LocalProductID)
	})

	t.Run("fails with nil supplier ID", func(t *testing.T) {
		sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
		require.NoError(t, err)
		require.Error(t, sp.ReassignSupplier(uuid.Nil))
	})

	t.Run("reassigning to the same supplier is a no-op", func(t *testing.T) {
		sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
		require.NoError(t, err)
		sp.ClearDomainEvents()

		require.NoError(t, sp.ReassignSupplier(supplierID))
		assert.Empty(t, sp.GetDomainEvents())
	})
}

func TestSupplierProductUpdateListing(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()

	newProduct := func(t *testing.T) *SupplierProduct {
		sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
		require.NoError(t, err)
		return sp
	}

	t.Run("updates names and price", func(t *testing.T) {
		sp := newProduct(t)
		err := sp.UpdateListing("蓝牙耳机A1 Pro", "Bluetooth Earphone A1 Pro", decimal.NewFromFloat(39.9), "cny")
		require.NoError(t, err)

		assert.Equal(t, "蓝牙耳机A1 Pro", sp.RawName)
		assert.Equal(t, "Bluetooth Earphone A1 Pro", sp.LocalizedName)
		assert.True(t, sp.Price.Equal(decimal.NewFromFloat(39.9)))
		assert.Equal(t, "CNY", sp.Currency)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		sp := newProduct(t)
		err := sp.UpdateListing("", "", decimal.Zero, "")
		require.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		sp := newProduct(t)
		err := sp.UpdateListing("蓝牙耳机A1", "", decimal.NewFromInt(-1), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})

	t.Run("rejects overlong localized name", func(t *testing.T) {
		sp := newProduct(t)
		err := sp.UpdateListing("蓝牙耳机A1", strings.Repeat("a", 301), decimal.Zero, "")
		require.Error(t, err)
	})
}

func TestSupplierProductSetURLs(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()
	sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
	require.NoError(t, err)

	t.Run("accepts valid URLs", func(t *testing.T) {
		err := sp.SetURLs("https://img.example.com/a1.jpg", "https://supplier.example.com/item/123")
		require.NoError(t, err)
		assert.Equal(t, "https://img.example.com/a1.jpg", sp.ImageURL)
	})

	t.Run("rejects malformed image URL", func(t *testing.T) {
		err := sp.SetURLs("::bad::", "")
		require.Error(t, err)
	})

	t.Run("rejects non-http source URL", func(t *testing.T) {
		err := sp.SetURLs("", "ftp://supplier.example.com/item/123")
		require.Error(t, err)
	})
}

func TestSupplierProductMatchingName(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()
	sp, err := NewSupplierProduct(tenantID, supplierID, "蓝牙耳机A1")
	require.NoError(t, err)

	assert.Equal(t, "蓝牙耳机A1", sp.MatchingName())

	require.NoError(t, sp.UpdateListing("蓝牙耳机A1", "Bluetooth Earphone A1", decimal.Zero, ""))
	assert.Equal(t, "Bluetooth Earphone A1", sp.MatchingName())
}
