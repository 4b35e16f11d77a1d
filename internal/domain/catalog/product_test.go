package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SKU-001", "Bluetooth Earphone A1")
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, tenantID, product.TenantID)
		assert.Equal(t, "SKU-001", product.Code)
		assert.Equal(t, "Bluetooth Earphone A1", product.Name)
		assert.Empty(t, product.LocalizedName)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts code to uppercase", func(t *testing.T) {
		product, err := NewProduct(tenantID, "sku-001", "Bluetooth Earphone A1")
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", product.Code)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SKU-002", "Bluetooth Earphone A1")
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Code, event.Code)
		assert.Equal(t, product.Name, event.Name)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct(tenantID, "", "Bluetooth Earphone A1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with invalid code characters", func(t *testing.T) {
		_, err := NewProduct(tenantID, "SKU@001", "Bluetooth Earphone A1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain letters")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(tenantID, "SKU-001", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		longName := strings.Repeat("a", 201)
		_, err := NewProduct(tenantID, "SKU-001", longName)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})
}

func TestProductSetLocalizedName(t *testing.T) {
	tenantID := uuid.New()

	t.Run("sets localized name", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SKU-001", "Bluetooth Earphone A1")
		require.NoError(t, err)
		product.ClearDomainEvents()

		err = product.SetLocalizedName("蓝牙耳机A1")
		require.NoError(t, err)
		assert.Equal(t, "蓝牙耳机A1", product.LocalizedName)
		assert.Equal(t, 2, product.GetVersion())
	})

	t.Run("publishes localized name changed event with old value", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SKU-001", "Bluetooth Earphone A1")
		require.NoError(t, err)
		require.NoError(t, product.SetLocalizedName("蓝牙耳机"))
		product.ClearDomainEvents()

		require.NoError(t, product.SetLocalizedName("蓝牙耳机A1"))

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*ProductLocalizedNameChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "蓝牙耳机", event.OldLocalizedName)
		assert.Equal(t, "蓝牙耳机A1", event.NewLocalizedName)
	})

	t.Run("clearing localized name falls back to canonical name for matching", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SKU-001", "Bluetooth Earphone A1")
		require.NoError(t, err)
		require.NoError(t, product.SetLocalizedName("蓝牙耳机A1"))
		assert.Equal(t, "蓝牙耳机A1", product.MatchingName())

		require.NoError(t, product.SetLocalizedName(""))
		assert.Equal(t, "Bluetooth Earphone A1", product.MatchingName())
	})

	t.Run("fails when localized name too long", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SKU-001", "Bluetooth Earphone A1")
		require.NoError(t, err)

		err = product.SetLocalizedName(strings.Repeat("名", 201))
		require.Error(t, err)
	})
}

func TestProductSetImageURL(t *testing.T) {
	tenantID := uuid.New()
	product, err := NewProduct(tenantID, "SKU-001", "Bluetooth Earphone A1")
	require.NoError(t, err)

	t.Run("accepts valid https URL", func(t *testing.T) {
		require.NoError(t, product.SetImageURL("https://cdn.example.com/img/a1.jpg"))
		assert.Equal(t, "https://cdn.example.com/img/a1.jpg", product.ImageURL)
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		err := product.SetImageURL("not-a-url")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "valid http(s)")
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		err := product.SetImageURL("ftp://cdn.example.com/a1.jpg")
		require.Error(t, err)
	})

	t.Run("allows clearing the URL", func(t *testing.T) {
		require.NoError(t, product.SetImageURL(""))
		assert.Empty(t, product.ImageURL)
	})
}

func TestProductStatusTransitions(t *testing.T) {
	tenantID := uuid.New()

	t.Run("deactivate then activate", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SKU-001", "Bluetooth Earphone A1")
		require.NoError(t, err)

		require.NoError(t, product.Deactivate())
		assert.False(t, product.IsActive())

		require.NoError(t, product.Activate())
		assert.True(t, product.IsActive())
	})

	t.Run("fails to activate an already active product", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SKU-001", "Bluetooth Earphone A1")
		require.NoError(t, err)

		err = product.Activate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already active")
	})
}
