package catalog

import (
	"testing"

	"github.com/kapzar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	categoryID := uuid.New()
	price, _ := valueobject.NewMoneyFromString("19.99")

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(categoryID, "Milk", "milk", price)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, categoryID, product.CategoryID)
		assert.Equal(t, "Milk", product.Name)
		assert.Equal(t, "milk", product.Slug)
		assert.Equal(t, "19.99", product.PriceMoney().String())
		assert.True(t, product.Available)
		assert.Zero(t, product.Stock)
		assert.NotEmpty(t, product.ID)
	})

	t.Run("lowercases slug", func(t *testing.T) {
		product, err := NewProduct(categoryID, "Milk", "WHOLE-MILK", price)
		require.NoError(t, err)
		assert.Equal(t, "whole-milk", product.Slug)
	})

	t.Run("fails with nil category", func(t *testing.T) {
		_, err := NewProduct(uuid.Nil, "Milk", "milk", price)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Category ID cannot be empty")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(categoryID, "  ", "milk", price)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with invalid slug characters", func(t *testing.T) {
		_, err := NewProduct(categoryID, "Milk", "milk!", price)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Slug can only contain")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		negative, _ := valueobject.NewMoneyFromString("-1.00")
		_, err := NewProduct(categoryID, "Milk", "milk", negative)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})
}

func TestProductAvailability(t *testing.T) {
	price, _ := valueobject.NewMoneyFromString("10.00")
	product, err := NewProduct(uuid.New(), "Bread", "bread", price)
	require.NoError(t, err)

	product.MarkUnavailable()
	assert.False(t, product.Available)

	product.MarkAvailable()
	assert.True(t, product.Available)
}

func TestProductSetters(t *testing.T) {
	price, _ := valueobject.NewMoneyFromString("10.00")
	product, err := NewProduct(uuid.New(), "Bread", "bread", price)
	require.NoError(t, err)

	t.Run("update price", func(t *testing.T) {
		updated, _ := valueobject.NewMoneyFromString("12.50")
		require.NoError(t, product.UpdatePrice(updated))
		assert.Equal(t, "12.50", product.PriceMoney().String())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		negative, _ := valueobject.NewMoneyFromString("-0.01")
		assert.Error(t, product.UpdatePrice(negative))
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		assert.Error(t, product.SetStock(-1))
	})

	t.Run("sets stock", func(t *testing.T) {
		require.NoError(t, product.SetStock(25))
		assert.Equal(t, 25, product.Stock)
	})
}

func TestNewCategory(t *testing.T) {
	t.Run("creates category with valid inputs", func(t *testing.T) {
		category, err := NewCategory("Dairy", "dairy")
		require.NoError(t, err)
		assert.Equal(t, "Dairy", category.Name)
		assert.Equal(t, "dairy", category.Slug)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "dairy")
		assert.Error(t, err)
	})

	t.Run("fails with invalid slug", func(t *testing.T) {
		_, err := NewCategory("Dairy", "dairy items")
		assert.Error(t, err)
	})
}
