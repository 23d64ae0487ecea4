package persistence

import (
	"context"
	"testing"

	"github.com/kapzar/backend/internal/domain/order"
	"github.com/kapzar/backend/internal/domain/shared"
	"github.com/kapzar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func buildOrder(t *testing.T, userID *uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, "Asha Rao", "+919900112233", "12 MG Road, Bengaluru",
		[]order.OrderLine{
			{ProductName: "Whole Milk", Price: money(t, "19.99"), Quantity: 3},
			{ProductName: "Butter", Price: money(t, "52.00"), Quantity: 1},
		}, order.DefaultDeliveryPolicy())
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	o := buildOrder(t, &userID)
	require.NoError(t, repo.Create(ctx, o))

	t.Run("finds order with items preloaded", func(t *testing.T) {
		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 2)
		assert.Equal(t, "111.97", found.SubtotalMoney().String())
		assert.Equal(t, "40.00", found.DeliveryChargeMoney().String())
		assert.Equal(t, "151.97", found.TotalMoney().String())
		assert.False(t, found.IsPaid)
	})

	t.Run("missing order returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists orders by user newest first", func(t *testing.T) {
		second := buildOrder(t, &userID)
		require.NoError(t, repo.Create(ctx, second))

		other := uuid.New()
		require.NoError(t, repo.Create(ctx, buildOrder(t, &other)))

		orders, err := repo.FindByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		for _, got := range orders {
			assert.Equal(t, userID, *got.UserID)
			assert.Len(t, got.Items, 2)
		}
	})
}

func TestGormOrderRepository_SavePayment(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	o := buildOrder(t, &userID)
	require.NoError(t, repo.Create(ctx, o))

	require.NoError(t, o.ConfirmPayment("upi-txn-8842"))
	require.NoError(t, repo.Save(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, found.IsPaid)
	assert.Equal(t, "upi-txn-8842", found.PaymentTxnID)
	// Save must not have touched the denormalized items
	require.Len(t, found.Items, 2)
	names := []string{found.Items[0].ProductName, found.Items[1].ProductName}
	assert.ElementsMatch(t, []string{"Whole Milk", "Butter"}, names)
}

func TestGormOrderRepository_GuestOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := buildOrder(t, nil)
	require.NoError(t, repo.Create(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Nil(t, found.UserID)
}
