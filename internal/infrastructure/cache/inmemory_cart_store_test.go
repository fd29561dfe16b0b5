package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopfront/backend/internal/domain/cart"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	price, err := valueobject.NewMoneyEURFromString("12.50")
	require.NoError(t, err)
	product, err := catalog.NewProduct("Ceramic Mug", "Hand glazed", price, 25)
	require.NoError(t, err)
	return product
}

func TestInMemoryCartStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a cart through JSON", func(t *testing.T) {
		store := NewInMemoryCartStore(time.Hour)

		c := cart.NewCart("session-1")
		require.NoError(t, c.AddItem(newStoreTestProduct(t), 2))
		require.NoError(t, store.Save(ctx, c))

		found, err := store.Find(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, "session-1", found.SessionID)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, "Ceramic Mug", found.Lines[0].Name)
		assert.Equal(t, 2, found.Lines[0].Quantity)
		assert.True(t, found.TotalPrice().Equal(c.TotalPrice()))
	})

	t.Run("returns ErrNotFound for unknown session", func(t *testing.T) {
		store := NewInMemoryCartStore(time.Hour)

		_, err := store.Find(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns ErrNotFound after TTL expiry", func(t *testing.T) {
		store := NewInMemoryCartStore(10 * time.Millisecond)

		c := cart.NewCart("session-2")
		require.NoError(t, store.Save(ctx, c))

		time.Sleep(20 * time.Millisecond)

		_, err := store.Find(ctx, "session-2")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Find returns an independent copy", func(t *testing.T) {
		store := NewInMemoryCartStore(time.Hour)

		c := cart.NewCart("session-3")
		require.NoError(t, c.AddItem(newStoreTestProduct(t), 1))
		require.NoError(t, store.Save(ctx, c))

		first, err := store.Find(ctx, "session-3")
		require.NoError(t, err)
		first.Lines[0].Quantity = 99

		second, err := store.Find(ctx, "session-3")
		require.NoError(t, err)
		assert.Equal(t, 1, second.Lines[0].Quantity)
	})

	t.Run("Delete removes the cart and is idempotent", func(t *testing.T) {
		store := NewInMemoryCartStore(time.Hour)

		c := cart.NewCart("session-4")
		require.NoError(t, store.Save(ctx, c))

		require.NoError(t, store.Delete(ctx, "session-4"))
		_, err := store.Find(ctx, "session-4")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.NoError(t, store.Delete(ctx, "session-4"))
	})
}

func TestInMemorySubmissionGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire fails while held", func(t *testing.T) {
		guard := NewInMemorySubmissionGuard(time.Minute)

		acquired, err := guard.Acquire(ctx, "session-1")
		require.NoError(t, err)
		assert.True(t, acquired)

		acquired, err = guard.Acquire(ctx, "session-1")
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("release frees the session", func(t *testing.T) {
		guard := NewInMemorySubmissionGuard(time.Minute)

		acquired, err := guard.Acquire(ctx, "session-2")
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, guard.Release(ctx, "session-2"))

		acquired, err = guard.Acquire(ctx, "session-2")
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("sessions are independent", func(t *testing.T) {
		guard := NewInMemorySubmissionGuard(time.Minute)

		acquired, err := guard.Acquire(ctx, "session-3")
		require.NoError(t, err)
		require.True(t, acquired)

		acquired, err = guard.Acquire(ctx, "session-4")
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("expired hold can be reacquired", func(t *testing.T) {
		guard := NewInMemorySubmissionGuard(10 * time.Millisecond)

		acquired, err := guard.Acquire(ctx, "session-5")
		require.NoError(t, err)
		require.True(t, acquired)

		time.Sleep(20 * time.Millisecond)

		acquired, err = guard.Acquire(ctx, "session-5")
		require.NoError(t, err)
		assert.True(t, acquired)
	})
}
