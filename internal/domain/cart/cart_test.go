package cart

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, name string, price float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", valueobject.NewMoneyEURFromFloat(price), stock)
	require.NoError(t, err)
	return product
}

func TestNewCart(t *testing.T) {
	c := NewCart("session-1")

	assert.Equal(t, "session-1", c.SessionID)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestCart_AddItem(t *testing.T) {
	t.Run("adds a new line", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 10)

		require.NoError(t, c.AddItem(p, 2))
		require.Len(t, c.Lines, 1)
		assert.Equal(t, 2, c.Lines[0].Quantity)
		assert.Equal(t, p.ID, c.Lines[0].ProductID)
		assert.True(t, c.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(3.50)))
	})

	t.Run("merges into existing line instead of duplicating", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 10)

		require.NoError(t, c.AddItem(p, 2))
		require.NoError(t, c.AddItem(p, 3))

		require.Len(t, c.Lines, 1)
		assert.Equal(t, 5, c.Lines[0].Quantity)
	})

	t.Run("fails with OutOfStock past observed stock", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 4)

		require.NoError(t, c.AddItem(p, 3))
		err := c.AddItem(p, 2)
		assert.ErrorIs(t, err, shared.ErrOutOfStock)

		// No partial mutation
		assert.Equal(t, 3, c.Lines[0].Quantity)
	})

	t.Run("fails on new line exceeding stock", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 1)

		assert.ErrorIs(t, c.AddItem(p, 2), shared.ErrOutOfStock)
		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 10)
		p.Deactivate()

		assert.ErrorIs(t, c.AddItem(p, 1), shared.ErrProductUnavailable)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 10)

		assert.Error(t, c.AddItem(p, 0))
		assert.Error(t, c.AddItem(p, -1))
	})

	t.Run("refreshes snapshot on merge", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 10)

		require.NoError(t, c.AddItem(p, 1))
		require.NoError(t, p.UpdatePrice(valueobject.NewMoneyEURFromFloat(4.00)))
		require.NoError(t, c.AddItem(p, 1))

		assert.True(t, c.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(4.00)))
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Run("sets quantity", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 10)
		require.NoError(t, c.AddItem(p, 2))

		require.NoError(t, c.UpdateQuantity(p.ID, 7))
		assert.Equal(t, 7, c.Lines[0].Quantity)
	})

	t.Run("removes line at quantity zero or below", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 10)
		require.NoError(t, c.AddItem(p, 2))

		require.NoError(t, c.UpdateQuantity(p.ID, 0))
		assert.True(t, c.IsEmpty())

		require.NoError(t, c.AddItem(p, 2))
		require.NoError(t, c.UpdateQuantity(p.ID, -3))
		assert.True(t, c.IsEmpty())
	})

	t.Run("fails with OutOfStock above observed stock, cart unchanged", func(t *testing.T) {
		c := NewCart("s")
		p := newTestProduct(t, "Soap", 3.50, 5)
		require.NoError(t, c.AddItem(p, 2))

		err := c.UpdateQuantity(p.ID, 6)
		assert.ErrorIs(t, err, shared.ErrOutOfStock)
		assert.Equal(t, 2, c.Lines[0].Quantity)
	})

	t.Run("fails on absent line", func(t *testing.T) {
		c := NewCart("s")
		assert.ErrorIs(t, c.UpdateQuantity(uuid.New(), 1), shared.ErrNotFound)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart("s")
	a := newTestProduct(t, "A", 1.00, 10)
	b := newTestProduct(t, "B", 2.00, 10)
	require.NoError(t, c.AddItem(a, 1))
	require.NoError(t, c.AddItem(b, 1))

	c.RemoveItem(a.ID)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, b.ID, c.Lines[0].ProductID)

	// No-op when absent
	c.RemoveItem(uuid.New())
	assert.Len(t, c.Lines, 1)
}

func TestCart_Clear(t *testing.T) {
	c := NewCart("s")
	p := newTestProduct(t, "Soap", 3.50, 10)
	require.NoError(t, c.AddItem(p, 2))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
}

func TestCart_Totals(t *testing.T) {
	c := NewCart("s")
	a := newTestProduct(t, "A", 10.00, 10)
	b := newTestProduct(t, "B", 5.50, 10)

	require.NoError(t, c.AddItem(a, 2))
	require.NoError(t, c.AddItem(b, 1))

	assert.Equal(t, "25.50", c.TotalPrice().StringFixed(2))
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, "25.50", c.TotalPriceMoney().StringFixed(2))
}

func TestCart_Invariants(t *testing.T) {
	// Arbitrary mutation sequences never leave a non-positive quantity or
	// a duplicate product line
	c := NewCart("s")
	a := newTestProduct(t, "A", 1.25, 8)
	b := newTestProduct(t, "B", 0.99, 3)

	_ = c.AddItem(a, 2)
	_ = c.AddItem(b, 3)
	_ = c.AddItem(a, 100) // exceeds stock, rejected
	_ = c.UpdateQuantity(a.ID, 8)
	_ = c.UpdateQuantity(b.ID, 0) // removed
	_ = c.AddItem(b, 1)
	c.RemoveItem(uuid.New())

	seen := make(map[uuid.UUID]bool)
	for _, line := range c.Lines {
		assert.Greater(t, line.Quantity, 0)
		assert.LessOrEqual(t, line.Quantity, line.StockQuantity)
		assert.False(t, seen[line.ProductID], "duplicate line for product")
		seen[line.ProductID] = true
	}
}

func TestCart_JSONRoundTripPreservesTotals(t *testing.T) {
	c := NewCart("s")
	a := newTestProduct(t, "A", 10.00, 10)
	b := newTestProduct(t, "B", 5.50, 10)
	require.NoError(t, c.AddItem(a, 2))
	require.NoError(t, c.AddItem(b, 1))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var restored Cart
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, c.SessionID, restored.SessionID)
	assert.Equal(t, c.TotalItems(), restored.TotalItems())
	assert.True(t, c.TotalPrice().Equal(restored.TotalPrice()))
}
