package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductSnapshot captures the display data of a product at the time it
// was last observed. The cart holds snapshots, not live product links;
// price and stock here are display hints only. The order-creation
// transaction is the authority at submission time.
type ProductSnapshot struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ImageURL      string          `json:"image_url,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
}

// Line is one (product, quantity) pair inside a cart
type Line struct {
	ProductSnapshot
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal returns unit price x quantity for this line
func (l *Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a session-scoped, ordered collection of lines keyed by product
// ID. Adding an already-present product merges into its existing line.
// Quantities are bounded by the product's stock at the last observation.
type Cart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCart creates an empty cart for a session
func NewCart(sessionID string) *Cart {
	now := time.Now()
	return &Cart{
		SessionID: sessionID,
		Lines:     make([]Line, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem adds the given quantity of a product to the cart. If the
// product already has a line, its quantity is increased and the snapshot
// refreshed to the latest observation. Fails with OUT_OF_STOCK when the
// resulting quantity would exceed the observed stock, leaving the cart
// unchanged.
func (c *Cart) AddItem(product *catalog.Product, quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if !product.IsActive {
		return shared.ErrProductUnavailable
	}

	snapshot := SnapshotOf(product)

	if line := c.findLine(product.ID); line != nil {
		newQuantity := line.Quantity + quantity
		if newQuantity > snapshot.StockQuantity {
			return shared.ErrOutOfStock
		}
		line.ProductSnapshot = snapshot
		line.Quantity = newQuantity
		line.UpdatedAt = time.Now()
		c.UpdatedAt = line.UpdatedAt
		return nil
	}

	if quantity > snapshot.StockQuantity {
		return shared.ErrOutOfStock
	}

	now := time.Now()
	c.Lines = append(c.Lines, Line{
		ProductSnapshot: snapshot,
		Quantity:        quantity,
		AddedAt:         now,
		UpdatedAt:       now,
	})
	c.UpdatedAt = now
	return nil
}

// UpdateQuantity sets the line's quantity to newQuantity. A quantity of
// zero or less removes the line. A quantity above the observed stock
// fails with OUT_OF_STOCK and leaves the cart unchanged, so the caller
// may retry with the clamped value.
func (c *Cart) UpdateQuantity(productID uuid.UUID, newQuantity int) error {
	line := c.findLine(productID)
	if line == nil {
		return shared.ErrNotFound
	}

	if newQuantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	if newQuantity > line.StockQuantity {
		return shared.ErrOutOfStock
	}

	line.Quantity = newQuantity
	line.UpdatedAt = time.Now()
	c.UpdatedAt = line.UpdatedAt
	return nil
}

// RemoveItem deletes the line unconditionally; no-op if absent
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = make([]Line, 0)
	c.UpdatedAt = time.Now()
}

// TotalPrice returns the exact decimal sum of unit price x quantity over
// all lines
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for idx := range c.Lines {
		total = total.Add(c.Lines[idx].Subtotal())
	}
	return total
}

// TotalPriceMoney returns the cart total as Money
func (c *Cart) TotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(c.TotalPrice())
}

// TotalItems returns the sum of quantities over all lines
func (c *Cart) TotalItems() int {
	total := 0
	for idx := range c.Lines {
		total += c.Lines[idx].Quantity
	}
	return total
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// GetLine returns the line for a product, or nil if absent
func (c *Cart) GetLine(productID uuid.UUID) *Line {
	return c.findLine(productID)
}

func (c *Cart) findLine(productID uuid.UUID) *Line {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			return &c.Lines[idx]
		}
	}
	return nil
}

// SnapshotOf builds a product snapshot from the current catalog state
func SnapshotOf(product *catalog.Product) ProductSnapshot {
	return ProductSnapshot{
		ProductID:     product.ID,
		Name:          product.Name,
		UnitPrice:     product.Price,
		ImageURL:      product.ImageURL,
		StockQuantity: product.StockQuantity,
	}
}
