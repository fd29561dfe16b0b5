package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/cart"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest represents a request to set a line's quantity.
// A value of zero removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// LineResponse represents one cart line in API responses
type LineResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ImageURL      string          `json:"image_url"`
	StockQuantity int             `json:"stock_quantity"`
	Quantity      int             `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	AddedAt       time.Time       `json:"added_at"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	SessionID  string          `json:"session_id"`
	Lines      []LineResponse  `json:"lines"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(c *cart.Cart) CartResponse {
	lines := make([]LineResponse, len(c.Lines))
	for i := range c.Lines {
		line := &c.Lines[i]
		lines[i] = LineResponse{
			ProductID:     line.ProductID,
			ProductName:   line.Name,
			UnitPrice:     line.UnitPrice,
			ImageURL:      line.ImageURL,
			StockQuantity: line.StockQuantity,
			Quantity:      line.Quantity,
			Subtotal:      line.Subtotal(),
			AddedAt:       line.AddedAt,
		}
	}

	return CartResponse{
		SessionID:  c.SessionID,
		Lines:      lines,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		UpdatedAt:  c.UpdatedAt,
	}
}
