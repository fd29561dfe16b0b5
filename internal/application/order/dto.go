package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/order"
)

// UpdateStatusRequest represents a request to move an order to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LineResponse represents one order line in API responses
type LineResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    *uuid.UUID      `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                 uuid.UUID       `json:"id"`
	CustomerName       string          `json:"customer_name"`
	CustomerEmail      string          `json:"customer_email"`
	CustomerPhone      string          `json:"customer_phone"`
	DeliveryAddress    string          `json:"delivery_address"`
	DeliveryCity       string          `json:"delivery_city"`
	DeliveryPostalCode string          `json:"delivery_postal_code"`
	Notes              string          `json:"notes,omitempty"`
	Lines              []LineResponse  `json:"lines"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	Status             string          `json:"status"`
	ProcessingAt       *time.Time      `json:"processing_at,omitempty"`
	ShippedAt          *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt        *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// OrderListResponse represents a list item for orders
type OrderListResponse struct {
	ID           uuid.UUID       `json:"id"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	ItemCount    int             `json:"item_count"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StatusCountsResponse reports the number of orders per status
type StatusCountsResponse struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
	Cancelled  int64 `json:"cancelled"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	lines := make([]LineResponse, len(o.Lines))
	for i := range o.Lines {
		line := &o.Lines[i]
		lines[i] = LineResponse{
			ID:           line.ID,
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductPrice: line.ProductPrice,
			Quantity:     line.Quantity,
			Subtotal:     line.Subtotal,
		}
	}

	return OrderResponse{
		ID:                 o.ID,
		CustomerName:       o.CustomerName,
		CustomerEmail:      o.CustomerEmail,
		CustomerPhone:      o.CustomerPhone,
		DeliveryAddress:    o.DeliveryAddress,
		DeliveryCity:       o.DeliveryCity,
		DeliveryPostalCode: o.DeliveryPostalCode,
		Notes:              o.Notes,
		Lines:              lines,
		TotalAmount:        o.TotalAmount,
		Status:             o.Status.String(),
		ProcessingAt:       o.ProcessingAt,
		ShippedAt:          o.ShippedAt,
		DeliveredAt:        o.DeliveredAt,
		CancelledAt:        o.CancelledAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		Version:            o.Version,
	}
}

// ToOrderListResponse converts a domain Order to OrderListResponse
func ToOrderListResponse(o *order.Order) OrderListResponse {
	return OrderListResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status.String(),
		ItemCount:    o.ItemCount(),
		CreatedAt:    o.CreatedAt,
	}
}
