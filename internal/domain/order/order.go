package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the status of a placed order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a known order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks the allowed-edge table. Cancellation is
// reachable from every non-terminal status; the forward path is
// pending -> processing -> shipped -> delivered.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered || target == StatusCancelled
	case StatusDelivered, StatusCancelled:
		return false
	}
	return false
}

// Line is a denormalized snapshot of one ordered product. Name and price
// are copied at creation time so later catalog edits do not alter the
// order. ProductID is nullable because the product may be deleted after
// the order was placed.
type Line struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	ProductPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity     int             `gorm:"not null"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "order_items"
}

// NewLine creates an order line from a priced product snapshot
func NewLine(productID uuid.UUID, productName string, unitPrice valueobject.Money, quantity int) (*Line, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	id := productID
	return &Line{
		ID:           uuid.New(),
		ProductID:    &id,
		ProductName:  productName,
		ProductPrice: unitPrice.Amount(),
		Quantity:     quantity,
		Subtotal:     unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:    time.Now(),
	}, nil
}

// SubmissionItem is one requested (product, quantity) pair
type SubmissionItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// Submission is the customer-supplied payload used to create an order.
// It carries no prices: pricing and stock authority belong to the
// order-creation transaction.
type Submission struct {
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	DeliveryAddress    string
	DeliveryCity       string
	DeliveryPostalCode string
	Notes              string
	Items              []SubmissionItem
}

// Validate checks the structural invariants of a submission
func (s *Submission) Validate() error {
	if len(s.Items) == 0 {
		return shared.ErrEmptyCart
	}
	for _, item := range s.Items {
		if item.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if item.Quantity < 1 {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
	}
	return nil
}

// Order represents a placed order aggregate root. Customer and delivery
// fields are denormalized from the submission; TotalAmount is computed
// once at creation and never recomputed from live product prices.
type Order struct {
	shared.BaseAggregateRoot
	CustomerName       string          `gorm:"type:varchar(200);not null"`
	CustomerEmail      string          `gorm:"type:varchar(320);not null"`
	CustomerPhone      string          `gorm:"type:varchar(50);not null"`
	DeliveryAddress    string          `gorm:"type:varchar(500);not null"`
	DeliveryCity       string          `gorm:"type:varchar(100);not null"`
	DeliveryPostalCode string          `gorm:"type:varchar(20)"`
	Notes              string          `gorm:"type:text"`
	Lines              []Line          `gorm:"foreignKey:OrderID"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status             Status          `gorm:"type:varchar(20);not null;default:'pending'"`
	ProcessingAt       *time.Time
	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order from a submission and its priced
// lines. The lines must already carry authoritative prices; the total is
// the exact decimal sum of their subtotals.
func NewOrder(sub Submission, lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.ErrEmptyCart
	}

	order := &Order{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		CustomerName:       sub.CustomerName,
		CustomerEmail:      sub.CustomerEmail,
		CustomerPhone:      sub.CustomerPhone,
		DeliveryAddress:    sub.DeliveryAddress,
		DeliveryCity:       sub.DeliveryCity,
		DeliveryPostalCode: sub.DeliveryPostalCode,
		Notes:              sub.Notes,
		Status:             StatusPending,
	}

	total := decimal.Zero
	for idx := range lines {
		if lines[idx].Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		lines[idx].OrderID = order.ID
		total = total.Add(lines[idx].Subtotal)
	}
	order.Lines = lines
	order.TotalAmount = total

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// ApplyStatus transitions the order to the target status. Applying the
// current status is an idempotent no-op. Any edge not in the
// allowed-edge table fails with INVALID_TRANSITION and leaves the order
// untouched.
func (o *Order) ApplyStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if target == o.Status {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	previous := o.Status
	now := time.Now()
	o.Status = target
	o.UpdatedAt = now
	o.IncrementVersion()

	switch target {
	case StatusProcessing:
		o.ProcessingAt = &now
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// IsTerminal returns true if the order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for idx := range o.Lines {
		total += o.Lines[idx].Quantity
	}
	return total
}

// GetTotalAmountMoney returns the order total as Money
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(o.TotalAmount)
}
