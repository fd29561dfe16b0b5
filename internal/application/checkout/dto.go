package checkout

import "github.com/shopfront/backend/internal/application/order"

// CheckoutRequest is the customer-facing checkout form. Validation is
// performed field by field so the first failing field is reported with
// its JSON name.
type CheckoutRequest struct {
	CustomerName       string `json:"customer_name"`
	CustomerEmail      string `json:"customer_email"`
	CustomerPhone      string `json:"customer_phone"`
	DeliveryAddress    string `json:"delivery_address"`
	DeliveryCity       string `json:"delivery_city"`
	DeliveryPostalCode string `json:"delivery_postal_code"`
	Notes              string `json:"notes"`
}

// CheckoutResponse wraps the created order
type CheckoutResponse struct {
	Order order.OrderResponse `json:"order"`
}
