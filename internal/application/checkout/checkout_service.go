package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	orderapp "github.com/shopfront/backend/internal/application/order"
	"github.com/shopfront/backend/internal/domain/cart"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
)

// SubmissionGuard serializes checkout attempts per session. Acquire
// returns false when another submission for the same session is still
// in flight.
type SubmissionGuard interface {
	Acquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

// CheckoutService turns a session cart plus a checkout form into a
// placed order. The cart is cleared only after the order is persisted.
type CheckoutService struct {
	store          cart.Store
	orderRepo      order.Repository
	guard          SubmissionGuard
	eventPublisher shared.EventPublisher
	validate       *validator.Validate
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	store cart.Store,
	orderRepo order.Repository,
	guard SubmissionGuard,
	eventPublisher shared.EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		store:          store,
		orderRepo:      orderRepo,
		guard:          guard,
		eventPublisher: eventPublisher,
		validate:       validator.New(),
	}
}

// Submit validates the form, checks the cart and atomically creates the
// order. Validation failures report the first offending field by its
// JSON name; duplicate submissions for the same session are rejected
// while the first one is in flight.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, req CheckoutRequest) (*CheckoutResponse, error) {
	if err := s.validateForm(&req); err != nil {
		return nil, err
	}

	c, err := s.store.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrEmptyCart
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	acquired, err := s.guard.Acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.ErrSubmissionInFlight
	}
	defer func() { _ = s.guard.Release(ctx, sessionID) }()

	sub := order.Submission{
		CustomerName:       req.CustomerName,
		CustomerEmail:      strings.ToLower(req.CustomerEmail),
		CustomerPhone:      req.CustomerPhone,
		DeliveryAddress:    req.DeliveryAddress,
		DeliveryCity:       req.DeliveryCity,
		DeliveryPostalCode: req.DeliveryPostalCode,
		Notes:              req.Notes,
		Items:              make([]order.SubmissionItem, 0, len(c.Lines)),
	}
	for i := range c.Lines {
		sub.Items = append(sub.Items, order.SubmissionItem{
			ProductID: c.Lines[i].ProductID,
			Quantity:  c.Lines[i].Quantity,
		})
	}

	o, err := s.orderRepo.CreateFromSubmission(ctx, sub)
	if err != nil {
		return nil, err
	}

	// The cart survives a failed submission; only success clears it.
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	return &CheckoutResponse{Order: orderapp.ToOrderResponse(o)}, nil
}

// validateForm checks fields in a fixed order and stops at the first
// failure.
func (s *CheckoutService) validateForm(req *CheckoutRequest) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.DeliveryAddress = strings.TrimSpace(req.DeliveryAddress)
	req.DeliveryCity = strings.TrimSpace(req.DeliveryCity)
	req.DeliveryPostalCode = strings.TrimSpace(req.DeliveryPostalCode)

	if len(req.CustomerName) < 2 {
		return shared.NewValidationError("customer_name", "Name must be at least 2 characters")
	}
	if err := s.validate.Var(req.CustomerEmail, "required,email"); err != nil {
		return shared.NewValidationError("customer_email", "A valid email address is required")
	}
	if len(req.CustomerPhone) < 10 {
		return shared.NewValidationError("customer_phone", "Phone number must be at least 10 characters")
	}
	if len(req.DeliveryAddress) < 5 {
		return shared.NewValidationError("delivery_address", "Delivery address must be at least 5 characters")
	}
	if len(req.DeliveryCity) < 2 {
		return shared.NewValidationError("delivery_city", "City must be at least 2 characters")
	}

	return nil
}

func (s *CheckoutService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}
