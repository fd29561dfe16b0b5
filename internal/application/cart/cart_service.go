package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/cart"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/shared"
)

// CartService handles session-scoped cart operations. Every mutation is
// persisted to the store before it returns, so a subsequent read on the
// same session observes the change.
type CartService struct {
	store       cart.Store
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
	}
}

// Get retrieves the cart for a session. A session without a stored cart
// gets an empty one.
func (s *CartService) Get(ctx context.Context, sessionID string) (*CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// AddItem adds a product to the cart, merging with an existing line for
// the same product. The requested quantity is validated against current
// stock and the line snapshot is refreshed from the live product.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductUnavailable
		}
		return nil, err
	}

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := c.AddItem(product, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// UpdateQuantity sets the quantity of an existing line. Zero removes the
// line; a quantity above the snapshot stock is rejected without change.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateQuantity(productID, quantity); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// RemoveItem removes a line from the cart. Removing an absent product is
// not an error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(productID)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// Clear empties the cart for a session
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *CartService) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := s.store.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return cart.NewCart(sessionID), nil
		}
		return nil, err
	}
	return c, nil
}
