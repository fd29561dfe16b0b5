package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
)

// OrderService handles back-office order management
type OrderService struct {
	orderRepo      order.Repository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository, eventPublisher shared.EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		eventPublisher: eventPublisher,
	}
}

// GetByID retrieves an order with its lines
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves orders newest first, optionally filtered by status
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	var orders []*order.Order
	var err error
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
		orders, err = s.orderRepo.FindByStatus(ctx, order.Status(filter.Status), domainFilter)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderListResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderListResponse(o)
	}
	return responses, total, nil
}

// UpdateStatus moves an order along its lifecycle. Setting the current
// status again succeeds without touching the database.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	target := order.Status(req.Status)
	if target == o.Status {
		response := ToOrderResponse(o)
		return &response, nil
	}

	expectedVersion := o.Version
	if err := o.ApplyStatus(target); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o, expectedVersion); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// StatusCounts reports the number of orders per status
func (s *OrderService) StatusCounts(ctx context.Context) (*StatusCountsResponse, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &StatusCountsResponse{
		Pending:    counts[order.StatusPending],
		Processing: counts[order.StatusProcessing],
		Shipped:    counts[order.StatusShipped],
		Delivered:  counts[order.StatusDelivered],
		Cancelled:  counts[order.StatusCancelled],
	}, nil
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}
