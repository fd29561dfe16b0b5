package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateFromSubmission(ctx context.Context, sub order.Submission) (*order.Order, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order, expectedVersion int) error {
	args := m.Called(ctx, o, expectedVersion)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[order.Status]int64), args.Error(1)
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	money, err := valueobject.NewMoneyEURFromString("10.00")
	require.NoError(t, err)
	line, err := order.NewLine(uuid.New(), "Test Product", money, 2)
	require.NoError(t, err)

	o, err := order.NewOrder(order.Submission{
		CustomerName:    "Alice Johnson",
		CustomerEmail:   "alice@example.com",
		CustomerPhone:   "+33612345678",
		DeliveryAddress: "12 Rue de la Paix",
		DeliveryCity:    "Paris",
		Items:           []order.SubmissionItem{{ProductID: uuid.New(), Quantity: 2}},
	}, []order.Line{*line})
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestOrderServiceUpdateStatus(t *testing.T) {
	t.Run("applies a valid transition", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewOrderService(repo, nil)
		o := newTestOrder(t)

		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("SaveWithLock", mock.Anything, o, 1).Return(nil)

		resp, err := service.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "processing"})

		require.NoError(t, err)
		assert.Equal(t, "processing", resp.Status)
		assert.NotNil(t, resp.ProcessingAt)
		repo.AssertExpectations(t)
	})

	t.Run("same status does not write", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewOrderService(repo, nil)
		o := newTestOrder(t)

		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		resp, err := service.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "pending"})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid transition does not write", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewOrderService(repo, nil)
		o := newTestOrder(t)

		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := service.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "delivered"})

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		assert.Equal(t, order.StatusPending, o.Status)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewOrderService(repo, nil)
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.UpdateStatus(context.Background(), id, UpdateStatusRequest{Status: "processing"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderServiceList(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewOrderService(repo, nil)
	o := newTestOrder(t)

	repo.On("FindByStatus", mock.Anything, order.StatusPending, mock.AnythingOfType("shared.Filter")).
		Return([]*order.Order{o}, nil)
	repo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	resp, total, err := service.List(context.Background(), OrderListFilter{Status: "pending"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, resp, 1)
	assert.Equal(t, "pending", resp[0].Status)
	assert.Equal(t, 1, resp[0].ItemCount)
}

func TestOrderServiceStatusCounts(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewOrderService(repo, nil)

	repo.On("CountByStatus", mock.Anything).Return(map[order.Status]int64{
		order.StatusPending:   3,
		order.StatusDelivered: 7,
	}, nil)

	resp, err := service.StatusCounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Pending)
	assert.Equal(t, int64(7), resp.Delivered)
	assert.Equal(t, int64(0), resp.Cancelled)
}
