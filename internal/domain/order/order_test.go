package order

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
)

func testSubmission() Submission {
	return Submission{
		CustomerName:       "Alice Johnson",
		CustomerEmail:      "alice@example.com",
		CustomerPhone:      "+33612345678",
		DeliveryAddress:    "12 Rue de la Paix",
		DeliveryCity:       "Paris",
		DeliveryPostalCode: "75002",
		Items: []SubmissionItem{
			{ProductID: uuid.New(), Quantity: 2},
		},
	}
}

func testLine(t *testing.T, price string, quantity int) Line {
	t.Helper()
	money, err := valueobject.NewMoneyEURFromString(price)
	require.NoError(t, err)
	line, err := NewLine(uuid.New(), "Test Product", money, quantity)
	require.NoError(t, err)
	return *line
}

func TestStatusCanTransitionTo(t *testing.T) {
	all := []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

	allowed := map[Status][]Status{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered, StatusCancelled},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("archived").IsValid())
	assert.False(t, Status("").IsValid())
	assert.False(t, Status("Pending").IsValid(), "statuses are lowercase")
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total from line subtotals", func(t *testing.T) {
		lines := []Line{
			testLine(t, "19.99", 2),
			testLine(t, "5.50", 3),
		}

		o, err := NewOrder(testSubmission(), lines)
		require.NoError(t, err)

		assert.Equal(t, StatusPending, o.Status)
		assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("56.48")),
			"expected 56.48, got %s", o.TotalAmount)
		assert.Equal(t, 2, o.ItemCount())
		assert.Equal(t, 5, o.TotalQuantity())
	})

	t.Run("assigns order ID to every line", func(t *testing.T) {
		lines := []Line{testLine(t, "10.00", 1), testLine(t, "20.00", 1)}

		o, err := NewOrder(testSubmission(), lines)
		require.NoError(t, err)

		for _, line := range o.Lines {
			assert.Equal(t, o.ID, line.OrderID)
		}
	})

	t.Run("rejects empty lines", func(t *testing.T) {
		_, err := NewOrder(testSubmission(), nil)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "EMPTY_CART", domainErr.Code)
	})

	t.Run("copies customer and delivery fields", func(t *testing.T) {
		sub := testSubmission()
		o, err := NewOrder(sub, []Line{testLine(t, "10.00", 1)})
		require.NoError(t, err)

		assert.Equal(t, sub.CustomerName, o.CustomerName)
		assert.Equal(t, sub.CustomerEmail, o.CustomerEmail)
		assert.Equal(t, sub.DeliveryAddress, o.DeliveryAddress)
		assert.Equal(t, sub.DeliveryCity, o.DeliveryCity)
		assert.Equal(t, sub.DeliveryPostalCode, o.DeliveryPostalCode)
	})

	t.Run("raises created event", func(t *testing.T) {
		o, err := NewOrder(testSubmission(), []Line{testLine(t, "10.00", 1)})
		require.NoError(t, err)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderCreated, events[0].EventType())
	})
}

func TestNewLine(t *testing.T) {
	t.Run("computes subtotal", func(t *testing.T) {
		money, err := valueobject.NewMoneyEURFromString("7.25")
		require.NoError(t, err)

		line, err := NewLine(uuid.New(), "Widget", money, 4)
		require.NoError(t, err)

		assert.True(t, line.Subtotal.Equal(decimal.RequireFromString("29.00")))
		require.NotNil(t, line.ProductID)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewLine(uuid.New(), "Widget", valueobject.ZeroEUR(), 0)
		assert.Error(t, err)
	})

	t.Run("rejects nil product ID", func(t *testing.T) {
		_, err := NewLine(uuid.Nil, "Widget", valueobject.ZeroEUR(), 1)
		assert.Error(t, err)
	})
}

func TestOrderApplyStatus(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		t.Helper()
		o, err := NewOrder(testSubmission(), []Line{testLine(t, "10.00", 1)})
		require.NoError(t, err)
		o.ClearDomainEvents()
		return o
	}

	t.Run("walks the full forward path", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.ApplyStatus(StatusProcessing))
		assert.Equal(t, StatusProcessing, o.Status)
		assert.NotNil(t, o.ProcessingAt)

		require.NoError(t, o.ApplyStatus(StatusShipped))
		assert.NotNil(t, o.ShippedAt)

		require.NoError(t, o.ApplyStatus(StatusDelivered))
		assert.NotNil(t, o.DeliveredAt)
		assert.True(t, o.IsTerminal())
	})

	t.Run("same status is an idempotent no-op", func(t *testing.T) {
		o := newOrder(t)
		version := o.GetVersion()

		require.NoError(t, o.ApplyStatus(StatusPending))

		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, version, o.GetVersion())
		assert.Empty(t, o.GetDomainEvents())
	})

	t.Run("cancel from shipped is allowed", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ApplyStatus(StatusProcessing))
		require.NoError(t, o.ApplyStatus(StatusShipped))

		require.NoError(t, o.ApplyStatus(StatusCancelled))
		assert.NotNil(t, o.CancelledAt)
	})

	t.Run("invalid transition leaves order untouched", func(t *testing.T) {
		o := newOrder(t)
		version := o.GetVersion()

		err := o.ApplyStatus(StatusDelivered)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, version, o.GetVersion())
		assert.Nil(t, o.DeliveredAt)
	})

	t.Run("terminal statuses reject everything", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ApplyStatus(StatusCancelled))

		err := o.ApplyStatus(StatusProcessing)
		require.Error(t, err)
		err = o.ApplyStatus(StatusPending)
		require.Error(t, err)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		o := newOrder(t)

		err := o.ApplyStatus(Status("returned"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("records a status changed event", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.ApplyStatus(StatusProcessing))

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(*OrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, StatusPending, changed.PreviousStatus)
		assert.Equal(t, StatusProcessing, changed.NewStatus)
	})
}

func TestSubmissionValidate(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		sub := testSubmission()
		assert.NoError(t, sub.Validate())
	})

	t.Run("no items", func(t *testing.T) {
		sub := testSubmission()
		sub.Items = nil

		err := sub.Validate()
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "EMPTY_CART", domainErr.Code)
	})

	t.Run("zero quantity item", func(t *testing.T) {
		sub := testSubmission()
		sub.Items[0].Quantity = 0
		assert.Error(t, sub.Validate())
	})

	t.Run("nil product ID", func(t *testing.T) {
		sub := testSubmission()
		sub.Items[0].ProductID = uuid.Nil
		assert.Error(t, sub.Validate())
	})
}
