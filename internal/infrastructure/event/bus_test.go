package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New()),
	}
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("dispatches to subscribed handlers in order", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		var calls []string
		bus.Subscribe(HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			calls = append(calls, "first")
			return nil
		}), "order.created")
		bus.Subscribe(HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			calls = append(calls, "second")
			return nil
		}), "order.created")

		err := bus.Publish(context.Background(), newTestEvent("order.created"))
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("ignores events without handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		err := bus.Publish(context.Background(), newTestEvent("order.status_changed"))
		assert.NoError(t, err)
	})

	t.Run("does not dispatch to handlers of other types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		called := false
		bus.Subscribe(HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			called = true
			return nil
		}), "product.created")

		err := bus.Publish(context.Background(), newTestEvent("order.created"))
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("failing handler does not stop the others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		var reached bool
		bus.Subscribe(HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			return errors.New("handler exploded")
		}), "order.created")
		bus.Subscribe(HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			reached = true
			return nil
		}), "order.created")

		err := bus.Publish(context.Background(), newTestEvent("order.created"))
		require.NoError(t, err)
		assert.True(t, reached)
	})

	t.Run("recovers from a panicking handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		var reached bool
		bus.Subscribe(HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			panic("boom")
		}), "order.created")
		bus.Subscribe(HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			reached = true
			return nil
		}), "order.created")

		err := bus.Publish(context.Background(), newTestEvent("order.created"))
		require.NoError(t, err)
		assert.True(t, reached)
	})

	t.Run("one handler can subscribe to several types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		count := 0
		bus.Subscribe(HandlerFunc(func(ctx context.Context, e shared.DomainEvent) error {
			count++
			return nil
		}), "order.created", "order.status_changed")

		require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))
		require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.status_changed")))
		assert.Equal(t, 2, count)
	})
}
