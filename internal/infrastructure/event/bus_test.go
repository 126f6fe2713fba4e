package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
	panic    bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panic {
		panic("handler exploded")
	}
	h.received = append(h.received, event)
	if h.fail {
		return errors.New("handler failed")
	}
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newEvent(eventType string) shared.DomainEvent {
	evt := shared.NewBaseDomainEvent(eventType, "order", uuid.New())
	return &evt
}

func TestPublishRoutesByEventType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	paid := &recordingHandler{types: []string{"order.paid"}}
	cancelled := &recordingHandler{types: []string{"order.cancelled"}}
	bus.Subscribe(paid)
	bus.Subscribe(cancelled)

	require.NoError(t, bus.Publish(context.Background(), newEvent("order.paid")))

	assert.Len(t, paid.received, 1)
	assert.Empty(t, cancelled.received)
}

func TestCatchAllHandlerReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	all := &recordingHandler{}
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(), newEvent("order.paid"), newEvent("product.created")))

	assert.Len(t, all.received, 2)
}

func TestFailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"order.paid"}, fail: true}
	healthy := &recordingHandler{types: []string{"order.paid"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newEvent("order.paid")))

	assert.Len(t, healthy.received, 1)
}

func TestPanickingHandlerIsRecovered(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{types: []string{"order.paid"}, panic: true}
	healthy := &recordingHandler{types: []string{"order.paid"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newEvent("order.paid")))

	assert.Len(t, healthy.received, 1)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"order.paid"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newEvent("order.paid")))

	assert.Empty(t, handler.received)
}
