package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(BoxesOpened, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := bus.Publish(context.Background(), NewBoxesOpenedEvent(2, "buyer-1", 3, 9))
	require.NoError(t, err)

	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(BoxesOpenedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, uint32(2), payload.Option)
	assert.Equal(t, "buyer-1", payload.Buyer)
	assert.Equal(t, uint32(3), payload.BoxesPurchased)
	assert.Equal(t, uint64(9), payload.ItemsMinted)
}

func TestMemoryBusNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), NewWarningEvent("probability table overflows", "")))
}

func TestMemoryBusCollectsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(Warning, func(context.Context, Event) error { return errors.New("handler one") })
	bus.Subscribe(Warning, func(context.Context, Event) error { return nil })

	err := bus.Publish(context.Background(), NewWarningEvent("msg", "acct"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler one")
}
