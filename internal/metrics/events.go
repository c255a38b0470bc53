package metrics

import (
	"context"
	"strconv"

	"github.com/babilu-online/lootbox-contract/internal/event"
)

// EventCollector subscribes to engine events and records business metrics.
type EventCollector struct{}

// NewEventCollector creates a new event metrics collector
func NewEventCollector() *EventCollector {
	return &EventCollector{}
}

// Register subscribes the collector's handlers on the bus.
func (c *EventCollector) Register(bus event.Bus) {
	bus.Subscribe(event.BoxesOpened, c.handleBoxesOpened)
	bus.Subscribe(event.Warning, c.handleWarning)
}

func (c *EventCollector) handleBoxesOpened(_ context.Context, e event.Event) error {
	payload, ok := e.Payload.(event.BoxesOpenedPayloadV1)
	if !ok {
		EventHandlerErrors.WithLabelValues(string(e.Type)).Inc()
		return nil
	}

	option := strconv.FormatUint(uint64(payload.Option), 10)
	BoxesOpened.WithLabelValues(option).Add(float64(payload.BoxesPurchased))
	ItemsMinted.WithLabelValues(option).Add(float64(payload.ItemsMinted))
	EventsPublished.WithLabelValues(string(e.Type)).Inc()
	return nil
}

func (c *EventCollector) handleWarning(_ context.Context, e event.Event) error {
	Warnings.Inc()
	EventsPublished.WithLabelValues(string(e.Type)).Inc()
	return nil
}
