package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Common event types
const (
	// BoxesOpened is published after every successful box-opening call.
	BoxesOpened Type = "lootbox.boxes_opened"

	// Warning is an advisory channel for configuration hazards and misuse
	// detection. The minting path never publishes it.
	Warning Type = "lootbox.warning"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// BoxesOpenedPayloadV1 is the typed payload for box-opening summary events
type BoxesOpenedPayloadV1 struct {
	Option         uint32 `json:"option"`
	Buyer          string `json:"buyer"`
	BoxesPurchased uint32 `json:"boxes_purchased"`
	ItemsMinted    uint64 `json:"items_minted"`
	Timestamp      int64  `json:"timestamp"`
}

// WarningPayloadV1 is the typed payload for advisory warnings
type WarningPayloadV1 struct {
	Message   string `json:"message"`
	Account   string `json:"account,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// NewBoxesOpenedEvent creates a new box-opening summary event
func NewBoxesOpenedEvent(option uint32, buyer string, boxesPurchased uint32, itemsMinted uint64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BoxesOpened,
		Payload: BoxesOpenedPayloadV1{
			Option:         option,
			Buyer:          buyer,
			BoxesPurchased: boxesPurchased,
			ItemsMinted:    itemsMinted,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewWarningEvent creates a new advisory warning event
func NewWarningEvent(message, account string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Warning,
		Payload: WarningPayloadV1{
			Message:   message,
			Account:   account,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
