package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(event *Event)

// Bus is an in-process publish/subscribe fan-out keyed by event type.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventType]map[int]Handler
	log      zerolog.Logger
}

// NewBus creates an empty event bus.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[EventType]map[int]Handler),
		log:      log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a handler for the given event types and returns
// an unsubscribe function. The unsubscribe function is idempotent.
func (b *Bus) Subscribe(handler Handler, types ...EventType) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	for _, t := range types {
		if b.handlers[t] == nil {
			b.handlers[t] = make(map[int]Handler)
		}
		b.handlers[t][id] = handler
	}

	subscribed := types
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, t := range subscribed {
			delete(b.handlers[t], id)
		}
	}
}

// Publish wraps data in an Event envelope and delivers it to every
// handler subscribed to its type.
func (b *Bus) Publish(module string, data EventData) {
	event := &Event{
		Type:      data.EventType(),
		Timestamp: time.Now().UTC(),
		Module:    module,
		Data:      data,
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.Type]))
	for _, h := range b.handlers[event.Type] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}

	b.log.Debug().
		Str("type", string(event.Type)).
		Str("module", module).
		Int("handlers", len(handlers)).
		Msg("Event published")
}
