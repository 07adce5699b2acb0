// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/numfield/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed; dispatch then stops for that event.
type Handler func(e Event) bool

// Subscription identifies a registered handler for Unsubscribe.
type Subscription struct {
	eventType Type
	id        uint64
}

type entry struct {
	id      uint64
	handler Handler
}

// Manager handles event subscriptions and dispatching. Handlers run
// synchronously on the dispatching goroutine.
type Manager struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Type][]entry
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]entry),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], entry{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "Event Manager: Handler subscribed to type %v", eventType)
	return Subscription{eventType: eventType, id: m.nextID}
}

// Unsubscribe removes a handler registered by Subscribe. Unknown subscriptions are ignored.
func (m *Manager) Unsubscribe(sub Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.handlers[sub.eventType]
	for i, e := range list {
		if e.id == sub.id {
			kept := make([]entry, 0, len(list)-1)
			kept = append(kept, list[:i]...)
			m.handlers[sub.eventType] = append(kept, list[i+1:]...)
			return
		}
	}
}

// Dispatch sends an event to all registered handlers for its type.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	event := Event{
		Type: eventType,
		Data: data,
	}

	// Copy under the read lock so handlers may subscribe or unsubscribe while running.
	m.mu.RLock()
	handlers := make([]entry, len(m.handlers[eventType]))
	copy(handlers, m.handlers[eventType])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	logger.DebugTagf("event", "Event Manager: Dispatching %v to %d handler(s)", eventType, len(handlers))
	for _, e := range handlers {
		if e.handler(event) {
			break
		}
	}
}
