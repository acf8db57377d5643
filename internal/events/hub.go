// Package events routes ledger-emitted events to application refresh
// callbacks.
package events

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/fundconn/fundconn/internal/ledger"
)

// Handler consumes a dispatched ledger event.
type Handler func(ev ledger.Event)

// Hub is an observer registry keyed by event name. At most one listener
// is active per event name: subscribing again replaces the previous
// listener, so registration stays idempotent under re-rendering
// consumers.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]subscription
	logger *slog.Logger
}

type subscription struct {
	id string
	fn Handler
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Hub{
		subs:   make(map[string]subscription),
		logger: logger,
	}
}

// Subscribe registers fn for the named event, superseding any existing
// listener for that name. The returned token removes the registration;
// it is a no-op once the listener has been superseded.
func (h *Hub) Subscribe(name string, fn Handler) (unsubscribe func()) {
	id := uuid.NewString()

	h.mu.Lock()
	if _, exists := h.subs[name]; exists {
		h.logger.Debug("replacing event listener", "event", name)
	}
	h.subs[name] = subscription{id: id, fn: fn}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[name]; ok && sub.id == id {
			delete(h.subs, name)
		}
	}
}

// Active reports whether a listener is registered for the named event.
func (h *Hub) Active(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.subs[name]
	return ok
}

// Dispatch delivers an event to its listener, if any.
func (h *Hub) Dispatch(ev ledger.Event) {
	h.mu.Lock()
	sub, ok := h.subs[ev.Name]
	h.mu.Unlock()

	if !ok {
		return
	}
	sub.fn(ev)
}

// Run pumps events from the channel into the registry until the channel
// closes or ctx is done.
func (h *Hub) Run(ctx context.Context, events <-chan ledger.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.Dispatch(ev)
		}
	}
}
