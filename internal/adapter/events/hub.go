// Package events fans committed seat changes out to observers: in-process
// handlers, other service instances via Redis, and an optional AMQP exchange.
package events

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

const DefaultHandlerBuffer = 64

type Handler func(domain.SeatEvent)

type subscription struct {
	name    string
	events  chan domain.SeatEvent
	dropped atomic.Uint64
}

// Hub delivers events to registered handlers. Each handler has its own queue
// and goroutine, so a slow handler only delays itself; when its queue is full
// the event is dropped for that handler.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription
	nextID uint64
	buffer int
	logger *slog.Logger
}

func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultHandlerBuffer
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Hub{
		subs:   make(map[uint64]*subscription),
		buffer: buffer,
		logger: logger,
	}
}

// Register starts delivering events to handler until the returned function
// is called.
func (h *Hub) Register(name string, handler Handler) (unregister func()) {
	sub := &subscription{
		name:   name,
		events: make(chan domain.SeatEvent, h.buffer),
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = sub
	h.mu.Unlock()

	go func() {
		for ev := range sub.events {
			handler(ev)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub.events)
			}
			h.mu.Unlock()

			if n := sub.dropped.Load(); n > 0 {
				h.logger.Info("subscriber removed", slog.String("name", name), slog.Uint64("dropped", n))
			}
		})
	}
}

func (h *Hub) Publish(ctx context.Context, event domain.SeatEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		select {
		case sub.events <- event:
		default:
			sub.dropped.Add(1)
			h.logger.Debug("subscriber queue full, dropping event",
				slog.String("name", sub.name),
				slog.Int64("seat_id", event.SeatID),
				slog.Int64("version", event.Version),
			)
		}
	}

	return nil
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// Close unregisters every handler.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.events)
	}
}
