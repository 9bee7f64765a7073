package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"bookcat/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventError          = domain.EventError
	EventCatalogChanged = domain.EventCatalogChanged
	EventConfigLoaded   = domain.EventConfigLoaded
	EventConfigSaved    = domain.EventConfigSaved
	EventConfigChanged  = domain.EventConfigChanged
)

// Re-export domain event types
type ErrorEvent = domain.ErrorEvent
type CatalogChangedEvent = domain.CatalogChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
	queue   chan DomainEvent
	done    chan struct{}
}

type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]*subscription
	nextID    uint64
	closed    bool
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	closeOnce sync.Once
	logger    zerolog.Logger
}

// New creates a new event bus. Each subscription gets its own goroutine, so
// a handler sees events in publish order and a slow handler only delays
// itself.
func New(logger zerolog.Logger) EventBus {
	b := &bus{
		handlers:  make(map[EventType][]*subscription),
		eventChan: make(chan DomainEvent, 256),
		logger:    logger.With().Str("component", "eventbus").Logger(),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers. Events are dropped when the
// queue is full or the bus is closed.
func (b *bus) Publish(event DomainEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.logger.Debug().Str("event", string(event.Type())).Msg("bus closed, dropping event")
		return
	}
	b.logger.Debug().Str("event", string(event.Type())).Msg("publishing")

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn().Str("event", string(event.Type())).Msg("event queue full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	b.nextID++
	sub := &subscription{
		id:      b.nextID,
		handler: handler,
		queue:   make(chan DomainEvent, 64),
		done:    make(chan struct{}),
	}
	b.handlers[eventType] = append(b.handlers[eventType], sub)

	b.wg.Add(1)
	go b.deliver(sub)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == sub.id {
					b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
					close(sub.done)
					break
				}
			}
		})
	}
}

// Close stops accepting events, delivers the ones already queued and waits
// for every handler to return
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		close(b.eventChan)
		b.mu.Unlock()

		b.wg.Wait()
	})
}

func (b *bus) dispatch() {
	defer b.wg.Done()

	for event := range b.eventChan {
		b.mu.RLock()
		subs := make([]*subscription, len(b.handlers[event.Type()]))
		copy(subs, b.handlers[event.Type()])
		b.mu.RUnlock()

		for _, s := range subs {
			select {
			case s.queue <- event:
			case <-s.done:
			}
		}
	}

	// Let every subscriber drain what it was handed, then stop
	b.mu.Lock()
	defer b.mu.Unlock()
	for eventType, subs := range b.handlers {
		for _, s := range subs {
			close(s.queue)
		}
		delete(b.handlers, eventType)
	}
}

func (b *bus) deliver(s *subscription) {
	defer b.wg.Done()

	for {
		select {
		case event, ok := <-s.queue:
			if !ok {
				return
			}
			b.run(s.handler, event)
		case <-s.done:
			return
		}
	}
}

func (b *bus) run(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("event", string(event.Type())).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("event handler panic")
		}
	}()
	h(event)
}
