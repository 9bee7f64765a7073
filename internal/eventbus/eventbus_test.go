package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcat/internal/domain"
)

func TestPublishReachesSubscribersOfThatType(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	got := make(chan CatalogChangedEvent, 1)
	b.Subscribe(EventCatalogChanged, func(e DomainEvent) {
		got <- e.(CatalogChangedEvent)
	})
	b.Subscribe(EventConfigChanged, func(e DomainEvent) {
		t.Errorf("unexpected delivery of %s", e.Type())
	})

	b.Publish(CatalogChangedEvent{Entity: domain.EntityBook, Mutation: domain.MutationDelete, ID: 7})

	select {
	case e := <-got:
		assert.Equal(t, domain.EntityBook, e.Entity)
		assert.Equal(t, 7, e.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	var kept, removed atomic.Int32
	unsubscribe := b.Subscribe(EventError, func(DomainEvent) { removed.Add(1) })
	b.Subscribe(EventError, func(DomainEvent) { kept.Add(1) })
	unsubscribe()

	b.Publish(ErrorEvent{Message: "boom"})

	require.Eventually(t, func() bool { return kept.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(0), removed.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	var calls atomic.Int32
	b.Subscribe(EventConfigChanged, func(DomainEvent) {
		calls.Add(1)
		panic("handler exploded")
	})

	b.Publish(ConfigChangedEvent{PageSize: 20})
	b.Publish(ConfigChangedEvent{PageSize: 30})

	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New(zerolog.Nop())
	b.Close()
	assert.NotPanics(t, b.Close)
}

func TestHandlerSeesEventsInPublishOrder(t *testing.T) {
	b := New(zerolog.Nop())

	var got []int
	b.Subscribe(EventConfigChanged, func(e DomainEvent) {
		got = append(got, e.(ConfigChangedEvent).PageSize)
	})

	var want []int
	for size := 5; size <= 100; size += 5 {
		b.Publish(ConfigChangedEvent{PageSize: size})
		want = append(want, size)
	}
	b.Close()

	assert.Equal(t, want, got)
}

func TestCloseDeliversQueuedEventsAndWaitsForHandlers(t *testing.T) {
	b := New(zerolog.Nop())

	var finished atomic.Int32
	b.Subscribe(EventConfigChanged, func(DomainEvent) {
		time.Sleep(20 * time.Millisecond)
		finished.Add(1)
	})

	b.Publish(ConfigChangedEvent{PageSize: 10})
	b.Publish(ConfigChangedEvent{PageSize: 15})
	b.Publish(ConfigChangedEvent{PageSize: 20})
	b.Close()

	assert.Equal(t, int32(3), finished.Load())
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(zerolog.Nop())

	var calls atomic.Int32
	b.Subscribe(EventError, func(DomainEvent) { calls.Add(1) })
	b.Close()

	assert.NotPanics(t, func() { b.Publish(ErrorEvent{Message: "late"}) })
	assert.Equal(t, int32(0), calls.Load())
}
