package services

import (
	"sync"

	"github.com/custodia-labs/inscript/internal/core/domain"
)

// defaultSubscriberBuffer is the per-subscriber event buffer.
const defaultSubscriberBuffer = 16

// changeBroker fans change events out to subscribers.
// Publishing never blocks: a subscriber with a full buffer misses the event,
// which is fine because any event means "re-query".
type changeBroker struct {
	mu     sync.Mutex
	subs   map[int]chan domain.ChangeEvent
	nextID int
	buffer int
}

func newChangeBroker(buffer int) *changeBroker {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &changeBroker{
		subs:   make(map[int]chan domain.ChangeEvent),
		buffer: buffer,
	}
}

// subscribe registers a new subscriber.
func (b *changeBroker) subscribe() (<-chan domain.ChangeEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan domain.ChangeEvent, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish delivers event to every subscriber that has room for it.
func (b *changeBroker) publish(event domain.ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// count returns the number of active subscribers.
func (b *changeBroker) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
