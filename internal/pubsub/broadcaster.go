// Package pubsub carries wishlist change events between store
// instances living in the same process, so a mutation through one
// instance becomes visible to every other without a reload.
package pubsub

import "sync"

// Broadcaster fans out change signals to subscribers. One instance is
// created at process start and injected into every wishlist store;
// tests create and drop their own.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func())}
}

// Subscribe registers fn and returns its cancel func. Cancel is safe
// to call more than once.
func (b *Broadcaster) Subscribe(fn func()) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers the change signal to every subscriber. Delivery is
// deferred to a separate goroutine so a subscriber reacting to the
// event never re-enters a store mutation that is still mid-flight.
func (b *Broadcaster) Publish() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	go func() {
		for _, fn := range fns {
			fn()
		}
	}()
}
