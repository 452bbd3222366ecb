package pubsub

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestBroadcasterDeliversToAllSubscribers(t *testing.T) {
	b := NewBroadcaster()

	var first, second atomic.Int32
	b.Subscribe(func() { first.Add(1) })
	b.Subscribe(func() { second.Add(1) })

	b.Publish()

	waitFor(t, func() bool { return first.Load() == 1 && second.Load() == 1 })
}

func TestBroadcasterCancelStopsDelivery(t *testing.T) {
	b := NewBroadcaster()

	var calls atomic.Int32
	cancel := b.Subscribe(func() { calls.Add(1) })

	b.Publish()
	waitFor(t, func() bool { return calls.Load() == 1 })

	cancel()
	cancel() // second cancel must be a no-op
	b.Publish()

	time.Sleep(50 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("subscriber called %d times after cancel, want 1", calls.Load())
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}
