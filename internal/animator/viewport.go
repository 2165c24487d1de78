package animator

import "sync"

// Viewport reports changes to the logical size and pixel ratio of the
// drawing area. Subscribe returns a function that removes the subscription.
type Viewport interface {
	Subscribe(fn func(w, h, dpr float64)) (unsubscribe func())
}

// Broadcaster is a Viewport fed by the host whenever its window or terminal
// changes size.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]func(w, h, dpr float64)
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(w, h, dpr float64))}
}

func (b *Broadcaster) Subscribe(fn func(w, h, dpr float64)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish notifies every subscriber. Subscribers run outside the lock and
// may unsubscribe during the call.
func (b *Broadcaster) Publish(w, h, dpr float64) {
	b.mu.Lock()
	fns := make([]func(w, h, dpr float64), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(w, h, dpr)
	}
}

// Len reports the number of live subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
