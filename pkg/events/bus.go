// Package events carries the in-process "tasks changed" broadcast fired
// after every task mutation. Delivery is synchronous and best-effort: there
// is no replay, and a signal published while nothing is subscribed is simply
// lost. Listeners re-derive full state when they (re)attach.
package events

import "sync"

// Bus fans a signal out to every subscribed listener.
type Bus struct {
	mu        sync.Mutex
	listeners []func()
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for future publishes. There is no unsubscribe; the
// bus lives as long as the process.
func (b *Bus) Subscribe(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Publish invokes every listener in subscription order on the caller's
// goroutine.
func (b *Bus) Publish() {
	b.mu.Lock()
	fns := make([]func(), len(b.listeners))
	copy(fns, b.listeners)
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
