package mailbox

import "sync"

// Mailbox is a single-slot buffer where the latest item always wins.
// It is NOT a queue. It holds at most one pending item.
// Put() overwrites any existing item and never blocks.
type Mailbox[T any] struct {
	mu    sync.Mutex
	item  *T
	ready chan struct{}
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{ready: make(chan struct{}, 1)}
}

// Put stores an item in the mailbox, replacing any existing one.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	m.item = &v
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Ready is signalled after a Put. A receive does not take the item.
func (m *Mailbox[T]) Ready() <-chan struct{} {
	return m.ready
}

// TryTake returns the item if present, or nil if empty. It also clears a
// pending Ready signal so a taken item never wakes a receiver twice.
// It never blocks.
func (m *Mailbox[T]) TryTake() *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.ready:
	default:
	}

	if m.item == nil {
		return nil
	}

	v := m.item
	m.item = nil
	return v
}
