// Package ringbuf provides a fixed-capacity circular buffer that keeps the
// most recent items written to it.
package ringbuf

import "sync"

// Ring is a thread-safe circular buffer. Once full, each write evicts the
// oldest items so the ring always holds the last Cap() items seen.
type Ring[T any] struct {
	items []T
	head  int // Next write position
	count int // Number of valid items (up to capacity)
	mu    sync.RWMutex
}

// New creates a ring with the given capacity.
// Values <= 0 are normalized to 1.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}

	return &Ring[T]{
		items: make([]T, capacity),
		head:  0,
		count: 0,
		mu:    sync.RWMutex{},
	}
}

// Write appends items to the ring, overwriting the oldest if full.
// Only the trailing Cap() items of a single oversized write are copied.
func (r *Ring[T]) Write(items []T) {
	if len(items) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity := len(r.items)
	if len(items) > capacity {
		items = items[len(items)-capacity:]
	}

	// Copy in at most two segments: up to the end of the slice, then wrap.
	n := copy(r.items[r.head:], items)
	if n < len(items) {
		copy(r.items, items[n:])
	}

	r.head = (r.head + len(items)) % capacity
	r.count = min(r.count+len(items), capacity)
}

// Push appends a single item.
func (r *Ring[T]) Push(item T) {
	r.Write([]T{item})
}

// Last returns up to n most recent items in chronological order.
// Returns nil if the ring is empty or n <= 0.
func (r *Ring[T]) Last(n int) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 || n <= 0 {
		return nil
	}

	n = min(n, r.count)

	result := make([]T, n)
	capacity := len(r.items)

	// head points to the next write position, so the last n start at head-n.
	start := (r.head - n + capacity) % capacity

	for i := range n {
		result[i] = r.items[(start+i)%capacity]
	}

	return result
}

// All returns every stored item in chronological order.
func (r *Ring[T]) All() []T {
	return r.Last(r.Len())
}

// Len returns the number of valid items in the ring.
func (r *Ring[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.count
}

// Cap returns the ring's capacity.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Reset empties the ring.
func (r *Ring[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.head = 0
	r.count = 0
}
