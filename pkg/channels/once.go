package channels

import "sync"

// Once is a single-assignment result cell. Several goroutines may race to
// Settle it; the first value wins and every later call is ignored.
// Done is closed once a value has been stored.
type Once[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
}

// NewOnce creates an unsettled cell.
func NewOnce[T any]() *Once[T] {
	return &Once[T]{
		done: make(chan struct{}),
	}
}

// Settle stores v if the cell is still empty and reports whether this call won.
func (o *Once[T]) Settle(v T) bool {
	won := false
	o.once.Do(func() {
		o.value = v
		won = true
		close(o.done)
	})

	return won
}

// Done returns a channel closed when the cell settles.
func (o *Once[T]) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the cell settles and returns its value.
func (o *Once[T]) Wait() T {
	<-o.done
	return o.value
}

// Settled reports whether a value has been stored.
func (o *Once[T]) Settled() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}
