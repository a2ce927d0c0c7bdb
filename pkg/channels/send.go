package channels

import "time"

// SendNonBlock delivers msg only if ch can take it right now. It is meant for
// producers, such as a launch reporting progress, that must never wait on a
// slow consumer. A full channel yields ErrChannelFull and a closed one
// ErrChannelClosed.
func SendNonBlock[T any](ch chan<- T, msg T) error {
	return send(ch, msg, nil)
}

// SendWithTimeout waits up to timeout for ch to take msg, then gives up with
// ErrChannelTimeout. A closed channel yields ErrChannelClosed.
func SendWithTimeout[T any](ch chan<- T, msg T, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	return send(ch, msg, timer.C)
}

// send recovers the panic from a closed channel. A nil expired means the
// send must not block at all.
func send[T any](ch chan<- T, msg T, expired <-chan time.Time) (err error) {
	defer func() {
		if recover() != nil {
			err = ErrChannelClosed
		}
	}()

	if expired == nil {
		select {
		case ch <- msg:
			return nil
		default:
			return ErrChannelFull
		}
	}

	select {
	case ch <- msg:
		return nil
	case <-expired:
		return ErrChannelTimeout
	}
}
