// Package channels has small helpers for sending on channels without
// blocking forever and for settling a result exactly once.
package channels

import (
	"errors"
)

var (
	ErrChannelClosed  = errors.New("channel closed")
	ErrChannelTimeout = errors.New("send timeout")
	ErrChannelFull    = errors.New("channel full")
)
