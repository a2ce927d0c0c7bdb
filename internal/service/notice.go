package service

import (
	"log/slog"
	"time"

	"github.com/alkime/vaultlaunch/pkg/channels"
	"github.com/alkime/vaultlaunch/pkg/ringbuf"
)

// Level is the severity of a Notice.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a short user-facing message about a launch.
type Notice struct {
	LaunchID string    `json:"launch_id"`
	Level    Level     `json:"level"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Notifiers fans a notice out to each notifier in order.
type Notifiers []Notifier

// Notify sends n to every notifier.
func (ns Notifiers) Notify(n Notice) {
	for _, notifier := range ns {
		notifier.Notify(n)
	}
}

// DefaultNoticeCapacity is how many notices a NoticeBoard keeps by default.
const DefaultNoticeCapacity = 64

// NoticeBoard keeps the most recent notices for polling clients.
type NoticeBoard struct {
	ring *ringbuf.Ring[Notice]
}

// NewNoticeBoard creates a board that keeps the last capacity notices.
func NewNoticeBoard(capacity int) *NoticeBoard {
	if capacity <= 0 {
		capacity = DefaultNoticeCapacity
	}

	return &NoticeBoard{ring: ringbuf.New[Notice](capacity)}
}

// Notify records n.
func (b *NoticeBoard) Notify(n Notice) {
	b.ring.Push(n)
}

// Recent returns up to limit notices, oldest first. limit <= 0 returns all.
func (b *NoticeBoard) Recent(limit int) []Notice {
	if limit <= 0 {
		return b.ring.All()
	}

	return b.ring.Last(limit)
}

// ChanNotifier forwards notices to a channel without blocking the launch
// for long. Notices are dropped when the channel stays full or is closed.
type ChanNotifier struct {
	ch      chan<- Notice
	timeout time.Duration
}

// NewChanNotifier creates a notifier that sends to ch. With a positive
// timeout a full channel is retried for that long; otherwise the send is
// non-blocking.
func NewChanNotifier(ch chan<- Notice, timeout time.Duration) *ChanNotifier {
	return &ChanNotifier{ch: ch, timeout: timeout}
}

// Notify sends n if the channel has room.
func (c *ChanNotifier) Notify(n Notice) {
	var err error
	if c.timeout > 0 {
		err = channels.SendWithTimeout(c.ch, n, c.timeout)
	} else {
		err = channels.SendNonBlock(c.ch, n)
	}

	if err != nil {
		slog.Debug("Dropped notice", "launch_id", n.LaunchID, "message", n.Message, "error", err)
	}
}
