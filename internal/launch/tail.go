package launch

import "github.com/alkime/vaultlaunch/pkg/ringbuf"

// TailBytes is how much trailing output is kept per stream.
const TailBytes = 8192

// tailWriter keeps the last TailBytes written to it.
// It is safe for the exec copy goroutine to write while another goroutine
// takes a snapshot.
type tailWriter struct {
	ring *ringbuf.Ring[byte]
}

func newTailWriter() *tailWriter {
	return &tailWriter{ring: ringbuf.New[byte](TailBytes)}
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.ring.Write(p)
	return len(p), nil
}

// Bytes returns a copy of the retained tail, or nil when nothing was written.
func (w *tailWriter) Bytes() []byte {
	return w.ring.All()
}
