package audio

import (
	"sync"

	"pitchspace/internal/pitch"
)

// window keeps the most recent size samples written by the device thread
// and hands them to the tick thread as immutable snapshots. There is one
// slot: a snapshot always reflects the newest samples, never a queue.
type window struct {
	mu     sync.Mutex
	ring   []float64
	pos    int // next write index
	filled int
	fresh  int // samples written since the last snapshot
	rate   float64
	latest *pitch.Buffer
}

func newWindow(size int) *window {
	return &window{ring: make([]float64, size)}
}

// reset empties the window for a new stream at rate Hz.
func (w *window) reset(rate float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	clear(w.ring)
	w.pos, w.filled, w.fresh = 0, 0, 0
	w.rate = rate
	w.latest = nil
}

// write appends samples, overwriting the oldest. Safe to call from the
// device callback.
func (w *window) write(samples []float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.ring)
	if n == 0 {
		return
	}
	// Only the tail can survive.
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	for _, s := range samples {
		w.ring[w.pos] = s
		w.pos++
		if w.pos == n {
			w.pos = 0
		}
	}
	w.filled = min(n, w.filled+len(samples))
	w.fresh += len(samples)
}

// snapshot returns the newest full window, oldest sample first. Without
// new samples it returns the previous snapshot; before the window first
// fills it returns nil.
func (w *window) snapshot() *pitch.Buffer {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.ring)
	if w.filled < n || n == 0 {
		return nil
	}
	if w.fresh == 0 && w.latest != nil {
		return w.latest
	}
	out := make([]float64, n)
	k := copy(out, w.ring[w.pos:])
	copy(out[k:], w.ring[:w.pos])
	w.latest = &pitch.Buffer{Samples: out, SampleRate: w.rate}
	w.fresh = 0
	return w.latest
}
