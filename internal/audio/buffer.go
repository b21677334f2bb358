package audio

import (
	"math"
	"sync"
)

// MaxBufferSeconds caps how much audio a session ever retains, beyond
// which the capture callback silently drops new frames rather than
// grow the buffer or block the device thread.
const MaxBufferSeconds = 600

// LevelWindowSamples is the trailing window used by Level, roughly
// 100ms at 16kHz.
const LevelWindowSamples = 1600

// Buffer is an append-only ring of captured f32 samples shared between
// the capture callback and the scheduler. The capture callback is the
// only writer; everything else copies ranges out under the lock
// rather than holding it across work.
type Buffer struct {
	mu       sync.Mutex
	samples  []float32
	cap      int
	rate     int
	channels int
}

// NewBuffer creates a buffer capped at MaxBufferSeconds of audio at
// the given device rate and channel count.
func NewBuffer(rate, channels int) *Buffer {
	cap := rate * channels * MaxBufferSeconds
	return &Buffer{
		samples:  make([]float32, 0, min(cap, rate*channels*30)),
		cap:      cap,
		rate:     rate,
		channels: channels,
	}
}

// Append adds samples to the buffer, silently dropping the tail that
// would exceed the size cap. Safe to call from the capture callback;
// the critical section is O(len(samples)).
func (b *Buffer) Append(samples []float32) {
	if len(samples) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	room := b.cap - len(b.samples)
	if room <= 0 {
		return
	}
	if len(samples) > room {
		samples = samples[:room]
	}
	b.samples = append(b.samples, samples...)
}

// Clear truncates the buffer back to empty. Called on session start.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
}

// Len returns the current write cursor.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

// Snapshot copies out the full buffer contents.
func (b *Buffer) Snapshot() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}

// Range copies out [start, end) clamped to the buffer's current
// bounds. start and end are sample offsets, not byte offsets.
func (b *Buffer) Range(start, end int) []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 {
		start = 0
	}
	if end > len(b.samples) {
		end = len(b.samples)
	}
	if start >= end {
		return nil
	}
	out := make([]float32, end-start)
	copy(out, b.samples[start:end])
	return out
}

// Level returns the RMS over the trailing LevelWindowSamples, clamped
// to [0, 1].
func (b *Buffer) Level() float32 {
	b.mu.Lock()
	n := len(b.samples)
	start := n - LevelWindowSamples
	if start < 0 {
		start = 0
	}
	window := make([]float32, n-start)
	copy(window, b.samples[start:])
	b.mu.Unlock()

	if len(window) == 0 {
		return 0
	}
	var sumSq float64
	for _, s := range window {
		sumSq += float64(s) * float64(s)
	}
	rms := float32(math.Sqrt(sumSq / float64(len(window))))
	if rms > 1 {
		return 1
	}
	if rms < 0 {
		return 0
	}
	return rms
}

// SetFormat updates the buffer's declared rate and channel count and
// resizes its capacity accordingly. Intended to be called once, right
// after Capture.Start returns the negotiated Config, before the
// device callback has appended a meaningful amount of audio.
func (b *Buffer) SetFormat(rate, channels int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rate = rate
	b.channels = channels
	b.cap = rate * channels * MaxBufferSeconds
}

// Rate returns the buffer's declared device sample rate, as set by
// NewBuffer or the latest SetFormat call.
func (b *Buffer) Rate() int { return b.rate }

// Channels returns the buffer's declared device channel count, as set
// by NewBuffer or the latest SetFormat call.
func (b *Buffer) Channels() int { return b.channels }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
