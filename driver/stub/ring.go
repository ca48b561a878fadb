//go:build !tinygo && !baremetal

package stub

import "time"

// TraceEntry is one recorded hardware happening.
type TraceEntry struct {
	At     time.Duration
	Source string
	What   string
}

const traceCapacity = 64

type traceRing struct {
	data       [traceCapacity]TraceEntry
	head, tail int // head = oldest, tail = next push
	count      int
}

func (rb *traceRing) push(e TraceEntry) {
	if rb.count == traceCapacity {
		// Overwrite the oldest when full to keep memory bounded
		rb.head = (rb.head + 1) % traceCapacity
		rb.count--
	}
	rb.data[rb.tail] = e
	rb.tail = (rb.tail + 1) % traceCapacity
	rb.count++
}

func (rb *traceRing) snapshot() []TraceEntry {
	out := make([]TraceEntry, rb.count)
	i := rb.head
	for c := 0; c < rb.count; c++ {
		out[c] = rb.data[i]
		i = (i + 1) % traceCapacity
	}
	return out
}
