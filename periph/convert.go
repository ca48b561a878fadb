package periph

import "golang.org/x/exp/constraints"

// MillisToMicros converts a millisecond count to timer ticks. The product is
// truncated to the counter width; keeping it in range is the caller's job.
func MillisToMicros[T constraints.Unsigned](ms T) uint32 {
	return uint32(ms) * 1000
}
