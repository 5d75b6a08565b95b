package tibs

import "iter"

// Iterator yields the bit values in order. Each call produces an
// independent, stateless cursor, so a shared sequence can be iterated
// concurrently.
func (b Bits) Iterator() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := 0; i < b.n; i++ {
			v, _ := b.store.Uint(b.off+i, 1)
			if !yield(v == 1) {
				return
			}
		}
	}
}

// Chunks yields successive sub-sequences of n bits, sharing storage with b.
// The final chunk is shorter when the length is not a multiple of n. n must
// be positive; otherwise nothing is yielded.
func (b Bits) Chunks(n int) iter.Seq[Bits] {
	return func(yield func(Bits) bool) {
		if n <= 0 {
			return
		}
		for i := 0; i < b.n; i += n {
			end := min(i+n, b.n)
			chunk, _ := b.Slice(i, end)
			if !yield(chunk) {
				return
			}
		}
	}
}
