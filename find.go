package tibs

import "iter"

// FindOptions restricts a search. The zero value (and a nil pointer) means
// the whole sequence with no alignment requirement.
type FindOptions struct {
	// Start is the first bit position considered, clamped to the sequence.
	Start int
	// End bounds the search: matches must finish at or before End. Zero
	// means the end of the sequence.
	End int
	// ByteAligned restricts matches to positions that are multiples of
	// eight bits from the start of the sequence.
	ByteAligned bool
}

// window normalizes the options against a sequence of length n, returning
// the first candidate position, the limit past which no match may extend,
// and the scan step.
func (o *FindOptions) window(n int) (start, end, step int) {
	start, end, step = 0, n, 1
	if o != nil {
		if o.Start > 0 {
			start = o.Start
		}
		if o.End != 0 && o.End < end {
			end = o.End
		}
		if o.ByteAligned {
			step = 8
			start += (8 - start%8) % 8
		}
	}
	if end > n {
		end = n
	}
	return start, end, step
}

func (b Bits) matchAt(needle Bits, pos int) bool {
	return b.store.EqualRange(b.off+pos, needle.store, needle.off, needle.n)
}

// Find returns the first bit position at or after opts.Start where needle's
// bits occur, and whether a match was found. The empty needle never
// matches. Overlap with opts.End is excluded.
func (b Bits) Find(needle Bits, opts *FindOptions) (int, bool) {
	if needle.n == 0 {
		return -1, false
	}
	start, end, step := opts.window(b.n)
	for pos := start; pos+needle.n <= end; pos += step {
		if b.matchAt(needle, pos) {
			return pos, true
		}
	}
	return -1, false
}

// RFind returns the last matching bit position within the window, searching
// from the end.
func (b Bits) RFind(needle Bits, opts *FindOptions) (int, bool) {
	if needle.n == 0 {
		return -1, false
	}
	start, end, step := opts.window(b.n)
	last := end - needle.n
	if last < start {
		return -1, false
	}
	if step == 8 {
		last -= (last - start) % 8
	}
	for pos := last; pos >= start; pos -= step {
		if b.matchAt(needle, pos) {
			return pos, true
		}
	}
	return -1, false
}

// FindAll returns the match positions in ascending order as a lazy
// sequence. Matches may overlap: after a match at p, scanning resumes at
// p+1 (or the next byte boundary when ByteAligned). Every range over the
// result uses a fresh cursor, so the sequence is restartable and safe for
// concurrent iteration.
func (b Bits) FindAll(needle Bits, opts *FindOptions) iter.Seq[int] {
	start, end, step := opts.window(b.n)
	return func(yield func(int) bool) {
		if needle.n == 0 {
			return
		}
		for pos := start; pos+needle.n <= end; pos += step {
			if b.matchAt(needle, pos) && !yield(pos) {
				return
			}
		}
	}
}

// RFindAll returns the match positions in descending order as a lazy
// sequence, including overlapping matches.
func (b Bits) RFindAll(needle Bits, opts *FindOptions) iter.Seq[int] {
	start, end, step := opts.window(b.n)
	return func(yield func(int) bool) {
		if needle.n == 0 {
			return
		}
		last := end - needle.n
		if last < start {
			return
		}
		if step == 8 {
			last -= (last - start) % 8
		}
		for pos := last; pos >= start; pos -= step {
			if b.matchAt(needle, pos) && !yield(pos) {
				return
			}
		}
	}
}

// Contains reports whether needle occurs anywhere in b.
func (b Bits) Contains(needle Bits) bool {
	_, ok := b.Find(needle, nil)
	return ok
}

// Count returns the number of one bits.
func (b Bits) Count() int {
	if b.n == 0 {
		return 0
	}
	return b.store.CountRange(b.off, b.n)
}

// AnySet reports whether any bit is one.
func (b Bits) AnySet() bool {
	return b.Count() > 0
}

// AllSet reports whether every bit is one. It is true for the empty
// sequence.
func (b Bits) AllSet() bool {
	return b.Count() == b.n
}
