package tibs

import (
	"fmt"
	"iter"

	"github.com/scott-griffiths/tibs/internal/bitstore"
)

// MutableBits is a mutable bit sequence with exclusive ownership of its
// storage. Deriving one from a Bits shares storage until the first mutating
// call, which clones the buffer (copy-on-write); mutation therefore never
// affects any immutable sibling.
//
// Every mutating method either fully applies or, on error, leaves the
// receiver bit-for-bit unchanged.
//
// MutableBits has no internal locking; concurrent mutation requires
// external synchronization.
type MutableBits struct {
	store *bitstore.Store
	off   int
	n     int
	owned bool
}

// NewMutable returns an empty mutable sequence.
func NewMutable() *MutableBits {
	return &MutableBits{store: &bitstore.Store{}, owned: true}
}

// MutableFromString constructs a mutable sequence from the format
// mini-language.
func MutableFromString(s string) (*MutableBits, error) {
	b, err := FromString(s)
	if err != nil {
		return nil, err
	}
	return &MutableBits{store: b.store, off: b.off, n: b.n, owned: true}, nil
}

// view returns a transient read-only window for delegating the shared read
// surface. It must not escape: it does not release ownership the way Bits
// does.
func (m *MutableBits) view() Bits {
	return Bits{store: m.store, off: m.off, n: m.n}
}

// Bits freezes the current value into an immutable sequence. The storage is
// handed over without copying; the next mutation of m clones it first, so
// the returned Bits can never change.
func (m *MutableBits) Bits() Bits {
	m.owned = false
	return Bits{store: m.store, off: m.off, n: m.n}
}

// materialize gives m exclusive, offset-zero storage. This is the
// copy-on-write point: it runs at the start of every mutating call and
// clones only when the buffer is still shared.
func (m *MutableBits) materialize() {
	if m.owned {
		return
	}
	st, _ := m.store.CopyRange(m.off, m.n)
	m.store = st
	m.off = 0
	m.owned = true
}

// adopt replaces m's value with freshly allocated storage.
func (m *MutableBits) adopt(b Bits) {
	m.store = b.store
	m.off = b.off
	m.n = b.n
	m.owned = true
}

// Len returns the length in bits.
func (m *MutableBits) Len() int { return m.n }

// Bit returns the bit at position i.
func (m *MutableBits) Bit(i int) (bool, error) { return m.view().Bit(i) }

// Uint reads n bits starting at start as an unsigned integer.
func (m *MutableBits) Uint(start, n int) (uint64, error) { return m.view().Uint(start, n) }

// Int reads n bits starting at start as a two's-complement signed integer.
func (m *MutableBits) Int(start, n int) (int64, error) { return m.view().Int(start, n) }

// ToBytes packs the sequence into bytes; the length must be a whole number
// of bytes.
func (m *MutableBits) ToBytes() ([]byte, error) { return m.view().ToBytes() }

// ToBin returns the sequence as binary digits.
func (m *MutableBits) ToBin() string { return m.view().ToBin() }

// ToHex returns the sequence as lowercase hex digits.
func (m *MutableBits) ToHex() (string, error) { return m.view().ToHex() }

// ToOct returns the sequence as octal digits.
func (m *MutableBits) ToOct() (string, error) { return m.view().ToOct() }

// ToUint interprets the whole sequence as an unsigned integer.
func (m *MutableBits) ToUint() (uint64, error) { return m.view().ToUint() }

// ToInt interprets the whole sequence as a signed integer.
func (m *MutableBits) ToInt() (int64, error) { return m.view().ToInt() }

// ToFloat interprets the sequence as an IEEE-754 float.
func (m *MutableBits) ToFloat() (float64, error) { return m.view().ToFloat() }

// Find returns the first match of needle within the receiver.
func (m *MutableBits) Find(needle Bits, opts *FindOptions) (int, bool) {
	return m.view().Find(needle, opts)
}

// RFind returns the last match of needle within the receiver.
func (m *MutableBits) RFind(needle Bits, opts *FindOptions) (int, bool) {
	return m.view().RFind(needle, opts)
}

// Contains reports whether needle occurs in the receiver.
func (m *MutableBits) Contains(needle Bits) bool { return m.view().Contains(needle) }

// Count returns the number of one bits.
func (m *MutableBits) Count() int { return m.view().Count() }

// Equal reports whether the receiver holds the same logical bits as other.
func (m *MutableBits) Equal(other Bits) bool { return m.view().Equal(other) }

// String renders the value like Bits.String.
func (m *MutableBits) String() string { return m.view().String() }

// SetBit sets the bit at position i to v.
func (m *MutableBits) SetBit(i int, v bool) error {
	if i < 0 || i >= m.n {
		return fmt.Errorf("set bit %d of %d: %w", i, m.n, ErrOutOfRange)
	}
	m.materialize()
	return m.store.SetBit(i, v)
}

// SetSlice overwrites the bits [start, end) with v, whose length must equal
// end-start. The sequence length is unchanged.
func (m *MutableBits) SetSlice(start, end int, v Bits) error {
	if start < 0 || end < start || end > m.n {
		return fmt.Errorf("set slice [%d, %d) of %d bits: %w", start, end, m.n, ErrOutOfRange)
	}
	if v.n != end-start {
		return fmt.Errorf("assign %d bits to slice of %d: %w", v.n, end-start, ErrLengthMismatch)
	}
	m.materialize()
	// v cannot alias m.store here: handing storage to a Bits goes through
	// Bits(), which releases ownership, and materialize has just cloned
	// any shared buffer.
	for i := 0; i < v.n; i += 64 {
		take := min(64, v.n-i)
		x, _ := v.store.Uint(v.off+i, take)
		_ = m.store.PutUint(start+i, take, x)
	}
	return nil
}

// DeleteSlice removes the bits [start, end), shifting subsequent bits left
// and shrinking the length.
func (m *MutableBits) DeleteSlice(start, end int) error {
	if start < 0 || end < start || end > m.n {
		return fmt.Errorf("delete slice [%d, %d) of %d bits: %w", start, end, m.n, ErrOutOfRange)
	}
	if start == end {
		return nil
	}
	st := &bitstore.Store{}
	if start > 0 {
		_ = st.AppendRange(m.store, m.off, start)
	}
	if end < m.n {
		_ = st.AppendRange(m.store, m.off+end, m.n-end)
	}
	m.adopt(fromStore(st))
	return nil
}

// Insert inserts v at bit position pos. Inserting a view of the receiver's
// own storage is safe.
func (m *MutableBits) Insert(pos int, v Bits) error {
	if pos < 0 || pos > m.n {
		return fmt.Errorf("insert at %d of %d bits: %w", pos, m.n, ErrOutOfRange)
	}
	st := &bitstore.Store{}
	if pos > 0 {
		_ = st.AppendRange(m.store, m.off, pos)
	}
	if v.n > 0 {
		_ = st.AppendRange(v.store, v.off, v.n)
	}
	if pos < m.n {
		_ = st.AppendRange(m.store, m.off+pos, m.n-pos)
	}
	m.adopt(fromStore(st))
	return nil
}

// Append appends v in place. Growth is amortized geometric, so building a
// sequence by repeated appends costs linear time overall.
func (m *MutableBits) Append(v Bits) {
	m.materialize()
	if v.n > 0 {
		_ = m.store.AppendRange(v.store, v.off, v.n)
	}
	m.n += v.n
}

// AppendString parses s with the format mini-language and appends the
// result. On parse failure the receiver is unchanged.
func (m *MutableBits) AppendString(s string) error {
	b, err := FromString(s)
	if err != nil {
		return err
	}
	m.Append(b)
	return nil
}

func (m *MutableBits) boolOpInPlace(v Bits, op func(x, y uint64) uint64) error {
	if v.n != m.n {
		return fmt.Errorf("operands of %d and %d bits: %w", m.n, v.n, ErrLengthMismatch)
	}
	m.materialize()
	for i := 0; i < m.n; i += 64 {
		take := min(64, m.n-i)
		x, _ := m.store.Uint(i, take)
		y, _ := v.store.Uint(v.off+i, take)
		_ = m.store.PutUint(i, take, op(x, y))
	}
	return nil
}

// And replaces the receiver with its bitwise AND with v, which must have
// equal length.
func (m *MutableBits) And(v Bits) error {
	return m.boolOpInPlace(v, func(x, y uint64) uint64 { return x & y })
}

// Or replaces the receiver with its bitwise OR with v.
func (m *MutableBits) Or(v Bits) error {
	return m.boolOpInPlace(v, func(x, y uint64) uint64 { return x | y })
}

// Xor replaces the receiver with its bitwise XOR with v.
func (m *MutableBits) Xor(v Bits) error {
	return m.boolOpInPlace(v, func(x, y uint64) uint64 { return x ^ y })
}

// Not flips every bit in place.
func (m *MutableBits) Not() {
	m.materialize()
	for i := 0; i < m.n; i += 64 {
		take := min(64, m.n-i)
		x, _ := m.store.Uint(i, take)
		_ = m.store.PutUint(i, take, ^x)
	}
}

// ShiftLeft shifts the receiver left by k positions in place, zero-filling
// and keeping the length.
func (m *MutableBits) ShiftLeft(k int) error {
	r, err := m.view().ShiftLeft(k)
	if err != nil {
		return err
	}
	m.adopt(r)
	return nil
}

// ShiftRight shifts the receiver right by k positions in place.
func (m *MutableBits) ShiftRight(k int) error {
	r, err := m.view().ShiftRight(k)
	if err != nil {
		return err
	}
	m.adopt(r)
	return nil
}

// RotateLeft rotates the receiver circularly left by k positions. k is
// reduced modulo the length.
func (m *MutableBits) RotateLeft(k int) {
	if m.n == 0 {
		return
	}
	m.adopt(m.view().RotateLeft(k))
}

// RotateRight rotates the receiver circularly right by k positions.
func (m *MutableBits) RotateRight(k int) {
	if m.n == 0 {
		return
	}
	m.adopt(m.view().RotateRight(k))
}

// Repeat replaces the receiver with k concatenated copies of itself. k must
// be non-negative; zero empties the sequence.
func (m *MutableBits) Repeat(k int) error {
	r, err := m.view().Repeat(k)
	if err != nil {
		return err
	}
	m.adopt(r)
	return nil
}

// Reverse reverses the bit order in place.
func (m *MutableBits) Reverse() {
	m.adopt(m.view().Reverse())
}

// ReplaceOptions restricts a Replace call. The zero value (and nil) means
// the whole sequence, unlimited replacements, no alignment requirement.
type ReplaceOptions struct {
	// Start: occurrences beginning before this position are not replaced.
	Start int
	// End: occurrences finishing after this position are not replaced.
	// Zero means the end of the sequence.
	End int
	// Count caps the number of replacements; zero means no cap.
	Count int
	// ByteAligned restricts replaced occurrences to byte boundaries.
	ByteAligned bool
}

// Replace substitutes repl for non-overlapping occurrences of old, left to
// right, and returns the number of replacements made. old and repl need not
// have the same length; old must be non-empty.
func (m *MutableBits) Replace(old, repl Bits, opts *ReplaceOptions) (int, error) {
	if old.n == 0 {
		return 0, fmt.Errorf("replace empty sequence: %w", ErrLength)
	}
	var fo FindOptions
	var count int
	if opts != nil {
		fo = FindOptions{Start: opts.Start, End: opts.End, ByteAligned: opts.ByteAligned}
		count = opts.Count
	}
	frozen := m.view()
	var starts []int
	for p := range frozen.FindAll(old, &fo) {
		if len(starts) > 0 && p < starts[len(starts)-1]+old.n {
			continue // already consumed by the previous replacement
		}
		starts = append(starts, p)
		if count > 0 && len(starts) == count {
			break
		}
	}
	if len(starts) == 0 {
		return 0, nil
	}
	st := &bitstore.Store{}
	prev := 0
	for _, p := range starts {
		if p > prev {
			_ = st.AppendRange(m.store, m.off+prev, p-prev)
		}
		if repl.n > 0 {
			_ = st.AppendRange(repl.store, repl.off, repl.n)
		}
		prev = p + old.n
	}
	if prev < m.n {
		_ = st.AppendRange(m.store, m.off+prev, m.n-prev)
	}
	m.adopt(fromStore(st))
	return len(starts), nil
}

// Iterator yields the bit values in order over the storage captured at call
// time. In-place mutation during iteration is visible to the cursor; freeze
// with Bits first for a stable snapshot.
func (m *MutableBits) Iterator() iter.Seq[bool] {
	return m.view().Iterator()
}
