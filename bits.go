package tibs

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"

	"github.com/scott-griffiths/tibs/internal/bitstore"
	"github.com/scott-griffiths/tibs/internal/format"
	"github.com/scott-griffiths/tibs/internal/mmfile"
)

// Bits is an immutable sequence of bits: a window (offset, length) onto a
// packed store. The zero value is an empty sequence. Bits values may share
// storage; since shared storage is never written, they are safe for
// concurrent readers.
//
// Compare with Equal, not ==.
type Bits struct {
	store *bitstore.Store
	off   int
	n     int
}

// Empty returns an empty bit sequence.
func Empty() Bits {
	return Bits{}
}

func fromStore(st *bitstore.Store) Bits {
	return Bits{store: st, n: st.Len()}
}

// FromString constructs a sequence from the format mini-language, for
// example "u8=255, 0b110, f32=1.5". Token encodings concatenate in
// declaration order.
func FromString(s string) (Bits, error) {
	st, err := format.Parse(s)
	if err != nil {
		return Bits{}, err
	}
	return fromStore(st), nil
}

// FromBytes constructs a sequence holding a copy of b, with bit length
// 8*len(b). Bit 0 is the most significant bit of b[0].
func FromBytes(b []byte) Bits {
	return fromStore(bitstore.FromBytes(b))
}

// FromBin constructs a sequence from binary digits, with or without a "0b"
// prefix. Whitespace and underscores between digits are ignored.
func FromBin(s string) (Bits, error) {
	st, err := format.DecodeLiteral(format.KindBin, s)
	if err != nil {
		return Bits{}, err
	}
	return fromStore(st), nil
}

// FromHex constructs a sequence from hex digits, four bits per digit, with
// or without a "0x" prefix.
func FromHex(s string) (Bits, error) {
	st, err := format.DecodeLiteral(format.KindHex, s)
	if err != nil {
		return Bits{}, err
	}
	return fromStore(st), nil
}

// FromOct constructs a sequence from octal digits, three bits per digit,
// with or without a "0o" prefix.
func FromOct(s string) (Bits, error) {
	st, err := format.DecodeLiteral(format.KindOct, s)
	if err != nil {
		return Bits{}, err
	}
	return fromStore(st), nil
}

// FromZeros returns a sequence of n zero bits.
func FromZeros(n int) (Bits, error) {
	st, err := bitstore.New(n)
	if err != nil {
		return Bits{}, err
	}
	return fromStore(st), nil
}

// FromOnes returns a sequence of n one bits.
func FromOnes(n int) (Bits, error) {
	st, err := bitstore.New(n)
	if err != nil {
		return Bits{}, err
	}
	for i := 0; i < n; i += 64 {
		take := min(64, n-i)
		_ = st.PutUint(i, take, ^uint64(0))
	}
	return fromStore(st), nil
}

// FromBools constructs a sequence with one bit per element of vs.
func FromBools(vs []bool) Bits {
	st := &bitstore.Store{}
	for _, v := range vs {
		st.AppendBit(v)
	}
	return fromStore(st)
}

// FromRandom returns n bits drawn from the process-wide pseudo-random
// source. The result is not reproducible; use FromRandomSeeded for a
// deterministic sequence. The source is not cryptographically secure.
func FromRandom(n int) (Bits, error) {
	if n < 0 {
		return Bits{}, fmt.Errorf("random sequence of %d bits: %w", n, ErrOutOfRange)
	}
	return randomBits(n, rand.Uint64), nil
}

// FromRandomSeeded returns n pseudo-random bits fully determined by seed:
// equal seeds yield equal sequences across runs and platforms.
func FromRandomSeeded(n int, seed []byte) (Bits, error) {
	if n < 0 {
		return Bits{}, fmt.Errorf("random sequence of %d bits: %w", n, ErrOutOfRange)
	}
	src := rand.NewChaCha8(sha256.Sum256(seed))
	return randomBits(n, src.Uint64), nil
}

func randomBits(n int, next func() uint64) Bits {
	st := &bitstore.Store{}
	for i := 0; i < n; i += 64 {
		take := min(64, n-i)
		_ = st.AppendUint(take, next())
	}
	return fromStore(st)
}

// FromJoined concatenates parts into one sequence. The result always owns a
// single new buffer sized to the sum of the operand lengths.
func FromJoined(parts ...Bits) Bits {
	st := &bitstore.Store{}
	for _, p := range parts {
		if p.n > 0 {
			_ = st.AppendRange(p.store, p.off, p.n)
		}
	}
	return fromStore(st)
}

// FromFile maps the file at path read-only and returns a sequence backed by
// the mapping, without copying. The returned cleanup function releases the
// mapping; the sequence and every slice of it must not be used after calling
// it.
func FromFile(path string) (Bits, func() error, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return Bits{}, nil, err
	}
	return fromStore(bitstore.Wrap(data)), cleanup, nil
}

// Len returns the length in bits.
func (b Bits) Len() int {
	return b.n
}

// Bit returns the bit at position i.
func (b Bits) Bit(i int) (bool, error) {
	if i < 0 || i >= b.n {
		return false, fmt.Errorf("bit %d of %d: %w", i, b.n, ErrOutOfRange)
	}
	return b.store.Bit(b.off + i)
}

// Uint reads n bits starting at start as an unsigned integer, most
// significant bit first. n may be 1 to 64.
func (b Bits) Uint(start, n int) (uint64, error) {
	if n < 1 || n > 64 {
		return 0, fmt.Errorf("read of %d bits: %w", n, ErrLength)
	}
	if start < 0 || start > b.n-n {
		return 0, fmt.Errorf("read [%d, %d+%d) of %d bits: %w", start, start, n, b.n, ErrOutOfRange)
	}
	return b.store.Uint(b.off+start, n)
}

// Int reads n bits starting at start as a two's-complement signed integer.
func (b Bits) Int(start, n int) (int64, error) {
	if n < 1 || n > 64 {
		return 0, fmt.Errorf("read of %d bits: %w", n, ErrLength)
	}
	if start < 0 || start > b.n-n {
		return 0, fmt.Errorf("read [%d, %d+%d) of %d bits: %w", start, start, n, b.n, ErrOutOfRange)
	}
	return b.store.Int(b.off+start, n)
}

// Slice returns the sub-sequence [start, end). It shares storage with b;
// no bits are copied.
func (b Bits) Slice(start, end int) (Bits, error) {
	if start < 0 || end < start || end > b.n {
		return Bits{}, fmt.Errorf("slice [%d, %d) of %d bits: %w", start, end, b.n, ErrOutOfRange)
	}
	return Bits{store: b.store, off: b.off + start, n: end - start}, nil
}

// Equal reports whether b and other hold the same logical bits. Storage
// identity and byte alignment are irrelevant.
func (b Bits) Equal(other Bits) bool {
	if b.n != other.n {
		return false
	}
	if b.n == 0 {
		return true
	}
	return b.store.EqualRange(b.off, other.store, other.off, b.n)
}

// Hash returns a hash of the logical bits. Sequences that are Equal hash
// equal regardless of byte alignment.
func (b Bits) Hash() uint64 {
	if b.n == 0 {
		return (&bitstore.Store{}).HashRange(0, 0)
	}
	return b.store.HashRange(b.off, b.n)
}

// Mutable returns a mutable copy-on-write derivation of b. The call itself
// copies nothing; the buffer is cloned at the first mutation.
func (b Bits) Mutable() *MutableBits {
	return &MutableBits{store: b.store, off: b.off, n: b.n, owned: false}
}

// String renders the sequence as a hex literal when the length is a
// multiple of four bits, a binary literal otherwise, matching the forms
// FromString accepts. The empty sequence renders as "".
func (b Bits) String() string {
	if b.n == 0 {
		return ""
	}
	if b.n%4 == 0 {
		h, _ := b.ToHex()
		return "0x" + h
	}
	return "0b" + b.ToBin()
}
