package tibs

import (
	"fmt"

	"github.com/scott-griffiths/tibs/internal/bitstore"
)

// Append returns the concatenation of b and other in new owned storage.
// Neither operand is modified.
func (b Bits) Append(other Bits) Bits {
	return FromJoined(b, other)
}

// Repeat returns k copies of b concatenated. k must be non-negative; zero
// yields the empty sequence.
func (b Bits) Repeat(k int) (Bits, error) {
	if k < 0 {
		return Bits{}, fmt.Errorf("repeat %d times: %w", k, ErrOutOfRange)
	}
	st := &bitstore.Store{}
	for i := 0; i < k && b.n > 0; i++ {
		_ = st.AppendRange(b.store, b.off, b.n)
	}
	return fromStore(st), nil
}

func (b Bits) boolOp(other Bits, op func(x, y uint64) uint64) (Bits, error) {
	if b.n != other.n {
		return Bits{}, fmt.Errorf("operands of %d and %d bits: %w", b.n, other.n, ErrLengthMismatch)
	}
	st := &bitstore.Store{}
	for i := 0; i < b.n; i += 64 {
		take := min(64, b.n-i)
		x, _ := b.store.Uint(b.off+i, take)
		y, _ := other.store.Uint(other.off+i, take)
		_ = st.AppendUint(take, op(x, y))
	}
	return fromStore(st), nil
}

// And returns the bitwise AND of b and other, which must have equal length.
func (b Bits) And(other Bits) (Bits, error) {
	return b.boolOp(other, func(x, y uint64) uint64 { return x & y })
}

// Or returns the bitwise OR of b and other, which must have equal length.
func (b Bits) Or(other Bits) (Bits, error) {
	return b.boolOp(other, func(x, y uint64) uint64 { return x | y })
}

// Xor returns the bitwise XOR of b and other, which must have equal length.
func (b Bits) Xor(other Bits) (Bits, error) {
	return b.boolOp(other, func(x, y uint64) uint64 { return x ^ y })
}

// Not returns b with every bit flipped.
func (b Bits) Not() Bits {
	st := &bitstore.Store{}
	for i := 0; i < b.n; i += 64 {
		take := min(64, b.n-i)
		x, _ := b.store.Uint(b.off+i, take)
		_ = st.AppendUint(take, ^x)
	}
	return fromStore(st)
}

// ShiftLeft returns b shifted left by k positions. The shift is logical:
// the length is unchanged and vacated positions fill with zeros. k must be
// non-negative.
func (b Bits) ShiftLeft(k int) (Bits, error) {
	if k < 0 {
		return Bits{}, fmt.Errorf("shift by %d: %w", k, ErrOutOfRange)
	}
	if k > b.n {
		k = b.n
	}
	st := &bitstore.Store{}
	if b.n-k > 0 {
		_ = st.AppendRange(b.store, b.off+k, b.n-k)
	}
	appendZeros(st, k)
	return fromStore(st), nil
}

// ShiftRight returns b shifted right by k positions, zero-filling from the
// left. k must be non-negative.
func (b Bits) ShiftRight(k int) (Bits, error) {
	if k < 0 {
		return Bits{}, fmt.Errorf("shift by %d: %w", k, ErrOutOfRange)
	}
	if k > b.n {
		k = b.n
	}
	st := &bitstore.Store{}
	appendZeros(st, k)
	if b.n-k > 0 {
		_ = st.AppendRange(b.store, b.off, b.n-k)
	}
	return fromStore(st), nil
}

// RotateLeft returns b rotated circularly left by k positions. k is reduced
// modulo the length and may be negative; RotateLeft and RotateRight are
// exact inverses for every k.
func (b Bits) RotateLeft(k int) Bits {
	if b.n == 0 {
		return b
	}
	k = ((k % b.n) + b.n) % b.n
	st := &bitstore.Store{}
	_ = st.AppendRange(b.store, b.off+k, b.n-k)
	_ = st.AppendRange(b.store, b.off, k)
	return fromStore(st)
}

// RotateRight returns b rotated circularly right by k positions.
func (b Bits) RotateRight(k int) Bits {
	if b.n == 0 {
		return b
	}
	return b.RotateLeft(b.n - ((k%b.n)+b.n)%b.n)
}

// Reverse returns b with its bit order reversed.
func (b Bits) Reverse() Bits {
	st := &bitstore.Store{}
	for i := b.n - 1; i >= 0; i-- {
		v, _ := b.store.Uint(b.off+i, 1)
		st.AppendBit(v == 1)
	}
	return fromStore(st)
}

func appendZeros(st *bitstore.Store, n int) {
	for i := 0; i < n; i += 64 {
		_ = st.AppendUint(min(64, n-i), 0)
	}
}
