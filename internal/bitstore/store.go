// Package bitstore implements the packed byte buffer that backs every bit
// sequence. A Store holds an owned buffer plus a logical bit length measured
// in bits, not bytes. Positions are absolute bit offsets; bit 0 is the most
// significant bit of byte 0, and multi-bit integer windows are read and
// written most-significant-bit first, crossing byte boundaries as needed.
//
// Invariant: bits past the logical length within the final byte are always
// zero, so byte-level comparison and hashing of whole stores is well defined
// regardless of how the store was built.
package bitstore

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/bits"
)

// Store is a packed bit buffer. The zero value is an empty store.
type Store struct {
	data  []byte
	nbits int
}

// New returns a zero-filled store of n bits.
func New(n int) (*Store, error) {
	if n < 0 {
		return nil, fmt.Errorf("new store of %d bits: %w", n, ErrNegativeLength)
	}
	return &Store{data: make([]byte, (n+7)>>3), nbits: n}, nil
}

// FromBytes returns a store holding a copy of b. The bit length is 8*len(b).
func FromBytes(b []byte) *Store {
	data := make([]byte, len(b))
	copy(data, b)
	return &Store{data: data, nbits: len(b) * 8}
}

// Wrap returns a store aliasing b without copying. The caller must guarantee
// that b is never modified for the lifetime of the store; it exists so that
// memory-mapped files can back read-only sequences.
func Wrap(b []byte) *Store {
	return &Store{data: b, nbits: len(b) * 8}
}

// Len returns the logical length in bits.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.nbits
}

func (s *Store) checkRange(start, n int) error {
	if start < 0 || n < 0 || start > s.Len()-n {
		return fmt.Errorf("range [%d, %d+%d) in store of %d bits: %w", start, start, n, s.Len(), ErrOutOfRange)
	}
	return nil
}

// Bit returns the bit at position i.
func (s *Store) Bit(i int) (bool, error) {
	if err := s.checkRange(i, 1); err != nil {
		return false, err
	}
	return s.bit(i), nil
}

func (s *Store) bit(i int) bool {
	return s.data[i>>3]>>(7-uint(i&7))&1 == 1
}

// SetBit sets the bit at position i to v.
func (s *Store) SetBit(i int, v bool) error {
	if err := s.checkRange(i, 1); err != nil {
		return err
	}
	mask := byte(1) << (7 - uint(i&7))
	if v {
		s.data[i>>3] |= mask
	} else {
		s.data[i>>3] &^= mask
	}
	return nil
}

// Uint reads n bits starting at start as an unsigned integer, most
// significant bit first. n may be 0 to 64.
func (s *Store) Uint(start, n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("read of %d bits: %w", n, ErrWidth)
	}
	if err := s.checkRange(start, n); err != nil {
		return 0, err
	}
	return s.uint(start, n), nil
}

func (s *Store) uint(start, n int) uint64 {
	var v uint64
	i, rem := start, n
	for rem > 0 {
		avail := 8 - i&7
		take := avail
		if rem < take {
			take = rem
		}
		chunk := uint64(s.data[i>>3]>>(uint(avail-take))) & (1<<uint(take) - 1)
		v = v<<uint(take) | chunk
		i += take
		rem -= take
	}
	return v
}

// Int reads n bits starting at start as a two's-complement signed integer,
// most significant bit first. n may be 1 to 64.
func (s *Store) Int(start, n int) (int64, error) {
	if n < 1 || n > 64 {
		return 0, fmt.Errorf("read of %d bits: %w", n, ErrWidth)
	}
	if err := s.checkRange(start, n); err != nil {
		return 0, err
	}
	v := s.uint(start, n)
	if n < 64 && v&(1<<uint(n-1)) != 0 {
		v |= ^uint64(0) << uint(n)
	}
	return int64(v), nil
}

// PutUint writes the low n bits of v starting at start, most significant bit
// first. Bits of v above the window are ignored.
func (s *Store) PutUint(start, n int, v uint64) error {
	if n < 0 || n > 64 {
		return fmt.Errorf("write of %d bits: %w", n, ErrWidth)
	}
	if err := s.checkRange(start, n); err != nil {
		return err
	}
	s.putUint(start, n, v)
	return nil
}

func (s *Store) putUint(start, n int, v uint64) {
	i, rem := start, n
	for rem > 0 {
		avail := 8 - i&7
		take := avail
		if rem < take {
			take = rem
		}
		chunk := byte(v>>uint(rem-take)) & (1<<uint(take) - 1)
		pos := uint(avail - take)
		mask := byte(1<<uint(take)-1) << pos
		s.data[i>>3] = s.data[i>>3]&^mask | chunk<<pos
		i += take
		rem -= take
	}
}

func (s *Store) grow(n int) {
	need := (s.nbits + n + 7) >> 3
	if extra := need - len(s.data); extra > 0 {
		// append gives amortized geometric growth.
		s.data = append(s.data, make([]byte, extra)...)
	}
}

// AppendBit appends a single bit.
func (s *Store) AppendBit(v bool) {
	s.grow(1)
	s.nbits++
	if v {
		s.data[(s.nbits-1)>>3] |= 1 << (7 - uint((s.nbits-1)&7))
	}
}

// AppendUint appends the low n bits of v, most significant bit first.
func (s *Store) AppendUint(n int, v uint64) error {
	if n < 0 || n > 64 {
		return fmt.Errorf("append of %d bits: %w", n, ErrWidth)
	}
	s.grow(n)
	s.nbits += n
	s.putUint(s.nbits-n, n, v)
	return nil
}

// AppendRange appends n bits of src starting at srcStart. src may be s
// itself; only bits below the original length are read.
func (s *Store) AppendRange(src *Store, srcStart, n int) error {
	if err := src.checkRange(srcStart, n); err != nil {
		return err
	}
	s.grow(n)
	i, rem := srcStart, n
	for rem > 0 {
		take := rem
		if take > 64 {
			take = 64
		}
		v := src.uint(i, take)
		s.nbits += take
		s.putUint(s.nbits-take, take, v)
		i += take
		rem -= take
	}
	return nil
}

// CopyRange returns a new store holding the n bits starting at start,
// re-packed at offset zero.
func (s *Store) CopyRange(start, n int) (*Store, error) {
	if err := s.checkRange(start, n); err != nil {
		return nil, err
	}
	dst := &Store{data: make([]byte, 0, (n+7)>>3)}
	_ = dst.AppendRange(s, start, n) // bounds already checked
	return dst, nil
}

// RangeBytes returns the n bits starting at start packed into bytes, most
// significant bit first, with any final partial byte zero-padded.
func (s *Store) RangeBytes(start, n int) ([]byte, error) {
	dst, err := s.CopyRange(start, n)
	if err != nil {
		return nil, err
	}
	return dst.data, nil
}

// EqualRange reports whether the n bits at aStart equal the n bits of b at
// bStart. Alignment of the two ranges is irrelevant.
func (s *Store) EqualRange(aStart int, b *Store, bStart, n int) bool {
	if s.checkRange(aStart, n) != nil || b.checkRange(bStart, n) != nil {
		return false
	}
	i, j, rem := aStart, bStart, n
	for rem > 0 {
		take := rem
		if take > 64 {
			take = 64
		}
		if s.uint(i, take) != b.uint(j, take) {
			return false
		}
		i += take
		j += take
		rem -= take
	}
	return true
}

// HashRange returns a hash of the n bits starting at start. Ranges that are
// EqualRange hash equal, independent of byte alignment.
func (s *Store) HashRange(start, n int) uint64 {
	if s.checkRange(start, n) != nil {
		return 0
	}
	h := fnv.New64a()
	var buf [8]byte
	i, rem := start, n
	for rem > 0 {
		take := rem
		if take > 64 {
			take = 64
		}
		binary.BigEndian.PutUint64(buf[:], s.uint(i, take))
		h.Write(buf[:])
		i += take
		rem -= take
	}
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	h.Write(buf[:])
	return h.Sum64()
}

// CountRange returns the number of one bits in the n bits starting at start.
func (s *Store) CountRange(start, n int) int {
	if s.checkRange(start, n) != nil {
		return 0
	}
	total := 0
	i, rem := start, n
	for rem > 0 {
		take := rem
		if take > 64 {
			take = 64
		}
		total += bits.OnesCount64(s.uint(i, take))
		i += take
		rem -= take
	}
	return total
}

// Truncate shrinks the store to n bits and re-zeroes the trailing padding.
func (s *Store) Truncate(n int) error {
	if n < 0 || n > s.nbits {
		return fmt.Errorf("truncate to %d bits of %d: %w", n, s.nbits, ErrOutOfRange)
	}
	s.nbits = n
	s.data = s.data[:(n+7)>>3]
	s.zeroTail()
	return nil
}

// zeroTail clears bits past the logical length in the final byte.
func (s *Store) zeroTail() {
	if tail := s.nbits & 7; tail != 0 {
		s.data[s.nbits>>3] &= ^byte(0) << (8 - uint(tail))
	}
}
