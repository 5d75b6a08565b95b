package bitstore

import (
	"errors"
	"testing"
)

func TestFromBytesBits(t *testing.T) {
	s := FromBytes([]byte{0xa0})
	if s.Len() != 8 {
		t.Fatalf("length: %d", s.Len())
	}
	want := []bool{true, false, true, false, false, false, false, false}
	for i, w := range want {
		got, err := s.Bit(i)
		if err != nil {
			t.Fatalf("Bit(%d): %v", i, err)
		}
		if got != w {
			t.Fatalf("bit %d: got %v, want %v", i, got, w)
		}
	}
}

func TestUintCrossesByteBoundary(t *testing.T) {
	s := FromBytes([]byte{0x12, 0x34, 0x56})
	v, err := s.Uint(4, 16)
	if err != nil {
		t.Fatalf("Uint: %v", err)
	}
	if v != 0x2345 {
		t.Fatalf("got %#x, want 0x2345", v)
	}
	v, err = s.Uint(0, 24)
	if err != nil {
		t.Fatalf("Uint: %v", err)
	}
	if v != 0x123456 {
		t.Fatalf("got %#x, want 0x123456", v)
	}
}

func TestPutUintRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		start, n int
		v        uint64
	}{
		{0, 1, 1},
		{3, 5, 0x15},
		{7, 9, 0x1ff},
		{5, 64, 0xdeadbeefcafef00d},
		{0, 64, ^uint64(0)},
	} {
		s, err := New(80)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := s.PutUint(tc.start, tc.n, tc.v); err != nil {
			t.Fatalf("PutUint(%d, %d): %v", tc.start, tc.n, err)
		}
		got, err := s.Uint(tc.start, tc.n)
		if err != nil {
			t.Fatalf("Uint: %v", err)
		}
		if got != tc.v {
			t.Fatalf("round trip at %d width %d: got %#x, want %#x", tc.start, tc.n, got, tc.v)
		}
		// Neighbouring bits stay zero.
		if tc.start > 0 {
			before, _ := s.Uint(0, tc.start)
			if before != 0 {
				t.Fatalf("bits before window dirtied: %#x", before)
			}
		}
	}
}

func TestIntSignExtension(t *testing.T) {
	s, _ := New(16)
	if err := s.PutUint(4, 4, 0xf); err != nil {
		t.Fatalf("PutUint: %v", err)
	}
	v, err := s.Int(4, 4)
	if err != nil {
		t.Fatalf("Int: %v", err)
	}
	if v != -1 {
		t.Fatalf("got %d, want -1", v)
	}
	v, err = s.Int(4, 5)
	if err != nil {
		t.Fatalf("Int: %v", err)
	}
	if v != 15 {
		t.Fatalf("got %d, want 15", v)
	}
}

func TestBoundsErrors(t *testing.T) {
	s, _ := New(10)
	if _, err := s.Bit(10); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Bit(10): %v", err)
	}
	if _, err := s.Bit(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Bit(-1): %v", err)
	}
	if _, err := s.Uint(8, 3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Uint past end: %v", err)
	}
	if _, err := s.Uint(0, 65); !errors.Is(err, ErrWidth) {
		t.Fatalf("Uint width 65: %v", err)
	}
	if err := s.PutUint(0, -1, 0); !errors.Is(err, ErrWidth) {
		t.Fatalf("PutUint width -1: %v", err)
	}
	if _, err := New(-1); !errors.Is(err, ErrNegativeLength) {
		t.Fatalf("New(-1): %v", err)
	}
}

func TestAppendGrows(t *testing.T) {
	s := &Store{}
	for i := 0; i < 100; i++ {
		s.AppendBit(i%3 == 0)
	}
	if s.Len() != 100 {
		t.Fatalf("length: %d", s.Len())
	}
	for i := 0; i < 100; i++ {
		got, _ := s.Bit(i)
		if got != (i%3 == 0) {
			t.Fatalf("bit %d: %v", i, got)
		}
	}
}

func TestAppendRangeSelf(t *testing.T) {
	s := FromBytes([]byte{0xc3})
	if err := s.AppendRange(s, 0, 8); err != nil {
		t.Fatalf("AppendRange: %v", err)
	}
	v, err := s.Uint(0, 16)
	if err != nil {
		t.Fatalf("Uint: %v", err)
	}
	if v != 0xc3c3 {
		t.Fatalf("got %#x, want 0xc3c3", v)
	}
}

func TestCopyRangeRealigns(t *testing.T) {
	s := FromBytes([]byte{0x0f, 0xf0})
	c, err := s.CopyRange(4, 8)
	if err != nil {
		t.Fatalf("CopyRange: %v", err)
	}
	v, _ := c.Uint(0, 8)
	if v != 0xff {
		t.Fatalf("got %#x, want 0xff", v)
	}
	// The copy is detached from the source.
	if err := c.SetBit(0, false); err != nil {
		t.Fatalf("SetBit: %v", err)
	}
	orig, _ := s.Uint(4, 8)
	if orig != 0xff {
		t.Fatalf("source modified through copy: %#x", orig)
	}
}

func TestEqualRangeIgnoresAlignment(t *testing.T) {
	a := FromBytes([]byte{0x0f, 0xf0})
	b := FromBytes([]byte{0xff})
	if !a.EqualRange(4, b, 0, 8) {
		t.Fatal("mid-byte range should equal aligned range")
	}
	if a.EqualRange(3, b, 0, 8) {
		t.Fatal("shifted range should differ")
	}
}

func TestHashRangeAlignmentIndependent(t *testing.T) {
	a := FromBytes([]byte{0x0f, 0xf0})
	b := FromBytes([]byte{0xff})
	if a.HashRange(4, 8) != b.HashRange(0, 8) {
		t.Fatal("equal ranges must hash equal")
	}
	if a.HashRange(0, 8) == b.HashRange(0, 8) {
		t.Fatal("distinct ranges should not collide here")
	}
	// Same leading bits, different lengths.
	if b.HashRange(0, 8) == b.HashRange(0, 4) {
		t.Fatal("length must feed the hash")
	}
}

func TestCountRange(t *testing.T) {
	s := FromBytes([]byte{0xf0, 0x01})
	if got := s.CountRange(0, 16); got != 5 {
		t.Fatalf("count full: %d", got)
	}
	if got := s.CountRange(2, 6); got != 2 {
		t.Fatalf("count window: %d", got)
	}
}

func TestTruncateZeroesTail(t *testing.T) {
	s := FromBytes([]byte{0xff})
	if err := s.Truncate(3); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("length: %d", s.Len())
	}
	// Re-extend over the old tail: padding must have been cleared.
	s.AppendBit(false)
	v, _ := s.Uint(0, 4)
	if v != 0xe {
		t.Fatalf("tail not re-zeroed: %#x", v)
	}
	if err := s.Truncate(5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("growing truncate: %v", err)
	}
}
