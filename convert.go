package tibs

import (
	"fmt"
	"math"
	"strings"

	"github.com/scott-griffiths/tibs/internal/f16"
)

const hexDigits = "0123456789abcdef"

// ToBytes returns the sequence packed into bytes, most significant bit
// first. The length must be a whole number of bytes; ToBytes never pads or
// truncates.
func (b Bits) ToBytes() ([]byte, error) {
	if b.n%8 != 0 {
		return nil, fmt.Errorf("to bytes with %d bits: %w", b.n, ErrLength)
	}
	if b.n == 0 {
		return []byte{}, nil
	}
	return b.store.RangeBytes(b.off, b.n)
}

// ToBin returns the sequence as a string of '0' and '1' digits.
func (b Bits) ToBin() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		v, _ := b.store.Uint(b.off+i, 1)
		sb.WriteByte('0' + byte(v))
	}
	return sb.String()
}

// ToHex returns the sequence as lowercase hex digits, four bits per digit.
// The length must be divisible by four.
func (b Bits) ToHex() (string, error) {
	if b.n%4 != 0 {
		return "", fmt.Errorf("to hex with %d bits: %w", b.n, ErrPadding)
	}
	var sb strings.Builder
	sb.Grow(b.n / 4)
	for i := 0; i < b.n; i += 4 {
		v, _ := b.store.Uint(b.off+i, 4)
		sb.WriteByte(hexDigits[v])
	}
	return sb.String(), nil
}

// ToOct returns the sequence as octal digits, three bits per digit. The
// length must be divisible by three.
func (b Bits) ToOct() (string, error) {
	if b.n%3 != 0 {
		return "", fmt.Errorf("to octal with %d bits: %w", b.n, ErrPadding)
	}
	var sb strings.Builder
	sb.Grow(b.n / 3)
	for i := 0; i < b.n; i += 3 {
		v, _ := b.store.Uint(b.off+i, 3)
		sb.WriteByte('0' + byte(v))
	}
	return sb.String(), nil
}

// ToUint interprets the whole sequence as an unsigned integer, most
// significant bit first. The length must be 1 to 64 bits.
func (b Bits) ToUint() (uint64, error) {
	if b.n < 1 || b.n > 64 {
		return 0, fmt.Errorf("to uint with %d bits: %w", b.n, ErrLength)
	}
	return b.store.Uint(b.off, b.n)
}

// ToInt interprets the whole sequence as a two's-complement signed integer.
// The length must be 1 to 64 bits.
func (b Bits) ToInt() (int64, error) {
	if b.n < 1 || b.n > 64 {
		return 0, fmt.Errorf("to int with %d bits: %w", b.n, ErrLength)
	}
	return b.store.Int(b.off, b.n)
}

// ToFloat interprets the sequence as an IEEE-754 float. The length must be
// 16, 32 or 64 bits.
func (b Bits) ToFloat() (float64, error) {
	switch b.n {
	case 16:
		v, _ := b.store.Uint(b.off, 16)
		return f16.ToFloat64(f16.Bits(v)), nil
	case 32:
		v, _ := b.store.Uint(b.off, 32)
		return float64(math.Float32frombits(uint32(v))), nil
	case 64:
		v, _ := b.store.Uint(b.off, 64)
		return math.Float64frombits(v), nil
	default:
		return 0, fmt.Errorf("to float with %d bits: %w", b.n, ErrLength)
	}
}
