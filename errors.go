package tibs

import (
	"errors"

	"github.com/scott-griffiths/tibs/internal/bitstore"
	"github.com/scott-griffiths/tibs/internal/format"
)

// Construction-time errors, surfaced by FromString and the other parsing
// constructors. Each is wrapped with the offending token's position and text.
var (
	// ErrParse indicates malformed token syntax in a format string.
	ErrParse = format.ErrParse

	// ErrRange indicates a token value that does not fit the signed or
	// unsigned range implied by its bit length.
	ErrRange = format.ErrRange

	// ErrMissingLength indicates a u/i/f type code without a bit length.
	ErrMissingLength = format.ErrMissingLength

	// ErrUnsupportedLength indicates a bit length the type cannot encode,
	// such as a float length other than 16, 32 or 64.
	ErrUnsupportedLength = format.ErrUnsupportedLength

	// ErrUnknownType indicates an unrecognized type code in a format string.
	ErrUnknownType = format.ErrUnknownType
)

// Operation-time errors.
var (
	// ErrOutOfRange indicates a bit position or slice bound outside the
	// sequence.
	ErrOutOfRange = bitstore.ErrOutOfRange

	// ErrLengthMismatch indicates binary boolean operands or a slice
	// assignment whose lengths differ.
	ErrLengthMismatch = errors.New("tibs: operand lengths differ")

	// ErrPadding indicates a hex or octal interpretation of a length not
	// divisible by the digit width.
	ErrPadding = errors.New("tibs: length not divisible by digit width")

	// ErrLength indicates a length unsuitable for the requested
	// interpretation, such as ToBytes on a sequence not a whole number of
	// bytes long.
	ErrLength = errors.New("tibs: unsuitable length for interpretation")
)
