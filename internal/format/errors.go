package format

import "errors"

var (
	// ErrParse indicates malformed token syntax.
	ErrParse = errors.New("format: cannot parse token")

	// ErrRange indicates a value that does not fit the signed or unsigned
	// range implied by the token's bit length.
	ErrRange = errors.New("format: value out of range for bit length")

	// ErrMissingLength indicates a type code that requires an explicit bit
	// length but was given none.
	ErrMissingLength = errors.New("format: missing bit length")

	// ErrUnsupportedLength indicates a bit length the type cannot encode.
	ErrUnsupportedLength = errors.New("format: unsupported bit length")

	// ErrUnknownType indicates an unrecognized type code.
	ErrUnknownType = errors.New("format: unknown type code")
)
