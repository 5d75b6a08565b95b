package bitstore

import "errors"

var (
	// ErrOutOfRange indicates a bit position or range outside the store's
	// logical length.
	ErrOutOfRange = errors.New("bitstore: position out of range")

	// ErrWidth indicates an integer read or write wider than 64 bits.
	ErrWidth = errors.New("bitstore: integer width out of range")

	// ErrNegativeLength indicates a negative bit count.
	ErrNegativeLength = errors.New("bitstore: negative length")
)
