// Package tibs provides containers for sequences of individual bits.
//
// # Overview
//
// Two variants are provided over one packed storage engine:
//
//   - Bits: an immutable bit sequence. Slicing shares storage instead of
//     copying, and instances are safe to share across goroutines.
//   - MutableBits: an exclusively owned, mutable bit sequence. Deriving one
//     from shared storage is cheap; the buffer is cloned lazily at the first
//     mutating call (copy-on-write), so mutation can never be observed
//     through an immutable sibling.
//
// Sequences are constructed from raw bytes, digit literals, random sources,
// or the construction mini-language:
//
//	a, err := tibs.FromString("u8=255, 0b110, f32=1.5")
//	b := tibs.FromBytes([]byte{0xde, 0xad})
//
// # Bit ordering
//
// Bit 0 is the most significant bit of the first byte, and integer windows
// are read and written most-significant-bit first, across byte boundaries.
// FromBytes followed by ToBytes is the identity for every byte sequence.
//
// # The format mini-language
//
// A format string is a comma-separated list of tokens:
//
//	0b1011            binary digits, one bit each
//	0o27              octal digits, three bits each
//	0x deadbeef       hex digits, four bits each (whitespace ignored)
//	u12=100           unsigned integer in 12 bits
//	i4=-3             two's-complement signed integer in 4 bits
//	f32=1.5           IEEE-754 float in 16, 32 or 64 bits
//	bool=1            a single bit
//	bytes="abc"       raw bytes, eight bits each
//
// Malformed input is reported with the token's position and one of the
// sentinel errors in errors.go, so callers can test with errors.Is.
package tibs
