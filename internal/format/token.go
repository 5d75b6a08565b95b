// Package format implements the construction mini-language: a comma-separated
// list of tokens, each decoding to a run of bits. A token is either a digit
// literal ("0b1101", "0o17", "0xdead") or a typed value ("u8=255", "i4=-3",
// "f32=1.5", "bool=1", `bytes="abc"`). Tokens decode in declaration order and
// concatenate into one packed store.
//
// The pipeline is a scanner producing typed Token records followed by a flat
// table-driven decoder, with no intermediate tree.
package format

// Kind identifies the token's type code.
type Kind int

const (
	// KindUnsigned is an unsigned integer ("u<N>=value").
	KindUnsigned Kind = iota
	// KindSigned is a two's-complement signed integer ("i<N>=value").
	KindSigned
	// KindFloat is an IEEE-754 float of 16, 32 or 64 bits ("f<N>=value").
	KindFloat
	// KindBool is a single-bit boolean ("bool=1").
	KindBool
	// KindBytes is a raw byte literal ("bytes=\"abc\"").
	KindBytes
	// KindBin is a binary digit run, one bit per digit ("0b1011").
	KindBin
	// KindOct is an octal digit run, three bits per digit ("0o17").
	KindOct
	// KindHex is a hexadecimal digit run, four bits per digit ("0xdead").
	KindHex
)

func (k Kind) String() string {
	switch k {
	case KindUnsigned:
		return "u"
	case KindSigned:
		return "i"
	case KindFloat:
		return "f"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindBin:
		return "bin"
	case KindOct:
		return "oct"
	case KindHex:
		return "hex"
	}
	return "unknown"
}

// noLength marks a token whose type code carried no explicit bit length.
const noLength = -1

// Token is one scanned unit of a format string.
type Token struct {
	Kind   Kind
	BitLen int    // explicit bit length, or noLength
	Value  string // literal digits or the text right of "="
	Pos    int    // zero-based token index within the format string
	Text   string // original field text, for error reporting
}
