package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/scott-griffiths/tibs/internal/bitstore"
	"github.com/scott-griffiths/tibs/internal/f16"
)

// decoders dispatches on the token's type code. Each decoder appends the
// token's bit encoding to the accumulator store.
var decoders = map[Kind]func(Token, *bitstore.Store) error{
	KindUnsigned: decodeUnsigned,
	KindSigned:   decodeSigned,
	KindFloat:    decodeFloat,
	KindBool:     decodeBool,
	KindBytes:    decodeBytes,
	KindBin:      decodeDigits,
	KindOct:      decodeDigits,
	KindHex:      decodeDigits,
}

// Parse tokenizes a format string and decodes the tokens, in declaration
// order, into a single store.
func Parse(s string) (*bitstore.Store, error) {
	tokens, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	return Decode(tokens)
}

// Decode concatenates the bit encodings of tokens into one store.
func Decode(tokens []Token) (*bitstore.Store, error) {
	st := &bitstore.Store{}
	for _, tok := range tokens {
		if err := decoders[tok.Kind](tok, st); err != nil {
			return nil, fmt.Errorf("token %d %q: %w", tok.Pos, tok.Text, err)
		}
	}
	return st, nil
}

// DecodeLiteral decodes a bare digit run of the given literal kind. The
// matching "0b"/"0o"/"0x" prefix is optional and whitespace and underscores
// are ignored, so it accepts both "0b0101" and "01 01".
func DecodeLiteral(kind Kind, s string) (*bitstore.Store, error) {
	c := compact(s)
	var prefix byte
	switch kind {
	case KindBin:
		prefix = 'b'
	case KindOct:
		prefix = 'o'
	case KindHex:
		prefix = 'x'
	default:
		return nil, fmt.Errorf("literal of kind %v: %w", kind, ErrUnknownType)
	}
	if len(c) >= 2 && c[0] == '0' && (c[1] == prefix || c[1] == prefix+'A'-'a') {
		c = c[2:]
	}
	st := &bitstore.Store{}
	if err := decodeDigits(Token{Kind: kind, Value: c}, st); err != nil {
		return nil, err
	}
	return st, nil
}

func requireLength(tok Token) error {
	if tok.BitLen == noLength {
		return fmt.Errorf("type %v: %w", tok.Kind, ErrMissingLength)
	}
	return nil
}

func decodeUnsigned(tok Token, st *bitstore.Store) error {
	if err := requireLength(tok); err != nil {
		return err
	}
	n := tok.BitLen
	if n < 1 || n > 64 {
		return fmt.Errorf("u%d: %w", n, ErrUnsupportedLength)
	}
	v, err := strconv.ParseUint(tok.Value, 0, 64)
	if err != nil {
		if _, ierr := strconv.ParseInt(tok.Value, 0, 64); errors.Is(err, strconv.ErrRange) || ierr == nil {
			// Parses as an integer but not as an unsigned one in range.
			return fmt.Errorf("value %q: %w", tok.Value, ErrRange)
		}
		return fmt.Errorf("value %q: %w", tok.Value, ErrParse)
	}
	if n < 64 && v >= 1<<uint(n) {
		return fmt.Errorf("value %d does not fit u%d: %w", v, n, ErrRange)
	}
	return st.AppendUint(n, v)
}

func decodeSigned(tok Token, st *bitstore.Store) error {
	if err := requireLength(tok); err != nil {
		return err
	}
	n := tok.BitLen
	if n < 1 || n > 64 {
		return fmt.Errorf("i%d: %w", n, ErrUnsupportedLength)
	}
	v, err := strconv.ParseInt(tok.Value, 0, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("value %q: %w", tok.Value, ErrRange)
		}
		return fmt.Errorf("value %q: %w", tok.Value, ErrParse)
	}
	if n < 64 && (v < -(1<<uint(n-1)) || v >= 1<<uint(n-1)) {
		return fmt.Errorf("value %d does not fit i%d: %w", v, n, ErrRange)
	}
	return st.AppendUint(n, uint64(v))
}

func decodeFloat(tok Token, st *bitstore.Store) error {
	if err := requireLength(tok); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("value %q: %w", tok.Value, ErrRange)
		}
		return fmt.Errorf("value %q: %w", tok.Value, ErrParse)
	}
	switch tok.BitLen {
	case 16:
		return st.AppendUint(16, uint64(f16.FromFloat32(float32(f))))
	case 32:
		return st.AppendUint(32, uint64(math.Float32bits(float32(f))))
	case 64:
		return st.AppendUint(64, math.Float64bits(f))
	default:
		return fmt.Errorf("f%d: %w", tok.BitLen, ErrUnsupportedLength)
	}
}

func decodeBool(tok Token, st *bitstore.Store) error {
	// The implicit length is 1; an explicit length is allowed only when it
	// matches.
	if tok.BitLen != noLength && tok.BitLen != 1 {
		return fmt.Errorf("bool%d: %w", tok.BitLen, ErrUnsupportedLength)
	}
	switch tok.Value {
	case "1", "true", "True":
		st.AppendBit(true)
	case "0", "false", "False":
		st.AppendBit(false)
	default:
		return fmt.Errorf("value %q: %w", tok.Value, ErrParse)
	}
	return nil
}

func decodeBytes(tok Token, st *bitstore.Store) error {
	if tok.BitLen != noLength {
		return fmt.Errorf("bytes%d: %w", tok.BitLen, ErrUnsupportedLength)
	}
	v := tok.Value
	if len(v) < 2 || !strings.HasPrefix(v, `"`) || !strings.HasSuffix(v, `"`) {
		return fmt.Errorf("byte literal %q must be double-quoted: %w", v, ErrParse)
	}
	for _, b := range []byte(v[1 : len(v)-1]) {
		if err := st.AppendUint(8, uint64(b)); err != nil {
			return err
		}
	}
	return nil
}

// bitsPerDigit gives the fixed expansion of one literal digit.
var bitsPerDigit = map[Kind]int{KindBin: 1, KindOct: 3, KindHex: 4}

func decodeDigits(tok Token, st *bitstore.Store) error {
	width := bitsPerDigit[tok.Kind]
	for i := 0; i < len(tok.Value); i++ {
		d := digitValue(tok.Value[i])
		if d < 0 || d >= 1<<uint(width) {
			return fmt.Errorf("digit %q in %v literal: %w", tok.Value[i], tok.Kind, ErrParse)
		}
		if err := st.AppendUint(width, uint64(d)); err != nil {
			return err
		}
	}
	return nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
