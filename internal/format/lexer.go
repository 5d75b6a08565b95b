package format

import (
	"fmt"
	"strconv"
	"strings"
)

// splitFields splits a format string on commas, ignoring commas inside
// double-quoted sections so byte literals may contain them.
func splitFields(s string) []string {
	var fields []string
	var sb strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			sb.WriteRune(r)
		case r == ',' && !inQuote:
			fields = append(fields, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	fields = append(fields, sb.String())
	return fields
}

// compact strips whitespace and underscore separators, which are permitted
// anywhere inside a digit literal.
func compact(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '_':
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Tokenize splits a format string into tokens. Empty fields are skipped, so
// an empty string yields no tokens and trailing commas are harmless.
func Tokenize(s string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for _, field := range splitFields(s) {
		text := strings.TrimSpace(field)
		if text == "" {
			continue
		}
		tok, err := scanToken(text, pos)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		pos++
	}
	return tokens, nil
}

func scanToken(text string, pos int) (Token, error) {
	// Digit literals tolerate interior whitespace, so classify on the
	// compacted form.
	if c := compact(text); len(c) >= 2 && c[0] == '0' {
		switch c[1] {
		case 'b', 'B':
			return Token{Kind: KindBin, BitLen: noLength, Value: c[2:], Pos: pos, Text: text}, nil
		case 'o', 'O':
			return Token{Kind: KindOct, BitLen: noLength, Value: c[2:], Pos: pos, Text: text}, nil
		case 'x', 'X':
			return Token{Kind: KindHex, BitLen: noLength, Value: c[2:], Pos: pos, Text: text}, nil
		}
	}

	code, value, ok := strings.Cut(text, "=")
	if !ok {
		return Token{}, fmt.Errorf("token %d %q: %w", pos, text, ErrParse)
	}
	code = strings.TrimSpace(code)
	value = strings.TrimSpace(value)
	if code == "" || value == "" {
		return Token{}, fmt.Errorf("token %d %q: %w", pos, text, ErrParse)
	}

	letters := code
	bitLen := noLength
	if i := strings.IndexFunc(code, func(r rune) bool { return r >= '0' && r <= '9' }); i >= 0 {
		letters = code[:i]
		n, err := strconv.Atoi(code[i:])
		if err != nil {
			return Token{}, fmt.Errorf("token %d %q: bad bit length: %w", pos, text, ErrParse)
		}
		bitLen = n
	}

	var kind Kind
	switch letters {
	case "u":
		kind = KindUnsigned
	case "i":
		kind = KindSigned
	case "f":
		kind = KindFloat
	case "bool":
		kind = KindBool
	case "bytes":
		kind = KindBytes
	default:
		return Token{}, fmt.Errorf("token %d %q: type %q: %w", pos, text, letters, ErrUnknownType)
	}
	return Token{Kind: kind, BitLen: bitLen, Value: value, Pos: pos, Text: text}, nil
}
