package lexer

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// UnquoteString returns the contents of a string literal as written in the
// source: "..." with escapes, r#"..."# raw, and the b-prefixed byte forms.
// isBytes reports a byte string.
func UnquoteString(lit string) (s string, isBytes bool, err error) {
	if strings.HasPrefix(lit, "b") {
		isBytes = true
		lit = lit[1:]
	}
	if strings.HasPrefix(lit, "r") {
		body := strings.TrimLeft(lit[1:], "#")
		hashes := len(lit) - 1 - len(body)
		if len(body) < 2+hashes || body[0] != '"' {
			return "", isBytes, fmt.Errorf("malformed raw string %q", lit)
		}
		return body[1 : len(body)-1-hashes], isBytes, nil
	}
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", isBytes, fmt.Errorf("malformed string %q", lit)
	}
	s, err = unescape(lit[1 : len(lit)-1])
	return s, isBytes, err
}

// UnquoteChar returns the value of a character literal 'x' or byte
// literal b'x'.
func UnquoteChar(lit string) (r rune, isByte bool, err error) {
	if strings.HasPrefix(lit, "b") {
		isByte = true
		lit = lit[1:]
	}
	if len(lit) < 3 || lit[0] != '\'' || lit[len(lit)-1] != '\'' {
		return 0, isByte, fmt.Errorf("malformed character %q", lit)
	}
	s, err := unescape(lit[1 : len(lit)-1])
	if err != nil {
		return 0, isByte, err
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, isByte, fmt.Errorf("character literal %q must hold exactly one character", lit)
	}
	r, _ = utf8.DecodeRuneInString(s)
	return r, isByte, nil
}

func unescape(s string) (string, error) { //nolint:gocognit
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("unterminated escape sequence")
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		case '"', '\'':
			b.WriteByte(s[i])
		case 'x':
			if i+2 >= len(s) {
				return "", fmt.Errorf("invalid escape sequence \\x")
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid escape sequence \\x%s", s[i+1:i+3])
			}
			b.WriteByte(byte(v))
			i += 2
		case 'u':
			if i+1 >= len(s) || s[i+1] != '{' {
				return "", fmt.Errorf("invalid unicode escape")
			}
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("invalid unicode escape")
			}
			hex := strings.ReplaceAll(s[i+2:i+end], "_", "")
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || v > utf8.MaxRune || v >= 0xD800 && v <= 0xDFFF {
				return "", fmt.Errorf("invalid unicode escape \\u{%s}", hex)
			}
			b.WriteRune(rune(v))
			i += end
		case '\n', '\r':
			// A backslash before a line break continues the string on the
			// next line without the break and its indentation.
			for i+1 < len(s) && strings.IndexByte(" \t\r\n", s[i+1]) >= 0 {
				i++
			}
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", s[i])
		}
	}
	return b.String(), nil
}

var intSuffixes = []string{"i128", "u128", "isize", "usize", "i16", "i32", "i64", "u16", "u32", "u64", "i8", "u8"}

// ParseInt parses an integer literal. The result is an int64 when the value
// fits, a uint64 when only that fits, and a *big.Int otherwise.
func ParseInt(lit string) (any, error) {
	s := strings.ReplaceAll(lit, "_", "")
	for _, suffix := range intSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			s = s[2:]
		}
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", lit)
	}
	if neg {
		n.Neg(n)
	}
	switch {
	case n.IsInt64():
		return n.Int64(), nil
	case n.IsUint64():
		return n.Uint64(), nil
	default:
		return n, nil
	}
}

// ParseFloat parses a float literal, including inf, -inf and NaN.
func ParseFloat(lit string) (float64, error) {
	s := strings.ReplaceAll(lit, "_", "")
	s = strings.TrimSuffix(strings.TrimSuffix(s, "f32"), "f64")
	switch strings.TrimLeft(s, "+-") {
	case "inf":
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	case "NaN":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", lit)
	}
	return f, nil
}
