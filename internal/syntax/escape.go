package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EscapeError reports a malformed escape sequence. Offset is the byte offset
// of the backslash within the escaped text.
type EscapeError struct {
	Offset int
	Seq    string
	Reason string
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("malformed escape %q: %s", e.Seq, e.Reason)
}

var shortEscapes = map[byte]rune{
	't':  '\t',
	'b':  '\b',
	'n':  '\n',
	'r':  '\r',
	'f':  '\f',
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
}

// Unescape decodes UCHAR (\uXXXX, \UXXXXXXXX) and ECHAR sequences.
func Unescape(s string) (string, error) {
	i := strings.IndexByte(s, '\\')
	if i < 0 {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for i < len(s) {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", &EscapeError{Offset: i, Seq: s[i:], Reason: "dangling backslash"}
		}
		next := s[i+1]
		if r, ok := shortEscapes[next]; ok {
			b.WriteRune(r)
			i += 2
			continue
		}
		var width int
		switch next {
		case 'u':
			width = 4
		case 'U':
			width = 8
		default:
			return "", &EscapeError{Offset: i, Seq: s[i : i+2], Reason: "unknown escape"}
		}
		r, err := decodeHex(s, i, width)
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
		i += 2 + width
	}
	return b.String(), nil
}

// UnescapeIRI decodes an IRIREF body, where only UCHAR escapes are allowed.
func UnescapeIRI(s string) (string, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			continue
		}
		if i+1 >= len(s) {
			return "", &EscapeError{Offset: i, Seq: s[i:], Reason: "dangling backslash"}
		}
		if s[i+1] != 'u' && s[i+1] != 'U' {
			return "", &EscapeError{Offset: i, Seq: s[i : i+2], Reason: "only UCHAR escapes are allowed in an IRI"}
		}
		i++
	}
	return Unescape(s)
}

func decodeHex(s string, at, width int) (rune, error) {
	end := at + 2 + width
	if end > len(s) {
		return 0, &EscapeError{Offset: at, Seq: s[at:], Reason: "truncated code point"}
	}
	var v uint32
	for _, c := range []byte(s[at+2 : end]) {
		if !IsHexDigit(rune(c)) {
			return 0, &EscapeError{Offset: at, Seq: s[at:end], Reason: "non-hex digit"}
		}
		v = v<<4 | uint32(hexValue(c))
	}
	if v > utf8.MaxRune {
		return 0, &EscapeError{Offset: at, Seq: s[at:end], Reason: "code point out of range"}
	}
	if v >= 0xD800 && v <= 0xDFFF {
		return 0, &EscapeError{Offset: at, Seq: s[at:end], Reason: "surrogate code point"}
	}
	return rune(v), nil
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// UnescapeLocal strips the backslash from PN_LOCAL_ESC sequences. Percent
// escapes are left as written.
func UnescapeLocal(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
