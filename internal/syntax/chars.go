// Package syntax holds the character classes and escape rules shared by the
// Turtle and N-Triples/N-Quads grammars.
package syntax

// IsPNCharsBase reports whether r matches PN_CHARS_BASE.
func IsPNCharsBase(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
		(r >= 0x00C0 && r <= 0x00D6) || (r >= 0x00D8 && r <= 0x00F6) ||
		(r >= 0x00F8 && r <= 0x02FF) || (r >= 0x0370 && r <= 0x037D) ||
		(r >= 0x037F && r <= 0x1FFF) || (r >= 0x200C && r <= 0x200D) ||
		(r >= 0x2070 && r <= 0x218F) || (r >= 0x2C00 && r <= 0x2FEF) ||
		(r >= 0x3001 && r <= 0xD7FF) || (r >= 0xF900 && r <= 0xFDCF) ||
		(r >= 0xFDF0 && r <= 0xFFFD) || (r >= 0x10000 && r <= 0xEFFFF)
}

// IsPNCharsU reports whether r matches PN_CHARS_U.
func IsPNCharsU(r rune) bool {
	return IsPNCharsBase(r) || r == '_'
}

// IsPNChars reports whether r matches PN_CHARS.
func IsPNChars(r rune) bool {
	return IsPNCharsU(r) || r == '-' || (r >= '0' && r <= '9') || r == 0x00B7 ||
		(r >= 0x0300 && r <= 0x036F) || (r >= 0x203F && r <= 0x2040)
}

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsHexDigit reports whether r matches HEX.
func IsHexDigit(r rune) bool {
	return IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsWhitespace reports whether r matches WS.
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// IsLocalEscapable reports whether r may follow a backslash in PN_LOCAL_ESC.
func IsLocalEscapable(r rune) bool {
	switch r {
	case '_', '~', '.', '-', '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', '/', '?', '#', '@', '%':
		return true
	}
	return false
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsLanguageTag reports whether s (without the leading '@') matches
// [a-zA-Z]+ ('-' [a-zA-Z0-9]+)*.
func IsLanguageTag(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	for i < len(s) {
		if s[i] != '-' {
			return false
		}
		i++
		start := i
		for i < len(s) && (isAlpha(s[i]) || (s[i] >= '0' && s[i] <= '9')) {
			i++
		}
		if i == start {
			return false
		}
	}
	return true
}
