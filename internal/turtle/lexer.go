package turtle

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aleksaelezovic/rdfparse/internal/syntax"
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// Lexer splits a Turtle document into tokens. Longer forms always win:
// triple-quoted strings over short strings, prefixed names over bare
// keywords, "[]" over '['.
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
}

// NewLexer returns a lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

func (l *Lexer) mark() rdf.Position {
	return rdf.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) errorf(pos rdf.Position, format string, args ...any) error {
	return rdf.NewParseError(formatName, pos, fmt.Errorf("%w: "+format, append([]any{rdf.ErrSyntax}, args...)...))
}

// advanceTo moves to byte offset end, keeping line and column current.
func (l *Lexer) advanceTo(end int) {
	for l.pos < end {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += size
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
}

func (l *Lexer) byteAt(i int) byte {
	if i < len(l.input) {
		return l.input[i]
	}
	return 0
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case syntax.IsWhitespace(rune(c)):
			l.advanceTo(l.pos + 1)
		case c == '#':
			end := strings.IndexAny(l.input[l.pos:], "\r\n")
			if end < 0 {
				l.advanceTo(len(l.input))
			} else {
				l.advanceTo(l.pos + end)
			}
		default:
			return
		}
	}
}

// Next returns the next token, or a TokenEOF token at the end of input.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	start := l.mark()
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: start}, nil
	}

	c := l.input[l.pos]
	switch c {
	case '<':
		return l.lexIRIRef(start)
	case '"', '\'':
		return l.lexString(start)
	case '@':
		return l.lexLangTag(start)
	case '[':
		return l.lexBracket(start)
	case ']':
		return l.punct(start, TokenRBracket), nil
	case '(':
		return l.punct(start, TokenLParen), nil
	case ')':
		return l.punct(start, TokenRParen), nil
	case ',':
		return l.punct(start, TokenComma), nil
	case ';':
		return l.punct(start, TokenSemicolon), nil
	case '^':
		if l.byteAt(l.pos+1) != '^' {
			return Token{}, l.errorf(start, "expected '^^'")
		}
		l.advanceTo(l.pos + 2)
		return Token{Kind: TokenDatatypeMark, Pos: start}, nil
	case '.':
		if syntax.IsDigit(rune(l.byteAt(l.pos + 1))) {
			return l.lexNumber(start)
		}
		return l.punct(start, TokenDot), nil
	case '+', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.lexNumber(start)
	case ':':
		return l.lexPrefixedName(start, l.pos)
	case '_':
		if l.byteAt(l.pos+1) == ':' {
			return l.lexBlankNodeLabel(start)
		}
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if r == utf8.RuneError && size == 1 {
		return Token{}, l.errorf(start, "invalid UTF-8 byte 0x%02x", c)
	}
	if syntax.IsPNCharsBase(r) {
		return l.lexName(start)
	}
	return Token{}, l.errorf(start, "unexpected character %q", r)
}

func (l *Lexer) punct(start rdf.Position, kind TokenKind) Token {
	l.advanceTo(l.pos + 1)
	return Token{Kind: kind, Pos: start}
}

// lexIRIRef scans up to the closing '>'. Character legality is checked after
// escape decoding, so anything but a line break is accepted here.
func (l *Lexer) lexIRIRef(start rdf.Position) (Token, error) {
	i := l.pos + 1
	for i < len(l.input) {
		switch l.input[i] {
		case '>':
			tok := Token{Kind: TokenIRIRef, Text: l.input[l.pos+1 : i], Pos: start}
			l.advanceTo(i + 1)
			return tok, nil
		case '\n', '\r':
			return Token{}, l.errorf(start, "unterminated IRI reference")
		case '\\':
			i += 2
		default:
			i++
		}
	}
	return Token{}, l.errorf(start, "unterminated IRI reference")
}

func (l *Lexer) lexString(start rdf.Position) (Token, error) {
	q := l.input[l.pos]
	if l.byteAt(l.pos+1) == q && l.byteAt(l.pos+2) == q {
		return l.lexLongString(start, q)
	}
	i := l.pos + 1
	for i < len(l.input) {
		switch l.input[i] {
		case q:
			tok := Token{Kind: TokenString, Text: l.input[l.pos+1 : i], Pos: start}
			l.advanceTo(i + 1)
			return tok, nil
		case '\n', '\r':
			return Token{}, l.errorf(start, "line break in short string")
		case '\\':
			i += 2
		default:
			i++
		}
	}
	return Token{}, l.errorf(start, "unterminated string")
}

func (l *Lexer) lexLongString(start rdf.Position, q byte) (Token, error) {
	contentStart := l.pos + 3
	i := contentStart
	for i < len(l.input) {
		switch l.input[i] {
		case '\\':
			i += 2
			continue
		case q:
			if !strings.HasPrefix(l.input[i:], strings.Repeat(string(q), 3)) {
				i++
				continue
			}
			tok := Token{Kind: TokenString, Text: l.input[contentStart:i], Long: true, Pos: start}
			l.advanceTo(i + 3)
			return tok, nil
		}
		i++
	}
	return Token{}, l.errorf(start, "unterminated long string")
}

func (l *Lexer) lexLangTag(start rdf.Position) (Token, error) {
	i := l.pos + 1
	for i < len(l.input) && isASCIILetter(l.input[i]) {
		i++
	}
	if i == l.pos+1 {
		return Token{}, l.errorf(start, "expected language tag or directive after '@'")
	}
	for l.byteAt(i) == '-' {
		j := i + 1
		for j < len(l.input) && (isASCIILetter(l.input[j]) || syntax.IsDigit(rune(l.input[j]))) {
			j++
		}
		if j == i+1 {
			break
		}
		i = j
	}
	tok := Token{Kind: TokenLangTag, Text: l.input[l.pos+1 : i], Pos: start}
	l.advanceTo(i)
	return tok, nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// lexBracket distinguishes ANON ("[" WS* "]") from an opening property list.
func (l *Lexer) lexBracket(start rdf.Position) (Token, error) {
	saved := *l
	l.advanceTo(l.pos + 1)
	l.skipSpace()
	if l.byteAt(l.pos) == ']' {
		l.advanceTo(l.pos + 1)
		return Token{Kind: TokenAnon, Pos: start}, nil
	}
	*l = saved
	return l.punct(start, TokenLBracket), nil
}

func (l *Lexer) lexNumber(start rdf.Position) (Token, error) {
	i := l.pos
	if c := l.input[i]; c == '+' || c == '-' {
		i++
	}
	intStart := i
	for i < len(l.input) && syntax.IsDigit(rune(l.input[i])) {
		i++
	}
	intDigits := i - intStart
	kind := TokenInteger

	if l.byteAt(i) == '.' {
		switch {
		case syntax.IsDigit(rune(l.byteAt(i + 1))):
			i++
			for i < len(l.input) && syntax.IsDigit(rune(l.input[i])) {
				i++
			}
			kind = TokenDecimal
		case intDigits > 0 && exponentLength(l.input, i+1) > 0:
			i++
		}
	}
	if intDigits == 0 && kind == TokenInteger {
		return Token{}, l.errorf(start, "malformed number")
	}
	if n := exponentLength(l.input, i); n > 0 {
		i += n
		kind = TokenDouble
	}

	tok := Token{Kind: kind, Text: l.input[l.pos:i], Pos: start}
	l.advanceTo(i)
	return tok, nil
}

// exponentLength returns the length of an EXPONENT at i, or 0.
func exponentLength(s string, i int) int {
	if i >= len(s) || (s[i] != 'e' && s[i] != 'E') {
		return 0
	}
	j := i + 1
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits := j
	for j < len(s) && syntax.IsDigit(rune(s[j])) {
		j++
	}
	if j == digits {
		return 0
	}
	return j - i
}

// scanName returns the end of a run of PN_CHARS and '.' starting at i, with
// trailing dots excluded.
func (l *Lexer) scanName(i int) int {
	end := i
	for i < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[i:])
		if r == '.' {
			i += size
			continue
		}
		if !syntax.IsPNChars(r) {
			break
		}
		i += size
		end = i
	}
	return end
}

func (l *Lexer) lexBlankNodeLabel(start rdf.Position) (Token, error) {
	i := l.pos + 2
	r, size := utf8.DecodeRuneInString(l.input[i:])
	if size == 0 || !(syntax.IsPNCharsU(r) || syntax.IsDigit(r)) {
		return Token{}, l.errorf(start, "malformed blank node label")
	}
	end := l.scanName(i + size)
	tok := Token{Kind: TokenBlankNodeLabel, Text: l.input[i:end], Pos: start}
	l.advanceTo(end)
	return tok, nil
}

// lexName handles words starting with PN_CHARS_BASE: a prefixed name when a
// ':' follows the PN_PREFIX, otherwise a bare keyword.
func (l *Lexer) lexName(start rdf.Position) (Token, error) {
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	end := l.scanName(l.pos + size)
	if l.byteAt(end) == ':' {
		return l.lexPrefixedName(start, end)
	}
	tok := Token{Kind: TokenKeyword, Text: l.input[l.pos:end], Pos: start}
	l.advanceTo(end)
	return tok, nil
}

// lexPrefixedName scans PNAME_NS or PNAME_LN; colon is the offset of the ':'.
func (l *Lexer) lexPrefixedName(start rdf.Position, colon int) (Token, error) {
	prefix := l.input[l.pos:colon]
	i := colon + 1
	end := i
	first := true
scan:
	for i < len(l.input) {
		c := l.input[i]
		switch {
		case c == '%':
			if !syntax.IsHexDigit(rune(l.byteAt(i+1))) || !syntax.IsHexDigit(rune(l.byteAt(i+2))) {
				return Token{}, l.errorf(start, "malformed percent escape in local name")
			}
			i += 3
			end = i
		case c == '\\':
			if !syntax.IsLocalEscapable(rune(l.byteAt(i + 1))) {
				return Token{}, l.errorf(start, "malformed escape in local name")
			}
			i += 2
			end = i
		case c == '.' && !first:
			i++
		case c == ':':
			i++
			end = i
		default:
			r, size := utf8.DecodeRuneInString(l.input[i:])
			ok := syntax.IsPNChars(r)
			if first {
				ok = syntax.IsPNCharsU(r) || syntax.IsDigit(r)
			}
			if !ok {
				break scan
			}
			i += size
			end = i
		}
		first = false
	}
	local := l.input[colon+1 : end]
	kind := TokenPNameLN
	if local == "" {
		kind = TokenPNameNS
	}
	tok := Token{Kind: kind, Text: prefix, Local: local, Pos: start}
	l.advanceTo(end)
	return tok, nil
}
