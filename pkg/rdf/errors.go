package rdf

import (
	"errors"
	"fmt"
)

// Parse failures wrap exactly one of these.
var (
	ErrSyntax          = errors.New("syntax error")
	ErrIllegalIRI      = errors.New("illegal IRI")
	ErrUndefinedPrefix = errors.New("undefined prefix")
	ErrInvalidLiteral  = errors.New("invalid literal")
)

// ErrorKind identifies a member of the parse error taxonomy.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindSyntax
	KindIllegalIRI
	KindUndefinedPrefix
	KindInvalidLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindIllegalIRI:
		return "IllegalIRI"
	case KindUndefinedPrefix:
		return "UndefinedPrefix"
	case KindInvalidLiteral:
		return "InvalidLiteral"
	default:
		return "Unknown"
	}
}

// KindOf classifies err. Errors outside the taxonomy (I/O failures, for
// instance) report KindUnknown.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrSyntax):
		return KindSyntax
	case errors.Is(err, ErrIllegalIRI):
		return KindIllegalIRI
	case errors.Is(err, ErrUndefinedPrefix):
		return KindUndefinedPrefix
	case errors.Is(err, ErrInvalidLiteral):
		return KindInvalidLiteral
	default:
		return KindUnknown
	}
}

// Position locates a token in the input. Line and Column are 1-based and
// Column counts runes; Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is returned by every parser in this module.
type ParseError struct {
	Format string
	Position
	Err error
}

// NewParseError attaches a position to err.
func NewParseError(format string, pos Position, err error) *ParseError {
	return &ParseError{Format: format, Position: pos, Err: err}
}

func (e *ParseError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("%s: %v", e.Position, e.Err)
	}
	return fmt.Sprintf("%s:%s: %v", e.Format, e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind returns the taxonomy member of the wrapped error.
func (e *ParseError) Kind() ErrorKind {
	return KindOf(e.Err)
}
