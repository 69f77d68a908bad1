package rdfio

import (
	"fmt"
	"unicode/utf8"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// checkUTF8 reports the position of the first invalid byte in text.
func checkUTF8(format, text string) error {
	if utf8.ValidString(text) {
		return nil
	}
	pos := rdf.Position{Line: 1, Column: 1}
	for pos.Offset < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos.Offset:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		pos.Offset += size
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return rdf.NewParseError(format, pos,
		fmt.Errorf("%w: invalid UTF-8 byte 0x%02x", rdf.ErrSyntax, text[pos.Offset]))
}
