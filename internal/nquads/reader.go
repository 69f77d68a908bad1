package nquads

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// DefaultMaxLineBytes is the longest line a Reader accepts by default.
const DefaultMaxLineBytes = 1 << 20

// Options configures a Reader.
type Options struct {
	// Quads enables the optional graph label of N-Quads.
	Quads bool
	// MaxLineBytes bounds the line buffer; <= 0 selects DefaultMaxLineBytes.
	MaxLineBytes int
}

// Reader yields one statement per non-blank line, holding only the current
// line in memory. Blank-node labels share one scope for the whole input.
type Reader struct {
	scanner  *bufio.Scanner
	env      *rdf.Environment
	opts     Options
	line     int
	offset   int
	consumed int
	err      error
}

// NewReader returns a Reader over r resolving blank nodes through env.
func NewReader(r io.Reader, env *rdf.Environment, opts Options) *Reader {
	if opts.MaxLineBytes <= 0 {
		opts.MaxLineBytes = DefaultMaxLineBytes
	}
	rd := &Reader{env: env, opts: opts}
	rd.scanner = bufio.NewScanner(r)
	rd.scanner.Buffer(make([]byte, 0, min(4096, opts.MaxLineBytes)), opts.MaxLineBytes)
	rd.scanner.Split(rd.splitLines)
	return rd
}

// splitLines splits on LF, CRLF or a lone CR.
func (r *Reader) splitLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance := i + 1
		if data[i] == '\r' {
			if i+1 >= len(data) && !atEOF {
				return 0, nil, nil
			}
			if i+1 < len(data) && data[i+1] == '\n' {
				advance++
			}
		}
		r.consumed = advance
		return advance, data[:i], nil
	}
	if atEOF {
		r.consumed = len(data)
		return len(data), data, nil
	}
	return 0, nil, nil
}

func (r *Reader) format() string {
	if r.opts.Quads {
		return FormatNQuads
	}
	return FormatNTriples
}

// Next returns the next statement, or io.EOF after the last one. Triples in
// N-Triples input are returned in the default graph.
func (r *Reader) Next() (*rdf.Quad, error) {
	if r.err != nil {
		return nil, r.err
	}
	for r.scanner.Scan() {
		r.line++
		lineOffset := r.offset
		r.offset += r.consumed
		text := r.scanner.Bytes()
		if !utf8.Valid(text) {
			r.err = r.invalidUTF8(text, lineOffset)
			return nil, r.err
		}
		quad, err := ParseLine(string(text), r.line, lineOffset, r.opts.Quads, r.env)
		if err != nil {
			r.err = err
			return nil, err
		}
		if quad != nil {
			return quad, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = rdf.NewParseError(r.format(),
				rdf.Position{Line: r.line + 1, Column: 1, Offset: r.offset},
				fmt.Errorf("%w: line exceeds %d bytes", rdf.ErrSyntax, r.opts.MaxLineBytes))
		}
		r.err = err
		return nil, err
	}
	r.err = io.EOF
	return nil, io.EOF
}

func (r *Reader) invalidUTF8(text []byte, lineOffset int) error {
	at := 0
	for at < len(text) {
		c, size := utf8.DecodeRune(text[at:])
		if c == utf8.RuneError && size == 1 {
			break
		}
		at += size
	}
	return rdf.NewParseError(r.format(),
		rdf.Position{Line: r.line, Column: utf8.RuneCount(text[:at]) + 1, Offset: lineOffset + at},
		fmt.Errorf("%w: invalid UTF-8 byte 0x%02x", rdf.ErrSyntax, text[at]))
}

// ReadAll drains r into sink.
func (r *Reader) ReadAll(sink rdf.QuadSink) error {
	for {
		quad, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := sink.AddQuad(quad); err != nil {
			return err
		}
	}
}
