// Package nquads implements the line-oriented N-Triples and N-Quads grammar:
// one statement per line, absolute IRIs only, no directives and no nesting.
package nquads

import (
	"fmt"
	"unicode/utf8"

	"github.com/aleksaelezovic/rdfparse/internal/syntax"
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// Format names used in errors.
const (
	FormatNTriples = "n-triples"
	FormatNQuads   = "n-quads"
)

// lineParser parses a single line. Blank-node labels resolve through env,
// which spans the whole document.
type lineParser struct {
	line   string
	pos    int
	lineNo int
	offset int // byte offset of the line in the document
	quads  bool
	env    *rdf.Environment
}

// ParseLine parses one line. It returns nil, nil for blank and comment-only
// lines.
func ParseLine(line string, lineNo, offset int, quads bool, env *rdf.Environment) (*rdf.Quad, error) {
	p := &lineParser{line: line, lineNo: lineNo, offset: offset, quads: quads, env: env}
	return p.parse()
}

func (p *lineParser) format() string {
	if p.quads {
		return FormatNQuads
	}
	return FormatNTriples
}

func (p *lineParser) position(at int) rdf.Position {
	return rdf.Position{
		Line:   p.lineNo,
		Column: utf8.RuneCountInString(p.line[:at]) + 1,
		Offset: p.offset + at,
	}
}

func (p *lineParser) fail(at int, err error) error {
	return rdf.NewParseError(p.format(), p.position(at), err)
}

func (p *lineParser) syntaxError(at int, format string, args ...any) error {
	return p.fail(at, fmt.Errorf("%w: "+format, append([]any{rdf.ErrSyntax}, args...)...))
}

func (p *lineParser) peek() byte {
	if p.pos < len(p.line) {
		return p.line[p.pos]
	}
	return 0
}

func (p *lineParser) skipWhitespace() {
	for p.pos < len(p.line) && (p.line[p.pos] == ' ' || p.line[p.pos] == '\t') {
		p.pos++
	}
}

func (p *lineParser) atEnd() bool {
	return p.pos >= len(p.line) || p.line[p.pos] == '#'
}

func (p *lineParser) parse() (*rdf.Quad, error) {
	p.skipWhitespace()
	if p.atEnd() {
		return nil, nil
	}

	subjectAt := p.pos
	subject, err := p.parseSubject()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()

	if p.peek() != '<' {
		return nil, p.syntaxError(p.pos, "expected predicate IRI")
	}
	predicate, err := p.parseIRI()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()

	object, err := p.parseObject()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()

	var graph rdf.Term
	if c := p.peek(); c == '<' || c == '_' {
		if !p.quads {
			return nil, p.syntaxError(p.pos, "graph label is not allowed in N-Triples")
		}
		if c == '<' {
			graph, err = p.parseIRI()
		} else {
			graph, err = p.parseBlankNode()
		}
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
	}

	if p.peek() != '.' {
		return nil, p.syntaxError(p.pos, "expected '.' at end of statement")
	}
	p.pos++
	p.skipWhitespace()
	if !p.atEnd() {
		return nil, p.syntaxError(p.pos, "unexpected content after '.'")
	}

	quad, err := p.env.CreateQuad(subject, predicate, object, graph)
	if err != nil {
		return nil, p.fail(subjectAt, err)
	}
	return quad, nil
}

func (p *lineParser) parseSubject() (rdf.Term, error) {
	switch p.peek() {
	case '<':
		return p.parseIRI()
	case '_':
		return p.parseBlankNode()
	}
	return nil, p.syntaxError(p.pos, "expected subject IRI or blank node")
}

func (p *lineParser) parseObject() (rdf.Term, error) {
	switch p.peek() {
	case '<':
		return p.parseIRI()
	case '_':
		return p.parseBlankNode()
	case '"':
		return p.parseLiteral()
	}
	return nil, p.syntaxError(p.pos, "expected object")
}

// parseIRI reads an absolute IRIREF.
func (p *lineParser) parseIRI() (*rdf.NamedNode, error) {
	start := p.pos
	p.pos++ // '<'
	for p.pos < len(p.line) && p.line[p.pos] != '>' {
		if p.line[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.pos >= len(p.line) {
		return nil, p.syntaxError(start, "unterminated IRI reference")
	}
	raw := p.line[start+1 : p.pos]
	p.pos++ // '>'

	iri, err := syntax.UnescapeIRI(raw)
	if err != nil {
		return nil, p.fail(start, fmt.Errorf("%w: %v", rdf.ErrIllegalIRI, err))
	}
	node, err := p.env.CreateNamedNode(iri)
	if err != nil {
		return nil, p.fail(start, err)
	}
	if !rdf.IsAbsoluteIRI(iri) {
		return nil, p.fail(start, fmt.Errorf("%w: relative IRI %q", rdf.ErrIllegalIRI, iri))
	}
	return node, nil
}

// parseBlankNode reads BLANK_NODE_LABEL; ':' is a name character here.
func (p *lineParser) parseBlankNode() (*rdf.BlankNode, error) {
	start := p.pos
	if p.pos+1 >= len(p.line) || p.line[p.pos+1] != ':' {
		return nil, p.syntaxError(start, "expected blank node label")
	}
	p.pos += 2

	r, size := utf8.DecodeRuneInString(p.line[p.pos:])
	if size == 0 || !(syntax.IsPNCharsU(r) || r == ':' || syntax.IsDigit(r)) {
		return nil, p.syntaxError(start, "malformed blank node label")
	}
	p.pos += size
	end := p.pos
	for p.pos < len(p.line) {
		r, size := utf8.DecodeRuneInString(p.line[p.pos:])
		if r == '.' {
			p.pos += size
			continue
		}
		if !syntax.IsPNChars(r) && r != ':' {
			break
		}
		p.pos += size
		end = p.pos
	}
	p.pos = end
	return p.env.CreateBlankNode(p.line[start+2 : end]), nil
}

func (p *lineParser) parseLiteral() (*rdf.Literal, error) {
	start := p.pos
	p.pos++ // '"'
	for p.pos < len(p.line) && p.line[p.pos] != '"' {
		if p.line[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.pos >= len(p.line) {
		return nil, p.syntaxError(start, "unterminated string")
	}
	raw := p.line[start+1 : p.pos]
	p.pos++ // '"'

	value, err := syntax.Unescape(raw)
	if err != nil {
		return nil, p.fail(start, fmt.Errorf("%w: %v", rdf.ErrInvalidLiteral, err))
	}

	var language string
	var datatype *rdf.NamedNode
	switch {
	case p.peek() == '@':
		p.pos++
		tagStart := p.pos
		for p.pos < len(p.line) && isLangChar(p.line[p.pos]) {
			p.pos++
		}
		language = p.line[tagStart:p.pos]
		if !syntax.IsLanguageTag(language) {
			return nil, p.syntaxError(tagStart, "malformed language tag %q", language)
		}
		if p.peek() == '^' {
			return nil, p.fail(p.pos, fmt.Errorf("%w: literal has both a language tag and a datatype", rdf.ErrInvalidLiteral))
		}
	case p.peek() == '^':
		if p.pos+2 >= len(p.line) || p.line[p.pos+1] != '^' || p.line[p.pos+2] != '<' {
			return nil, p.syntaxError(p.pos, "expected '^^<' before datatype IRI")
		}
		p.pos += 2
		if datatype, err = p.parseIRI(); err != nil {
			return nil, err
		}
	}

	lit, err := p.env.CreateLiteral(value, language, datatype)
	if err != nil {
		return nil, p.fail(start, err)
	}
	return lit, nil
}

func isLangChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
}
