package rdfio

import (
	"io"
	"strings"
	"time"

	"github.com/aleksaelezovic/rdfparse/internal/nquads"
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// StatementReader yields statements one at a time and returns io.EOF after
// the last one.
type StatementReader interface {
	Next() (*rdf.Quad, error)
}

// lineFormat is shared by the N-Triples and N-Quads parsers.
type lineFormat struct {
	opts  Options
	quads bool
}

func (f lineFormat) name() string {
	if f.quads {
		return nquads.FormatNQuads
	}
	return nquads.FormatNTriples
}

func (f lineFormat) newReader(r io.Reader) *nquads.Reader {
	env := rdf.NewEnvironment("")
	return nquads.NewReader(r, env, nquads.Options{Quads: f.quads, MaxLineBytes: f.opts.MaxLineBytes})
}

// stage reads every statement before handing any of them to deliver.
func (f lineFormat) stage(r io.Reader, deliver func(*rdf.Quad) error) error {
	start := time.Now()
	var staged []*rdf.Quad
	if err := f.newReader(r).ReadAll(rdf.QuadSinkFunc(func(q *rdf.Quad) error {
		staged = append(staged, q)
		return nil
	})); err != nil {
		return err
	}
	for _, q := range staged {
		if err := deliver(q); err != nil {
			return err
		}
	}
	f.opts.Logger.Debug("parsed document",
		"format", f.name(),
		"statements", len(staged),
		"duration", time.Since(start))
	return nil
}

// NTriplesParser parses N-Triples (triples only, default graph).
type NTriplesParser struct {
	lineFormat
}

// NewNTriplesParser creates an N-Triples parser. WithBase has no effect:
// N-Triples IRIs are always absolute.
func NewNTriplesParser(opts ...Option) *NTriplesParser {
	return &NTriplesParser{lineFormat{opts: newOptions(opts)}}
}

func (p *NTriplesParser) ContentType() string {
	return "application/n-triples"
}

// Parse parses a complete document.
func (p *NTriplesParser) Parse(text string) (*rdf.Graph, error) {
	if err := checkUTF8(p.name(), text); err != nil {
		return nil, err
	}
	return p.ParseReader(strings.NewReader(text))
}

// ParseBytes parses UTF-8 encoded input.
func (p *NTriplesParser) ParseBytes(data []byte) (*rdf.Graph, error) {
	return p.Parse(string(data))
}

// ParseReader parses r line by line.
func (p *NTriplesParser) ParseReader(r io.Reader) (*rdf.Graph, error) {
	g := rdf.NewGraph()
	if err := p.ParseInto(r, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseInto adds the statements of r to sink once all of r has parsed.
func (p *NTriplesParser) ParseInto(r io.Reader, sink rdf.TripleSink) error {
	return p.stage(r, func(q *rdf.Quad) error { return sink.AddTriple(q.Triple()) })
}

// ReadQuads implements RDFParser.
func (p *NTriplesParser) ReadQuads(r io.Reader, sink rdf.QuadSink) error {
	return p.stage(r, sink.AddQuad)
}

// NewReader streams statements from r holding only the current line.
// Statements are delivered as they parse, so a later syntax error does not
// retract earlier ones.
func (p *NTriplesParser) NewReader(r io.Reader) StatementReader {
	return p.newReader(r)
}

// NQuadsParser parses N-Quads into datasets.
type NQuadsParser struct {
	lineFormat
}

// NewNQuadsParser creates an N-Quads parser.
func NewNQuadsParser(opts ...Option) *NQuadsParser {
	return &NQuadsParser{lineFormat{opts: newOptions(opts), quads: true}}
}

func (p *NQuadsParser) ContentType() string {
	return "application/n-quads"
}

// Parse parses a complete document.
func (p *NQuadsParser) Parse(text string) (*rdf.Dataset, error) {
	if err := checkUTF8(p.name(), text); err != nil {
		return nil, err
	}
	return p.ParseReader(strings.NewReader(text))
}

// ParseBytes parses UTF-8 encoded input.
func (p *NQuadsParser) ParseBytes(data []byte) (*rdf.Dataset, error) {
	return p.Parse(string(data))
}

// ParseReader parses r line by line.
func (p *NQuadsParser) ParseReader(r io.Reader) (*rdf.Dataset, error) {
	ds := rdf.NewDataset()
	if err := p.ParseInto(r, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// ParseInto adds the statements of r to sink once all of r has parsed.
func (p *NQuadsParser) ParseInto(r io.Reader, sink rdf.QuadSink) error {
	return p.stage(r, sink.AddQuad)
}

// ReadQuads implements RDFParser.
func (p *NQuadsParser) ReadQuads(r io.Reader, sink rdf.QuadSink) error {
	return p.ParseInto(r, sink)
}

// NewReader streams statements from r holding only the current line.
func (p *NQuadsParser) NewReader(r io.Reader) StatementReader {
	return p.newReader(r)
}
