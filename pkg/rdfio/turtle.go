package rdfio

import (
	"fmt"
	"io"
	"time"

	"github.com/aleksaelezovic/rdfparse/internal/turtle"
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// TurtleParser parses Turtle documents into graphs. Each call gets its own
// Environment, so prefixes, base and blank-node labels never leak between
// calls.
type TurtleParser struct {
	opts Options
}

// NewTurtleParser creates a Turtle parser.
func NewTurtleParser(opts ...Option) *TurtleParser {
	return &TurtleParser{opts: newOptions(opts)}
}

func (p *TurtleParser) ContentType() string {
	return "text/turtle"
}

// Parse parses a complete document.
func (p *TurtleParser) Parse(text string) (*rdf.Graph, error) {
	g := rdf.NewGraph()
	if err := p.parseInto(text, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseBytes parses UTF-8 encoded input.
func (p *TurtleParser) ParseBytes(data []byte) (*rdf.Graph, error) {
	return p.Parse(string(data))
}

// ParseReader reads r to the end before parsing; Turtle cannot be parsed
// incrementally.
func (p *TurtleParser) ParseReader(r io.Reader) (*rdf.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseInto adds the document's triples to sink. Nothing reaches sink unless
// the whole document parses.
func (p *TurtleParser) ParseInto(r io.Reader, sink rdf.TripleSink) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return p.parseInto(string(data), sink)
}

// ReadQuads implements RDFParser; triples land in the default graph.
func (p *TurtleParser) ReadQuads(r io.Reader, sink rdf.QuadSink) error {
	return p.ParseInto(r, defaultGraphSink{sink})
}

func (p *TurtleParser) parseInto(text string, sink rdf.TripleSink) error {
	start := time.Now()
	if err := checkUTF8("turtle", text); err != nil {
		return err
	}
	env := rdf.NewEnvironment(p.opts.Base)
	triples, err := turtle.ParseTriples(text, env, p.opts.MaxDepth)
	if err != nil {
		return err
	}
	for _, t := range triples {
		if err := sink.AddTriple(t); err != nil {
			return err
		}
	}
	p.opts.Logger.Debug("parsed document",
		"format", "turtle",
		"statements", len(triples),
		"duration", time.Since(start))
	return nil
}

// defaultGraphSink routes triples to the default graph of a QuadSink.
type defaultGraphSink struct {
	sink rdf.QuadSink
}

func (s defaultGraphSink) AddTriple(t *rdf.Triple) error {
	return s.sink.AddQuad(t.InGraph(nil))
}
