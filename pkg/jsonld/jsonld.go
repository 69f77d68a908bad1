// Package jsonld ingests JSON-LD documents. Expansion and RDF conversion are
// done by json-gold; the resulting quads are rebuilt through an
// rdf.Environment so they obey the same term rules as the text parsers.
package jsonld

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

const defaultGraphName = "@default"

// Options configures a Parser.
type Options struct {
	// Base is the document base IRI.
	Base string
	// Loader resolves remote contexts. The default refuses every request.
	Loader ld.DocumentLoader
	// Logger receives debug records; nil discards them.
	Logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Options)

// WithBase sets the document base IRI.
func WithBase(iri string) Option {
	return func(o *Options) { o.Base = iri }
}

// WithDocumentLoader sets the loader used for remote contexts.
func WithDocumentLoader(loader ld.DocumentLoader) Option {
	return func(o *Options) { o.Loader = loader }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// offlineLoader rejects every remote document.
type offlineLoader struct{}

func (offlineLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, fmt.Sprintf("remote document %s not allowed", u))
}

// Parser converts JSON-LD to a Dataset.
type Parser struct {
	opts Options
}

// NewParser creates a JSON-LD parser.
func NewParser(opts ...Option) *Parser {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Loader == nil {
		o.Loader = offlineLoader{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{opts: o}
}

func (p *Parser) ContentType() string {
	return "application/ld+json"
}

// Parse reads a JSON-LD document from r.
func (p *Parser) Parse(r io.Reader) (*rdf.Dataset, error) {
	ds := rdf.NewDataset()
	if err := p.ReadQuads(r, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// ReadQuads reads a JSON-LD document from r and adds its quads to sink.
func (p *Parser) ReadQuads(r io.Reader, sink rdf.QuadSink) error {
	doc, err := ld.DocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("error reading JSON-LD: %w", err)
	}
	return p.ParseDocument(doc, sink)
}

// ParseDocument converts an already decoded JSON document.
func (p *Parser) ParseDocument(doc interface{}, sink rdf.QuadSink) error {
	start := time.Now()
	opts := ld.NewJsonLdOptions(p.opts.Base)
	opts.DocumentLoader = p.opts.Loader

	result, err := ld.NewJsonLdProcessor().ToRDF(doc, opts)
	if err != nil {
		return fmt.Errorf("error processing JSON-LD: %w", err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return fmt.Errorf("error processing JSON-LD: unexpected ToRDF result %T", result)
	}

	var staged []*rdf.Quad
	collect := rdf.QuadSinkFunc(func(q *rdf.Quad) error {
		staged = append(staged, q)
		return nil
	})
	if err := Ingest(dataset, rdf.NewEnvironment(p.opts.Base), collect); err != nil {
		return err
	}
	for _, q := range staged {
		if err := sink.AddQuad(q); err != nil {
			return err
		}
	}
	p.opts.Logger.Debug("parsed document",
		"format", "json-ld",
		"statements", len(staged),
		"duration", time.Since(start))
	return nil
}

// Ingest rebuilds the quads of dataset through env and adds them to sink.
// Graphs are visited default graph first, then by name.
func Ingest(dataset *ld.RDFDataset, env *rdf.Environment, sink rdf.QuadSink) error {
	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		if name != defaultGraphName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := dataset.Graphs[defaultGraphName]; ok {
		names = append([]string{defaultGraphName}, names...)
	}

	for _, name := range names {
		graph, err := graphTerm(env, name)
		if err != nil {
			return fmt.Errorf("graph %s: %w", name, err)
		}
		for i, lq := range dataset.Graphs[name] {
			q, err := makeQuad(env, lq, graph)
			if err != nil {
				return fmt.Errorf("graph %s, quad %d: %w", name, i, err)
			}
			if err := sink.AddQuad(q); err != nil {
				return err
			}
		}
	}
	return nil
}

func graphTerm(env *rdf.Environment, name string) (rdf.Term, error) {
	switch {
	case name == defaultGraphName:
		return nil, nil
	case strings.HasPrefix(name, "_:"):
		return env.CreateBlankNode(name[2:]), nil
	default:
		return env.CreateNamedNode(name)
	}
}

func makeQuad(env *rdf.Environment, lq *ld.Quad, graph rdf.Term) (*rdf.Quad, error) {
	s, err := term(env, lq.Subject)
	if err != nil {
		return nil, err
	}
	p, err := term(env, lq.Predicate)
	if err != nil {
		return nil, err
	}
	o, err := term(env, lq.Object)
	if err != nil {
		return nil, err
	}
	return env.CreateQuad(s, p, o, graph)
}

// term converts one json-gold fragment.
func term(env *rdf.Environment, node ld.Node) (rdf.Term, error) {
	switch n := node.(type) {
	case *ld.IRI:
		return term(env, *n)
	case *ld.BlankNode:
		return term(env, *n)
	case *ld.Literal:
		return term(env, *n)
	case ld.IRI:
		return env.CreateNamedNode(n.Value)
	case ld.BlankNode:
		return env.CreateBlankNode(strings.TrimPrefix(n.Attribute, "_:")), nil
	case ld.Literal:
		if n.Language != "" {
			return env.CreateLiteral(n.Value, n.Language, nil)
		}
		var datatype *rdf.NamedNode
		if n.Datatype != "" {
			dt, err := env.CreateNamedNode(n.Datatype)
			if err != nil {
				return nil, err
			}
			datatype = dt
		}
		return env.CreateLiteral(n.Value, "", datatype)
	}
	return nil, fmt.Errorf("%w: unsupported JSON-LD node %T", rdf.ErrSyntax, node)
}
