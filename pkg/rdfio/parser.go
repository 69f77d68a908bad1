// Package rdfio is the entry point for parsing N-Triples, N-Quads and Turtle.
// JSON-LD input is delegated to package jsonld.
package rdfio

import (
	"fmt"
	"io"
	"strings"

	"github.com/aleksaelezovic/rdfparse/pkg/jsonld"
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// RDFParser is the interface for parsing RDF data in various formats
type RDFParser interface {
	// ReadQuads parses r and adds its statements to sink
	ReadQuads(r io.Reader, sink rdf.QuadSink) error

	// ContentType returns the MIME type this parser handles
	ContentType() string
}

// NewParser creates an RDF parser based on the content type
func NewParser(contentType string, opts ...Option) (RDFParser, error) {
	// Normalize content type (remove parameters like charset)
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = strings.TrimSpace(ct[:idx])
	}

	switch ct {
	case "application/n-triples", "text/plain":
		return NewNTriplesParser(opts...), nil
	case "application/n-quads":
		return NewNQuadsParser(opts...), nil
	case "text/turtle", "application/x-turtle":
		return NewTurtleParser(opts...), nil
	case "application/ld+json":
		o := newOptions(opts)
		return jsonld.NewParser(jsonld.WithBase(o.Base), jsonld.WithLogger(o.Logger)), nil
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// ContentTypeForExtension maps a file extension (with or without the dot)
// to a content type.
func ContentTypeForExtension(ext string) (string, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "nt":
		return "application/n-triples", true
	case "nq":
		return "application/n-quads", true
	case "ttl":
		return "text/turtle", true
	case "jsonld":
		return "application/ld+json", true
	}
	return "", false
}

// ParseDataset parses r with the parser for contentType into a new dataset.
func ParseDataset(contentType string, r io.Reader, opts ...Option) (*rdf.Dataset, error) {
	p, err := NewParser(contentType, opts...)
	if err != nil {
		return nil, err
	}
	ds := rdf.NewDataset()
	if err := p.ReadQuads(r, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// SupportedContentTypes returns a list of all supported content types
func SupportedContentTypes() []string {
	return []string{
		"application/n-triples",
		"application/n-quads",
		"text/turtle",
		"application/x-turtle",
		"application/ld+json",
		"text/plain", // Alias for N-Triples
	}
}
