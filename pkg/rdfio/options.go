package rdfio

import (
	"log/slog"

	"github.com/aleksaelezovic/rdfparse/internal/nquads"
	"github.com/aleksaelezovic/rdfparse/internal/turtle"
)

// Options configures a parser. A parser never modifies its Options, so one
// parser value may serve concurrent calls.
type Options struct {
	// Base is the initial base IRI of every parse call.
	Base string
	// Logger receives debug records; nil discards them.
	Logger *slog.Logger
	// MaxLineBytes bounds N-Triples/N-Quads lines.
	MaxLineBytes int
	// MaxDepth bounds Turtle property-list and collection nesting.
	MaxDepth int
}

// Option configures parser behavior.
type Option func(*Options)

// WithBase sets the base IRI used to resolve relative references.
func WithBase(iri string) Option {
	return func(o *Options) { o.Base = iri }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithMaxLineBytes bounds the length of an N-Triples/N-Quads line.
func WithMaxLineBytes(n int) Option {
	return func(o *Options) { o.MaxLineBytes = n }
}

// WithMaxDepth bounds Turtle nesting.
func WithMaxDepth(n int) Option {
	return func(o *Options) { o.MaxDepth = n }
}

func newOptions(opts []Option) Options {
	o := Options{
		MaxLineBytes: nquads.DefaultMaxLineBytes,
		MaxDepth:     turtle.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
