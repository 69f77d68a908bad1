package rdf

import "fmt"

// Environment is the per-parse-call term factory. It owns the prefix table,
// the base IRI in effect and the blank-node label table. An Environment must
// not be shared between parse calls; create a new one for each call.
type Environment struct {
	base     string
	prefixes map[string]string
	blanks   map[string]*BlankNode
}

// NewEnvironment returns an Environment whose initial base IRI is base.
// An empty base leaves relative references unresolved.
func NewEnvironment(base string) *Environment {
	return &Environment{
		base:     base,
		prefixes: make(map[string]string),
		blanks:   make(map[string]*BlankNode),
	}
}

// Base returns the base IRI currently in effect.
func (e *Environment) Base() string {
	return e.base
}

// SetBase resolves iri against the current base and makes the result the new
// base. Only references resolved afterwards are affected.
func (e *Environment) SetBase(iri string) error {
	resolved := ResolveReference(e.base, iri)
	if err := ValidateIRI(resolved); err != nil {
		return err
	}
	e.base = resolved
	return nil
}

// BindPrefix binds prefix to iri, resolved against the current base.
// Rebinding a prefix replaces the earlier namespace.
func (e *Environment) BindPrefix(prefix, iri string) error {
	resolved := ResolveReference(e.base, iri)
	if err := ValidateIRI(resolved); err != nil {
		return err
	}
	e.prefixes[prefix] = resolved
	return nil
}

// Prefix returns the namespace bound to prefix.
func (e *Environment) Prefix(prefix string) (string, bool) {
	ns, ok := e.prefixes[prefix]
	return ns, ok
}

// Prefixes returns a copy of the prefix table.
func (e *Environment) Prefixes() map[string]string {
	out := make(map[string]string, len(e.prefixes))
	for k, v := range e.prefixes {
		out[k] = v
	}
	return out
}

// CreateNamedNode validates an already decoded and resolved IRI.
func (e *Environment) CreateNamedNode(iri string) (*NamedNode, error) {
	return NewNamedNode(iri)
}

// CreateBlankNode returns a fresh blank node for an empty label. A non-empty
// label yields the same node for every use within this Environment.
func (e *Environment) CreateBlankNode(label string) *BlankNode {
	if label == "" {
		return NewBlankNode()
	}
	if b, ok := e.blanks[label]; ok {
		return b
	}
	b := NewBlankNode()
	b.Label = label
	e.blanks[label] = b
	return b
}

// CreateLiteral builds a literal; see NewLiteral.
func (e *Environment) CreateLiteral(value, language string, datatype *NamedNode) (*Literal, error) {
	return NewLiteral(value, language, datatype)
}

// CreateTriple builds a triple; see NewTriple.
func (e *Environment) CreateTriple(subject, predicate, object Term) (*Triple, error) {
	return NewTriple(subject, predicate, object)
}

// CreateQuad builds a quad; see NewQuad.
func (e *Environment) CreateQuad(subject, predicate, object, graph Term) (*Quad, error) {
	return NewQuad(subject, predicate, object, graph)
}

// ResolvePrefixedName expands prefix:local. local must already have its
// backslash escapes removed.
func (e *Environment) ResolvePrefixedName(prefix, local string) (*NamedNode, error) {
	ns, ok := e.prefixes[prefix]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUndefinedPrefix, prefix+":")
	}
	return NewNamedNode(ns + local)
}

// ResolveIRI resolves a possibly relative reference against the base in
// effect now.
func (e *Environment) ResolveIRI(ref string) (*NamedNode, error) {
	if err := ValidateIRI(ref); err != nil {
		return nil, err
	}
	return NewNamedNode(ResolveReference(e.base, ref))
}
