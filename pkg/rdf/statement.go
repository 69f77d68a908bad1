package rdf

import "fmt"

// Triple represents an RDF triple (subject, predicate, object)
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple checks term positions: the subject must be a named or blank
// node, the predicate a named node, and the object any term except the
// default graph marker.
func NewTriple(subject, predicate, object Term) (*Triple, error) {
	switch subject.(type) {
	case *NamedNode, *BlankNode:
	default:
		return nil, fmt.Errorf("%w: %v cannot be used as a subject", ErrSyntax, subject)
	}
	if _, ok := predicate.(*NamedNode); !ok {
		return nil, fmt.Errorf("%w: %v cannot be used as a predicate", ErrSyntax, predicate)
	}
	switch object.(type) {
	case *NamedNode, *BlankNode, *Literal:
	default:
		return nil, fmt.Errorf("%w: %v cannot be used as an object", ErrSyntax, object)
	}
	return &Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}

func (t *Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Equals reports whether both triples hold equal terms.
func (t *Triple) Equals(o *Triple) bool {
	return t.Subject.Equals(o.Subject) &&
		t.Predicate.Equals(o.Predicate) &&
		t.Object.Equals(o.Object)
}

// Quad represents an RDF quad (subject, predicate, object, graph). Graph is
// never nil; statements in the default graph carry *DefaultGraph.
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term
}

// NewQuad is NewTriple plus a graph name. A nil graph means the default graph.
func NewQuad(subject, predicate, object, graph Term) (*Quad, error) {
	t, err := NewTriple(subject, predicate, object)
	if err != nil {
		return nil, err
	}
	switch graph.(type) {
	case nil:
		graph = defaultGraph
	case *NamedNode, *BlankNode, *DefaultGraph:
	default:
		return nil, fmt.Errorf("%w: %v cannot be used as a graph name", ErrSyntax, graph)
	}
	return &Quad{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object, Graph: graph}, nil
}

// InGraph places a triple into graph g. A nil g means the default graph.
func (t *Triple) InGraph(g Term) *Quad {
	if g == nil {
		g = defaultGraph
	}
	return &Quad{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object, Graph: g}
}

// Triple drops the graph name.
func (q *Quad) Triple() *Triple {
	return &Triple{Subject: q.Subject, Predicate: q.Predicate, Object: q.Object}
}

// IsDefaultGraph reports whether the quad belongs to the default graph.
func (q *Quad) IsDefaultGraph() bool {
	_, ok := q.Graph.(*DefaultGraph)
	return ok || q.Graph == nil
}

func (q *Quad) String() string {
	if q.IsDefaultGraph() {
		return fmt.Sprintf("%s %s %s .", q.Subject, q.Predicate, q.Object)
	}
	return fmt.Sprintf("%s %s %s %s .", q.Subject, q.Predicate, q.Object, q.Graph)
}

// Equals reports whether both quads hold equal terms and graph names.
func (q *Quad) Equals(o *Quad) bool {
	if q.IsDefaultGraph() != o.IsDefaultGraph() {
		return false
	}
	if !q.IsDefaultGraph() && !q.Graph.Equals(o.Graph) {
		return false
	}
	return q.Subject.Equals(o.Subject) &&
		q.Predicate.Equals(o.Predicate) &&
		q.Object.Equals(o.Object)
}

// TripleSink receives triples produced by a parse.
type TripleSink interface {
	AddTriple(t *Triple) error
}

// QuadSink receives quads produced by a parse.
type QuadSink interface {
	AddQuad(q *Quad) error
}

// TripleSinkFunc adapts a function to TripleSink.
type TripleSinkFunc func(t *Triple) error

func (f TripleSinkFunc) AddTriple(t *Triple) error { return f(t) }

// QuadSinkFunc adapts a function to QuadSink.
type QuadSinkFunc func(q *Quad) error

func (f QuadSinkFunc) AddQuad(q *Quad) error { return f(q) }
