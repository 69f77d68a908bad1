package rdf

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// appendTermKey appends an unambiguous encoding of term to buf.
func appendTermKey(buf []byte, term Term) []byte {
	if term == nil {
		term = defaultGraph
	}
	buf = append(buf, byte(term.Type()))
	switch t := term.(type) {
	case *NamedNode:
		buf = appendString(buf, t.IRI)
	case *BlankNode:
		buf = append(buf, t.ID[:]...)
	case *Literal:
		buf = appendString(buf, t.Value)
		buf = appendString(buf, t.Language)
		if t.Datatype != nil {
			buf = appendString(buf, t.Datatype.IRI)
		} else {
			buf = appendString(buf, "")
		}
	}
	return buf
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func termKey(term Term) xxh3.Uint128 {
	return xxh3.Hash128(appendTermKey(make([]byte, 0, 64), term))
}

func tripleKey(t *Triple) xxh3.Uint128 {
	buf := make([]byte, 0, 128)
	buf = appendTermKey(buf, t.Subject)
	buf = appendTermKey(buf, t.Predicate)
	buf = appendTermKey(buf, t.Object)
	return xxh3.Hash128(buf)
}

// Graph is a set of triples. Triples are deduplicated structurally and kept
// in first-insertion order.
type Graph struct {
	index   map[xxh3.Uint128][]*Triple
	triples []*Triple
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[xxh3.Uint128][]*Triple)}
}

// Add inserts t and reports whether it was not already present.
func (g *Graph) Add(t *Triple) bool {
	key := tripleKey(t)
	for _, existing := range g.index[key] {
		if existing.Equals(t) {
			return false
		}
	}
	g.index[key] = append(g.index[key], t)
	g.triples = append(g.triples, t)
	return true
}

// AddTriple implements TripleSink.
func (g *Graph) AddTriple(t *Triple) error {
	g.Add(t)
	return nil
}

// Contains reports whether an equal triple is in the graph.
func (g *Graph) Contains(t *Triple) bool {
	for _, existing := range g.index[tripleKey(t)] {
		if existing.Equals(t) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns the triples in first-insertion order. The slice must not
// be modified.
func (g *Graph) Triples() []*Triple {
	return g.triples
}

type namedGraph struct {
	name  Term
	graph *Graph
}

// Dataset maps graph names to graphs. The default graph always exists.
type Dataset struct {
	defaultGraph *Graph
	named        map[xxh3.Uint128][]*namedGraph
	order        []*namedGraph
}

// NewDataset returns a dataset holding an empty default graph.
func NewDataset() *Dataset {
	return &Dataset{
		defaultGraph: NewGraph(),
		named:        make(map[xxh3.Uint128][]*namedGraph),
	}
}

// Default returns the default graph.
func (d *Dataset) Default() *Graph {
	return d.defaultGraph
}

// Graph returns the graph named name, or nil when no quad was added to it.
// A nil name or *DefaultGraph selects the default graph.
func (d *Dataset) Graph(name Term) *Graph {
	if isDefaultGraphName(name) {
		return d.defaultGraph
	}
	if ng := d.lookup(termKey(name), name); ng != nil {
		return ng.graph
	}
	return nil
}

func isDefaultGraphName(name Term) bool {
	if name == nil {
		return true
	}
	_, ok := name.(*DefaultGraph)
	return ok
}

func (d *Dataset) lookup(key xxh3.Uint128, name Term) *namedGraph {
	for _, ng := range d.named[key] {
		if ng.name.Equals(name) {
			return ng
		}
	}
	return nil
}

// GraphNames returns the names of the non-default graphs in first-seen order.
func (d *Dataset) GraphNames() []Term {
	names := make([]Term, len(d.order))
	for i, ng := range d.order {
		names[i] = ng.name
	}
	return names
}

// Add inserts q and reports whether it was not already present.
func (d *Dataset) Add(q *Quad) bool {
	if isDefaultGraphName(q.Graph) {
		return d.defaultGraph.Add(q.Triple())
	}
	key := termKey(q.Graph)
	ng := d.lookup(key, q.Graph)
	if ng == nil {
		ng = &namedGraph{name: q.Graph, graph: NewGraph()}
		d.named[key] = append(d.named[key], ng)
		d.order = append(d.order, ng)
	}
	return ng.graph.Add(q.Triple())
}

// AddQuad implements QuadSink.
func (d *Dataset) AddQuad(q *Quad) error {
	d.Add(q)
	return nil
}

// AddTriple implements TripleSink by adding t to the default graph.
func (d *Dataset) AddTriple(t *Triple) error {
	d.defaultGraph.Add(t)
	return nil
}

// Contains reports whether an equal quad is in the dataset.
func (d *Dataset) Contains(q *Quad) bool {
	g := d.Graph(q.Graph)
	return g != nil && g.Contains(q.Triple())
}

// Len returns the number of distinct quads across all graphs.
func (d *Dataset) Len() int {
	n := d.defaultGraph.Len()
	for _, ng := range d.order {
		n += ng.graph.Len()
	}
	return n
}

// Quads returns the default graph's statements followed by each named
// graph's, in first-seen order.
func (d *Dataset) Quads() []*Quad {
	quads := make([]*Quad, 0, d.Len())
	for _, t := range d.defaultGraph.Triples() {
		quads = append(quads, t.InGraph(defaultGraph))
	}
	for _, ng := range d.order {
		for _, t := range ng.graph.Triples() {
			quads = append(quads, t.InGraph(ng.name))
		}
	}
	return quads
}
