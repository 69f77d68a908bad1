package turtle

import "github.com/aleksaelezovic/rdfparse/pkg/rdf"

// Document is the parse tree of a whole Turtle document.
type Document struct {
	Statements []Statement
}

// Statement is one of *PrefixDirective, *BaseDirective or *Triples.
type Statement interface {
	Pos() rdf.Position
	statement()
}

// PrefixDirective is "@prefix p: <iri> ." or "PREFIX p: <iri>".
type PrefixDirective struct {
	At     rdf.Position
	Prefix string
	IRI    *IRIRef
	SPARQL bool
}

// BaseDirective is "@base <iri> ." or "BASE <iri>".
type BaseDirective struct {
	At     rdf.Position
	IRI    *IRIRef
	SPARQL bool
}

// Triples is a subject followed by its predicate-object lists. Predicates is
// empty only when Subject is a *BlankNodePropertyList.
type Triples struct {
	At         rdf.Position
	Subject    Node
	Predicates []*PredicateObjects
}

func (s *PrefixDirective) Pos() rdf.Position { return s.At }
func (s *BaseDirective) Pos() rdf.Position   { return s.At }
func (s *Triples) Pos() rdf.Position         { return s.At }

func (*PrefixDirective) statement() {}
func (*BaseDirective) statement()   {}
func (*Triples) statement()         {}

// PredicateObjects is one verb with its comma-separated objects.
type PredicateObjects struct {
	Verb    Node
	Objects []Node
}

// Node is a term-producing production: *IRIRef, *PrefixedName, *TypeKeyword,
// *BlankNodeLabel, *Anon, *BlankNodePropertyList, *Collection,
// *StringLiteral, *NumericLiteral or *BooleanLiteral.
type Node interface {
	Pos() rdf.Position
	node()
}

// IRIRef holds the undecoded text between '<' and '>'.
type IRIRef struct {
	At  rdf.Position
	Raw string
}

// PrefixedName holds the prefix and the undecoded local part.
type PrefixedName struct {
	At     rdf.Position
	Prefix string
	Local  string
}

// TypeKeyword is the bare 'a' predicate.
type TypeKeyword struct {
	At rdf.Position
}

type BlankNodeLabel struct {
	At    rdf.Position
	Label string
}

// Anon is "[]".
type Anon struct {
	At rdf.Position
}

type BlankNodePropertyList struct {
	At         rdf.Position
	Predicates []*PredicateObjects
}

type Collection struct {
	At    rdf.Position
	Items []Node
}

// StringLiteral carries the undecoded string body. At most one of Language
// and Datatype is set by the parser.
type StringLiteral struct {
	At       rdf.Position
	Raw      string
	Long     bool
	Language string
	Datatype Node
}

// NumericKind tells the shorthand numeric forms apart.
type NumericKind int

const (
	Integer NumericKind = iota
	Decimal
	Double
)

type NumericLiteral struct {
	At      rdf.Position
	Lexical string
	Kind    NumericKind
}

type BooleanLiteral struct {
	At      rdf.Position
	Lexical string
}

func (n *IRIRef) Pos() rdf.Position                { return n.At }
func (n *PrefixedName) Pos() rdf.Position          { return n.At }
func (n *TypeKeyword) Pos() rdf.Position           { return n.At }
func (n *BlankNodeLabel) Pos() rdf.Position        { return n.At }
func (n *Anon) Pos() rdf.Position                  { return n.At }
func (n *BlankNodePropertyList) Pos() rdf.Position { return n.At }
func (n *Collection) Pos() rdf.Position            { return n.At }
func (n *StringLiteral) Pos() rdf.Position         { return n.At }
func (n *NumericLiteral) Pos() rdf.Position        { return n.At }
func (n *BooleanLiteral) Pos() rdf.Position        { return n.At }

func (*IRIRef) node()                {}
func (*PrefixedName) node()          {}
func (*TypeKeyword) node()           {}
func (*BlankNodeLabel) node()        {}
func (*Anon) node()                  {}
func (*BlankNodePropertyList) node() {}
func (*Collection) node()            {}
func (*StringLiteral) node()         {}
func (*NumericLiteral) node()        {}
func (*BooleanLiteral) node()        {}
