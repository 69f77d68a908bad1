package rdf

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aleksaelezovic/rdfparse/internal/syntax"
)

// TermType represents the type of an RDF term
type TermType byte

const (
	TermTypeNamedNode TermType = iota + 1
	TermTypeBlankNode
	TermTypeLiteral
	TermTypeDefaultGraph
)

func (t TermType) String() string {
	switch t {
	case TermTypeNamedNode:
		return "NamedNode"
	case TermTypeBlankNode:
		return "BlankNode"
	case TermTypeLiteral:
		return "Literal"
	case TermTypeDefaultGraph:
		return "DefaultGraph"
	default:
		return fmt.Sprintf("TermType(%d)", byte(t))
	}
}

// Term represents an RDF term (IRI, blank node, or literal)
type Term interface {
	Type() TermType
	String() string
	Equals(other Term) bool
}

// NamedNode represents an absolute IRI
type NamedNode struct {
	IRI string
}

// NewNamedNode validates iri and wraps it. The string must already be
// decoded and resolved.
func NewNamedNode(iri string) (*NamedNode, error) {
	if err := ValidateIRI(iri); err != nil {
		return nil, err
	}
	return &NamedNode{IRI: iri}, nil
}

// mustNamedNode is used for vocabulary constants only.
func mustNamedNode(iri string) *NamedNode {
	n, err := NewNamedNode(iri)
	if err != nil {
		panic(err)
	}
	return n
}

func (n *NamedNode) Type() TermType {
	return TermTypeNamedNode
}

func (n *NamedNode) String() string {
	return "<" + n.IRI + ">"
}

func (n *NamedNode) Equals(other Term) bool {
	if on, ok := other.(*NamedNode); ok {
		return n.IRI == on.IRI
	}
	return false
}

// BlankNode is an opaque identity. Label is the source label, kept for
// display only; two blank nodes with the same label but different IDs are
// different nodes.
type BlankNode struct {
	ID    uuid.UUID
	Label string
}

// NewBlankNode returns a blank node with a fresh identity.
func NewBlankNode() *BlankNode {
	return &BlankNode{ID: uuid.New()}
}

func (b *BlankNode) Type() TermType {
	return TermTypeBlankNode
}

func (b *BlankNode) String() string {
	if b.Label != "" {
		return "_:" + b.Label
	}
	return "_:u" + hex.EncodeToString(b.ID[:])
}

func (b *BlankNode) Equals(other Term) bool {
	if ob, ok := other.(*BlankNode); ok {
		return b.ID == ob.ID
	}
	return false
}

// Literal represents an RDF literal. Language and Datatype are mutually
// exclusive; a literal built through NewLiteral or an Environment always has
// one of them.
type Literal struct {
	Value    string
	Language string     // for language-tagged strings
	Datatype *NamedNode // for typed literals
}

// NewLiteral builds a literal, defaulting the datatype to xsd:string when
// neither a language nor a datatype is given.
func NewLiteral(value, language string, datatype *NamedNode) (*Literal, error) {
	if language != "" && datatype != nil {
		return nil, fmt.Errorf("%w: %q has both language %q and datatype %s",
			ErrInvalidLiteral, value, language, datatype)
	}
	if language != "" {
		if !syntax.IsLanguageTag(language) {
			return nil, fmt.Errorf("%w: malformed language tag %q", ErrInvalidLiteral, language)
		}
		return &Literal{Value: value, Language: language}, nil
	}
	if datatype == nil {
		datatype = XSDString
	}
	return &Literal{Value: value, Datatype: datatype}, nil
}

// NewStringLiteral returns a plain xsd:string literal.
func NewStringLiteral(value string) *Literal {
	return &Literal{Value: value, Datatype: XSDString}
}

// NewTypedLiteral returns a literal with the given datatype.
func NewTypedLiteral(value string, datatype *NamedNode) *Literal {
	return &Literal{Value: value, Datatype: datatype}
}

func (l *Literal) Type() TermType {
	return TermTypeLiteral
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
)

func (l *Literal) String() string {
	result := `"` + literalEscaper.Replace(l.Value) + `"`
	if l.Language != "" {
		return result + "@" + l.Language
	}
	if l.Datatype != nil && l.Datatype.IRI != XSDString.IRI {
		return result + "^^" + l.Datatype.String()
	}
	return result
}

func (l *Literal) Equals(other Term) bool {
	ol, ok := other.(*Literal)
	if !ok {
		return false
	}
	if l.Value != ol.Value || l.Language != ol.Language {
		return false
	}
	if l.Datatype == nil || ol.Datatype == nil {
		return l.Datatype == nil && ol.Datatype == nil
	}
	return l.Datatype.IRI == ol.Datatype.IRI
}

// DefaultGraph is the graph-name marker for the default graph
type DefaultGraph struct{}

var defaultGraph = &DefaultGraph{}

// NewDefaultGraph returns the default graph marker.
func NewDefaultGraph() *DefaultGraph {
	return defaultGraph
}

func (d *DefaultGraph) Type() TermType {
	return TermTypeDefaultGraph
}

func (d *DefaultGraph) String() string {
	return "DEFAULT"
}

func (d *DefaultGraph) Equals(other Term) bool {
	_, ok := other.(*DefaultGraph)
	return ok
}

// Vocabulary used by the parsers.
const (
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

var (
	RDFType  = mustNamedNode(RDFNamespace + "type")
	RDFFirst = mustNamedNode(RDFNamespace + "first")
	RDFRest  = mustNamedNode(RDFNamespace + "rest")
	RDFNil   = mustNamedNode(RDFNamespace + "nil")

	XSDString  = mustNamedNode(XSDNamespace + "string")
	XSDInteger = mustNamedNode(XSDNamespace + "integer")
	XSDDecimal = mustNamedNode(XSDNamespace + "decimal")
	XSDDouble  = mustNamedNode(XSDNamespace + "double")
	XSDBoolean = mustNamedNode(XSDNamespace + "boolean")
)
