package rdf

import (
	"errors"
	"testing"
)

// ===== NamedNode Tests =====

func TestNamedNode_Type(t *testing.T) {
	node := mustNamedNode("http://example.org/resource")
	if node.Type() != TermTypeNamedNode {
		t.Errorf("Expected TermTypeNamedNode, got %v", node.Type())
	}
}

func TestNamedNode_String(t *testing.T) {
	node := mustNamedNode("http://example.org/resource")
	expected := "<http://example.org/resource>"
	if node.String() != expected {
		t.Errorf("Expected %s, got %s", expected, node.String())
	}
}

func TestNamedNode_Equals(t *testing.T) {
	node1 := mustNamedNode("http://example.org/resource")
	node2 := mustNamedNode("http://example.org/resource")
	node3 := mustNamedNode("http://example.org/different")

	if !node1.Equals(node2) {
		t.Error("Expected equal NamedNodes to be equal")
	}
	if node1.Equals(node3) {
		t.Error("Expected different NamedNodes to not be equal")
	}
	if node1.Equals(NewStringLiteral("http://example.org/resource")) {
		t.Error("NamedNode should not equal Literal")
	}
}

func TestNewNamedNode_RejectsIllegalCharacters(t *testing.T) {
	for _, iri := range []string{
		"http://example.org/a b",
		"http://example.org/<a>",
		"http://example.org/{a}",
		"http://example.org/a|b",
		"http://example.org/a^b",
		"http://example.org/a`b",
		"http://example.org/a\\b",
		"http://example.org/a\"b",
		"http://example.org/\x01",
	} {
		_, err := NewNamedNode(iri)
		if !errors.Is(err, ErrIllegalIRI) {
			t.Errorf("NewNamedNode(%q): expected ErrIllegalIRI, got %v", iri, err)
		}
	}
}

func TestNewNamedNode_AcceptsUnicodeAndRelative(t *testing.T) {
	for _, iri := range []string{"http://example.org/résumé", "relative/path", "", "#frag"} {
		if _, err := NewNamedNode(iri); err != nil {
			t.Errorf("NewNamedNode(%q): unexpected error %v", iri, err)
		}
	}
}

// ===== BlankNode Tests =====

func TestBlankNode_Type(t *testing.T) {
	if NewBlankNode().Type() != TermTypeBlankNode {
		t.Error("Expected TermTypeBlankNode")
	}
}

func TestBlankNode_String(t *testing.T) {
	node := NewBlankNode()
	node.Label = "b1"
	if node.String() != "_:b1" {
		t.Errorf("Expected _:b1, got %s", node.String())
	}
	if s := NewBlankNode().String(); len(s) != len("_:u")+32 {
		t.Errorf("Unexpected unlabeled form %s", s)
	}
}

func TestBlankNode_EqualsComparesIdentity(t *testing.T) {
	a := NewBlankNode()
	a.Label = "x"
	b := NewBlankNode()
	b.Label = "x"

	if a.Equals(b) {
		t.Error("Blank nodes with the same label but different identities must differ")
	}
	if !a.Equals(&BlankNode{ID: a.ID}) {
		t.Error("Blank nodes with the same identity must be equal")
	}
	if a.Equals(mustNamedNode("http://example.org/x")) {
		t.Error("BlankNode should not equal NamedNode")
	}
}

// ===== Literal Tests =====

func TestLiteral_Type(t *testing.T) {
	if NewStringLiteral("x").Type() != TermTypeLiteral {
		t.Error("Expected TermTypeLiteral")
	}
}

func TestNewLiteral_DefaultsToXSDString(t *testing.T) {
	lit, err := NewLiteral("hello", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lit.Datatype == nil || lit.Datatype.IRI != XSDString.IRI {
		t.Errorf("Expected xsd:string datatype, got %v", lit.Datatype)
	}
}

func TestNewLiteral_LanguageAndDatatypeConflict(t *testing.T) {
	_, err := NewLiteral("chat", "fr", XSDString)
	if !errors.Is(err, ErrInvalidLiteral) {
		t.Errorf("Expected ErrInvalidLiteral, got %v", err)
	}
}

func TestNewLiteral_MalformedLanguage(t *testing.T) {
	for _, tag := range []string{"-en", "en-", "e n", "1en"} {
		if _, err := NewLiteral("x", tag, nil); !errors.Is(err, ErrInvalidLiteral) {
			t.Errorf("tag %q: expected ErrInvalidLiteral, got %v", tag, err)
		}
	}
	if _, err := NewLiteral("x", "en-GB-oed", nil); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestLiteral_String(t *testing.T) {
	lang, _ := NewLiteral("chat", "fr", nil)
	tests := []struct {
		lit      *Literal
		expected string
	}{
		{NewStringLiteral("hello"), `"hello"`},
		{NewStringLiteral("say \"hi\"\n"), `"say \"hi\"\n"`},
		{lang, `"chat"@fr`},
		{NewTypedLiteral("5", XSDInteger), `"5"^^<http://www.w3.org/2001/XMLSchema#integer>`},
	}
	for _, tt := range tests {
		if got := tt.lit.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestLiteral_Equals(t *testing.T) {
	en, _ := NewLiteral("x", "en", nil)
	enUpper, _ := NewLiteral("x", "EN", nil)

	if !NewTypedLiteral("5", XSDInteger).Equals(NewTypedLiteral("5", XSDInteger)) {
		t.Error("Same value and datatype should be equal")
	}
	if NewTypedLiteral("5", XSDInteger).Equals(NewTypedLiteral("05", XSDInteger)) {
		t.Error("Lexical forms are compared as written")
	}
	if NewTypedLiteral("5", XSDInteger).Equals(NewStringLiteral("5")) {
		t.Error("Different datatypes should not be equal")
	}
	if en.Equals(NewStringLiteral("x")) {
		t.Error("Language-tagged literal should not equal a plain one")
	}
	if en.Equals(enUpper) {
		t.Error("Language tags are compared case-sensitively")
	}
}

// ===== DefaultGraph Tests =====

func TestDefaultGraph(t *testing.T) {
	g := NewDefaultGraph()
	if g.Type() != TermTypeDefaultGraph {
		t.Errorf("Expected TermTypeDefaultGraph, got %v", g.Type())
	}
	if g != NewDefaultGraph() {
		t.Error("DefaultGraph should be a singleton")
	}
	if !g.Equals(&DefaultGraph{}) {
		t.Error("DefaultGraph should equal DefaultGraph")
	}
	if g.Equals(mustNamedNode("http://example.org/g")) {
		t.Error("DefaultGraph should not equal NamedNode")
	}
}

// ===== Statement Tests =====

func TestNewTriple_Positions(t *testing.T) {
	iri := mustNamedNode("http://example.org/x")
	lit := NewStringLiteral("x")
	b := NewBlankNode()

	if _, err := NewTriple(b, iri, lit); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cases := []struct {
		name    string
		s, p, o Term
	}{
		{"literal subject", lit, iri, iri},
		{"blank predicate", iri, b, iri},
		{"literal predicate", iri, lit, iri},
		{"default graph object", iri, iri, NewDefaultGraph()},
		{"nil subject", nil, iri, iri},
	}
	for _, c := range cases {
		if _, err := NewTriple(c.s, c.p, c.o); !errors.Is(err, ErrSyntax) {
			t.Errorf("%s: expected ErrSyntax, got %v", c.name, err)
		}
	}
}

func TestNewQuad_GraphName(t *testing.T) {
	iri := mustNamedNode("http://example.org/x")

	q, err := NewQuad(iri, iri, iri, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.IsDefaultGraph() {
		t.Error("nil graph should select the default graph")
	}
	if _, err := NewQuad(iri, iri, iri, NewStringLiteral("g")); !errors.Is(err, ErrSyntax) {
		t.Errorf("literal graph name: expected ErrSyntax, got %v", err)
	}
}

func TestQuad_String(t *testing.T) {
	s := mustNamedNode("http://example.org/s")
	q := &Quad{Subject: s, Predicate: s, Object: NewStringLiteral("o"), Graph: mustNamedNode("http://example.org/g")}
	expected := `<http://example.org/s> <http://example.org/s> "o" <http://example.org/g> .`
	if q.String() != expected {
		t.Errorf("Expected %s, got %s", expected, q.String())
	}
	if got := q.Triple().InGraph(nil).String(); got != `<http://example.org/s> <http://example.org/s> "o" .` {
		t.Errorf("Unexpected default graph form %s", got)
	}
}

func TestXSDConstants(t *testing.T) {
	tests := map[*NamedNode]string{
		XSDString:  "http://www.w3.org/2001/XMLSchema#string",
		XSDInteger: "http://www.w3.org/2001/XMLSchema#integer",
		XSDDecimal: "http://www.w3.org/2001/XMLSchema#decimal",
		XSDDouble:  "http://www.w3.org/2001/XMLSchema#double",
		XSDBoolean: "http://www.w3.org/2001/XMLSchema#boolean",
		RDFType:    "http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
		RDFNil:     "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil",
	}
	for node, iri := range tests {
		if node.IRI != iri {
			t.Errorf("Expected %s, got %s", iri, node.IRI)
		}
	}
}
