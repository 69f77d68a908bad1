package rdf

import (
	"errors"
	"testing"
)

func TestEnvironment_BlankNodeLabels(t *testing.T) {
	env := NewEnvironment("")

	a1 := env.CreateBlankNode("a")
	a2 := env.CreateBlankNode("a")
	b := env.CreateBlankNode("b")

	if a1 != a2 {
		t.Error("Same label should return the same node within one environment")
	}
	if a1.Equals(b) {
		t.Error("Different labels should return different nodes")
	}
	if a1.Label != "a" {
		t.Errorf("Expected label a, got %q", a1.Label)
	}
	if env.CreateBlankNode("").Equals(env.CreateBlankNode("")) {
		t.Error("Anonymous blank nodes should always be fresh")
	}

	other := NewEnvironment("")
	if other.CreateBlankNode("a").Equals(a1) {
		t.Error("Labels must not be shared between environments")
	}
}

func TestEnvironment_Prefixes(t *testing.T) {
	env := NewEnvironment("http://example.org/base/")

	if err := env.BindPrefix("ex", "http://example.org/ns#"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.BindPrefix("", "rel/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	node, err := env.ResolvePrefixedName("ex", "thing")
	if err != nil || node.IRI != "http://example.org/ns#thing" {
		t.Errorf("Expected ex:thing to expand, got %v, %v", node, err)
	}
	node, err = env.ResolvePrefixedName("", "x")
	if err != nil || node.IRI != "http://example.org/base/rel/x" {
		t.Errorf("Expected relative namespace resolved against base, got %v, %v", node, err)
	}

	if err := env.BindPrefix("ex", "http://other.example/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ns, _ := env.Prefix("ex"); ns != "http://other.example/" {
		t.Errorf("Rebinding should replace the namespace, got %s", ns)
	}
	if len(env.Prefixes()) != 2 {
		t.Errorf("Expected 2 prefixes, got %d", len(env.Prefixes()))
	}

	_, err = env.ResolvePrefixedName("missing", "x")
	if !errors.Is(err, ErrUndefinedPrefix) {
		t.Errorf("Expected ErrUndefinedPrefix, got %v", err)
	}
}

func TestEnvironment_SetBaseResolvesAgainstCurrent(t *testing.T) {
	env := NewEnvironment("http://example.org/a/b")

	if err := env.SetBase("c/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Base() != "http://example.org/a/c/" {
		t.Errorf("Unexpected base %s", env.Base())
	}

	node, err := env.ResolveIRI("d")
	if err != nil || node.IRI != "http://example.org/a/c/d" {
		t.Errorf("Expected resolution against new base, got %v, %v", node, err)
	}

	if err := env.SetBase("http://example.org/bad base/"); !errors.Is(err, ErrIllegalIRI) {
		t.Errorf("Expected ErrIllegalIRI, got %v", err)
	}
}

func TestEnvironment_ResolveIRIWithoutBase(t *testing.T) {
	env := NewEnvironment("")

	node, err := env.ResolveIRI("relative")
	if err != nil || node.IRI != "relative" {
		t.Errorf("Expected relative IRI kept as is, got %v, %v", node, err)
	}
	if _, err := env.ResolveIRI("has space"); !errors.Is(err, ErrIllegalIRI) {
		t.Errorf("Expected ErrIllegalIRI, got %v", err)
	}
}

func TestEnvironment_CreateLiteralAndStatements(t *testing.T) {
	env := NewEnvironment("")

	if _, err := env.CreateLiteral("x", "en", XSDString); !errors.Is(err, ErrInvalidLiteral) {
		t.Errorf("Expected ErrInvalidLiteral, got %v", err)
	}
	lit, err := env.CreateLiteral("x", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.CreateTriple(lit, RDFType, lit); !errors.Is(err, ErrSyntax) {
		t.Errorf("Expected ErrSyntax for literal subject, got %v", err)
	}
	q, err := env.CreateQuad(env.CreateBlankNode("s"), RDFType, lit, nil)
	if err != nil || !q.IsDefaultGraph() {
		t.Errorf("Expected default graph quad, got %v, %v", q, err)
	}
}
