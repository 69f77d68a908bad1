package nquads

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

func readAll(input string, opts Options) ([]*rdf.Quad, error) {
	var quads []*rdf.Quad
	err := NewReader(strings.NewReader(input), rdf.NewEnvironment(""), opts).
		ReadAll(rdf.QuadSinkFunc(func(q *rdf.Quad) error {
			quads = append(quads, q)
			return nil
		}))
	return quads, err
}

func TestParseNQuads(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int // number of quads expected
		wantErr  rdf.ErrorKind
	}{
		{
			name: "simple triple",
			input: `<http://example.org/s> <http://example.org/p> <http://example.org/o> .
`,
			expected: 1,
		},
		{
			name: "quad with named graph",
			input: `<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .
`,
			expected: 1,
		},
		{
			name: "multiple quads",
			input: `<http://example.org/s1> <http://example.org/p1> "literal1" .
<http://example.org/s2> <http://example.org/p2> "literal2"^^<http://www.w3.org/2001/XMLSchema#string> <http://example.org/g> .
<http://example.org/s3> <http://example.org/p3> "hello"@en .
`,
			expected: 3,
		},
		{
			name: "blank nodes",
			input: `_:b1 <http://example.org/p> "value" .
<http://example.org/s> <http://example.org/p> _:b2 _:graph .
`,
			expected: 2,
		},
		{
			name:     "comments and blank lines",
			input:    "# header\n\n   \t\n<http://example.org/s> <http://example.org/p> \"x\" . # trailing\n",
			expected: 1,
		},
		{
			name:     "no final newline",
			input:    `<http://example.org/s> <http://example.org/p> "x" .`,
			expected: 1,
		},
		{
			name: "PREFIX is not N-Quads",
			input: `PREFIX ex: <http://example.org/>
`,
			wantErr: rdf.KindSyntax,
		},
		{
			name: "bare numeric literal",
			input: `<http://example.org/s> <http://example.org/p> 42 .
`,
			wantErr: rdf.KindSyntax,
		},
		{
			name:    "missing dot",
			input:   `<http://example.org/s> <http://example.org/p> "x"`,
			wantErr: rdf.KindSyntax,
		},
		{
			name:    "relative IRI",
			input:   `<s> <http://example.org/p> "x" .`,
			wantErr: rdf.KindIllegalIRI,
		},
		{
			name:    "space in IRI",
			input:   `<http://example.org/a b> <http://example.org/p> "x" .`,
			wantErr: rdf.KindIllegalIRI,
		},
		{
			name:    "short escape in IRI",
			input:   `<http://example.org/s> <http://example.org/p> <http://example.org/\'x> .`,
			wantErr: rdf.KindIllegalIRI,
		},
		{
			name:    "literal subject",
			input:   `"s" <http://example.org/p> "x" .`,
			wantErr: rdf.KindSyntax,
		},
		{
			name:    "literal graph label",
			input:   `<http://example.org/s> <http://example.org/p> "x" "g" .`,
			wantErr: rdf.KindSyntax,
		},
		{
			name:    "bad string escape",
			input:   `<http://example.org/s> <http://example.org/p> "\z" .`,
			wantErr: rdf.KindInvalidLiteral,
		},
		{
			name:    "malformed language tag",
			input:   `<http://example.org/s> <http://example.org/p> "x"@1a .`,
			wantErr: rdf.KindSyntax,
		},
		{
			name:    "relative datatype",
			input:   `<http://example.org/s> <http://example.org/p> "x"^^<int> .`,
			wantErr: rdf.KindIllegalIRI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quads, err := readAll(tt.input, Options{Quads: true})

			if tt.wantErr != rdf.KindUnknown {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				if kind := rdf.KindOf(err); kind != tt.wantErr {
					t.Errorf("expected %s, got %s (%v)", tt.wantErr, kind, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(quads) != tt.expected {
				t.Errorf("expected %d quads, got %d", tt.expected, len(quads))
			}

			for i, quad := range quads {
				if quad.Subject == nil || quad.Predicate == nil || quad.Object == nil || quad.Graph == nil {
					t.Errorf("quad %d has a nil term: %v", i, quad)
				}
			}
		})
	}
}

func TestParseNQuadsWithGraph(t *testing.T) {
	quads, err := readAll(`<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .
`, Options{Quads: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quads) != 1 {
		t.Fatalf("expected 1 quad, got %d", len(quads))
	}

	if quads[0].Graph.Type() != rdf.TermTypeNamedNode {
		t.Errorf("expected named node for graph, got %s", quads[0].Graph.Type())
	}
}

func TestParseNTriplesInDefaultGraph(t *testing.T) {
	quads, err := readAll(`<http://example.org/s> <http://example.org/p> <http://example.org/o> .
`, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quads) != 1 {
		t.Fatalf("expected 1 quad, got %d", len(quads))
	}
	if !quads[0].IsDefaultGraph() {
		t.Errorf("expected default graph, got %s", quads[0].Graph)
	}
}

func TestNTriplesRejectsGraphLabel(t *testing.T) {
	_, err := readAll(`<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .`, Options{})

	var perr *rdf.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Kind() != rdf.KindSyntax || perr.Format != FormatNTriples {
		t.Errorf("unexpected error %v", perr)
	}
	if perr.Column != 70 {
		t.Errorf("expected column 70, got %d", perr.Column)
	}
}

func TestParseLineTerms(t *testing.T) {
	env := rdf.NewEnvironment("")
	quad, err := ParseLine(`_:x.y <http://example.org/pA> "café\n"@en-GB _:g .`, 1, 0, true, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject, ok := quad.Subject.(*rdf.BlankNode)
	if !ok || subject.Label != "x.y" {
		t.Errorf("expected blank node x.y, got %v", quad.Subject)
	}
	if quad.Predicate.(*rdf.NamedNode).IRI != "http://example.org/pA" {
		t.Errorf("unexpected predicate %v", quad.Predicate)
	}
	lit := quad.Object.(*rdf.Literal)
	if lit.Value != "café\n" || lit.Language != "en-GB" {
		t.Errorf("unexpected literal %v", lit)
	}
	if !quad.Graph.Equals(env.CreateBlankNode("g")) {
		t.Errorf("graph label should resolve through the environment")
	}
}

func TestParseLineBlank(t *testing.T) {
	for _, line := range []string{"", "   ", "\t# comment"} {
		quad, err := ParseLine(line, 1, 0, false, rdf.NewEnvironment(""))
		if quad != nil || err != nil {
			t.Errorf("ParseLine(%q) = %v, %v; expected nothing", line, quad, err)
		}
	}
}

func TestReaderBlankNodesShareDocumentScope(t *testing.T) {
	quads, err := readAll("_:a <http://example.org/p> _:b .\n_:b <http://example.org/p> _:a .\n", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quads[0].Subject.Equals(quads[1].Object) || !quads[0].Object.Equals(quads[1].Subject) {
		t.Error("labels should resolve to the same nodes across lines")
	}
}

func TestReaderLineEndings(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"1\" .\r\n" +
		"<http://example.org/s> <http://example.org/p> \"2\" .\r" +
		"\r\n" +
		"<http://example.org/s> <http://example.org/p> \"3\" .\n" +
		"<http://example.org/s> <http://example.org/p> \"4\" oops\r\n"

	rd := NewReader(strings.NewReader(input), rdf.NewEnvironment(""), Options{})
	for i := 1; i <= 3; i++ {
		quad, err := rd.Next()
		if err != nil {
			t.Fatalf("statement %d: unexpected error: %v", i, err)
		}
		if quad.Object.(*rdf.Literal).Value != string(rune('0'+i)) {
			t.Errorf("statement %d: unexpected object %v", i, quad.Object)
		}
	}

	_, err := rd.Next()
	var perr *rdf.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Line != 5 {
		t.Errorf("expected line 5, got %d", perr.Line)
	}
	expectedOffset := strings.Index(input, "oops")
	if perr.Offset != expectedOffset {
		t.Errorf("expected offset %d, got %d", expectedOffset, perr.Offset)
	}

	if _, again := rd.Next(); again != err {
		t.Error("reader should keep returning the first error")
	}
}

func TestReaderEOF(t *testing.T) {
	rd := NewReader(strings.NewReader(""), rdf.NewEnvironment(""), Options{})
	if _, err := rd.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReaderMaxLineBytes(t *testing.T) {
	long := `<http://example.org/s> <http://example.org/p> "` + strings.Repeat("x", 200) + "\" .\n"
	_, err := readAll("<http://example.org/s> <http://example.org/p> \"ok\" .\n"+long, Options{MaxLineBytes: 128})

	var perr *rdf.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Kind() != rdf.KindSyntax || perr.Line != 2 {
		t.Errorf("unexpected error %v", perr)
	}
}

func TestReaderInvalidUTF8(t *testing.T) {
	_, err := readAll("<http://example.org/s> <http://example.org/p> \"ab\xffc\" .\n", Options{})

	var perr *rdf.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Kind() != rdf.KindSyntax || perr.Column != 50 || perr.Offset != 49 {
		t.Errorf("unexpected error position %v", perr)
	}
}

func TestReaderSinkErrorStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := NewReader(strings.NewReader("_:a <http://example.org/p> _:b .\n_:a <http://example.org/p> _:c .\n"),
		rdf.NewEnvironment(""), Options{}).
		ReadAll(rdf.QuadSinkFunc(func(*rdf.Quad) error {
			calls++
			return stop
		}))
	if err != stop || calls != 1 {
		t.Errorf("expected sink error after one call, got %v after %d", err, calls)
	}
}

func TestLanguageAndDatatypeIsInvalidLiteral(t *testing.T) {
	_, err := ParseLine(`<http://example.org/s> <http://example.org/p> "x"@en^^<http://example.org/dt> .`, 1, 0, false, rdf.NewEnvironment(""))
	if kind := rdf.KindOf(err); kind != rdf.KindInvalidLiteral {
		t.Errorf("expected InvalidLiteral, got %s (%v)", kind, err)
	}
}

func TestIRIEscapes(t *testing.T) {
	env := rdf.NewEnvironment("")
	quad, err := ParseLine(`<http://a/s> <http://a/p> <http://a/\u00E9> .`, 1, 0, false, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := quad.Object.(*rdf.NamedNode).IRI; got != "http://a/\u00e9" {
		t.Errorf("expected decoded IRI, got %q", got)
	}

	_, err = ParseLine(`<http://a/s> <http://a/p> <http://a/\'x> .`, 1, 0, false, env)
	var perr *rdf.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Kind() != rdf.KindIllegalIRI {
		t.Errorf("expected IllegalIRI, got %s", perr.Kind())
	}
	if perr.Column != 27 || perr.Offset != 26 {
		t.Errorf("expected column 27 offset 26, got %+v", perr.Position)
	}
}
