// Package testsuite runs the W3C RDF conformance manifests for N-Triples,
// N-Quads and Turtle against the parsers in this module.
package testsuite

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleksaelezovic/rdfparse/internal/turtle"
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// Vocabulary used by the manifests.
const (
	mfNS   = "http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#"
	rdftNS = "http://www.w3.org/ns/rdftest#"
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"
)

// TestManifest is one manifest file with its tests and those of the
// manifests it includes.
type TestManifest struct {
	Path  string
	Tests []TestCase
}

// TestCase represents a single conformance test
type TestCase struct {
	IRI         string
	Name        string
	Type        TestType
	Action      string // local path of the input document
	ActionIRI   string // base IRI for parsing the input
	Result      string // local path of the expected N-Triples, if any
	Approved    bool
	Description string
}

// TestType represents the type of test
type TestType string

const (
	// RDF Turtle tests
	TestTypeTurtleEval           TestType = "TestTurtleEval"
	TestTypeTurtlePositiveSyntax TestType = "TestTurtlePositiveSyntax"
	TestTypeTurtleNegativeSyntax TestType = "TestTurtleNegativeSyntax"
	TestTypeTurtleNegativeEval   TestType = "TestTurtleNegativeEval"

	// RDF N-Triples tests
	TestTypeNTriplesPositiveSyntax TestType = "TestNTriplesPositiveSyntax"
	TestTypeNTriplesNegativeSyntax TestType = "TestNTriplesNegativeSyntax"
	TestTypeNTriplesPositiveC14N   TestType = "TestNTriplesPositiveC14N"

	// RDF N-Quads tests
	TestTypeNQuadsPositiveSyntax TestType = "TestNQuadsPositiveSyntax"
	TestTypeNQuadsNegativeSyntax TestType = "TestNQuadsNegativeSyntax"
	TestTypeNQuadsPositiveC14N   TestType = "TestNQuadsPositiveC14N"
)

// ParseManifest reads a Turtle manifest and the manifests it includes.
func ParseManifest(path string) (*TestManifest, error) {
	return parseManifestWithVisited(path, make(map[string]bool))
}

// parseManifestWithVisited parses a manifest and tracks visited files to prevent infinite loops
func parseManifestWithVisited(path string, visited map[string]bool) (*TestManifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	manifest := &TestManifest{Path: absPath}
	if visited[absPath] {
		return manifest, nil
	}
	visited[absPath] = true

	data, err := os.ReadFile(absPath) // #nosec G304 - test suite legitimately reads test manifest files
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}

	env := rdf.NewEnvironment(FileIRI(absPath))
	triples, err := turtle.ParseTriples(string(data), env, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", absPath, err)
	}
	g := newGraphIndex(triples)
	loc := locator{dir: filepath.Dir(absPath), base: iriDir(env.Base())}

	for _, m := range g.subjectsOfType(mfNS + "Manifest") {
		for _, entry := range g.list(g.object(m, mfNS+"entries")) {
			test, ok := g.testCase(entry, loc)
			if ok {
				manifest.Tests = append(manifest.Tests, test)
			}
		}
		for _, inc := range g.list(g.object(m, mfNS+"include")) {
			named, ok := inc.(*rdf.NamedNode)
			if !ok {
				continue
			}
			included, err := parseManifestWithVisited(loc.path(named.IRI), visited)
			if err != nil {
				return nil, err
			}
			manifest.Tests = append(manifest.Tests, included.Tests...)
		}
	}
	return manifest, nil
}

// FileIRI converts a file path to a file:// IRI.
func FileIRI(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	absPath = filepath.ToSlash(absPath)
	if !strings.HasPrefix(absPath, "/") {
		absPath = "/" + absPath
	}
	return (&url.URL{Scheme: "file", Path: absPath}).String()
}

func iriDir(iri string) string {
	if i := strings.LastIndexByte(iri, '/'); i >= 0 {
		return iri[:i+1]
	}
	return iri
}

// locator maps test IRIs to files next to the manifest. Manifests declare
// a web @base; their files are looked up relative to it.
type locator struct {
	dir  string
	base string
}

func (l locator) path(iri string) string {
	if rest, ok := strings.CutPrefix(iri, l.base); ok {
		return filepath.Join(l.dir, filepath.FromSlash(rest))
	}
	if u, err := url.Parse(iri); err == nil && u.Scheme == "file" {
		return filepath.FromSlash(u.Path)
	}
	return filepath.Join(l.dir, filepath.Base(iri))
}

// graphIndex groups a manifest's triples by subject.
type graphIndex map[string][]*rdf.Triple

func newGraphIndex(triples []*rdf.Triple) graphIndex {
	g := graphIndex{}
	for _, t := range triples {
		key := t.Subject.String()
		g[key] = append(g[key], t)
	}
	return g
}

func (g graphIndex) object(subject rdf.Term, predicate string) rdf.Term {
	if subject == nil {
		return nil
	}
	for _, t := range g[subject.String()] {
		if p, ok := t.Predicate.(*rdf.NamedNode); ok && p.IRI == predicate {
			return t.Object
		}
	}
	return nil
}

func (g graphIndex) subjectsOfType(class string) []rdf.Term {
	var out []rdf.Term
	for _, triples := range g {
		for _, t := range triples {
			if t.Predicate.Equals(rdf.RDFType) && isIRI(t.Object, class) {
				out = append(out, t.Subject)
				break
			}
		}
	}
	return out
}

// list walks an rdf:first/rdf:rest chain.
func (g graphIndex) list(head rdf.Term) []rdf.Term {
	var items []rdf.Term
	seen := map[string]bool{}
	for head != nil && !head.Equals(rdf.RDFNil) && !seen[head.String()] {
		seen[head.String()] = true
		if item := g.object(head, rdf.RDFFirst.IRI); item != nil {
			items = append(items, item)
		}
		head = g.object(head, rdf.RDFRest.IRI)
	}
	return items
}

func (g graphIndex) testCase(entry rdf.Term, loc locator) (TestCase, bool) {
	typ, ok := g.object(entry, rdf.RDFType.IRI).(*rdf.NamedNode)
	if !ok {
		return TestCase{}, false
	}
	test := TestCase{
		IRI:         entry.String(),
		Name:        literalValue(g.object(entry, mfNS+"name")),
		Type:        TestType(strings.TrimPrefix(typ.IRI, rdftNS)),
		Description: literalValue(g.object(entry, rdfsNS+"comment")),
		Approved:    isIRI(g.object(entry, mfNS+"approval"), rdftNS+"Approved"),
	}
	if named, ok := g.object(entry, mfNS+"action").(*rdf.NamedNode); ok {
		test.ActionIRI = named.IRI
		test.Action = loc.path(named.IRI)
	}
	if named, ok := g.object(entry, mfNS+"result").(*rdf.NamedNode); ok {
		test.Result = loc.path(named.IRI)
	}
	if test.Name == "" {
		test.Name = test.IRI
	}
	return test, true
}

func isIRI(term rdf.Term, iri string) bool {
	n, ok := term.(*rdf.NamedNode)
	return ok && n.IRI == iri
}

func literalValue(term rdf.Term) string {
	if lit, ok := term.(*rdf.Literal); ok {
		return lit.Value
	}
	return ""
}
