package rdf

import (
	"errors"
	"testing"
)

func TestResolveReference_RFC3986(t *testing.T) {
	const base = "http://a/b/c/d;p?q"
	tests := map[string]string{
		"g:h":           "g:h",
		"g":             "http://a/b/c/g",
		"./g":           "http://a/b/c/g",
		"g/":            "http://a/b/c/g/",
		"/g":            "http://a/g",
		"//g":           "http://g",
		"?y":            "http://a/b/c/d;p?y",
		"g?y":           "http://a/b/c/g?y",
		"#s":            "http://a/b/c/d;p?q#s",
		"g#s":           "http://a/b/c/g#s",
		";x":            "http://a/b/c/;x",
		"":              "http://a/b/c/d;p?q",
		".":             "http://a/b/c/",
		"./":            "http://a/b/c/",
		"..":            "http://a/b/",
		"../":           "http://a/b/",
		"../g":          "http://a/b/g",
		"../..":         "http://a/",
		"../../g":       "http://a/g",
		"../../../g":    "http://a/g",
		"/./g":          "http://a/g",
		"/../g":         "http://a/g",
		"g.":            "http://a/b/c/g.",
		".g":            "http://a/b/c/.g",
		"./../g":        "http://a/b/g",
		"g/./h":         "http://a/b/c/g/h",
		"g/../h":        "http://a/b/c/h",
		"g;x=1/./y":     "http://a/b/c/g;x=1/y",
		"g;x=1/../y":    "http://a/b/c/y",
		"g?y/./x":       "http://a/b/c/g?y/./x",
		"g#s/../x":      "http://a/b/c/g#s/../x",
		"http://x/y/..": "http://x/y/..",
	}
	for ref, expected := range tests {
		if got := ResolveReference(base, ref); got != expected {
			t.Errorf("ResolveReference(%q): expected %s, got %s", ref, expected, got)
		}
	}
}

func TestResolveReference_AuthorityWithoutPath(t *testing.T) {
	if got := ResolveReference("http://example.org", "a"); got != "http://example.org/a" {
		t.Errorf("Expected http://example.org/a, got %s", got)
	}
}

func TestResolveReference_EmptyBase(t *testing.T) {
	if got := ResolveReference("", "../x"); got != "../x" {
		t.Errorf("Expected reference unchanged, got %s", got)
	}
}

func TestIsAbsoluteIRI(t *testing.T) {
	for iri, expected := range map[string]bool{
		"http://example.org/":  true,
		"urn:isbn:123":         true,
		"a+b-c.d:x":            true,
		"relative":             false,
		"/abs/path":            false,
		"1http://example.org/": false,
		":x":                   false,
	} {
		if IsAbsoluteIRI(iri) != expected {
			t.Errorf("IsAbsoluteIRI(%q): expected %v", iri, expected)
		}
	}
}

func TestValidateIRI(t *testing.T) {
	if err := ValidateIRI("http://example.org/a%20b?q=1#f"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateIRI("http://example.org/a\tb"); !errors.Is(err, ErrIllegalIRI) {
		t.Errorf("Expected ErrIllegalIRI, got %v", err)
	}
}
