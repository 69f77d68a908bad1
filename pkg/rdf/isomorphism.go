package rdf

import (
	"sort"

	"github.com/google/uuid"
)

// AreGraphsIsomorphic checks if two graphs are equal up to a bijection
// between their blank nodes.
func AreGraphsIsomorphic(expected, actual *Graph) bool {
	return AreTriplesIsomorphic(expected.Triples(), actual.Triples())
}

// AreDatasetsIsomorphic checks if two datasets are equal up to a bijection
// between their blank nodes, graph names included.
func AreDatasetsIsomorphic(expected, actual *Dataset) bool {
	return AreQuadsIsomorphic(expected.Quads(), actual.Quads())
}

// AreTriplesIsomorphic checks two duplicate-free triple slices.
func AreTriplesIsomorphic(expected, actual []*Triple) bool {
	toQuads := func(triples []*Triple) []*Quad {
		quads := make([]*Quad, len(triples))
		for i, t := range triples {
			quads[i] = t.InGraph(nil)
		}
		return quads
	}
	return AreQuadsIsomorphic(toQuads(expected), toQuads(actual))
}

// AreQuadsIsomorphic checks two duplicate-free quad slices.
func AreQuadsIsomorphic(expected, actual []*Quad) bool {
	if len(expected) != len(actual) {
		return false
	}
	expectedBlanks := blankNodesByDegree(expected)
	actualBlanks := blankNodesByDegree(actual)
	if len(expectedBlanks) != len(actualBlanks) {
		return false
	}

	actualSet := make(map[string]bool, len(actual))
	for _, q := range actual {
		actualSet[mappedQuadKey(q, nil)] = true
	}
	m := &isoMatcher{
		expected:  expected,
		actualSet: actualSet,
		blanks:    expectedBlanks,
		targets:   actualBlanks,
		mapping:   make(map[uuid.UUID]uuid.UUID),
		used:      make(map[uuid.UUID]bool),
	}
	return m.backtrack(0)
}

type isoMatcher struct {
	expected  []*Quad
	actualSet map[string]bool
	blanks    []uuid.UUID
	targets   []uuid.UUID
	mapping   map[uuid.UUID]uuid.UUID
	used      map[uuid.UUID]bool
}

func (m *isoMatcher) backtrack(index int) bool {
	if index == len(m.blanks) {
		return m.consistent()
	}
	current := m.blanks[index]
	for _, candidate := range m.targets {
		if m.used[candidate] {
			continue
		}
		m.mapping[current] = candidate
		m.used[candidate] = true
		if m.consistent() && m.backtrack(index+1) {
			return true
		}
		delete(m.mapping, current)
		delete(m.used, candidate)
	}
	return false
}

// consistent checks every expected quad whose blank nodes are all mapped.
func (m *isoMatcher) consistent() bool {
	for _, q := range m.expected {
		if !m.mapped(q.Subject) || !m.mapped(q.Object) || !m.mapped(q.Graph) {
			continue
		}
		if !m.actualSet[mappedQuadKey(q, m.mapping)] {
			return false
		}
	}
	return true
}

func (m *isoMatcher) mapped(term Term) bool {
	if b, ok := term.(*BlankNode); ok {
		_, exists := m.mapping[b.ID]
		return exists
	}
	return true
}

// blankNodesByDegree lists the distinct blank nodes, most connected first.
func blankNodesByDegree(quads []*Quad) []uuid.UUID {
	degrees := make(map[uuid.UUID]int)
	for _, q := range quads {
		for _, term := range []Term{q.Subject, q.Object, q.Graph} {
			if b, ok := term.(*BlankNode); ok {
				degrees[b.ID]++
			}
		}
	}
	blanks := make([]uuid.UUID, 0, len(degrees))
	for id := range degrees {
		blanks = append(blanks, id)
	}
	sort.Slice(blanks, func(i, j int) bool {
		if degrees[blanks[i]] != degrees[blanks[j]] {
			return degrees[blanks[i]] > degrees[blanks[j]]
		}
		return blanks[i].String() < blanks[j].String()
	})
	return blanks
}

func mappedQuadKey(q *Quad, mapping map[uuid.UUID]uuid.UUID) string {
	buf := make([]byte, 0, 128)
	for _, term := range []Term{q.Subject, q.Predicate, q.Object, q.Graph} {
		if b, ok := term.(*BlankNode); ok && mapping != nil {
			if target, exists := mapping[b.ID]; exists {
				term = &BlankNode{ID: target}
			}
		}
		buf = appendTermKey(buf, term)
	}
	return string(buf)
}
