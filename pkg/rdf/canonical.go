package rdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// SerializeTriplesCanonical serializes triples to canonical N-Triples.
// Input order is preserved; blank nodes are relabeled _:b0, _:b1, ... in order
// of first appearance.
func SerializeTriplesCanonical(triples []*Triple) string {
	quads := make([]*Quad, len(triples))
	for i, t := range triples {
		quads[i] = t.InGraph(nil)
	}
	return SerializeQuadsCanonical(quads)
}

// SerializeQuadsCanonical serializes quads to canonical N-Quads. Quads in the
// default graph are written without a graph label.
func SerializeQuadsCanonical(quads []*Quad) string {
	var builder strings.Builder
	// strings.Builder never fails.
	_ = WriteQuadsCanonical(&builder, quads)
	return builder.String()
}

// WriteQuadsCanonical writes quads to w as canonical N-Quads.
func WriteQuadsCanonical(w io.Writer, quads []*Quad) error {
	labels := blankLabeler{}
	for _, quad := range quads {
		line := labels.term(quad.Subject) + " " +
			labels.term(quad.Predicate) + " " +
			labels.term(quad.Object)
		if !quad.IsDefaultGraph() {
			line += " " + labels.term(quad.Graph)
		}
		if _, err := io.WriteString(w, line+" .\n"); err != nil {
			return err
		}
	}
	return nil
}

// blankLabeler hands out document-local blank node labels.
type blankLabeler map[uuid.UUID]string

func (l blankLabeler) term(term Term) string {
	switch t := term.(type) {
	case *NamedNode:
		return "<" + t.IRI + ">"
	case *BlankNode:
		label, ok := l[t.ID]
		if !ok {
			label = fmt.Sprintf("_:b%d", len(l))
			l[t.ID] = label
		}
		return label
	case *Literal:
		return serializeLiteralCanonical(t)
	default:
		return ""
	}
}

// serializeLiteralCanonical serializes a literal in canonical format
func serializeLiteralCanonical(lit *Literal) string {
	escaped := escapeStringCanonical(lit.Value)
	if lit.Language != "" {
		return fmt.Sprintf(`"%s"@%s`, escaped, lit.Language)
	}
	// xsd:string is implicit
	if lit.Datatype != nil && lit.Datatype.IRI != XSDString.IRI {
		return fmt.Sprintf(`"%s"^^<%s>`, escaped, lit.Datatype.IRI)
	}
	return fmt.Sprintf(`"%s"`, escaped)
}

// escapeStringCanonical escapes a string value for canonical N-Triples/N-Quads output.
// Named escapes are used for \t \b \n \r \f \" \; other control characters
// and U+FFFE/U+FFFF use \uXXXX.
func escapeStringCanonical(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\t':
			builder.WriteString(`\t`)
		case '\b':
			builder.WriteString(`\b`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\f':
			builder.WriteString(`\f`)
		case '"':
			builder.WriteString(`\"`)
		case '\\':
			builder.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7F || r == 0xFFFE || r == 0xFFFF {
				fmt.Fprintf(&builder, `\u%04X`, r)
			} else {
				builder.WriteRune(r)
			}
		}
	}

	return builder.String()
}
