package encoding

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// TermDecoder handles decoding of RDF terms
type TermDecoder struct{}

// NewTermDecoder creates a new term decoder
func NewTermDecoder() *TermDecoder {
	return &TermDecoder{}
}

// NeedsString reports whether the term's payload lives in the id2str table.
func (d *TermDecoder) NeedsString(encoded EncodedTerm) bool {
	switch GetTag(encoded) {
	case TagNamedNode, TagLiteral:
		return true
	}
	return false
}

// DecodeTerm decodes an encoded term back to an rdf.Term.
// For terms that require string lookup, stringValue should be provided
func (d *TermDecoder) DecodeTerm(encoded EncodedTerm, stringValue *string) (rdf.Term, error) {
	switch tag := GetTag(encoded); tag {
	case TagNamedNode:
		if stringValue == nil {
			return nil, fmt.Errorf("string value required for named node")
		}
		return rdf.NewNamedNode(*stringValue)

	case TagBlankNode:
		id, err := uuid.FromBytes(encoded[1:])
		if err != nil {
			return nil, fmt.Errorf("decode blank node: %w", err)
		}
		return &rdf.BlankNode{ID: id}, nil

	case TagInlineString:
		n := int(encoded[1])
		if n > MaxInlineStringSize {
			return nil, fmt.Errorf("inline string length %d out of range", n)
		}
		return rdf.NewStringLiteral(string(encoded[2 : 2+n])), nil

	case TagLiteral:
		if stringValue == nil {
			return nil, fmt.Errorf("string value required for literal")
		}
		return unpackLiteral(*stringValue)

	case TagDefaultGraph:
		return rdf.NewDefaultGraph(), nil

	default:
		return nil, fmt.Errorf("unknown term tag: %d", tag)
	}
}

func unpackLiteral(packed string) (*rdf.Literal, error) {
	if packed == "" {
		return nil, fmt.Errorf("malformed stored literal %q", packed)
	}
	header, value, ok := strings.Cut(packed[1:], "\x00")
	if !ok {
		return nil, fmt.Errorf("malformed stored literal %q", packed)
	}
	switch packed[0] {
	case literalString:
		return rdf.NewStringLiteral(value), nil
	case literalLanguage:
		return rdf.NewLiteral(value, header, nil)
	case literalTyped:
		datatype, err := rdf.NewNamedNode(header)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(value, datatype), nil
	}
	return nil, fmt.Errorf("unknown stored literal kind %q", packed[0])
}
