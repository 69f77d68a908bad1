// Package encoding turns RDF terms into the fixed-size keys used by the
// quad store.
package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
	"github.com/aleksaelezovic/rdfparse/pkg/store"
)

// Tags stored in the first byte of an encoded term.
const (
	TagNamedNode byte = iota + 1
	TagBlankNode
	TagLiteral
	TagInlineString
	TagDefaultGraph
)

const (
	// MaxInlineStringSize is the longest xsd:string value kept inside the
	// key. One byte of the payload holds the length.
	MaxInlineStringSize = store.EncodedTermSize - 2

	// EncodedTermSize is the size of an encoded term.
	EncodedTermSize = store.EncodedTermSize
)

// EncodedTerm represents a term encoded as a tag byte followed by 16 bytes of data
type EncodedTerm = store.EncodedTerm

// TermEncoder encodes terms with 128-bit xxh3 hashes. Blank nodes keep their
// UUID inline.
type TermEncoder struct{}

func NewTermEncoder() *TermEncoder {
	return &TermEncoder{}
}

// Hash128 computes a 128-bit xxhash3 hash of the input string
func (e *TermEncoder) Hash128(s string) [16]byte {
	hash := xxh3.HashString128(s)
	var result [16]byte
	binary.BigEndian.PutUint64(result[0:8], hash.Hi)
	binary.BigEndian.PutUint64(result[8:16], hash.Lo)
	return result
}

// EncodeTerm encodes an RDF term into a fixed-size byte array.
// Returns the encoded term and optionally a string to store in id2str table
func (e *TermEncoder) EncodeTerm(term rdf.Term) (EncodedTerm, *string, error) {
	var encoded EncodedTerm

	switch t := term.(type) {
	case *rdf.NamedNode:
		encoded[0] = TagNamedNode
		hash := e.Hash128(t.IRI)
		copy(encoded[1:], hash[:])
		iri := t.IRI
		return encoded, &iri, nil

	case *rdf.BlankNode:
		encoded[0] = TagBlankNode
		copy(encoded[1:], t.ID[:])
		return encoded, nil, nil

	case *rdf.Literal:
		return e.encodeLiteral(t)

	case *rdf.DefaultGraph:
		encoded[0] = TagDefaultGraph
		return encoded, nil, nil

	case nil:
		return encoded, nil, fmt.Errorf("cannot encode nil term")

	default:
		return encoded, nil, fmt.Errorf("unknown term type: %T", term)
	}
}

func (e *TermEncoder) encodeLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var encoded EncodedTerm

	if isPlainString(lit) && len(lit.Value) <= MaxInlineStringSize {
		encoded[0] = TagInlineString
		encoded[1] = byte(len(lit.Value))
		copy(encoded[2:], lit.Value)
		return encoded, nil, nil
	}

	packed := packLiteral(lit)
	encoded[0] = TagLiteral
	hash := e.Hash128(packed)
	copy(encoded[1:], hash[:])
	return encoded, &packed, nil
}

func isPlainString(lit *rdf.Literal) bool {
	return lit.Language == "" && (lit.Datatype == nil || lit.Datatype.IRI == rdf.XSDString.IRI)
}

// Kind bytes leading a packed literal.
const (
	literalString   byte = 's'
	literalLanguage byte = 'l'
	literalTyped    byte = 'd'
)

// packLiteral stores a kind byte, the language or datatype IRI, a NUL, then
// the lexical value. Neither a language tag nor an IRI can contain NUL.
func packLiteral(lit *rdf.Literal) string {
	kind, header := literalString, ""
	switch {
	case lit.Language != "":
		kind, header = literalLanguage, lit.Language
	case lit.Datatype != nil:
		kind, header = literalTyped, lit.Datatype.IRI
	}
	return string(kind) + header + "\x00" + lit.Value
}

// EncodeQuadKey concatenates encoded terms into a big-endian index key.
func (e *TermEncoder) EncodeQuadKey(terms ...EncodedTerm) []byte {
	result := make([]byte, 0, len(terms)*EncodedTermSize)
	for _, term := range terms {
		result = append(result, term[:]...)
	}
	return result
}

// GetTag extracts the tag from an encoded term
func GetTag(encoded EncodedTerm) byte {
	return encoded[0]
}
