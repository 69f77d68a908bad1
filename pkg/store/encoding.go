package store

import (
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// EncodedTermSize is a tag byte followed by 16 bytes of hash or inline data.
const EncodedTermSize = 17

// EncodedTerm is the fixed-size key form of a term.
type EncodedTerm [EncodedTermSize]byte

// TermEncoder handles encoding of RDF terms into a compact binary format
type TermEncoder interface {
	// EncodeTerm encodes an RDF term into a fixed-size byte array.
	// Returns the encoded term and optionally a string to store in id2str table
	EncodeTerm(term rdf.Term) (EncodedTerm, *string, error)

	// EncodeQuadKey concatenates encoded terms into an index key
	EncodeQuadKey(terms ...EncodedTerm) []byte
}

// TermDecoder handles decoding of RDF terms from binary format
type TermDecoder interface {
	// DecodeTerm decodes an encoded term back to an rdf.Term.
	// For terms that require string lookup, stringValue should be provided
	DecodeTerm(encoded EncodedTerm, stringValue *string) (rdf.Term, error)

	// NeedsString reports whether encoded has its payload in id2str
	NeedsString(encoded EncodedTerm) bool
}

// SplitKey cuts an index key back into its encoded terms.
func SplitKey(key []byte) ([]EncodedTerm, bool) {
	if len(key)%EncodedTermSize != 0 {
		return nil, false
	}
	terms := make([]EncodedTerm, len(key)/EncodedTermSize)
	for i := range terms {
		copy(terms[i][:], key[i*EncodedTermSize:])
	}
	return terms, true
}
