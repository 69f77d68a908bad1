package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
)

// DefaultBatchSize is the number of quads written per transaction by AddQuads
// and Batch.
const DefaultBatchSize = 1000

// QuadStore persists parsed statements in two indexes: SPOG for membership
// tests and GSPO for per-graph scans. Term strings are kept once in id2str.
type QuadStore struct {
	storage   Storage
	encoder   TermEncoder
	decoder   TermDecoder
	batchSize int
}

// NewQuadStore creates a quad store over storage.
func NewQuadStore(storage Storage, encoder TermEncoder, decoder TermDecoder) *QuadStore {
	return &QuadStore{
		storage:   storage,
		encoder:   encoder,
		decoder:   decoder,
		batchSize: DefaultBatchSize,
	}
}

// Close closes the underlying storage
func (s *QuadStore) Close() error {
	return s.storage.Close()
}

// Sync flushes committed quads to disk.
func (s *QuadStore) Sync() error {
	return s.storage.Sync()
}

// AddQuad stores a single quad in its own transaction.
func (s *QuadStore) AddQuad(quad *rdf.Quad) error {
	return s.AddQuads([]*rdf.Quad{quad})
}

// AddTriple stores a triple in the default graph.
func (s *QuadStore) AddTriple(triple *rdf.Triple) error {
	return s.AddQuad(triple.InGraph(nil))
}

// AddQuads stores quads in transactions of at most DefaultBatchSize quads.
// Batches committed before a failure stay committed.
func (s *QuadStore) AddQuads(quads []*rdf.Quad) error {
	for start := 0; start < len(quads); start += s.batchSize {
		end := min(start+s.batchSize, len(quads))
		if err := s.commitBatch(quads[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *QuadStore) commitBatch(quads []*rdf.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	for _, quad := range quads {
		if err := s.insertQuadInTxn(txn, quad); err != nil {
			return err
		}
	}
	return txn.Commit()
}

// encodeQuad encodes the four positions. A nil graph is the default graph.
func (s *QuadStore) encodeQuad(quad *rdf.Quad) ([4]EncodedTerm, [4]*string, error) {
	var encoded [4]EncodedTerm
	var strs [4]*string
	graph := quad.Graph
	if graph == nil {
		graph = rdf.NewDefaultGraph()
	}
	for i, term := range []rdf.Term{quad.Subject, quad.Predicate, quad.Object, graph} {
		enc, str, err := s.encoder.EncodeTerm(term)
		if err != nil {
			return encoded, strs, fmt.Errorf("failed to encode %s: %w", positionNames[i], err)
		}
		encoded[i] = enc
		strs[i] = str
	}
	return encoded, strs, nil
}

var positionNames = [4]string{"subject", "predicate", "object", "graph"}

// insertQuadInTxn inserts a quad within an existing transaction
func (s *QuadStore) insertQuadInTxn(txn Transaction, quad *rdf.Quad) error {
	encoded, strs, err := s.encodeQuad(quad)
	if err != nil {
		return err
	}
	for i := range encoded {
		if err := s.storeString(txn, encoded[i], strs[i]); err != nil {
			return err
		}
	}

	subj, pred, obj, graph := encoded[0], encoded[1], encoded[2], encoded[3]
	emptyValue := []byte{}

	if err := txn.Set(TableSPOG, s.encoder.EncodeQuadKey(subj, pred, obj, graph), emptyValue); err != nil {
		return err
	}
	if err := txn.Set(TableGSPO, s.encoder.EncodeQuadKey(graph, subj, pred, obj), emptyValue); err != nil {
		return err
	}
	if !quad.IsDefaultGraph() {
		if err := txn.Set(TableGraphs, graph[:], emptyValue); err != nil {
			return err
		}
	}
	return nil
}

// storeString stores a string in the id2str table if provided
func (s *QuadStore) storeString(txn Transaction, encoded EncodedTerm, str *string) error {
	if str == nil {
		return nil
	}
	value := []byte(*str)

	existing, err := txn.Get(TableID2Str, encoded[:])
	if err == nil && bytes.Equal(existing, value) {
		return nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return txn.Set(TableID2Str, encoded[:], value)
}

// ContainsQuad checks if a quad exists in the store
func (s *QuadStore) ContainsQuad(quad *rdf.Quad) (bool, error) {
	encoded, _, err := s.encodeQuad(quad)
	if err != nil {
		return false, err
	}

	txn, err := s.storage.Begin(false)
	if err != nil {
		return false, err
	}
	defer txn.Rollback()

	_, err = txn.Get(TableSPOG, s.encoder.EncodeQuadKey(encoded[:]...))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of quads in the store
func (s *QuadStore) Count() (int64, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return 0, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableSPOG, nil)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	count := int64(0)
	for it.Next() {
		count++
	}
	return count, nil
}

// Quads returns every stored quad grouped by graph.
func (s *QuadStore) Quads() ([]*rdf.Quad, error) {
	return s.scanGSPO(nil)
}

// GraphQuads returns the quads of one graph. A nil name selects the default
// graph.
func (s *QuadStore) GraphQuads(name rdf.Term) ([]*rdf.Quad, error) {
	if name == nil {
		name = rdf.NewDefaultGraph()
	}
	encoded, _, err := s.encoder.EncodeTerm(name)
	if err != nil {
		return nil, err
	}
	return s.scanGSPO(encoded[:])
}

// GraphNames returns the names of the non-default graphs.
func (s *QuadStore) GraphNames() ([]rdf.Term, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return nil, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableGraphs, nil)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var names []rdf.Term
	for it.Next() {
		terms, ok := SplitKey(it.Key())
		if !ok || len(terms) != 1 {
			return nil, fmt.Errorf("malformed graph key %x", it.Key())
		}
		name, err := s.decode(txn, terms[0])
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *QuadStore) scanGSPO(prefix []byte) ([]*rdf.Quad, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return nil, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableGSPO, prefix)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var quads []*rdf.Quad
	for it.Next() {
		quad, err := s.decodeGSPO(txn, it.Key())
		if err != nil {
			return nil, err
		}
		quads = append(quads, quad)
	}
	return quads, nil
}

func (s *QuadStore) decodeGSPO(txn Transaction, key []byte) (*rdf.Quad, error) {
	encoded, ok := SplitKey(key)
	if !ok || len(encoded) != 4 {
		return nil, fmt.Errorf("malformed gspo key %x", key)
	}
	var terms [4]rdf.Term
	for i, enc := range encoded {
		term, err := s.decode(txn, enc)
		if err != nil {
			return nil, err
		}
		terms[i] = term
	}
	return &rdf.Quad{Graph: terms[0], Subject: terms[1], Predicate: terms[2], Object: terms[3]}, nil
}

func (s *QuadStore) decode(txn Transaction, encoded EncodedTerm) (rdf.Term, error) {
	if !s.decoder.NeedsString(encoded) {
		return s.decoder.DecodeTerm(encoded, nil)
	}
	value, err := txn.Get(TableID2Str, encoded[:])
	if err != nil {
		return nil, fmt.Errorf("lookup term string: %w", err)
	}
	str := string(value)
	return s.decoder.DecodeTerm(encoded, &str)
}

// Batch buffers quads and writes them in DefaultBatchSize transactions. It
// implements rdf.QuadSink and rdf.TripleSink; call Flush when done.
type Batch struct {
	store   *QuadStore
	pending []*rdf.Quad
	written int
}

// NewBatch returns an empty batch writing to s.
func (s *QuadStore) NewBatch() *Batch {
	return &Batch{store: s}
}

// AddQuad buffers q, writing the buffer once it is full.
func (b *Batch) AddQuad(q *rdf.Quad) error {
	b.pending = append(b.pending, q)
	if len(b.pending) >= b.store.batchSize {
		return b.Flush()
	}
	return nil
}

// AddTriple buffers t in the default graph.
func (b *Batch) AddTriple(t *rdf.Triple) error {
	return b.AddQuad(t.InGraph(nil))
}

// Flush writes the buffered quads.
func (b *Batch) Flush() error {
	if len(b.pending) == 0 {
		return nil
	}
	if err := b.store.commitBatch(b.pending); err != nil {
		return err
	}
	b.written += len(b.pending)
	b.pending = b.pending[:0]
	return nil
}

// Written returns the number of quads committed so far.
func (b *Batch) Written() int {
	return b.written
}
