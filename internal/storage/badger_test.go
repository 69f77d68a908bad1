package storage

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksaelezovic/rdfparse/internal/encoding"
	"github.com/aleksaelezovic/rdfparse/pkg/rdf"
	"github.com/aleksaelezovic/rdfparse/pkg/store"
)

func newQuadStore(t *testing.T) *store.QuadStore {
	t.Helper()
	storage, err := NewBadgerStorage(t.TempDir())
	require.NoError(t, err)
	qs := store.NewQuadStore(storage, encoding.NewTermEncoder(), encoding.NewTermDecoder())
	t.Cleanup(func() { _ = qs.Close() })
	return qs
}

func iri(t *testing.T, s string) *rdf.NamedNode {
	t.Helper()
	n, err := rdf.NewNamedNode(s)
	require.NoError(t, err)
	return n
}

func quad(t *testing.T, s, p, o, g rdf.Term) *rdf.Quad {
	t.Helper()
	q, err := rdf.NewQuad(s, p, o, g)
	require.NoError(t, err)
	return q
}

func TestBatchInsertAndQuery(t *testing.T) {
	qs := newQuadStore(t)

	name := iri(t, "http://xmlns.com/foaf/0.1/name")
	graph1 := iri(t, "http://example.org/graph1")
	lang, err := rdf.NewLiteral("Charlie", "en", nil)
	require.NoError(t, err)

	quads := []*rdf.Quad{
		quad(t, iri(t, "http://example.org/alice"), name, rdf.NewStringLiteral("Alice"), nil),
		quad(t, iri(t, "http://example.org/bob"), name, rdf.NewStringLiteral("a string longer than sixteen bytes"), nil),
		quad(t, iri(t, "http://example.org/charlie"), name, lang, graph1),
	}

	require.NoError(t, qs.AddQuads(quads))
	require.NoError(t, qs.Sync())

	count, err := qs.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	defaultQuads, err := qs.GraphQuads(nil)
	require.NoError(t, err)
	assert.True(t, rdf.AreQuadsIsomorphic(quads[:2], defaultQuads))

	named, err := qs.GraphQuads(graph1)
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.True(t, named[0].Equals(quads[2]))

	names, err := qs.GraphNames()
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.True(t, names[0].Equals(graph1))
}

func TestDuplicateQuadsStoredOnce(t *testing.T) {
	qs := newQuadStore(t)

	q := quad(t, iri(t, "http://example.org/s"), iri(t, "http://example.org/p"), rdf.NewStringLiteral("o"), nil)
	require.NoError(t, qs.AddQuad(q))
	require.NoError(t, qs.AddTriple(q.Triple()))

	count, err := qs.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestContainsQuad(t *testing.T) {
	qs := newQuadStore(t)

	b := rdf.NewBlankNode()
	typed := rdf.NewTypedLiteral("5", rdf.XSDInteger)
	q := quad(t, b, iri(t, "http://example.org/p"), typed, nil)
	require.NoError(t, qs.AddQuad(q))

	ok, err := qs.ContainsQuad(q)
	require.NoError(t, err)
	assert.True(t, ok)

	// Same label-free shape, different node.
	other := quad(t, rdf.NewBlankNode(), iri(t, "http://example.org/p"), typed, nil)
	ok, err = qs.ContainsQuad(other)
	require.NoError(t, err)
	assert.False(t, ok)

	// Lexical forms are kept: "05" is not "5".
	padded := quad(t, b, iri(t, "http://example.org/p"), rdf.NewTypedLiteral("05", rdf.XSDInteger), nil)
	ok, err = qs.ContainsQuad(padded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoundTripKeepsBlankNodeIdentity(t *testing.T) {
	qs := newQuadStore(t)

	b := rdf.NewBlankNode()
	p := iri(t, "http://example.org/p")
	require.NoError(t, qs.AddQuads([]*rdf.Quad{
		quad(t, b, p, rdf.NewStringLiteral("x"), nil),
		quad(t, iri(t, "http://example.org/s"), p, b, b),
	}))

	quads, err := qs.Quads()
	require.NoError(t, err)
	require.Len(t, quads, 2)
	for _, q := range quads {
		if q.IsDefaultGraph() {
			assert.True(t, q.Subject.Equals(b))
		} else {
			assert.True(t, q.Object.Equals(b))
			assert.True(t, q.Graph.Equals(b))
		}
	}
}

func TestBatchFlushesInChunks(t *testing.T) {
	qs := newQuadStore(t)
	batch := qs.NewBatch()

	p := iri(t, "http://example.org/p")
	s := iri(t, "http://example.org/s")
	total := store.DefaultBatchSize + 5
	for i := range total {
		lit := rdf.NewStringLiteral(strconv.Itoa(i))
		require.NoError(t, batch.AddTriple(&rdf.Triple{Subject: s, Predicate: p, Object: lit}))
	}
	assert.Equal(t, store.DefaultBatchSize, batch.Written())
	require.NoError(t, batch.Flush())
	assert.Equal(t, total, batch.Written())

	count, err := qs.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(total), count)
}

func TestReadOnlyTransactionRejectsWrites(t *testing.T) {
	storage, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	defer storage.Close()

	txn, err := storage.Begin(false)
	require.NoError(t, err)
	defer txn.Rollback()

	err = txn.Set(store.TableSPOG, []byte("k"), nil)
	assert.ErrorIs(t, err, store.ErrTransactionRO)
	assert.Contains(t, err.Error(), "spog")

	_, err = txn.Get(store.TableSPOG, []byte("k"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestScanStaysInsideTable(t *testing.T) {
	storage, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	defer storage.Close()

	txn, err := storage.Begin(true)
	require.NoError(t, err)
	require.NoError(t, txn.Set(store.TableSPOG, []byte("a1"), nil))
	require.NoError(t, txn.Set(store.TableSPOG, []byte("a2"), nil))
	require.NoError(t, txn.Set(store.TableSPOG, []byte("b1"), nil))
	require.NoError(t, txn.Set(store.TableGSPO, []byte("a3"), nil))
	require.NoError(t, txn.Commit())

	txn, err = storage.Begin(false)
	require.NoError(t, err)
	defer txn.Rollback()

	it, err := txn.Scan(store.TableSPOG, []byte("a"))
	require.NoError(t, err)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Equal(t, []string{"a1", "a2"}, keys)
}
