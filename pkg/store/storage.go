package store

import (
	"errors"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrTransactionRO = errors.New("transaction is read-only")
)

// Storage is the key-value backend of a QuadStore.
type Storage interface {
	Begin(writable bool) (Transaction, error)
	Close() error
	// Sync makes committed writes durable.
	Sync() error
}

// Transaction is a snapshot of the store. Writes are visible to other
// transactions only after Commit.
type Transaction interface {
	// Get returns ErrNotFound when key is absent from table.
	Get(table Table, key []byte) ([]byte, error)

	// Set returns ErrTransactionRO on a read-only transaction.
	Set(table Table, key, value []byte) error

	// Scan iterates over the keys of table that start with prefix.
	// A nil prefix scans the whole table.
	Scan(table Table, prefix []byte) (Iterator, error)

	Commit() error
	Rollback() error
}

// Iterator walks the keys returned by Transaction.Scan in byte order.
type Iterator interface {
	Next() bool
	// Key is the key without its table byte.
	Key() []byte
	Value() ([]byte, error)
	Close() error
}

// Table selects a keyspace. Every stored key starts with its table byte.
type Table byte

const (
	// TableID2Str maps an encoded IRI or long literal to its string.
	TableID2Str Table = iota
	// TableSPOG holds subject, predicate, object, graph keys for full scans
	// and membership checks.
	TableSPOG
	// TableGSPO holds the same quads led by the graph, for per-graph reads.
	TableGSPO
	// TableGraphs lists every named graph once.
	TableGraphs
)

func (t Table) String() string {
	switch t {
	case TableID2Str:
		return "id2str"
	case TableSPOG:
		return "spog"
	case TableGSPO:
		return "gspo"
	case TableGraphs:
		return "graphs"
	default:
		return "unknown"
	}
}

// PrefixKey prepends the table byte to key.
func PrefixKey(table Table, key []byte) []byte {
	result := make([]byte, 1+len(key))
	result[0] = byte(table)
	copy(result[1:], key)
	return result
}
