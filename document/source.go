package document

import (
	"fmt"

	"github.com/hupe1980/rankgo/model"
)

// ValueList is a forward-only cursor over the documents holding a value in one
// slot of one shard, in shard-local docid order.
type ValueList interface {
	// SkipTo positions the cursor at the first entry with docid >= local.
	// It returns false when the list is exhausted. Targets must be
	// non-decreasing across calls: the cursor only moves forward, and the
	// view opens a fresh cursor whenever it needs an earlier document.
	SkipTo(local model.DocID) bool

	// DocID returns the shard-local docid at the current position.
	// Only valid after SkipTo returned true.
	DocID() model.DocID

	// Value returns the value bytes at the current position.
	// Only valid after SkipTo returned true.
	Value() []byte
}

// Source is a shard-addressable document-value backend.
//
// Implementations exist per backend (in-memory, disk, remote); the view layer
// only depends on this capability set.
type Source interface {
	// NumShards returns the fixed shard count used for docid resolution.
	NumShards() int

	// OpenValueList opens a fresh cursor over slot within shard.
	// A nil ValueList (with nil error) means the slot holds no values in
	// that shard.
	OpenValueList(shard int, slot model.Slot) (ValueList, error)

	// DocValues returns every slot holding a value for the document, keyed
	// by slot number.
	DocValues(shard int, local model.DocID) (map[model.Slot][]byte, error)

	// DocData returns the opaque data chunk stored with the document.
	DocData(shard int, local model.DocID) ([]byte, error)

	// DocLimit returns the highest valid shard-local docid in shard.
	DocLimit(shard int) model.DocID
}

// ErrDocidOutOfRange reports a shard-local docid beyond the shard's valid
// range. This is a data-inconsistency fault: it never happens in correct
// operation and is fatal to the query.
type ErrDocidOutOfRange struct {
	Shard int
	DocID model.DocID
	Limit model.DocID
}

func (e *ErrDocidOutOfRange) Error() string {
	return fmt.Sprintf("docid %d out of range for shard %d (limit %d)",
		e.DocID, e.Shard, e.Limit)
}
