package model

import (
	"bytes"
	"fmt"
)

// Slot identifies a document value slot.
type Slot uint32

// NoSlot is the reserved slot number meaning "no slot configured".
const NoSlot = Slot(0xffffffff)

// DocID is a global document id. 0 is not a valid id.
//
// A logically single database may be split into shards. Global ids stripe
// round-robin across shards: shard i holds the global ids i+1, i+1+n,
// i+1+2n, ... for n shards, each addressed inside the shard by a dense
// shard-local id starting at 1. This keeps ids dense in every shard no matter
// how many shards the database has.
type DocID uint32

// ShardIndex returns the index of the shard owning this id, for a database
// with numShards shards.
func (d DocID) ShardIndex(numShards int) int {
	return int((uint32(d) - 1) % uint32(numShards))
}

// LocalID returns the shard-local document id for this global id, for a
// database with numShards shards.
func (d DocID) LocalID(numShards int) DocID {
	return DocID((uint32(d)-1)/uint32(numShards) + 1)
}

// MakeDocID combines a shard index and a shard-local id back into a global id.
func MakeDocID(shard int, local DocID, numShards int) DocID {
	return DocID((uint32(local)-1)*uint32(numShards) + uint32(shard) + 1)
}

// Result is one scored candidate: a global document id, its weight, and the
// optional keys the match may attach to it.
//
// A Result is owned by whoever currently holds it: the matching loop hands
// ownership to a collapse bucket when the item is kept, and gets evicted items
// back by value.
type Result struct {
	// DocID is the global document id.
	DocID DocID

	// Weight is the relevance weight computed by the upstream matcher.
	Weight float64

	// SortKey is the opaque ordered value used by value-primary sort orders.
	// nil when the match sorts by relevance only.
	SortKey []byte

	// CollapseCount is an estimate of how many further documents sharing
	// this item's collapse key were excluded from the match. Filled into
	// surviving items when the match finishes; zero during matching.
	CollapseCount uint32

	collapseKey    []byte
	collapseKeySet bool
}

// CollapseKey returns the collapse key assigned to this result, or nil if no
// key has been assigned.
func (r *Result) CollapseKey() []byte {
	return r.collapseKey
}

// HasCollapseKey reports whether a collapse key (possibly empty) has been
// assigned.
func (r *Result) HasCollapseKey() bool {
	return r.collapseKeySet
}

// SetCollapseKey assigns the collapse key for this result.
//
// A key may be assigned once; re-assigning the same key is a no-op, and a kept
// item's key may be cleared to the empty key (the bucket already knows it).
// Assigning a different non-empty key is a contract violation and panics.
func (r *Result) SetCollapseKey(key []byte) {
	if r.collapseKeySet && len(r.collapseKey) > 0 && len(key) > 0 &&
		!bytes.Equal(r.collapseKey, key) {
		panic(fmt.Sprintf("rankgo: collapse key for doc %d reassigned (%q -> %q)",
			r.DocID, r.collapseKey, key))
	}
	r.collapseKey = key
	r.collapseKeySet = true
}

// String returns a compact representation for logs and test failures.
func (r *Result) String() string {
	return fmt.Sprintf("Result(doc=%d wt=%v)", r.DocID, r.Weight)
}
