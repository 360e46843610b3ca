package document

import (
	"fmt"

	"github.com/hupe1980/rankgo/model"
)

// ShardedView represents the current document during matching as a movable
// cursor over a sharded Source.
//
// It is owned exclusively by one query's matching loop and is not safe for
// concurrent use. The matcher selects a shard, sets the active document, and
// fetches values; the view keeps one lazily-opened ValueList per slot so
// docid-ascending accesses reuse the cursor position, and replaces the cursor
// when the stream moves to an earlier document.
type ShardedView struct {
	src       Source
	numShards int

	current int         // selected shard
	local   model.DocID // active shard-local docid; 0 means none

	// cursors caches one cursor per slot for the selected shard. A cached
	// entry with a nil ValueList records "slot empty in this shard" so we
	// don't re-open it for every document.
	cursors map[model.Slot]*slotCursor

	// Per-document cached state, dropped whenever the active document
	// changes. Only the all-values/data paths use it; the hot per-slot
	// path goes through the cursors.
	values map[model.Slot][]byte
	data   []byte
	dataOK bool
}

// NewShardedView creates a view over src with shard 0 selected and no active
// document.
func NewShardedView(src Source) *ShardedView {
	return &ShardedView{
		src:       src,
		numShards: src.NumShards(),
		cursors:   make(map[model.Slot]*slotCursor),
	}
}

// NumShards returns the shard count of the underlying source.
func (v *ShardedView) NumShards() int { return v.numShards }

// Shard returns the currently selected shard index.
func (v *ShardedView) Shard() int { return v.current }

// Select switches the active shard. All cached value cursors belong to the old
// shard and are dropped, as is any per-document state.
func (v *ShardedView) Select(shard int) {
	if shard == v.current {
		return
	}
	v.current = shard
	v.cursors = make(map[model.Slot]*slotCursor)
	v.dropDocState()
	v.local = 0
}

// SetDocument makes the document with the given global id active.
//
// The resolved shard must match the currently selected shard; a mismatch is a
// programming error in the surrounding pipeline and panics.
func (v *ShardedView) SetDocument(did model.DocID) {
	if shard := did.ShardIndex(v.numShards); shard != v.current {
		panic(fmt.Sprintf(
			"rankgo/document: doc %d resolves to shard %d but shard %d is selected",
			did, shard, v.current))
	}
	v.SetShardDocument(did.LocalID(v.numShards))
}

// SetShardDocument makes the document with the given shard-local id active.
// Used directly when the caller already works in shard-local ids (the remote
// case); SetDocument resolves global ids onto it.
func (v *ShardedView) SetShardDocument(local model.DocID) {
	if local == v.local {
		return
	}
	v.local = local
	v.dropDocState()
}

// Value returns the value bytes in slot for the active document, or nil when
// the document has no value there.
func (v *ShardedView) Value(slot model.Slot) ([]byte, error) {
	local := v.activeDocID()
	if limit := v.src.DocLimit(v.current); local > limit {
		return nil, &ErrDocidOutOfRange{Shard: v.current, DocID: local, Limit: limit}
	}

	cur, cached := v.cursors[slot]
	if cached && cur.vl != nil && local < cur.last {
		// The candidate stream is weight-ordered, not docid-ordered, so
		// moving to a lower docid is routine. The cursor is forward-only
		// and already past local; start a fresh one.
		cached = false
	}
	if !cached {
		vl, err := v.src.OpenValueList(v.current, slot)
		if err != nil {
			return nil, fmt.Errorf("open value list for slot %d: %w", slot, err)
		}
		cur = &slotCursor{vl: vl}
		v.cursors[slot] = cur
	}
	if cur.vl == nil {
		// Slot holds no values in this shard.
		return nil, nil
	}
	cur.last = local
	if !cur.vl.SkipTo(local) || cur.vl.DocID() != local {
		return nil, nil
	}
	return cur.vl.Value(), nil
}

// slotCursor pairs a cached ValueList with the highest target it has been
// skipped to. A target below last means the cursor cannot serve the document
// and must be replaced.
type slotCursor struct {
	vl   ValueList
	last model.DocID
}

// AllValues returns the slot to value mapping for every slot holding a value
// for the active document. Meant for full-document access, not the hot
// per-slot path.
func (v *ShardedView) AllValues() (map[model.Slot][]byte, error) {
	local := v.activeDocID()
	if v.values == nil {
		values, err := v.src.DocValues(v.current, local)
		if err != nil {
			return nil, err
		}
		if values == nil {
			values = make(map[model.Slot][]byte)
		}
		v.values = values
	}
	return v.values, nil
}

// Data returns the opaque data chunk of the active document.
func (v *ShardedView) Data() ([]byte, error) {
	local := v.activeDocID()
	if !v.dataOK {
		data, err := v.src.DocData(v.current, local)
		if err != nil {
			return nil, err
		}
		v.data = data
		v.dataOK = true
	}
	return v.data, nil
}

func (v *ShardedView) activeDocID() model.DocID {
	if v.local == 0 {
		panic("rankgo/document: no active document")
	}
	return v.local
}

func (v *ShardedView) dropDocState() {
	v.values = nil
	v.data = nil
	v.dataOK = false
}
