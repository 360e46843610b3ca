package document

import (
	"bytes"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/rankgo/model"
)

// Compile time check to ensure MemorySource satisfies the Source interface.
var _ Source = (*MemorySource)(nil)

// slotTable holds the values of one slot within one shard: a roaring bitmap of
// the shard-local docids holding a value, plus the value bytes per docid.
type slotTable struct {
	present *roaring.Bitmap
	values  map[uint32][]byte
}

type memoryShard struct {
	slots    map[model.Slot]*slotTable
	data     map[uint32][]byte
	docLimit model.DocID
}

// MemorySource is the in-memory Source backend.
//
// Build it up front with AddDocument, then hand it to the matching loop.
// It is not safe for concurrent mutation, but once built, any number of
// ShardedViews may read from it.
type MemorySource struct {
	shards []*memoryShard
}

// NewMemorySource creates an empty source with numShards shards.
func NewMemorySource(numShards int) *MemorySource {
	if numShards < 1 {
		numShards = 1
	}
	shards := make([]*memoryShard, numShards)
	for i := range shards {
		shards[i] = &memoryShard{
			slots: make(map[model.Slot]*slotTable),
			data:  make(map[uint32][]byte),
		}
	}
	return &MemorySource{shards: shards}
}

// AddDocument stores the values and data of the document with global id did,
// routing it to its owning shard. Value byte slices are copied.
func (s *MemorySource) AddDocument(did model.DocID, values map[model.Slot][]byte, data []byte) {
	if did == 0 {
		panic("rankgo/document: docid 0 is not valid")
	}
	n := len(s.shards)
	sh := s.shards[did.ShardIndex(n)]
	local := did.LocalID(n)
	if local > sh.docLimit {
		sh.docLimit = local
	}
	for slot, value := range values {
		t, ok := sh.slots[slot]
		if !ok {
			t = &slotTable{present: roaring.New(), values: make(map[uint32][]byte)}
			sh.slots[slot] = t
		}
		t.present.Add(uint32(local))
		t.values[uint32(local)] = bytes.Clone(value)
	}
	if data != nil {
		sh.data[uint32(local)] = bytes.Clone(data)
	}
}

// NumShards implements Source.
func (s *MemorySource) NumShards() int { return len(s.shards) }

// DocLimit implements Source.
func (s *MemorySource) DocLimit(shard int) model.DocID {
	return s.shards[shard].docLimit
}

// OpenValueList implements Source.
func (s *MemorySource) OpenValueList(shard int, slot model.Slot) (ValueList, error) {
	t, ok := s.shards[shard].slots[slot]
	if !ok {
		return nil, nil
	}
	return &memValueList{table: t, it: t.present.Iterator()}, nil
}

// DocValues implements Source.
func (s *MemorySource) DocValues(shard int, local model.DocID) (map[model.Slot][]byte, error) {
	sh := s.shards[shard]
	if err := sh.checkRange(shard, local); err != nil {
		return nil, err
	}
	values := make(map[model.Slot][]byte)
	for slot, t := range sh.slots {
		if v, ok := t.values[uint32(local)]; ok {
			values[slot] = v
		}
	}
	return values, nil
}

// DocData implements Source.
func (s *MemorySource) DocData(shard int, local model.DocID) ([]byte, error) {
	sh := s.shards[shard]
	if err := sh.checkRange(shard, local); err != nil {
		return nil, err
	}
	return sh.data[uint32(local)], nil
}

func (sh *memoryShard) checkRange(shard int, local model.DocID) error {
	if local == 0 || local > sh.docLimit {
		return &ErrDocidOutOfRange{Shard: shard, DocID: local, Limit: sh.docLimit}
	}
	return nil
}

// memValueList cursors over a slotTable via the roaring iterator.
type memValueList struct {
	table *slotTable
	it    roaring.IntPeekable
	cur   uint32
	valid bool
}

// SkipTo implements ValueList.
func (l *memValueList) SkipTo(local model.DocID) bool {
	if l.valid && l.cur >= uint32(local) {
		return true
	}
	l.it.AdvanceIfNeeded(uint32(local))
	if !l.it.HasNext() {
		l.valid = false
		return false
	}
	l.cur = l.it.Next()
	l.valid = true
	return true
}

// DocID implements ValueList.
func (l *memValueList) DocID() model.DocID { return model.DocID(l.cur) }

// Value implements ValueList.
func (l *memValueList) Value() []byte { return l.table.values[l.cur] }

func (l *memValueList) String() string {
	return fmt.Sprintf("memValueList(cur=%d valid=%t)", l.cur, l.valid)
}
