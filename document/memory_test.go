package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rankgo/model"
)

func TestMemorySourceAddDocument(t *testing.T) {
	src := NewMemorySource(2)

	// Docs 1 and 3 land in shard 0 (locals 1, 2), doc 2 in shard 1.
	src.AddDocument(1, map[model.Slot][]byte{0: []byte("a")}, []byte("data-1"))
	src.AddDocument(2, map[model.Slot][]byte{0: []byte("b")}, nil)
	src.AddDocument(3, map[model.Slot][]byte{1: []byte("c")}, nil)

	assert.Equal(t, 2, src.NumShards())
	assert.Equal(t, model.DocID(2), src.DocLimit(0))
	assert.Equal(t, model.DocID(1), src.DocLimit(1))

	values, err := src.DocValues(0, 1)
	require.NoError(t, err)
	assert.Equal(t, map[model.Slot][]byte{0: []byte("a")}, values)

	values, err = src.DocValues(0, 2)
	require.NoError(t, err)
	assert.Equal(t, map[model.Slot][]byte{1: []byte("c")}, values)

	data, err := src.DocData(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("data-1"), data)

	data, err = src.DocData(1, 1)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemorySourceRangeFault(t *testing.T) {
	src := NewMemorySource(1)
	src.AddDocument(1, nil, nil)

	_, err := src.DocValues(0, 2)
	var oor *ErrDocidOutOfRange
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 0, oor.Shard)
	assert.Equal(t, model.DocID(2), oor.DocID)
	assert.Equal(t, model.DocID(1), oor.Limit)

	_, err = src.DocData(0, 99)
	assert.ErrorAs(t, err, &oor)
}

func TestMemorySourceValueList(t *testing.T) {
	src := NewMemorySource(1)
	src.AddDocument(1, map[model.Slot][]byte{7: []byte("one")}, nil)
	src.AddDocument(3, map[model.Slot][]byte{7: []byte("three")}, nil)
	src.AddDocument(5, map[model.Slot][]byte{7: []byte("five")}, nil)

	vl, err := src.OpenValueList(0, 7)
	require.NoError(t, err)
	require.NotNil(t, vl)

	// SkipTo lands on the exact docid when present.
	require.True(t, vl.SkipTo(1))
	assert.Equal(t, model.DocID(1), vl.DocID())
	assert.Equal(t, []byte("one"), vl.Value())

	// SkipTo a gap lands on the next docid holding a value.
	require.True(t, vl.SkipTo(2))
	assert.Equal(t, model.DocID(3), vl.DocID())
	assert.Equal(t, []byte("three"), vl.Value())

	// The cursor never moves backwards.
	require.True(t, vl.SkipTo(1))
	assert.Equal(t, model.DocID(3), vl.DocID())

	require.True(t, vl.SkipTo(5))
	assert.Equal(t, []byte("five"), vl.Value())

	// Past the end.
	assert.False(t, vl.SkipTo(6))
}

func TestMemorySourceEmptySlot(t *testing.T) {
	src := NewMemorySource(1)
	src.AddDocument(1, map[model.Slot][]byte{0: []byte("x")}, nil)

	vl, err := src.OpenValueList(0, 42)
	require.NoError(t, err)
	assert.Nil(t, vl)
}

func TestMemorySourceCopiesValues(t *testing.T) {
	src := NewMemorySource(1)
	buf := []byte("mutable")
	src.AddDocument(1, map[model.Slot][]byte{0: buf}, nil)
	buf[0] = 'X'

	values, err := src.DocValues(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), values[0])
}
