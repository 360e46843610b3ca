package document

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rankgo/codec"
	"github.com/hupe1980/rankgo/model"
)

func snapshotFixture() *MemorySource {
	src := NewMemorySource(2)
	src.AddDocument(1, map[model.Slot][]byte{0: []byte("alpha"), 1: []byte("x")}, []byte("doc-one"))
	src.AddDocument(2, map[model.Slot][]byte{0: []byte("beta")}, nil)
	src.AddDocument(3, map[model.Slot][]byte{1: []byte("y")}, []byte("doc-three"))
	src.AddDocument(4, nil, nil)
	return src
}

func assertSourcesEqual(t *testing.T, want, got *MemorySource) {
	t.Helper()
	require.Equal(t, want.NumShards(), got.NumShards())
	for shard := 0; shard < want.NumShards(); shard++ {
		require.Equal(t, want.DocLimit(shard), got.DocLimit(shard), "shard %d", shard)
		for local := model.DocID(1); local <= want.DocLimit(shard); local++ {
			wantValues, err := want.DocValues(shard, local)
			require.NoError(t, err)
			gotValues, err := got.DocValues(shard, local)
			require.NoError(t, err)
			assert.Equal(t, wantValues, gotValues, "shard %d doc %d", shard, local)

			wantData, err := want.DocData(shard, local)
			require.NoError(t, err)
			gotData, err := got.DocData(shard, local)
			require.NoError(t, err)
			assert.Equal(t, wantData, gotData, "shard %d doc %d", shard, local)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	compressions := map[string]Compression{
		"none": CompressionNone,
		"lz4":  CompressionLZ4,
		"zstd": CompressionZSTD,
	}
	codecs := map[string]codec.Codec{
		"json":    codec.JSON{},
		"go-json": codec.GoJSON{},
	}
	src := snapshotFixture()
	for cname, comp := range compressions {
		for ccodec, c := range codecs {
			t.Run(fmt.Sprintf("%s/%s", cname, ccodec), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, src.Save(&buf,
					WithSaveCompression(comp),
					WithSaveCodec(c),
				))

				loaded, err := LoadMemorySource(&buf)
				require.NoError(t, err)
				assertSourcesEqual(t, src, loaded)
			})
		}
	}
}

func TestSnapshotRebuildsValueLists(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, snapshotFixture().Save(&buf))

	loaded, err := LoadMemorySource(&buf)
	require.NoError(t, err)

	// Docs 1 and 3 live in shard 0 (locals 1 and 2); both hold slot 1.
	vl, err := loaded.OpenValueList(0, 1)
	require.NoError(t, err)
	require.NotNil(t, vl)
	require.True(t, vl.SkipTo(1))
	assert.Equal(t, []byte("x"), vl.Value())
	require.True(t, vl.SkipTo(2))
	assert.Equal(t, []byte("y"), vl.Value())
	assert.False(t, vl.SkipTo(3))
}

func TestSnapshotMalformed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, snapshotFixture().Save(&buf))
	data := buf.Bytes()

	t.Run("bad magic", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		corrupt[0] = 'X'
		_, err := LoadMemorySource(bytes.NewReader(corrupt))
		assert.ErrorIs(t, err, ErrMalformedSnapshot)
	})

	t.Run("bad version", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		corrupt[4] = 99
		_, err := LoadMemorySource(bytes.NewReader(corrupt))
		assert.ErrorIs(t, err, ErrMalformedSnapshot)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := LoadMemorySource(bytes.NewReader(data[:len(data)-5]))
		assert.ErrorIs(t, err, ErrMalformedSnapshot)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadMemorySource(bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrMalformedSnapshot)
	})
}
