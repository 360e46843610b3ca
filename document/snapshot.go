package document

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/rankgo/codec"
	"github.com/hupe1980/rankgo/model"
)

// ErrMalformedSnapshot is returned when snapshot bytes cannot be parsed.
//
// The underlying cause (if any) can be accessed via errors.Unwrap on the
// returned error.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot format:
//
//	magic "RGVS" | version uint8 | compression uint8
//	codec name: len uint8 + bytes
//	numShards uint32
//	per shard: blockLen uint32 + block (compressed codec-encoded shardSnapshot)
//
// All integers little-endian. The header records the codec by name so the
// file is self-describing; opening with a different default codec still works.
var snapshotMagic = [4]byte{'R', 'G', 'V', 'S'}

const snapshotVersion = 1

type shardSnapshot struct {
	DocLimit uint32                       `json:"doc_limit"`
	Data     map[uint32][]byte            `json:"data,omitempty"`
	Slots    map[uint32]map[uint32][]byte `json:"slots,omitempty"`
}

type saveOptions struct {
	codec       codec.Codec
	compression Compression
}

// SaveOption configures MemorySource.Save.
type SaveOption func(*saveOptions)

// WithSaveCodec selects the codec used to encode shard sections.
// If nil is passed, codec.Default is used.
func WithSaveCodec(c codec.Codec) SaveOption {
	return func(o *saveOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithSaveCompression selects the block compression for shard sections.
func WithSaveCompression(c Compression) SaveOption {
	return func(o *saveOptions) {
		o.compression = c
	}
}

// Save writes the source to w in the snapshot format. Shards are encoded
// concurrently and written in shard order.
func (s *MemorySource) Save(w io.Writer, optFns ...SaveOption) error {
	o := saveOptions{codec: codec.Default, compression: CompressionLZ4}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	blocks := make([][]byte, len(s.shards))
	var g errgroup.Group
	for i, sh := range s.shards {
		i, sh := i, sh
		g.Go(func() error {
			snap := shardSnapshot{
				DocLimit: uint32(sh.docLimit),
				Data:     sh.data,
				Slots:    make(map[uint32]map[uint32][]byte, len(sh.slots)),
			}
			for slot, t := range sh.slots {
				snap.Slots[uint32(slot)] = t.values
			}
			encoded, err := o.codec.Marshal(snap)
			if err != nil {
				return fmt.Errorf("encode shard %d: %w", i, err)
			}
			block, err := compressBlock(encoded, o.compression)
			if err != nil {
				return fmt.Errorf("compress shard %d: %w", i, err)
			}
			blocks[i] = block
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	name := o.codec.Name()
	header := make([]byte, 0, 4+2+1+len(name)+4)
	header = append(header, snapshotMagic[:]...)
	header = append(header, snapshotVersion, byte(o.compression))
	header = append(header, byte(len(name)))
	header = append(header, name...)
	header = binary.LittleEndian.AppendUint32(header, uint32(len(blocks)))
	if _, err := w.Write(header); err != nil {
		return err
	}

	for _, block := range blocks {
		if _, err := w.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(block)))); err != nil {
			return err
		}
		if _, err := w.Write(block); err != nil {
			return err
		}
	}
	return nil
}

// LoadMemorySource reads a snapshot produced by Save and rebuilds the source,
// including the per-slot presence bitmaps.
func LoadMemorySource(r io.Reader) (*MemorySource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 4+2+1+4 || [4]byte(data[:4]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrMalformedSnapshot)
	}
	if data[4] != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedSnapshot, data[4])
	}
	compression := Compression(data[5])
	nameLen := int(data[6])
	rest := data[7:]
	if len(rest) < nameLen+4 {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedSnapshot)
	}
	c, ok := codec.ByName(string(rest[:nameLen]))
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrMalformedSnapshot, rest[:nameLen])
	}
	rest = rest[nameLen:]
	numShards := int(binary.LittleEndian.Uint32(rest))
	rest = rest[4:]
	if numShards < 1 {
		return nil, fmt.Errorf("%w: shard count %d", ErrMalformedSnapshot, numShards)
	}

	blocks := make([][]byte, 0, numShards)
	for i := 0; i < numShards; i++ {
		if len(rest) < 4 {
			return nil, fmt.Errorf("%w: truncated shard %d", ErrMalformedSnapshot, i)
		}
		blockLen := int(binary.LittleEndian.Uint32(rest))
		rest = rest[4:]
		if len(rest) < blockLen {
			return nil, fmt.Errorf("%w: truncated shard %d", ErrMalformedSnapshot, i)
		}
		blocks = append(blocks, rest[:blockLen])
		rest = rest[blockLen:]
	}

	src := NewMemorySource(numShards)
	var g errgroup.Group
	for i, block := range blocks {
		i, block := i, block
		g.Go(func() error {
			raw, err := decompressBlock(block, compression)
			if err != nil {
				return fmt.Errorf("%w: shard %d: %w", ErrMalformedSnapshot, i, err)
			}
			var snap shardSnapshot
			if err := c.Unmarshal(raw, &snap); err != nil {
				return fmt.Errorf("%w: decode shard %d: %w", ErrMalformedSnapshot, i, err)
			}
			sh := src.shards[i]
			sh.docLimit = model.DocID(snap.DocLimit)
			if snap.Data != nil {
				sh.data = snap.Data
			}
			for slot, values := range snap.Slots {
				t := &slotTable{present: roaring.New(), values: values}
				for local := range values {
					t.present.Add(local)
				}
				sh.slots[model.Slot(slot)] = t
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return src, nil
}
