package roaring

import (
	"encoding/binary"

	"github.com/TomTonic/roaring/internal/block"
)

const (
	blockMetaSize   = 4  // cardinality_minus_one uint16, variant uint8, reserved uint8
	payloadAlign    = 32 // dense payloads start on a 32-byte boundary, for mmap-cast compatibility
	denseWordsBytes = block.DenseWords * 8
)

// Serialize encodes b into a little-endian, block-table layout: a
// uint32 block count, the ascending key array, one
// {cardinality_minus_one, variant, reserved} record per
// block, a uint32 payload offset per block (relative to the start of the
// payload region), and finally the payload region itself, each Dense
// block's payload padded out to a 32-byte boundary within that region so
// it can be reinterpreted in place as []uint64 without a copy.
func Serialize(b *Bitmap) ([]byte, error) {
	numBlocks := len(b.keys)
	headerLen := 4 + numBlocks*2 + numBlocks*blockMetaSize + numBlocks*4

	payloadLens := make([]int, numBlocks)
	for i, blk := range b.blocks {
		payloadLens[i] = payloadByteLen(blk)
	}

	offsets := make([]uint32, numBlocks)
	cur := 0 // relative to the start of the payload region (headerLen)
	for i, blk := range b.blocks {
		if blk.Variant() == block.Dense {
			// Pad so the payload's position in the final buffer (not just
			// within the payload region) lands on a payloadAlign boundary,
			// since that absolute position is what gets cast to []uint64.
			abs := headerLen + cur
			if pad := (payloadAlign - abs%payloadAlign) % payloadAlign; pad != 0 {
				cur += pad
			}
		}
		offsets[i] = uint32(cur)
		cur += payloadLens[i]
	}
	total := headerLen + cur

	out := block.AlignedBytes(total)
	binary.LittleEndian.PutUint32(out[0:4], uint32(numBlocks))
	pos := 4
	for _, k := range b.keys {
		binary.LittleEndian.PutUint16(out[pos:pos+2], k)
		pos += 2
	}
	for _, blk := range b.blocks {
		card := blk.Cardinality()
		binary.LittleEndian.PutUint16(out[pos:pos+2], uint16(card-1))
		out[pos+2] = byte(blk.Variant())
		out[pos+3] = 0
		pos += blockMetaSize
	}
	for i := range b.blocks {
		binary.LittleEndian.PutUint32(out[pos:pos+4], offsets[i])
		pos += 4
	}
	for i, blk := range b.blocks {
		writePayload(out[headerLen+int(offsets[i]):], blk)
	}
	return out, nil
}

// payloadByteLen returns the number of payload bytes a block occupies
// on disk, given its variant and cardinality.
func payloadByteLen(blk *block.Block) int {
	switch blk.Variant() {
	case block.Array:
		return blk.Cardinality() * 2
	case block.Inverted:
		return (block.MaxValues - blk.Cardinality()) * 2
	default:
		return denseWordsBytes
	}
}

func writePayload(dst []byte, blk *block.Block) {
	switch blk.Variant() {
	case block.Array:
		for i, v := range blk.ArrayValues() {
			binary.LittleEndian.PutUint16(dst[i*2:], v)
		}
	case block.Inverted:
		for i, v := range blk.AbsentValues() {
			binary.LittleEndian.PutUint16(dst[i*2:], v)
		}
	case block.Dense:
		for i, w := range blk.DenseWordsView() {
			binary.LittleEndian.PutUint64(dst[i*8:], w)
		}
	}
}

// Deserialize parses a buffer produced by Serialize into an
// ImmutableBitmap whose blocks alias buf directly (no payload copy).
// buf must remain alive and unmodified for the lifetime of the returned
// bitmap.
func Deserialize(buf []byte) (*ImmutableBitmap, error) {
	if len(buf) < 4 {
		return nil, corruptFormatErrorf("buffer too short for block count")
	}
	numBlocks := int(binary.LittleEndian.Uint32(buf[0:4]))
	headerLen := 4 + numBlocks*2 + numBlocks*blockMetaSize + numBlocks*4
	if numBlocks < 0 || headerLen > len(buf) {
		return nil, corruptFormatErrorf("buffer too short for %d blocks", numBlocks)
	}

	pos := 4
	keys := make([]uint16, numBlocks)
	for i := range keys {
		keys[i] = binary.LittleEndian.Uint16(buf[pos : pos+2])
		pos += 2
	}

	type meta struct {
		card    int
		variant block.Variant
	}
	metas := make([]meta, numBlocks)
	for i := range metas {
		cardMinusOne := binary.LittleEndian.Uint16(buf[pos : pos+2])
		variant := block.Variant(buf[pos+2])
		metas[i] = meta{card: int(cardMinusOne) + 1, variant: variant}
		pos += blockMetaSize
	}

	offsets := make([]uint32, numBlocks)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(buf[pos : pos+4])
		pos += 4
	}

	blocks := make([]*block.Block, numBlocks)
	for i := range blocks {
		m := metas[i]
		need := payloadByteLenFor(m.variant, m.card)
		abs := headerLen + int(offsets[i])
		if abs+need > len(buf) {
			return nil, corruptFormatErrorf("block %d payload exceeds buffer bounds", i)
		}
		blocks[i] = block.Overlay(m.variant, m.card, buf[abs:])
	}

	for i := 1; i < numBlocks; i++ {
		if keys[i] <= keys[i-1] {
			return nil, corruptFormatErrorf("keys not strictly ascending at index %d", i)
		}
	}

	return newImmutableBitmap(keys, blocks, buf), nil
}

func payloadByteLenFor(variant block.Variant, card int) int {
	switch variant {
	case block.Array:
		return card * 2
	case block.Inverted:
		return (block.MaxValues - card) * 2
	default:
		return denseWordsBytes
	}
}

// SerializeMulti encodes slots into the packed multi-bitmap file format:
// a uint64 count, a uint64 offset table with one trailing end sentinel,
// then each non-nil bitmap's Serialize output back to back. A nil entry
// in slots becomes a null slot, encoded as two equal adjacent offsets.
func SerializeMulti(slots []*Bitmap) ([]byte, error) {
	n := len(slots)
	headerLen := 8 + 8*(n+1)
	offsets := make([]uint64, n+1)
	bodies := make([][]byte, n)
	cur := headerLen
	for i, bm := range slots {
		if bm == nil {
			offsets[i] = uint64(cur)
			continue
		}
		// Pad so this body starts on a payloadAlign boundary: the body's
		// own Dense payload offsets were computed relative to its own
		// start, so that start must itself land on a payloadAlign
		// boundary within the outer buffer to stay valid once embedded.
		if pad := (payloadAlign - cur%payloadAlign) % payloadAlign; pad != 0 {
			cur += pad
		}
		offsets[i] = uint64(cur)
		data, err := Serialize(bm)
		if err != nil {
			return nil, err
		}
		bodies[i] = data
		cur += len(data)
	}
	offsets[n] = uint64(cur)

	out := block.AlignedBytes(cur)
	binary.LittleEndian.PutUint64(out[0:8], uint64(n))
	pos := 8
	for _, o := range offsets {
		binary.LittleEndian.PutUint64(out[pos:pos+8], o)
		pos += 8
	}
	for i, body := range bodies {
		copy(out[offsets[i]:], body)
	}
	return out, nil
}

// DeserializeMulti parses a buffer produced by SerializeMulti into a
// MultiBitmap whose entries alias buf directly.
func DeserializeMulti(buf []byte) (*MultiBitmap, error) {
	if len(buf) < 8 {
		return nil, corruptFormatErrorf("buffer too short for bitmap count")
	}
	n := int(binary.LittleEndian.Uint64(buf[0:8]))
	headerLen := 8 + 8*(n+1)
	if n < 0 || headerLen > len(buf) {
		return nil, corruptFormatErrorf("buffer too short for %d bitmaps", n)
	}
	offsets := make([]uint64, n+1)
	pos := 8
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint64(buf[pos : pos+8])
		pos += 8
	}
	for i := 0; i <= n; i++ {
		if offsets[i] > uint64(len(buf)) {
			return nil, corruptFormatErrorf("offset %d exceeds buffer length", i)
		}
		if i > 0 && offsets[i] < offsets[i-1] {
			return nil, corruptFormatErrorf("offsets not monotonic at index %d", i)
		}
	}

	entries := make([]*ImmutableBitmap, n)
	for i := 0; i < n; i++ {
		if offsets[i] == offsets[i+1] {
			continue // null slot
		}
		bm, err := Deserialize(buf[offsets[i]:offsets[i+1]])
		if err != nil {
			return nil, err
		}
		entries[i] = bm
	}
	return newMultiBitmap(entries, buf), nil
}
