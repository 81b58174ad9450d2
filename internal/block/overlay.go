package block

import "unsafe"

// Overlay constructs a Block whose payload aliases raw directly instead
// of copying it — the zero-copy read path the root package's
// ImmutableBitmap uses over a borrowed byte buffer. raw must be at least
// as long as the variant needs
// (card*2 bytes for Array, (MaxValues-card)*2 for Inverted, 8192 bytes
// for Dense) and, for Dense, 8-byte aligned — the serializer guarantees
// both by construction.
//
// The returned Block must never be mutated (Add/Discard/*InPlace): doing
// so would write through to the borrowed buffer. Overlay blocks are only
// ever consumed by read-only accessors or as an operand to the
// functional (non-in-place) binary operators, which always allocate a
// fresh result.
func Overlay(variant Variant, card int, raw []byte) *Block {
	b := &Block{variant: variant, card: card}
	switch variant {
	case Array:
		b.arr = bytesToUint16(raw, card)
	case Inverted:
		b.arr = bytesToUint16(raw, MaxValues-card)
	case Dense:
		b.dense = bytesToUint64(raw, DenseWords)
	}
	return b
}

func bytesToUint16(raw []byte, n int) []uint16 {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&raw[0])), n)
}

func bytesToUint64(raw []byte, n int) []uint64 {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&raw[0])), n)
}

// ArrayValues returns the Block's present-value array. Valid only when
// Variant() == Array. The returned slice must be treated as read-only
// when the Block is an Overlay.
func (b *Block) ArrayValues() []uint16 { return b.arr }

// AbsentValues returns the Block's absent-value array. Valid only when
// Variant() == Inverted. The returned slice must be treated as read-only
// when the Block is an Overlay.
func (b *Block) AbsentValues() []uint16 { return b.arr }

// DenseWordsView returns the Block's 1024-word bitset. Valid only when
// Variant() == Dense. The returned slice must be treated as read-only
// when the Block is an Overlay.
func (b *Block) DenseWordsView() []uint64 { return b.dense }
