package block

import (
	"encoding/binary"
	"math/rand"
	"testing"
)

// encodeRaw lays out a block's payload bytes exactly the way the root
// package's serializer would, so Overlay can be tested without depending
// on that package.
func encodeRaw(b *Block) []byte {
	switch b.Variant() {
	case Array:
		out := make([]byte, len(b.arr)*2)
		for i, v := range b.ArrayValues() {
			binary.LittleEndian.PutUint16(out[i*2:], v)
		}
		return out
	case Inverted:
		out := make([]byte, len(b.arr)*2)
		for i, v := range b.AbsentValues() {
			binary.LittleEndian.PutUint16(out[i*2:], v)
		}
		return out
	default:
		out := make([]byte, DenseWords*8)
		for i, w := range b.DenseWordsView() {
			binary.LittleEndian.PutUint64(out[i*8:], w)
		}
		return out
	}
}

func TestOverlayMatchesOwnedBlock(t *testing.T) {
	rng := rand.New(rand.NewSource(321))
	for _, v := range []Variant{Array, Dense, Inverted} {
		owned, sorted := blockWithVariant(rng, v)
		raw := encodeRaw(owned)
		overlay := Overlay(v, owned.Cardinality(), raw)
		if !sliceEq(asSlice(overlay), sorted) {
			t.Fatalf("%s: overlay contents diverge from owned block", v)
		}
		if overlay.Rank(sorted[len(sorted)/2]) != owned.Rank(sorted[len(sorted)/2]) {
			t.Fatalf("%s: overlay rank diverges", v)
		}
	}
}

func TestOverlayAsOperandToFunctionalOps(t *testing.T) {
	rng := rand.New(rand.NewSource(654))
	owned, sorted := blockWithVariant(rng, Array)
	other, otherSorted := blockWithVariant(rng, Dense)
	overlay := Overlay(Array, owned.Cardinality(), encodeRaw(owned))

	got := And(overlay, other)
	want := naiveIntersect(sorted, otherSorted)
	if !sliceEq(asSlice(got), want) {
		t.Fatalf("And with overlay operand mismatch")
	}
}
