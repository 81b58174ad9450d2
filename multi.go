package roaring

import (
	"math"

	"github.com/TomTonic/roaring/internal/block"
)

// MultiBitmap is an ordered collection of bitmaps packed into a single
// buffer; every entry aliases that buffer without copying. A slot may be null (two
// equal adjacent offsets in the on-disk offset table), representing the
// deliberate absence of a bitmap at that ordinal rather than an empty
// one.
type MultiBitmap struct {
	buf     []byte
	entries []*ImmutableBitmap // nil entry == null slot
}

func newMultiBitmap(entries []*ImmutableBitmap, buf []byte) *MultiBitmap {
	return &MultiBitmap{entries: entries, buf: buf}
}

// Len returns the number of slots, including null ones.
func (m *MultiBitmap) Len() int { return len(m.entries) }

// resolveIndex supports Python-style negative indexing from the end.
func (m *MultiBitmap) resolveIndex(i int) (int, error) {
	n := len(m.entries)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, valueInvalidErrorf("index %d out of range for %d slots", i, n)
	}
	return i, nil
}

// IsNull reports whether slot i is the null placeholder.
func (m *MultiBitmap) IsNull(i int) (bool, error) {
	idx, err := m.resolveIndex(i)
	if err != nil {
		return false, err
	}
	return m.entries[idx] == nil, nil
}

// At returns the bitmap at slot i, or ErrValueInvalid if the slot is
// null.
func (m *MultiBitmap) At(i int) (*ImmutableBitmap, error) {
	idx, err := m.resolveIndex(i)
	if err != nil {
		return nil, err
	}
	b := m.entries[idx]
	if b == nil {
		return nil, valueInvalidErrorf("slot %d is null", i)
	}
	return b, nil
}

// resolveAllOrNull resolves indices to their bitmaps. It reports
// isNull=true (with a nil slice and nil error) if any referenced slot is
// null, distinct from an index-out-of-range error.
func (m *MultiBitmap) resolveAllOrNull(indices []int) (bitmaps []*ImmutableBitmap, isNull bool, err error) {
	out := make([]*ImmutableBitmap, len(indices))
	for n, i := range indices {
		idx, err := m.resolveIndex(i)
		if err != nil {
			return nil, false, err
		}
		b := m.entries[idx]
		if b == nil {
			return nil, true, nil
		}
		out[n] = b
	}
	return out, false, nil
}

// clampRange restricts b to [start, stop), treating a nil bound as
// unrestricted on that side.
func clampRange(b *Bitmap, start, stop *uint32) *Bitmap {
	lo := uint32(0)
	if start != nil {
		lo = *start
	}
	if stop != nil {
		if *stop == 0 {
			return &Bitmap{}
		}
		return b.Clamp(lo, *stop-1)
	}
	return b.Clamp(lo, math.MaxUint32)
}

// Intersection returns the intersection of the bitmaps at the given
// slots, restricted to [start, stop) when either bound is non-nil. It
// returns (nil, nil) if any referenced slot is null or the result is
// empty.
func (m *MultiBitmap) Intersection(indices []int, start, stop *uint32) (*Bitmap, error) {
	bitmaps, isNull, err := m.resolveAllOrNull(indices)
	if err != nil || isNull {
		return nil, err
	}
	if len(bitmaps) == 0 {
		return nil, nil
	}
	acc := bitmaps[0].ToBitmap()
	for _, b := range bitmaps[1:] {
		if acc.Len() == 0 {
			break
		}
		acc = zipBlocks(&acc.core, &b.core, block.And)
	}
	if start != nil || stop != nil {
		acc = clampRange(acc, start, stop)
	}
	if acc.Len() == 0 {
		return nil, nil
	}
	return acc, nil
}

// Union returns the union of the bitmaps at the given slots, restricted
// to [start, stop) when either bound is non-nil. It returns (nil, nil)
// if any referenced slot is null or the result is empty.
func (m *MultiBitmap) Union(indices []int, start, stop *uint32) (*Bitmap, error) {
	bitmaps, isNull, err := m.resolveAllOrNull(indices)
	if err != nil || isNull {
		return nil, err
	}
	if len(bitmaps) == 0 {
		return nil, nil
	}
	acc := bitmaps[0].ToBitmap()
	for _, b := range bitmaps[1:] {
		acc = unionBlocks(&acc.core, &b.core)
	}
	if start != nil || stop != nil {
		acc = clampRange(acc, start, stop)
	}
	if acc.Len() == 0 {
		return nil, nil
	}
	return acc, nil
}

// JaccardDistances returns, for each i, the Jaccard distance between
// slot a[i] and slot b[i]. a and b must have equal length.
func (m *MultiBitmap) JaccardDistances(a, b []int) ([]float64, error) {
	if len(a) != len(b) {
		return nil, valueInvalidErrorf("index slices have different lengths (%d vs %d)", len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		x, err := m.At(a[i])
		if err != nil {
			return nil, err
		}
		y, err := m.At(b[i])
		if err != nil {
			return nil, err
		}
		out[i] = JaccardDistance(x, y)
	}
	return out, nil
}

// AndOrLenPairwise returns, for each i, |slot a[i] ∩ slot b[i]| and
// |slot a[i] ∪ slot b[i]|. a and b must have equal length.
func (m *MultiBitmap) AndOrLenPairwise(a, b []int) (andLen, orLen []int, err error) {
	if len(a) != len(b) {
		return nil, nil, valueInvalidErrorf("index slices have different lengths (%d vs %d)", len(a), len(b))
	}
	andLen = make([]int, len(a))
	orLen = make([]int, len(a))
	for i := range a {
		x, e := m.At(a[i])
		if e != nil {
			return nil, nil, e
		}
		y, e := m.At(b[i])
		if e != nil {
			return nil, nil, e
		}
		andLen[i] = andLenCore(&x.core, &y.core)
		orLen[i] = orLenCore(&x.core, &y.core)
	}
	return andLen, orLen, nil
}
