// Package roaring implements a roaring bitmap: a compressed, sorted set
// of uint32 values stored as a sequence of 2^16-wide blocks, each held in
// whichever of three encodings (sparse array, dense bitset, or sparse
// array of absent values) is smallest for its cardinality.
package roaring

import (
	"sort"

	"github.com/TomTonic/roaring/internal/block"
)

// Bitmap is a mutable, owned roaring bitmap. It is not safe for
// concurrent use: callers needing concurrent access must provide their
// own synchronization; this type deliberately carries no internal lock.
type Bitmap struct {
	core
}

// New returns a Bitmap containing the given values, which may be
// supplied in any order and may contain duplicates.
func New(values ...uint32) (*Bitmap, error) {
	b := &Bitmap{}
	for _, v := range values {
		if _, err := b.Add(v); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// NewRange returns a Bitmap containing every value in [start, stop) that
// is a multiple of stride steps from start, i.e. start, start+stride,
// start+2*stride, .... stride must be positive. start and stop are
// uint64 so that stop == 2^32 (the full domain) can be named exactly.
func NewRange(start, stop uint64, stride uint32) (*Bitmap, error) {
	if stride == 0 {
		return nil, valueInvalidErrorf("range stride must be positive")
	}
	if start > 1<<32 || stop > 1<<32 {
		return nil, outOfRangeErrorf("range [%d, %d) exceeds the uint32 domain", start, stop)
	}
	if start >= stop {
		return &Bitmap{}, nil
	}

	b := &Bitmap{}
	startKey := uint16(start >> 16)
	lastKey := uint16((stop - 1) >> 16)
	for key := startKey; ; key++ {
		blockStart := uint64(key) << 16
		blockStop := blockStart + block.MaxValues
		lo := uint64(0)
		if start > blockStart {
			lo = start - blockStart
		}
		hi := block.MaxValues
		if stop < blockStop {
			hi = int(stop - blockStart)
		}
		// Align lo to the stride's phase within this block.
		if rem := (blockStart + lo - start) % uint64(stride); rem != 0 {
			lo += uint64(stride) - rem
		}
		if lo < uint64(hi) {
			blk := block.FromRange(uint32(lo), uint32(hi), stride)
			if !blk.IsEmpty() {
				b.keys = append(b.keys, key)
				b.blocks = append(b.blocks, blk)
			}
		}
		if key == lastKey {
			break
		}
	}
	return b, nil
}

// Add inserts v and reports whether it was newly added.
func (b *Bitmap) Add(v uint32) (bool, error) {
	key := uint16(v >> 16)
	i, found := b.keyIndex(key)
	if found {
		return b.blocks[i].Add(uint16(v)), nil
	}
	blk := block.New()
	blk.Add(uint16(v))
	b.keys = append(b.keys, 0)
	b.blocks = append(b.blocks, nil)
	copy(b.keys[i+1:], b.keys[i:])
	copy(b.blocks[i+1:], b.blocks[i:])
	b.keys[i] = key
	b.blocks[i] = blk
	return true, nil
}

// Discard removes v and reports whether it was present.
func (b *Bitmap) Discard(v uint32) (bool, error) {
	key := uint16(v >> 16)
	i, found := b.keyIndex(key)
	if !found {
		return false, nil
	}
	removed := b.blocks[i].Discard(uint16(v))
	if removed && b.blocks[i].IsEmpty() {
		b.keys = append(b.keys[:i], b.keys[i+1:]...)
		b.blocks = append(b.blocks[:i], b.blocks[i+1:]...)
	}
	return removed, nil
}

// Pop removes and returns the largest member, taken from the last
// block.
func (b *Bitmap) Pop() (uint32, error) {
	n := len(b.keys)
	if n == 0 {
		return 0, valueInvalidErrorf("pop on empty bitmap")
	}
	last := b.blocks[n-1]
	v := uint32(b.keys[n-1])<<16 | uint32(last.Max())
	last.Discard(last.Max())
	if last.IsEmpty() {
		b.keys = b.keys[:n-1]
		b.blocks = b.blocks[:n-1]
	}
	return v, nil
}

// Clear removes every member.
func (b *Bitmap) Clear() {
	b.keys = nil
	b.blocks = nil
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() *Bitmap {
	out := &Bitmap{core: core{
		keys:   append([]uint16(nil), b.keys...),
		blocks: make([]*block.Block, len(b.blocks)),
	}}
	for i, blk := range b.blocks {
		out.blocks[i] = blk.Clone()
	}
	return out
}

// Check panics if the bitmap's internal invariants have been violated.
// It exists for tests and debugging, not as part of the stable API.
func (b *Bitmap) Check() { b.check() }

// And returns a new Bitmap holding the intersection of b and other.
// other may be any read-only or mutable bitmap.
func (b *Bitmap) And(other bitmapLike) *Bitmap { return zipBlocks(&b.core, other.coreRef(), block.And) }

// Or returns a new Bitmap holding the union of b and other.
func (b *Bitmap) Or(other bitmapLike) *Bitmap { return unionBlocks(&b.core, other.coreRef()) }

// Xor returns a new Bitmap holding the symmetric difference of b and
// other.
func (b *Bitmap) Xor(other bitmapLike) *Bitmap { return xorBlocks(&b.core, other.coreRef()) }

// Sub returns a new Bitmap holding b minus other.
func (b *Bitmap) Sub(other bitmapLike) *Bitmap { return subBlocks(&b.core, other.coreRef()) }

// AndInPlace replaces b's contents with b ∩ other.
func (b *Bitmap) AndInPlace(other bitmapLike) {
	b.core = zipBlocks(&b.core, other.coreRef(), block.And).core
}

// OrInPlace replaces b's contents with b ∪ other.
func (b *Bitmap) OrInPlace(other bitmapLike) { b.core = unionBlocks(&b.core, other.coreRef()).core }

// XorInPlace replaces b's contents with b △ other.
func (b *Bitmap) XorInPlace(other bitmapLike) { b.core = xorBlocks(&b.core, other.coreRef()).core }

// SubInPlace replaces b's contents with b \ other.
func (b *Bitmap) SubInPlace(other bitmapLike) { b.core = subBlocks(&b.core, other.coreRef()).core }

// coreRef implements bitmapLike.
func (b *Bitmap) coreRef() *core { return &b.core }

// Equal reports whether b and other hold exactly the same members.
func (b *Bitmap) Equal(other bitmapLike) bool { return b.core.equal(other.coreRef()) }

// Subset reports whether every member of b is also a member of other.
func (b *Bitmap) Subset(other bitmapLike) bool { return b.core.subset(other.coreRef()) }

// Disjoint reports whether b and other share no members.
func (b *Bitmap) Disjoint(other bitmapLike) bool { return b.core.disjoint(other.coreRef()) }

// bitmapLike is satisfied by both Bitmap and ImmutableBitmap, letting
// set algebra and comparisons mix owned and borrowed operands freely.
type bitmapLike interface {
	coreRef() *core
}

// Clamp returns a new Bitmap holding every member of b in [lo, hi].
func (b *Bitmap) Clamp(lo, hi uint32) *Bitmap {
	out := &Bitmap{}
	if lo > hi {
		return out
	}
	loKey, hiKey := uint16(lo>>16), uint16(hi>>16)
	start, _ := b.keyIndex(loKey)
	for i := start; i < len(b.keys) && b.keys[i] <= hiKey; i++ {
		key := b.keys[i]
		blk := b.blocks[i]
		loLo, hiLo := uint16(0), uint16(0xFFFF)
		if key == loKey {
			loLo = uint16(lo)
		}
		if key == hiKey {
			hiLo = uint16(hi)
		}
		if loLo == 0 && hiLo == 0xFFFF {
			out.keys = append(out.keys, key)
			out.blocks = append(out.blocks, blk.Clone())
			continue
		}
		clamped := block.New()
		blk.Iterate(func(v uint16) bool {
			if v >= loLo && v <= hiLo {
				clamped.Add(v)
			}
			return true
		})
		if !clamped.IsEmpty() {
			out.keys = append(out.keys, key)
			out.blocks = append(out.blocks, clamped)
		}
	}
	return out
}

// zipBlocks merges two key-ordered block sequences with op, keeping only
// keys present in both (used for AND, where a key absent from either
// side contributes nothing).
func zipBlocks(a, b *core, op func(x, y *block.Block) *block.Block) *Bitmap {
	out := &Bitmap{}
	i, j := 0, 0
	for i < len(a.keys) && j < len(b.keys) {
		switch {
		case a.keys[i] < b.keys[j]:
			i++
		case a.keys[i] > b.keys[j]:
			j++
		default:
			r := op(a.blocks[i], b.blocks[j])
			if !r.IsEmpty() {
				out.keys = append(out.keys, a.keys[i])
				out.blocks = append(out.blocks, r)
			}
			i++
			j++
		}
	}
	return out
}

func unionBlocks(a, b *core) *Bitmap {
	out := &Bitmap{}
	i, j := 0, 0
	for i < len(a.keys) || j < len(b.keys) {
		switch {
		case j >= len(b.keys) || (i < len(a.keys) && a.keys[i] < b.keys[j]):
			out.keys = append(out.keys, a.keys[i])
			out.blocks = append(out.blocks, a.blocks[i].Clone())
			i++
		case i >= len(a.keys) || b.keys[j] < a.keys[i]:
			out.keys = append(out.keys, b.keys[j])
			out.blocks = append(out.blocks, b.blocks[j].Clone())
			j++
		default:
			r := block.Or(a.blocks[i], b.blocks[j])
			out.keys = append(out.keys, a.keys[i])
			out.blocks = append(out.blocks, r)
			i++
			j++
		}
	}
	return out
}

func xorBlocks(a, b *core) *Bitmap {
	out := &Bitmap{}
	i, j := 0, 0
	for i < len(a.keys) || j < len(b.keys) {
		switch {
		case j >= len(b.keys) || (i < len(a.keys) && a.keys[i] < b.keys[j]):
			out.keys = append(out.keys, a.keys[i])
			out.blocks = append(out.blocks, a.blocks[i].Clone())
			i++
		case i >= len(a.keys) || b.keys[j] < a.keys[i]:
			out.keys = append(out.keys, b.keys[j])
			out.blocks = append(out.blocks, b.blocks[j].Clone())
			j++
		default:
			r := block.Xor(a.blocks[i], b.blocks[j])
			if !r.IsEmpty() {
				out.keys = append(out.keys, a.keys[i])
				out.blocks = append(out.blocks, r)
			}
			i++
			j++
		}
	}
	return out
}

func subBlocks(a, b *core) *Bitmap {
	out := &Bitmap{}
	i, j := 0, 0
	for i < len(a.keys) {
		switch {
		case j >= len(b.keys) || a.keys[i] < b.keys[j]:
			out.keys = append(out.keys, a.keys[i])
			out.blocks = append(out.blocks, a.blocks[i].Clone())
			i++
		case b.keys[j] < a.keys[i]:
			j++
		default:
			r := block.Sub(a.blocks[i], b.blocks[j])
			if !r.IsEmpty() {
				out.keys = append(out.keys, a.keys[i])
				out.blocks = append(out.blocks, r)
			}
			i++
			j++
		}
	}
	return out
}

// sortByCardinalityAscending returns indices into bitmaps ordered by
// increasing Len(), so a multi-operand intersection fold narrows against
// the smallest remaining operand first.
func sortByCardinalityAscending(bitmaps []*Bitmap) []int {
	idx := make([]int, len(bitmaps))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return bitmaps[idx[i]].Len() < bitmaps[idx[j]].Len() })
	return idx
}
