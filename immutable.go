package roaring

import "github.com/TomTonic/roaring/internal/block"

// ImmutableBitmap is a read-only bitmap whose blocks alias a borrowed
// byte buffer rather than owning their storage — a zero-copy load path.
// It supports every core read operation (Contains, Min, Max, Rank,
// Select, At, Slice, Iterate, ReverseIterate, Subset, Disjoint, Equal,
// Len) and every set-algebra operator, which
// always allocate and return a fresh, owned Bitmap since the blocks
// backing an ImmutableBitmap must never be mutated in place.
//
// An ImmutableBitmap keeps a reference to the buffer it was built from
// purely to keep it reachable for the garbage collector; it never reads
// or writes through buf directly.
type ImmutableBitmap struct {
	core
	buf []byte
}

// newImmutableBitmap is the constructor used by the deserializer once it
// has parsed the key table and located each block's payload within buf.
func newImmutableBitmap(keys []uint16, blocks []*block.Block, buf []byte) *ImmutableBitmap {
	return &ImmutableBitmap{core: core{keys: keys, blocks: blocks}, buf: buf}
}

// coreRef implements bitmapLike.
func (m *ImmutableBitmap) coreRef() *core { return &m.core }

// ToBitmap returns an owned, mutable copy.
func (m *ImmutableBitmap) ToBitmap() *Bitmap {
	out := &Bitmap{core: core{
		keys:   append([]uint16(nil), m.keys...),
		blocks: make([]*block.Block, len(m.blocks)),
	}}
	for i, b := range m.blocks {
		out.blocks[i] = b.Clone()
	}
	return out
}

// Equal reports whether m and other hold exactly the same members.
// other may be a Bitmap or another ImmutableBitmap.
func (m *ImmutableBitmap) Equal(other bitmapLike) bool { return m.core.equal(other.coreRef()) }

// Subset reports whether every member of m is also a member of other.
func (m *ImmutableBitmap) Subset(other bitmapLike) bool { return m.core.subset(other.coreRef()) }

// Disjoint reports whether m and other share no members.
func (m *ImmutableBitmap) Disjoint(other bitmapLike) bool {
	return m.core.disjoint(other.coreRef())
}

// And returns a new Bitmap holding the intersection of m and other.
func (m *ImmutableBitmap) And(other bitmapLike) *Bitmap {
	return zipBlocks(&m.core, other.coreRef(), block.And)
}

// Or returns a new Bitmap holding the union of m and other.
func (m *ImmutableBitmap) Or(other bitmapLike) *Bitmap {
	return unionBlocks(&m.core, other.coreRef())
}

// Xor returns a new Bitmap holding the symmetric difference of m and
// other.
func (m *ImmutableBitmap) Xor(other bitmapLike) *Bitmap {
	return xorBlocks(&m.core, other.coreRef())
}

// Sub returns a new Bitmap holding m minus other.
func (m *ImmutableBitmap) Sub(other bitmapLike) *Bitmap {
	return subBlocks(&m.core, other.coreRef())
}

// Clamp returns a new Bitmap holding every member of m in [lo, hi].
func (m *ImmutableBitmap) Clamp(lo, hi uint32) *Bitmap {
	return m.ToBitmap().Clamp(lo, hi)
}
