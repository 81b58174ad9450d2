package roaring

import (
	"sort"

	"github.com/TomTonic/roaring/internal/block"
)

// core holds the key-ordered sequence of blocks shared by Bitmap and
// ImmutableBitmap, and every read-only operation defined purely in terms
// of that sequence. Bitmap embeds it for read/write use; ImmutableBitmap
// embeds it over blocks built with block.Overlay so every method here
// works unmodified on a borrowed, read-only buffer.
//
// keys stays strictly ascending and parallel to blocks; every lookup is
// a binary search over keys followed by direct indexing into blocks.
type core struct {
	keys   []uint16
	blocks []*block.Block
}

// keyIndex returns the position of key in the ascending key slice and
// whether it was found; when not found the position is where it would be
// inserted.
func (c *core) keyIndex(key uint16) (int, bool) {
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i] >= key })
	return i, i < len(c.keys) && c.keys[i] == key
}

// Len returns the total number of values held across all blocks.
func (c *core) Len() int {
	total := 0
	for _, b := range c.blocks {
		total += b.Cardinality()
	}
	return total
}

// Contains reports whether v is a member.
func (c *core) Contains(v uint32) bool {
	key := uint16(v >> 16)
	i, found := c.keyIndex(key)
	if !found {
		return false
	}
	return c.blocks[i].Contains(uint16(v))
}

// Min returns the smallest member and false if the set is empty.
func (c *core) Min() (uint32, bool) {
	if len(c.keys) == 0 {
		return 0, false
	}
	return uint32(c.keys[0])<<16 | uint32(c.blocks[0].Min()), true
}

// Max returns the largest member and false if the set is empty.
func (c *core) Max() (uint32, bool) {
	n := len(c.keys)
	if n == 0 {
		return 0, false
	}
	return uint32(c.keys[n-1])<<16 | uint32(c.blocks[n-1].Max()), true
}

// Rank returns the number of members <= v.
func (c *core) Rank(v uint32) int {
	key := uint16(v >> 16)
	total := 0
	for i, k := range c.keys {
		if k < key {
			total += c.blocks[i].Cardinality()
			continue
		}
		if k == key {
			total += c.blocks[i].Rank(uint16(v))
		}
		break
	}
	return total
}

// Select returns the i-th smallest member (0-indexed).
func (c *core) Select(i int) (uint32, error) {
	if i < 0 {
		return 0, valueInvalidErrorf("select index %d is negative", i)
	}
	remaining := i
	for idx, b := range c.blocks {
		card := b.Cardinality()
		if remaining < card {
			return uint32(c.keys[idx])<<16 | uint32(b.Select(remaining)), nil
		}
		remaining -= card
	}
	return 0, valueInvalidErrorf("select index %d exceeds cardinality %d", i, c.Len())
}

// At returns the i-th smallest member, supporting negative indices that
// count back from the end (At(-1) is the maximum value).
func (c *core) At(i int) (uint32, error) {
	n := c.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, valueInvalidErrorf("index %d out of range for length %d", i, n)
	}
	return c.Select(i)
}

// Slice returns every stride-th member of [start, stop) in positional
// (rank) space, ascending. stride must be positive.
func (c *core) Slice(start, stop, stride int) ([]uint32, error) {
	if stride <= 0 {
		return nil, valueInvalidErrorf("slice stride %d is not positive", stride)
	}
	n := c.Len()
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop > n {
		stop = n
	}
	if start >= stop {
		return nil, nil
	}
	out := make([]uint32, 0, (stop-start+stride-1)/stride)
	for i := start; i < stop; i += stride {
		v, err := c.Select(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Iterate calls fn for every member in ascending order, stopping early if
// fn returns false.
func (c *core) Iterate(fn func(uint32) bool) {
	for i, k := range c.keys {
		base := uint32(k) << 16
		cont := true
		c.blocks[i].Iterate(func(lo uint16) bool {
			cont = fn(base | uint32(lo))
			return cont
		})
		if !cont {
			return
		}
	}
}

// ReverseIterate calls fn for every member in descending order, stopping
// early if fn returns false.
func (c *core) ReverseIterate(fn func(uint32) bool) {
	for i := len(c.keys) - 1; i >= 0; i-- {
		base := uint32(c.keys[i]) << 16
		// Materialize this block's values once so we can walk them in
		// reverse; blocks are capped at 2^16 members so this is bounded.
		var vals []uint32
		c.blocks[i].Iterate(func(lo uint16) bool {
			vals = append(vals, base|uint32(lo))
			return true
		})
		for j := len(vals) - 1; j >= 0; j-- {
			if !fn(vals[j]) {
				return
			}
		}
	}
}

// ToSlice materializes every member in ascending order.
func (c *core) ToSlice() []uint32 {
	out := make([]uint32, 0, c.Len())
	c.Iterate(func(v uint32) bool {
		out = append(out, v)
		return true
	})
	return out
}

// subset reports whether every member of c is also a member of other.
func (c *core) subset(other *core) bool {
	for i, k := range c.keys {
		j, found := other.keyIndex(k)
		if !found {
			return false
		}
		if block.SubLen(c.blocks[i], other.blocks[j]) != 0 {
			return false
		}
	}
	return true
}

// disjoint reports whether c and other share no members.
func (c *core) disjoint(other *core) bool {
	i, j := 0, 0
	for i < len(c.keys) && j < len(other.keys) {
		switch {
		case c.keys[i] < other.keys[j]:
			i++
		case c.keys[i] > other.keys[j]:
			j++
		default:
			if block.AndLen(c.blocks[i], other.blocks[j]) != 0 {
				return false
			}
			i++
			j++
		}
	}
	return true
}

// equal reports whether c and other hold exactly the same members.
func (c *core) equal(other *core) bool {
	if len(c.keys) != len(other.keys) {
		return false
	}
	for i := range c.keys {
		if c.keys[i] != other.keys[i] {
			return false
		}
		if block.XorLen(c.blocks[i], other.blocks[i]) != 0 {
			return false
		}
	}
	return true
}

// check validates core's structural invariants: strictly ascending keys,
// every block non-empty and internally consistent. It panics on
// violation; an invariant breach here is a bug, not a reportable error.
func (c *core) check() {
	if len(c.keys) != len(c.blocks) {
		panic("roaring: keys/blocks length mismatch")
	}
	for i, b := range c.blocks {
		if b.IsEmpty() {
			panic("roaring: empty block retained in bitmap")
		}
		b.Check()
		if i > 0 && c.keys[i] <= c.keys[i-1] {
			panic("roaring: keys not strictly ascending")
		}
	}
}
