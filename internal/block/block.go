package block

import "fmt"

// Block stores the subset of a roaring bitmap's values that share one
// high-16-bit key, as one of three physical encodings (see Variant). It
// has no notion of the key itself; the owning Bitmap associates a Block
// with its key.
//
// Block is not safe for concurrent use; callers must serialize their own
// access.
type Block struct {
	variant Variant
	card    int
	arr     []uint16 // Array: present values. Inverted: absent values.
	dense   []uint64 // Dense payload, exactly DenseWords long.
}

// New returns an empty Block.
func New() *Block {
	return &Block{variant: Array, arr: nil}
}

// FromSorted builds a Block from an ascending slice of distinct low-parts,
// choosing the minimal variant directly rather than adding one element at
// a time.
func FromSorted(sorted []uint16) *Block {
	b := &Block{}
	b.card = len(sorted)
	switch idealVariant(b.card) {
	case Array:
		b.variant = Array
		b.arr = append([]uint16(nil), sorted...)
	case Inverted:
		b.variant = Inverted
		b.arr = complementSorted(sorted)
	case Dense:
		b.variant = Dense
		b.dense = denseFromSorted(sorted)
	}
	return b
}

// FromRange builds a Block containing every lo-th value in [start, stop)
// with the given stride, clipped to [0, MaxValues). stride must be >= 1.
// The variant is chosen directly from the resulting cardinality instead
// of being built incrementally, and for stride-1 dense ranges the bits
// are set word-at-a-time rather than one bit at a time.
func FromRange(start, stop uint32, stride uint32) *Block {
	if stop > MaxValues {
		stop = MaxValues
	}
	if start >= stop || stride == 0 {
		return New()
	}
	card := int((stop-start+stride-1)/stride)
	b := &Block{card: card}
	switch idealVariant(card) {
	case Dense:
		b.variant = Dense
		b.dense = newDenseWords()
		if stride == 1 {
			setDenseRange(b.dense, start, stop)
		} else {
			for v := start; v < stop; v += stride {
				denseSet(b.dense, uint16(v))
			}
		}
	default:
		arr := make([]uint16, 0, card)
		for v := start; v < stop; v += stride {
			arr = append(arr, uint16(v))
		}
		b.variant = Array
		b.arr = arr
		if idealVariant(card) == Inverted {
			b.variant = Inverted
			b.arr = complementSorted(arr)
		}
	}
	return b
}

// setDenseRange sets every bit in [start, stop) directly, word at a time
// where a full word falls inside the range.
func setDenseRange(words []uint64, start, stop uint32) {
	for v := start; v < stop && v%64 != 0; v++ {
		denseSet(words, uint16(v))
	}
	start = ((start + 63) / 64) * 64
	wStart, wStop := start/64, stop/64
	for w := wStart; w < wStop; w++ {
		words[w] = ^uint64(0)
	}
	for v := wStop * 64; v < stop; v++ {
		denseSet(words, uint16(v))
	}
}

// Variant reports the Block's current physical encoding.
func (b *Block) Variant() Variant { return b.variant }

// Cardinality returns the number of distinct values the Block holds.
func (b *Block) Cardinality() int { return b.card }

// IsEmpty reports whether the Block holds no values.
func (b *Block) IsEmpty() bool { return b.card == 0 }

// Contains reports whether lo is a member of the Block.
func (b *Block) Contains(lo uint16) bool {
	switch b.variant {
	case Array:
		return contains(b.arr, lo)
	case Inverted:
		return !contains(b.arr, lo)
	default:
		return denseGet(b.dense, lo)
	}
}

// Add inserts lo and reports whether the Block's cardinality changed.
func (b *Block) Add(lo uint16) bool {
	switch b.variant {
	case Array:
		i := lowerBound(b.arr, lo)
		if i < len(b.arr) && b.arr[i] == lo {
			return false
		}
		b.arr = append(b.arr, 0)
		copy(b.arr[i+1:], b.arr[i:])
		b.arr[i] = lo
		b.card++
	case Inverted:
		i := lowerBound(b.arr, lo)
		if i >= len(b.arr) || b.arr[i] != lo {
			return false
		}
		b.arr = append(b.arr[:i], b.arr[i+1:]...)
		b.card++
	default:
		if !denseSet(b.dense, lo) {
			return false
		}
		b.card++
	}
	b.rebalance()
	return true
}

// Discard removes lo and reports whether the Block's cardinality changed.
func (b *Block) Discard(lo uint16) bool {
	switch b.variant {
	case Array:
		i := lowerBound(b.arr, lo)
		if i >= len(b.arr) || b.arr[i] != lo {
			return false
		}
		b.arr = append(b.arr[:i], b.arr[i+1:]...)
		b.card--
	case Inverted:
		i := lowerBound(b.arr, lo)
		if i < len(b.arr) && b.arr[i] == lo {
			return false
		}
		b.arr = append(b.arr, 0)
		copy(b.arr[i+1:], b.arr[i:])
		b.arr[i] = lo
		b.card--
	default:
		if !denseClear(b.dense, lo) {
			return false
		}
		b.card--
	}
	b.rebalance()
	return true
}

// Min returns the smallest member. The Block must not be empty.
func (b *Block) Min() uint16 {
	switch b.variant {
	case Array:
		return b.arr[0]
	case Inverted:
		for v := 0; v < MaxValues; v++ {
			if !contains(b.arr, uint16(v)) {
				return uint16(v)
			}
		}
		panic("block: inverted block unexpectedly full-absent")
	default:
		for wi, w := range b.dense {
			if w != 0 {
				return uint16(wi*64 + trailingZeros(w))
			}
		}
		panic("block: dense block unexpectedly empty")
	}
}

// Max returns the largest member. The Block must not be empty.
func (b *Block) Max() uint16 {
	switch b.variant {
	case Array:
		return b.arr[len(b.arr)-1]
	case Inverted:
		for v := MaxValues - 1; v >= 0; v-- {
			if !contains(b.arr, uint16(v)) {
				return uint16(v)
			}
		}
		panic("block: inverted block unexpectedly full-absent")
	default:
		for wi := len(b.dense) - 1; wi >= 0; wi-- {
			if w := b.dense[wi]; w != 0 {
				return uint16(wi*64 + 63 - leadingZeros(w))
			}
		}
		panic("block: dense block unexpectedly empty")
	}
}

// Rank returns the number of members <= lo.
func (b *Block) Rank(lo uint16) int {
	switch b.variant {
	case Array:
		return lowerBoundInclusive(b.arr, lo)
	case Inverted:
		absentUpTo := lowerBoundInclusive(b.arr, lo)
		return int(lo) + 1 - absentUpTo
	default:
		count := 0
		full := int(lo) / 64
		for wi := 0; wi < full; wi++ {
			count += popcount(b.dense[wi : wi+1])
		}
		rem := lo%64 + 1
		mask := uint64(1)<<rem - 1
		if rem == 64 {
			mask = ^uint64(0)
		}
		count += popcountOne(b.dense[full] & mask)
		return count
	}
}

// Select returns the k-th smallest member (0-indexed). k must be < Cardinality().
func (b *Block) Select(k int) uint16 {
	switch b.variant {
	case Array:
		return b.arr[k]
	case Inverted:
		// Skip-count through the absentee array: walk candidate values,
		// subtracting one target index per absentee skipped.
		target := k
		absentIdx := 0
		for v := 0; v < MaxValues; v++ {
			for absentIdx < len(b.arr) && int(b.arr[absentIdx]) == v {
				absentIdx++
				v++
				if v >= MaxValues {
					panic("block: select out of range on inverted block")
				}
			}
			if target == 0 {
				return uint16(v)
			}
			target--
		}
		panic("block: select out of range on inverted block")
	default:
		remaining := k
		for wi, w := range b.dense {
			c := popcountOne(w)
			if remaining < c {
				for w != 0 {
					tz := trailingZeros(w)
					if remaining == 0 {
						return uint16(wi*64 + tz)
					}
					remaining--
					w &= w - 1
				}
			}
			remaining -= c
		}
		panic("block: select out of range on dense block")
	}
}

// Iterate calls fn for every member in ascending order. It stops early if
// fn returns false.
func (b *Block) Iterate(fn func(uint16) bool) {
	switch b.variant {
	case Array:
		for _, v := range b.arr {
			if !fn(v) {
				return
			}
		}
	case Inverted:
		ai := 0
		for v := 0; v < MaxValues; v++ {
			if ai < len(b.arr) && int(b.arr[ai]) == v {
				ai++
				continue
			}
			if !fn(uint16(v)) {
				return
			}
		}
	default:
		for wi, w := range b.dense {
			for w != 0 {
				tz := trailingZeros(w)
				if !fn(uint16(wi*64 + tz)) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Clone returns an independent deep copy of the Block.
func (b *Block) Clone() *Block {
	nb := &Block{variant: b.variant, card: b.card}
	if b.arr != nil {
		nb.arr = append([]uint16(nil), b.arr...)
	}
	if b.dense != nil {
		nb.dense = cloneDense(b.dense)
	}
	return nb
}

// Check validates the Block's internal invariants; it is used by the
// owning Bitmap's consistency checker and panics on violation (an
// internal invariant breach is a fatal bug, not a reportable error).
func (b *Block) Check() {
	switch b.variant {
	case Array:
		if len(b.arr) != b.card {
			panic(fmt.Sprintf("block: array cardinality mismatch: len=%d card=%d", len(b.arr), b.card))
		}
		checkAscending(b.arr)
	case Inverted:
		if MaxValues-len(b.arr) != b.card {
			panic(fmt.Sprintf("block: inverted cardinality mismatch: absent=%d card=%d", len(b.arr), b.card))
		}
		checkAscending(b.arr)
	case Dense:
		if len(b.dense) != DenseWords {
			panic(fmt.Sprintf("block: dense payload has %d words, want %d", len(b.dense), DenseWords))
		}
		if p := popcount(b.dense); p != b.card {
			panic(fmt.Sprintf("block: dense cardinality mismatch: popcount=%d card=%d", p, b.card))
		}
	}
	if want := idealVariant(b.card); want != b.variant {
		panic(fmt.Sprintf("block: variant %s is not minimal for cardinality %d (want %s)", b.variant, b.card, want))
	}
}

func checkAscending(a []uint16) {
	for i := 1; i < len(a); i++ {
		if a[i] <= a[i-1] {
			panic("block: array is not strictly ascending")
		}
	}
}

// rebalance converts the Block to its ideal variant if the current one is
// no longer minimal for its cardinality.
func (b *Block) rebalance() {
	want := idealVariant(b.card)
	if want == b.variant {
		return
	}
	b.convertTo(want)
}

func lowerBoundInclusive(a []uint16, target uint16) int {
	lo, hi := 0, len(a)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if a[mid] <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
