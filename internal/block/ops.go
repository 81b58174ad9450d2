package block

// This file dispatches the four binary set operations over all nine
// ordered pairs of (Array, Dense, Inverted) x (Array, Dense, Inverted)
// with one flat switch per operation, avoiding virtual dispatch inside
// the inner loop.
//
// Each op has a materializing form (And, Or, Xor, Sub — used by both the
// functional and in-place public API) and a length-only form (AndLen,
// OrLen, XorLen, SubLen) that shares the same scanning primitives but
// never allocates a result.

type result struct {
	variant Variant
	arr     []uint16
	dense   []uint64
	card    int
}

func (r result) toBlock() *Block {
	return &Block{variant: r.variant, arr: r.arr, dense: r.dense, card: r.card}
}

// --- AND -------------------------------------------------------------

func computeAnd(a, b *Block) result {
	switch {
	case a.variant == Array && b.variant == Array:
		arr := intersectSorted(a.arr, b.arr)
		return arrResult(arr)
	case a.variant == Array && b.variant == Dense:
		return arrResult(probeIntersect(a.arr, b.dense))
	case a.variant == Dense && b.variant == Array:
		return arrResult(probeIntersect(b.arr, a.dense))
	case a.variant == Dense && b.variant == Dense:
		d := cloneDense(a.dense)
		card := denseAndInPlace(d, b.dense)
		return denseResult(d, card)
	case a.variant == Array && b.variant == Inverted:
		return arrResult(diffSorted(a.arr, b.arr))
	case a.variant == Inverted && b.variant == Array:
		return arrResult(diffSorted(b.arr, a.arr))
	case a.variant == Inverted && b.variant == Inverted:
		return invResult(unionSorted(a.arr, b.arr))
	case a.variant == Dense && b.variant == Inverted:
		return denseAndAbsent(a.dense, b.arr)
	case a.variant == Inverted && b.variant == Dense:
		return denseAndAbsent(b.dense, a.arr)
	}
	panic("block: unreachable AND dispatch")
}

func computeAndLen(a, b *Block) int {
	switch {
	case a.variant == Array && b.variant == Array:
		return intersectSortedLen(a.arr, b.arr)
	case a.variant == Array && b.variant == Dense:
		return probeIntersectLen(a.arr, b.dense)
	case a.variant == Dense && b.variant == Array:
		return probeIntersectLen(b.arr, a.dense)
	case a.variant == Dense && b.variant == Dense:
		return denseAndLen(a.dense, b.dense)
	case a.variant == Array && b.variant == Inverted:
		return diffSortedLen(a.arr, b.arr)
	case a.variant == Inverted && b.variant == Array:
		return diffSortedLen(b.arr, a.arr)
	case a.variant == Inverted && b.variant == Inverted:
		return MaxValues - unionSortedLen(a.arr, b.arr)
	case a.variant == Dense && b.variant == Inverted:
		return denseAndAbsentLen(a.dense, b.arr)
	case a.variant == Inverted && b.variant == Dense:
		return denseAndAbsentLen(b.dense, a.arr)
	}
	panic("block: unreachable AND-len dispatch")
}

// --- OR ----------------------------------------------------------------

func computeOr(a, b *Block) result {
	switch {
	case a.variant == Array && b.variant == Array:
		return arrResult(unionSorted(a.arr, b.arr))
	case a.variant == Array && b.variant == Dense:
		d := cloneDense(b.dense)
		card := b.card
		for _, v := range a.arr {
			if denseSet(d, v) {
				card++
			}
		}
		return denseResult(d, card)
	case a.variant == Dense && b.variant == Array:
		d := cloneDense(a.dense)
		card := a.card
		for _, v := range b.arr {
			if denseSet(d, v) {
				card++
			}
		}
		return denseResult(d, card)
	case a.variant == Dense && b.variant == Dense:
		d := cloneDense(a.dense)
		card := denseOrInPlace(d, b.dense)
		return denseResult(d, card)
	case a.variant == Array && b.variant == Inverted:
		return invResult(diffSorted(b.arr, a.arr))
	case a.variant == Inverted && b.variant == Array:
		return invResult(diffSorted(a.arr, b.arr))
	case a.variant == Inverted && b.variant == Inverted:
		return invResult(intersectSorted(a.arr, b.arr))
	case a.variant == Dense && b.variant == Inverted:
		return denseOrAbsent(a.dense, b.arr)
	case a.variant == Inverted && b.variant == Dense:
		return denseOrAbsent(b.dense, a.arr)
	}
	panic("block: unreachable OR dispatch")
}

func computeOrLen(a, b *Block) int {
	switch {
	case a.variant == Array && b.variant == Array:
		return unionSortedLen(a.arr, b.arr)
	case a.variant == Array && b.variant == Dense:
		return b.card + countNewSetBits(a.arr, b.dense)
	case a.variant == Dense && b.variant == Array:
		return a.card + countNewSetBits(b.arr, a.dense)
	case a.variant == Dense && b.variant == Dense:
		return denseOrLen(a.dense, b.dense)
	case a.variant == Array && b.variant == Inverted:
		return MaxValues - diffSortedLen(b.arr, a.arr)
	case a.variant == Inverted && b.variant == Array:
		return MaxValues - diffSortedLen(a.arr, b.arr)
	case a.variant == Inverted && b.variant == Inverted:
		return MaxValues - intersectSortedLen(a.arr, b.arr)
	case a.variant == Dense && b.variant == Inverted:
		return MaxValues - countDenseAndAbsentComplementLen(a.dense, b.arr)
	case a.variant == Inverted && b.variant == Dense:
		return MaxValues - countDenseAndAbsentComplementLen(b.dense, a.arr)
	}
	panic("block: unreachable OR-len dispatch")
}

// --- XOR -----------------------------------------------------------------

func computeXor(a, b *Block) result {
	switch {
	case a.variant == Array && b.variant == Array:
		return arrResult(symDiffSorted(a.arr, b.arr))
	case a.variant == Array && b.variant == Dense:
		return denseToggled(b.dense, b.card, a.arr)
	case a.variant == Dense && b.variant == Array:
		return denseToggled(a.dense, a.card, b.arr)
	case a.variant == Dense && b.variant == Dense:
		d := cloneDense(a.dense)
		card := denseXorInPlace(d, b.dense)
		return denseResult(d, card)
	case a.variant == Array && b.variant == Inverted:
		return invResult(symDiffSorted(a.arr, b.arr))
	case a.variant == Inverted && b.variant == Array:
		return invResult(symDiffSorted(a.arr, b.arr))
	case a.variant == Inverted && b.variant == Inverted:
		return arrResult(symDiffSorted(a.arr, b.arr))
	case a.variant == Dense && b.variant == Inverted:
		return denseXorAbsent(a.dense, b.arr)
	case a.variant == Inverted && b.variant == Dense:
		return denseXorAbsent(b.dense, a.arr)
	}
	panic("block: unreachable XOR dispatch")
}

func computeXorLen(a, b *Block) int {
	switch {
	case a.variant == Array && b.variant == Array:
		return symDiffSortedLen(a.arr, b.arr)
	case a.variant == Array && b.variant == Dense:
		return xorDenseArrLen(b.dense, a.arr)
	case a.variant == Dense && b.variant == Array:
		return xorDenseArrLen(a.dense, b.arr)
	case a.variant == Dense && b.variant == Dense:
		return denseXorLen(a.dense, b.dense)
	case a.variant == Array && b.variant == Inverted,
		a.variant == Inverted && b.variant == Array:
		return MaxValues - symDiffSortedLen(a.arr, b.arr)
	case a.variant == Inverted && b.variant == Inverted:
		return symDiffSortedLen(a.arr, b.arr)
	case a.variant == Dense && b.variant == Inverted:
		return xorDenseAbsentLen(a.dense, b.arr)
	case a.variant == Inverted && b.variant == Dense:
		return xorDenseAbsentLen(b.dense, a.arr)
	}
	panic("block: unreachable XOR-len dispatch")
}

// --- SUB (difference a \ b) ----------------------------------------------

func computeSub(a, b *Block) result {
	switch {
	case a.variant == Array && b.variant == Array:
		return arrResult(diffSorted(a.arr, b.arr))
	case a.variant == Array && b.variant == Dense:
		return arrResult(probeDiff(a.arr, b.dense))
	case a.variant == Dense && b.variant == Array:
		d := cloneDense(a.dense)
		card := a.card
		for _, v := range b.arr {
			if denseClear(d, v) {
				card--
			}
		}
		return denseResult(d, card)
	case a.variant == Dense && b.variant == Dense:
		d := cloneDense(a.dense)
		card := denseAndNotInPlace(d, b.dense)
		return denseResult(d, card)
	case a.variant == Array && b.variant == Inverted:
		return arrResult(intersectSorted(a.arr, b.arr))
	case a.variant == Inverted && b.variant == Array:
		return invResult(unionSorted(a.arr, b.arr))
	case a.variant == Inverted && b.variant == Inverted:
		return arrResult(diffSorted(b.arr, a.arr))
	case a.variant == Dense && b.variant == Inverted:
		return denseSubAbsent(a.dense, b.arr)
	case a.variant == Inverted && b.variant == Dense:
		return invSubDense(a.arr, b.dense)
	}
	panic("block: unreachable SUB dispatch")
}

func computeSubLen(a, b *Block) int {
	switch {
	case a.variant == Array && b.variant == Array:
		return diffSortedLen(a.arr, b.arr)
	case a.variant == Array && b.variant == Dense:
		return probeDiffLen(a.arr, b.dense)
	case a.variant == Dense && b.variant == Array:
		return a.card - probeIntersectLen(b.arr, a.dense)
	case a.variant == Dense && b.variant == Dense:
		return denseSubLen(a.dense, b.dense)
	case a.variant == Array && b.variant == Inverted:
		return intersectSortedLen(a.arr, b.arr)
	case a.variant == Inverted && b.variant == Array:
		return MaxValues - unionSortedLen(a.arr, b.arr)
	case a.variant == Inverted && b.variant == Inverted:
		return diffSortedLen(b.arr, a.arr)
	case a.variant == Dense && b.variant == Inverted:
		return denseSubAbsentLen(a.dense, b.arr)
	case a.variant == Inverted && b.variant == Dense:
		return invSubDenseLen(a.arr, b.dense)
	}
	panic("block: unreachable SUB-len dispatch")
}

// --- shared combinators over an Array/Dense or Array/Inverted pair --------

func arrResult(arr []uint16) result {
	return result{variant: Array, arr: arr, card: len(arr)}.normalize()
}

func invResult(absent []uint16) result {
	return result{variant: Inverted, arr: absent, card: MaxValues - len(absent)}.normalize()
}

func denseResult(d []uint64, card int) result {
	return result{variant: Dense, dense: d, card: card}.normalize()
}

// normalize re-expresses a result in its ideal variant for its
// cardinality, so every combinator above can emit whichever
// representation is cheapest to compute and still end up minimal.
func (r result) normalize() result {
	want := idealVariant(r.card)
	if want == r.variant {
		return r
	}
	b := r.toBlock()
	b.convertTo(want)
	return result{variant: b.variant, arr: b.arr, dense: b.dense, card: b.card}
}

func probeIntersect(arr []uint16, dense []uint64) []uint16 {
	out := make([]uint16, 0, len(arr))
	for _, v := range arr {
		if denseGet(dense, v) {
			out = append(out, v)
		}
	}
	return out
}

func probeIntersectLen(arr []uint16, dense []uint64) int {
	n := 0
	for _, v := range arr {
		if denseGet(dense, v) {
			n++
		}
	}
	return n
}

func probeDiff(arr []uint16, dense []uint64) []uint16 {
	out := make([]uint16, 0, len(arr))
	for _, v := range arr {
		if !denseGet(dense, v) {
			out = append(out, v)
		}
	}
	return out
}

func probeDiffLen(arr []uint16, dense []uint64) int {
	return len(arr) - probeIntersectLen(arr, dense)
}

func countNewSetBits(arr []uint16, dense []uint64) int {
	n := 0
	for _, v := range arr {
		if !denseGet(dense, v) {
			n++
		}
	}
	return n
}

func denseAndLen(a, b []uint64) int {
	n := 0
	for i := range a {
		n += popcountOne(a[i] & b[i])
	}
	return n
}

func denseOrLen(a, b []uint64) int {
	n := 0
	for i := range a {
		n += popcountOne(a[i] | b[i])
	}
	return n
}

func denseXorLen(a, b []uint64) int {
	n := 0
	for i := range a {
		n += popcountOne(a[i] ^ b[i])
	}
	return n
}

func denseSubLen(a, b []uint64) int {
	n := 0
	for i := range a {
		n += popcountOne(a[i] &^ b[i])
	}
	return n
}

// denseAndAbsent computes denseA ∩ complement(absentB): clone denseA and
// clear every bit named by absentB (Dense AND Inverted never needs to
// touch bits outside of absentB, since every such bit is already correct).
func denseAndAbsent(dense []uint64, absent []uint16) result {
	d := cloneDense(dense)
	card := popcount(d)
	for _, v := range absent {
		if denseClear(d, v) {
			card--
		}
	}
	return denseResult(d, card)
}

func denseAndAbsentLen(dense []uint64, absent []uint16) int {
	n := popcount(dense)
	for _, v := range absent {
		if denseGet(dense, v) {
			n--
		}
	}
	return n
}

// countDenseAndAbsentComplementLen returns |complement(denseA) ∩ absentB|,
// used by the OR-len dense/inverted dispatch via De Morgan's law:
// |A ∪ B| = MaxValues - |complement(A) ∩ complement(B)|.
func countDenseAndAbsentComplementLen(dense []uint64, absent []uint16) int {
	n := 0
	for _, v := range absent {
		if !denseGet(dense, v) {
			n++
		}
	}
	return n
}

// denseOrAbsent computes denseA ∪ complement(absentB), returned as an
// Inverted result: complement(result) = complement(denseA) ∩ absentB.
func denseOrAbsent(dense []uint64, absent []uint16) result {
	out := make([]uint16, 0, len(absent))
	for _, v := range absent {
		if !denseGet(dense, v) {
			out = append(out, v)
		}
	}
	return invResult(out)
}

// denseToggled computes denseA △ arrB by cloning and flipping each bit
// named in arrB.
func denseToggled(dense []uint64, card int, arr []uint16) result {
	d := cloneDense(dense)
	for _, v := range arr {
		if denseGet(d, v) {
			card--
		} else {
			card++
		}
		denseToggle(d, v)
	}
	return denseResult(d, card)
}

func xorDenseArrLen(dense []uint64, arr []uint16) int {
	card := popcount(dense)
	for _, v := range arr {
		if denseGet(dense, v) {
			card--
		} else {
			card++
		}
	}
	return card
}

// denseXorAbsent computes denseA △ complement(absentB). Equal to
// complement(denseA △ absentB), so toggle denseA at every absentB
// position and invert the whole payload.
func denseXorAbsent(dense []uint64, absent []uint16) result {
	d := cloneDense(dense)
	for _, v := range absent {
		denseToggle(d, v)
	}
	card := denseNotInPlace(d)
	return denseResult(d, card)
}

func xorDenseAbsentLen(dense []uint64, absent []uint16) int {
	d := cloneDense(dense)
	for _, v := range absent {
		denseToggle(d, v)
	}
	return MaxValues - popcount(d)
}

// denseSubAbsent computes denseA \ complement(absentB) = denseA ∩ absentB.
func denseSubAbsent(dense []uint64, absent []uint16) result {
	out := make([]uint16, 0, len(absent))
	for _, v := range absent {
		if denseGet(dense, v) {
			out = append(out, v)
		}
	}
	return arrResult(out)
}

func denseSubAbsentLen(dense []uint64, absent []uint16) int {
	n := 0
	for _, v := range absent {
		if denseGet(dense, v) {
			n++
		}
	}
	return n
}

// invSubDense computes complement(absentA) \ denseB: start from "present"
// (complement of absentA) and clear every bit set in denseB.
func invSubDense(absent []uint16, dense []uint64) result {
	d := denseFromAbsent(absent)
	card := denseAndNotInPlace(d, dense)
	return denseResult(d, card)
}

func invSubDenseLen(absent []uint16, dense []uint64) int {
	present := MaxValues - len(absent)
	// present \ denseB: present minus (present ∩ denseB). Compute the
	// overlap by walking dense's set bits and checking absence from absent.
	overlap := 0
	for wi, w := range dense {
		for w != 0 {
			tz := trailingZeros(w)
			v := uint16(wi*64 + tz)
			if !contains(absent, v) {
				overlap++
			}
			w &= w - 1
		}
	}
	return present - overlap
}
