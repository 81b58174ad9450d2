package block

import (
	"math/rand"
	"testing"
)

func asSlice(b *Block) []uint16 {
	var out []uint16
	b.Iterate(func(v uint16) bool {
		out = append(out, v)
		return true
	})
	return out
}

func TestFromSortedRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 4096, 4097, 61440, 61441, 65536} {
		sorted := randomSorted(rng, n, MaxValues)
		b := FromSorted(sorted)
		b.Check()
		if b.Cardinality() != n {
			t.Fatalf("n=%d: cardinality=%d", n, b.Cardinality())
		}
		if got := asSlice(b); !sliceEq(got, sorted) {
			t.Fatalf("n=%d: round-trip mismatch", n)
		}
	}
}

func sliceEq(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddDiscardCrossesVariantThresholds(t *testing.T) {
	b := New()
	var want []uint16
	for v := 0; v < 70000 && v < MaxValues; v++ {
		if !b.Add(uint16(v)) {
			t.Fatalf("add(%d) reported no change on first insertion", v)
		}
		want = append(want, uint16(v))
		b.Check()
		if b.Cardinality() != len(want) {
			t.Fatalf("after adding %d: cardinality=%d want %d", v, b.Cardinality(), len(want))
		}
		if v == 4095 || v == 4096 || v == 4097 || v == 61439 || v == 61440 || v == 61441 {
			if !b.Contains(uint16(v)) {
				t.Fatalf("value %d not contained right after add", v)
			}
		}
	}
	for _, v := range []uint16{0, 1, 4096, 4097, 61440, 61441, 65535} {
		if !b.Contains(v) {
			continue
		}
		removed := b.Discard(v)
		if !removed {
			t.Fatalf("discard(%d) reported no change", v)
		}
		b.Check()
		if b.Contains(v) {
			t.Fatalf("value %d still contained after discard", v)
		}
	}
}

func TestRankSelectInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range []int{1, 100, 5000, 50000, 65536} {
		sorted := randomSorted(rng, n, MaxValues)
		b := FromSorted(sorted)
		for k := 0; k < n; k += max1(n / 50) {
			v := b.Select(k)
			if v != sorted[k] {
				t.Fatalf("n=%d k=%d: select=%d want %d", n, k, v, sorted[k])
			}
			if got := b.Rank(v); got != k+1 {
				t.Fatalf("n=%d k=%d: rank(select(k))=%d want %d", n, k, got, k+1)
			}
		}
	}
}

func TestMinMax(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 10, 5000, 65536} {
		sorted := randomSorted(rng, n, MaxValues)
		b := FromSorted(sorted)
		if b.Min() != sorted[0] {
			t.Fatalf("n=%d: min=%d want %d", n, b.Min(), sorted[0])
		}
		if b.Max() != sorted[len(sorted)-1] {
			t.Fatalf("n=%d: max=%d want %d", n, b.Max(), sorted[len(sorted)-1])
		}
	}
}

func TestFromRangeMatchesManualConstruction(t *testing.T) {
	for _, tc := range []struct{ start, stop, stride uint32 }{
		{0, 100, 1},
		{0, 100, 7},
		{10, 20000, 3},
		{0, MaxValues, 1},
		{1, MaxValues, 4096},
		{0, MaxValues, 65543},
		{100, 50, 2},
	} {
		b := FromRange(tc.start, tc.stop, tc.stride)
		b.Check()
		var want []uint16
		stop := tc.stop
		if stop > MaxValues {
			stop = MaxValues
		}
		for v := tc.start; v < stop; v += tc.stride {
			want = append(want, uint16(v))
		}
		if got := asSlice(b); !sliceEq(got, want) {
			t.Fatalf("FromRange(%d,%d,%d): got %d values want %d", tc.start, tc.stop, tc.stride, len(got), len(want))
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, n := range []int{0, 10, 5000, 65536} {
		b := FromSorted(randomSorted(rng, n, MaxValues))
		c := b.Clone()
		c.Check()
		if !sliceEq(asSlice(b), asSlice(c)) {
			t.Fatalf("n=%d: clone diverges from original", n)
		}
		if n < MaxValues {
			v := uint16(rng.Intn(MaxValues))
			for b.Contains(v) {
				v++
			}
			c.Add(v)
			if b.Contains(v) {
				t.Fatalf("n=%d: mutating clone mutated original", n)
			}
		}
	}
}

func TestFullBlockBoundary(t *testing.T) {
	full := make([]uint16, MaxValues)
	for i := range full {
		full[i] = uint16(i)
	}
	b := FromSorted(full)
	b.Check()
	if b.Variant() != Dense && b.Variant() != Inverted {
		t.Fatalf("full block variant=%s want dense or inverted", b.Variant())
	}
	if b.Cardinality() != MaxValues {
		t.Fatalf("full block cardinality=%d want %d", b.Cardinality(), MaxValues)
	}
	if b.Select(MaxValues-1) != MaxValues-1 {
		t.Fatalf("select(65535)=%d want %d", b.Select(MaxValues-1), MaxValues-1)
	}
}

func TestIdealVariantIsMinimal(t *testing.T) {
	for _, card := range []int{0, 1, 4096, 4097, 61439, 61440, 61441, 65536} {
		got := idealVariant(card)
		switch {
		case card <= MaxArrayLen && got != Array:
			t.Fatalf("card=%d: want Array, got %s", card, got)
		case card > MaxArrayLen && MaxValues-card <= MaxArrayLen && got != Inverted:
			t.Fatalf("card=%d: want Inverted, got %s", card, got)
		case card > MaxArrayLen && MaxValues-card > MaxArrayLen && got != Dense:
			t.Fatalf("card=%d: want Dense, got %s", card, got)
		}
	}
}

func TestCheckAscendingCatchesDisorder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-ascending array")
		}
	}()
	checkAscending([]uint16{2, 1})
}
