package block

import (
	"math/rand"
	"testing"
)

// variantSizes picks a cardinality that forces FromSorted to choose the
// named variant, so every (variant, variant) pair of the nine-case
// dispatch tables gets exercised.
var variantSizes = map[Variant]int{
	Array:    500,
	Dense:    20000,
	Inverted: 65000,
}

func blockWithVariant(rng *rand.Rand, v Variant) (*Block, []uint16) {
	n := variantSizes[v]
	sorted := randomSorted(rng, n, MaxValues)
	b := FromSorted(sorted)
	if b.Variant() != v {
		panic("blockWithVariant: FromSorted did not choose the requested variant")
	}
	return b, sorted
}

func TestBinaryOpsAgainstNaiveAcrossAllVariantPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	variants := []Variant{Array, Dense, Inverted}
	for _, va := range variants {
		for _, vb := range variants {
			a, sa := blockWithVariant(rng, va)
			b, sb := blockWithVariant(rng, vb)

			checkOp(t, va, vb, "And", And(a, b), naiveIntersect(sa, sb), AndLen(a, b))
			checkOp(t, va, vb, "Or", Or(a, b), naiveUnion(sa, sb), OrLen(a, b))
			checkOp(t, va, vb, "Xor", Xor(a, b), naiveSymDiff(sa, sb), XorLen(a, b))
			checkOp(t, va, vb, "Sub", Sub(a, b), naiveDiff(sa, sb), SubLen(a, b))
		}
	}
}

func checkOp(t *testing.T, va, vb Variant, name string, result *Block, want []uint16, gotLen int) {
	t.Helper()
	result.Check()
	if got := asSlice(result); !sliceEq(got, want) {
		t.Fatalf("%s(%s,%s): materialized result mismatch (got %d values, want %d)", name, va, vb, len(got), len(want))
	}
	if gotLen != len(want) {
		t.Fatalf("%sLen(%s,%s)=%d want %d", name, va, vb, gotLen, len(want))
	}
}

func TestInPlaceOpsMatchFunctional(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	variants := []Variant{Array, Dense, Inverted}
	for _, va := range variants {
		for _, vb := range variants {
			a, _ := blockWithVariant(rng, va)
			b, _ := blockWithVariant(rng, vb)
			want := And(a, b)
			a.AndInPlace(b)
			if !sliceEq(asSlice(a), asSlice(want)) {
				t.Fatalf("AndInPlace(%s,%s) diverges from functional And", va, vb)
			}
		}
	}
}

func TestIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for _, v := range []Variant{Array, Dense, Inverted} {
		b, sorted := blockWithVariant(rng, v)
		if got := asSlice(And(b, b)); !sliceEq(got, sorted) {
			t.Fatalf("%s: A ∩ A != A", v)
		}
		if got := asSlice(Or(b, b)); !sliceEq(got, sorted) {
			t.Fatalf("%s: A ∪ A != A", v)
		}
		if got := asSlice(Xor(b, b)); len(got) != 0 {
			t.Fatalf("%s: A △ A != ∅ (got %d values)", v, len(got))
		}
		if got := asSlice(Sub(b, b)); len(got) != 0 {
			t.Fatalf("%s: A \\ A != ∅ (got %d values)", v, len(got))
		}
	}
}

func TestConvertToRoundTrips(t *testing.T) {
	rng := rand.New(rand.NewSource(55))
	for _, n := range []int{0, 1, 4096, 30000, 61440, 65536} {
		sorted := randomSorted(rng, n, MaxValues)
		for _, target := range []Variant{Array, Dense, Inverted} {
			b := FromSorted(sorted)
			b.convertTo(target)
			if b.variant != target {
				t.Fatalf("n=%d: convertTo(%s) left variant %s", n, target, b.variant)
			}
			if b.card != n {
				t.Fatalf("n=%d target=%s: cardinality changed to %d", n, target, b.card)
			}
			if got := asSlice(b); !sliceEq(got, sorted) {
				t.Fatalf("n=%d target=%s: contents changed across conversion", n, target)
			}
		}
	}
}
