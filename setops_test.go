package roaring

import (
	"math/rand"
	"testing"
)

func TestIntersectionLenAndUnionLenMatchMaterialized(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	randVals := func(n int) []uint32 {
		out := make([]uint32, n)
		for i := range out {
			out[i] = uint32(rng.Intn(50000))
		}
		return out
	}
	bitmaps := make([]*Bitmap, 5)
	for i := range bitmaps {
		bitmaps[i] = mustNew(t, randVals(200+i*50)...)
	}

	gotInter := IntersectionLen(bitmaps...)
	wantInter := Intersection(bitmaps...).Len()
	if gotInter != wantInter {
		t.Fatalf("IntersectionLen=%d want %d", gotInter, wantInter)
	}

	gotUnion := UnionLen(bitmaps...)
	wantUnion := Union(bitmaps...).Len()
	if gotUnion != wantUnion {
		t.Fatalf("UnionLen=%d want %d", gotUnion, wantUnion)
	}
}

func TestJaccardDistanceBounds(t *testing.T) {
	a := mustNew(t, 1, 2, 3, 4)
	b := mustNew(t, 3, 4, 5, 6)
	d := JaccardDistance(a, b)
	want := 1 - 2.0/6.0
	if d-want > 1e-9 || d-want < -1e-9 {
		t.Fatalf("JaccardDistance=%f want %f", d, want)
	}
	same := JaccardDistance(a, a)
	if same != 0 {
		t.Fatalf("JaccardDistance(A,A)=%f want 0", same)
	}
	empty1, empty2 := mustNew(t), mustNew(t)
	if d := JaccardDistance(empty1, empty2); d != 0 {
		t.Fatalf("JaccardDistance(∅,∅)=%f want 0", d)
	}
}

func TestIntersectionEmptyArgs(t *testing.T) {
	if got := Intersection().Len(); got != 0 {
		t.Fatalf("Intersection()=%d want 0", got)
	}
	if got := Union().Len(); got != 0 {
		t.Fatalf("Union()=%d want 0", got)
	}
}
