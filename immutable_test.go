package roaring

import "testing"

func TestImmutableBitmapReadOnlyOps(t *testing.T) {
	a := mustNew(t, 1, 2, 3, 70000, 1<<20)
	data, err := Serialize(a)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Deserialize(data)
	if err != nil {
		t.Fatal(err)
	}

	if m.Len() != a.Len() {
		t.Fatalf("Len=%d want %d", m.Len(), a.Len())
	}
	if !m.Contains(70000) {
		t.Fatal("missing 70000")
	}
	min, _ := m.Min()
	max, _ := m.Max()
	if min != 1 || max != 1<<20 {
		t.Fatalf("min=%d max=%d", min, max)
	}
	if !m.Equal(a) {
		t.Fatal("ImmutableBitmap should equal its source Bitmap")
	}

	back := m.ToBitmap()
	back.Add(999999)
	if m.Contains(999999) {
		t.Fatal("mutating ToBitmap() result should not affect the overlay")
	}
}

func TestImmutableBitmapSetAlgebraProducesMutableBitmap(t *testing.T) {
	a := mustNew(t, 1, 2, 3, 4)
	data, err := Serialize(a)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Deserialize(data)
	if err != nil {
		t.Fatal(err)
	}
	b := mustNew(t, 3, 4, 5, 6)

	got := m.And(b)
	got.Add(7) // proves got is an owned, mutable Bitmap
	want := mustNew(t, 3, 4, 7)
	if !got.Equal(want) {
		t.Fatalf("immutable And result mismatch: %v", got.ToSlice())
	}
}

func TestImmutableBitmapClamp(t *testing.T) {
	a := mustNew(t, 1, 2, 3, 100000)
	data, err := Serialize(a)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Deserialize(data)
	if err != nil {
		t.Fatal(err)
	}
	got := m.Clamp(0, 65536)
	want := mustNew(t, 1, 2, 3)
	if !got.Equal(want) {
		t.Fatalf("clamp mismatch: %v", got.ToSlice())
	}
}

func TestImmutableBitmapSubsetDisjoint(t *testing.T) {
	a := mustNew(t, 1, 2, 3)
	data, err := Serialize(a)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Deserialize(data)
	if err != nil {
		t.Fatal(err)
	}
	superset := mustNew(t, 1, 2, 3, 4)
	disjointBitmap := mustNew(t, 500, 600)

	if !m.Subset(superset) {
		t.Fatal("m should be a subset of superset")
	}
	if !m.Disjoint(disjointBitmap) {
		t.Fatal("m and disjointBitmap should be disjoint")
	}
}
