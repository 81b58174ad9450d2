package roaring

import "github.com/TomTonic/roaring/internal/block"

// Intersection returns the intersection of all the given bitmaps. The
// fold order processes operands from smallest to largest Len() so each
// step narrows against the smallest remaining set first, the same
// ordering galloping search uses when picking which side of a merge to
// drive from.
func Intersection(bitmaps ...*Bitmap) *Bitmap {
	if len(bitmaps) == 0 {
		return &Bitmap{}
	}
	order := sortByCardinalityAscending(bitmaps)
	acc := bitmaps[order[0]].Clone()
	for _, idx := range order[1:] {
		if acc.Len() == 0 {
			break
		}
		acc = zipBlocks(&acc.core, &bitmaps[idx].core, block.And)
	}
	return acc
}

// Union returns the union of all the given bitmaps, folded left to
// right.
func Union(bitmaps ...*Bitmap) *Bitmap {
	if len(bitmaps) == 0 {
		return &Bitmap{}
	}
	acc := bitmaps[0].Clone()
	for _, b := range bitmaps[1:] {
		acc = unionBlocks(&acc.core, &b.core)
	}
	return acc
}

// IntersectionLen returns |Intersection(bitmaps...)| without
// materializing the intersection.
func IntersectionLen(bitmaps ...*Bitmap) int {
	if len(bitmaps) == 0 {
		return 0
	}
	if len(bitmaps) == 1 {
		return bitmaps[0].Len()
	}
	order := sortByCardinalityAscending(bitmaps)
	acc := bitmaps[order[0]].Clone()
	for _, idx := range order[1 : len(order)-1] {
		if acc.Len() == 0 {
			return 0
		}
		acc = zipBlocks(&acc.core, &bitmaps[idx].core, block.And)
	}
	return andLenCore(&acc.core, &bitmaps[order[len(order)-1]].core)
}

// UnionLen returns |Union(bitmaps...)| without materializing the union.
func UnionLen(bitmaps ...*Bitmap) int {
	switch len(bitmaps) {
	case 0:
		return 0
	case 1:
		return bitmaps[0].Len()
	}
	acc := bitmaps[0].Clone()
	for _, b := range bitmaps[1 : len(bitmaps)-1] {
		acc = unionBlocks(&acc.core, &b.core)
	}
	return orLenCore(&acc.core, &bitmaps[len(bitmaps)-1].core)
}

func andLenCore(a, b *core) int {
	total := 0
	i, j := 0, 0
	for i < len(a.keys) && j < len(b.keys) {
		switch {
		case a.keys[i] < b.keys[j]:
			i++
		case a.keys[i] > b.keys[j]:
			j++
		default:
			total += block.AndLen(a.blocks[i], b.blocks[j])
			i++
			j++
		}
	}
	return total
}

func orLenCore(a, b *core) int {
	total := 0
	i, j := 0, 0
	for i < len(a.keys) || j < len(b.keys) {
		switch {
		case j >= len(b.keys) || (i < len(a.keys) && a.keys[i] < b.keys[j]):
			total += a.blocks[i].Cardinality()
			i++
		case i >= len(a.keys) || b.keys[j] < a.keys[i]:
			total += b.blocks[j].Cardinality()
			j++
		default:
			total += block.OrLen(a.blocks[i], b.blocks[j])
			i++
			j++
		}
	}
	return total
}

// JaccardDistance returns 1 - |a∩b|/|a∪b|, with the degenerate case of
// two empty bitmaps defined as distance 0 (they are identical, if
// vacuously so).
func JaccardDistance(a, b bitmapLike) float64 {
	union := orLenCore(a.coreRef(), b.coreRef())
	if union == 0 {
		return 0
	}
	inter := andLenCore(a.coreRef(), b.coreRef())
	return 1 - float64(inter)/float64(union)
}
