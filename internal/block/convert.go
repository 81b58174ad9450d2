package block

// convertTo materializes the Block's current contents in the target
// variant and switches to it. rebalance and result.normalize call it
// with the ideal variant for the current cardinality.
func (b *Block) convertTo(target Variant) {
	if target == b.variant {
		return
	}
	switch {
	case b.variant == Array && target == Dense:
		b.dense = denseFromSorted(b.arr)
		b.arr = nil
	case b.variant == Array && target == Inverted:
		b.arr = complementSorted(b.arr)
	case b.variant == Dense && target == Array:
		b.arr = collectSetBits(b.dense)
		b.dense = nil
	case b.variant == Dense && target == Inverted:
		b.arr = collectUnsetBits(b.dense)
		b.dense = nil
	case b.variant == Inverted && target == Array:
		b.arr = complementSorted(b.arr)
	case b.variant == Inverted && target == Dense:
		b.dense = denseFromAbsent(b.arr)
		b.arr = nil
	default:
		panic("block: unreachable variant conversion")
	}
	b.variant = target
}
