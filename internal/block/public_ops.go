package block

// And returns a new Block holding the intersection of a and b.
func And(a, b *Block) *Block { return computeAnd(a, b).toBlock() }

// Or returns a new Block holding the union of a and b.
func Or(a, b *Block) *Block { return computeOr(a, b).toBlock() }

// Xor returns a new Block holding the symmetric difference of a and b.
func Xor(a, b *Block) *Block { return computeXor(a, b).toBlock() }

// Sub returns a new Block holding a minus b.
func Sub(a, b *Block) *Block { return computeSub(a, b).toBlock() }

// AndLen returns |a ∩ b| without materializing the result.
func AndLen(a, b *Block) int { return computeAndLen(a, b) }

// OrLen returns |a ∪ b| without materializing the result.
func OrLen(a, b *Block) int { return computeOrLen(a, b) }

// XorLen returns |a △ b| without materializing the result.
func XorLen(a, b *Block) int { return computeXorLen(a, b) }

// SubLen returns |a \ b| without materializing the result.
func SubLen(a, b *Block) int { return computeSubLen(a, b) }

// AndInPlace replaces a's contents with a ∩ b.
func (a *Block) AndInPlace(b *Block) { a.assign(computeAnd(a, b)) }

// OrInPlace replaces a's contents with a ∪ b.
func (a *Block) OrInPlace(b *Block) { a.assign(computeOr(a, b)) }

// XorInPlace replaces a's contents with a △ b.
func (a *Block) XorInPlace(b *Block) { a.assign(computeXor(a, b)) }

// SubInPlace replaces a's contents with a \ b.
func (a *Block) SubInPlace(b *Block) { a.assign(computeSub(a, b)) }

func (b *Block) assign(r result) {
	b.variant = r.variant
	b.arr = r.arr
	b.dense = r.dense
	b.card = r.card
}
