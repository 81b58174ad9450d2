package block

import "unsafe"

// denseAlign is the minimum alignment, in bytes, required of a Dense
// payload. The serialized layout (see the root package's serialize.go)
// pads each dense payload to this boundary so that a mapped or
// fully-read-in buffer can be cast directly to a []uint64 view without a
// copy; alignedUint64s gives mutable Blocks the same guarantee in the
// opposite direction so conversions between the two never change the
// alignment contract.
//
// This is enforced by an allocator rather than by hand-picked struct
// padding, because the payload size is dynamic rather than a handful of
// fixed node shapes.
const denseAlign = 32

// alignedUint64s returns a []uint64 of length n whose first element's
// address is a multiple of denseAlign. It over-allocates a byte buffer
// and slices into it at the first aligned offset.
func alignedUint64s(n int) []uint64 {
	byteLen := n * 8
	aligned := AlignedBytes(byteLen)
	return unsafe.Slice((*uint64)(unsafe.Pointer(&aligned[0])), n)
}

// newDenseWords allocates a zeroed, aligned Dense payload.
func newDenseWords() []uint64 {
	return alignedUint64s(DenseWords)
}

// AlignedBytes returns a zeroed []byte of length n whose first byte's
// address is a multiple of denseAlign. Callers that build a buffer
// meant to be cast to []uint64 in place (the root package's serializer
// and loader) use this instead of a plain make([]byte, n) so that a
// Dense payload embedded at a denseAlign-aligned offset within it can
// be overlaid without an unaligned pointer cast.
func AlignedBytes(n int) []byte {
	buf := make([]byte, n+denseAlign)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	offset := (denseAlign - int(addr%denseAlign)) % denseAlign
	return buf[offset : offset+n]
}
