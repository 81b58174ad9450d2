package roaring

import (
	"os"

	"github.com/TomTonic/roaring/internal/block"
)

// Loader owns the byte buffer a zero-copy bitmap or multi-bitmap was
// parsed from. It reads the whole file with os.ReadFile and copies it
// into a denseAlign-aligned buffer rather than calling mmap(2): Go's
// garbage collector does not coordinate with memory-mapped regions
// without an extra pinning layer, and the copy gives every Dense block
// overlaid from this buffer the same alignment guarantee Serialize's
// own output has, so the unsafe []uint64 cast in block.Overlay is never
// done on a misaligned pointer. Close is a no-op kept only so Loader
// satisfies io.Closer for callers that treat loaded bitmaps and real
// memory-mapped files interchangeably.
type Loader struct {
	buf []byte
}

// Close releases no resources; it exists to satisfy io.Closer.
func (l *Loader) Close() error { return nil }

// readAligned reads path fully and returns its contents copied into a
// freshly allocated, denseAlign-aligned buffer.
func readAligned(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, resourceExhaustedErrorf("reading %s: %v", path, err)
	}
	aligned := block.AlignedBytes(len(data))
	copy(aligned, data)
	return aligned, nil
}

// LoadBitmap reads path and parses it as a single serialized bitmap.
func LoadBitmap(path string) (*ImmutableBitmap, *Loader, error) {
	buf, err := readAligned(path)
	if err != nil {
		return nil, nil, err
	}
	bm, err := Deserialize(buf)
	if err != nil {
		return nil, nil, err
	}
	return bm, &Loader{buf: buf}, nil
}

// LoadMultiBitmap reads path and parses it as a packed multi-bitmap
// file.
func LoadMultiBitmap(path string) (*MultiBitmap, *Loader, error) {
	buf, err := readAligned(path)
	if err != nil {
		return nil, nil, err
	}
	mb, err := DeserializeMulti(buf)
	if err != nil {
		return nil, nil, err
	}
	return mb, &Loader{buf: buf}, nil
}
