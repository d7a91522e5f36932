// Package bitmap implements the pixel container, matte computation, and
// colorize remap described for Director bitmap cast members. Bitmaps are
// owned by a Registry keyed by opaque Handle; sprites and cast members
// reference bitmaps by handle, never by pointer, matching the teacher's
// handle-keyed register-bank conventions (internal/memory/bus.go) adapted
// from an I/O bus to a pixel-asset store.
package bitmap

import (
	"fmt"
	"sync"

	"directorcore/internal/color"
)

// Point is an integer 2-D point (used for registration points).
type Point struct {
	X, Y int
}

// Handle is an opaque reference into a Registry.
type Handle uint32

// BitDepth enumerates the supported stored pixel depths.
type BitDepth int

const (
	Depth1  BitDepth = 1
	Depth2  BitDepth = 2
	Depth4  BitDepth = 4
	Depth8  BitDepth = 8
	Depth16 BitDepth = 16
	Depth32 BitDepth = 32
)

func (d BitDepth) valid() bool {
	switch d {
	case Depth1, Depth2, Depth4, Depth8, Depth16, Depth32:
		return true
	}
	return false
}

// BytesPerPixel returns the number of bytes one stored pixel occupies.
func BytesPerPixel(d BitDepth) int {
	switch d {
	case Depth1, Depth2, Depth4, Depth8:
		return 1
	case Depth16:
		return 2
	case Depth32:
		return 4
	default:
		return 0
	}
}

// Bitmap is the pixel container described in spec.md §3. Width/height are in
// pixels; Data holds width*height*BytesPerPixel(StoredDepth) bytes in
// row-major order. Version is bumped on every mutation so downstream caches
// (e.g. a GPU texture cache) can detect staleness cheaply.
type Bitmap struct {
	mu sync.RWMutex

	Width, Height    int
	StoredDepth      BitDepth
	OriginalDepth    BitDepth
	AlphaDepth       int
	Data             []byte
	Palette          *color.Palette
	matte            *Matte
	UseAlpha         bool // only meaningful for 32-bit bitmaps
	TrimWhiteSpace   bool
	RegPoint         Point
	version          uint64
}

// New allocates a zeroed bitmap of the given dimensions and stored depth.
// Returns an error if depth is not one of the supported values (invariant i).
func New(width, height int, storedDepth, originalDepth BitDepth) (*Bitmap, error) {
	if !storedDepth.valid() {
		return nil, fmt.Errorf("bitmap: invalid stored bit depth %d", storedDepth)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bitmap: invalid dimensions %dx%d", width, height)
	}
	return &Bitmap{
		Width:         width,
		Height:        height,
		StoredDepth:   storedDepth,
		OriginalDepth: originalDepth,
		Data:          make([]byte, width*height*BytesPerPixel(storedDepth)),
		version:       1,
	}, nil
}

// Version returns the current mutation counter (invariant iv).
func (b *Bitmap) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

func (b *Bitmap) bump() {
	b.version++
}

// bpp returns bytes-per-pixel for this bitmap's stored depth.
func (b *Bitmap) bpp() int { return BytesPerPixel(b.StoredDepth) }

func (b *Bitmap) offset(x, y int) int {
	return (y*b.Width + x) * b.bpp()
}

// inBounds reports whether (x,y) addresses a pixel in this bitmap.
func (b *Bitmap) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// GetIndex returns the raw stored value at (x,y) for 1/2/4/8-bit indexed
// bitmaps (palette index) interpreted as a single byte.
func (b *Bitmap) GetIndex(x, y int) (uint8, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.inBounds(x, y) {
		return 0, fmt.Errorf("bitmap: (%d,%d) out of bounds %dx%d", x, y, b.Width, b.Height)
	}
	return b.Data[b.offset(x, y)], nil
}

// SetIndex sets the raw stored value at (x,y) for indexed bitmaps and bumps
// the version counter.
func (b *Bitmap) SetIndex(x, y int, idx uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inBounds(x, y) {
		return fmt.Errorf("bitmap: (%d,%d) out of bounds %dx%d", x, y, b.Width, b.Height)
	}
	b.Data[b.offset(x, y)] = idx
	b.bump()
	return nil
}

// RGBA32 is a direct-color pixel with embedded alpha, used for 32-bit
// bitmaps.
type RGBA32 struct {
	R, G, B, A uint8
}

// GetRGBA32 returns the pixel at (x,y) for a 32-bit direct-color bitmap.
func (b *Bitmap) GetRGBA32(x, y int) (RGBA32, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.StoredDepth != Depth32 {
		return RGBA32{}, fmt.Errorf("bitmap: GetRGBA32 requires 32-bit depth, got %d", b.StoredDepth)
	}
	if !b.inBounds(x, y) {
		return RGBA32{}, fmt.Errorf("bitmap: (%d,%d) out of bounds %dx%d", x, y, b.Width, b.Height)
	}
	off := b.offset(x, y)
	px := RGBA32{R: b.Data[off], G: b.Data[off+1], B: b.Data[off+2], A: b.Data[off+3]}
	return px, nil
}

// SetRGBA32 sets the pixel at (x,y) for a 32-bit direct-color bitmap.
func (b *Bitmap) SetRGBA32(x, y int, px RGBA32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.StoredDepth != Depth32 {
		return fmt.Errorf("bitmap: SetRGBA32 requires 32-bit depth, got %d", b.StoredDepth)
	}
	if !b.inBounds(x, y) {
		return fmt.Errorf("bitmap: (%d,%d) out of bounds %dx%d", x, y, b.Width, b.Height)
	}
	off := b.offset(x, y)
	b.Data[off], b.Data[off+1], b.Data[off+2], b.Data[off+3] = px.R, px.G, px.B, px.A
	b.bump()
	return nil
}

// FillRect fills the rectangle [x0,y0)-[x1,y1) with the given index value
// (indexed bitmaps) or RGBA (direct-color). Out-of-range bounds are clamped.
func (b *Bitmap) FillRect(x0, y0, x1, y1 int, idx uint8, rgba RGBA32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > b.Width {
		x1 = b.Width
	}
	if y1 > b.Height {
		y1 = b.Height
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			off := b.offset(x, y)
			if b.StoredDepth == Depth32 {
				b.Data[off], b.Data[off+1], b.Data[off+2], b.Data[off+3] = rgba.R, rgba.G, rgba.B, rgba.A
			} else {
				b.Data[off] = idx
			}
		}
	}
	b.bump()
}

// SetPalette rebinds the bitmap's palette reference and bumps the version
// counter (palette rebinding is a mutation per invariant iv).
func (b *Bitmap) SetPalette(p *color.Palette) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Palette = p
	b.bump()
}

// Matte returns the precomputed matte, if any.
func (b *Bitmap) Matte() *Matte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.matte
}

// SetMatte installs a precomputed matte. Returns an error if the matte's
// dimensions don't match the bitmap's (invariant iii).
func (b *Bitmap) SetMatte(m *Matte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m != nil && (m.Width != b.Width || m.Height != b.Height) {
		return fmt.Errorf("bitmap: matte dimensions %dx%d do not match bitmap %dx%d", m.Width, m.Height, b.Width, b.Height)
	}
	b.matte = m
	b.bump()
	return nil
}
