package bitmap

import "directorcore/internal/color"

// Matte is a bit-packed opacity mask: bit i (row-major, MSB-first within a
// byte) is 1 iff pixel i is opaque. Width/Height record the pixel dimensions
// the bits were computed for.
type Matte struct {
	Width, Height int
	Bits          []byte
}

func newMatte(width, height int) *Matte {
	return &Matte{Width: width, Height: height, Bits: make([]byte, (width*height+7)/8)}
}

func (m *Matte) set(x, y int, opaque bool) {
	i := y*m.Width + x
	byteIdx, bit := i/8, uint(7-i%8)
	if opaque {
		m.Bits[byteIdx] |= 1 << bit
	} else {
		m.Bits[byteIdx] &^= 1 << bit
	}
}

// At reports whether pixel (x,y) is marked opaque.
func (m *Matte) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	i := y*m.Width + x
	byteIdx, bit := i/8, uint(7-i%8)
	return m.Bits[byteIdx]&(1<<bit) != 0
}

// BackgroundColor selects the comparison key used for matte flood-fill, per
// spec.md §4.2: an indexed bitmap compares palette index 0 by default, or
// the sprite's bgColor index when ink is BackgroundTransparent/Matte (ink 8);
// a direct-color bitmap compares the RGB of pixel (0,0).
type BackgroundColor struct {
	IsIndexed bool
	Index     uint8  // used when IsIndexed
	RGB       color.RGB // used when !IsIndexed
}

// ComputeMatte performs a 4-connected flood fill from every edge pixel that
// matches bg, per spec.md §4.2. A pixel is opaque (matte bit 1) iff the
// flood never reaches it. For indexed bitmaps the comparison is on stored
// palette indices, never resolved RGB, so visually-similar-but-distinct
// palette entries never accidentally match.
func ComputeMatte(b *Bitmap, bg BackgroundColor) (*Matte, error) {
	b.mu.RLock()
	width, height, depth := b.Width, b.Height, b.StoredDepth
	defer b.mu.RUnlock()

	matches := func(x, y int) bool {
		if bg.IsIndexed {
			off := (y*width + x) * BytesPerPixel(depth)
			return b.Data[off] == bg.Index
		}
		off := (y*width + x) * BytesPerPixel(depth)
		r, g, bl := b.Data[off], b.Data[off+1], b.Data[off+2]
		return r == bg.RGB.R && g == bg.RGB.G && bl == bg.RGB.B
	}

	reached := make([]bool, width*height)
	var queue []int

	push := func(x, y int) {
		i := y*width + x
		if reached[i] {
			return
		}
		if !matches(x, y) {
			return
		}
		reached[i] = true
		queue = append(queue, i)
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := i%width, i/width

		neighbors := [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
		for _, n := range neighbors {
			nx, ny := n[0], n[1]
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			push(nx, ny)
		}
	}

	matte := newMatte(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			matte.set(x, y, !reached[y*width+x])
		}
	}
	return matte, nil
}
