package compositor

import (
	"directorcore/internal/bitmap"
	"directorcore/internal/color"
)

// Rect is an integer destination rectangle in frame-buffer coordinates.
type Rect struct {
	X, Y, W, H int32
}

// DestRect computes a sprite's destination rectangle from its registration
// point, live loc, and live width/height (spec.md §4.6: "compute the
// destination rect accounting for registration point, flip, stretch"). The
// sprite's loc addresses where the bitmap's registration point lands on
// screen; stretch is implicit in Width/Height already differing from the
// bitmap's native size (the caller samples with nearest-neighbor scaling
// in compositeSprite, rather than pre-resizing the bitmap).
func DestRect(locH, locV, width, height int32, reg bitmap.Point, bitmapW, bitmapH int) Rect {
	scaleX, scaleY := 1.0, 1.0
	if bitmapW > 0 {
		scaleX = float64(width) / float64(bitmapW)
	}
	if bitmapH > 0 {
		scaleY = float64(height) / float64(bitmapH)
	}
	return Rect{
		X: locH - int32(float64(reg.X)*scaleX),
		Y: locV - int32(float64(reg.Y)*scaleY),
		W: width,
		H: height,
	}
}

// Framebuffer is the CPU reference back buffer: a dense RGB grid sprites
// are composited into in channel (z) order, mirroring the teacher's
// OutputBuffer.
type Framebuffer struct {
	Width, Height int
	Pixels        []color.RGB
}

// NewFramebuffer allocates a cleared width x height frame buffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pixels: make([]color.RGB, width*height)}
}

// Clear fills every pixel with bg, the stage background color.
func (f *Framebuffer) Clear(bg color.RGB) {
	for i := range f.Pixels {
		f.Pixels[i] = bg
	}
}

func (f *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// At returns the pixel at (x,y), or the zero RGB if out of bounds.
func (f *Framebuffer) At(x, y int) color.RGB {
	if !f.inBounds(x, y) {
		return color.RGB{}
	}
	return f.Pixels[y*f.Width+x]
}

func (f *Framebuffer) set(x, y int, c color.RGB) {
	if !f.inBounds(x, y) {
		return
	}
	f.Pixels[y*f.Width+x] = c
}

// SpriteView is the compositor-facing projection of one visible sprite: its
// destination rect, source bitmap, and ink-mode parameters. sprite.Machine
// owns the authoritative Sprite state; callers build a SpriteView per
// visible sprite each frame from it plus the cast member's resolved bitmap.
type SpriteView struct {
	Channel int // z-order: lower channel composites first (spec.md §3 locZ)
	Rect    Rect
	Bitmap  *bitmap.Bitmap
	Palette *color.Palette
	Ink     Ink
	Blend   int32 // percentage, 0-100 (keyframe.ConvertBlendToPercentage's output domain)
	BgColor color.RGB
	FlipH   bool
	FlipV   bool
	Colorize bitmap.ColorizeParams
}

// Compositor owns the CPU reference frame buffer and applies every visible
// sprite's ink operator to it once per frame, mirroring the teacher's
// dot-stepped StepPPU/renderDot loop (internal/ppu/scanline.go) generalized
// from fixed tile layers to independently positioned, independently sized
// sprite rectangles.
type Compositor struct {
	FB *Framebuffer
}

// NewCompositor allocates a compositor with a width x height frame buffer.
func NewCompositor(width, height int) *Compositor {
	return &Compositor{FB: NewFramebuffer(width, height)}
}

// StepFrame composites every visible sprite in the order given, so later
// sprites draw on top; callers pass them back to front (ascending channel,
// matching Director's z-order).
func (c *Compositor) StepFrame(sprites []SpriteView) {
	for _, sv := range sprites {
		c.compositeSprite(sv)
	}
}

// compositeSprite walks sv's destination rect dot by dot, the same
// structure as the teacher's renderDot scanline loop, sampling the source
// bitmap with nearest-neighbor stretch and applying sv.Ink at each pixel.
func (c *Compositor) compositeSprite(sv SpriteView) {
	if sv.Bitmap == nil || sv.Rect.W <= 0 || sv.Rect.H <= 0 {
		return
	}
	bw, bh := sv.Bitmap.Width, sv.Bitmap.Height
	if bw == 0 || bh == 0 {
		return
	}
	blendFrac := float64(sv.Blend) / 100.0

	for dy := int32(0); dy < sv.Rect.H; dy++ {
		screenY := int(sv.Rect.Y + dy)
		if screenY < 0 || screenY >= c.FB.Height {
			continue
		}
		srcY := int(dy)
		if sv.FlipV {
			srcY = int(sv.Rect.H) - 1 - srcY
		}
		by := srcY * bh / int(sv.Rect.H)

		for dx := int32(0); dx < sv.Rect.W; dx++ {
			screenX := int(sv.Rect.X + dx)
			if screenX < 0 || screenX >= c.FB.Width {
				continue
			}
			srcX := int(dx)
			if sv.FlipH {
				srcX = int(sv.Rect.W) - 1 - srcX
			}
			bx := srcX * bw / int(sv.Rect.W)

			px, isKeyMatch := resolvePixel(sv, bx, by)
			dst := c.FB.At(screenX, screenY)
			c.FB.set(screenX, screenY, ApplyInk(sv.Ink, px, dst, sv.BgColor, blendFrac, isKeyMatch))
		}
	}
}

// resolvePixel samples sv.Bitmap at (bx,by), applying colorize where
// eligible and deriving the pixel's alpha/transparency the way
// original_source's GPU module documents for the score-sprite path: 32-bit
// bitmaps with UseAlpha trust the embedded alpha outright (matte is never
// computed); everything else falls back to the bitmap's precomputed matte
// (or fully opaque, if none was computed) for inks 0/8, and full opacity
// otherwise. isKeyMatch reports whether this pixel counts as "equal to
// bg" for the color-keyed inks (36/7/3): indexed bitmaps under ink 36 key
// directly on palette index 0 (no flood fill, per spec.md §4.6); every
// other case compares resolved RGB.
func resolvePixel(sv SpriteView, bx, by int) (Pixel, bool) {
	indexed := sv.Bitmap.StoredDepth != bitmap.Depth32

	if indexed {
		idx, err := sv.Bitmap.GetIndex(bx, by)
		if err != nil {
			return Pixel{}, false
		}
		rgb := color.Resolve(color.PaletteIndex(idx), sv.Palette, nil, int(sv.Bitmap.StoredDepth))

		alpha := uint8(255)
		if sv.Bitmap.TrimWhiteSpace && (sv.Ink == InkCopy || sv.Ink == InkMatte) {
			if m := sv.Bitmap.Matte(); m != nil && !m.At(bx, by) {
				alpha = 0
			}
		}

		isKeyMatch := rgb == sv.BgColor
		if sv.Ink == InkBackgroundTransparent {
			isKeyMatch = idx == 0
		}
		return Pixel{RGB: rgb, A: alpha}, isKeyMatch
	}

	px, err := sv.Bitmap.GetRGBA32(bx, by)
	if err != nil {
		return Pixel{}, false
	}
	if bitmap.RemapEligible(int(sv.Ink), false) {
		px = bitmap.ColorizeDirect32(px, sv.Colorize)
	}

	alpha := uint8(255)
	switch {
	case sv.Bitmap.UseAlpha:
		alpha = px.A
	case sv.Bitmap.TrimWhiteSpace && (sv.Ink == InkCopy || sv.Ink == InkMatte):
		if m := sv.Bitmap.Matte(); m != nil && !m.At(bx, by) {
			alpha = 0
		}
	}

	rgb := color.RGB{R: px.R, G: px.G, B: px.B}
	return Pixel{RGB: rgb, A: alpha}, rgb == sv.BgColor
}
