package compositor

import (
	"testing"

	"directorcore/internal/bitmap"
	"directorcore/internal/color"
)

func TestDestRectAppliesRegistrationPointAndStretch(t *testing.T) {
	r := DestRect(100, 50, 20, 10, bitmap.Point{X: 5, Y: 5}, 10, 10)
	// stretched 2x horizontally, 1x vertically: reg point offset scales too.
	if r.X != 90 || r.Y != 45 {
		t.Fatalf("DestRect = %+v, want X=90,Y=45", r)
	}
	if r.W != 20 || r.H != 10 {
		t.Fatalf("DestRect size = %+v, want 20x10", r)
	}
}

func TestFramebufferClearAndAt(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	bg := color.RGB{R: 1, G: 2, B: 3}
	fb.Clear(bg)
	if fb.At(0, 0) != bg || fb.At(3, 3) != bg {
		t.Fatal("Clear should fill every pixel")
	}
	if fb.At(-1, 0) != (color.RGB{}) || fb.At(4, 4) != (color.RGB{}) {
		t.Fatal("out-of-bounds At should return the zero value")
	}
}

func solidIndexedBitmap(t *testing.T, w, h int, idx uint8, pal *color.Palette) *bitmap.Bitmap {
	t.Helper()
	b, err := bitmap.New(w, h, bitmap.Depth8, bitmap.Depth8)
	if err != nil {
		t.Fatal(err)
	}
	b.SetPalette(pal)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if err := b.SetIndex(x, y, idx); err != nil {
				t.Fatal(err)
			}
		}
	}
	return b
}

func TestStepFrameCompositesOpaqueIndexedSprite(t *testing.T) {
	pal := &color.Palette{}
	pal.Entries[7] = color.RGB{R: 10, G: 20, B: 30}
	src := solidIndexedBitmap(t, 2, 2, 7, pal)

	c := NewCompositor(4, 4)
	c.FB.Clear(color.RGB{R: 255, G: 255, B: 255})

	sv := SpriteView{
		Channel: 6,
		Rect:    Rect{X: 1, Y: 1, W: 2, H: 2},
		Bitmap:  src,
		Palette: pal,
		Ink:     InkCopy,
		Blend:   100,
	}
	c.StepFrame([]SpriteView{sv})

	if got := c.FB.At(1, 1); got != pal.Entries[7] {
		t.Fatalf("FB.At(1,1) = %+v, want %+v", got, pal.Entries[7])
	}
	if got := c.FB.At(0, 0); got != (color.RGB{R: 255, G: 255, B: 255}) {
		t.Fatalf("pixel outside sprite rect should be untouched, got %+v", got)
	}
}

func TestStepFrameRespectsChannelOrderTopmostWins(t *testing.T) {
	palA := &color.Palette{}
	palA.Entries[1] = color.RGB{R: 100, G: 0, B: 0}
	palB := &color.Palette{}
	palB.Entries[1] = color.RGB{R: 0, G: 100, B: 0}

	a := solidIndexedBitmap(t, 1, 1, 1, palA)
	b := solidIndexedBitmap(t, 1, 1, 1, palB)

	c := NewCompositor(2, 2)
	back := SpriteView{Channel: 6, Rect: Rect{X: 0, Y: 0, W: 1, H: 1}, Bitmap: a, Palette: palA, Ink: InkCopy, Blend: 100}
	front := SpriteView{Channel: 7, Rect: Rect{X: 0, Y: 0, W: 1, H: 1}, Bitmap: b, Palette: palB, Ink: InkCopy, Blend: 100}

	// Sprites are composited in the order given; callers are responsible
	// for sorting back-to-front by channel before calling StepFrame.
	c.StepFrame([]SpriteView{back, front})
	if got := c.FB.At(0, 0); got != palB.Entries[1] {
		t.Fatalf("later sprite in draw order should win, got %+v", got)
	}
}

func TestCompositeSpriteFlipHMirrorsSampling(t *testing.T) {
	b, err := bitmap.New(2, 1, bitmap.Depth8, bitmap.Depth8)
	if err != nil {
		t.Fatal(err)
	}
	pal := &color.Palette{}
	pal.Entries[1] = color.RGB{R: 10, G: 10, B: 10}
	pal.Entries[2] = color.RGB{R: 20, G: 20, B: 20}
	b.SetPalette(pal)
	b.SetIndex(0, 0, 1)
	b.SetIndex(1, 0, 2)

	c := NewCompositor(2, 1)
	sv := SpriteView{Rect: Rect{X: 0, Y: 0, W: 2, H: 1}, Bitmap: b, Palette: pal, Ink: InkCopy, Blend: 100, FlipH: true}
	c.StepFrame([]SpriteView{sv})

	if got := c.FB.At(0, 0); got != pal.Entries[2] {
		t.Fatalf("FlipH should mirror sampling, FB.At(0,0) = %+v, want index-2 color", got)
	}
	if got := c.FB.At(1, 0); got != pal.Entries[1] {
		t.Fatalf("FlipH should mirror sampling, FB.At(1,0) = %+v, want index-1 color", got)
	}
}
