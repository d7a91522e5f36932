package bitmap

import (
	"bytes"
	"fmt"
	"image"
	stdbmp "image/color"
	"io"
	"os"

	"directorcore/internal/color"
	"github.com/jsummers/gobmp"
	xbmp "golang.org/x/image/bmp"
)

// LoadPreviewBMP decodes a host-authored preview bitmap (used by cast
// members that ship a BMP preview alongside compiled Director data) into a
// 32-bit direct-color Bitmap. golang.org/x/image/bmp is tried first; a few
// legacy OS/2-style BMP variants it rejects are retried with gobmp, which
// tolerates a wider range of historical BMP headers.
func LoadPreviewBMP(r io.Reader) (*Bitmap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: read preview bmp: %w", err)
	}

	img, err := xbmp.Decode(bytes.NewReader(data))
	if err != nil {
		img, err = gobmp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("bitmap: decode preview bmp: %w", err)
		}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out, allocErr := New(w, h, Depth32, Depth32)
	if allocErr != nil {
		return nil, allocErr
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r16, g16, b16, a16 := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := out.offset(x, y)
			out.Data[off] = uint8(r16 >> 8)
			out.Data[off+1] = uint8(g16 >> 8)
			out.Data[off+2] = uint8(b16 >> 8)
			out.Data[off+3] = uint8(a16 >> 8)
		}
	}
	return out, nil
}

// DumpBMP exports a reconstructed bitmap (and, if present, its matte baked
// into the alpha channel) as a BMP file for visual inspection during
// debugging — the Go equivalent of the teacher's cycle-log dump, but for
// pixels instead of registers.
func DumpBMP(path string, b *Bitmap) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			var px stdbmp.NRGBA
			if b.StoredDepth == Depth32 {
				off := b.offset(x, y)
				px = stdbmp.NRGBA{R: b.Data[off], G: b.Data[off+1], B: b.Data[off+2], A: b.Data[off+3]}
			} else {
				idx := b.Data[b.offset(x, y)]
				rgb := color.RGB{}
				if b.Palette != nil {
					rgb = b.Palette.Entries[idx]
				}
				alpha := uint8(255)
				if b.matte != nil && !b.matte.At(x, y) {
					alpha = 0
				}
				px = stdbmp.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: alpha}
			}
			img.SetNRGBA(x, y, px)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bitmap: create bmp dump: %w", err)
	}
	defer f.Close()

	if err := gobmp.Encode(f, img); err != nil {
		return fmt.Errorf("bitmap: encode bmp dump: %w", err)
	}
	return nil
}
