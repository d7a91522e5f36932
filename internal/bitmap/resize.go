package bitmap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// ResizeKernel selects which scaling implementation Resize uses.
type ResizeKernel int

const (
	// KernelNearest and KernelBilinear are backed by golang.org/x/image/draw.
	KernelNearest ResizeKernel = iota
	KernelBilinear
	// KernelLanczos is backed by github.com/nfnt/resize, a softer kernel
	// than x/image/draw's bilinear.
	KernelLanczos
)

func (b *Bitmap) toNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			off := b.offset(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: b.Data[off], G: b.Data[off+1], B: b.Data[off+2], A: b.Data[off+3]})
		}
	}
	return img
}

func fromNRGBA(img *image.NRGBA, originalDepth BitDepth) *Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := &Bitmap{
		Width:         w,
		Height:        h,
		StoredDepth:   Depth32,
		OriginalDepth: originalDepth,
		Data:          make([]byte, w*h*4),
		version:       1,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			off := out.offset(x, y)
			out.Data[off], out.Data[off+1], out.Data[off+2], out.Data[off+3] = c.R, c.G, c.B, c.A
		}
	}
	return out
}

// Resize produces a new bitmap scaled to newWidth x newHeight using the
// selected kernel. Only 32-bit direct-color bitmaps are resized through the
// image libraries; indexed bitmaps are resized with a palette-preserving
// nearest-neighbor sampler that never invents new palette indices.
func Resize(b *Bitmap, newWidth, newHeight int, kernel ResizeKernel) (*Bitmap, error) {
	if newWidth <= 0 || newHeight <= 0 {
		return nil, fmt.Errorf("bitmap: invalid resize target %dx%d", newWidth, newHeight)
	}

	b.mu.RLock()
	depth := b.StoredDepth
	b.mu.RUnlock()

	if depth != Depth32 {
		return resizeIndexedNearest(b, newWidth, newHeight)
	}

	src := b.toNRGBA()

	switch kernel {
	case KernelLanczos:
		resized := resize.Resize(uint(newWidth), uint(newHeight), src, resize.Lanczos3)
		nrgba, ok := resized.(*image.NRGBA)
		if !ok {
			nrgba = image.NewNRGBA(resized.Bounds())
			xdraw.Draw(nrgba, resized.Bounds(), resized, image.Point{}, xdraw.Src)
		}
		return fromNRGBA(nrgba, b.OriginalDepth), nil
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, newWidth, newHeight))
		scaler := xdraw.NearestNeighbor
		if kernel == KernelBilinear {
			scaler = xdraw.BiLinear
		}
		scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
		return fromNRGBA(dst, b.OriginalDepth), nil
	}
}

func resizeIndexedNearest(b *Bitmap, newWidth, newHeight int) (*Bitmap, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out, err := New(newWidth, newHeight, b.StoredDepth, b.OriginalDepth)
	if err != nil {
		return nil, err
	}
	out.Palette = b.Palette

	for y := 0; y < newHeight; y++ {
		srcY := y * b.Height / newHeight
		for x := 0; x < newWidth; x++ {
			srcX := x * b.Width / newWidth
			out.Data[out.offset(x, y)] = b.Data[b.offset(srcX, srcY)]
		}
	}
	return out, nil
}
