// Package gpu describes the shader-parity data contract a host's GPU
// surface must implement: the CPU compositor (internal/compositor) and a
// real GLSL/WGSL shader must agree on the same per-pixel result for every
// ink. No shader compiler runs here — these are the plain Go structs a
// host packages into a texture upload and a draw call, grounded on
// original_source's WebGL2 renderer (bitmap_to_rgba's matte/colorize
// baking and the ink-to-blend-equation table).
package gpu

import "directorcore/internal/color"

// TextureUpload is the pixel payload a host uploads once per distinct
// (bitmap version, ink, colorize, sprite bgColor) combination — matte is
// baked into the alpha channel here so the shader itself never computes a
// flood fill, and colorize is baked in for 32-bit bitmaps only (indexed
// bitmaps skip colorize under inks 0/8/36, matching the CPU early paths in
// compositor.resolvePixel).
type TextureUpload struct {
	Width, Height int
	// RGBA is width*height*4 bytes, row-major, alpha already carrying the
	// authoritative transparency (embedded 32-bit alpha, a baked matte, or
	// fully opaque) for the ink this upload was built for.
	RGBA []byte
}

// ShaderParams is the per-draw-call uniform block: everything the shader
// needs beyond the bound texture to reproduce compositor.ApplyInk exactly.
type ShaderParams struct {
	Ink        int32
	BlendFrac  float32
	BgColor    color.RGB
	// ColorKeyBaked reports whether TextureUpload already resolved the
	// color-keyed inks' transparency (ink 36 indexed path bakes the key
	// into alpha at upload time); when false the shader must perform its
	// own bg compare, mirroring compositor.resolvePixel's isKeyMatch.
	ColorKeyBaked bool
}

// BuildTextureUpload packs rgba (already matte-baked and, for 32-bit
// bitmaps, colorize-baked by the caller) into the upload payload. It does
// no pixel math itself — baking is the CPU compositor's resolvePixel logic,
// run once per texture rather than once per frame.
func BuildTextureUpload(width, height int, rgba []byte) TextureUpload {
	return TextureUpload{Width: width, Height: height, RGBA: rgba}
}
