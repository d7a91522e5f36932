package bitmap

// ColorizeParams carries the sprite-level fore/back color state that can
// recolor a bitmap's pixels at draw time, per spec.md §4.2.
type ColorizeParams struct {
	HasFore   bool
	Fore      RGBA32
	ForeIndex uint8
	HasBack   bool
	Back      RGBA32
	BackIndex uint8
}

// RemapEligible reports the remap-eligible inks, per spec.md §4.2: 32-bit Copy(0)/Matte(8)/Transparent(9).
func RemapEligible(ink int, indexed bool) bool {
	if indexed {
		return false // indexed early-paths skip colorize to match the source
	}
	switch ink {
	case 0, 8, 9:
		return true
	default:
		return false
	}
}

// ColorizeDirect32 remaps a 32-bit direct-color pixel according to
// spec.md §4.2: gray = (r+g+b)/3; if both fore+back set, interpolate
// fore->back by gray/255; else if fore only and gray<=1, emit fore.
// With neither fore nor back set, this is a no-op (colorize identity law).
func ColorizeDirect32(px RGBA32, p ColorizeParams) RGBA32 {
	if !p.HasFore && !p.HasBack {
		return px
	}

	gray := (int(px.R) + int(px.G) + int(px.B)) / 3

	if p.HasFore && p.HasBack {
		t := float64(gray) / 255.0
		return RGBA32{
			R: lerp8(p.Fore.R, p.Back.R, t),
			G: lerp8(p.Fore.G, p.Back.G, t),
			B: lerp8(p.Fore.B, p.Back.B, t),
			A: px.A,
		}
	}

	if p.HasFore && gray <= 1 {
		return RGBA32{R: p.Fore.R, G: p.Fore.G, B: p.Fore.B, A: px.A}
	}

	return px
}

// ColorizeIndexed remaps a palette index according to spec.md §4.2's
// indexed variant (applicable only where the caller has determined the ink
// mode is remap-eligible for indexed bitmaps — by default RemapEligible
// returns false for indexed, matching the source's early-path skip).
func ColorizeIndexed(index uint8, maxIndex uint8, p ColorizeParams) uint8 {
	if !p.HasFore && !p.HasBack {
		return index
	}

	if p.HasFore && p.HasBack {
		if maxIndex == 0 {
			return p.ForeIndex
		}
		t := float64(index) / float64(maxIndex)
		return lerp8(p.ForeIndex, p.BackIndex, t)
	}

	if p.HasFore && index == 0 {
		return p.ForeIndex
	}

	return index
}

func lerp8(a, b uint8, t float64) uint8 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	v := float64(a) + (float64(b)-float64(a))*t
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}
