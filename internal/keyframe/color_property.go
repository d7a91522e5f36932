package keyframe

import (
	"directorcore/internal/color"
	"directorcore/internal/scorechunk"
)

// extractForeColor resolves the fore-color reference per the record's
// ColorFlag: ColorBothPalette and ColorBackRGB store fore as a palette
// index, ColorForeRGB and ColorBothRGB store it as direct RGB.
func extractForeColor(rec scorechunk.SpriteRecord) color.Ref {
	switch rec.ColorFlag {
	case scorechunk.ColorForeRGB, scorechunk.ColorBothRGB:
		return color.Direct(rec.ForeColor, rec.ForeColorG, rec.ForeColorB)
	default:
		return color.PaletteIndex(rec.ForeColor)
	}
}

// extractBackColor resolves the back-color reference per the record's
// ColorFlag: ColorBothPalette and ColorForeRGB store back as a palette
// index, ColorBackRGB and ColorBothRGB store it as direct RGB.
func extractBackColor(rec scorechunk.SpriteRecord) color.Ref {
	switch rec.ColorFlag {
	case scorechunk.ColorBackRGB, scorechunk.ColorBothRGB:
		return color.Direct(rec.BackColor, rec.BackColorG, rec.BackColorB)
	default:
		return color.PaletteIndex(rec.BackColor)
	}
}

// isStandardDefaultColor reports whether ref is one of the two palette
// indices Director uses for sprite initialization (as opposed to an
// author-chosen color that happens to be applied across every frame).
func isStandardDefaultColor(ref color.Ref) bool {
	return ref.Kind == color.RefPaletteIndex && (ref.Index == 0 || ref.Index == 255)
}

type foreColorProperty struct{}

// ForeColorProperty is Property[color.Ref] over a sprite's fore color.
// UseBaselineSkip is true: a color span only counts as animating when some
// frame differs from the sprite's first-frame baseline, so a sprite that
// keeps the same color all the way through never produces a spurious
// single-keyframe "track".
var ForeColorProperty Property[color.Ref] = foreColorProperty{}

func (foreColorProperty) Extract(rec scorechunk.SpriteRecord) (color.Ref, bool) {
	return extractForeColor(rec), true
}

func (foreColorProperty) ResolveWithPrev(raw color.Ref, prev *color.Ref) color.Ref {
	// A palette index of 0 means "no change this frame"; carry the
	// previous resolved color forward instead of resetting to black.
	if raw.Kind == color.RefPaletteIndex && raw.Index == 0 && prev != nil {
		return *prev
	}
	return raw
}

func (foreColorProperty) Default() color.Ref { return color.PaletteIndex(255) }
func (foreColorProperty) IsStandardDefault(v color.Ref) bool { return isStandardDefaultColor(v) }
func (foreColorProperty) UseBaselineSkip() bool               { return true }

type backColorProperty struct{}

// BackColorProperty is Property[color.Ref] over a sprite's back color.
var BackColorProperty Property[color.Ref] = backColorProperty{}

func (backColorProperty) Extract(rec scorechunk.SpriteRecord) (color.Ref, bool) {
	return extractBackColor(rec), true
}

func (backColorProperty) ResolveWithPrev(raw color.Ref, prev *color.Ref) color.Ref {
	if raw.Kind == color.RefPaletteIndex && raw.Index == 0 && prev != nil {
		return *prev
	}
	return raw
}

func (backColorProperty) Default() color.Ref { return color.PaletteIndex(0) }
func (backColorProperty) IsStandardDefault(v color.Ref) bool { return isStandardDefaultColor(v) }
func (backColorProperty) UseBaselineSkip() bool               { return true }
