package keyframe

import (
	"testing"

	"directorcore/internal/color"
	"directorcore/internal/scorechunk"
)

func TestPositionResolveWithPrevCarriesZeroAxis(t *testing.T) {
	prev := Position{X: 10, Y: 20}
	got := PositionProperty.ResolveWithPrev(Position{X: 0, Y: 30}, &prev)
	if got != (Position{X: 10, Y: 30}) {
		t.Fatalf("got %+v", got)
	}
}

func TestPositionResolveWithPrevNoPrevReturnsRaw(t *testing.T) {
	got := PositionProperty.ResolveWithPrev(Position{X: 0, Y: 5}, nil)
	if got != (Position{X: 0, Y: 5}) {
		t.Fatalf("got %+v", got)
	}
}

func TestSizeResolveWithPrevCarriesZeroAxis(t *testing.T) {
	prev := Size{W: 100, H: 50}
	got := SizeProperty.ResolveWithPrev(Size{W: 0, H: 75}, &prev)
	if got != (Size{W: 100, H: 75}) {
		t.Fatalf("got %+v", got)
	}
}

func TestRotationExtract(t *testing.T) {
	rec := scorechunk.SpriteRecord{RotationRaw: 18000}
	got, ok := RotationProperty.Extract(rec)
	if !ok || got != 180.0 {
		t.Fatalf("got %v, ok=%v", got, ok)
	}
}

func TestBlendDefaultIsFullOpacity(t *testing.T) {
	if BlendProperty.Default() != 100 {
		t.Fatalf("Default() = %d, want 100", BlendProperty.Default())
	}
}

func TestConvertBlendToPercentage(t *testing.T) {
	cases := []struct {
		raw  uint8
		want uint8
	}{
		{0, 100},
		{255, 0},
		{128, 49},
	}
	for _, c := range cases {
		if got := ConvertBlendToPercentage(c.raw); got != c.want {
			t.Errorf("ConvertBlendToPercentage(%d) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestForeColorExtractPaletteVsRGB(t *testing.T) {
	palette := scorechunk.SpriteRecord{ColorFlag: scorechunk.ColorBothPalette, ForeColor: 14}
	got, _ := ForeColorProperty.Extract(palette)
	if got != color.PaletteIndex(14) {
		t.Fatalf("got %+v", got)
	}

	rgb := scorechunk.SpriteRecord{ColorFlag: scorechunk.ColorForeRGB, ForeColor: 10, ForeColorG: 20, ForeColorB: 30}
	got, _ = ForeColorProperty.Extract(rgb)
	if got != color.Direct(10, 20, 30) {
		t.Fatalf("got %+v", got)
	}
}

func TestForeColorResolveWithPrevZeroCarriesForward(t *testing.T) {
	prev := color.Direct(1, 2, 3)
	got := ForeColorProperty.ResolveWithPrev(color.PaletteIndex(0), &prev)
	if got != prev {
		t.Fatalf("got %+v, want carried-forward %+v", got, prev)
	}
}

func TestForeColorIsStandardDefault(t *testing.T) {
	if !ForeColorProperty.IsStandardDefault(color.PaletteIndex(0)) {
		t.Fatal("PaletteIndex(0) should be a standard default")
	}
	if !ForeColorProperty.IsStandardDefault(color.PaletteIndex(255)) {
		t.Fatal("PaletteIndex(255) should be a standard default")
	}
	if ForeColorProperty.IsStandardDefault(color.PaletteIndex(14)) {
		t.Fatal("PaletteIndex(14) should not be a standard default")
	}
	if ForeColorProperty.IsStandardDefault(color.Direct(1, 2, 3)) {
		t.Fatal("an RGB color should never be a standard default")
	}
}

func TestBackColorExtractPaletteVsRGB(t *testing.T) {
	rgb := scorechunk.SpriteRecord{ColorFlag: scorechunk.ColorBackRGB, BackColor: 1, BackColorG: 2, BackColorB: 3}
	got, _ := BackColorProperty.Extract(rgb)
	if got != color.Direct(1, 2, 3) {
		t.Fatalf("got %+v", got)
	}
}
