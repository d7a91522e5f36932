package compositor

import (
	"testing"

	"directorcore/internal/color"
)

func TestApplyInkCopyUsesAlphaAndBlend(t *testing.T) {
	src := Pixel{RGB: color.RGB{R: 200, G: 0, B: 0}, A: 255}
	dst := color.RGB{R: 0, G: 0, B: 0}
	got := ApplyInk(InkCopy, src, dst, color.RGB{}, 1.0, false)
	if got != src.RGB {
		t.Fatalf("full-alpha full-blend Copy should fully replace dst, got %+v", got)
	}

	halfAlpha := Pixel{RGB: color.RGB{R: 200, G: 0, B: 0}, A: 128}
	got = ApplyInk(InkCopy, halfAlpha, dst, color.RGB{}, 1.0, false)
	if got.R == 0 || got.R == 200 {
		t.Fatalf("half-alpha Copy should blend partway, got %+v", got)
	}
}

func TestApplyInkBackgroundTransparentKeysOnBg(t *testing.T) {
	dst := color.RGB{R: 10, G: 20, B: 30}
	bg := color.RGB{R: 255, G: 255, B: 255}

	matching := Pixel{RGB: bg, A: 255}
	got := ApplyInk(InkBackgroundTransparent, matching, dst, bg, 1.0, true)
	if got != dst {
		t.Fatalf("pixel matching bg should leave dst unchanged, got %+v", got)
	}

	nonMatching := Pixel{RGB: color.RGB{R: 1, G: 2, B: 3}, A: 255}
	got = ApplyInk(InkBackgroundTransparent, nonMatching, dst, bg, 1.0, false)
	if got != nonMatching.RGB {
		t.Fatalf("non-bg pixel should pass through as source, got %+v", got)
	}
}

func TestApplyInkNotGhostInvertsNonBgPixels(t *testing.T) {
	dst := color.RGB{R: 10, G: 10, B: 10}
	bg := color.RGB{R: 0, G: 0, B: 0}
	src := Pixel{RGB: color.RGB{R: 100, G: 150, B: 200}, A: 255}

	got := ApplyInk(InkNotGhost, src, dst, bg, 1.0, false)
	want := color.RGB{R: 155, G: 105, B: 55}
	if got != want {
		t.Fatalf("NotGhost should invert non-bg source, got %+v want %+v", got, want)
	}

	got = ApplyInk(InkNotGhost, Pixel{RGB: bg, A: 255}, dst, bg, 1.0, true)
	if got != dst {
		t.Fatalf("NotGhost on a bg-matching pixel should leave dst unchanged, got %+v", got)
	}
}

func TestApplyInkAddPinClampsAt255(t *testing.T) {
	dst := color.RGB{R: 200, G: 10, B: 0}
	src := Pixel{RGB: color.RGB{R: 100, G: 10, B: 0}, A: 255}
	got := ApplyInk(InkAddPin, src, dst, color.RGB{}, 1.0, false)
	if got.R != 255 {
		t.Fatalf("AddPin should clamp at 255, got R=%d", got.R)
	}
	if got.G != 20 {
		t.Fatalf("AddPin should sum non-clamped channels, got G=%d", got.G)
	}
}

func TestApplyInkDarkenMultipliesDown(t *testing.T) {
	dst := color.RGB{R: 200, G: 200, B: 200}
	black := Pixel{RGB: color.RGB{R: 0, G: 0, B: 0}, A: 255}
	got := ApplyInk(InkDarken, black, dst, color.RGB{}, 1.0, false)
	if got.R != 0 {
		t.Fatalf("full-blend Darken against black source should drive dst to 0, got %+v", got)
	}

	got = ApplyInk(InkDarken, black, dst, color.RGB{}, 0.0, false)
	if got != dst {
		t.Fatalf("zero-blend Darken should leave dst unchanged, got %+v", got)
	}
}

func TestApplyInkTransparentIgnoresAlpha(t *testing.T) {
	dst := color.RGB{R: 0, G: 0, B: 0}
	src := Pixel{RGB: color.RGB{R: 100, G: 100, B: 100}, A: 0}
	got := ApplyInk(InkTransparent, src, dst, color.RGB{}, 0.5, false)
	if got.R != 50 {
		t.Fatalf("Transparent should lerp by blend alone regardless of alpha, got %+v", got)
	}
}
