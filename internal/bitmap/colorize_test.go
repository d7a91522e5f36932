package bitmap

import "testing"

func TestColorizeIdentityWhenNoForeBack(t *testing.T) {
	px := RGBA32{R: 11, G: 22, B: 33, A: 255}
	got := ColorizeDirect32(px, ColorizeParams{})
	if got != px {
		t.Fatalf("ColorizeDirect32 identity = %+v, want %+v", got, px)
	}
}

func TestColorizeIndexedIdentityWhenNoForeBack(t *testing.T) {
	got := ColorizeIndexed(17, 255, ColorizeParams{})
	if got != 17 {
		t.Fatalf("ColorizeIndexed identity = %d, want 17", got)
	}
}

func TestColorizeDirect32ForeOnlyDarkPixel(t *testing.T) {
	fore := RGBA32{R: 200, G: 10, B: 10, A: 255}
	px := RGBA32{R: 0, G: 1, B: 0, A: 255} // gray = 0
	got := ColorizeDirect32(px, ColorizeParams{HasFore: true, Fore: fore})
	if got.R != fore.R || got.G != fore.G || got.B != fore.B {
		t.Fatalf("dark pixel should map to fore, got %+v", got)
	}
	if got.A != px.A {
		t.Fatal("alpha should be preserved")
	}
}

func TestColorizeDirect32ForeOnlyBrightPixelUnchanged(t *testing.T) {
	fore := RGBA32{R: 200, G: 10, B: 10, A: 255}
	px := RGBA32{R: 200, G: 200, B: 200, A: 255} // gray well above 1
	got := ColorizeDirect32(px, ColorizeParams{HasFore: true, Fore: fore})
	if got != px {
		t.Fatalf("bright pixel should be unchanged, got %+v want %+v", got, px)
	}
}

func TestColorizeDirect32ForeAndBackInterpolates(t *testing.T) {
	fore := RGBA32{R: 0, G: 0, B: 0, A: 255}
	back := RGBA32{R: 255, G: 255, B: 255, A: 255}
	px := RGBA32{R: 255, G: 255, B: 255, A: 255} // gray = 255 -> t = 1 -> back
	got := ColorizeDirect32(px, ColorizeParams{HasFore: true, Fore: fore, HasBack: true, Back: back})
	if got.R != 255 || got.G != 255 || got.B != 255 {
		t.Fatalf("gray=255 should map to back, got %+v", got)
	}
}

func TestColorizeIndexedForeAndBackInterpolates(t *testing.T) {
	got := ColorizeIndexed(255, 255, ColorizeParams{HasFore: true, ForeIndex: 1, HasBack: true, BackIndex: 9})
	if got != 9 {
		t.Fatalf("index=max should map to BackIndex, got %d", got)
	}
}

func TestColorizeIndexedForeOnlyZeroIndex(t *testing.T) {
	got := ColorizeIndexed(0, 255, ColorizeParams{HasFore: true, ForeIndex: 3})
	if got != 3 {
		t.Fatalf("index 0 should map to ForeIndex, got %d", got)
	}
}

func TestRemapEligible(t *testing.T) {
	cases := []struct {
		ink     int
		indexed bool
		want    bool
	}{
		{0, false, true},
		{8, false, true},
		{9, false, true},
		{1, false, false},
		{0, true, false},
		{8, true, false},
	}
	for _, c := range cases {
		if got := RemapEligible(c.ink, c.indexed); got != c.want {
			t.Fatalf("RemapEligible(%d, %v) = %v, want %v", c.ink, c.indexed, got, c.want)
		}
	}
}
