package gpu

import "testing"

func TestBuildTextureUploadKeepsDimensionsAndPayload(t *testing.T) {
	rgba := []byte{10, 20, 30, 255, 40, 50, 60, 0}
	up := BuildTextureUpload(2, 1, rgba)
	if up.Width != 2 || up.Height != 1 {
		t.Fatalf("dimensions = %dx%d, want 2x1", up.Width, up.Height)
	}
	if len(up.RGBA) != 8 {
		t.Fatalf("expected 8 payload bytes, got %d", len(up.RGBA))
	}
	if up.RGBA[7] != 0 {
		t.Fatalf("expected the second pixel's alpha to carry through unmodified, got %d", up.RGBA[7])
	}
}
