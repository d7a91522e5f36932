package scorechunk

import "testing"

func buildFrameLabelsStream(entries []FrameLabel) []byte {
	var text []byte
	type offsetEntry struct {
		frame  uint32
		offset int
	}
	var offsets []offsetEntry
	for _, e := range entries {
		offsets = append(offsets, offsetEntry{frame: e.Frame, offset: len(text)})
		text = append(text, []byte(e.Label)...)
	}

	buf := []byte{byte(len(entries) >> 8), byte(len(entries))}
	for _, o := range offsets {
		buf = append(buf, byte(o.frame>>8), byte(o.frame), byte(o.offset>>8), byte(o.offset))
	}
	size := len(text)
	buf = append(buf, byte(size>>24), byte(size>>16), byte(size>>8), byte(size))
	buf = append(buf, text...)
	return buf
}

func TestDecodeFrameLabelsRoundTrip(t *testing.T) {
	want := []FrameLabel{
		{Frame: 1, Label: "intro"},
		{Frame: 5, Label: "loop"},
		{Frame: 12, Label: "end"},
	}
	stream := buildFrameLabelsStream(want)

	got, err := DecodeFrameLabels(stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d labels, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeFrameLabelsEmpty(t *testing.T) {
	stream := buildFrameLabelsStream(nil)
	got, err := DecodeFrameLabels(stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no labels, got %d", len(got))
	}
}

func TestDecodeFrameLabelsTruncated(t *testing.T) {
	if _, err := DecodeFrameLabels([]byte{0, 1}); err == nil {
		t.Fatal("expected error for truncated labels stream")
	}
}
