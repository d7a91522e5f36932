package scorechunk

import "testing"

func buildIntervalRecord(startFrame, endFrame uint32, tweenFlags uint32) []byte {
	put32 := func(buf *[]byte, v uint32) {
		*buf = append(*buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	var buf []byte
	put32(&buf, startFrame)
	put32(&buf, endFrame)
	put32(&buf, 0) // xtra_info
	put32(&buf, 0) // sprite_flags
	put32(&buf, 6) // channel_index
	put32(&buf, 0) // curvature
	put32(&buf, tweenFlags)
	put32(&buf, 0) // ease_in
	put32(&buf, 0) // ease_out
	put32(&buf, 0) // pad
	return buf
}

func TestDecodeFrameIntervalFields(t *testing.T) {
	data := buildIntervalRecord(1, 10, tweenFlagForeColor|tweenFlagSmoothSpeed)
	fi, err := DecodeFrameInterval(data)
	if err != nil {
		t.Fatal(err)
	}
	if fi.StartFrame != 1 || fi.EndFrame != 10 {
		t.Fatalf("unexpected frame range: %+v", fi)
	}
	if fi.ChannelIndex != 6 {
		t.Fatalf("ChannelIndex = %d, want 6", fi.ChannelIndex)
	}
	if !fi.Tween.IsForeColor() {
		t.Fatal("expected forecolor tween flag set")
	}
	if !fi.Tween.IsSmoothSpeed() {
		t.Fatal("expected smooth-speed flag set")
	}
	if fi.Tween.IsBackColor() || fi.Tween.IsSize() {
		t.Fatal("unexpected tween flags set")
	}
}

func TestDecodeFrameIntervalTruncated(t *testing.T) {
	if _, err := DecodeFrameInterval(make([]byte, 10)); err == nil {
		t.Fatal("expected error for truncated interval record")
	}
}

func TestDecodeBehavior(t *testing.T) {
	data := []byte{0x00, 0x01, 0x00, 0x2A, 0, 0, 0, 0}
	b, err := DecodeBehavior(data)
	if err != nil {
		t.Fatal(err)
	}
	if b.CastLib != 1 || b.CastMember != 42 {
		t.Fatalf("unexpected behavior ref: %+v", b)
	}
}

func TestDecodeBehaviorTooShort(t *testing.T) {
	if _, err := DecodeBehavior(make([]byte, 4)); err == nil {
		t.Fatal("expected error for short behavior record")
	}
}
