package keyframe

import (
	"testing"

	"directorcore/internal/score"
	"directorcore/internal/scorechunk"
)

func TestChannelNumber(t *testing.T) {
	if ChannelNumber(5) != 5 {
		t.Fatalf("reserved channel indices pass through unchanged")
	}
	if ChannelNumber(6) != 1 {
		t.Fatalf("first sprite channel should display as channel 1, got %d", ChannelNumber(6))
	}
	if ChannelNumber(30) != 25 {
		t.Fatalf("ChannelNumber(30) = %d, want 25", ChannelNumber(30))
	}
}

func blendFrame(frame uint32, raw uint8) FrameRecord {
	return FrameRecord{Frame: frame, Record: scorechunk.SpriteRecord{Blend: raw}}
}

func TestCollectPropertyKeyframesDropsDefaultRuns(t *testing.T) {
	// BlendProperty.Default() is 100 (the raw blend byte Director leaves
	// in a frame that never sets blend), not 0.
	frames := []FrameRecord{
		blendFrame(0, 100), // default, dropped
		blendFrame(1, 50),  // changes
		blendFrame(2, 50),  // same as current, dropped
		blendFrame(3, 100), // back to default, dropped
		blendFrame(4, 200), // changes again
	}
	kfs := CollectPropertyKeyframes(BlendProperty, frames)
	if len(kfs) != 2 {
		t.Fatalf("expected 2 keyframes, got %d: %+v", len(kfs), kfs)
	}
	if kfs[0].Frame != 1 || kfs[0].Value != 50 {
		t.Fatalf("first keyframe = %+v", kfs[0])
	}
	if kfs[1].Frame != 4 || kfs[1].Value != 200 {
		t.Fatalf("second keyframe = %+v", kfs[1])
	}
}

func TestHasRealAnimationRequiresTwoDistinctNonDefaultValues(t *testing.T) {
	single := []FrameRecord{blendFrame(0, 50), blendFrame(1, 100)}
	if HasRealAnimation(BlendProperty, single) {
		t.Fatal("a single non-default value should not count as animation")
	}

	real := []FrameRecord{blendFrame(0, 50), blendFrame(1, 80)}
	if !HasRealAnimation(BlendProperty, real) {
		t.Fatal("two distinct non-default values should count as animation")
	}
}

func TestHasRealAnimationBaselineSkipColor(t *testing.T) {
	allDefault := []FrameRecord{
		{Frame: 0, Record: scorechunk.SpriteRecord{ColorFlag: scorechunk.ColorBothPalette, ForeColor: 0}},
		{Frame: 1, Record: scorechunk.SpriteRecord{ColorFlag: scorechunk.ColorBothPalette, ForeColor: 255}},
	}
	if HasRealAnimation(ForeColorProperty, allDefault) {
		t.Fatal("only standard-default colors should not count as animation")
	}

	withRealColor := []FrameRecord{
		{Frame: 0, Record: scorechunk.SpriteRecord{ColorFlag: scorechunk.ColorBothPalette, ForeColor: 0}},
		{Frame: 1, Record: scorechunk.SpriteRecord{ColorFlag: scorechunk.ColorBothPalette, ForeColor: 14}},
	}
	if !HasRealAnimation(ForeColorProperty, withRealColor) {
		t.Fatal("a non-standard-default color should count as animation")
	}
}

func TestBuildTrackSkipsSingleFrameAndUngatedSpans(t *testing.T) {
	entries := []score.FrameChannelEntry{
		{Frame: 0, Channel: 6, Record: scorechunk.SpriteRecord{Blend: 50}},
		{Frame: 1, Channel: 6, Record: scorechunk.SpriteRecord{Blend: 80}},
	}
	spans := []score.Span{
		{Channel: 6, Start: 5, End: 5}, // single-frame, skipped regardless of gate
		{Channel: 6, Start: 0, End: 1},
	}
	alwaysGate := func(scorechunk.TweenInfo) bool { return true }
	track := BuildTrack(BlendProperty, 6, entries, spans, alwaysGate)
	if len(track.Keyframes) != 2 {
		t.Fatalf("expected 2 keyframes, got %d", len(track.Keyframes))
	}

	neverGate := func(scorechunk.TweenInfo) bool { return false }
	track = BuildTrack(BlendProperty, 6, entries, spans, neverGate)
	if len(track.Keyframes) != 0 {
		t.Fatalf("expected 0 keyframes when gate rejects every span, got %d", len(track.Keyframes))
	}
}

func TestTrackIsActiveAtFrameWithinSharedInterval(t *testing.T) {
	track := Track[int32]{
		Keyframes: []Keyframe[int32]{{Frame: 2, Value: 1}, {Frame: 8, Value: 2}},
		Intervals: []FrameSpan{{Start: 0, End: 10}},
	}
	if !track.IsActiveAtFrame(5) {
		t.Fatal("frame between two keyframes in the same interval should be active")
	}
	if track.IsActiveAtFrame(15) {
		t.Fatal("frame outside every interval should not be active")
	}
}

func TestTrackValueAtFrameReturnsMostRecentKeyframe(t *testing.T) {
	track := Track[int32]{
		Keyframes: []Keyframe[int32]{{Frame: 2, Value: 10}, {Frame: 8, Value: 20}},
		Intervals: []FrameSpan{{Start: 0, End: 10}},
	}
	v, ok := track.ValueAtFrame(5)
	if !ok || v != 10 {
		t.Fatalf("ValueAtFrame(5) = %v, %v", v, ok)
	}
	v, ok = track.ValueAtFrame(8)
	if !ok || v != 20 {
		t.Fatalf("ValueAtFrame(8) = %v, %v", v, ok)
	}
}
