package keyframe

import (
	"sort"

	"directorcore/internal/score"
	"directorcore/internal/scorechunk"
)

// ChannelNumber converts an internal score channel index (which reserves
// 0-5 for frame script/palette/transition/sound/sound/tempo) into the
// sprite channel number Director displays starting at 1.
func ChannelNumber(channelIndex int) int {
	if channelIndex <= 5 {
		return channelIndex
	}
	return channelIndex - 5
}

// FrameRecord pairs one frame's sprite record with the frame it came from,
// the unit collection and animation detection operate over.
type FrameRecord struct {
	Frame  uint32
	Record scorechunk.SpriteRecord
}

// Keyframe is a single (frame, value) sample of an animating property.
type Keyframe[V any] struct {
	Frame uint32
	Value V
}

// CollectPropertyKeyframes resolves prop's effective value per frame and
// returns only the frames where that value actually changes, dropping
// default-valued frames (or, for baseline-skip properties, dropping
// baseline-valued frames except the first one when the interval really
// animates).
func CollectPropertyKeyframes[V comparable](prop Property[V], frames []FrameRecord) []Keyframe[V] {
	var keyframes []Keyframe[V]
	defaultVal := prop.Default()
	current := defaultVal
	initialized := false

	var baseline *V
	if prop.UseBaselineSkip() && len(frames) > 0 {
		if raw, ok := prop.Extract(frames[0].Record); ok {
			v := prop.ResolveWithPrev(raw, nil)
			baseline = &v
		}
	}

	hasAnimation := false
	if prop.UseBaselineSkip() && baseline != nil {
		for _, fr := range frames {
			if raw, ok := prop.Extract(fr.Record); ok {
				if prop.ResolveWithPrev(raw, nil) != *baseline {
					hasAnimation = true
					break
				}
			}
		}
	}

	var lastValue *V
	for _, fr := range frames {
		raw, ok := prop.Extract(fr.Record)
		if !ok {
			continue
		}
		resolved := prop.ResolveWithPrev(raw, lastValue)
		resolvedCopy := resolved
		lastValue = &resolvedCopy

		if prop.UseBaselineSkip() {
			if baseline != nil && resolved == *baseline {
				if hasAnimation && !initialized {
					keyframes = append(keyframes, Keyframe[V]{Frame: fr.Frame, Value: resolved})
					current = resolved
					initialized = true
				}
				continue
			}
		} else if resolved == defaultVal {
			continue
		}

		if !initialized || resolved != current {
			keyframes = append(keyframes, Keyframe[V]{Frame: fr.Frame, Value: resolved})
			current = resolved
			initialized = true
		}
	}

	return keyframes
}

// HasRealAnimation reports whether prop actually changes across frames, as
// opposed to every frame merely restating the sprite's initial value.
func HasRealAnimation[V comparable](prop Property[V], frames []FrameRecord) bool {
	if prop.UseBaselineSkip() {
		for _, fr := range frames {
			raw, ok := prop.Extract(fr.Record)
			if !ok {
				continue
			}
			if !prop.IsStandardDefault(prop.ResolveWithPrev(raw, nil)) {
				return true
			}
		}
		return false
	}

	defaultVal := prop.Default()
	var values []V
	for _, fr := range frames {
		raw, ok := prop.Extract(fr.Record)
		if !ok {
			continue
		}
		resolved := prop.ResolveWithPrev(raw, nil)
		if resolved != defaultVal {
			values = append(values, resolved)
		}
	}
	if len(values) < 2 {
		return false
	}
	first := values[0]
	for _, v := range values {
		if v != first {
			return true
		}
	}
	return false
}

// FrameSpan is an interval's [start,end] frame range, kept on Track so
// IsActiveAtFrame can test whether two adjacent keyframes share an
// interval rather than straddling a gap between spans.
type FrameSpan struct {
	Start, End uint32
}

// Track is one property's full animation record for a single channel:
// every real keyframe collected across the channel's spans, plus the
// interval boundaries needed to decide activity between keyframes.
type Track[V comparable] struct {
	Channel   int
	Keyframes []Keyframe[V]
	Tween     scorechunk.TweenInfo
	Intervals []FrameSpan
}

// BuildTrack collects prop's keyframes for one channel across all of its
// spans. gate selects which spans actually carry this property's tween
// flag (e.g. scorechunk.TweenInfo.IsBlend for BlendProperty); spans that
// don't gate, or that cover a single frame, contribute no keyframes.
func BuildTrack[V comparable](prop Property[V], channel int, entries []score.FrameChannelEntry, spans []score.Span, gate func(scorechunk.TweenInfo) bool) Track[V] {
	track := Track[V]{Channel: channel}
	if len(spans) == 0 {
		return track
	}
	track.Tween = spans[0].Tween
	for _, sp := range spans {
		track.Intervals = append(track.Intervals, FrameSpan{Start: sp.Start, End: sp.End})
	}

	for _, sp := range spans {
		if sp.Start == sp.End {
			continue
		}
		if !gate(sp.Tween) {
			continue
		}

		byFrame := make(map[uint32]scorechunk.SpriteRecord)
		for _, e := range entries {
			if e.Channel != channel {
				continue
			}
			if e.Frame < sp.Start || e.Frame > sp.End {
				continue
			}
			byFrame[e.Frame] = e.Record
		}
		if len(byFrame) == 0 {
			continue
		}
		frames := make([]FrameRecord, 0, len(byFrame))
		for frame, rec := range byFrame {
			frames = append(frames, FrameRecord{Frame: frame, Record: rec})
		}
		sort.Slice(frames, func(i, j int) bool { return frames[i].Frame < frames[j].Frame })

		if !HasRealAnimation(prop, frames) {
			continue
		}
		track.Keyframes = append(track.Keyframes, CollectPropertyKeyframes(prop, frames)...)
	}

	sort.Slice(track.Keyframes, func(i, j int) bool { return track.Keyframes[i].Frame < track.Keyframes[j].Frame })
	return track
}

// FrameRange returns the first and last keyframe frame numbers, if any
// keyframes were collected.
func (t Track[V]) FrameRange() (first, last uint32, ok bool) {
	if len(t.Keyframes) == 0 {
		return 0, 0, false
	}
	return t.Keyframes[0].Frame, t.Keyframes[len(t.Keyframes)-1].Frame, true
}

// IsActiveAtFrame reports whether frame falls exactly on a keyframe, or
// between two keyframes that share a containing interval.
func (t Track[V]) IsActiveAtFrame(frame uint32) bool {
	if len(t.Keyframes) == 0 {
		return false
	}
	for _, kf := range t.Keyframes {
		if kf.Frame == frame {
			return true
		}
	}

	var prevFrame, nextFrame uint32
	havePrev, haveNext := false, false
	for i := len(t.Keyframes) - 1; i >= 0; i-- {
		if t.Keyframes[i].Frame <= frame {
			prevFrame, havePrev = t.Keyframes[i].Frame, true
			break
		}
	}
	for _, kf := range t.Keyframes {
		if kf.Frame > frame {
			nextFrame, haveNext = kf.Frame, true
			break
		}
	}
	if !havePrev || !haveNext {
		return false
	}

	for _, iv := range t.Intervals {
		if prevFrame >= iv.Start && prevFrame <= iv.End &&
			nextFrame >= iv.Start && nextFrame <= iv.End &&
			frame >= iv.Start && frame <= iv.End {
			return true
		}
	}
	return false
}

// ValueAtFrame returns the most recent keyframe's value at or before
// frame, provided frame is active (see IsActiveAtFrame).
func (t Track[V]) ValueAtFrame(frame uint32) (V, bool) {
	var zero V
	if !t.IsActiveAtFrame(frame) {
		return zero, false
	}
	for i := len(t.Keyframes) - 1; i >= 0; i-- {
		if t.Keyframes[i].Frame <= frame {
			return t.Keyframes[i].Value, true
		}
	}
	return zero, false
}
