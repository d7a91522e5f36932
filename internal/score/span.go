package score

import "directorcore/internal/scorechunk"

// AttachedBehavior pairs a behavior cast reference with its author-supplied
// parameter string, in attachment order (spec.md §4.5 step 4).
type AttachedBehavior struct {
	CastLib    uint16
	CastMember uint16
	Parameter  string
}

// Span is a sprite span: a contiguous frame interval on one channel with a
// fixed tween configuration and an ordered list of attached behaviors
// (spec.md §3 "sprite spans").
type Span struct {
	Channel    int
	Start      uint32
	End        uint32
	Tween      scorechunk.TweenInfo
	Behaviors  []AttachedBehavior
}

// Active reports whether frame lies within [Start,End] inclusive.
func (s Span) Active(frame uint32) bool { return frame >= s.Start && frame <= s.End }

// BuildSpans turns decoded frame-interval primaries (each optionally paired
// with one behavior secondary, per the external chunk contract where a span
// with multiple behaviors appears as repeated primary/secondary pairs) into
// one Span per (channel, start, end), merging behaviors that share the same
// primary in declaration order.
func BuildSpans(intervals []scorechunk.FrameInterval, behaviorsByInterval [][]scorechunk.Behavior) []Span {
	spans := make([]Span, 0, len(intervals))
	for i, fi := range intervals {
		span := Span{
			Channel: int(fi.ChannelIndex),
			Start:   fi.StartFrame,
			End:     fi.EndFrame,
			Tween:   fi.Tween,
		}
		if i < len(behaviorsByInterval) {
			for _, b := range behaviorsByInterval[i] {
				span.Behaviors = append(span.Behaviors, AttachedBehavior{
					CastLib:    b.CastLib,
					CastMember: b.CastMember,
					Parameter:  b.Parameter,
				})
			}
		}
		spans = append(spans, span)
	}
	return spans
}

// SpansForChannel filters spans to a single channel.
func SpansForChannel(spans []Span, channel int) []Span {
	var out []Span
	for _, s := range spans {
		if s.Channel == channel {
			out = append(out, s)
		}
	}
	return out
}

// ActiveSpans returns every span active at frame, across all channels.
func ActiveSpans(spans []Span, frame uint32) []Span {
	var out []Span
	for _, s := range spans {
		if s.Active(frame) {
			out = append(out, s)
		}
	}
	return out
}
