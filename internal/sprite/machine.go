package sprite

import (
	"sort"

	"directorcore/internal/color"
	"directorcore/internal/score"
	"directorcore/internal/scorechunk"
)

// Machine drives the score's sprite channels frame by frame: ending spans
// that just went inactive, entering spans that just became active,
// attaching their behaviors, and dispatching beginSprite/endSprite. It
// mirrors the span-activation diffing of score.rs's begin_sprites/
// end_sprites, wired against a Host instead of a concrete Lingo VM.
type Machine struct {
	host     Host
	timeline *score.Timeline
	spans    []score.Span

	sprites map[int]*Sprite
}

// NewMachine wires a Machine to its host and the score data it will walk.
// spans should already be filtered to sprite channels (score.FirstSpriteChannel
// and above); channels 0-5 carry frame scripts/palette/transition/sound/tempo
// and are not sprite spans.
func NewMachine(host Host, timeline *score.Timeline, spans []score.Span) *Machine {
	return &Machine{
		host:     host,
		timeline: timeline,
		spans:    spans,
		sprites:  make(map[int]*Sprite),
	}
}

// Sprite returns the live sprite state for a channel, if one currently
// exists (a channel only has a Sprite once a span on it has been entered).
func (m *Machine) Sprite(channel int) (*Sprite, bool) {
	sp, ok := m.sprites[channel]
	return sp, ok
}

// GetChannelState implements debug.SpriteStateReader, giving FrameLogger a
// per-tick read of one channel's entered/member/position/ink state without
// internal/debug needing to import this package.
func (m *Machine) GetChannelState(channel int) (entered bool, memberCastLib, memberCastMember int32, x, y int16, ink int32) {
	sp, ok := m.sprites[channel]
	if !ok {
		return false, 0, 0, 0, 0, 0
	}
	return sp.Entered, sp.Member.CastLib, sp.Member.CastMember, int16(sp.LocH), int16(sp.LocV), sp.Ink
}

// Channels returns every channel that currently has a Sprite (entered or
// not yet cleared after exit), in ascending order, for callers that need
// to walk all live sprites rather than query one channel at a time.
func (m *Machine) Channels() []int {
	channels := make([]int, 0, len(m.sprites))
	for ch := range m.sprites {
		channels = append(channels, ch)
	}
	sort.Ints(channels)
	return channels
}

func (m *Machine) activeSpan(channel int, frame uint32) (score.Span, bool) {
	for _, sp := range m.spans {
		if sp.Channel == channel && sp.Active(frame) {
			return sp, true
		}
	}
	return score.Span{}, false
}

// Advance moves the score from prevFrame to nextFrame, running spec.md
// §4.5's five-step algorithm: end sprites whose span just went inactive,
// enter sprites whose span just became active, seed their fields, attach
// behaviors, and dispatch beginSprite once every behavior is attached.
func (m *Machine) Advance(prevFrame, nextFrame uint32) error {
	if err := m.endSprites(prevFrame, nextFrame); err != nil {
		return err
	}
	return m.beginSprites(nextFrame)
}

// endSprites implements step 1: any channel whose span covered prevFrame
// but not nextFrame is dispatched endSprite and cleared. A puppet sprite's
// scripted overrides survive the clear.
func (m *Machine) endSprites(prevFrame, nextFrame uint32) error {
	for channel, sp := range m.sprites {
		if !sp.Entered {
			continue
		}
		_, stillActive := m.activeSpan(channel, nextFrame)
		if stillActive {
			continue
		}
		_, wasActive := m.activeSpan(channel, prevFrame)
		if !wasActive {
			continue
		}
		if _, err := m.dispatchAll(sp, "endSprite", nil); err != nil {
			return err
		}
		sp.clear()
	}
	return nil
}

// beginSprites implements steps 2-5: every span newly active at nextFrame
// gets its sprite seeded, its behaviors instantiated and attached in
// declaration order, and one beginSprite dispatch after attachment
// completes.
func (m *Machine) beginSprites(nextFrame uint32) error {
	var entering []score.Span
	for _, sp := range m.spans {
		if !sp.Active(nextFrame) {
			continue
		}
		sprite, ok := m.sprites[sp.Channel]
		if ok && sprite.Entered {
			continue
		}
		entering = append(entering, sp)
	}
	sort.Slice(entering, func(i, j int) bool { return entering[i].Channel < entering[j].Channel })

	for _, sp := range entering {
		sprite, ok := m.sprites[sp.Channel]
		if !ok {
			sprite = newSprite(sp.Channel)
			m.sprites[sp.Channel] = sprite
		}

		rec, ok := m.timeline.RecordAt(sp.Start, sp.Channel)
		if ok {
			seedSprite(sprite, rec)
		}
		sprite.Entered = true
		sprite.Exited = false

		for _, ab := range sp.Behaviors {
			ref := CastMemberRef{CastLib: int32(ab.CastLib), CastMember: int32(ab.CastMember)}
			inst, err := m.host.InstantiateBehavior(ref)
			if err != nil {
				return err
			}
			if err := m.host.ApplyParameters(inst, ab.Parameter); err != nil {
				return err
			}
			sprite.Behaviors = append(sprite.Behaviors, BehaviorInstance{Ref: ref, Instance: inst})
		}

		if _, err := m.dispatchAll(sprite, "beginSprite", nil); err != nil {
			return err
		}
	}
	return nil
}

// seedSprite copies a frame-channel-data record's fields onto a freshly
// entered sprite, resolving fore/back color the same way score.rs's
// begin_sprites does: ColorFlag selects which of fore/back is a direct RGB
// triplet versus a palette index.
func seedSprite(sp *Sprite, rec scorechunk.SpriteRecord) {
	sp.Member = CastMemberRef{CastLib: int32(rec.CastLib), CastMember: int32(rec.CastMember)}
	sp.LocH, sp.LocV = int32(rec.PosX), int32(rec.PosY)
	sp.Width, sp.Height = int32(rec.Width), int32(rec.Height)
	sp.Ink = int32(rec.Ink)
	sp.Blend = int32(rec.Blend)
	sp.Rotation = rec.Rotation()
	sp.Skew = rec.Skew()
	sp.LocZ = int32(sp.Channel)

	if rec.ColorFlag == scorechunk.ColorForeRGB || rec.ColorFlag == scorechunk.ColorBothRGB {
		sp.ForeColor = color.Direct(rec.ForeColor, rec.ForeColorG, rec.ForeColorB)
	} else {
		sp.ForeColor = color.PaletteIndex(rec.ForeColor)
	}
	if rec.ColorFlag == scorechunk.ColorBackRGB || rec.ColorFlag == scorechunk.ColorBothRGB {
		sp.BackColor = color.Direct(rec.BackColor, rec.BackColorG, rec.BackColorB)
	} else {
		sp.BackColor = color.PaletteIndex(rec.BackColor)
	}
}

// DispatchEvent delivers event to a live sprite's behaviors in attachment
// order, stopping propagation as soon as one handler returns
// passNext=false ("dontPassEvent").
func (m *Machine) DispatchEvent(channel int, event string, args []any) (bool, error) {
	sp, ok := m.sprites[channel]
	if !ok {
		return true, nil
	}
	return m.dispatchAll(sp, event, args)
}

func (m *Machine) dispatchAll(sp *Sprite, event string, args []any) (bool, error) {
	for _, b := range sp.Behaviors {
		passNext, err := m.host.Dispatch(b.Instance, event, args)
		if err != nil {
			return false, err
		}
		if !passNext {
			return false, nil
		}
	}
	return true, nil
}
