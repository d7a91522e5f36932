// Package sprite implements the score/sprite state machine: beginSprite/
// endSprite lifecycle driven by span activation, behavior attachment, and
// ordered event dispatch with pass/don't-pass propagation. It never
// interprets Lingo itself — script instantiation and event delivery are
// delegated to a Host, so this package stays usable without a Lingo VM
// wired in (internal/lingo is a decompiler, not an interpreter).
package sprite

import "directorcore/internal/color"

// CastMemberRef addresses a cast member by library and slot number.
type CastMemberRef struct {
	CastLib    int32
	CastMember int32
}

// BehaviorInstance is one script instance attached to a sprite, in
// attachment order.
type BehaviorInstance struct {
	Ref      CastMemberRef
	Instance InstanceHandle
}

// Sprite is the live state of one sprite channel (spec.md §3 "Sprite
// (live)"). Sprite identity equals its channel number for as long as it is
// alive.
type Sprite struct {
	Channel int

	Member CastMemberRef
	LocH   int32
	LocV   int32
	Width  int32
	Height int32

	Ink        int32
	Blend      int32
	Rotation   float64
	Skew       float64
	FlipH      bool
	FlipV      bool
	ForeColor  color.Ref
	BackColor  color.Ref
	Visible    bool
	LocZ       int32

	Puppet  bool
	Entered bool
	Exited  bool

	Behaviors []BehaviorInstance

	cursor    CastMemberRef
	hasCursor bool
}

// SetCursor assigns a cast member as this sprite's mouse cursor (spec.md's
// Data Model "optional cursor"), typically from a mouseEnter/mouseWithin
// handler. Clearing it back to the movie default is SetCursor(CastMemberRef{}).
func (s *Sprite) SetCursor(ref CastMemberRef) {
	s.cursor = ref
	s.hasCursor = ref != (CastMemberRef{})
}

// Cursor returns the sprite's cursor member and whether one is set at all,
// so a caller can fall back to the movie's default arrow cursor.
func (s *Sprite) Cursor() (CastMemberRef, bool) {
	return s.cursor, s.hasCursor
}

// newSprite returns a freshly reset sprite for the given channel.
func newSprite(channel int) *Sprite {
	sp := &Sprite{Channel: channel}
	sp.clear()
	return sp
}

// clear resets the sprite to its pre-enter state. A puppet sprite's
// scripted overrides survive a clear — only Entered/Exited/Behaviors and
// the cursor are touched — per spec.md §4.5 step 1 ("respecting puppet flag: puppet
// sprites keep their scripted overrides").
func (s *Sprite) clear() {
	s.Entered = false
	s.Exited = false
	s.Behaviors = nil
	s.cursor = CastMemberRef{}
	s.hasCursor = false

	if s.Puppet {
		return
	}

	s.Member = CastMemberRef{}
	s.LocH, s.LocV = 0, 0
	s.Width, s.Height = 0, 0
	s.Ink = 0
	s.Blend = 100
	s.Rotation, s.Skew = 0, 0
	s.FlipH, s.FlipV = false, false
	s.ForeColor = color.PaletteIndex(255)
	s.BackColor = color.PaletteIndex(0)
	s.Visible = true
	s.LocZ = 0
}
