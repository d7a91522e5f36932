// Package player ties the reconstructed score, sprite state machine,
// keyframe tracks, compositor, audio engine, and built-in handler registry
// together into one frame-stepped movie, the way the teacher's
// internal/emulator package ties CPU/PPU/APU/input together behind a
// single RunFrame call. cmd/director-player is the only consumer.
package player

import (
	"fmt"

	"directorcore/internal/audio"
	"directorcore/internal/bitmap"
	"directorcore/internal/builtin"
	"directorcore/internal/color"
	"directorcore/internal/compositor"
	"directorcore/internal/debug"
	"directorcore/internal/host"
	"directorcore/internal/keyframe"
	"directorcore/internal/score"
	"directorcore/internal/scorechunk"
	"directorcore/internal/sprite"
)

// CastLibrary resolves a sprite's cast member reference to the bitmap and
// palette the compositor samples from, and a sound member to the audio
// engine's handle. Parsing a cast library's own chunk formats is outside
// this spec's scope (C1-C9 only cover palette/bitmap/score/keyframe/
// sprite/compositor/audio/lingo/builtin data already in hand); a player
// binary supplies its own CastLibrary once it has loaded a movie's cast.
type CastLibrary interface {
	Bitmap(ref sprite.CastMemberRef) (*bitmap.Bitmap, *color.Palette, error)
	SoundMember(ref sprite.CastMemberRef) (audio.MemberHandle, bool)
}

// propertyTracks is the set of per-channel animation tracks built once at
// load time from the reconstructed timeline, queried every frame instead
// of recomputed.
type propertyTracks struct {
	position keyframe.Track[keyframe.Position]
	size     keyframe.Track[keyframe.Size]
	rotation keyframe.Track[float64]
	skew     keyframe.Track[float64]
	blend    keyframe.Track[int32]
}

// Movie is one loaded, running Director movie: its reconstructed score,
// sprite machine, per-channel keyframe tracks, compositor, audio engine,
// and built-in registry, stepped one frame at a time by Tick.
type Movie struct {
	Timeline *score.Timeline
	Machine  *sprite.Machine
	Registry *builtin.Registry

	compositor *compositor.Compositor
	audio      *audio.Engine
	cast       CastLibrary

	canvas host.Canvas
	input  host.InputSource

	tracks map[int]*propertyTracks

	currentFrame uint32
	labels       map[uint32]string
	keysDown     []int
}

// NewMovie wires a reconstructed timeline, its sprite spans, and a Host
// into a playable Movie. width/height size the CPU compositor's frame
// buffer (spec.md §3's Stage dimensions).
func NewMovie(timeline *score.Timeline, spans []score.Span, spriteHost sprite.Host, cast CastLibrary, canvas host.Canvas, in host.InputSource, width, height, numAudioChannels int, logger *debug.Logger) *Movie {
	m := &Movie{
		Timeline:   timeline,
		Machine:    sprite.NewMachine(spriteHost, timeline, spans),
		Registry:   builtin.NewRegistry(),
		compositor: compositor.NewCompositor(width, height),
		audio:      audio.NewEngine(numAudioChannels, logger),
		cast:       cast,
		canvas:     canvas,
		input:      in,
		tracks:     make(map[int]*propertyTracks),
		labels:     make(map[uint32]string),
	}
	m.buildTracks(spans)
	m.Registry.SetContext(m)
	m.Registry.SetLogger(logger)
	return m
}

// Audio exposes the underlying sound channel engine so a player binary can
// bridge Loading-state channels to its host.AudioContext: decode the
// member's raw bytes (host.AudioContext.DecodeAsync), create a buffer,
// play it, and call Engine.OnDecoded/OnEnded as the host reports progress.
// That bridge lives in the player binary rather than here because it needs
// both raw cast sample bytes (a CastLibrary concern) and a live
// host.AudioContext, neither of which C7's state machine itself requires.
func (m *Movie) Audio() *audio.Engine { return m.audio }

// SetLabel records a frame's marker label, fed by the player binary from
// whatever stream carries score labels (outside this package's score
// reconstruction, which reconstructs sprite/sound/tempo channels only).
func (m *Movie) SetLabel(frame uint32, name string) {
	m.labels[frame] = name
}

// buildTracks constructs one propertyTracks per sprite channel, grounded
// on keyframe.BuildTrack's per-property gate functions.
func (m *Movie) buildTracks(spans []score.Span) {
	byChannel := make(map[int][]score.Span)
	for _, sp := range spans {
		byChannel[sp.Channel] = append(byChannel[sp.Channel], sp)
	}
	for channel, chSpans := range byChannel {
		entries := m.Timeline.ChannelEntries(channel)
		m.tracks[channel] = &propertyTracks{
			position: keyframe.BuildTrack(keyframe.PositionProperty, channel, entries, chSpans, scorechunk.TweenInfo.IsPath),
			size:     keyframe.BuildTrack(keyframe.SizeProperty, channel, entries, chSpans, scorechunk.TweenInfo.IsSize),
			rotation: keyframe.BuildTrack(keyframe.RotationProperty, channel, entries, chSpans, scorechunk.TweenInfo.IsRotation),
			skew:     keyframe.BuildTrack(keyframe.SkewProperty, channel, entries, chSpans, scorechunk.TweenInfo.IsSkew),
			blend:    keyframe.BuildTrack(keyframe.BlendProperty, channel, entries, chSpans, scorechunk.TweenInfo.IsBlend),
		}
	}
}

// Tick advances the movie by one frame: runs the sprite machine's
// beginSprite/endSprite diffing, applies this frame's interpolated
// property values over each live sprite, composites the frame, presents
// it, and advances the audio engine. dt is the frame's elapsed seconds,
// for the audio engine's fade scheduling.
func (m *Movie) Tick(dt float64) error {
	next := m.currentFrame + 1
	if err := m.Machine.Advance(m.currentFrame, next); err != nil {
		return fmt.Errorf("player: advance sprites: %w", err)
	}
	m.currentFrame = next

	if m.input != nil {
		m.input.PollEvents()
		m.keysDown = m.input.KeysDown()
	}

	views := m.buildSpriteViews()
	m.compositor.StepFrame(views)
	m.audio.Update(dt)

	if m.canvas != nil {
		if err := m.canvas.PresentFramebuffer(m.compositor.FB); err != nil {
			return fmt.Errorf("player: present frame: %w", err)
		}
		if err := m.canvas.Flip(); err != nil {
			return fmt.Errorf("player: flip: %w", err)
		}
	}
	return nil
}

// buildSpriteViews projects every live, visible sprite into a
// compositor.SpriteView, overriding the span-seeded static fields with
// this frame's interpolated track values where a track is active.
func (m *Movie) buildSpriteViews() []compositor.SpriteView {
	var views []compositor.SpriteView
	for _, channel := range m.Machine.Channels() {
		sp, ok := m.Machine.Sprite(channel)
		if !ok || !sp.Entered || !sp.Visible {
			continue
		}

		locH, locV := sp.LocH, sp.LocV
		width, height := sp.Width, sp.Height
		blend := sp.Blend

		// Rotation/skew tracks are built (keyframe.RotationProperty/
		// SkewProperty) but the CPU compositor only composites
		// axis-aligned rects (compositor.SpriteView carries no
		// rotation/skew field); sprite.Sprite still exposes Rotation/Skew
		// for a caller that wants the raw animated angle without feeding
		// it through pixel compositing.
		if tracks, ok := m.tracks[channel]; ok {
			if pos, ok := tracks.position.ValueAtFrame(m.currentFrame); ok {
				locH, locV = int32(pos.X), int32(pos.Y)
			}
			if sz, ok := tracks.size.ValueAtFrame(m.currentFrame); ok {
				width, height = sz.W, sz.H
			}
			if b, ok := tracks.blend.ValueAtFrame(m.currentFrame); ok {
				blend = b
			}
		}

		bmp, pal, err := m.cast.Bitmap(sp.Member)
		if err != nil || bmp == nil {
			continue
		}
		bgColor := color.Resolve(sp.BackColor, pal, nil, int(bmp.StoredDepth))
		rect := compositor.DestRect(locH, locV, width, height, bmp.RegPoint, bmp.Width, bmp.Height)

		views = append(views, compositor.SpriteView{
			Channel: channel,
			Rect:    rect,
			Bitmap:  bmp,
			Palette: pal,
			Ink:     compositor.Ink(sp.Ink),
			Blend:   int32(keyframe.ConvertBlendToPercentage(uint8(blend))),
			BgColor: bgColor,
			FlipH:   sp.FlipH,
			FlipV:   sp.FlipV,
		})
	}
	return views
}

// --- builtin.MovieContext ---

func (m *Movie) CurrentFrame() int { return int(m.currentFrame) }

func (m *Movie) FrameLabel(frame int) (string, bool) {
	name, ok := m.labels[uint32(frame)]
	return name, ok
}

func (m *Movie) IsFrameReady(frame int) bool {
	_, ok := m.labels[uint32(frame)]
	return ok || uint32(frame) <= m.currentFrame
}

func (m *Movie) DispatchSprite(channel int, event string, args []builtin.Datum) (bool, error) {
	return m.Machine.DispatchEvent(channel, event, datumsToAny(args))
}

func (m *Movie) DispatchAllSprites(event string, args []builtin.Datum) (bool, error) {
	anyArgs := datumsToAny(args)
	handledAny := false
	for _, channel := range m.Machine.Channels() {
		handled, err := m.Machine.DispatchEvent(channel, event, anyArgs)
		if err != nil {
			return handledAny, err
		}
		handledAny = handledAny || handled
	}
	return handledAny, nil
}

// CallGlobalHandler dispatches to a movie-script-level handler. Full movie
// scripts (handlers not attached to any sprite behavior) are outside this
// core's scope in the same way sprite.Host's script execution is: a player
// binary wires its own global handler table if it has one.
func (m *Movie) CallGlobalHandler(name string, args []builtin.Datum) (builtin.Datum, error) {
	return builtin.Void(), fmt.Errorf("player: no global handler table installed for %q", name)
}

func (m *Movie) KeysDown() []int { return m.keysDown }

func datumsToAny(args []builtin.Datum) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
