// Package audio implements the sound channel engine (C7): per-channel
// playlist runner with loop counts, fade envelopes, and codec dispatch.
// Grounded on original_source/vm-rust/src/player/handlers/datum_handlers/
// sound_channel.rs's SoundChannel state machine and on the teacher's
// internal/apu channel-array shape, generalized from a 4-channel synth
// array to an N-channel sample-playlist array.
package audio

import "directorcore/internal/debug"

// Status is a channel's coarse playback state.
type Status int

const (
	Stopped Status = iota
	Loading
	Playing
	Paused
	Queued
)

func (s Status) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Loading:
		return "Loading"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Queued:
		return "Queued"
	default:
		return "Unknown"
	}
}

// PlaylistEntry is one {member, loopCount} slot in a channel's playlist
// (spec.md §4.7 "Playlist semantics"). LoopsRemaining counts down while
// LoopCount stays fixed; LoopCount==0 means loop forever.
type PlaylistEntry struct {
	Member         MemberHandle
	LoopCount      int
	LoopsRemaining int
}

// MemberHandle identifies a sound cast member by handle, not pointer,
// matching the rest of the core's handle-based ownership rule.
type MemberHandle struct {
	CastLib  uint16
	CastMember uint16
}

// FadeEnvelope is a linear volume ramp (spec.md §4.7 "Fade envelope").
type FadeEnvelope struct {
	Active         bool
	StartVolume    float64
	TargetVolume   float64
	DurationSecs   float64
	ElapsedSecs    float64
}

// Channel is one audio channel's full state (spec.md §3 "Audio channel").
type Channel struct {
	Number int

	Member     MemberHandle
	Volume     uint8 // 0..255
	Pan        int8  // -100..100

	LoopCount      int
	LoopsRemaining int

	StartTime    float64
	EndTime      float64
	LoopStart    float64
	LoopEnd      float64

	Status Status
	Fade   FadeEnvelope

	Playlist            []PlaylistEntry
	CurrentPlaylistIndex int

	Queued     *MemberHandle
	IsDecoding bool

	elapsedSecs float64
}

// Engine owns the fixed array of audio channels and advances them once per
// frame tick (spec.md §8 "Scheduling": audio update runs after the
// compositor, single-threaded on the main tick).
type Engine struct {
	Channels []Channel
	Logger   *debug.Logger
}

// NewEngine allocates an Engine with numChannels channels, numbered
// 0..numChannels-1.
func NewEngine(numChannels int, logger *debug.Logger) *Engine {
	e := &Engine{Channels: make([]Channel, numChannels), Logger: logger}
	for i := range e.Channels {
		e.Channels[i].Number = i
		e.Channels[i].Status = Stopped
	}
	return e
}

func (e *Engine) channel(n int) *Channel {
	if n < 0 || n >= len(e.Channels) {
		return nil
	}
	return &e.Channels[n]
}

// GetChannelState implements debug.AudioStateReader, giving FrameLogger a
// per-tick read of one channel's playback status/volume/pan/loop count.
func (e *Engine) GetChannelState(n int) (status string, volume uint8, pan int8, loopsRemaining int32) {
	ch := e.channel(n)
	if ch == nil {
		return Stopped.String(), 0, 0, 0
	}
	return ch.Status.String(), ch.Volume, ch.Pan, int32(ch.LoopsRemaining)
}

// GetMasterVolume implements debug.AudioStateReader. This engine has no
// global master-volume control of its own (original_source's
// sound_channel.rs only models per-channel volume), so this returns a
// constant full-scale value to satisfy the frame-log format inherited from
// the teacher's APU master-volume register.
func (e *Engine) GetMasterVolume() uint8 { return 255 }

func (e *Engine) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.LogAudiof(debug.LogLevelDebug, format, args...)
	}
}

func (e *Engine) warnf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.LogAudiof(debug.LogLevelWarning, format, args...)
	}
}
