// Package host declares the three host surfaces the core calls into
// (spec.md §6 "External interfaces"): a canvas/GPU surface, an audio
// context, and an input source. The core never touches a concrete
// windowing or audio API directly — internal/host/sdlhost is the one
// adapter implementing these interfaces over github.com/veandco/go-sdl2,
// grounded on the teacher's dual internal/ui (Fyne) + SDL2 cmd/emulator
// surfaces.
package host

import (
	"directorcore/internal/compositor"
	"directorcore/internal/compositor/gpu"
)

// Canvas receives per-frame draw output. PresentFramebuffer is the CPU
// compositor path (a fully resolved RGB framebuffer, blitted as-is);
// UploadTexture/DrawQuad is the GPU shader-parity path (spec.md's
// "textured quads with ink-mode selector"), matching
// internal/compositor/gpu's TextureUpload/ShaderParams contract.
type Canvas interface {
	PresentFramebuffer(fb *compositor.Framebuffer) error
	UploadTexture(key string, upload gpu.TextureUpload) error
	DrawQuad(textureKey string, dest compositor.Rect, params gpu.ShaderParams) error
	Flip() error
}

// BufferHandle identifies a host-owned audio buffer (spec.md's
// "create-buffer" operation result).
type BufferHandle uint64

// AudioContext is the host audio device surface (spec.md §6): buffer
// creation, playback control, and the two suspension points (compressed
// decode, offline resample) that return control to the host per §5.
type AudioContext interface {
	CreateBuffer(samples []float32, sampleRate uint32, channels int) (BufferHandle, error)
	Play(buf BufferHandle, channel int) error
	Stop(channel int) error
	SetVolume(channel int, volume uint8) error
	SetPan(channel int, pan int8) error
	// OnEnded registers a callback invoked once, off the main tick, when
	// channel's current buffer finishes; the player's Engine.OnEnded must
	// be invoked from within it (spec.md §5 "Ordering guarantees").
	OnEnded(channel int, cb func()) error
	// DecodeAsync decodes compressed bytes (MP3) off the main tick, per
	// spec.md's decodeAudioData suspension point, delivering the decoded
	// samples (or an error) to done.
	DecodeAsync(data []byte, done func([]float32, error))
	// ResampleOffline performs an offline sample-rate conversion, the
	// second suspension point named in spec.md §5.
	ResampleOffline(samples []float32, fromRate, toRate uint32, done func([]float32, error))
}

// MouseEvent is a single mouse sample delivered by an InputSource.
type MouseEvent struct {
	X, Y       int
	ButtonDown bool
}

// InputSource delivers keyboard/mouse events (spec.md §6's "input source
// delivering keyboard/mouse events"). KeysDown mirrors
// internal/builtin.MovieContext's KeysDown method so a host adapter can
// satisfy both with one underlying key-state map.
type InputSource interface {
	PollEvents() []InputEvent
	KeysDown() []int
}

// InputEventKind tags an InputEvent's payload.
type InputEventKind int

const (
	EventKeyDown InputEventKind = iota
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// InputEvent is one polled input sample.
type InputEvent struct {
	Kind  InputEventKind
	Key   int
	Mouse MouseEvent
}
