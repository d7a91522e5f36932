package debug

import (
	"fmt"
	"os"
	"sync"
)

// SpriteStateReader reads a sprite channel's state (interface to avoid import cycles)
type SpriteStateReader interface {
	GetChannelState(channel int) (entered bool, memberCastLib, memberCastMember int32, x, y int16, ink int32)
}

// AudioStateReader reads an audio channel's state (interface to avoid import cycles)
type AudioStateReader interface {
	GetChannelState(channel int) (status string, volume uint8, pan int8, loopsRemaining int32)
	GetMasterVolume() uint8
}

// FrameSnapshot is the per-tick state captured for logging
type FrameSnapshot struct {
	Frame      uint32
	SpriteFrom int
	SpriteTo   int
}

// FrameLogger writes one line per frame tick describing sprite and audio
// channel state. Adapted from the teacher's cycle-by-cycle CPU/PPU/APU
// debug log, repurposed from register dumps to sprite/audio channel dumps.
type FrameLogger struct {
	file         *os.File
	maxFrames    uint64
	startFrame   uint64
	currentFrame uint64
	totalFrames  uint64
	enabled      bool
	mu           sync.Mutex

	sprites SpriteStateReader
	audio   AudioStateReader

	numChannels      int
	numAudioChannels int
}

// NewFrameLogger creates a new frame-by-frame debug log.
// maxFrames: maximum number of frames to log (0 = unlimited).
// startFrame: first frame tick to log, counting ticks from 1 (0 or 1 = immediately).
func NewFrameLogger(filename string, maxFrames, startFrame uint64, sprites SpriteStateReader, audio AudioStateReader, numChannels, numAudioChannels int) (*FrameLogger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create frame log file: %w", err)
	}

	logger := &FrameLogger{
		file:             file,
		maxFrames:        maxFrames,
		startFrame:       startFrame,
		enabled:          true,
		sprites:          sprites,
		audio:            audio,
		numChannels:      numChannels,
		numAudioChannels: numAudioChannels,
	}

	fmt.Fprintf(file, "Frame-by-Frame Debug Log\n")
	fmt.Fprintf(file, "========================\n\n")
	if startFrame > 0 {
		fmt.Fprintf(file, "Start frame offset: %d\n", startFrame)
	}
	if maxFrames > 0 {
		fmt.Fprintf(file, "Max frames to log: %d\n", maxFrames)
	}
	fmt.Fprintf(file, "\nFormat: Frame | sprite channels (entered/cast/pos/ink) | audio channels (status/vol/pan/loops)\n\n")

	return logger, nil
}

// LogFrame logs sprite and audio channel state for one frame tick.
func (f *FrameLogger) LogFrame(frame uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.enabled {
		return
	}

	f.totalFrames++
	if f.totalFrames < f.startFrame {
		return
	}
	if f.maxFrames > 0 && f.currentFrame >= f.maxFrames {
		f.enabled = false
		return
	}
	f.currentFrame++

	fmt.Fprintf(f.file, "Frame %6d | ", frame)

	if f.sprites != nil {
		for ch := 0; ch < f.numChannels; ch++ {
			entered, castLib, castMember, x, y, ink := f.sprites.GetChannelState(ch)
			if entered {
				fmt.Fprintf(f.file, "S%d:%d,%d@%d,%d/i%d ", ch, castLib, castMember, x, y, ink)
			}
		}
	}

	fmt.Fprintf(f.file, "| ")

	if f.audio != nil {
		fmt.Fprintf(f.file, "MV:%02X ", f.audio.GetMasterVolume())
		for ch := 0; ch < f.numAudioChannels; ch++ {
			status, vol, pan, loopsRemaining := f.audio.GetChannelState(ch)
			if status != "Stopped" {
				fmt.Fprintf(f.file, "A%d:%s/v%02X/p%d/l%d ", ch, status, vol, pan, loopsRemaining)
			}
		}
	}

	fmt.Fprintln(f.file)
}

// SetEnabled enables or disables logging.
func (f *FrameLogger) SetEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
}

// Close closes the underlying log file.
func (f *FrameLogger) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.enabled = false
	if f.file != nil {
		fmt.Fprintf(f.file, "\n\nLog complete. Total frames logged: %d\n", f.currentFrame)
		err := f.file.Close()
		f.file = nil
		return err
	}
	return nil
}

// IsEnabled reports whether logging is currently active.
func (f *FrameLogger) IsEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled && (f.maxFrames == 0 || f.currentFrame < f.maxFrames)
}
