package sdlhost

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/go-mp3"
	"github.com/veandco/go-sdl2/sdl"

	"directorcore/internal/host"
)

// AudioContext is the SDL2-backed implementation of host.AudioContext.
// Playback is driven the same way the teacher's ui.go Run loop drives it:
// samples are pushed with sdl.QueueAudio rather than pulled through an SDL
// audio callback, generalized here from "one fixed 2-channel device" to
// per-channel volume/pan mixing since Director addresses up to
// NumChannels independent sound channels, not a single stereo bus.
type AudioContext struct {
	dev        sdl.AudioDeviceID
	sampleRate uint32

	mu      sync.Mutex
	buffers map[host.BufferHandle][]float32
	nextID  host.BufferHandle

	channels map[int]*channelState
}

type channelState struct {
	volume uint8
	pan    int8
	onEnd  func()
	stop   chan struct{}
}

// NewAudioContext opens the default SDL audio output device at sampleRate,
// matching ui.go's AUDIO_F32 stereo AudioSpec.
func NewAudioContext(sampleRate uint32) (*AudioContext, error) {
	spec := sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_F32,
		Channels: 2,
		Samples:  735,
	}
	dev, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("sdlhost: open audio device: %w", err)
	}
	sdl.PauseAudioDevice(dev, false)
	return &AudioContext{
		dev:        dev,
		sampleRate: sampleRate,
		buffers:    make(map[host.BufferHandle][]float32),
		channels:   make(map[int]*channelState),
	}, nil
}

// Close pauses and closes the audio device.
func (a *AudioContext) Close() {
	sdl.CloseAudioDevice(a.dev)
}

func (a *AudioContext) CreateBuffer(samples []float32, sampleRate uint32, channels int) (host.BufferHandle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	id := a.nextID
	a.buffers[id] = samples
	return id, nil
}

func (a *AudioContext) channel(n int) *channelState {
	a.mu.Lock()
	defer a.mu.Unlock()
	ch, ok := a.channels[n]
	if !ok {
		ch = &channelState{volume: 255}
		a.channels[n] = ch
	}
	return ch
}

// Play streams buf's samples to the device in 735-sample chunks (matching
// ui.go's per-frame Samples count), applying the channel's current
// volume/pan before each chunk is queued, then invokes the channel's
// OnEnded callback.
func (a *AudioContext) Play(buf host.BufferHandle, channelNum int) error {
	a.mu.Lock()
	samples, ok := a.buffers[buf]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("sdlhost: unknown audio buffer %d", buf)
	}

	ch := a.channel(channelNum)
	stop := make(chan struct{})
	ch.stop = stop

	go func() {
		const chunk = 735
		for pos := 0; pos < len(samples); pos += chunk {
			select {
			case <-stop:
				return
			default:
			}
			end := pos + chunk
			if end > len(samples) {
				end = len(samples)
			}
			a.queueStereo(samples[pos:end], ch.volume, ch.pan)
		}
		if ch.onEnd != nil {
			ch.onEnd()
		}
	}()
	return nil
}

// queueStereo scales a mono chunk by volume/pan and interleaves it into a
// stereo AUDIO_F32 byte buffer, matching ui.go's float32-to-bytes
// interleaving (Run's "Queue audio samples" block), generalized from
// duplicate-to-both-channels to a linear stereo pan law.
func (a *AudioContext) queueStereo(samples []float32, volume uint8, pan int8) {
	gain := float32(volume) / 255
	leftGain, rightGain := gain, gain
	if pan < 0 {
		rightGain *= float32(128+int(pan)) / 128
	} else if pan > 0 {
		leftGain *= float32(128-int(pan)) / 128
	}

	buf := make([]byte, len(samples)*8)
	for i, s := range samples {
		writeF32LE(buf, i*8, s*leftGain)
		writeF32LE(buf, i*8+4, s*rightGain)
	}
	sdl.QueueAudio(a.dev, buf)
}

func writeF32LE(buf []byte, offset int, v float32) {
	bits := math.Float32bits(v)
	buf[offset] = byte(bits)
	buf[offset+1] = byte(bits >> 8)
	buf[offset+2] = byte(bits >> 16)
	buf[offset+3] = byte(bits >> 24)
}

func (a *AudioContext) Stop(channelNum int) error {
	ch := a.channel(channelNum)
	if ch.stop != nil {
		close(ch.stop)
		ch.stop = nil
	}
	return nil
}

func (a *AudioContext) SetVolume(channelNum int, volume uint8) error {
	a.channel(channelNum).volume = volume
	return nil
}

func (a *AudioContext) SetPan(channelNum int, pan int8) error {
	a.channel(channelNum).pan = pan
	return nil
}

func (a *AudioContext) OnEnded(channelNum int, cb func()) error {
	a.channel(channelNum).onEnd = cb
	return nil
}

// DecodeAsync decodes MP3 bytes off the main tick using
// github.com/hajimehoshi/go-mp3, the decoder the pack's audio examples
// use, fulfilling the hostMP3Decode callback internal/audio/codec.Decode
// expects for frames it cannot decode itself.
func (a *AudioContext) DecodeAsync(data []byte, done func([]float32, error)) {
	go func() {
		dec, err := mp3.NewDecoder(bytes.NewReader(data))
		if err != nil {
			done(nil, fmt.Errorf("sdlhost: mp3 decode: %w", err))
			return
		}
		pcm := make([]byte, 0, dec.Length())
		buf := make([]byte, 4096)
		for {
			n, rerr := dec.Read(buf)
			pcm = append(pcm, buf[:n]...)
			if rerr != nil {
				break
			}
		}
		samples := make([]float32, len(pcm)/4)
		for i := range samples {
			samples[i] = int16LEToFloat32(pcm[i*4], pcm[i*4+1])
		}
		done(samples, nil)
	}()
}

func int16LEToFloat32(lo, hi byte) float32 {
	v := int16(uint16(lo) | uint16(hi)<<8)
	return float32(v) / 32768
}

// ResampleOffline performs linear-interpolation sample-rate conversion off
// the main tick. No library in the pack specializes in this narrow a
// transform (go-mp3/oto decode and play at a fixed rate rather than
// resample arbitrary PCM), so this is hand-rolled; see DESIGN.md.
func (a *AudioContext) ResampleOffline(samples []float32, fromRate, toRate uint32, done func([]float32, error)) {
	go func() {
		if fromRate == toRate || len(samples) == 0 {
			done(samples, nil)
			return
		}
		ratio := float64(fromRate) / float64(toRate)
		outLen := int(float64(len(samples)) / ratio)
		out := make([]float32, outLen)
		for i := range out {
			srcPos := float64(i) * ratio
			lo := int(srcPos)
			if lo+1 >= len(samples) {
				out[i] = samples[len(samples)-1]
				continue
			}
			frac := float32(srcPos - float64(lo))
			out[i] = samples[lo]*(1-frac) + samples[lo+1]*frac
		}
		done(out, nil)
	}()
}
