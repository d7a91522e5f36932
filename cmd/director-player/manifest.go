package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"directorcore/internal/scorechunk"
)

// manifestFile is this project's own stand-in for a parsed Director movie
// container: the real RIFF/RIFX chunk reader is out of scope (the core
// starts from already-decoded chunk bytes, spec.md's §6 external chunk
// contracts), so a director-player bundle carries those contracts
// pre-rendered as TOML instead of a binary .dir file. Grounded on
// cmd/emulator/main.go's flag-driven ROM load, generalized from "read one
// assembled binary" to "read one assembled TOML bundle".
type manifestFile struct {
	Movie  movieManifest      `toml:"movie"`
	Cast   []castManifest     `toml:"cast"`
	Sound  []soundManifest    `toml:"sound"`
	Sprite []spriteManifest   `toml:"sprite"`
	Label  []labelManifest    `toml:"label"`
}

type movieManifest struct {
	FrameCount       uint32  `toml:"frame_count"`
	SpriteRecordSize uint16  `toml:"sprite_record_size"`
	NumChannels      uint16  `toml:"num_channels"`
	StageWidth       int     `toml:"stage_width"`
	StageHeight      int     `toml:"stage_height"`
	NumAudioChannels int     `toml:"num_audio_channels"`
	SampleRate       uint32  `toml:"sample_rate"`
	TargetFPS        float64 `toml:"target_fps"`
	Palette          string  `toml:"palette"`
}

type castManifest struct {
	Lib    int32  `toml:"lib"`
	Member int32  `toml:"member"`
	Bitmap string `toml:"bitmap"`
	RegX   int    `toml:"reg_x"`
	RegY   int    `toml:"reg_y"`
}

type soundManifest struct {
	Lib    uint16 `toml:"lib"`
	Member uint16 `toml:"member"`
	File   string `toml:"file"`
}

// spriteManifest is one (frame, channel) sprite record override, mirroring
// scorechunk.SpriteRecord's fields a manifest author actually needs to set
// (unset fields stay at their zero/default value, matching Director's own
// sparse-storage convention the delta stream encodes).
type spriteManifest struct {
	Frame      uint32 `toml:"frame"`
	Channel    int    `toml:"channel"`
	CastLib    uint16 `toml:"cast_lib"`
	CastMember uint16 `toml:"cast_member"`
	PosX       int16  `toml:"pos_x"`
	PosY       int16  `toml:"pos_y"`
	Width      uint16 `toml:"width"`
	Height     uint16 `toml:"height"`
	Ink        uint8  `toml:"ink"`
	Blend      uint8  `toml:"blend"`

	SpanStart    uint32              `toml:"span_start"`
	SpanEnd      uint32              `toml:"span_end"`
	TweenFlags   uint32              `toml:"tween_flags"`
	Behaviors    []behaviorManifest  `toml:"behaviors"`
}

type behaviorManifest struct {
	Lib       uint16 `toml:"lib"`
	Member    uint16 `toml:"member"`
	Parameter string `toml:"parameter"`
}

type labelManifest struct {
	Frame uint32 `toml:"frame"`
	Name  string `toml:"name"`
}

// scorechunkHeader projects a manifest's [movie] table into the
// scorechunk.StreamHeader score.Reconstruct expects.
func scorechunkHeader(movie movieManifest) scorechunk.StreamHeader {
	return scorechunk.StreamHeader{
		FrameCount:       movie.FrameCount,
		SpriteRecordSize: movie.SpriteRecordSize,
		NumChannels:      movie.NumChannels,
	}
}

// loadManifestFile decodes a director-player bundle's manifest.toml.
func loadManifestFile(path string) (*manifestFile, error) {
	var m manifestFile
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("director-player: decode manifest %s: %w", path, err)
	}
	if m.Movie.FrameCount == 0 || m.Movie.SpriteRecordSize == 0 || m.Movie.NumChannels == 0 {
		return nil, fmt.Errorf("director-player: manifest %s missing [movie] frame_count/sprite_record_size/num_channels", path)
	}
	return &m, nil
}

// encodeSpriteRecord packs a manifest sprite override into the 48-byte wire
// layout scorechunk.DecodeSpriteRecord expects, so loading a bundle
// exercises the real C3 decoder instead of bypassing it.
func encodeSpriteRecord(sm spriteManifest) []byte {
	buf := make([]byte, scorechunk.SpriteRecordSize)
	buf[1] = sm.Ink
	buf[4] = byte(sm.CastLib >> 8)
	buf[5] = byte(sm.CastLib)
	buf[6] = byte(sm.CastMember >> 8)
	buf[7] = byte(sm.CastMember)
	buf[12] = byte(uint16(sm.PosY) >> 8)
	buf[13] = byte(uint16(sm.PosY))
	buf[14] = byte(uint16(sm.PosX) >> 8)
	buf[15] = byte(uint16(sm.PosX))
	buf[16] = byte(sm.Height >> 8)
	buf[17] = byte(sm.Height)
	buf[18] = byte(sm.Width >> 8)
	buf[19] = byte(sm.Width)
	buf[21] = sm.Blend
	return buf
}

// encodeDeltaStream turns the manifest's sparse (frame,channel) sprite
// overrides into one delta-encoded stream, in the length-prefixed
// edit/frame-terminator wire format scorechunk.DecodeChannelBuffer expects
// (spec.md §4.3, §6 "Delta-encoded score").
func encodeDeltaStream(movie movieManifest, sprites []spriteManifest) []byte {
	byFrame := make(map[uint32][]spriteManifest)
	for _, sm := range sprites {
		byFrame[sm.Frame] = append(byFrame[sm.Frame], sm)
	}

	var stream []byte
	for frame := uint32(0); frame < movie.FrameCount; frame++ {
		var body []byte
		for _, sm := range byFrame[frame] {
			data := encodeSpriteRecord(sm)
			offset := sm.Channel * int(movie.SpriteRecordSize)
			body = append(body, byte(len(data)>>8), byte(len(data)))
			body = append(body, byte(offset>>8), byte(offset))
			body = append(body, data...)
		}
		total := len(body) + 2
		stream = append(stream, byte(total>>8), byte(total))
		stream = append(stream, body...)
	}
	stream = append(stream, 0, 0)
	return stream
}

// buildSpans groups the manifest's sprite overrides into
// scorechunk.FrameInterval + per-interval scorechunk.Behavior spans, one
// interval per distinct (channel, span_start, span_end) the manifest names.
func buildSpans(sprites []spriteManifest) ([]scorechunk.FrameInterval, [][]scorechunk.Behavior) {
	type key struct {
		channel    int
		start, end uint32
	}
	seen := make(map[key]int)
	var intervals []scorechunk.FrameInterval
	var behaviors [][]scorechunk.Behavior

	for _, sm := range sprites {
		if sm.SpanStart == 0 && sm.SpanEnd == 0 {
			continue
		}
		k := key{channel: sm.Channel, start: sm.SpanStart, end: sm.SpanEnd}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = len(intervals)
		intervals = append(intervals, scorechunk.FrameInterval{
			StartFrame:   sm.SpanStart,
			EndFrame:     sm.SpanEnd,
			ChannelIndex: uint32(sm.Channel),
			Tween:        scorechunk.TweenInfo{Flags: sm.TweenFlags},
		})
		var bs []scorechunk.Behavior
		for _, b := range sm.Behaviors {
			bs = append(bs, scorechunk.Behavior{CastLib: b.Lib, CastMember: b.Member, Parameter: b.Parameter})
		}
		behaviors = append(behaviors, bs)
	}
	return intervals, behaviors
}
