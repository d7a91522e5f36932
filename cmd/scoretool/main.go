// Command scoretool reconstructs a movie's frame-channel matrix from a
// delta-encoded score stream and dumps it as YAML for offline inspection,
// the scoring-side analogue of cmd/lingo-dump. Input is the same bundle
// manifest.toml shape cmd/director-player reads (see that package's doc
// comment for why TOML stands in for the out-of-scope chunk reader), but
// scoretool only needs the [movie] and [[sprite]] tables.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"directorcore/internal/score"
	"directorcore/internal/scorechunk"
)

type movieManifest struct {
	FrameCount       uint32 `toml:"frame_count"`
	SpriteRecordSize uint16 `toml:"sprite_record_size"`
	NumChannels      uint16 `toml:"num_channels"`
}

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
}

type manifestFile struct {
	Movie  movieManifest    `toml:"movie"`
	Sprite []spriteManifest `toml:"sprite"`
}

// frameChannelDump is one retained frame-channel entry, in the shape
// scoretool emits as YAML: compact, field names matching spec.md §3's
// sprite-channel vocabulary rather than the wire record's byte offsets.
type frameChannelDump struct {
	Frame      uint32 `yaml:"frame"`
	Channel    int    `yaml:"channel"`
	CastLib    uint16 `yaml:"cast_lib"`
	CastMember uint16 `yaml:"cast_member"`
	PosX       int16  `yaml:"pos_x"`
	PosY       int16  `yaml:"pos_y"`
	Width      uint16 `yaml:"width"`
	Height     uint16 `yaml:"height"`
	Ink        uint8  `yaml:"ink"`
	Blend      uint8  `yaml:"blend"`
}

func main() {
	path := flag.String("manifest", "", "Path to a bundle manifest.toml")
	channel := flag.Int("channel", -1, "Restrict the dump to one channel (-1 for every channel)")
	flag.Parse()

	if *path == "" {
		fmt.Println("Usage: scoretool -manifest <bundle>/manifest.toml [-channel N]")
		os.Exit(1)
	}

	var mf manifestFile
	if _, err := toml.DecodeFile(*path, &mf); err != nil {
		fmt.Fprintf(os.Stderr, "scoretool: decode %s: %v\n", *path, err)
		os.Exit(1)
	}

	header := scorechunk.StreamHeader{
		FrameCount:       mf.Movie.FrameCount,
		SpriteRecordSize: mf.Movie.SpriteRecordSize,
		NumChannels:      mf.Movie.NumChannels,
	}
	stream := encodeDeltaStream(mf.Movie, mf.Sprite)
	timeline, err := score.Reconstruct(header, stream)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scoretool: reconstruct: %v\n", err)
		os.Exit(1)
	}

	var rows []frameChannelDump
	for _, e := range timeline.FrameChannels {
		if *channel >= 0 && e.Channel != *channel {
			continue
		}
		rows = append(rows, frameChannelDump{
			Frame:      e.Frame,
			Channel:    e.Channel,
			CastLib:    e.Record.CastLib,
			CastMember: e.Record.CastMember,
			PosX:       e.Record.PosX,
			PosY:       e.Record.PosY,
			Width:      e.Record.Width,
			Height:     e.Record.Height,
			Ink:        e.Record.Ink,
			Blend:      e.Record.Blend,
		})
	}

	out, err := yaml.Marshal(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scoretool: marshal yaml: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

// encodeSpriteRecord packs a manifest sprite override into the 48-byte wire
// layout scorechunk.DecodeSpriteRecord expects.
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

// encodeDeltaStream mirrors cmd/director-player's manifest.go helper of the
// same name: turns sparse (frame,channel) sprite overrides into one
// delta-encoded stream in the length-prefixed edit/frame-terminator wire
// format scorechunk.DecodeChannelBuffer expects.
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
