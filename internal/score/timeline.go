// Package score reconstructs a movie's frame-channel timeline from the
// delta-encoded score chunk and exposes it as sprite spans with attached
// behaviors, ready for the sprite state machine (internal/sprite) and
// keyframe track builder (internal/keyframe) to consume.
package score

import (
	"fmt"

	"directorcore/internal/scorechunk"
)

// Reserved channel indices (spec.md §3 Score data model).
const (
	ChannelFrameScript = 0
	ChannelPalette     = 1
	ChannelTransition  = 2
	ChannelSound1      = 3
	ChannelSound2      = 4
	ChannelTempo       = 5
	FirstSpriteChannel = 6
)

// FrameChannelEntry is one retained sprite frame-channel-data record.
type FrameChannelEntry struct {
	Frame   uint32
	Channel int
	Record  scorechunk.SpriteRecord
}

// SoundChannelEntry is one retained sound-channel record (channels 3/4).
type SoundChannelEntry struct {
	Frame   uint32
	Channel int
	Record  scorechunk.SoundChannelRecord
}

// TempoChannelEntry is one retained tempo record (channel 5).
type TempoChannelEntry struct {
	Frame  uint32
	Record scorechunk.TempoRecord
}

// Timeline is the reconstructed, record-by-record view of a movie's score,
// produced once at load time per spec.md's "Delta-encoded score" design
// note: reconstruction is materialized up front rather than recomputed on
// every tick.
type Timeline struct {
	Header        scorechunk.StreamHeader
	FrameChannels []FrameChannelEntry
	SoundChannels []SoundChannelEntry
	TempoChannels []TempoChannelEntry

	byChannel map[int][]FrameChannelEntry
	byFrameCh map[uint64]scorechunk.SpriteRecord
}

func frameChKey(frame uint32, channel int) uint64 {
	return uint64(frame)<<32 | uint64(uint32(channel))
}

// Reconstruct decodes the delta-frame stream into a dense channel buffer
// (scorechunk.DecodeChannelBuffer) and then parses it record-by-record per
// spec.md §4.3: channels 3-4 as sound-channel records (non-zero cast
// members only), channel 5 as tempo records (no-change/empty markers
// skipped), all other channels as sprite frame-channel-data (retained only
// when non-default, since Director sparsely stores keyframe endpoints).
func Reconstruct(header scorechunk.StreamHeader, stream []byte) (*Timeline, error) {
	buf, err := scorechunk.DecodeChannelBuffer(header, scorechunk.NewByteReader(stream))
	if err != nil {
		return nil, fmt.Errorf("score: reconstruct channel buffer: %w", err)
	}

	tl := &Timeline{
		Header:    header,
		byChannel: make(map[int][]FrameChannelEntry),
		byFrameCh: make(map[uint64]scorechunk.SpriteRecord),
	}
	frameSize := int(header.NumChannels) * int(header.SpriteRecordSize)

	for frame := uint32(0); frame < header.FrameCount; frame++ {
		frameOffset := int(frame) * frameSize
		for ch := 0; ch < int(header.NumChannels); ch++ {
			start := frameOffset + ch*int(header.SpriteRecordSize)
			end := start + int(header.SpriteRecordSize)
			if end > len(buf) {
				return nil, fmt.Errorf("score: frame %d channel %d exceeds reconstructed buffer", frame, ch)
			}
			chunk := buf[start:end]

			switch ch {
			case ChannelSound1, ChannelSound2:
				rec, err := scorechunk.DecodeSoundChannelRecord(chunk)
				if err != nil {
					return nil, fmt.Errorf("score: frame %d sound channel %d: %w", frame, ch, err)
				}
				if rec.CastMember != 0 {
					tl.SoundChannels = append(tl.SoundChannels, SoundChannelEntry{Frame: frame, Channel: ch, Record: rec})
				}
			case ChannelTempo:
				rec, err := scorechunk.DecodeTempoRecord(chunk)
				if err != nil {
					return nil, fmt.Errorf("score: frame %d tempo channel: %w", frame, err)
				}
				if !rec.IsNoChangeMarker() && !rec.IsEmpty() {
					tl.TempoChannels = append(tl.TempoChannels, TempoChannelEntry{Frame: frame, Record: rec})
				}
			default:
				rec, err := scorechunk.DecodeSpriteRecord(chunk)
				if err != nil {
					return nil, fmt.Errorf("score: frame %d sprite channel %d: %w", frame, ch, err)
				}
				if !rec.IsDefault() {
					entry := FrameChannelEntry{Frame: frame, Channel: ch, Record: rec}
					tl.FrameChannels = append(tl.FrameChannels, entry)
					tl.byChannel[ch] = append(tl.byChannel[ch], entry)
					tl.byFrameCh[frameChKey(frame, ch)] = rec
				}
			}
		}
	}

	return tl, nil
}

// RecordAt looks up the retained frame-channel-data record for
// (frame, channel), if any was retained during reconstruction.
func (t *Timeline) RecordAt(frame uint32, channel int) (scorechunk.SpriteRecord, bool) {
	rec, ok := t.byFrameCh[frameChKey(frame, channel)]
	return rec, ok
}

// ChannelEntries returns the retained frame-channel-data entries for one
// channel, in ascending frame order (entries are appended during
// reconstruction, which already walks frames in order).
func (t *Timeline) ChannelEntries(channel int) []FrameChannelEntry {
	return t.byChannel[channel]
}
