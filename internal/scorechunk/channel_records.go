package scorechunk

import "fmt"

// SoundChannelRecord is the decoded record for score channels 3-4 (the two
// reserved sound channels), spec.md §3. Only the cast member byte is
// meaningful; a zero cast member means "no sound this frame".
type SoundChannelRecord struct {
	CastMember uint8
}

// DecodeSoundChannelRecord decodes the 4-byte sound-channel record.
func DecodeSoundChannelRecord(data []byte) (SoundChannelRecord, error) {
	if len(data) < 4 {
		return SoundChannelRecord{}, fmt.Errorf("scorechunk: sound channel record needs 4 bytes, got %d", len(data))
	}
	return SoundChannelRecord{CastMember: data[3]}, nil
}

// TempoRecord is the decoded record for score channel 5 (tempo), spec.md
// §3/§4.3. Flags1/Flags2 identify the two marker patterns that must be
// skipped during reconstruction: {0xFF,0xFE} ("no change") and the
// all-zero marker (no tempo data this frame).
type TempoRecord struct {
	Flags1       uint8
	Flags2       uint8
	Tempo        uint8
	WaitFlags    uint16
	ChannelFlags uint16
	FrameData    uint16
}

// IsNoChangeMarker reports whether this record is the {0xFF,0xFE}
// "no change" sentinel that must never be treated as real tempo data.
func (t TempoRecord) IsNoChangeMarker() bool { return t.Flags1 == 0xFF && t.Flags2 == 0xFE }

// IsEmpty reports whether this record carries no tempo information.
func (t TempoRecord) IsEmpty() bool { return t.Flags1 == 0 && t.Flags2 == 0 && t.Tempo == 0 }

// DecodeTempoRecord decodes the 20-byte tempo-channel record.
func DecodeTempoRecord(data []byte) (TempoRecord, error) {
	if len(data) < 20 {
		return TempoRecord{}, fmt.Errorf("scorechunk: tempo record needs 20 bytes, got %d", len(data))
	}
	r := NewByteReader(data)
	flags1, _ := r.ReadU8()
	flags2, _ := r.ReadU8()
	_, _ = r.ReadU8() // unk3
	_, _ = r.ReadU8() // unk4
	tempo, _ := r.ReadU8()
	_, _ = r.ReadU8() // skip
	_, _ = r.ReadU8() // skip
	_, _ = r.ReadU8() // skip
	waitFlags, ok := r.ReadU16()
	if !ok {
		return TempoRecord{}, fmt.Errorf("scorechunk: truncated tempo wait_flags")
	}
	channelFlags, ok := r.ReadU16()
	if !ok {
		return TempoRecord{}, fmt.Errorf("scorechunk: truncated tempo channel_flags")
	}
	for i := 0; i < 6; i++ {
		if _, ok := r.ReadU8(); !ok {
			return TempoRecord{}, fmt.Errorf("scorechunk: truncated tempo padding")
		}
	}
	frameData, ok := r.ReadU16()
	if !ok {
		return TempoRecord{}, fmt.Errorf("scorechunk: truncated tempo frame_data")
	}

	return TempoRecord{
		Flags1:       flags1,
		Flags2:       flags2,
		Tempo:        tempo,
		WaitFlags:    waitFlags,
		ChannelFlags: channelFlags,
		FrameData:    frameData,
	}, nil
}
