package score

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"directorcore/internal/scorechunk"
)

func buildDeltaStream(t *testing.T, header scorechunk.StreamHeader, edits map[int][]byte) []byte {
	t.Helper()
	var body []byte
	for offset, data := range edits {
		body = append(body, byte(len(data)>>8), byte(len(data)))
		body = append(body, byte(offset>>8), byte(offset))
		body = append(body, data...)
	}
	total := len(body) + 2
	frame := []byte{byte(total >> 8), byte(total)}
	frame = append(frame, body...)
	frame = append(frame, 0, 0) // terminator
	return frame
}

func nonDefaultSpriteRecord(castMember uint16) []byte {
	buf := make([]byte, scorechunk.SpriteRecordSize)
	buf[6] = byte(castMember >> 8)
	buf[7] = byte(castMember)
	return buf
}

func TestReconstructRetainsNonDefaultSpriteRecord(t *testing.T) {
	header := scorechunk.StreamHeader{FrameCount: 1, SpriteRecordSize: 48, NumChannels: 7}
	stream := buildDeltaStream(t, header, map[int][]byte{
		6 * 48: nonDefaultSpriteRecord(99), // channel 6, first sprite channel
	})

	tl, err := Reconstruct(header, stream)
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := tl.RecordAt(0, FirstSpriteChannel)
	if !ok {
		t.Fatal("expected retained sprite record at (0, 6)")
	}
	if rec.CastMember != 99 {
		t.Fatalf("CastMember = %d, want 99", rec.CastMember)
	}
}

func TestReconstructDropsDefaultSpriteRecord(t *testing.T) {
	header := scorechunk.StreamHeader{FrameCount: 1, SpriteRecordSize: 48, NumChannels: 7}
	stream := buildDeltaStream(t, header, nil)

	tl, err := Reconstruct(header, stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl.FrameChannels) != 0 {
		t.Fatalf("expected no retained frame-channel entries, got %d", len(tl.FrameChannels))
	}
}

func TestReconstructSoundChannelNonZeroOnly(t *testing.T) {
	header := scorechunk.StreamHeader{FrameCount: 1, SpriteRecordSize: 48, NumChannels: 4}
	soundRec := make([]byte, 48)
	soundRec[3] = 5 // cast_member byte within the 4-byte sound record prefix
	stream := buildDeltaStream(t, header, map[int][]byte{
		ChannelSound1 * 48: soundRec,
	})

	tl, err := Reconstruct(header, stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl.SoundChannels) != 1 {
		t.Fatalf("expected 1 sound channel entry, got %d", len(tl.SoundChannels))
	}
	if tl.SoundChannels[0].Record.CastMember != 5 {
		t.Fatalf("CastMember = %d, want 5", tl.SoundChannels[0].Record.CastMember)
	}
}

func TestReconstructTempoSkipsMarkers(t *testing.T) {
	header := scorechunk.StreamHeader{FrameCount: 1, SpriteRecordSize: 48, NumChannels: 6}
	noChange := make([]byte, 48)
	noChange[0], noChange[1] = 0xFF, 0xFE
	stream := buildDeltaStream(t, header, map[int][]byte{
		ChannelTempo * 48: noChange,
	})

	tl, err := Reconstruct(header, stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl.TempoChannels) != 0 {
		t.Fatalf("expected no-change tempo marker to be skipped, got %d entries", len(tl.TempoChannels))
	}
}

func TestReconstructTempoRetainsRealData(t *testing.T) {
	header := scorechunk.StreamHeader{FrameCount: 1, SpriteRecordSize: 48, NumChannels: 6}
	tempoRec := make([]byte, 48)
	tempoRec[4] = 30 // fps
	stream := buildDeltaStream(t, header, map[int][]byte{
		ChannelTempo * 48: tempoRec,
	})

	tl, err := Reconstruct(header, stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl.TempoChannels) != 1 {
		t.Fatalf("expected 1 tempo entry, got %d", len(tl.TempoChannels))
	}
	if tl.TempoChannels[0].Record.Tempo != 30 {
		t.Fatalf("Tempo = %d, want 30", tl.TempoChannels[0].Record.Tempo)
	}
}

func TestReconstructOutOfBoundsPropagatesError(t *testing.T) {
	header := scorechunk.StreamHeader{FrameCount: 1, SpriteRecordSize: 48, NumChannels: 1}
	stream := buildDeltaStream(t, header, map[int][]byte{
		100: make([]byte, 48), // exceeds 1*48 buffer
	})

	if _, err := Reconstruct(header, stream); err == nil {
		t.Fatal("expected reconstruction to propagate the out-of-bounds error")
	}
}

// TestReconstructFullTimelineShape diffs the whole reconstructed Timeline
// against a golden value rather than field-by-field, so a stray change to
// any retained record surfaces immediately with a readable dump instead of
// a silent pass.
func TestReconstructFullTimelineShape(t *testing.T) {
	header := scorechunk.StreamHeader{FrameCount: 1, SpriteRecordSize: 48, NumChannels: 7}
	stream := buildDeltaStream(t, header, map[int][]byte{
		6 * 48: nonDefaultSpriteRecord(99),
	})

	tl, err := Reconstruct(header, stream)
	if err != nil {
		t.Fatal(err)
	}

	want := []FrameChannelEntry{{Frame: 0, Channel: FirstSpriteChannel}}
	want[0].Record.CastMember = 99 // uint16 field on scorechunk.SpriteRecord

	if !reflect.DeepEqual(tl.FrameChannels, want) {
		t.Fatalf("FrameChannels mismatch:\ngot:  %s\nwant: %s", spew.Sdump(tl.FrameChannels), spew.Sdump(want))
	}
}

func TestChannelEntriesFiltersByChannel(t *testing.T) {
	header := scorechunk.StreamHeader{FrameCount: 2, SpriteRecordSize: 48, NumChannels: 8}
	stream := buildDeltaStream(t, header, map[int][]byte{
		6 * 48: nonDefaultSpriteRecord(1),
		7 * 48: nonDefaultSpriteRecord(2),
	})

	tl, err := Reconstruct(header, stream)
	if err != nil {
		t.Fatal(err)
	}
	entries := tl.ChannelEntries(6)
	if len(entries) == 0 {
		t.Fatal("expected channel 6 entries")
	}
	for _, e := range entries {
		if e.Channel != 6 {
			t.Fatalf("ChannelEntries(6) returned entry for channel %d", e.Channel)
		}
	}
}
