package player

import (
	"testing"

	"github.com/stretchr/testify/require"

	"directorcore/internal/audio"
	"directorcore/internal/bitmap"
	"directorcore/internal/builtin"
	"directorcore/internal/color"
	"directorcore/internal/compositor"
	"directorcore/internal/compositor/gpu"
	"directorcore/internal/score"
	"directorcore/internal/scorechunk"
	"directorcore/internal/sprite"
)

// fakeHost is a no-op sprite.Host: it instantiates, parameterizes, and
// dispatches without ever touching Lingo, matching the contract that
// Machine defers all script execution.
type fakeHost struct{ next sprite.InstanceHandle }

func (h *fakeHost) InstantiateBehavior(ref sprite.CastMemberRef) (sprite.InstanceHandle, error) {
	h.next++
	return h.next, nil
}
func (h *fakeHost) ApplyParameters(sprite.InstanceHandle, string) error { return nil }
func (h *fakeHost) Dispatch(sprite.InstanceHandle, string, []any) (bool, error) {
	return true, nil
}

// fakeCast resolves every sprite to the same 10x10 bitmap and nil palette.
type fakeCast struct{ bmp *bitmap.Bitmap }

func (c *fakeCast) Bitmap(sprite.CastMemberRef) (*bitmap.Bitmap, *color.Palette, error) {
	return c.bmp, nil, nil
}
func (c *fakeCast) SoundMember(sprite.CastMemberRef) (audio.MemberHandle, bool) {
	return audio.MemberHandle{}, false
}

// fakeCanvas records every presented frame instead of drawing it anywhere.
type fakeCanvas struct {
	presented int
	flipped   int
}

func (c *fakeCanvas) PresentFramebuffer(*compositor.Framebuffer) error {
	c.presented++
	return nil
}
func (c *fakeCanvas) UploadTexture(string, gpu.TextureUpload) error       { return nil }
func (c *fakeCanvas) DrawQuad(string, compositor.Rect, gpu.ShaderParams) error { return nil }
func (c *fakeCanvas) Flip() error {
	c.flipped++
	return nil
}

// buildDeltaStream mirrors internal/score's own test helper: it encodes a
// sparse set of byte-offset edits into one delta-frame stream.
func buildDeltaStream(edits map[int][]byte) []byte {
	var body []byte
	for offset, data := range edits {
		body = append(body, byte(len(data)>>8), byte(len(data)))
		body = append(body, byte(offset>>8), byte(offset))
		body = append(body, data...)
	}
	total := len(body) + 2
	frame := []byte{byte(total >> 8), byte(total)}
	frame = append(frame, body...)
	frame = append(frame, 0, 0)
	return frame
}

// spriteRecordBytes builds a 48-byte sprite record with cast member and
// position set, everything else left at its zero (default) value.
func spriteRecordBytes(castMember uint16, posX, posY int16) []byte {
	buf := make([]byte, scorechunk.SpriteRecordSize)
	buf[6] = byte(castMember >> 8)
	buf[7] = byte(castMember)
	buf[12] = byte(uint16(posY) >> 8)
	buf[13] = byte(uint16(posY))
	buf[14] = byte(uint16(posX) >> 8)
	buf[15] = byte(uint16(posX))
	return buf
}

// buildTimeline reconstructs a four-frame timeline with records written on
// channel 6 at frames 0 and 2: frame 0 seeds the sprite at (10,10), frame 2 moves it to (50,10), so the
// position track built from it carries a real keyframe a caller can
// observe mid-span.
func buildTimeline(t *testing.T) *score.Timeline {
	t.Helper()
	header := scorechunk.StreamHeader{FrameCount: 4, SpriteRecordSize: 48, NumChannels: 7}
	frameSize := 7 * 48
	stream := buildDeltaStream(map[int][]byte{
		0*frameSize + score.FirstSpriteChannel*48: spriteRecordBytes(1, 10, 10),
		2*frameSize + score.FirstSpriteChannel*48: spriteRecordBytes(1, 50, 10),
	})
	tl, err := score.Reconstruct(header, stream)
	require.NoError(t, err)
	return tl
}

func newTestMovie(t *testing.T) (*Movie, *fakeCanvas) {
	t.Helper()
	tl := buildTimeline(t)
	span := score.Span{
		Channel: score.FirstSpriteChannel,
		Start:   0,
		End:     3,
		Tween:   scorechunk.TweenInfo{Flags: 1<<2 | 1<<6}, // path + blend
	}
	bmp, err := bitmap.New(10, 10, bitmap.Depth8, bitmap.Depth8)
	require.NoError(t, err)

	canvas := &fakeCanvas{}
	m := NewMovie(tl, []score.Span{span}, &fakeHost{}, &fakeCast{bmp: bmp}, canvas, nil, 64, 64, 1, nil)
	return m, canvas
}

func TestTickEntersSpriteAndComposites(t *testing.T) {
	m, canvas := newTestMovie(t)

	require.NoError(t, m.Tick(1.0/60))
	sp, ok := m.Machine.Sprite(score.FirstSpriteChannel)
	require.True(t, ok)
	require.True(t, sp.Entered)
	require.Equal(t, int32(10), sp.LocH)

	require.Equal(t, 1, canvas.presented)
	require.Equal(t, 1, canvas.flipped)
}

func TestBuildSpriteViewsAppliesPositionTrackOverride(t *testing.T) {
	m, _ := newTestMovie(t)

	// Frame 1: before the track's second keyframe at frame 2, so the
	// span-seeded position (10,10) still holds.
	require.NoError(t, m.Tick(1.0/60))
	views := m.buildSpriteViews()
	require.Len(t, views, 1)
	require.Equal(t, int32(10), views[0].Rect.X)

	// Frame 2: the position track's second keyframe takes effect.
	require.NoError(t, m.Tick(1.0/60))
	views = m.buildSpriteViews()
	require.Len(t, views, 1)
	require.Equal(t, int32(50), views[0].Rect.X)
}

func TestCurrentFrameAndKeysDown(t *testing.T) {
	m, _ := newTestMovie(t)
	require.Equal(t, 0, m.CurrentFrame())
	require.NoError(t, m.Tick(1.0/60))
	require.Equal(t, 1, m.CurrentFrame())
	require.Empty(t, m.KeysDown())
}

func TestCallGlobalHandlerWithNoTableInstalledReturnsError(t *testing.T) {
	m, _ := newTestMovie(t)
	_, err := m.CallGlobalHandler("go", []builtin.Datum{})
	require.Error(t, err)
}
