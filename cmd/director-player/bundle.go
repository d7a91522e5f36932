package main

import (
	"fmt"
	"os"
	"path/filepath"

	"directorcore/internal/audio"
	"directorcore/internal/bitmap"
	"directorcore/internal/color"
	"directorcore/internal/sprite"
)

// bundle is everything loaded from a director-player bundle directory: the
// decoded score timeline + spans (built by manifest.go), resolved cast
// bitmaps/palette, and raw sound bytes keyed by audio.MemberHandle.
type bundle struct {
	manifest *manifestFile
	palette  *color.Palette

	bitmaps map[sprite.CastMemberRef]*bitmap.Bitmap
	sounds  map[audio.MemberHandle][]byte
}

// loadBundle reads dir/manifest.toml and every cast bitmap/sound file it
// names, relative to dir.
func loadBundle(dir string) (*bundle, error) {
	m, err := loadManifestFile(filepath.Join(dir, "manifest.toml"))
	if err != nil {
		return nil, err
	}

	b := &bundle{
		manifest: m,
		bitmaps:  make(map[sprite.CastMemberRef]*bitmap.Bitmap),
		sounds:   make(map[audio.MemberHandle][]byte),
	}

	b.palette = namedBuiltinPalette(m.Movie.Palette)

	for _, c := range m.Cast {
		f, err := os.Open(filepath.Join(dir, c.Bitmap))
		if err != nil {
			return nil, fmt.Errorf("director-player: open cast bitmap %s: %w", c.Bitmap, err)
		}
		bmp, err := bitmap.LoadPreviewBMP(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("director-player: decode cast bitmap %s: %w", c.Bitmap, err)
		}
		bmp.RegPoint = bitmap.Point{X: c.RegX, Y: c.RegY}
		ref := sprite.CastMemberRef{CastLib: c.Lib, CastMember: c.Member}
		b.bitmaps[ref] = bmp
	}

	for _, s := range m.Sound {
		data, err := os.ReadFile(filepath.Join(dir, s.File))
		if err != nil {
			return nil, fmt.Errorf("director-player: read sound file %s: %w", s.File, err)
		}
		h := audio.MemberHandle{CastLib: s.Lib, CastMember: s.Member}
		b.sounds[h] = data
	}

	return b, nil
}

// Bitmap implements player.CastLibrary.
func (b *bundle) Bitmap(ref sprite.CastMemberRef) (*bitmap.Bitmap, *color.Palette, error) {
	bmp, ok := b.bitmaps[ref]
	if !ok {
		return nil, nil, fmt.Errorf("director-player: no cast bitmap for %+v", ref)
	}
	return bmp, b.palette, nil
}

// SoundMember implements player.CastLibrary: every sound in the manifest's
// [[sound]] table is addressable, with no separate cast-library indirection
// (a bundle's cast ref and audio handle share the same lib/member pair).
func (b *bundle) SoundMember(ref sprite.CastMemberRef) (audio.MemberHandle, bool) {
	h := audio.MemberHandle{CastLib: uint16(ref.CastLib), CastMember: uint16(ref.CastMember)}
	_, ok := b.sounds[h]
	return h, ok
}

// SoundBytes returns a sound member's raw encoded bytes (PCM/WAV/MP3,
// whatever internal/audio/codec.Decode or the host's DecodeAsync
// recognizes), for the main loop's Loading-channel bridge.
func (b *bundle) SoundBytes(h audio.MemberHandle) ([]byte, bool) {
	data, ok := b.sounds[h]
	return data, ok
}

// namedBuiltinPalette produces one of spec.md's named built-in palettes.
// Only Grayscale is generated from a formula; System-Win/System-Mac/Rainbow
// without a manifest-supplied cast palette chunk (out of scope per §9, "the
// chunk reader itself") fall back to the same grayscale ramp, since this
// bundle format carries no real Mac/Windows system-palette chunk to decode.
func namedBuiltinPalette(name string) *color.Palette {
	p := &color.Palette{Name: name}
	for i := 0; i < 256; i++ {
		v := uint8(i)
		p.Entries[i] = color.RGB{R: v, G: v, B: v}
	}
	return p
}
