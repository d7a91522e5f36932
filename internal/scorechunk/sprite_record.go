// Package scorechunk decodes the Director file's score-related chunk
// streams into plain Go structs: the delta-encoded frame-channel stream,
// frame-interval (sprite span) records with their TweenInfo, attached
// behaviors, and frame labels. It performs no interpretation beyond the
// wire format; internal/score turns these into reconstructed timelines.
package scorechunk

import "fmt"

// SpriteRecordSize is the fixed 48-byte layout described by the external
// chunk contract.
const SpriteRecordSize = 48

// ColorFlag selects which of fore/back color are stored as an RGB triplet
// versus a palette index.
type ColorFlag uint8

const (
	ColorBothPalette ColorFlag = 0
	ColorForeRGB     ColorFlag = 1
	ColorBackRGB     ColorFlag = 2
	ColorBothRGB     ColorFlag = 3
)

// SpriteRecord is the decoded 48-byte frame-channel-data record for a
// single (frame, sprite channel) pair.
type SpriteRecord struct {
	SpriteType    uint8
	Ink           uint8
	ForeColor     uint8
	BackColor     uint8
	CastLib       uint16
	CastMember    uint16
	SpriteListIdx uint32
	PosY          int16
	PosX          int16
	Height        uint16
	Width         uint16
	ColorFlag     ColorFlag
	Blend         uint8
	ForeColorG    uint8
	BackColorG    uint8
	ForeColorB    uint8
	BackColorB    uint8
	RotationRaw   int16
	SkewRaw       int16
}

// Rotation returns the decoded rotation angle in degrees.
func (r SpriteRecord) Rotation() float64 { return float64(r.RotationRaw) / 100.0 }

// Skew returns the decoded skew angle in degrees.
func (r SpriteRecord) Skew() float64 { return float64(r.SkewRaw) / 100.0 }

// IsDefault reports whether every field of the record is at its zero
// value. A reconstructed channel buffer is only worth parsing into a
// frame-channel-data entry when this is false (spec.md §4.3: "a sprite
// record is retained if any of its transform, geometry, appearance, or
// color fields is non-default").
func (r SpriteRecord) IsDefault() bool {
	return r.CastMember == 0 &&
		r.RotationRaw == 0 &&
		r.SkewRaw == 0 &&
		r.Blend == 0 &&
		r.Width == 0 &&
		r.Height == 0 &&
		r.PosX == 0 &&
		r.PosY == 0 &&
		r.Ink == 0 &&
		r.SpriteType == 0 &&
		r.ColorFlag == 0 &&
		r.ForeColor == 0 &&
		r.ForeColorG == 0 &&
		r.ForeColorB == 0 &&
		r.BackColor == 0 &&
		r.BackColorG == 0 &&
		r.BackColorB == 0
}

// DecodeSpriteRecord decodes a 48-byte big-endian sprite record, per
// spec.md §6's field table. Field order follows the table exactly; unknown
// padding bytes are read and discarded to keep the cursor aligned.
func DecodeSpriteRecord(data []byte) (SpriteRecord, error) {
	if len(data) < SpriteRecordSize {
		return SpriteRecord{}, fmt.Errorf("scorechunk: sprite record needs %d bytes, got %d", SpriteRecordSize, len(data))
	}

	spriteListIdxHi := uint16(data[8])<<8 | uint16(data[9])
	spriteListIdxLo := uint16(data[10])<<8 | uint16(data[11])

	colorFlagByte := data[20]
	colorFlag := ColorFlag((colorFlagByte & 0xF0) >> 4)

	return SpriteRecord{
		SpriteType:    data[0],
		Ink:           data[1],
		ForeColor:     data[2],
		BackColor:     data[3],
		CastLib:       uint16(data[4])<<8 | uint16(data[5]),
		CastMember:    uint16(data[6])<<8 | uint16(data[7]),
		SpriteListIdx: uint32(spriteListIdxHi)<<16 | uint32(spriteListIdxLo),
		PosY:          int16(uint16(data[12])<<8 | uint16(data[13])),
		PosX:          int16(uint16(data[14])<<8 | uint16(data[15])),
		Height:        uint16(data[16])<<8 | uint16(data[17]),
		Width:         uint16(data[18])<<8 | uint16(data[19]),
		ColorFlag:     colorFlag,
		Blend:         data[21],
		ForeColorG:    data[24],
		BackColorG:    data[25],
		ForeColorB:    data[26],
		BackColorB:    data[27],
		RotationRaw:   int16(uint16(data[30])<<8 | uint16(data[31])),
		SkewRaw:       int16(uint16(data[34])<<8 | uint16(data[35])),
	}, nil
}
