package scorechunk

import "testing"

func record(fields map[int]byte) []byte {
	buf := make([]byte, SpriteRecordSize)
	for off, v := range fields {
		buf[off] = v
	}
	return buf
}

func TestDecodeSpriteRecordTooShort(t *testing.T) {
	if _, err := DecodeSpriteRecord(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short buffer")
	}
}

func TestDecodeSpriteRecordZeroIsDefault(t *testing.T) {
	rec, err := DecodeSpriteRecord(make([]byte, SpriteRecordSize))
	if err != nil {
		t.Fatal(err)
	}
	if !rec.IsDefault() {
		t.Fatal("all-zero record should be default")
	}
}

func TestDecodeSpriteRecordFields(t *testing.T) {
	buf := record(map[int]byte{
		0:  1,    // sprite_type
		1:  8,    // ink
		2:  3,    // fore_color
		3:  5,    // back_color
		4:  0x00, // cast_lib hi
		5:  0x02, // cast_lib lo -> 2
		6:  0x00, // cast_member hi
		7:  0x07, // cast_member lo -> 7
		20: 0x30, // color_flag nibble = 3 (ColorBothRGB)
		21: 50,   // blend
		24: 10,   // fore_color_g
		25: 20,   // back_color_g
		26: 30,   // fore_color_b
		27: 40,   // back_color_b
	})
	// rotation = 180 (raw 18000 big-endian) at offset 30-31
	buf[30] = 0x46
	buf[31] = 0x50 // 18000 = 0x4650

	rec, err := DecodeSpriteRecord(buf)
	if err != nil {
		t.Fatal(err)
	}
	if rec.SpriteType != 1 || rec.Ink != 8 || rec.ForeColor != 3 || rec.BackColor != 5 {
		t.Fatalf("unexpected header fields: %+v", rec)
	}
	if rec.CastLib != 2 || rec.CastMember != 7 {
		t.Fatalf("unexpected cast ref: %+v", rec)
	}
	if rec.ColorFlag != ColorBothRGB {
		t.Fatalf("ColorFlag = %v, want ColorBothRGB", rec.ColorFlag)
	}
	if rec.Blend != 50 {
		t.Fatalf("Blend = %d, want 50", rec.Blend)
	}
	if rec.ForeColorG != 10 || rec.BackColorG != 20 || rec.ForeColorB != 30 || rec.BackColorB != 40 {
		t.Fatalf("unexpected secondary color fields: %+v", rec)
	}
	if got := rec.Rotation(); got != 180.0 {
		t.Fatalf("Rotation() = %v, want 180.0", got)
	}
	if rec.IsDefault() {
		t.Fatal("non-zero record should not be default")
	}
}

func TestDecodeSpriteRecordNegativePosition(t *testing.T) {
	buf := record(nil)
	// pos_y at offset 12-13 = -1 (0xFFFF)
	buf[12], buf[13] = 0xFF, 0xFF
	rec, err := DecodeSpriteRecord(buf)
	if err != nil {
		t.Fatal(err)
	}
	if rec.PosY != -1 {
		t.Fatalf("PosY = %d, want -1", rec.PosY)
	}
}
