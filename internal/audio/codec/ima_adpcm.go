package codec

import (
	"encoding/binary"
	"fmt"
)

// stepTable and indexTable are Director's IMA-ADPCM tables (the final step
// is 32773, not the textbook 32767), ported
// verbatim from sound_channel.rs's STEP_TABLE/INDEX_TABLE.
var stepTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 19, 21, 23, 25, 28, 31, 34, 37, 41, 45, 50, 55, 60, 66,
	73, 80, 88, 97, 107, 118, 130, 143, 157, 173, 190, 209, 230, 253, 279, 307, 337, 371, 408, 449,
	494, 544, 598, 658, 724, 796, 876, 963, 1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066, 2272,
	2499, 2749, 3024, 3327, 3660, 4026, 4428, 4871, 5358, 5894, 6484, 7132, 7845, 8630, 9493,
	10442, 11487, 12635, 13899, 15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32773,
}

var indexTable = [16]int32{
	-1, -1, -1, -1, 2, 4, 6, 8,
	-1, -1, -1, -1, 2, 4, 6, 8,
}

// DecodeIMAADPCM decodes a Director IMA-ADPCM stream: a 4-byte header
// (predictor int16 LE, index uint8, reserved uint16), then 4-bit nibbles,
// low nibble first per byte (spec.md §4.7 "Decoding"). Ported from
// sound_channel.rs decode_ima_adpcm_to_pcm.
func DecodeIMAADPCM(data []byte) ([]int16, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("codec: IMA-ADPCM data too short to read initial state")
	}

	predictor := int32(int16(binary.LittleEndian.Uint16(data[0:2])))
	index := int32(data[2])
	body := data[4:]

	samples := make([]int16, 0, len(body)*2)
	step := func(nibble int32) int16 {
		st := stepTable[index]
		diff := st >> 3
		if nibble&0x1 != 0 {
			diff += st
		}
		if nibble&0x2 != 0 {
			diff += st >> 1
		}
		if nibble&0x4 != 0 {
			diff += st >> 2
		}
		if nibble&0x8 != 0 {
			predictor -= diff
		} else {
			predictor += diff
		}
		predictor = clampI32(predictor, -32768, 32767)

		index += indexTable[nibble]
		index = clampI32(index, 0, 88)

		return int16(predictor)
	}

	for _, b := range body {
		lower := int32(b & 0x0F)
		samples = append(samples, step(lower))
		upper := int32(b >> 4)
		samples = append(samples, step(upper))
	}

	return samples, nil
}

func clampI32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
