package codec

// decodeRawPCM widens 8-bit unsigned PCM to 16-bit signed and byte-swaps
// 16-bit big-endian PCM to little-endian, per spec.md §4.7: "8-bit unsigned
// centered at 128 is widened to 16-bit signed via (b-128)*257; 16-bit
// samples are byte-swapped from big-endian to little-endian; multi-channel
// frames interleaved." Channel interleaving is a no-op here since the
// source bytes are already interleaved frame-by-frame.
func decodeRawPCM(data []byte, meta Metadata) (Decoded, error) {
	var samples []int16

	switch meta.SampleSize {
	case 8:
		samples = make([]int16, len(data))
		for i, b := range data {
			samples[i] = int16((int(b) - 128) * 257)
		}
	default: // 16-bit, big-endian on disk
		samples = make([]int16, len(data)/2)
		for i := range samples {
			hi, lo := data[2*i], data[2*i+1]
			samples[i] = int16(uint16(hi)<<8 | uint16(lo))
		}
	}

	return Decoded{Samples: i16ToF32(samples), SampleRate: meta.SampleRate, Channels: max1(meta.Channels)}, nil
}
