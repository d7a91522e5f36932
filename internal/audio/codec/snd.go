package codec

// stripSNDHeader drops the Director SND chunk's header before the raw PCM
// payload. Per spec.md §4.7 "Else SND-wrapped PCM: skip a 64/96/128-byte
// header (detected by audio-data heuristic)", grounded on sound_channel.rs
// snd_to_wav (which always skips a fixed 64-byte header when rewrapping to
// WAV): try each candidate header size in order and take the first that
// leaves a payload, falling back to the standard 64-byte header.
func stripSNDHeader(data []byte) []byte {
	for _, size := range []int{64, 96, 128} {
		if len(data) > size {
			return data[size:]
		}
	}
	if len(data) > 64 {
		return data[64:]
	}
	return data
}

// WAVHeader builds a canonical RIFF/WAVE header for PCM data, matching
// sound_channel.rs snd_to_wav's byte layout (used when a host needs a
// self-contained WAV blob rather than the raw {samples, rate, channels}
// triple, e.g. for caching to disk).
func WAVHeader(pcmLen int, channels uint16, sampleRate uint32, bitsPerSample uint16) []byte {
	byteRate := sampleRate * uint32(channels) * uint32(bitsPerSample) / 8
	blockAlign := channels * bitsPerSample / 8

	w := make([]byte, 0, 44)
	w = append(w, "RIFF"...)
	w = appendLE32(w, uint32(36+pcmLen))
	w = append(w, "WAVE"...)

	w = append(w, "fmt "...)
	w = appendLE32(w, 16)
	w = appendLE16(w, 1) // PCM
	w = appendLE16(w, channels)
	w = appendLE32(w, sampleRate)
	w = appendLE32(w, byteRate)
	w = appendLE16(w, blockAlign)
	w = appendLE16(w, bitsPerSample)

	w = append(w, "data"...)
	w = appendLE32(w, uint32(pcmLen))
	return w
}

func appendLE32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendLE16(b []byte, v uint16) []byte {
	return append(b, byte(v), byte(v>>8))
}
