// Package codec decodes the audio formats a Director sound member can
// carry into a uniform {samples, sample_rate, num_channels} form, per
// spec.md §4.7 "Decoding". Grounded on
// original_source/vm-rust/src/player/handlers/datum_handlers/sound_channel.rs
// (load_director_sound_as_wav, snd_to_wav, find_mp3_start/get_mp3_frame_info)
// and the same file's raw-PCM/IMA-ADPCM handling.
package codec

import "strings"

// Metadata is the codec-dispatch input: raw bytes plus the format
// descriptor a sound cast member carries.
type Metadata struct {
	Channels   int
	SampleRate uint32
	SampleSize int // bits per sample (8 or 16) for raw/SND PCM
	CodecTag   string
}

// Decoded is the uniform output of every codec path (spec.md §4.7: "after
// decoding, produce a uniform {samples: f32, sample_rate, num_channels}").
type Decoded struct {
	Samples    []float32
	SampleRate uint32
	Channels   int
}

// Decode dispatches on meta.CodecTag, falling back through the rules in
// spec.md §4.7: "raw_pcm" trusts metadata; a tag containing "ima" is
// IMA-ADPCM; a tag containing "mp3" (or a detected MPEG frame sync) hands
// off to the host decoder with PCM fallback on failure; anything else is
// treated as SND-wrapped PCM.
func Decode(data []byte, meta Metadata, hostMP3Decode func([]byte) ([]float32, bool)) (Decoded, error) {
	tag := strings.ToLower(meta.CodecTag)

	switch {
	case tag == "raw_pcm":
		return decodeRawPCM(data, meta)

	case strings.Contains(tag, "ima"):
		samples, err := DecodeIMAADPCM(data)
		if err != nil {
			return Decoded{}, err
		}
		return Decoded{Samples: i16ToF32(samples), SampleRate: meta.SampleRate, Channels: max1(meta.Channels)}, nil

	case strings.Contains(tag, "mp3") || LooksLikeMP3(data):
		if hostMP3Decode != nil {
			if samples, ok := hostMP3Decode(data); ok {
				return Decoded{Samples: samples, SampleRate: meta.SampleRate, Channels: max1(meta.Channels)}, nil
			}
		}
		// MP3 decode failed or unavailable: fall back to raw PCM over the
		// same bytes (spec.md §4.7, scenario 7).
		return decodeRawPCM(data, meta)

	default:
		body := stripSNDHeader(data)
		return decodeRawPCM(body, meta)
	}
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func i16ToF32(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / 32768.0
	}
	return out
}
