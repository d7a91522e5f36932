package codec

// LooksLikeMP3 scans data for a valid MPEG-1/2 Layer III frame sync
// (spec.md §4.7: "0xFF, bits1=0b111xxxxx, valid version/layer/bitrate/
// sample-rate fields"), ported from sound_channel.rs find_mp3_start.
func LooksLikeMP3(data []byte) bool {
	_, ok := FindMP3Start(data)
	return ok
}

// FindMP3Start returns the byte offset of the first validated MP3 frame
// sync in data, or false if none is found.
func FindMP3Start(data []byte) (int, bool) {
	if len(data) < 4 {
		return 0, false
	}
	for i := 0; i <= len(data)-4; i++ {
		if data[i] != 0xFF || data[i+1]&0xE0 != 0xE0 {
			continue
		}
		header := uint32(data[i])<<24 | uint32(data[i+1])<<16 | uint32(data[i+2])<<8 | uint32(data[i+3])

		version := (header >> 19) & 0x3
		layer := (header >> 17) & 0x3
		bitrateIndex := (header >> 12) & 0xF
		sampleRateIndex := (header >> 10) & 0x3

		if version != 1 && layer != 0 && bitrateIndex != 0xF && bitrateIndex != 0 && sampleRateIndex != 3 {
			return i, true
		}
	}
	return 0, false
}

// MP3FrameInfo is a validated frame's size and sample rate, ported from
// sound_channel.rs get_mp3_frame_info.
type MP3FrameInfo struct {
	FrameSize  int
	SampleRate uint32
}

var mp3Bitrates = [2][16]uint32{
	{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
}

var mp3SampleRates = [2][4]uint32{
	{44100, 48000, 32000, 0},
	{22050, 24000, 16000, 0},
}

// GetMP3FrameInfo validates a 4-byte MP3 frame header and computes its
// frame size, or returns false if the header is invalid.
func GetMP3FrameInfo(header [4]byte) (MP3FrameInfo, bool) {
	if header[0] != 0xFF || header[1]&0xE0 != 0xE0 {
		return MP3FrameInfo{}, false
	}

	version := (header[1] >> 3) & 0x03
	layer := (header[1] >> 1) & 0x03
	_ = layer
	bitrateIndex := (header[2] >> 4) & 0x0F
	sampleRateIndex := (header[2] >> 2) & 0x03
	padding := uint32((header[2] >> 1) & 0x01)

	versionIndex := 1
	if version == 3 {
		versionIndex = 0
	}

	bitrate := mp3Bitrates[versionIndex][bitrateIndex]
	sampleRate := mp3SampleRates[versionIndex][sampleRateIndex]
	if bitrate == 0 || sampleRate == 0 {
		return MP3FrameInfo{}, false
	}

	samplesPerFrame := uint32(576)
	if version == 3 {
		samplesPerFrame = 1152
	}
	frameSize := samplesPerFrame/8*bitrate*1000/sampleRate + padding

	return MP3FrameInfo{FrameSize: int(frameSize), SampleRate: sampleRate}, true
}
