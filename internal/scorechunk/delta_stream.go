package scorechunk

import (
	"encoding/binary"
	"fmt"
)

// StreamHeader is the score-frames stream header (spec.md §6).
type StreamHeader struct {
	FrameCount       uint32
	SpriteRecordSize uint16
	NumChannels      uint16
}

// ChannelEdit is one length-prefixed edit within a single frame-delta chunk:
// size bytes written at channel_byte_offset.
type ChannelEdit struct {
	ChannelByteOffset int
	Data              []byte
}

// DecodeChannelBuffer walks the delta-frame stream and reconstructs the
// dense frames*channels*recordSize byte buffer described by spec.md §4.3.
// A length-0 frame chunk terminates the stream; an edit whose byte range
// exits the buffer is a hard error.
func DecodeChannelBuffer(header StreamHeader, r *ByteReader) ([]byte, error) {
	frameSize := int(header.NumChannels) * int(header.SpriteRecordSize)
	buf := make([]byte, int(header.FrameCount)*frameSize)

	for frameIndex := 0; !r.EOF(); frameIndex++ {
		length, ok := r.ReadU16()
		if !ok {
			return nil, fmt.Errorf("scorechunk: truncated frame length at frame %d", frameIndex)
		}
		if length == 0 {
			break
		}
		if frameIndex >= int(header.FrameCount) {
			return nil, fmt.Errorf("scorechunk: frame index %d exceeds frame_count %d", frameIndex, header.FrameCount)
		}

		chunkLen := int(length) - 2
		chunk, ok := r.ReadBytes(chunkLen)
		if !ok {
			return nil, fmt.Errorf("scorechunk: truncated frame chunk at frame %d", frameIndex)
		}
		chunkReader := NewByteReader(chunk)

		frameOffset := frameIndex * frameSize
		touched := make(map[int]bool)

		for !chunkReader.EOF() {
			size, ok := chunkReader.ReadU16()
			if !ok {
				return nil, fmt.Errorf("scorechunk: truncated channel size at frame %d", frameIndex)
			}
			channelOffset, ok := chunkReader.ReadU16()
			if !ok {
				return nil, fmt.Errorf("scorechunk: truncated channel offset at frame %d", frameIndex)
			}
			delta, ok := chunkReader.ReadBytes(int(size))
			if !ok {
				return nil, fmt.Errorf("scorechunk: truncated channel delta at frame %d", frameIndex)
			}

			start := frameOffset + int(channelOffset)
			end := start + int(size)
			if end > len(buf) {
				return nil, fmt.Errorf("scorechunk: edit at frame %d offset %d size %d exceeds buffer of %d bytes", frameIndex, channelOffset, size, len(buf))
			}
			copy(buf[start:end], delta)

			if size > 0 && header.SpriteRecordSize > 0 {
				firstChannel := int(channelOffset) / int(header.SpriteRecordSize)
				lastChannel := (int(channelOffset) + int(size) - 1) / int(header.SpriteRecordSize)
				for ch := firstChannel; ch <= lastChannel; ch++ {
					touched[ch] = true
				}
			}
		}

		if frameIndex > 0 {
			prevOffset := (frameIndex - 1) * frameSize
			for ch := 0; ch < int(header.NumChannels); ch++ {
				if touched[ch] {
					continue
				}
				chOffset := ch * int(header.SpriteRecordSize)
				copy(
					buf[frameOffset+chOffset:frameOffset+chOffset+int(header.SpriteRecordSize)],
					buf[prevOffset+chOffset:prevOffset+chOffset+int(header.SpriteRecordSize)],
				)
			}
		}
	}

	return buf, nil
}

// ByteReader is a small big-endian cursor over a byte slice, used for all
// score-chunk decoding (the external streams are big-endian regardless of
// host byte order).
type ByteReader struct {
	data []byte
	pos  int
}

// NewByteReader wraps data for sequential big-endian reads.
func NewByteReader(data []byte) *ByteReader { return &ByteReader{data: data} }

// EOF reports whether the cursor has consumed the entire buffer.
func (r *ByteReader) EOF() bool { return r.pos >= len(r.data) }

// Pos returns the current read offset.
func (r *ByteReader) Pos() int { return r.pos }

// ReadU8 reads one byte.
func (r *ByteReader) ReadU8() (uint8, bool) {
	if r.pos+1 > len(r.data) {
		return 0, false
	}
	v := r.data[r.pos]
	r.pos++
	return v, true
}

// ReadU16 reads a big-endian uint16.
func (r *ByteReader) ReadU16() (uint16, bool) {
	if r.pos+2 > len(r.data) {
		return 0, false
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, true
}

// ReadU32 reads a big-endian uint32.
func (r *ByteReader) ReadU32() (uint32, bool) {
	if r.pos+4 > len(r.data) {
		return 0, false
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, true
}

// ReadBytes reads n raw bytes.
func (r *ByteReader) ReadBytes(n int) ([]byte, bool) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, false
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, true
}
