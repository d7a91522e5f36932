package scorechunk

import "fmt"

// FrameLabel is one entry of the "frame labels" stream (spec.md §6),
// surfaced to Lingo scripts via builtin.Label/builtin.Marker.
type FrameLabel struct {
	Frame uint32
	Label string
}

// DecodeFrameLabels decodes the frame-labels stream: a count of
// (frame_num, label_offset) pairs followed by a labels_size and the
// concatenated label text, each label's length derived from the gap to
// the next label's offset (or to labels_size for the last one).
func DecodeFrameLabels(data []byte) ([]FrameLabel, error) {
	r := NewByteReader(data)

	count, ok := r.ReadU16()
	if !ok {
		return nil, fmt.Errorf("scorechunk: truncated frame labels count")
	}

	type entry struct {
		frame  uint32
		offset int
	}
	entries := make([]entry, count)
	for i := range entries {
		frameNum, ok := r.ReadU16()
		if !ok {
			return nil, fmt.Errorf("scorechunk: truncated frame label entry %d", i)
		}
		labelOffset, ok := r.ReadU16()
		if !ok {
			return nil, fmt.Errorf("scorechunk: truncated frame label entry %d", i)
		}
		entries[i] = entry{frame: uint32(frameNum), offset: int(labelOffset)}
	}

	labelsSize, ok := r.ReadU32()
	if !ok {
		return nil, fmt.Errorf("scorechunk: truncated frame labels size")
	}

	labels := make([]FrameLabel, count)
	for i, e := range entries {
		var labelLen int
		if i < len(entries)-1 {
			labelLen = entries[i+1].offset - e.offset
		} else {
			labelLen = int(labelsSize) - e.offset
		}
		if labelLen < 0 {
			return nil, fmt.Errorf("scorechunk: negative label length at entry %d", i)
		}
		strBytes, ok := r.ReadBytes(labelLen)
		if !ok {
			return nil, fmt.Errorf("scorechunk: truncated frame label text at entry %d", i)
		}
		labels[i] = FrameLabel{Frame: e.frame, Label: string(strBytes)}
	}

	return labels, nil
}
