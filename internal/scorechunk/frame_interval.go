package scorechunk

import "fmt"

// TweenInfo is the 20-byte bit-packed record selecting which sprite
// properties animate across a span and with what easing (spec.md §6).
type TweenInfo struct {
	Curvature uint32
	Flags     uint32
	EaseIn    uint32
	EaseOut   uint32
	Pad       uint32
}

const (
	tweenFlagContinuous   = 1 << 1
	tweenFlagPath         = 1 << 2
	tweenFlagSize         = 1 << 3
	tweenFlagForeColor    = 1 << 4
	tweenFlagBackColor    = 1 << 5
	tweenFlagBlend        = 1 << 6
	tweenFlagRotation     = 1 << 7
	tweenFlagSkew         = 1 << 8
	tweenFlagSmoothSpeed  = 1 << 10
)

func (t TweenInfo) IsContinuous() bool  { return t.Flags&tweenFlagContinuous != 0 }
func (t TweenInfo) IsPath() bool        { return t.Flags&tweenFlagPath != 0 }
func (t TweenInfo) IsSize() bool        { return t.Flags&tweenFlagSize != 0 }
func (t TweenInfo) IsForeColor() bool   { return t.Flags&tweenFlagForeColor != 0 }
func (t TweenInfo) IsBackColor() bool   { return t.Flags&tweenFlagBackColor != 0 }
func (t TweenInfo) IsBlend() bool       { return t.Flags&tweenFlagBlend != 0 }
func (t TweenInfo) IsRotation() bool    { return t.Flags&tweenFlagRotation != 0 }
func (t TweenInfo) IsSkew() bool        { return t.Flags&tweenFlagSkew != 0 }
func (t TweenInfo) IsSmoothSpeed() bool { return t.Flags&tweenFlagSmoothSpeed != 0 }

func decodeTweenInfo(r *ByteReader) (TweenInfo, error) {
	curvature, ok := r.ReadU32()
	if !ok {
		return TweenInfo{}, fmt.Errorf("scorechunk: truncated tween curvature")
	}
	flags, ok := r.ReadU32()
	if !ok {
		return TweenInfo{}, fmt.Errorf("scorechunk: truncated tween flags")
	}
	easeIn, ok := r.ReadU32()
	if !ok {
		return TweenInfo{}, fmt.Errorf("scorechunk: truncated tween ease_in")
	}
	easeOut, ok := r.ReadU32()
	if !ok {
		return TweenInfo{}, fmt.Errorf("scorechunk: truncated tween ease_out")
	}
	pad, ok := r.ReadU32()
	if !ok {
		return TweenInfo{}, fmt.Errorf("scorechunk: truncated tween padding")
	}
	return TweenInfo{Curvature: curvature, Flags: flags, EaseIn: easeIn, EaseOut: easeOut, Pad: pad}, nil
}

// FrameInterval is a sprite span: a contiguous frame range on one channel
// plus its tween configuration (spec.md §6 "frame intervals" stream).
type FrameInterval struct {
	StartFrame   uint32
	EndFrame     uint32
	XtraInfo     uint32
	SpriteFlags  uint32
	ChannelIndex uint32
	Tween        TweenInfo
}

// DecodeFrameInterval decodes one 40-byte frame-interval primary record.
func DecodeFrameInterval(data []byte) (FrameInterval, error) {
	r := NewByteReader(data)

	startFrame, ok := r.ReadU32()
	if !ok {
		return FrameInterval{}, fmt.Errorf("scorechunk: truncated frame interval start_frame")
	}
	endFrame, ok := r.ReadU32()
	if !ok {
		return FrameInterval{}, fmt.Errorf("scorechunk: truncated frame interval end_frame")
	}
	xtraInfo, ok := r.ReadU32()
	if !ok {
		return FrameInterval{}, fmt.Errorf("scorechunk: truncated frame interval xtra_info")
	}
	spriteFlags, ok := r.ReadU32()
	if !ok {
		return FrameInterval{}, fmt.Errorf("scorechunk: truncated frame interval sprite_flags")
	}
	channelIndex, ok := r.ReadU32()
	if !ok {
		return FrameInterval{}, fmt.Errorf("scorechunk: truncated frame interval channel_index")
	}
	tween, err := decodeTweenInfo(r)
	if err != nil {
		return FrameInterval{}, err
	}

	return FrameInterval{
		StartFrame:   startFrame,
		EndFrame:     endFrame,
		XtraInfo:     xtraInfo,
		SpriteFlags:  spriteFlags,
		ChannelIndex: channelIndex,
		Tween:        tween,
	}, nil
}

// Behavior is a cast reference to a script attached to a sprite span, with
// its author-supplied parameter string (a Lingo-literal proplist, left
// unparsed here; builtin.ParsePropList turns it into a Datum proplist).
type Behavior struct {
	CastLib    uint16
	CastMember uint16
	Parameter  string
}

// DecodeBehavior decodes an 8-byte behavior reference.
func DecodeBehavior(data []byte) (Behavior, error) {
	if len(data) < 8 {
		return Behavior{}, fmt.Errorf("scorechunk: behavior record needs 8 bytes, got %d", len(data))
	}
	r := NewByteReader(data)
	castLib, _ := r.ReadU16()
	castMember, _ := r.ReadU16()
	return Behavior{CastLib: castLib, CastMember: castMember}, nil
}
