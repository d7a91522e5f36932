package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeMovieContext struct {
	frame    int
	labels   map[int]string
	keysDown []int

	dispatchedChannel int
	dispatchedEvent   string
	dispatchedArgs    []Datum

	calledName string
	calledArgs []Datum
}

func (f *fakeMovieContext) CurrentFrame() int { return f.frame }

func (f *fakeMovieContext) FrameLabel(frame int) (string, bool) {
	name, ok := f.labels[frame]
	return name, ok
}

func (f *fakeMovieContext) IsFrameReady(frame int) bool { return true }

func (f *fakeMovieContext) DispatchSprite(channel int, event string, args []Datum) (bool, error) {
	f.dispatchedChannel, f.dispatchedEvent, f.dispatchedArgs = channel, event, args
	return true, nil
}

func (f *fakeMovieContext) DispatchAllSprites(event string, args []Datum) (bool, error) {
	f.dispatchedEvent, f.dispatchedArgs = event, args
	return true, nil
}

func (f *fakeMovieContext) CallGlobalHandler(name string, args []Datum) (Datum, error) {
	f.calledName, f.calledArgs = name, args
	return IntDatum(int32(len(args))), nil
}

func (f *fakeMovieContext) KeysDown() []int { return f.keysDown }

func TestEventLabelAndMarker(t *testing.T) {
	r := NewRegistry()
	ctx := &fakeMovieContext{frame: 10, labels: map[int]string{5: "intro", 10: "loop"}}
	r.SetContext(ctx)

	label, err := r.Call("label", nil)
	require.NoError(t, err)
	require.Equal(t, "loop", label.Str)

	marker, err := r.Call("marker", []Datum{IntDatum(-5)})
	require.NoError(t, err)
	require.Equal(t, "intro", marker.Str)
}

func TestEventSendSprite(t *testing.T) {
	r := NewRegistry()
	ctx := &fakeMovieContext{}
	r.SetContext(ctx)

	handled, err := r.Call("sendSprite", []Datum{IntDatum(3), SymbolDatum("mouseUp")})
	require.NoError(t, err)
	require.Equal(t, int32(1), handled.Int)
	require.Equal(t, 3, ctx.dispatchedChannel)
	require.Equal(t, "mouseUp", ctx.dispatchedEvent)
}

func TestEventKeyPressedNormalizesLetterAndCode(t *testing.T) {
	r := NewRegistry()
	ctx := &fakeMovieContext{keysDown: []int{int('A')}}
	r.SetContext(ctx)

	byChar, err := r.Call("keyPressed", []Datum{StringDatum("a")})
	require.NoError(t, err)
	require.Equal(t, int32(1), byChar.Int)

	byCode, err := r.Call("keyPressed", []Datum{IntDatum(int32('A'))})
	require.NoError(t, err)
	require.Equal(t, int32(1), byCode.Int)

	notDown, err := r.Call("keyPressed", []Datum{StringDatum("z")})
	require.NoError(t, err)
	require.Equal(t, int32(0), notDown.Int)
}

func TestEventValueParsesLingoLiterals(t *testing.T) {
	r := NewRegistry()

	s, err := r.Call("value", []Datum{StringDatum(`"hello"`)})
	require.NoError(t, err)
	require.Equal(t, StringDatum("hello"), s)

	sym, err := r.Call("value", []Datum{StringDatum("#done")})
	require.NoError(t, err)
	require.Equal(t, SymbolDatum("done"), sym)

	n, err := r.Call("value", []Datum{StringDatum("42")})
	require.NoError(t, err)
	require.Equal(t, int32(42), n.Int)

	v, err := r.Call("value", []Datum{StringDatum("VOID")})
	require.NoError(t, err)
	require.Equal(t, KindVoid, v.Kind)
}

func TestEventDoDispatchesParsedCall(t *testing.T) {
	r := NewRegistry()
	ctx := &fakeMovieContext{}
	r.SetContext(ctx)

	_, err := r.Call("do", []Datum{StringDatum(`myHandler(1, "two", #three)`)})
	require.NoError(t, err)
	require.Equal(t, "myHandler", ctx.calledName)
	require.Len(t, ctx.calledArgs, 3)
	require.Equal(t, int32(1), ctx.calledArgs[0].Int)
	require.Equal(t, "two", ctx.calledArgs[1].Str)
	require.Equal(t, "three", ctx.calledArgs[2].Symbol)
}

func TestEventWithoutContextIsScriptError(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call("label", nil)
	require.Error(t, err)
}
