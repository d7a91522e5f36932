package builtin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMathAbsMinMax(t *testing.T) {
	r := NewRegistry()

	abs, err := r.Call("abs", []Datum{IntDatum(-7)})
	require.NoError(t, err)
	require.Equal(t, int32(7), abs.Int)

	min, err := r.Call("min", []Datum{IntDatum(5), IntDatum(2), IntDatum(9)})
	require.NoError(t, err)
	require.Equal(t, int32(2), min.Int)

	max, err := r.Call("max", []Datum{IntDatum(5), IntDatum(2), IntDatum(9)})
	require.NoError(t, err)
	require.Equal(t, int32(9), max.Int)
}

func TestMathTrig(t *testing.T) {
	r := NewRegistry()
	out, err := r.Call("sin", []Datum{FloatDatum(0)})
	require.NoError(t, err)
	require.InDelta(t, 0, out.Float, 1e-9)

	out, err = r.Call("cos", []Datum{FloatDatum(0)})
	require.NoError(t, err)
	require.InDelta(t, 1, out.Float, 1e-9)

	out, err = r.Call("pi", nil)
	require.NoError(t, err)
	require.InDelta(t, math.Pi, out.Float, 1e-9)
}

func TestMathRandomReturnsOneToN(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 50; i++ {
		out, err := r.Call("random", []Datum{IntDatum(6)})
		require.NoError(t, err)
		require.GreaterOrEqual(t, out.Int, int32(1))
		require.LessOrEqual(t, out.Int, int32(6))
	}
}

func TestMathPowerAndIntegerFloat(t *testing.T) {
	r := NewRegistry()
	out, err := r.Call("power", []Datum{FloatDatum(2), FloatDatum(10)})
	require.NoError(t, err)
	require.InDelta(t, 1024, out.Float, 1e-9)

	i, err := r.Call("integer", []Datum{FloatDatum(3.7)})
	require.NoError(t, err)
	require.Equal(t, int32(4), i.Int)

	f, err := r.Call("float", []Datum{IntDatum(3)})
	require.NoError(t, err)
	require.InDelta(t, 3.0, f.Float, 1e-9)
}

func TestBitOps(t *testing.T) {
	r := NewRegistry()
	out, err := r.Call("bitAnd", []Datum{IntDatum(0b1100), IntDatum(0b1010)})
	require.NoError(t, err)
	require.Equal(t, int32(0b1000), out.Int)

	out, err = r.Call("bitOr", []Datum{IntDatum(0b1100), IntDatum(0b0011)})
	require.NoError(t, err)
	require.Equal(t, int32(0b1111), out.Int)
}
