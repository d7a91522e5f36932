package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointRectInside(t *testing.T) {
	r := NewRegistry()
	p, err := r.Call("point", []Datum{IntDatum(5), IntDatum(5)})
	require.NoError(t, err)

	rc, err := r.Call("rect", []Datum{IntDatum(0), IntDatum(0), IntDatum(10), IntDatum(10)})
	require.NoError(t, err)

	inside, err := r.Call("inside", []Datum{p, rc})
	require.NoError(t, err)
	require.Equal(t, int32(1), inside.Int)

	outside, err := r.Call("inside", []Datum{PointDatum(20, 20), rc})
	require.NoError(t, err)
	require.Equal(t, int32(0), outside.Int)
}

func TestRectIntersectUnion(t *testing.T) {
	r := NewRegistry()
	a := RectDatum(0, 0, 10, 10)
	b := RectDatum(5, 5, 15, 15)

	ix, err := r.Call("intersect", []Datum{a, b})
	require.NoError(t, err)
	require.Equal(t, []float64{5, 5, 10, 10}, ix.Coords)

	un, err := r.Call("union", []Datum{a, b})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 15, 15}, un.Coords)
}

func TestRectIntersectNonOverlappingIsEmpty(t *testing.T) {
	r := NewRegistry()
	a := RectDatum(0, 0, 5, 5)
	b := RectDatum(10, 10, 15, 15)
	ix, err := r.Call("intersect", []Datum{a, b})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 0}, ix.Coords)
}
