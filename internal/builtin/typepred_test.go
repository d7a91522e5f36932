package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypePredicates(t *testing.T) {
	r := NewRegistry()

	cases := []struct {
		handler string
		d       Datum
		want    bool
	}{
		{"listP", ListDatum(), true},
		{"listP", IntDatum(1), false},
		{"stringP", StringDatum("x"), true},
		{"integerP", IntDatum(1), true},
		{"integerP", FloatDatum(1), false},
		{"floatP", FloatDatum(1), true},
		{"voidP", Void(), true},
		{"symbolP", SymbolDatum("x"), true},
	}

	for _, c := range cases {
		out, err := r.Call(c.handler, []Datum{c.d})
		require.NoError(t, err)
		got := out.Int == 1
		require.Equalf(t, c.want, got, "%s(%v)", c.handler, c.d.Kind)
	}
}

func TestIlkReturnsTypeSymbol(t *testing.T) {
	r := NewRegistry()
	out, err := r.Call("ilk", []Datum{StringDatum("hi")})
	require.NoError(t, err)
	require.Equal(t, KindSymbol, out.Kind)
	require.Equal(t, "string", out.Symbol)
}
