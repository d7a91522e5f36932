package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatDatum(t *testing.T) {
	require.Equal(t, "<Void>", FormatDatum(Void()))
	require.Equal(t, `"hi"`, FormatDatum(StringDatum("hi")))
	require.Equal(t, "#done", FormatDatum(SymbolDatum("done")))
	require.Equal(t, "42", FormatDatum(IntDatum(42)))
}

func TestPutReturnsJoinedFormattedLine(t *testing.T) {
	r := NewRegistry()
	out, err := r.Call("put", []Datum{StringDatum("hi"), IntDatum(1), Void()})
	require.NoError(t, err)
	require.Equal(t, `"hi" 1 <Void>`, out.Str)
}
