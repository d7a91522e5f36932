package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallNoSuchHandlerIsRecoverable(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call("notAHandler", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "notAHandler")
}

func TestRegisterOverridesHandler(t *testing.T) {
	r := NewRegistry()
	r.Register("count", func(args []Datum) (Datum, error) {
		return IntDatum(42), nil
	})
	out, err := r.Call("count", []Datum{ListDatum()})
	require.NoError(t, err)
	require.Equal(t, int32(42), out.Int)
}
