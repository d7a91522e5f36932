package builtin

import (
	"strconv"
	"strings"

	"directorcore/internal/debug"
)

// SetLogger installs the debug.Logger put() writes through, matching
// the rest of the core's component-tagged logging (internal/debug's
// LogBuiltin/LogBuiltinf).
func (r *Registry) SetLogger(logger *debug.Logger) {
	r.logger = logger
}

func registerIOHandlers(r *Registry) {
	r.Register("put", r.ioPut)
}

// ioPut formats its arguments the way Lingo's Message window does
// (spec.md §4.9: quoted strings, hash-prefixed symbols, <Void> for null)
// and writes the result to the builtin component's debug log, grounded
// on manager.rs's format_datum/format_concrete_datum.
func (r *Registry) ioPut(args []Datum) (Datum, error) {
	parts := make([]string, len(args))
	for i, d := range args {
		parts[i] = FormatDatum(d)
	}
	line := strings.Join(parts, " ")
	if r.logger != nil {
		r.logger.LogBuiltin(debug.LogLevelInfo, line, nil)
	}
	return StringDatum(line), nil
}

// FormatDatum renders d the way Lingo's put command does.
func FormatDatum(d Datum) string {
	switch d.Kind {
	case KindVoid:
		return "<Void>"
	case KindInt, KindPaletteIndex:
		return strconv.FormatInt(int64(d.Int), 10)
	case KindFloat:
		return strconv.FormatFloat(d.Float, 'g', -1, 64)
	case KindString:
		return `"` + d.Str + `"`
	case KindSymbol:
		return "#" + d.Symbol
	case KindPoint:
		return "point(" + formatFloats(d.Coords) + ")"
	case KindRect:
		return "rect(" + formatFloats(d.Coords) + ")"
	case KindColor:
		return "rgb(" + strconv.Itoa(int(d.R)) + ", " + strconv.Itoa(int(d.G)) + ", " + strconv.Itoa(int(d.B)) + ")"
	case KindList, KindVector:
		parts := make([]string, len(d.List))
		for i, e := range d.List {
			parts[i] = FormatDatum(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindPropList:
		parts := make([]string, len(d.PropList))
		for i, e := range d.PropList {
			parts[i] = FormatDatum(e.Key) + ": " + FormatDatum(e.Value)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		return "<object>"
	default:
		return ""
	}
}

func formatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
