// Package builtin implements the built-in handler surface (C9): a
// name-keyed registry of Lingo built-in operations (list ops, math, type
// predicates, geometry, constructors, formatted I/O, and event helpers)
// dispatched over a small runtime value type, grounded on
// original_source/vm-rust/src/player/handlers/manager.rs's
// BuiltInHandlerManager dispatch shape and the Datum variants it switches
// on (Datum::Int, Datum::List, Datum::PropList, Datum::Point, Datum::Rect,
// ...). This package implements built-in dispatch only; parsing and
// executing Lingo source is out of scope (spec's decompiler, C8, runs the
// other direction).
package builtin

import "fmt"

// Kind tags a Datum's concrete representation.
type Kind int

const (
	KindVoid Kind = iota
	KindInt
	KindFloat
	KindString
	KindSymbol
	KindList
	KindPropList
	KindPoint
	KindRect
	KindColor
	KindPaletteIndex
	KindVector
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindPropList:
		return "propList"
	case KindPoint:
		return "point"
	case KindRect:
		return "rect"
	case KindColor:
		return "color"
	case KindPaletteIndex:
		return "paletteIndex"
	case KindVector:
		return "vector"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// PropEntry is one {key, value} pair of a PropList, order-preserving to
// match spec.md's PropList parameter application order law (§8
// Supplemented features).
type PropEntry struct {
	Key   Datum
	Value Datum
}

// Datum is a runtime Lingo value. Exactly one field group is meaningful
// per Kind; this mirrors the reference's Datum enum as a flat tagged
// struct instead of a Rust-style enum, since Go has no sum types.
type Datum struct {
	Kind Kind

	Int    int32
	Float  float64
	Str    string
	Symbol string

	List     []Datum
	PropList []PropEntry

	// Point uses [2]float64{x,y}; Rect uses [4]float64{left,top,right,bottom}.
	Coords []float64

	// Color channels, 0..255 each.
	R, G, B uint8

	Object any
}

func Void() Datum                { return Datum{Kind: KindVoid} }
func IntDatum(v int32) Datum     { return Datum{Kind: KindInt, Int: v} }
func FloatDatum(v float64) Datum { return Datum{Kind: KindFloat, Float: v} }
func StringDatum(v string) Datum { return Datum{Kind: KindString, Str: v} }
func SymbolDatum(v string) Datum { return Datum{Kind: KindSymbol, Symbol: v} }
func ListDatum(items ...Datum) Datum {
	return Datum{Kind: KindList, List: items}
}
func PropListDatum(entries ...PropEntry) Datum {
	return Datum{Kind: KindPropList, PropList: entries}
}
func PointDatum(x, y float64) Datum {
	return Datum{Kind: KindPoint, Coords: []float64{x, y}}
}
func RectDatum(l, t, r, b float64) Datum {
	return Datum{Kind: KindRect, Coords: []float64{l, t, r, b}}
}
func ColorDatum(r, g, b uint8) Datum {
	return Datum{Kind: KindColor, R: r, G: g, B: b}
}
func PaletteIndexDatum(idx int32) Datum {
	return Datum{Kind: KindPaletteIndex, Int: idx}
}

// IntValue coerces a Datum to an int, following manager.rs's int_value()
// coercions: ints pass through, floats truncate, strings parse.
func (d Datum) IntValue() (int32, error) {
	switch d.Kind {
	case KindInt, KindPaletteIndex:
		return d.Int, nil
	case KindFloat:
		return int32(d.Float), nil
	case KindString:
		var v int32
		if _, err := fmt.Sscanf(d.Str, "%d", &v); err != nil {
			return 0, fmt.Errorf("cannot coerce string %q to integer", d.Str)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("cannot coerce %s to integer", d.Kind)
	}
}

// FloatValue coerces a Datum to a float64.
func (d Datum) FloatValue() (float64, error) {
	switch d.Kind {
	case KindFloat:
		return d.Float, nil
	case KindInt, KindPaletteIndex:
		return float64(d.Int), nil
	default:
		return 0, fmt.Errorf("cannot coerce %s to float", d.Kind)
	}
}

// TypeStr returns the Lingo-visible type name used in error messages and
// by the ilk() predicate.
func (d Datum) TypeStr() string { return d.Kind.String() }
