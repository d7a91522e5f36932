package builtin

import (
	"directorcore/internal/bitmap"
	"directorcore/internal/color"
)

// registerConstructorHandlers installs the constructor built-ins. rgb/
// color/paletteIndex wire directly into internal/color's Ref/RGB types
// (C1) rather than re-implementing color representation here; image()
// wires into internal/bitmap.New (C2).
func registerConstructorHandlers(r *Registry) {
	r.Register("image", constructImage)
	r.Register("rgb", constructRGB)
	r.Register("color", constructColor)
	r.Register("paletteIndex", constructPaletteIndex)
	r.Register("vector", constructVector)
	r.Register("symbol", constructSymbol)
	r.Register("list", constructList)
}

func constructImage(args []Datum) (Datum, error) {
	w, err := arg(args, 0).IntValue()
	if err != nil {
		return Void(), err
	}
	h, err := arg(args, 1).IntValue()
	if err != nil {
		return Void(), err
	}
	depth, err := arg(args, 2).IntValue()
	if err != nil {
		depth = int32(bitmap.Depth32)
	}
	bmp, err := bitmap.New(int(w), int(h), bitmap.BitDepth(depth), bitmap.BitDepth(depth))
	if err != nil {
		return Void(), &ScriptError{msg: err.Error()}
	}
	return Datum{Kind: KindObject, Object: bmp}, nil
}

func constructRGB(args []Datum) (Datum, error) {
	r8, err := arg(args, 0).IntValue()
	if err != nil {
		return Void(), err
	}
	g8, err := arg(args, 1).IntValue()
	if err != nil {
		return Void(), err
	}
	b8, err := arg(args, 2).IntValue()
	if err != nil {
		return Void(), err
	}
	return ColorDatum(uint8(r8), uint8(g8), uint8(b8)), nil
}

// constructColor builds a color.Ref-backed color datum: one argument
// means a palette index, three means a direct RGB triplet, matching
// Lingo's overloaded color() constructor.
func constructColor(args []Datum) (Datum, error) {
	if len(args) == 1 {
		idx, err := arg(args, 0).IntValue()
		if err != nil {
			return Void(), err
		}
		ref := color.PaletteIndex(uint8(idx))
		return PaletteIndexDatum(int32(ref.Index)), nil
	}
	return constructRGB(args)
}

func constructPaletteIndex(args []Datum) (Datum, error) {
	idx, err := arg(args, 0).IntValue()
	if err != nil {
		return Void(), err
	}
	return PaletteIndexDatum(idx), nil
}

// constructVector builds an N-element numeric list; Lingo's vector type
// has no distinct runtime representation from a list of floats in this
// core, since C9 never performs vector math itself (that lives in the
// keyframe/compositor interpolation code, C4/C6).
func constructVector(args []Datum) (Datum, error) {
	elems := make([]Datum, len(args))
	for i, a := range args {
		v, err := a.FloatValue()
		if err != nil {
			return Void(), err
		}
		elems[i] = FloatDatum(v)
	}
	return Datum{Kind: KindVector, List: elems}, nil
}

func constructSymbol(args []Datum) (Datum, error) {
	d := arg(args, 0)
	switch d.Kind {
	case KindString:
		return SymbolDatum(d.Str), nil
	case KindSymbol:
		return d, nil
	default:
		return Void(), errWrongArgType("symbol", 0, "string", d)
	}
}

func constructList(args []Datum) (Datum, error) {
	return ListDatum(args...), nil
}
