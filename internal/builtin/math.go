package builtin

import (
	"math"
	"math/rand"
	"strconv"
)

// registerMathHandlers installs spec.md §4.9's math built-ins.
func registerMathHandlers(r *Registry) {
	r.Register("abs", mathAbs)
	r.Register("min", mathMin)
	r.Register("max", mathMax)
	r.Register("sin", unaryFloat(math.Sin))
	r.Register("cos", unaryFloat(math.Cos))
	r.Register("sqrt", unaryFloat(math.Sqrt))
	r.Register("atan", unaryFloat(math.Atan))
	r.Register("pi", mathPi)
	r.Register("random", mathRandom)
	r.Register("power", mathPower)
	r.Register("integer", mathInteger)
	r.Register("float", mathFloat)
	r.Register("string", mathString)
	r.Register("bitAnd", bitOp(func(a, b int32) int32 { return a & b }))
	r.Register("bitOr", bitOp(func(a, b int32) int32 { return a | b }))
	r.Register("bitXor", bitOp(func(a, b int32) int32 { return a ^ b }))
	r.Register("bitNot", func(args []Datum) (Datum, error) {
		v, err := arg(args, 0).IntValue()
		if err != nil {
			return Void(), err
		}
		return IntDatum(^v), nil
	})
}

func mathAbs(args []Datum) (Datum, error) {
	d := arg(args, 0)
	if d.Kind == KindFloat {
		return FloatDatum(math.Abs(d.Float)), nil
	}
	v, err := d.IntValue()
	if err != nil {
		return Void(), err
	}
	if v < 0 {
		v = -v
	}
	return IntDatum(v), nil
}

func mathMin(args []Datum) (Datum, error) {
	return minMax(args, false)
}

func mathMax(args []Datum) (Datum, error) {
	return minMax(args, true)
}

func minMax(args []Datum, wantMax bool) (Datum, error) {
	if len(args) == 0 {
		return Void(), errWrongArgCount("min/max", 1, 0)
	}
	best := args[0]
	bestV, err := best.FloatValue()
	if err != nil {
		return Void(), err
	}
	for _, d := range args[1:] {
		v, err := d.FloatValue()
		if err != nil {
			return Void(), err
		}
		if (wantMax && v > bestV) || (!wantMax && v < bestV) {
			best, bestV = d, v
		}
	}
	return best, nil
}

func unaryFloat(fn func(float64) float64) HandlerFunc {
	return func(args []Datum) (Datum, error) {
		v, err := arg(args, 0).FloatValue()
		if err != nil {
			return Void(), err
		}
		return FloatDatum(fn(v)), nil
	}
}

func mathPi(args []Datum) (Datum, error) {
	return FloatDatum(math.Pi), nil
}

// mathRandom returns a value in 1..n inclusive, matching spec.md §4.9
// "random(n) returning 1..n".
func mathRandom(args []Datum) (Datum, error) {
	n, err := arg(args, 0).IntValue()
	if err != nil {
		return Void(), err
	}
	if n <= 0 {
		return IntDatum(0), nil
	}
	return IntDatum(int32(rand.Intn(int(n))) + 1), nil
}

func mathPower(args []Datum) (Datum, error) {
	base, err := arg(args, 0).FloatValue()
	if err != nil {
		return Void(), err
	}
	exp, err := arg(args, 1).FloatValue()
	if err != nil {
		return Void(), err
	}
	return FloatDatum(math.Pow(base, exp)), nil
}

func mathInteger(args []Datum) (Datum, error) {
	v, err := arg(args, 0).FloatValue()
	if err != nil {
		return Void(), err
	}
	return IntDatum(int32(math.Round(v))), nil
}

func mathFloat(args []Datum) (Datum, error) {
	v, err := arg(args, 0).FloatValue()
	if err != nil {
		return Void(), err
	}
	return FloatDatum(v), nil
}

func mathString(args []Datum) (Datum, error) {
	d := arg(args, 0)
	switch d.Kind {
	case KindInt, KindPaletteIndex:
		return StringDatum(strconv.FormatInt(int64(d.Int), 10)), nil
	case KindFloat:
		return StringDatum(strconv.FormatFloat(d.Float, 'g', -1, 64)), nil
	case KindString:
		return d, nil
	case KindSymbol:
		return StringDatum(d.Symbol), nil
	default:
		return StringDatum(""), nil
	}
}

func bitOp(fn func(a, b int32) int32) HandlerFunc {
	return func(args []Datum) (Datum, error) {
		a, err := arg(args, 0).IntValue()
		if err != nil {
			return Void(), err
		}
		b, err := arg(args, 1).IntValue()
		if err != nil {
			return Void(), err
		}
		return IntDatum(fn(a, b)), nil
	}
}
