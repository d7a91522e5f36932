package builtin

// registerGeometryHandlers installs point/rect construction and the
// inside/intersect/union predicates and combinators, grounded on
// manager.rs's PointDatumHandlers and the Rect datum variant it switches
// on alongside Point.
func registerGeometryHandlers(r *Registry) {
	r.Register("point", geomPoint)
	r.Register("rect", geomRect)
	r.Register("inside", geomInside)
	r.Register("intersect", geomIntersect)
	r.Register("union", geomUnion)
}

func geomPoint(args []Datum) (Datum, error) {
	x, err := arg(args, 0).FloatValue()
	if err != nil {
		return Void(), err
	}
	y, err := arg(args, 1).FloatValue()
	if err != nil {
		return Void(), err
	}
	return PointDatum(x, y), nil
}

func geomRect(args []Datum) (Datum, error) {
	vals := make([]float64, 4)
	for i := range vals {
		v, err := arg(args, i).FloatValue()
		if err != nil {
			return Void(), err
		}
		vals[i] = v
	}
	return RectDatum(vals[0], vals[1], vals[2], vals[3]), nil
}

// geomInside reports whether a point lies within a rect's bounds
// (left <= x < right, top <= y < bottom), matching the half-open
// convention Director uses for sprite bounding boxes.
func geomInside(args []Datum) (Datum, error) {
	p := arg(args, 0)
	rc := arg(args, 1)
	if p.Kind != KindPoint || rc.Kind != KindRect {
		return Void(), errWrongArgType("inside", 0, "point/rect", p)
	}
	x, y := p.Coords[0], p.Coords[1]
	l, t, rr, b := rc.Coords[0], rc.Coords[1], rc.Coords[2], rc.Coords[3]
	return boolDatum(x >= l && x < rr && y >= t && y < b), nil
}

func geomIntersect(args []Datum) (Datum, error) {
	a := arg(args, 0)
	b := arg(args, 1)
	if a.Kind != KindRect || b.Kind != KindRect {
		return Void(), errWrongArgType("intersect", 0, "rect", a)
	}
	l := maxF(a.Coords[0], b.Coords[0])
	t := maxF(a.Coords[1], b.Coords[1])
	r := minF(a.Coords[2], b.Coords[2])
	bot := minF(a.Coords[3], b.Coords[3])
	if l >= r || t >= bot {
		return RectDatum(0, 0, 0, 0), nil
	}
	return RectDatum(l, t, r, bot), nil
}

func geomUnion(args []Datum) (Datum, error) {
	a := arg(args, 0)
	b := arg(args, 1)
	if a.Kind != KindRect || b.Kind != KindRect {
		return Void(), errWrongArgType("union", 0, "rect", a)
	}
	l := minF(a.Coords[0], b.Coords[0])
	t := minF(a.Coords[1], b.Coords[1])
	r := maxF(a.Coords[2], b.Coords[2])
	bot := maxF(a.Coords[3], b.Coords[3])
	return RectDatum(l, t, r, bot), nil
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
