package builtin

import "sort"

// registerListHandlers installs the list/propList operations, grounded on
// manager.rs's count/get_at/set_at/add_at/delete_at/append/get_one/
// get_prop/set_a_prop/add_prop/delete_prop/sort/duplicate.
func registerListHandlers(r *Registry) {
	r.Register("count", listCount)
	r.Register("getAt", listGetAt)
	r.Register("setAt", listSetAt)
	r.Register("addAt", listAddAt)
	r.Register("deleteAt", listDeleteAt)
	r.Register("append", listAppend)
	r.Register("getOne", listGetOne)
	r.Register("getProp", listGetProp)
	r.Register("setAProp", listSetAProp)
	r.Register("addProp", listAddProp)
	r.Register("deleteProp", listDeleteProp)
	r.Register("sort", listSort)
	r.Register("duplicate", listDuplicate)
}

func listCount(args []Datum) (Datum, error) {
	d := arg(args, 0)
	switch d.Kind {
	case KindList:
		return IntDatum(int32(len(d.List))), nil
	case KindPropList:
		return IntDatum(int32(len(d.PropList))), nil
	default:
		return Void(), errNotAList("count", d)
	}
}

// listGetAt mirrors manager.rs's get_at: Point/Rect index by coordinate,
// List/PropList index 1-based into their backing slice.
func listGetAt(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	position, err := arg(args, 1).IntValue()
	if err != nil {
		return Void(), err
	}
	index := int(position) - 1

	switch obj.Kind {
	case KindPoint:
		if index < 0 || index >= len(obj.Coords) {
			return Void(), errIndexOutOfBounds("point", int(position), len(obj.Coords))
		}
		return FloatDatum(obj.Coords[index]), nil
	case KindRect:
		if index < 0 || index >= len(obj.Coords) {
			return Void(), errIndexOutOfBounds("rect", int(position), len(obj.Coords))
		}
		return FloatDatum(obj.Coords[index]), nil
	case KindList:
		if index < 0 || index >= len(obj.List) {
			return Void(), errIndexOutOfBounds("list", int(position), len(obj.List))
		}
		return obj.List[index], nil
	case KindPropList:
		if index < 0 || index >= len(obj.PropList) {
			return Void(), errIndexOutOfBounds("propList", int(position), len(obj.PropList))
		}
		return obj.PropList[index].Value, nil
	default:
		return Void(), errNotAList("getAt", obj)
	}
}

func listSetAt(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	position, err := arg(args, 1).IntValue()
	if err != nil {
		return Void(), err
	}
	value := arg(args, 2)
	index := int(position) - 1

	switch obj.Kind {
	case KindList:
		for index >= len(obj.List) {
			obj.List = append(obj.List, Void())
		}
		if index < 0 {
			return Void(), errIndexOutOfBounds("list", int(position), len(obj.List))
		}
		obj.List[index] = value
		return obj, nil
	case KindPropList:
		if index < 0 || index >= len(obj.PropList) {
			return Void(), errIndexOutOfBounds("propList", int(position), len(obj.PropList))
		}
		obj.PropList[index].Value = value
		return obj, nil
	default:
		return Void(), errNotAList("setAt", obj)
	}
}

func listAddAt(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	position, err := arg(args, 1).IntValue()
	if err != nil {
		return Void(), err
	}
	value := arg(args, 2)
	index := int(position) - 1

	if obj.Kind != KindList {
		return Void(), errNotAList("addAt", obj)
	}
	if index < 0 || index > len(obj.List) {
		return Void(), errIndexOutOfBounds("list", int(position), len(obj.List))
	}
	obj.List = append(obj.List[:index], append([]Datum{value}, obj.List[index:]...)...)
	return obj, nil
}

func listDeleteAt(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	position, err := arg(args, 1).IntValue()
	if err != nil {
		return Void(), err
	}
	index := int(position) - 1

	switch obj.Kind {
	case KindList:
		if index < 0 || index >= len(obj.List) {
			return Void(), errIndexOutOfBounds("list", int(position), len(obj.List))
		}
		obj.List = append(obj.List[:index], obj.List[index+1:]...)
		return obj, nil
	case KindPropList:
		if index < 0 || index >= len(obj.PropList) {
			return Void(), errIndexOutOfBounds("propList", int(position), len(obj.PropList))
		}
		obj.PropList = append(obj.PropList[:index], obj.PropList[index+1:]...)
		return obj, nil
	default:
		return Void(), errNotAList("deleteAt", obj)
	}
}

func listAppend(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	if obj.Kind != KindList {
		return Void(), errNotAList("append", obj)
	}
	obj.List = append(obj.List, arg(args, 1))
	return obj, nil
}

// listGetOne finds the first element equal to value, returning its
// 1-based position or 0 if absent (manager.rs's get_one / getOne op).
func listGetOne(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	value := arg(args, 1)
	if obj.Kind != KindList {
		return Void(), errNotAList("getOne", obj)
	}
	for i, v := range obj.List {
		if datumEqual(v, value) {
			return IntDatum(int32(i + 1)), nil
		}
	}
	return IntDatum(0), nil
}

func listGetProp(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	key := arg(args, 1)
	if obj.Kind != KindPropList {
		return Void(), errNotAList("getProp", obj)
	}
	for _, e := range obj.PropList {
		if datumEqual(e.Key, key) {
			return e.Value, nil
		}
	}
	return Void(), errKeyNotFound(key)
}

func listSetAProp(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	key := arg(args, 1)
	value := arg(args, 2)
	if obj.Kind != KindPropList {
		return Void(), errNotAList("setAProp", obj)
	}
	for i, e := range obj.PropList {
		if datumEqual(e.Key, key) {
			obj.PropList[i].Value = value
			return obj, nil
		}
	}
	obj.PropList = append(obj.PropList, PropEntry{Key: key, Value: value})
	return obj, nil
}

func listAddProp(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	key := arg(args, 1)
	value := arg(args, 2)
	if obj.Kind != KindPropList {
		return Void(), errNotAList("addProp", obj)
	}
	obj.PropList = append(obj.PropList, PropEntry{Key: key, Value: value})
	return obj, nil
}

func listDeleteProp(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	key := arg(args, 1)
	if obj.Kind != KindPropList {
		return Void(), errNotAList("deleteProp", obj)
	}
	for i, e := range obj.PropList {
		if datumEqual(e.Key, key) {
			obj.PropList = append(obj.PropList[:i], obj.PropList[i+1:]...)
			return obj, nil
		}
	}
	return obj, nil
}

// listSort orders a list's elements in place, comparing ints/floats
// numerically and strings/symbols lexically (manager.rs's sort op, which
// delegates to a total-order comparator over whatever datum kind the list
// happens to hold).
func listSort(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	if obj.Kind != KindList {
		return Void(), errNotAList("sort", obj)
	}
	sort.SliceStable(obj.List, func(i, j int) bool {
		return datumLess(obj.List[i], obj.List[j])
	})
	return obj, nil
}

func listDuplicate(args []Datum) (Datum, error) {
	obj := arg(args, 0)
	switch obj.Kind {
	case KindList:
		cp := make([]Datum, len(obj.List))
		copy(cp, obj.List)
		return Datum{Kind: KindList, List: cp}, nil
	case KindPropList:
		cp := make([]PropEntry, len(obj.PropList))
		copy(cp, obj.PropList)
		return Datum{Kind: KindPropList, PropList: cp}, nil
	default:
		return obj, nil
	}
}

func datumEqual(a, b Datum) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInt, KindPaletteIndex:
		return a.Int == b.Int
	case KindFloat:
		return a.Float == b.Float
	case KindString:
		return a.Str == b.Str
	case KindSymbol:
		return a.Symbol == b.Symbol
	case KindVoid:
		return true
	default:
		return false
	}
}

func datumLess(a, b Datum) bool {
	switch {
	case a.Kind == KindInt || a.Kind == KindFloat:
		av, _ := a.FloatValue()
		bv, _ := b.FloatValue()
		return av < bv
	case a.Kind == KindString:
		return a.Str < b.Str
	case a.Kind == KindSymbol:
		return a.Symbol < b.Symbol
	default:
		return false
	}
}
