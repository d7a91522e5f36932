package builtin

// registerTypePredicateHandlers installs the *P() family plus ilk(),
// grounded on manager.rs's TypeHandlers dispatch (type_str()-based
// checks exposed as individual predicate handlers).
func registerTypePredicateHandlers(r *Registry) {
	r.Register("listP", kindPredicate(KindList, KindPropList))
	r.Register("stringP", kindPredicate(KindString))
	r.Register("integerP", kindPredicate(KindInt, KindPaletteIndex))
	r.Register("floatP", kindPredicate(KindFloat))
	r.Register("voidP", kindPredicate(KindVoid))
	r.Register("symbolP", kindPredicate(KindSymbol))
	r.Register("objectP", kindPredicate(KindObject))
	r.Register("ilk", ilk)
}

func kindPredicate(kinds ...Kind) HandlerFunc {
	return func(args []Datum) (Datum, error) {
		d := arg(args, 0)
		for _, k := range kinds {
			if d.Kind == k {
				return boolDatum(true), nil
			}
		}
		return boolDatum(false), nil
	}
}

// ilk returns the datum's type as a symbol, matching the reference's
// type_str() surfaced as a Lingo symbol rather than a string.
func ilk(args []Datum) (Datum, error) {
	d := arg(args, 0)
	return SymbolDatum(d.TypeStr()), nil
}

// boolDatum represents Lingo's integer booleans (0/1), matching
// datum_bool's representation in the reference rather than introducing a
// distinct bool Kind.
func boolDatum(v bool) Datum {
	if v {
		return IntDatum(1)
	}
	return IntDatum(0)
}
