package constraint

import "github.com/statutecheck/statutecheck/internal/statute"

// Simplify rewrites a condition into an equivalent smaller form:
// double negation elimination, constant folding, duplicate and implied
// conjunct removal, and literal contradiction/tautology folding. The
// second return reports whether anything changed.
func Simplify(c statute.Condition) (statute.Condition, bool) {
	out, changed := simplify(c)
	// rewrites can cascade (folding exposes new constants)
	for changed {
		var again bool
		out, again = simplify(out)
		if !again {
			return out, true
		}
	}
	return out, changed
}

func simplify(c statute.Condition) (statute.Condition, bool) {
	switch v := c.(type) {
	case statute.Not:
		inner, changed := simplify(v.Inner)
		switch iv := inner.(type) {
		case statute.Not:
			return iv.Inner, true
		case statute.Constant:
			return statute.Constant{Value: !iv.Value}, true
		}
		return statute.Not{Inner: inner}, changed

	case statute.And:
		l, lc := simplify(v.Left)
		r, rc := simplify(v.Right)
		changed := lc || rc

		if k, ok := l.(statute.Constant); ok {
			if !k.Value {
				return statute.Constant{Value: false}, true
			}
			return r, true
		}
		if k, ok := r.(statute.Constant); ok {
			if !k.Value {
				return statute.Constant{Value: false}, true
			}
			return l, true
		}
		if statute.Equal(l, r) {
			return l, true
		}
		if LiteralClash(l, r) {
			return statute.Constant{Value: false}, true
		}
		if LiteralImplies(l, r) {
			return l, true
		}
		if LiteralImplies(r, l) {
			return r, true
		}
		return statute.And{Left: l, Right: r}, changed

	case statute.Or:
		l, lc := simplify(v.Left)
		r, rc := simplify(v.Right)
		changed := lc || rc

		if k, ok := l.(statute.Constant); ok {
			if k.Value {
				return statute.Constant{Value: true}, true
			}
			return r, true
		}
		if k, ok := r.(statute.Constant); ok {
			if k.Value {
				return statute.Constant{Value: true}, true
			}
			return l, true
		}
		if statute.Equal(l, r) {
			return l, true
		}
		if literalsCover(l, r) {
			return statute.Constant{Value: true}, true
		}
		if LiteralImplies(l, r) {
			return r, true
		}
		if LiteralImplies(r, l) {
			return l, true
		}
		return statute.Or{Left: l, Right: r}, changed

	default:
		return c, false
	}
}

// litOf extracts the single-literal translation of a leaf (or a negated
// leaf). Connectives are not literals.
func litOf(c statute.Condition) (formula, bool) {
	switch v := c.(type) {
	case statute.And, statute.Or, statute.Constant:
		return nil, false
	case statute.Not:
		switch v.Inner.(type) {
		case statute.And, statute.Or, statute.Constant:
			return nil, false
		}
	}
	f := translate(c, false)
	switch f.(type) {
	case fAtom, fBool:
		return f, true
	}
	return nil, false
}

// LiteralClash reports that two literals can never hold together, e.g.
// age >= 18 and age < 18. It is exact for literals over one shared
// variable and false otherwise.
func LiteralClash(a, b statute.Condition) bool {
	fa, ok := litOf(a)
	if !ok {
		return false
	}
	fb, ok := litOf(b)
	if !ok {
		return false
	}
	return !pairSatisfiable(fa, fb)
}

// LiteralImplies reports that literal a holding forces literal b, i.e.
// a ∧ ¬b is impossible.
func LiteralImplies(a, b statute.Condition) bool {
	fa, ok := litOf(a)
	if !ok {
		return false
	}
	fb, ok := litOf(b)
	if !ok {
		return false
	}
	return !pairSatisfiable(fa, negateLit(fb))
}

// literalsCover reports that a ∨ b is a tautology, i.e. ¬a ∧ ¬b is
// impossible (age >= 18 or age < 18).
func literalsCover(a, b statute.Condition) bool {
	fa, ok := litOf(a)
	if !ok {
		return false
	}
	fb, ok := litOf(b)
	if !ok {
		return false
	}
	return !pairSatisfiable(negateLit(fa), negateLit(fb))
}

func negateLit(f formula) formula {
	switch v := f.(type) {
	case fAtom:
		return fAtom{v: v.v, op: negateOp(v.op), val: v.val}
	case fBool:
		return fBool{v: v.v, neg: !v.neg}
	}
	return f
}

// pairSatisfiable decides whether two literals admit a common model.
// Literals over distinct variables are independent, so yes; over a
// shared variable the interval machinery is exact.
func pairSatisfiable(a, b formula) bool {
	return termSatisfiable([]formula{a, b})
}
