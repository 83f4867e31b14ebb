package constraint

import "github.com/statutecheck/statutecheck/internal/statute"

// HeuristicBackend is the fallback when no solver is configured. It
// only ever reports Yes or No when structurally certain (simplify to a
// constant, or a flat conjunction of literals with a direct clash) and
// Unknown everywhere else.
type HeuristicBackend struct{}

func NewHeuristicBackend() *HeuristicBackend { return &HeuristicBackend{} }

func (b *HeuristicBackend) Name() string { return "heuristic" }

func (b *HeuristicBackend) IsSatisfiable(c statute.Condition) Answer {
	simplified, _ := Simplify(c)
	if k, ok := simplified.(statute.Constant); ok {
		if k.Value {
			return Yes
		}
		return No
	}

	lits, flat := flattenConjunction(simplified)
	if !flat {
		return Unknown
	}

	for i := range lits {
		for j := i + 1; j < len(lits); j++ {
			if LiteralClash(lits[i], lits[j]) {
				return No
			}
		}
	}

	// Pairwise-compatible intervals are jointly satisfiable in one
	// dimension, but "not equal" exclusions can defeat that, so any
	// variable carrying one alongside other constraints stays Unknown.
	if conjunctionCertainlySatisfiable(lits) {
		return Yes
	}
	return Unknown
}

func (b *HeuristicBackend) IsTautology(c statute.Condition) Answer {
	return tautologyVia(b, c)
}

func (b *HeuristicBackend) Implies(a, c statute.Condition) Answer {
	return impliesVia(b, a, c)
}

func (b *HeuristicBackend) Equivalent(a, c statute.Condition) Answer {
	return equivalentVia(b, a, c)
}

// flattenConjunction unrolls a tree of Ands whose leaves are literals.
// Anything containing Or, or a negation of a non-leaf, is not flat.
func flattenConjunction(c statute.Condition) ([]statute.Condition, bool) {
	switch v := c.(type) {
	case statute.And:
		left, ok := flattenConjunction(v.Left)
		if !ok {
			return nil, false
		}
		right, ok := flattenConjunction(v.Right)
		if !ok {
			return nil, false
		}
		return append(left, right...), true
	default:
		if _, ok := litOf(c); ok {
			return []statute.Condition{c}, true
		}
		return nil, false
	}
}

func conjunctionCertainlySatisfiable(lits []statute.Condition) bool {
	type seen struct {
		count int
		hasNe bool
	}
	vars := map[string]*seen{}

	for _, lit := range lits {
		f, _ := litOf(lit)
		switch v := f.(type) {
		case fAtom:
			s := vars[v.v.name]
			if s == nil {
				s = &seen{}
				vars[v.v.name] = s
			}
			s.count++
			if v.op == statute.OpNe {
				s.hasNe = true
			}
		case fBool:
			s := vars[v.v.name]
			if s == nil {
				s = &seen{}
				vars[v.v.name] = s
			}
			s.count++
		}
	}

	for _, s := range vars {
		if s.hasNe && s.count > 1 {
			return false
		}
	}
	return true
}
