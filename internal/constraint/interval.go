package constraint

import (
	"math"
	"time"

	"github.com/statutecheck/statutecheck/internal/statute"
)

// IntervalBackend decides satisfiability exactly for the fragment the
// condition language can express: per-variable interval constraints
// over integers and reals plus boolean indicators. It expands the
// formula to DNF under a term budget and a per-query timeout; blowing
// either yields Unknown, never a wrong answer.
type IntervalBackend struct {
	Timeout  time.Duration
	MaxTerms int
}

func NewIntervalBackend() *IntervalBackend {
	return &IntervalBackend{
		Timeout:  2 * time.Second,
		MaxTerms: 4096,
	}
}

func (b *IntervalBackend) Name() string { return "interval" }

func (b *IntervalBackend) IsSatisfiable(c statute.Condition) Answer {
	deadline := time.Time{}
	if b.Timeout > 0 {
		deadline = time.Now().Add(b.Timeout)
	}

	maxTerms := b.MaxTerms
	if maxTerms <= 0 {
		maxTerms = 4096
	}

	terms, ok := dnf(translate(c, false), maxTerms, deadline)
	if !ok {
		return Unknown
	}
	for _, term := range terms {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return Unknown
		}
		if termSatisfiable(term) {
			return Yes
		}
	}
	return No
}

func (b *IntervalBackend) IsTautology(c statute.Condition) Answer {
	return tautologyVia(b, c)
}

func (b *IntervalBackend) Implies(a, c statute.Condition) Answer {
	return impliesVia(b, a, c)
}

func (b *IntervalBackend) Equivalent(a, c statute.Condition) Answer {
	return equivalentVia(b, a, c)
}

// dnf expands an NNF formula into a disjunction of literal
// conjunctions. The second return is false when the term budget or the
// deadline is exhausted.
func dnf(f formula, maxTerms int, deadline time.Time) ([][]formula, bool) {
	if !deadline.IsZero() && time.Now().After(deadline) {
		return nil, false
	}

	switch v := f.(type) {
	case fConst:
		if v.val {
			return [][]formula{{}}, true
		}
		return nil, true

	case fAtom:
		return [][]formula{{v}}, true

	case fBool:
		return [][]formula{{v}}, true

	case fOr:
		var out [][]formula
		for _, sub := range v.subs {
			terms, ok := dnf(sub, maxTerms, deadline)
			if !ok {
				return nil, false
			}
			out = append(out, terms...)
			if len(out) > maxTerms {
				return nil, false
			}
		}
		return out, true

	case fAnd:
		out := [][]formula{{}}
		for _, sub := range v.subs {
			terms, ok := dnf(sub, maxTerms, deadline)
			if !ok {
				return nil, false
			}
			var next [][]formula
			for _, t := range out {
				for _, u := range terms {
					merged := make([]formula, 0, len(t)+len(u))
					merged = append(merged, t...)
					merged = append(merged, u...)
					next = append(next, merged)
					if len(next) > maxTerms {
						return nil, false
					}
				}
			}
			out = next
		}
		return out, true
	}
	return nil, false
}

// varBounds accumulates every constraint a term places on one variable.
type varBounds struct {
	kind     varKind
	lo, hi   float64
	loStrict bool
	hiStrict bool
	hasLo    bool
	hasHi    bool
	eq       []float64
	ne       []float64
	pos, neg bool // boolean indicator polarity seen
}

func termSatisfiable(term []formula) bool {
	vars := map[string]*varBounds{}
	get := func(v variable) *varBounds {
		b, ok := vars[v.name]
		if !ok {
			b = &varBounds{kind: v.kind}
			vars[v.name] = b
		}
		return b
	}

	for _, lit := range term {
		switch v := lit.(type) {
		case fBool:
			b := get(v.v)
			if v.neg {
				b.neg = true
			} else {
				b.pos = true
			}
		case fAtom:
			b := get(v.v)
			switch v.op {
			case statute.OpEq:
				b.eq = append(b.eq, v.val)
			case statute.OpNe:
				b.ne = append(b.ne, v.val)
			case statute.OpLt:
				b.tightenHi(v.val, true)
			case statute.OpLe:
				b.tightenHi(v.val, false)
			case statute.OpGt:
				b.tightenLo(v.val, true)
			case statute.OpGe:
				b.tightenLo(v.val, false)
			}
		}
	}

	for _, b := range vars {
		if !b.satisfiable() {
			return false
		}
	}
	return true
}

func (b *varBounds) tightenLo(v float64, strict bool) {
	if !b.hasLo || v > b.lo || (v == b.lo && strict) {
		b.lo, b.loStrict, b.hasLo = v, strict, true
	}
}

func (b *varBounds) tightenHi(v float64, strict bool) {
	if !b.hasHi || v < b.hi || (v == b.hi && strict) {
		b.hi, b.hiStrict, b.hasHi = v, strict, true
	}
}

func (b *varBounds) satisfiable() bool {
	if b.pos && b.neg {
		return false
	}
	if b.kind == varBool {
		return true
	}
	if b.kind == varInt {
		return b.intSatisfiable()
	}
	return b.realSatisfiable()
}

func (b *varBounds) intSatisfiable() bool {
	lo, hi := math.Inf(-1), math.Inf(1)
	if b.hasLo {
		lo = math.Ceil(b.lo)
		if b.loStrict && lo == b.lo {
			lo++
		}
	}
	if b.hasHi {
		hi = math.Floor(b.hi)
		if b.hiStrict && hi == b.hi {
			hi--
		}
	}
	if lo > hi {
		return false
	}

	if len(b.eq) > 0 {
		want := b.eq[0]
		for _, v := range b.eq[1:] {
			if v != want {
				return false
			}
		}
		if want != math.Trunc(want) {
			return false
		}
		if want < lo || want > hi {
			return false
		}
		for _, v := range b.ne {
			if v == want {
				return false
			}
		}
		return true
	}

	if math.IsInf(lo, -1) || math.IsInf(hi, 1) {
		return true // infinitely many integers, finitely many exclusions
	}
	count := int64(hi-lo) + 1
	excluded := map[float64]struct{}{}
	for _, v := range b.ne {
		if v == math.Trunc(v) && v >= lo && v <= hi {
			excluded[v] = struct{}{}
		}
	}
	return int64(len(excluded)) < count
}

func (b *varBounds) realSatisfiable() bool {
	lo, hi := math.Inf(-1), math.Inf(1)
	loStrict, hiStrict := false, false
	if b.hasLo {
		lo, loStrict = b.lo, b.loStrict
	}
	if b.hasHi {
		hi, hiStrict = b.hi, b.hiStrict
	}
	if lo > hi {
		return false
	}
	if lo == hi && (loStrict || hiStrict) {
		return false
	}

	if len(b.eq) > 0 {
		want := b.eq[0]
		for _, v := range b.eq[1:] {
			if v != want {
				return false
			}
		}
		if want < lo || want > hi {
			return false
		}
		if (want == lo && loStrict) || (want == hi && hiStrict) {
			return false
		}
		for _, v := range b.ne {
			if v == want {
				return false
			}
		}
		return true
	}

	if lo == hi {
		for _, v := range b.ne {
			if v == lo {
				return false
			}
		}
	}
	// any non-degenerate real interval dodges a finite exclusion set
	return true
}
