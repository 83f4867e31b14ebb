// Package constraint answers satisfiability questions about condition
// trees. The Backend interface is an injected capability: the Verifier
// is written against it and never knows which implementation is active.
// IntervalBackend decides the linear-comparison fragment exactly;
// HeuristicBackend is the conservative structural fallback. A future
// SMT binding slots in behind the same interface.
package constraint

import "github.com/statutecheck/statutecheck/internal/statute"

// Answer is a tri-state verdict. Unknown is an honest "cannot tell",
// never a guess: callers may only act on Yes and No.
type Answer int

const (
	Unknown Answer = iota
	Yes
	No
)

func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	}
	return "unknown"
}

// Backend decides logical properties of conditions.
type Backend interface {
	Name() string
	IsSatisfiable(c statute.Condition) Answer
	IsTautology(c statute.Condition) Answer
	Implies(a, b statute.Condition) Answer
	Equivalent(a, b statute.Condition) Answer
}

// The derived queries reduce to satisfiability the same way for every
// backend: c is a tautology iff ¬c is unsatisfiable, and a implies b
// iff a∧¬b is unsatisfiable.

func tautologyVia(b Backend, c statute.Condition) Answer {
	switch b.IsSatisfiable(statute.Not{Inner: c}) {
	case No:
		return Yes
	case Yes:
		return No
	}
	return Unknown
}

func impliesVia(b Backend, a, c statute.Condition) Answer {
	switch b.IsSatisfiable(statute.And{Left: a, Right: statute.Not{Inner: c}}) {
	case No:
		return Yes
	case Yes:
		return No
	}
	return Unknown
}

func equivalentVia(b Backend, a, c statute.Condition) Answer {
	fwd := impliesVia(b, a, c)
	if fwd == No {
		return No
	}
	back := impliesVia(b, c, a)
	if back == No {
		return No
	}
	if fwd == Yes && back == Yes {
		return Yes
	}
	return Unknown
}
