package constraint

import (
	"testing"

	"github.com/statutecheck/statutecheck/internal/statute"
)

func adult() statute.Condition { return statute.Age{Op: statute.OpGe, Value: 18} }
func minor() statute.Condition { return statute.Age{Op: statute.OpLt, Value: 18} }

func TestSimplify_DoubleNegation(t *testing.T) {
	got, changed := Simplify(statute.Not{Inner: statute.Not{Inner: adult()}})
	if !changed {
		t.Fatalf("expected a rewrite")
	}
	if !statute.Equal(got, adult()) {
		t.Fatalf("expected age >= 18, got %s", got)
	}
}

func TestSimplify_NoChange(t *testing.T) {
	got, changed := Simplify(adult())
	if changed {
		t.Fatalf("leaf must be untouched")
	}
	if !statute.Equal(got, adult()) {
		t.Fatalf("expected identity, got %s", got)
	}
}

func TestSimplify_ContradictionFoldsToFalse(t *testing.T) {
	got, changed := Simplify(statute.And{Left: adult(), Right: minor()})
	if !changed {
		t.Fatalf("expected a rewrite")
	}
	k, ok := got.(statute.Constant)
	if !ok || k.Value {
		t.Fatalf("expected constant false, got %s", got)
	}
}

func TestSimplify_CoveringDisjunctionFoldsToTrue(t *testing.T) {
	got, _ := Simplify(statute.Or{Left: adult(), Right: minor()})
	k, ok := got.(statute.Constant)
	if !ok || !k.Value {
		t.Fatalf("expected constant true, got %s", got)
	}
}

func TestSimplify_RedundantConjunct(t *testing.T) {
	strict := statute.Age{Op: statute.OpGe, Value: 21}
	got, changed := Simplify(statute.And{Left: strict, Right: adult()})
	if !changed {
		t.Fatalf("expected a rewrite")
	}
	if !statute.Equal(got, strict) {
		t.Fatalf("age >= 21 implies age >= 18; expected the stronger conjunct, got %s", got)
	}
}

func TestSimplify_WeakerDisjunct(t *testing.T) {
	strict := statute.Age{Op: statute.OpGe, Value: 21}
	got, _ := Simplify(statute.Or{Left: strict, Right: adult()})
	if !statute.Equal(got, adult()) {
		t.Fatalf("expected the weaker disjunct, got %s", got)
	}
}

func TestSimplify_ConstantPropagation(t *testing.T) {
	c := statute.And{
		Left:  statute.Constant{Value: true},
		Right: statute.Or{Left: statute.Constant{Value: false}, Right: adult()},
	}
	got, _ := Simplify(c)
	if !statute.Equal(got, adult()) {
		t.Fatalf("expected age >= 18, got %s", got)
	}
}

func TestSimplify_CascadesThroughNot(t *testing.T) {
	// NOT (x AND NOT x) folds to NOT false, then to true
	c := statute.Not{Inner: statute.And{Left: adult(), Right: statute.Not{Inner: adult()}}}
	got, _ := Simplify(c)
	k, ok := got.(statute.Constant)
	if !ok || !k.Value {
		t.Fatalf("expected constant true, got %s", got)
	}
}

func TestLiteralClash(t *testing.T) {
	if !LiteralClash(adult(), minor()) {
		t.Fatalf("age >= 18 and age < 18 must clash")
	}
	if LiteralClash(adult(), statute.Income{Op: statute.OpLt, Value: 100}) {
		t.Fatalf("literals over distinct quantities never clash")
	}

	member := statute.SetMembership{Key: "status", Values: []string{"active"}}
	negated := statute.SetMembership{Key: "status", Values: []string{"active"}, Negated: true}
	if !LiteralClash(member, negated) {
		t.Fatalf("a membership and its negation must clash")
	}
}

func TestLiteralImplies(t *testing.T) {
	if !LiteralImplies(statute.Age{Op: statute.OpGe, Value: 21}, adult()) {
		t.Fatalf("age >= 21 implies age >= 18")
	}
	if LiteralImplies(adult(), statute.Age{Op: statute.OpGe, Value: 21}) {
		t.Fatalf("age >= 18 does not imply age >= 21")
	}
}
