package constraint

import (
	"testing"

	"github.com/statutecheck/statutecheck/internal/statute"
)

func TestHeuristicBackend_FlatConjunction(t *testing.T) {
	b := NewHeuristicBackend()
	c := statute.And{
		Left:  adult(),
		Right: statute.Income{Op: statute.OpGe, Value: 30000},
	}
	if got := b.IsSatisfiable(c); got != Yes {
		t.Fatalf("compatible literals over distinct quantities, got %s", got)
	}
}

func TestHeuristicBackend_ClashIsNo(t *testing.T) {
	b := NewHeuristicBackend()
	c := statute.And{Left: adult(), Right: minor()}
	if got := b.IsSatisfiable(c); got != No {
		t.Fatalf("clashing literals must be No, got %s", got)
	}
}

func TestHeuristicBackend_DisjunctionIsUnknown(t *testing.T) {
	b := NewHeuristicBackend()
	c := statute.Or{
		Left:  adult(),
		Right: statute.Income{Op: statute.OpGe, Value: 30000},
	}
	if got := b.IsSatisfiable(c); got != Unknown {
		t.Fatalf("non-flat shapes stay Unknown, got %s", got)
	}
}

func TestHeuristicBackend_NeStaysUnknown(t *testing.T) {
	b := NewHeuristicBackend()
	c := statute.And{
		Left:  adult(),
		Right: statute.Age{Op: statute.OpNe, Value: 30},
	}
	if got := b.IsSatisfiable(c); got != Unknown {
		t.Fatalf("exclusions alongside bounds must stay Unknown, got %s", got)
	}
}

func TestHeuristicBackend_Constants(t *testing.T) {
	b := NewHeuristicBackend()
	if got := b.IsSatisfiable(statute.Constant{Value: false}); got != No {
		t.Fatalf("constant false, got %s", got)
	}
	if got := b.IsSatisfiable(statute.Constant{Value: true}); got != Yes {
		t.Fatalf("constant true, got %s", got)
	}
	// simplification exposes the constant before the flatness check
	folded := statute.And{Left: adult(), Right: statute.Not{Inner: adult()}}
	if got := b.IsSatisfiable(folded); got != No {
		t.Fatalf("x and not x folds to false, got %s", got)
	}
}

func TestHeuristicBackend_TautologyStaysConservative(t *testing.T) {
	b := NewHeuristicBackend()
	// the query behind tautology is sat(not c), which is not flat here
	if got := b.IsTautology(statute.Or{Left: adult(), Right: minor()}); got == No {
		t.Fatalf("a real tautology must never come back No")
	}
}

func TestHeuristicBackend_ImpliesViaClash(t *testing.T) {
	b := NewHeuristicBackend()
	strict := statute.Age{Op: statute.OpGe, Value: 21}
	if got := b.Implies(strict, adult()); got != Yes {
		t.Fatalf("age >= 21 implies age >= 18, got %s", got)
	}
}
