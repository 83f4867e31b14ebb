package verify

import (
	"strings"
	"testing"
)

func TestResult_AddRoutesBySeverity(t *testing.T) {
	r := NewResult()
	r.Add(Finding{Kind: KindAmbiguity, Severity: SeverityWarning, StatuteID: "a", Message: "vague"})
	if !r.Passed {
		t.Fatalf("warnings must not fail the run")
	}
	if len(r.Warnings) != 1 || len(r.Errors) != 0 {
		t.Fatalf("unexpected routing: %+v", r)
	}

	r.Add(Finding{
		Kind:       KindDeadStatute,
		Severity:   SeverityError,
		StatuteID:  "b",
		Message:    "unreachable",
		Suggestion: "statute b: repair the preconditions",
	})
	if r.Passed {
		t.Fatalf("errors must fail the run")
	}
	if len(r.Errors) != 1 || len(r.Suggestions) != 1 {
		t.Fatalf("unexpected routing: %+v", r)
	}
}

func TestResult_Merge(t *testing.T) {
	a := NewResult()
	a.Warn("first")
	b := NewResult()
	b.Add(Finding{Kind: KindDeadStatute, Severity: SeverityError, StatuteID: "x", Message: "dead"})

	a.Merge(b)
	if a.Passed {
		t.Fatalf("merging a failed result fails the union")
	}
	if len(a.Errors) != 1 || len(a.Warnings) != 1 {
		t.Fatalf("merge must union lists: %+v", a)
	}

	a.Merge(nil) // no-op
	if len(a.Errors) != 1 {
		t.Fatalf("nil merge changed the result: %+v", a)
	}
}

func TestFinding_String(t *testing.T) {
	f := Finding{
		Kind:       KindLogicalContradiction,
		Severity:   SeverityError,
		StatuteID:  "a",
		RelatedIDs: []string{"b"},
		Message:    "effects exclude each other",
	}
	s := f.String()
	for _, want := range []string{"error", "logical_contradiction", "a [b]", "effects exclude each other"} {
		if !strings.Contains(s, want) {
			t.Fatalf("%q missing from %q", want, s)
		}
	}
}

func TestFinding_PairKeyUnordered(t *testing.T) {
	ab := Finding{Kind: KindLogicalContradiction, StatuteID: "a", RelatedIDs: []string{"b"}}
	ba := Finding{Kind: KindLogicalContradiction, StatuteID: "b", RelatedIDs: []string{"a"}}
	if ab.pairKey() != ba.pairKey() {
		t.Fatalf("pair keys must be orientation-free: %q vs %q", ab.pairKey(), ba.pairKey())
	}
	other := Finding{Kind: KindTemporalConflict, StatuteID: "a", RelatedIDs: []string{"b"}}
	if ab.pairKey() == other.pairKey() {
		t.Fatalf("different kinds must not collide")
	}
}

func TestFindingsOfKind(t *testing.T) {
	r := NewResult()
	r.Add(Finding{Kind: KindDeadStatute, Severity: SeverityError, StatuteID: "a", Message: "m"})
	r.Add(Finding{Kind: KindIdCollision, Severity: SeverityError, StatuteID: "b", Message: "m"})
	if got := r.FindingsOfKind(KindDeadStatute); len(got) != 1 || got[0].StatuteID != "a" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}
