package verify

import (
	"fmt"
	"strings"

	"github.com/statutecheck/statutecheck/internal/constraint"
	"github.com/statutecheck/statutecheck/internal/refgraph"
	"github.com/statutecheck/statutecheck/internal/statute"
)

// circularFindings turns every reference cycle into an error. A statute
// may not depend on itself, directly or transitively.
func circularFindings(g *refgraph.Graph) []Finding {
	var out []Finding
	for _, cycle := range g.Cycles() {
		out = append(out, Finding{
			Kind:       KindCircularReference,
			Severity:   SeverityError,
			StatuteID:  cycle[0],
			RelatedIDs: cycle[1:],
			Message:    fmt.Sprintf("circular reference: %s", strings.Join(append(append([]string{}, cycle...), cycle[0]), " -> ")),
			Suggestion: fmt.Sprintf("break the dependency cycle through %s", strings.Join(cycle, ", ")),
		})
	}
	for _, d := range g.Dangling {
		out = append(out, Finding{
			Kind:       KindAmbiguity,
			Severity:   SeverityWarning,
			StatuteID:  d.From,
			RelatedIDs: []string{d.To},
			Message:    fmt.Sprintf("statute %q references unknown statute %q", d.From, d.To),
		})
	}
	return out
}

// deadStatuteFinding flags a statute whose precondition conjunction is
// proven unsatisfiable. Only a definite No produces a finding: on the
// heuristic path an Unknown stays silent, so there are no false
// positives.
func deadStatuteFinding(b constraint.Backend, s statute.Statute) (*Finding, bool) {
	if len(s.Preconditions) == 0 {
		return nil, false
	}
	ans := b.IsSatisfiable(s.Precondition())
	if ans == constraint.No {
		return &Finding{
			Kind:       KindDeadStatute,
			Severity:   SeverityError,
			StatuteID:  s.ID,
			Message:    fmt.Sprintf("statute %q can never apply: preconditions are unsatisfiable", s.ID),
			Suggestion: fmt.Sprintf("statute %s: remove or repair the contradictory preconditions", s.ID),
		}, false
	}
	return nil, ans == constraint.Unknown
}

// contradictionFinding flags two statutes whose preconditions can hold
// simultaneously while their effects exclude each other.
func contradictionFinding(b constraint.Backend, x, y statute.Statute, sev Severity) (*Finding, bool) {
	if !statute.MutuallyExclusive(x.Effect, y.Effect) {
		return nil, false
	}
	both := statute.And{Left: x.Precondition(), Right: y.Precondition()}
	ans := b.IsSatisfiable(both)
	if ans == constraint.Yes {
		return &Finding{
			Kind:       KindLogicalContradiction,
			Severity:   sev,
			StatuteID:  x.ID,
			RelatedIDs: []string{y.ID},
			Message: fmt.Sprintf("statutes %q and %q can both apply yet their effects (%s vs %s) exclude each other",
				x.ID, y.ID, x.Effect.Type, y.Effect.Type),
			Suggestion: fmt.Sprintf("statutes %s, %s: disjoin their preconditions or reconcile the effects", x.ID, y.ID),
		}, false
	}
	return nil, ans == constraint.Unknown
}

// complexityFinding warns when a statute lands in the very-complex band.
func complexityFinding(s statute.Statute) *Finding {
	m := AnalyzeComplexity(s)
	if bandFor(m.Score) != BandVeryComplex {
		return nil
	}
	return &Finding{
		Kind:       KindAmbiguity,
		Severity:   SeverityWarning,
		StatuteID:  s.ID,
		Message:    fmt.Sprintf("statute %q is very complex (score %d, depth %d, %d conditions)", s.ID, m.Score, m.MaxNestingDepth, m.ConditionCount),
		Suggestion: fmt.Sprintf("statute %s: split into narrower statutes", s.ID),
	}
}
