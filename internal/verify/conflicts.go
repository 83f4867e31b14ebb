package verify

import (
	"fmt"
	"strings"

	"github.com/statutecheck/statutecheck/internal/statute"
)

// ConflictRule is one pairwise cross-statute check. Rules must be
// symmetric: Check(a, b) and Check(b, a) describe the same conflict and
// the orchestrator deduplicates by unordered pair.
type ConflictRule interface {
	Name() string
	Check(a, b statute.Statute) *Finding
}

// titleSimilarityThreshold is the Jaccard cutoff above which two
// statutes count as semantically similar.
const titleSimilarityThreshold = 0.5

// DefaultConflictRules returns the built-in pairwise rule set.
func DefaultConflictRules() []ConflictRule {
	return []ConflictRule{
		IDCollisionRule{},
		JurisdictionalOverlapRule{},
		TemporalConflictRule{},
		HierarchyViolationRule{},
	}
}

// IDCollisionRule flags two statutes sharing an ID. Uniqueness is an
// input invariant, so a collision is always an error.
type IDCollisionRule struct{}

func (IDCollisionRule) Name() string { return "id_collision" }

func (IDCollisionRule) Check(a, b statute.Statute) *Finding {
	if a.ID != b.ID {
		return nil
	}
	// RelatedIDs carries the (identical) partner id so pairwise
	// aggregation collapses every collision on one id into a single
	// finding, however many copies appear.
	return &Finding{
		Kind:       KindIdCollision,
		Severity:   SeverityError,
		StatuteID:  a.ID,
		RelatedIDs: []string{b.ID},
		Message:    fmt.Sprintf("duplicate statute id %q (versions %d and %d)", a.ID, a.Version, b.Version),
	}
}

// JurisdictionalOverlapRule flags similar statutes competing inside the
// same jurisdiction.
type JurisdictionalOverlapRule struct{}

func (JurisdictionalOverlapRule) Name() string { return "jurisdictional_overlap" }

func (JurisdictionalOverlapRule) Check(a, b statute.Statute) *Finding {
	if a.ID == b.ID || a.Jurisdiction == "" || a.Jurisdiction != b.Jurisdiction {
		return nil
	}
	sim := titleJaccard(a.Title, b.Title)
	if sim < titleSimilarityThreshold {
		return nil
	}
	return &Finding{
		Kind:       KindJurisdictionalOverlap,
		Severity:   SeverityWarning,
		StatuteID:  a.ID,
		RelatedIDs: []string{b.ID},
		Message: fmt.Sprintf("statutes %q and %q cover similar ground (title similarity %.2f) in jurisdiction %q",
			a.ID, b.ID, sim, a.Jurisdiction),
	}
}

// TemporalConflictRule flags overlapping validity windows between
// different versions of semantically similar statutes.
type TemporalConflictRule struct{}

func (TemporalConflictRule) Name() string { return "temporal_conflict" }

func (TemporalConflictRule) Check(a, b statute.Statute) *Finding {
	if a.ID == b.ID || a.Version == b.Version {
		return nil
	}
	if a.Validity == nil || b.Validity == nil {
		return nil
	}
	if titleJaccard(a.Title, b.Title) < titleSimilarityThreshold {
		return nil
	}
	if !a.Validity.Overlaps(*b.Validity) {
		return nil
	}
	return &Finding{
		Kind:       KindTemporalConflict,
		Severity:   SeverityWarning,
		StatuteID:  a.ID,
		RelatedIDs: []string{b.ID},
		Message: fmt.Sprintf("versions %d and %d of similar statutes %q and %q are in force simultaneously",
			a.Version, b.Version, a.ID, b.ID),
		Suggestion: fmt.Sprintf("statutes %s, %s: close the earlier version's validity window", a.ID, b.ID),
	}
}

// HierarchyViolationRule flags a lower-authority statute contradicting
// a higher one in the same jurisdiction scope.
type HierarchyViolationRule struct{}

func (HierarchyViolationRule) Name() string { return "hierarchy_violation" }

func (HierarchyViolationRule) Check(a, b statute.Statute) *Finding {
	lower, higher := a, b
	if lower.Hierarchy > higher.Hierarchy {
		lower, higher = higher, lower
	}
	if lower.Hierarchy == higher.Hierarchy || lower.Hierarchy == statute.LevelUnspecified {
		return nil
	}
	if lower.Jurisdiction != "" && higher.Jurisdiction != "" && lower.Jurisdiction != higher.Jurisdiction {
		return nil
	}
	if !statute.MutuallyExclusive(lower.Effect, higher.Effect) {
		return nil
	}
	return &Finding{
		Kind:       KindHierarchyViolation,
		Severity:   SeverityError,
		StatuteID:  lower.ID,
		RelatedIDs: []string{higher.ID},
		Message: fmt.Sprintf("%s statute %q contradicts %s statute %q",
			lower.Hierarchy, lower.ID, higher.Hierarchy, higher.ID),
		Suggestion: fmt.Sprintf("statute %s: align with or carve out from %s", lower.ID, higher.ID),
	}
}

// titleJaccard measures word-set overlap between two titles.
func titleJaccard(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,;:()[]\"'")
		if w != "" {
			out[w] = struct{}{}
		}
	}
	return out
}

// DetectConflicts runs the pairwise rules over every unordered pair,
// reporting each conflict once.
func DetectConflicts(statutes []statute.Statute, rules []ConflictRule) []Finding {
	if rules == nil {
		rules = DefaultConflictRules()
	}
	seen := map[string]struct{}{}
	var out []Finding
	for i := range statutes {
		for j := i + 1; j < len(statutes); j++ {
			for _, rule := range rules {
				f := rule.Check(statutes[i], statutes[j])
				if f == nil {
					continue
				}
				key := f.pairKey()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, *f)
			}
		}
	}
	return out
}
