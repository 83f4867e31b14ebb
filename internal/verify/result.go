package verify

import (
	"fmt"
	"strings"
)

// Kind names a class of finding.
type Kind string

const (
	KindCircularReference      Kind = "circular_reference"
	KindDeadStatute            Kind = "dead_statute"
	KindLogicalContradiction   Kind = "logical_contradiction"
	KindConstitutionalConflict Kind = "constitutional_conflict"
	KindAmbiguity              Kind = "ambiguity"
	KindIdCollision            Kind = "id_collision"
	KindJurisdictionalOverlap  Kind = "jurisdictional_overlap"
	KindTemporalConflict       Kind = "temporal_conflict"
	KindHierarchyViolation     Kind = "hierarchy_violation"
)

// Severity grades a finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one verification outcome. Findings are data, never Go
// errors: a run that finds problems still succeeds.
type Finding struct {
	Kind       Kind     `json:"kind"`
	Severity   Severity `json:"severity"`
	StatuteID  string   `json:"statute_id,omitempty"`
	RelatedIDs []string `json:"related_ids,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

func (f Finding) String() string {
	ids := f.StatuteID
	if len(f.RelatedIDs) > 0 {
		ids += " [" + strings.Join(f.RelatedIDs, ", ") + "]"
	}
	return fmt.Sprintf("%s %s %s: %s", f.Severity, f.Kind, ids, f.Message)
}

// pairKey identifies an unordered statute pair so that (A,B) and (B,A)
// are one conflict.
func (f Finding) pairKey() string {
	ids := append([]string{f.StatuteID}, f.RelatedIDs...)
	if len(ids) == 2 && ids[1] < ids[0] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return string(f.Kind) + "|" + strings.Join(ids, "|")
}

// Result accumulates findings for one verification run. Merge is
// associative: lists union, Passed ANDs.
type Result struct {
	Passed      bool      `json:"passed"`
	Errors      []Finding `json:"errors,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

func NewResult() *Result {
	return &Result{Passed: true}
}

// Add routes a finding by severity. Error findings fail the run.
func (r *Result) Add(f Finding) {
	if f.Severity == SeverityError {
		r.Passed = false
		r.Errors = append(r.Errors, f)
	} else {
		r.Warnings = append(r.Warnings, f.String())
	}
	if f.Suggestion != "" {
		r.Suggestions = append(r.Suggestions, f.Suggestion)
	}
}

func (r *Result) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge folds another result into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Passed = r.Passed && other.Passed
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Suggestions = append(r.Suggestions, other.Suggestions...)
}

// FindingsOfKind filters the error findings.
func (r *Result) FindingsOfKind(k Kind) []Finding {
	var out []Finding
	for _, f := range r.Errors {
		if f.Kind == k {
			out = append(out, f)
		}
	}
	return out
}
