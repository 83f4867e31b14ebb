package verify

import (
	"fmt"
	"strings"

	"github.com/statutecheck/statutecheck/internal/statute"
)

// Principle is one constitutional check. Implementations are registered
// in an ordered list on the Verifier; adding a principle never touches
// the orchestrator. A nil return means no finding.
type Principle interface {
	Name() string
	Check(s statute.Statute) *Finding
}

// DefaultPrinciples returns the built-in principle set.
func DefaultPrinciples() []Principle {
	return []Principle{
		NoDiscrimination{},
		RequiresProcedure{},
		NoRetroactivity{},
	}
}

// protectedAttributes are the keys a precondition may not discriminate on.
var protectedAttributes = []string{
	"gender", "sex", "race", "ethnicity", "religion",
	"nationality", "sexual_orientation", "disability",
}

// NoDiscrimination flags preconditions that select on a protected
// attribute.
type NoDiscrimination struct{}

func (NoDiscrimination) Name() string { return "no_discrimination" }

func (NoDiscrimination) Check(s statute.Statute) *Finding {
	var hit string
	for _, root := range s.Preconditions {
		statute.Walk(root, func(c statute.Condition) bool {
			key := ""
			switch v := c.(type) {
			case statute.SetMembership:
				key = v.Key
			case statute.Pattern:
				key = v.Key
			case statute.HasAttribute:
				key = v.Key
			case statute.AttributeEquals:
				key = v.Key
			}
			if key != "" && isProtected(key) {
				hit = key
				return false
			}
			return true
		})
		if hit != "" {
			break
		}
	}
	if hit == "" {
		return nil
	}
	return &Finding{
		Kind:       KindConstitutionalConflict,
		Severity:   SeverityError,
		StatuteID:  s.ID,
		Message:    fmt.Sprintf("precondition selects on protected attribute %q", hit),
		Suggestion: fmt.Sprintf("statute %s: replace the %q criterion with a non-protected proxy or remove it", s.ID, hit),
	}
}

func isProtected(key string) bool {
	key = strings.ToLower(key)
	for _, p := range protectedAttributes {
		if key == p {
			return true
		}
	}
	return false
}

// RequiresProcedure demands a documented procedure for effects that
// strip rights or status.
type RequiresProcedure struct{}

func (RequiresProcedure) Name() string { return "requires_procedure" }

func (RequiresProcedure) Check(s statute.Statute) *Finding {
	switch s.Effect.Type {
	case statute.EffectRevoke, statute.EffectProhibition, statute.EffectStatusChange:
	default:
		return nil
	}
	if _, ok := s.Effect.Param("procedure"); ok {
		return nil
	}
	if strings.Contains(strings.ToLower(s.DiscretionLogic), "procedure") {
		return nil
	}
	return &Finding{
		Kind:       KindConstitutionalConflict,
		Severity:   SeverityWarning,
		StatuteID:  s.ID,
		Message:    fmt.Sprintf("%s effect lacks a documented procedure", s.Effect.Type),
		Suggestion: fmt.Sprintf("statute %s: add a \"procedure\" effect parameter describing due process", s.ID),
	}
}

// NoRetroactivity flags statutes effective before their enactment.
type NoRetroactivity struct{}

func (NoRetroactivity) Name() string { return "no_retroactivity" }

func (NoRetroactivity) Check(s statute.Statute) *Finding {
	v := s.Validity
	if v == nil || v.EffectiveDate.IsZero() || v.EnactedAt.IsZero() {
		return nil
	}
	if !v.EffectiveDate.Before(v.EnactedAt) {
		return nil
	}
	return &Finding{
		Kind:      KindConstitutionalConflict,
		Severity:  SeverityError,
		StatuteID: s.ID,
		Message: fmt.Sprintf("statute applies retroactively: effective %s predates enactment %s",
			v.EffectiveDate.Format("2006-01-02"), v.EnactedAt.Format("2006-01-02")),
	}
}

// CustomPrinciple adapts a plain function into a Principle.
type CustomPrinciple struct {
	PrincipleName string
	Fn            func(statute.Statute) *Finding
}

func (p CustomPrinciple) Name() string { return p.PrincipleName }

func (p CustomPrinciple) Check(s statute.Statute) *Finding {
	if p.Fn == nil {
		return nil
	}
	return p.Fn(s)
}
