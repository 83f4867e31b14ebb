package verify

import (
	"testing"
	"time"

	"github.com/statutecheck/statutecheck/internal/statute"
)

func TestNoDiscrimination(t *testing.T) {
	s := mkStatute("s", statute.And{
		Left:  adult(),
		Right: statute.SetMembership{Key: "religion", Values: []string{"one"}},
	})
	f := NoDiscrimination{}.Check(s)
	if f == nil || f.Severity != SeverityError {
		t.Fatalf("selecting on a protected attribute is an error, got %+v", f)
	}

	clean := mkStatute("s", statute.And{
		Left:  adult(),
		Right: statute.HasAttribute{Key: "residence_permit"},
	})
	if g := (NoDiscrimination{}).Check(clean); g != nil {
		t.Fatalf("non-protected attributes pass, got %+v", g)
	}

	// matching is case-insensitive
	upper := mkStatute("s", statute.AttributeEquals{Key: "Gender", Value: "x"})
	if g := (NoDiscrimination{}).Check(upper); g == nil {
		t.Fatalf("protected attribute match must ignore case")
	}
}

func TestRequiresProcedure(t *testing.T) {
	s := mkStatute("s", adult())
	s.Effect = statute.Effect{Type: statute.EffectRevoke, Description: "license"}

	f := RequiresProcedure{}.Check(s)
	if f == nil || f.Severity != SeverityWarning {
		t.Fatalf("a revocation without procedure warns, got %+v", f)
	}

	s.Effect.Parameters = []statute.Param{{Key: "procedure", Value: "hearing before revocation"}}
	if g := (RequiresProcedure{}).Check(s); g != nil {
		t.Fatalf("a documented procedure satisfies the principle, got %+v", g)
	}

	s.Effect.Parameters = nil
	s.DiscretionLogic = "revocation follows the appeals procedure in section 4"
	if g := (RequiresProcedure{}).Check(s); g != nil {
		t.Fatalf("discretion logic naming a procedure satisfies it, got %+v", g)
	}

	grant := mkStatute("g", adult())
	if g := (RequiresProcedure{}).Check(grant); g != nil {
		t.Fatalf("grants need no procedure, got %+v", g)
	}
}

func TestNoRetroactivity(t *testing.T) {
	s := mkStatute("s", adult())
	s.Validity = &statute.TemporalValidity{
		EffectiveDate: day(2020, time.January, 1),
		EnactedAt:     day(2021, time.January, 1),
	}
	f := NoRetroactivity{}.Check(s)
	if f == nil || f.Severity != SeverityError {
		t.Fatalf("retroactive application is an error, got %+v", f)
	}

	s.Validity.EffectiveDate = day(2021, time.June, 1)
	if g := (NoRetroactivity{}).Check(s); g != nil {
		t.Fatalf("effective after enactment is fine, got %+v", g)
	}

	s.Validity = nil
	if g := (NoRetroactivity{}).Check(s); g != nil {
		t.Fatalf("no validity window, nothing to check, got %+v", g)
	}
}

func TestCustomPrinciple(t *testing.T) {
	p := CustomPrinciple{
		PrincipleName: "title_required",
		Fn: func(s statute.Statute) *Finding {
			if s.Title != "" {
				return nil
			}
			return &Finding{Kind: KindAmbiguity, Severity: SeverityWarning, StatuteID: s.ID, Message: "untitled"}
		},
	}
	if p.Name() != "title_required" {
		t.Fatalf("unexpected name %q", p.Name())
	}
	titled := mkStatute("a", adult())
	if f := p.Check(titled); f != nil {
		t.Fatalf("titled statute passes, got %+v", f)
	}
	titled.Title = ""
	if f := p.Check(titled); f == nil {
		t.Fatalf("expected a finding for the untitled statute")
	}
	if f := (CustomPrinciple{PrincipleName: "noop"}).Check(titled); f != nil {
		t.Fatalf("nil fn never finds anything, got %+v", f)
	}
}
