package statute

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestBuilder_Build(t *testing.T) {
	s, err := NewBuilder("s1").
		Title("Voting age").
		Precondition(Age{Op: OpGe, Value: 18}).
		Effect(Effect{Type: EffectGrant, Description: "voting right"}).
		Jurisdiction("federal").
		Reference("s2").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	if s.ID != "s1" || s.Version != 1 {
		t.Fatalf("unexpected statute %+v", s)
	}
	if len(s.References) != 1 || s.References[0] != "s2" {
		t.Fatalf("expected reference to s2, got %v", s.References)
	}
}

func TestBuilder_RejectsEmptyID(t *testing.T) {
	_, err := NewBuilder("  ").Build()
	if err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestBuilder_RejectsInvalidVersion(t *testing.T) {
	_, err := NewBuilder("s1").Version(0).Build()
	if err == nil {
		t.Fatalf("expected error for version 0")
	}
}

func TestBuilder_RejectsInvertedValidity(t *testing.T) {
	_, err := NewBuilder("s1").
		Validity(TemporalValidity{
			EffectiveDate: date(2024, 1, 1),
			ExpiryDate:    date(2023, 1, 1),
		}).
		Build()
	if err == nil {
		t.Fatalf("expected error for expiry before effective date")
	}
}

func TestAmend_BumpsVersionAndCopies(t *testing.T) {
	orig, err := NewBuilder("s1").
		Precondition(Age{Op: OpGe, Value: 18}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	amended, err := Amend(orig, date(2024, 6, 1)).
		Precondition(Income{Op: OpLt, Value: 10_000}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	if amended.Version != 2 {
		t.Fatalf("expected version 2, got %d", amended.Version)
	}
	if len(orig.Preconditions) != 1 {
		t.Fatalf("amend mutated the original: %d preconditions", len(orig.Preconditions))
	}
	if amended.Validity == nil || !amended.Validity.AmendedAt.Equal(date(2024, 6, 1)) {
		t.Fatalf("expected amendment timestamp, got %+v", amended.Validity)
	}
}

func TestTemporalValidity_Overlaps(t *testing.T) {
	a := TemporalValidity{EffectiveDate: date(2020, 1, 1), ExpiryDate: date(2022, 1, 1)}
	b := TemporalValidity{EffectiveDate: date(2021, 1, 1), ExpiryDate: date(2023, 1, 1)}
	c := TemporalValidity{EffectiveDate: date(2022, 1, 1)}

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatalf("expected a and b to overlap")
	}
	if a.Overlaps(c) || c.Overlaps(a) {
		t.Fatalf("expected a and c not to overlap")
	}
	// open-ended windows overlap with anything later
	if !b.Overlaps(c) {
		t.Fatalf("expected b and open-ended c to overlap")
	}
}

func TestTemporalValidity_ActiveAt(t *testing.T) {
	v := TemporalValidity{EffectiveDate: date(2020, 1, 1), ExpiryDate: date(2021, 1, 1)}

	if v.ActiveAt(date(2019, 12, 31)) {
		t.Fatalf("not yet effective")
	}
	if !v.ActiveAt(date(2020, 6, 1)) {
		t.Fatalf("expected active mid-window")
	}
	if v.ActiveAt(date(2021, 1, 1)) {
		t.Fatalf("expired at expiry instant")
	}
}

func TestMutuallyExclusive(t *testing.T) {
	grant := Effect{Type: EffectGrant, Description: "license"}
	revoke := Effect{Type: EffectRevoke, Description: "license"}
	other := Effect{Type: EffectRevoke, Description: "permit"}

	if !MutuallyExclusive(grant, revoke) || !MutuallyExclusive(revoke, grant) {
		t.Fatalf("grant/revoke on the same target must be exclusive")
	}
	if MutuallyExclusive(grant, other) {
		t.Fatalf("different targets are not exclusive")
	}

	targeted := Effect{Type: EffectProhibition, Parameters: []Param{{Key: "target", Value: "parking"}}}
	obliged := Effect{Type: EffectObligation, Parameters: []Param{{Key: "target", Value: "parking"}}}
	if !MutuallyExclusive(targeted, obliged) {
		t.Fatalf("obligation/prohibition on the same target must be exclusive")
	}
}

func TestFingerprint_StableAndSensitive(t *testing.T) {
	s1, _ := NewBuilder("s1").Precondition(Age{Op: OpGe, Value: 18}).Build()
	s2, _ := NewBuilder("s1").Precondition(Age{Op: OpGe, Value: 18}).Build()
	s3, _ := NewBuilder("s1").Precondition(Age{Op: OpGe, Value: 21}).Build()

	if Fingerprint(s1) != Fingerprint(s2) {
		t.Fatalf("identical statutes must share a fingerprint")
	}
	if Fingerprint(s1) == Fingerprint(s3) {
		t.Fatalf("different preconditions must change the fingerprint")
	}
}

func TestConditionFingerprint_VariantDistinct(t *testing.T) {
	typed := Age{Op: OpEq, Value: 20}
	generic := AttributeEquals{Key: "age", Value: 20}

	if ConditionFingerprint(typed) == ConditionFingerprint(generic) {
		t.Fatalf("typed age and attribute comparison must not share a fingerprint")
	}
	if Equal(typed, generic) {
		t.Fatalf("typed age and attribute comparison must not compare equal")
	}

	described := Custom{Description: "age > 3"}
	scripted := Custom{Expr: "age > 3"}
	if ConditionFingerprint(described) == ConditionFingerprint(scripted) {
		t.Fatalf("descriptive and scripted custom conditions must not share a fingerprint")
	}
}

func TestSetFingerprint_OrderIndependent(t *testing.T) {
	a, _ := NewBuilder("a").Build()
	b, _ := NewBuilder("b").Build()

	if SetFingerprint([]Statute{a, b}) != SetFingerprint([]Statute{b, a}) {
		t.Fatalf("set fingerprint must not depend on input order")
	}
}
