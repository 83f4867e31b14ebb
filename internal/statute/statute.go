package statute

import "time"

// HierarchyLevel orders statutes by legal authority. Higher values
// outrank lower ones.
type HierarchyLevel int

const (
	LevelUnspecified HierarchyLevel = iota
	LevelMunicipal
	LevelRegional
	LevelNational
	LevelConstitutional
)

func (l HierarchyLevel) String() string {
	switch l {
	case LevelMunicipal:
		return "municipal"
	case LevelRegional:
		return "regional"
	case LevelNational:
		return "national"
	case LevelConstitutional:
		return "constitutional"
	}
	return "unspecified"
}

// TemporalValidity bounds when a statute is in force. A zero ExpiryDate
// means open-ended.
type TemporalValidity struct {
	EffectiveDate time.Time
	ExpiryDate    time.Time
	EnactedAt     time.Time
	AmendedAt     time.Time
}

// ActiveAt reports whether the statute is in force at t.
func (v TemporalValidity) ActiveAt(t time.Time) bool {
	if !v.EffectiveDate.IsZero() && t.Before(v.EffectiveDate) {
		return false
	}
	if !v.ExpiryDate.IsZero() && !t.Before(v.ExpiryDate) {
		return false
	}
	return true
}

// Overlaps reports whether two validity windows share any instant.
func (v TemporalValidity) Overlaps(o TemporalValidity) bool {
	if !v.ExpiryDate.IsZero() && !o.EffectiveDate.IsZero() && !o.EffectiveDate.Before(v.ExpiryDate) {
		return false
	}
	if !o.ExpiryDate.IsZero() && !v.EffectiveDate.IsZero() && !v.EffectiveDate.Before(o.ExpiryDate) {
		return false
	}
	return true
}

// Statute is an immutable rule: once built it is never mutated, only
// amended into a new version.
type Statute struct {
	ID              string
	Title           string
	Preconditions   []Condition
	Effect          Effect
	DiscretionLogic string
	Jurisdiction    string
	Hierarchy       HierarchyLevel
	Validity        *TemporalValidity
	References      []string
	Version         int
}

// Precondition returns the folded conjunction of all preconditions.
func (s Statute) Precondition() Condition {
	return Conjoin(s.Preconditions)
}

// ActiveAt reports whether the statute is in force at t. A statute
// without a validity window is always in force.
func (s Statute) ActiveAt(t time.Time) bool {
	if s.Validity == nil {
		return true
	}
	return s.Validity.ActiveAt(t)
}
