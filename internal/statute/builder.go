package statute

import (
	"fmt"
	"strings"
	"time"
)

// Guards against pathologically deep or large condition trees. These cap
// resource cost only; any well-formed tree inside them is accepted.
const (
	MaxConditionDepth = 200
	MaxConditionSize  = 10_000
)

// Builder assembles a Statute and validates it on Build.
type Builder struct {
	s   Statute
	err error
}

func NewBuilder(id string) *Builder {
	return &Builder{s: Statute{ID: id, Version: 1}}
}

func (b *Builder) Title(t string) *Builder {
	b.s.Title = t
	return b
}

func (b *Builder) Precondition(c Condition) *Builder {
	b.s.Preconditions = append(b.s.Preconditions, c)
	return b
}

func (b *Builder) Effect(e Effect) *Builder {
	b.s.Effect = e
	return b
}

func (b *Builder) DiscretionLogic(text string) *Builder {
	b.s.DiscretionLogic = text
	return b
}

func (b *Builder) Jurisdiction(j string) *Builder {
	b.s.Jurisdiction = j
	return b
}

func (b *Builder) Hierarchy(l HierarchyLevel) *Builder {
	b.s.Hierarchy = l
	return b
}

func (b *Builder) Validity(v TemporalValidity) *Builder {
	b.s.Validity = &v
	return b
}

// Reference declares that this statute depends on another statute by ID.
func (b *Builder) Reference(id string) *Builder {
	b.s.References = append(b.s.References, id)
	return b
}

func (b *Builder) Version(v int) *Builder {
	b.s.Version = v
	return b
}

func (b *Builder) Build() (Statute, error) {
	if b.err != nil {
		return Statute{}, b.err
	}
	if strings.TrimSpace(b.s.ID) == "" {
		return Statute{}, fmt.Errorf("statute id is required")
	}
	if b.s.Version < 1 {
		return Statute{}, fmt.Errorf("statute %q: version must be >= 1 (got %d)", b.s.ID, b.s.Version)
	}
	for i, c := range b.s.Preconditions {
		if c == nil {
			return Statute{}, fmt.Errorf("statute %q: precondition %d is nil", b.s.ID, i)
		}
		if d := Depth(c); d > MaxConditionDepth {
			return Statute{}, fmt.Errorf("statute %q: precondition %d exceeds max depth (%d > %d)", b.s.ID, i, d, MaxConditionDepth)
		}
		if n := Size(c); n > MaxConditionSize {
			return Statute{}, fmt.Errorf("statute %q: precondition %d exceeds max size (%d > %d)", b.s.ID, i, n, MaxConditionSize)
		}
	}
	for _, ref := range b.s.References {
		if strings.TrimSpace(ref) == "" {
			return Statute{}, fmt.Errorf("statute %q: empty reference id", b.s.ID)
		}
	}
	if b.s.Validity != nil {
		v := b.s.Validity
		if !v.ExpiryDate.IsZero() && !v.EffectiveDate.IsZero() && v.ExpiryDate.Before(v.EffectiveDate) {
			return Statute{}, fmt.Errorf("statute %q: expiry precedes effective date", b.s.ID)
		}
	}
	return b.s, nil
}

// Amend returns a builder pre-filled with a copy of s at the next
// version. The amendment timestamp is recorded on the copy.
func Amend(s Statute, at time.Time) *Builder {
	b := &Builder{s: s}
	b.s.Version = s.Version + 1
	b.s.Preconditions = append([]Condition(nil), s.Preconditions...)
	b.s.References = append([]string(nil), s.References...)
	if s.Validity != nil {
		v := *s.Validity
		v.AmendedAt = at
		b.s.Validity = &v
	} else {
		b.s.Validity = &TemporalValidity{AmendedAt: at}
	}
	return b
}
