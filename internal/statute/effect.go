package statute

import "fmt"

// EffectType classifies what a statute does when its preconditions hold.
type EffectType int

const (
	EffectGrant EffectType = iota
	EffectRevoke
	EffectObligation
	EffectProhibition
	EffectMonetaryTransfer
	EffectStatusChange
	EffectCompound
	EffectConditional
	EffectDelayed
	EffectCustom
)

var effectNames = map[EffectType]string{
	EffectGrant:            "grant",
	EffectRevoke:           "revoke",
	EffectObligation:       "obligation",
	EffectProhibition:      "prohibition",
	EffectMonetaryTransfer: "monetary_transfer",
	EffectStatusChange:     "status_change",
	EffectCompound:         "compound",
	EffectConditional:      "conditional",
	EffectDelayed:          "delayed",
	EffectCustom:           "custom",
}

func (t EffectType) String() string {
	if s, ok := effectNames[t]; ok {
		return s
	}
	return fmt.Sprintf("EffectType(%d)", int(t))
}

// ParseEffectType resolves the wire name of an effect type.
func ParseEffectType(s string) (EffectType, error) {
	for t, name := range effectNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown effect type %q", s)
}

// Param is one ordered key/value parameter of an effect.
type Param struct {
	Key   string
	Value string
}

// Effect describes the legal consequence of a statute.
type Effect struct {
	Type        EffectType
	Description string
	Parameters  []Param
}

// Param returns the value of the named parameter.
func (e Effect) Param(key string) (string, bool) {
	for _, p := range e.Parameters {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Target identifies the resource an effect acts on: the "target"
// parameter when present, the description otherwise.
func (e Effect) Target() string {
	if v, ok := e.Param("target"); ok {
		return v
	}
	return e.Description
}

// MutuallyExclusive reports whether two effects cannot both apply: one
// grants what the other revokes, or one obliges what the other
// prohibits, on the same target.
func MutuallyExclusive(a, b Effect) bool {
	if a.Target() != b.Target() {
		return false
	}
	return opposed(a.Type, b.Type) || opposed(b.Type, a.Type)
}

func opposed(a, b EffectType) bool {
	switch {
	case a == EffectGrant && b == EffectRevoke:
		return true
	case a == EffectObligation && b == EffectProhibition:
		return true
	}
	return false
}
