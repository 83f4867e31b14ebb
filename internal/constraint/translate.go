package constraint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/statutecheck/statutecheck/internal/statute"
)

// Translation maps comparisons onto solver variables. Two conditions
// naming the same real-world quantity (same attribute and unit) share a
// variable; distinct quantities never collide because names derive from
// a hash of the semantic key.

type varKind int

const (
	varInt varKind = iota
	varReal
	varBool
)

type variable struct {
	name string
	kind varKind
}

// formula is the negation-normal-form translation of a condition.
type formula interface{ isFormula() }

type fConst struct{ val bool }

// fAtom constrains a numeric variable. Negation is already folded into
// the operator during translation.
type fAtom struct {
	v   variable
	op  statute.Op
	val float64
}

// fBool is a boolean indicator literal.
type fBool struct {
	v   variable
	neg bool
}

type fAnd struct{ subs []formula }
type fOr struct{ subs []formula }

func (fConst) isFormula() {}
func (fAtom) isFormula()  {}
func (fBool) isFormula()  {}
func (fAnd) isFormula()   {}
func (fOr) isFormula()    {}

func varName(semanticKey string) string {
	sum := sha256.Sum256([]byte(semanticKey))
	return hex.EncodeToString(sum[:8])
}

func intVar(key string) variable  { return variable{name: varName(key), kind: varInt} }
func realVar(key string) variable { return variable{name: varName(key), kind: varReal} }
func boolVar(key string) variable { return variable{name: varName(key), kind: varBool} }

// valueCode maps an arbitrary literal onto a small integer so that
// equality against two distinct literals is visible as an interval
// clash. Codes fit exactly in a float64.
func valueCode(v any) float64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%v", v)))
	return float64(uint32(sum[0])<<24 | uint32(sum[1])<<16 | uint32(sum[2])<<8 | uint32(sum[3]))
}

func negateOp(op statute.Op) statute.Op {
	switch op {
	case statute.OpEq:
		return statute.OpNe
	case statute.OpNe:
		return statute.OpEq
	case statute.OpLt:
		return statute.OpGe
	case statute.OpLe:
		return statute.OpGt
	case statute.OpGt:
		return statute.OpLe
	case statute.OpGe:
		return statute.OpLt
	}
	return op
}

// translate lowers a condition to NNF, pushing negation down to the
// leaves via De Morgan.
func translate(c statute.Condition, neg bool) formula {
	switch v := c.(type) {
	case statute.Constant:
		return fConst{val: v.Value != neg}

	case statute.Not:
		return translate(v.Inner, !neg)

	case statute.And:
		l, r := translate(v.Left, neg), translate(v.Right, neg)
		if neg {
			return fOr{subs: []formula{l, r}}
		}
		return fAnd{subs: []formula{l, r}}

	case statute.Or:
		l, r := translate(v.Left, neg), translate(v.Right, neg)
		if neg {
			return fAnd{subs: []formula{l, r}}
		}
		return fOr{subs: []formula{l, r}}

	case statute.Age:
		return atom(intVar("age"), v.Op, float64(v.Value), neg)

	case statute.Income:
		return atom(intVar("income"), v.Op, float64(v.Value), neg)

	case statute.Duration:
		return atom(intVar("duration"), v.Op, float64(v.DurationDays()), neg)

	case statute.Percentage:
		key := "pct:" + v.Context
		return atom(realVar(key), v.Op, v.Value, neg)

	case statute.AttributeEquals:
		return atom(intVar("attr:"+v.Key), statute.OpEq, valueCode(v.Value), neg)

	case statute.SetMembership:
		if len(v.Values) == 0 {
			// membership in the empty set never holds
			return fConst{val: v.Negated != neg}
		}
		vals := append([]string(nil), v.Values...)
		sort.Strings(vals)
		key := "set:" + v.Key + ":" + strings.Join(vals, "\x00")
		return fBool{v: boolVar(key), neg: v.Negated != neg}

	case statute.Pattern:
		key := "re:" + v.Key + ":" + v.Regex
		return fBool{v: boolVar(key), neg: v.Negated != neg}

	case statute.HasAttribute:
		return fBool{v: boolVar("has:" + v.Key), neg: neg}

	case statute.Custom:
		key := "custom:" + v.Description + "\x00" + v.Expr
		return fBool{v: boolVar(key), neg: neg}

	default:
		// unknown node: an opaque indicator keeps the answer sound
		return fBool{v: boolVar("opaque:" + c.String()), neg: neg}
	}
}

func atom(v variable, op statute.Op, val float64, neg bool) formula {
	if neg {
		op = negateOp(op)
	}
	return fAtom{v: v, op: op, val: val}
}
