package statute

import (
	"fmt"
	"strings"
)

// Op is a comparison operator used by typed conditions.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp accepts both symbolic ("<=") and word ("le") spellings.
func ParseOp(s string) (Op, error) {
	switch strings.TrimSpace(s) {
	case "==", "=", "eq":
		return OpEq, nil
	case "!=", "ne":
		return OpNe, nil
	case "<", "lt":
		return OpLt, nil
	case "<=", "le":
		return OpLe, nil
	case ">", "gt":
		return OpGt, nil
	case ">=", "ge":
		return OpGe, nil
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// Condition is a legal predicate. Trees are finite and acyclic by
// construction: children are held by value and never shared.
type Condition interface {
	isCondition()
	String() string
}

// Age compares the subject's age in years.
type Age struct {
	Op    Op
	Value int64
}

// Income compares the subject's income.
type Income struct {
	Op    Op
	Value int64
}

// Duration compares a duration expressed in Unit
// (one of "days", "weeks", "months", "years").
type Duration struct {
	Op    Op
	Value int64
	Unit  string
}

// Percentage compares a percentage quantity. Context names the quantity
// ("ownership", "attendance", ...) so distinct quantities never collide.
type Percentage struct {
	Op      Op
	Value   float64
	Context string
}

// SetMembership holds when the attribute Key is one of Values.
type SetMembership struct {
	Key     string
	Values  []string
	Negated bool
}

// Pattern holds when the attribute Key matches Regex.
type Pattern struct {
	Key     string
	Regex   string
	Negated bool
}

// HasAttribute holds when the context carries Key at all.
type HasAttribute struct {
	Key string
}

// AttributeEquals compares the attribute Key against a literal.
type AttributeEquals struct {
	Key   string
	Value any
}

// Custom is free-form discretionary logic. When Expr is set it is an
// expression evaluated against the context attribute bag; Description is
// for humans only.
type Custom struct {
	Description string
	Expr        string
}

// Constant is a literal truth value, produced by simplification.
type Constant struct {
	Value bool
}

// And holds when both operands hold. Evaluation is left-to-right and
// short-circuits on a false left operand.
type And struct {
	Left  Condition
	Right Condition
}

// Or holds when either operand holds. Evaluation is left-to-right and
// short-circuits on a true left operand.
type Or struct {
	Left  Condition
	Right Condition
}

// Not inverts its operand.
type Not struct {
	Inner Condition
}

func (Age) isCondition()             {}
func (Income) isCondition()          {}
func (Duration) isCondition()        {}
func (Percentage) isCondition()      {}
func (SetMembership) isCondition()   {}
func (Pattern) isCondition()         {}
func (HasAttribute) isCondition()    {}
func (AttributeEquals) isCondition() {}
func (Custom) isCondition()          {}
func (Constant) isCondition()        {}
func (And) isCondition()             {}
func (Or) isCondition()              {}
func (Not) isCondition()             {}

func (c Age) String() string    { return fmt.Sprintf("age %s %d", c.Op, c.Value) }
func (c Income) String() string { return fmt.Sprintf("income %s %d", c.Op, c.Value) }
func (c Duration) String() string {
	return fmt.Sprintf("duration %s %d %s", c.Op, c.Value, c.Unit)
}
func (c Percentage) String() string {
	name := c.Context
	if name == "" {
		name = "percentage"
	}
	return fmt.Sprintf("%s %s %g%%", name, c.Op, c.Value)
}

func (c SetMembership) String() string {
	verb := "in"
	if c.Negated {
		verb = "not in"
	}
	return fmt.Sprintf("%s %s {%s}", c.Key, verb, strings.Join(c.Values, ", "))
}

func (c Pattern) String() string {
	verb := "matches"
	if c.Negated {
		verb = "does not match"
	}
	return fmt.Sprintf("%s %s /%s/", c.Key, verb, c.Regex)
}

func (c HasAttribute) String() string { return fmt.Sprintf("has(%s)", c.Key) }

// The attr() wrapper keeps the canonical form disjoint from the typed
// comparisons: a bare "age == 20" would be indistinguishable from
// Age{OpEq, 20} in Equal and ConditionFingerprint.
func (c AttributeEquals) String() string { return fmt.Sprintf("attr(%s) == %v", c.Key, c.Value) }

func (c Custom) String() string {
	if c.Expr != "" {
		return fmt.Sprintf("expr(%s)", c.Expr)
	}
	return fmt.Sprintf("custom(%s)", c.Description)
}

func (c Constant) String() string {
	if c.Value {
		return "true"
	}
	return "false"
}

func (c And) String() string { return fmt.Sprintf("(%s AND %s)", c.Left, c.Right) }
func (c Or) String() string  { return fmt.Sprintf("(%s OR %s)", c.Left, c.Right) }
func (c Not) String() string { return fmt.Sprintf("NOT %s", c.Inner) }

// Walk visits c and every nested condition in preorder. It stops early
// when fn returns false.
func Walk(c Condition, fn func(Condition) bool) {
	if c == nil || !fn(c) {
		return
	}
	switch v := c.(type) {
	case And:
		Walk(v.Left, fn)
		Walk(v.Right, fn)
	case Or:
		Walk(v.Left, fn)
		Walk(v.Right, fn)
	case Not:
		Walk(v.Inner, fn)
	}
}

// Depth returns the nesting depth of the tree (a leaf has depth 1).
func Depth(c Condition) int {
	switch v := c.(type) {
	case nil:
		return 0
	case And:
		return 1 + max(Depth(v.Left), Depth(v.Right))
	case Or:
		return 1 + max(Depth(v.Left), Depth(v.Right))
	case Not:
		return 1 + Depth(v.Inner)
	default:
		return 1
	}
}

// Size returns the number of nodes in the tree.
func Size(c Condition) int {
	n := 0
	Walk(c, func(Condition) bool { n++; return true })
	return n
}

// Equal reports structural equality via the canonical string form.
func Equal(a, b Condition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// Conjoin folds a precondition list into a single conjunction.
// An empty list is vacuously true.
func Conjoin(conds []Condition) Condition {
	if len(conds) == 0 {
		return Constant{Value: true}
	}
	out := conds[0]
	for _, c := range conds[1:] {
		out = And{Left: out, Right: c}
	}
	return out
}

// DurationDays normalizes the condition value to days so that two
// durations in different units compare on the same scale.
func (c Duration) DurationDays() int64 {
	switch c.Unit {
	case "years":
		return c.Value * 365
	case "months":
		return c.Value * 30
	case "weeks":
		return c.Value * 7
	default:
		return c.Value
	}
}
