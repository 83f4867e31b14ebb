package eval

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/expr-lang/expr"

	"github.com/statutecheck/statutecheck/internal/statute"
)

// MissingAttributeError reports a typed comparison against a context
// that lacks the attribute. HasAttribute never produces it: absence is
// that condition's false case.
type MissingAttributeError struct {
	Key string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing attribute %q", e.Key)
}

// TypeMismatchError reports an attribute that is present but cannot be
// read as the type the condition compares against. It is distinct from
// MissingAttributeError so that lenient callers skip only true absence.
type TypeMismatchError struct {
	Key  string
	Want string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("attribute %q is not a %s", e.Key, e.Want)
}

// attrError picks between absence and a present-but-unusable value.
func attrError(ctx Context, key, want string) error {
	if ctx.Has(key) {
		return &TypeMismatchError{Key: key, Want: want}
	}
	return &MissingAttributeError{Key: key}
}

// Evaluate decides a condition against a context. And/Or short-circuit
// left-to-right: the right operand of And is not touched when the left
// is false, and the right operand of Or is not touched when the left is
// true.
func Evaluate(c statute.Condition, ctx Context) (bool, error) {
	return evaluate(c, ctx, 0)
}

// EvaluateOrFalse is the lenient wrapper: a missing attribute counts as
// the condition not holding. Other errors still surface.
func EvaluateOrFalse(c statute.Condition, ctx Context) (bool, error) {
	ok, err := Evaluate(c, ctx)
	if err != nil {
		var missing *MissingAttributeError
		if errors.As(err, &missing) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func evaluate(c statute.Condition, ctx Context, depth int) (bool, error) {
	if depth > statute.MaxConditionDepth {
		return false, fmt.Errorf("condition exceeds max depth %d", statute.MaxConditionDepth)
	}

	switch v := c.(type) {
	case statute.Constant:
		return v.Value, nil

	case statute.And:
		ok, err := evaluate(v.Left, ctx, depth+1)
		if err != nil || !ok {
			return false, err
		}
		return evaluate(v.Right, ctx, depth+1)

	case statute.Or:
		ok, err := evaluate(v.Left, ctx, depth+1)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		return evaluate(v.Right, ctx, depth+1)

	case statute.Not:
		ok, err := evaluate(v.Inner, ctx, depth+1)
		return !ok, err

	case statute.Age:
		return compareInt(ctx, "age", v.Op, v.Value)

	case statute.Income:
		return compareInt(ctx, "income", v.Op, v.Value)

	case statute.Duration:
		// context durations are in days
		return compareInt(ctx, "duration", v.Op, v.DurationDays())

	case statute.Percentage:
		key := v.Context
		if key == "" {
			key = "percentage"
		}
		got, ok := ctx.Float(key)
		if !ok {
			return false, attrError(ctx, key, "number")
		}
		return compareFloat(got, v.Op, v.Value), nil

	case statute.SetMembership:
		got, ok := ctx.Str(v.Key)
		if !ok {
			return false, attrError(ctx, v.Key, "string")
		}
		member := slices.Contains(v.Values, got)
		return member != v.Negated, nil

	case statute.Pattern:
		got, ok := ctx.Str(v.Key)
		if !ok {
			return false, attrError(ctx, v.Key, "string")
		}
		re, err := compiledPattern(v.Regex)
		if err != nil {
			return false, err
		}
		return re.MatchString(got) != v.Negated, nil

	case statute.HasAttribute:
		return ctx.Has(v.Key), nil

	case statute.AttributeEquals:
		got, ok := ctx[v.Key]
		if !ok {
			return false, &MissingAttributeError{Key: v.Key}
		}
		return fmt.Sprintf("%v", got) == fmt.Sprintf("%v", v.Value), nil

	case statute.Custom:
		return evalCustom(v, ctx)

	default:
		return false, fmt.Errorf("unknown condition type %T", c)
	}
}

func compareInt(ctx Context, key string, op statute.Op, want int64) (bool, error) {
	got, ok := ctx.Int(key)
	if !ok {
		return false, attrError(ctx, key, "whole number")
	}
	switch op {
	case statute.OpEq:
		return got == want, nil
	case statute.OpNe:
		return got != want, nil
	case statute.OpLt:
		return got < want, nil
	case statute.OpLe:
		return got <= want, nil
	case statute.OpGt:
		return got > want, nil
	case statute.OpGe:
		return got >= want, nil
	}
	return false, fmt.Errorf("unknown operator %v", op)
}

func compareFloat(got float64, op statute.Op, want float64) bool {
	switch op {
	case statute.OpEq:
		return got == want
	case statute.OpNe:
		return got != want
	case statute.OpLt:
		return got < want
	case statute.OpLe:
		return got <= want
	case statute.OpGt:
		return got > want
	case statute.OpGe:
		return got >= want
	}
	return false
}

func evalCustom(c statute.Custom, ctx Context) (bool, error) {
	if c.Expr == "" {
		return false, fmt.Errorf("custom condition %q has no expression", c.Description)
	}
	if err := Validate(c.Expr); err != nil {
		return false, err
	}

	out, err := expr.Eval(c.Expr, map[string]any(ctx))
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("custom expression must evaluate to bool (got %T)", out)
	}
	return b, nil
}

var patternCache sync.Map // regex source -> *regexp.Regexp

func compiledPattern(source string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(source); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", source, err)
	}
	patternCache.Store(source, re)
	return re, nil
}
