package verifydto

import (
	"fmt"
	"time"

	"github.com/statutecheck/statutecheck/internal/statute"
)

// VerifyRequest carries a statute collection over the wire.
type VerifyRequest struct {
	Statutes []StatuteDTO `json:"statutes"`
}

// ComplexityRequest carries a single statute.
type ComplexityRequest struct {
	Statute StatuteDTO `json:"statute"`
}

type StatuteDTO struct {
	ID              string         `json:"id"`
	Title           string         `json:"title,omitempty"`
	Preconditions   []ConditionDTO `json:"preconditions,omitempty"`
	Effect          EffectDTO      `json:"effect"`
	DiscretionLogic string         `json:"discretion_logic,omitempty"`
	Jurisdiction    string         `json:"jurisdiction,omitempty"`
	Hierarchy       string         `json:"hierarchy,omitempty"`
	Validity        *ValidityDTO   `json:"temporal_validity,omitempty"`
	References      []string       `json:"references,omitempty"`
	Version         int            `json:"version,omitempty"`
}

type EffectDTO struct {
	Type        string     `json:"effect_type"`
	Description string     `json:"description,omitempty"`
	Parameters  []ParamDTO `json:"parameters,omitempty"`
}

type ParamDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ValidityDTO struct {
	EffectiveDate string `json:"effective_date,omitempty"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
	EnactedAt     string `json:"enacted_at,omitempty"`
	AmendedAt     string `json:"amended_at,omitempty"`
}

// ConditionDTO is the type-discriminated wire form of a condition tree.
type ConditionDTO struct {
	Type string `json:"type"`

	Op          string        `json:"op,omitempty"`
	Value       any           `json:"value,omitempty"`
	Unit        string        `json:"unit,omitempty"`
	Context     string        `json:"context,omitempty"`
	Key         string        `json:"key,omitempty"`
	Values      []string      `json:"values,omitempty"`
	Regex       string        `json:"regex,omitempty"`
	Negated     bool          `json:"negated,omitempty"`
	Description string        `json:"description,omitempty"`
	Expr        string        `json:"expr,omitempty"`
	Left        *ConditionDTO `json:"left,omitempty"`
	Right       *ConditionDTO `json:"right,omitempty"`
	Inner       *ConditionDTO `json:"inner,omitempty"`
}

// ToStatutes decodes the whole request.
func (r VerifyRequest) ToStatutes() ([]statute.Statute, error) {
	out := make([]statute.Statute, 0, len(r.Statutes))
	for i, dto := range r.Statutes {
		s, err := dto.ToStatute()
		if err != nil {
			return nil, fmt.Errorf("statute %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (d StatuteDTO) ToStatute() (statute.Statute, error) {
	b := statute.NewBuilder(d.ID).
		Title(d.Title).
		DiscretionLogic(d.DiscretionLogic).
		Jurisdiction(d.Jurisdiction)

	if d.Version > 0 {
		b.Version(d.Version)
	}

	for i, c := range d.Preconditions {
		cond, err := c.ToCondition()
		if err != nil {
			return statute.Statute{}, fmt.Errorf("precondition %d: %w", i, err)
		}
		b.Precondition(cond)
	}

	effect, err := d.Effect.ToEffect()
	if err != nil {
		return statute.Statute{}, err
	}
	b.Effect(effect)

	if d.Hierarchy != "" {
		level, err := parseHierarchy(d.Hierarchy)
		if err != nil {
			return statute.Statute{}, err
		}
		b.Hierarchy(level)
	}

	if d.Validity != nil {
		v, err := d.Validity.ToValidity()
		if err != nil {
			return statute.Statute{}, err
		}
		b.Validity(v)
	}

	for _, ref := range d.References {
		b.Reference(ref)
	}

	return b.Build()
}

func (d EffectDTO) ToEffect() (statute.Effect, error) {
	t, err := statute.ParseEffectType(d.Type)
	if err != nil {
		return statute.Effect{}, err
	}
	e := statute.Effect{Type: t, Description: d.Description}
	for _, p := range d.Parameters {
		e.Parameters = append(e.Parameters, statute.Param{Key: p.Key, Value: p.Value})
	}
	return e, nil
}

func (d ValidityDTO) ToValidity() (statute.TemporalValidity, error) {
	var v statute.TemporalValidity
	var err error
	if v.EffectiveDate, err = parseDate(d.EffectiveDate); err != nil {
		return v, fmt.Errorf("effective_date: %w", err)
	}
	if v.ExpiryDate, err = parseDate(d.ExpiryDate); err != nil {
		return v, fmt.Errorf("expiry_date: %w", err)
	}
	if v.EnactedAt, err = parseDate(d.EnactedAt); err != nil {
		return v, fmt.Errorf("enacted_at: %w", err)
	}
	if v.AmendedAt, err = parseDate(d.AmendedAt); err != nil {
		return v, fmt.Errorf("amended_at: %w", err)
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseHierarchy(s string) (statute.HierarchyLevel, error) {
	switch s {
	case "municipal":
		return statute.LevelMunicipal, nil
	case "regional":
		return statute.LevelRegional, nil
	case "national":
		return statute.LevelNational, nil
	case "constitutional":
		return statute.LevelConstitutional, nil
	case "", "unspecified":
		return statute.LevelUnspecified, nil
	}
	return 0, fmt.Errorf("unknown hierarchy level %q", s)
}

func (d ConditionDTO) ToCondition() (statute.Condition, error) {
	switch d.Type {
	case "age":
		op, err := statute.ParseOp(d.Op)
		if err != nil {
			return nil, err
		}
		v, err := intValue(d.Value)
		if err != nil {
			return nil, err
		}
		return statute.Age{Op: op, Value: v}, nil

	case "income":
		op, err := statute.ParseOp(d.Op)
		if err != nil {
			return nil, err
		}
		v, err := intValue(d.Value)
		if err != nil {
			return nil, err
		}
		return statute.Income{Op: op, Value: v}, nil

	case "duration":
		op, err := statute.ParseOp(d.Op)
		if err != nil {
			return nil, err
		}
		v, err := intValue(d.Value)
		if err != nil {
			return nil, err
		}
		return statute.Duration{Op: op, Value: v, Unit: d.Unit}, nil

	case "percentage":
		op, err := statute.ParseOp(d.Op)
		if err != nil {
			return nil, err
		}
		v, err := floatValue(d.Value)
		if err != nil {
			return nil, err
		}
		return statute.Percentage{Op: op, Value: v, Context: d.Context}, nil

	case "set_membership":
		return statute.SetMembership{Key: d.Key, Values: d.Values, Negated: d.Negated}, nil

	case "pattern":
		return statute.Pattern{Key: d.Key, Regex: d.Regex, Negated: d.Negated}, nil

	case "has_attribute":
		return statute.HasAttribute{Key: d.Key}, nil

	case "attribute_equals":
		return statute.AttributeEquals{Key: d.Key, Value: d.Value}, nil

	case "custom":
		return statute.Custom{Description: d.Description, Expr: d.Expr}, nil

	case "constant":
		v, ok := d.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("constant condition needs a boolean value")
		}
		return statute.Constant{Value: v}, nil

	case "and", "or":
		if d.Left == nil || d.Right == nil {
			return nil, fmt.Errorf("%s condition needs left and right operands", d.Type)
		}
		l, err := d.Left.ToCondition()
		if err != nil {
			return nil, err
		}
		r, err := d.Right.ToCondition()
		if err != nil {
			return nil, err
		}
		if d.Type == "and" {
			return statute.And{Left: l, Right: r}, nil
		}
		return statute.Or{Left: l, Right: r}, nil

	case "not":
		if d.Inner == nil {
			return nil, fmt.Errorf("not condition needs an inner operand")
		}
		inner, err := d.Inner.ToCondition()
		if err != nil {
			return nil, err
		}
		return statute.Not{Inner: inner}, nil
	}
	return nil, fmt.Errorf("unknown condition type %q", d.Type)
}

func intValue(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	}
	return 0, fmt.Errorf("value %v (%T) is not an integer", v, v)
}

func floatValue(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("value %v (%T) is not a number", v, v)
}
