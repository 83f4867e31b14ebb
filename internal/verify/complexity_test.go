package verify

import (
	"testing"

	"github.com/statutecheck/statutecheck/internal/statute"
)

func TestAnalyzeComplexity_Simple(t *testing.T) {
	m := AnalyzeComplexity(mkStatute("s", adult()))
	if m.ConditionCount != 1 || m.OperatorCount != 0 || m.MaxNestingDepth != 1 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.DistinctTypes != 1 {
		t.Fatalf("one leaf type expected, got %d", m.DistinctTypes)
	}
	if m.CyclomaticComplexity != 2 {
		t.Fatalf("cyclomatic = 1 + leaves + operators, got %d", m.CyclomaticComplexity)
	}
	if m.Band != "simple" {
		t.Fatalf("a lone leaf is simple, got %q (score %d)", m.Band, m.Score)
	}
}

func TestAnalyzeComplexity_Nested(t *testing.T) {
	c := statute.And{
		Left: statute.Or{
			Left:  adult(),
			Right: statute.Income{Op: statute.OpGe, Value: 30000},
		},
		Right: statute.Not{Inner: statute.HasAttribute{Key: "exempt"}},
	}
	m := AnalyzeComplexity(mkStatute("s", c))
	if m.ConditionCount != 3 {
		t.Fatalf("three leaves expected, got %d", m.ConditionCount)
	}
	if m.OperatorCount != 3 {
		t.Fatalf("and, or, not: three operators, got %d", m.OperatorCount)
	}
	if m.MaxNestingDepth != 3 {
		t.Fatalf("depth 3 expected, got %d", m.MaxNestingDepth)
	}
	if m.DistinctTypes != 3 {
		t.Fatalf("age, income, has_attribute: three types, got %d", m.DistinctTypes)
	}
}

func TestAnalyzeComplexity_MultiplePreconditions(t *testing.T) {
	m := AnalyzeComplexity(mkStatute("s", adult(), statute.Income{Op: statute.OpGe, Value: 1}))
	if m.ConditionCount != 2 {
		t.Fatalf("leaves sum across preconditions, got %d", m.ConditionCount)
	}
	if m.MaxNestingDepth != 1 {
		t.Fatalf("depth is the max over roots, got %d", m.MaxNestingDepth)
	}
}

func TestAnalyzeComplexity_ScoreClamped(t *testing.T) {
	c := statute.Condition(adult())
	for i := 0; i < 30; i++ {
		c = statute.And{Left: c, Right: statute.Income{Op: statute.OpGe, Value: int64(i)}}
	}
	m := AnalyzeComplexity(mkStatute("s", c))
	if m.Score != 100 {
		t.Fatalf("score clamps at 100, got %d", m.Score)
	}
	if m.Band != "very_complex" {
		t.Fatalf("a clamped score is very complex, got %q", m.Band)
	}
}

func TestBandFor(t *testing.T) {
	cases := []struct {
		score int
		want  Band
	}{
		{0, BandSimple},
		{24, BandSimple},
		{25, BandModerate},
		{49, BandModerate},
		{50, BandComplex},
		{74, BandComplex},
		{75, BandVeryComplex},
		{100, BandVeryComplex},
	}
	for _, tc := range cases {
		if got := bandFor(tc.score); got != tc.want {
			t.Fatalf("bandFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
