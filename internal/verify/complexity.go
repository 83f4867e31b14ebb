package verify

import (
	"fmt"

	"github.com/statutecheck/statutecheck/internal/statute"
)

// Band classifies a complexity score.
type Band int

const (
	BandSimple Band = iota
	BandModerate
	BandComplex
	BandVeryComplex
)

func (b Band) String() string {
	switch b {
	case BandSimple:
		return "simple"
	case BandModerate:
		return "moderate"
	case BandComplex:
		return "complex"
	}
	return "very_complex"
}

// ComplexityMetrics are pure structural measures of one statute; no
// solver is involved.
type ComplexityMetrics struct {
	StatuteID            string `json:"statute_id"`
	ConditionCount       int    `json:"condition_count"`
	MaxNestingDepth      int    `json:"max_nesting_depth"`
	OperatorCount        int    `json:"operator_count"`
	DistinctTypes        int    `json:"distinct_condition_types"`
	CyclomaticComplexity int    `json:"cyclomatic_complexity"`
	Score                int    `json:"score"`
	Band                 string `json:"band"`
}

// AnalyzeComplexity measures one statute. The score is a weighted blend
// clamped to 0-100; bands cut at 25/50/75.
func AnalyzeComplexity(s statute.Statute) ComplexityMetrics {
	m := ComplexityMetrics{StatuteID: s.ID}
	types := map[string]struct{}{}

	for _, root := range s.Preconditions {
		if d := statute.Depth(root); d > m.MaxNestingDepth {
			m.MaxNestingDepth = d
		}
		statute.Walk(root, func(c statute.Condition) bool {
			switch c.(type) {
			case statute.And, statute.Or, statute.Not:
				m.OperatorCount++
			default:
				m.ConditionCount++
				types[fmt.Sprintf("%T", c)] = struct{}{}
			}
			return true
		})
	}

	m.DistinctTypes = len(types)
	// decisions: every leaf predicate plus every branching connective
	m.CyclomaticComplexity = 1 + m.ConditionCount + m.OperatorCount

	score := m.ConditionCount*4 + m.MaxNestingDepth*6 + m.OperatorCount*3 +
		m.DistinctTypes*2 + m.CyclomaticComplexity*2
	if score > 100 {
		score = 100
	}
	m.Score = score
	m.Band = bandFor(score).String()
	return m
}

func bandFor(score int) Band {
	switch {
	case score < 25:
		return BandSimple
	case score < 50:
		return BandModerate
	case score < 75:
		return BandComplex
	}
	return BandVeryComplex
}
