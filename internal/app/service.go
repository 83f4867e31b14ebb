// internal/app/service.go
package app

import (
	"context"
	"fmt"

	"github.com/statutecheck/statutecheck/internal/refgraph"
	"github.com/statutecheck/statutecheck/internal/statute"
	"github.com/statutecheck/statutecheck/internal/verify"
)

type Verifier interface {
	Verify(ctx context.Context, statutes []statute.Statute) (*verify.Result, error)
}

type Cache interface {
	GetOrCompute(fingerprint string, fn func() (*verify.Result, error)) (*verify.Result, error)
}

type Service struct {
	verifier Verifier
	cache    Cache
	rules    []verify.ConflictRule
}

func NewService(verifier Verifier, cache Cache, rules ...verify.ConflictRule) *Service {
	if len(rules) == 0 {
		rules = verify.DefaultConflictRules()
	}
	return &Service{verifier: verifier, cache: cache, rules: rules}
}

// Verify runs the full check suite, reusing a cached result when the
// exact same statute set was verified before. Cached answers are
// indistinguishable from cold runs.
func (s *Service) Verify(ctx context.Context, statutes []statute.Statute) (*verify.Result, error) {
	if len(statutes) == 0 {
		return nil, fmt.Errorf("statutes are required")
	}

	key := statute.SetFingerprint(statutes)
	return s.cache.GetOrCompute(key, func() (*verify.Result, error) {
		return s.verifier.Verify(ctx, statutes)
	})
}

func (s *Service) AnalyzeComplexity(st statute.Statute) verify.ComplexityMetrics {
	return verify.AnalyzeComplexity(st)
}

func (s *Service) DetectConflicts(statutes []statute.Statute) []verify.Finding {
	return verify.DetectConflicts(statutes, s.rules)
}

func (s *Service) GraphMetrics(statutes []statute.Statute) refgraph.Metrics {
	return refgraph.Analyze(refgraph.Build(statutes))
}
