package app

import (
	"context"

	"github.com/statutecheck/statutecheck/internal/refgraph"
	"github.com/statutecheck/statutecheck/internal/statute"
	"github.com/statutecheck/statutecheck/internal/verify"
)

// VerifyService is the surface the transports consume.
type VerifyService interface {
	Verify(ctx context.Context, statutes []statute.Statute) (*verify.Result, error)
	AnalyzeComplexity(s statute.Statute) verify.ComplexityMetrics
	DetectConflicts(statutes []statute.Statute) []verify.Finding
	GraphMetrics(statutes []statute.Statute) refgraph.Metrics
}
