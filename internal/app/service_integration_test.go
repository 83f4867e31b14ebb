// internal/app/service_integration_test.go
package app

import (
	"context"
	"testing"

	"github.com/statutecheck/statutecheck/internal/statute"
	"github.com/statutecheck/statutecheck/internal/verify"
	"github.com/statutecheck/statutecheck/internal/verify/cache"
)

func TestService_Verify_Integration(t *testing.T) {
	verifier := verify.New(verify.WithWorkers(2))
	svc := NewService(verifier, cache.NewInMemory(16))

	alive, err := statute.NewBuilder("alive").
		Title("adult benefit").
		Precondition(statute.Age{Op: statute.OpGe, Value: 18}).
		Effect(statute.Effect{Type: statute.EffectGrant, Description: "benefit"}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	dead, err := statute.NewBuilder("dead").
		Title("impossible benefit").
		Precondition(statute.Age{Op: statute.OpGe, Value: 18}).
		Precondition(statute.Age{Op: statute.OpLt, Value: 18}).
		Effect(statute.Effect{Type: statute.EffectGrant, Description: "other"}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	in := []statute.Statute{alive, dead}
	res, err := svc.Verify(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if res.Passed {
		t.Fatalf("expected the dead statute to fail the run: %+v", res)
	}
	found := res.FindingsOfKind(verify.KindDeadStatute)
	if len(found) != 1 || found[0].StatuteID != "dead" {
		t.Fatalf("expected one dead statute finding for %q, got %+v", "dead", found)
	}

	// second run hits the cache and returns the identical result
	again, err := svc.Verify(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if again != res {
		t.Fatalf("expected the cached result pointer back")
	}
}
