package verify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/statutecheck/statutecheck/internal/constraint"
	"github.com/statutecheck/statutecheck/internal/refgraph"
	"github.com/statutecheck/statutecheck/internal/statute"
)

// Verifier runs every configured check over a statute collection.
// Checks are pure over immutable inputs, so per-statute and per-pair
// analyses fan out across a worker pool; each worker owns its own
// constraint backend because solver sessions are not assumed
// thread-safe.
type Verifier struct {
	backendFactory        func() constraint.Backend
	principles            []Principle
	conflictRules         []ConflictRule
	workers               int
	maxChecks             int
	maxDuration           time.Duration
	contradictionSeverity Severity
	obs                   CheckObserver
}

type Option func(*Verifier)

// WithBackendFactory installs the constraint backend, constructed once
// per worker. The default is the interval solver; pass
// constraint.NewHeuristicBackend to run solver-free.
func WithBackendFactory(fn func() constraint.Backend) Option {
	return func(v *Verifier) { v.backendFactory = fn }
}

func WithPrinciples(ps ...Principle) Option {
	return func(v *Verifier) { v.principles = ps }
}

func WithConflictRules(rules ...ConflictRule) Option {
	return func(v *Verifier) { v.conflictRules = rules }
}

func WithWorkers(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.workers = n
		}
	}
}

// WithBudget caps a run at maxChecks scheduled checks and maxDuration
// wall clock. Exceeding either truncates the remaining checks and
// reports partial results.
func WithBudget(maxChecks int, maxDuration time.Duration) Option {
	return func(v *Verifier) {
		v.maxChecks = maxChecks
		v.maxDuration = maxDuration
	}
}

func WithContradictionSeverity(s Severity) Option {
	return func(v *Verifier) { v.contradictionSeverity = s }
}

func WithCheckObserver(obs CheckObserver) Option {
	return func(v *Verifier) { v.obs = obs }
}

func New(opts ...Option) *Verifier {
	v := &Verifier{
		backendFactory:        func() constraint.Backend { return constraint.NewIntervalBackend() },
		principles:            DefaultPrinciples(),
		conflictRules:         DefaultConflictRules(),
		workers:               4,
		contradictionSeverity: SeverityWarning,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// job is one scheduled check. Jobs write into disjoint result slots, so
// collection needs no locking beyond the pool's WaitGroup.
type job struct {
	name string
	run  func(b constraint.Backend) ([]Finding, bool)
}

// Verify checks the whole collection. Malformed input (an empty
// statute ID, a condition blowing the size guards) fails before any
// check runs; everything else surfaces as findings inside the Result.
func (v *Verifier) Verify(ctx context.Context, statutes []statute.Statute) (*Result, error) {
	if err := validateInput(statutes); err != nil {
		return nil, err
	}

	// Duplicate IDs are findings, not hard failures; per-statute checks
	// run on the first occurrence of each ID.
	unique := dedupeByID(statutes)
	graph := refgraph.Build(unique)

	jobs := v.buildJobs(unique, statutes, graph)

	result := NewResult()
	truncated := false
	if v.maxChecks > 0 && len(jobs) > v.maxChecks {
		jobs = jobs[:v.maxChecks]
		truncated = true
	}

	var deadline time.Time
	if v.maxDuration > 0 {
		deadline = time.Now().Add(v.maxDuration)
	}

	slots := make([][]Finding, len(jobs))
	reduced := make([]bool, len(jobs))
	skipped := make([]bool, len(jobs))

	workers := v.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	feed := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			backend := v.backendFactory()
			for i := range feed {
				if ctx.Err() != nil || (!deadline.IsZero() && time.Now().After(deadline)) {
					skipped[i] = true
					continue
				}
				start := time.Now()
				findings, lowPrecision := jobs[i].run(backend)
				v.observe(jobs[i].name, time.Since(start))
				slots[i] = findings
				reduced[i] = lowPrecision
			}
		}()
	}
	for i := range jobs {
		feed <- i
	}
	close(feed)
	wg.Wait()

	// Deterministic aggregation in job order, deduplicating symmetric
	// pairwise findings.
	seenPairs := map[string]struct{}{}
	anyReduced := false
	for i := range jobs {
		if skipped[i] {
			truncated = true
			continue
		}
		anyReduced = anyReduced || reduced[i]
		for _, f := range slots[i] {
			if len(f.RelatedIDs) > 0 {
				key := f.pairKey()
				if _, dup := seenPairs[key]; dup {
					continue
				}
				seenPairs[key] = struct{}{}
			}
			result.Add(f)
		}
	}

	if truncated {
		result.Warn("verification budget exceeded: remaining checks were skipped, results are partial")
	}
	if anyReduced {
		result.Warn("reduced precision: some satisfiability queries could not be decided and were skipped")
	}
	return result, nil
}

func (v *Verifier) buildJobs(unique, all []statute.Statute, graph *refgraph.Graph) []job {
	var jobs []job

	jobs = append(jobs, job{
		name: "circular_reference",
		run: func(constraint.Backend) ([]Finding, bool) {
			return circularFindings(graph), false
		},
	})

	for _, s := range unique {
		s := s
		jobs = append(jobs, job{
			name: "dead_statute:" + s.ID,
			run: func(b constraint.Backend) ([]Finding, bool) {
				f, lowPrecision := deadStatuteFinding(b, s)
				if f == nil {
					return nil, lowPrecision
				}
				return []Finding{*f}, lowPrecision
			},
		})

		for _, p := range v.principles {
			p := p
			jobs = append(jobs, job{
				name: "principle:" + p.Name() + ":" + s.ID,
				run: func(constraint.Backend) ([]Finding, bool) {
					if f := p.Check(s); f != nil {
						return []Finding{*f}, false
					}
					return nil, false
				},
			})
		}

		jobs = append(jobs, job{
			name: "complexity:" + s.ID,
			run: func(constraint.Backend) ([]Finding, bool) {
				if f := complexityFinding(s); f != nil {
					return []Finding{*f}, false
				}
				return nil, false
			},
		})
	}

	for i := range all {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			jobs = append(jobs, job{
				name: "pairwise:" + a.ID + ":" + b.ID,
				run: func(backend constraint.Backend) ([]Finding, bool) {
					var out []Finding
					lowPrecision := false
					for _, rule := range v.conflictRules {
						if f := rule.Check(a, b); f != nil {
							out = append(out, *f)
						}
					}
					if f, lp := contradictionFinding(backend, a, b, v.contradictionSeverity); f != nil {
						out = append(out, *f)
					} else if lp {
						lowPrecision = true
					}
					return out, lowPrecision
				},
			})
		}
	}

	return jobs
}

func (v *Verifier) observe(check string, d time.Duration) {
	if v.obs == nil {
		return
	}
	v.obs.ObserveCheckLatency(check, d)
}

func validateInput(statutes []statute.Statute) error {
	for i, s := range statutes {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("statute at index %d has an empty id", i)
		}
		for j, c := range s.Preconditions {
			if c == nil {
				return fmt.Errorf("statute %q: precondition %d is nil", s.ID, j)
			}
			if d := statute.Depth(c); d > statute.MaxConditionDepth {
				return fmt.Errorf("statute %q: precondition %d exceeds max depth (%d > %d)", s.ID, j, d, statute.MaxConditionDepth)
			}
			if n := statute.Size(c); n > statute.MaxConditionSize {
				return fmt.Errorf("statute %q: precondition %d exceeds max size (%d > %d)", s.ID, j, n, statute.MaxConditionSize)
			}
		}
	}
	return nil
}

func dedupeByID(statutes []statute.Statute) []statute.Statute {
	seen := make(map[string]struct{}, len(statutes))
	out := make([]statute.Statute, 0, len(statutes))
	for _, s := range statutes {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}
