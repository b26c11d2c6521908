package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/trafficgo/internal/ctxlog"
	"github.com/specialistvlad/trafficgo/internal/dag"
	"github.com/specialistvlad/trafficgo/internal/outcome"
	"github.com/specialistvlad/trafficgo/internal/scenario"
	"github.com/specialistvlad/trafficgo/internal/transport"
	"github.com/specialistvlad/trafficgo/internal/validator"
	"golang.org/x/sync/errgroup"
)

// ReasonCancelled is the Blocked reason for requests never sent because the
// run was cancelled.
const ReasonCancelled = "run cancelled"

// Executor sends one request. *executor.Executor satisfies it.
type Executor interface {
	Execute(ctx context.Context, srv *scenario.Server, req *scenario.Request) (*transport.Response, error)
}

// Scheduler dispatches the waves of a dependency graph.
type Scheduler struct {
	exec        Executor
	concurrency int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithConcurrency caps the number of in-flight requests within a wave. It
// overrides the scenario rate. Zero defers to the rate.
func WithConcurrency(n int) Option {
	return func(s *Scheduler) { s.concurrency = n }
}

// New creates a Scheduler.
func New(exec Executor, opts ...Option) *Scheduler {
	s := &Scheduler{exec: exec}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes every request of sc in the order imposed by g and returns one
// outcome per request, sorted by request id. g must come from dag.Build(sc).
func (s *Scheduler) Run(ctx context.Context, sc *scenario.Scenario, g *dag.Graph) []outcome.Outcome {
	logger := ctxlog.FromContext(ctx)
	store := outcome.NewStore()
	limit := s.ceiling(sc)
	logger.Debug("Scheduler started.", "waves", len(g.Waves), "requests", len(g.IDs), "ceiling", limit)

	// In-flight requests must not be torn down by run-level cancellation.
	execCtx := context.WithoutCancel(ctx)

	for waveIdx, wave := range g.Waves {
		logger.Debug("Starting wave.", "wave", waveIdx, "size", len(wave))

		var eg errgroup.Group
		eg.SetLimit(limit)

		for _, id := range wave {
			if ctx.Err() != nil {
				s.record(ctx, store, outcome.Outcome{RequestID: id, Kind: outcome.Blocked, Reason: ReasonCancelled, Wave: waveIdx})
				continue
			}

			if blockers := notPassed(store, g.Dependencies(id)); len(blockers) > 0 {
				s.record(ctx, store, outcome.Outcome{
					RequestID: id,
					Kind:      outcome.Blocked,
					Reason:    blockedReason(blockers),
					BlockedBy: blockers,
					Wave:      waveIdx,
				})
				continue
			}

			req, _ := sc.Request(id)
			eg.Go(func() error {
				s.record(ctx, store, s.runOne(execCtx, sc, req, waveIdx))
				return nil
			})
		}

		_ = eg.Wait()
		logger.Debug("Wave finished.", "wave", waveIdx)
	}

	outcomes := store.All()
	logger.Debug("Scheduler finished.", "outcomes", len(outcomes))
	return outcomes
}

// ceiling resolves the intra-wave concurrency limit. errgroup treats a
// negative limit as unbounded.
func (s *Scheduler) ceiling(sc *scenario.Scenario) int {
	switch {
	case s.concurrency > 0:
		return s.concurrency
	case sc.Config.Rate > 0:
		return int(sc.Config.Rate)
	}
	return -1
}

func (s *Scheduler) runOne(ctx context.Context, sc *scenario.Scenario, req *scenario.Request, wave int) outcome.Outcome {
	logger := ctxlog.FromContext(ctx).With("request_id", req.ID, "method", req.Method, "path", req.Path)
	logger.Info("▶️ Sending request.")

	o := outcome.Outcome{RequestID: req.ID, Wave: wave}
	start := time.Now()

	srv, ok := sc.Server(req.ServerID)
	if !ok {
		o.Kind = outcome.FailedTransport
		o.Reason = fmt.Sprintf("unknown server %d", req.ServerID)
		logger.Warn("❌ Request failed.", "reason", o.Reason)
		return finish(o, start)
	}

	resp, err := s.exec.Execute(ctx, srv, req)
	if err != nil {
		o.Kind = outcome.FailedTransport
		o.Reason = err.Error()
		logger.Warn("❌ Request failed.", "reason", o.Reason)
		return finish(o, start)
	}
	o.Status = resp.Status

	expected, hasExpectation := sc.ResponseFor(req.ID)
	verdict := validator.Validate(expected, resp)
	if hasExpectation {
		o.Verdict = &verdict
	}
	if !verdict.Passed() {
		o.Kind = outcome.FailedValidation
		o.Reason = verdict.Reason()
		logger.Warn("❌ Response did not match.", "status", resp.Status, "failed", verdict.Failed, "reason", o.Reason)
		return finish(o, start)
	}

	o.Kind = outcome.Passed
	logger.Info("✅ Request passed.", "status", resp.Status)
	return finish(o, start)
}

func finish(o outcome.Outcome, start time.Time) outcome.Outcome {
	o.Duration = time.Since(start)
	return o
}

func (s *Scheduler) record(ctx context.Context, store *outcome.Store, o outcome.Outcome) {
	if o.Kind == outcome.Blocked {
		ctxlog.FromContext(ctx).Info("⏭️ Request blocked.", "request_id", o.RequestID, "reason", o.Reason)
	}
	if err := store.Record(o); err != nil {
		ctxlog.FromContext(ctx).Error("Outcome recorded twice.", "error", err)
	}
}

// notPassed returns the dependencies whose recorded outcome is not Passed.
// Waves guarantee every dependency already has an outcome.
func notPassed(store *outcome.Store, deps []uint32) []uint32 {
	var out []uint32
	for _, dep := range deps {
		if o, ok := store.Get(dep); !ok || !o.Passed() {
			out = append(out, dep)
		}
	}
	return out
}

func blockedReason(blockers []uint32) string {
	ids := make([]string, len(blockers))
	for i, id := range blockers {
		ids[i] = fmt.Sprint(id)
	}
	return "dependency did not pass: " + strings.Join(ids, ", ")
}
