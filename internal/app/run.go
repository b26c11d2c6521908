package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/trafficgo/internal/ctxlog"
	"github.com/specialistvlad/trafficgo/internal/dag"
	"github.com/specialistvlad/trafficgo/internal/executor"
	"github.com/specialistvlad/trafficgo/internal/loader"
	"github.com/specialistvlad/trafficgo/internal/report"
	"github.com/specialistvlad/trafficgo/internal/scheduler"
	"github.com/specialistvlad/trafficgo/internal/stats"
)

// Run executes the configured scenario, or every scenario file under the
// configured directory in lexical order, and writes one report per scenario.
//
// A scenario that cannot be loaded or is structurally invalid yields
// *InvalidScenarioError; one that ran but did not pass yields
// *FailedRunError. Errors of several scenarios are joined.
func (a *App) Run(ctx context.Context) error {
	a.logger.Debug("App.Run method started.", "scenario_path", a.config.ScenarioPath)
	if c, ok := a.transport.(interface{ CloseIdleConnections() }); ok {
		defer c.CloseIdleConnections()
	}

	paths, err := loader.Discover(a.config.ScenarioPath)
	if err != nil {
		return a.invalid(ctxlog.WithLogger(ctx, a.logger), a.config.ScenarioPath, "", err)
	}
	a.logger.Debug("Scenario files discovered.", "count", len(paths))

	var errs []error
	for i, path := range paths {
		if i > 0 && a.config.ReportFormat == string(report.FormatYAML) {
			fmt.Fprintln(a.outW, "---")
		}
		if err := a.runScenario(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return errors.Join(errs...)
}

func (a *App) runScenario(ctx context.Context, path string) error {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID, "scenario", path)
	ctx = ctxlog.WithLogger(ctx, logger)
	format := report.Format(a.config.ReportFormat)

	sc, err := a.loader.Load(ctx, path)
	if err == nil {
		err = sc.Validate()
	}
	if err != nil {
		return a.invalid(ctx, path, "", err)
	}
	logger.Info("Scenario loaded.", "name", sc.Config.Name, "requests", len(sc.Requests))

	if a.config.PrintScenario {
		out, err := json.MarshalIndent(sc, "", "  ")
		if err != nil {
			return fmt.Errorf("printing scenario: %w", err)
		}
		fmt.Fprintln(a.outW, string(out))
	}

	graph, err := dag.Build(ctx, sc)
	if err != nil {
		return a.invalid(ctx, path, sc.Config.Name, err)
	}
	logger.Debug("Dependency graph built.", "waves", len(graph.Waves))

	exec := executor.New(a.transport, executor.WithDefaultTimeout(a.config.DefaultTimeout))
	sched := scheduler.New(exec, scheduler.WithConcurrency(a.config.Concurrency))

	logger.Info("🚀 Starting scenario run.", "waves", len(graph.Waves))
	outcomes := sched.Run(ctx, sc, graph)

	rep := stats.Aggregate(sc.Config.Name, outcomes)
	rep.RunID = runID
	logger.Info("🏁 Scenario finished.", "verdict", rep.Verdict, "total", rep.Total)

	if err := report.Render(a.outW, format, rep); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if !rep.Passed() {
		return &FailedRunError{Report: rep}
	}
	return nil
}

func (a *App) invalid(ctx context.Context, path, name string, err error) error {
	ctxlog.FromContext(ctx).Error("❌ Scenario is invalid.", "error", err)
	if rerr := report.RenderInvalid(a.outW, report.Format(a.config.ReportFormat), name, err); rerr != nil {
		return fmt.Errorf("rendering report: %w", rerr)
	}
	return &InvalidScenarioError{Path: path, Err: err}
}
