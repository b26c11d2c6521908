package app

import (
	"fmt"

	"github.com/specialistvlad/trafficgo/internal/outcome"
	"github.com/specialistvlad/trafficgo/internal/stats"
)

// InvalidScenarioError means the scenario could not be loaded or is
// structurally invalid. No request was sent.
type InvalidScenarioError struct {
	Path string
	Err  error
}

func (e *InvalidScenarioError) Error() string {
	return fmt.Sprintf("scenario %s is invalid: %v", e.Path, e.Err)
}

func (e *InvalidScenarioError) Unwrap() error {
	return e.Err
}

// FailedRunError means the scenario ran and its verdict is Failed.
type FailedRunError struct {
	Report stats.Report
}

func (e *FailedRunError) Error() string {
	return fmt.Sprintf("scenario %q failed: %d of %d requests did not pass",
		e.Report.Scenario, e.Report.Total-e.Report.Count(outcome.Passed), e.Report.Total)
}
