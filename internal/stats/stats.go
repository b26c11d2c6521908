// Package stats reduces per-request outcomes into a scenario report.
package stats

import (
	"cmp"
	"slices"

	"github.com/specialistvlad/trafficgo/internal/outcome"
)

// Verdict is the scenario-level result.
type Verdict string

const (
	VerdictPassed Verdict = "Passed"
	VerdictFailed Verdict = "Failed"
)

// Report summarizes one scenario run.
type Report struct {
	RunID    string               `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Scenario string               `json:"scenario" yaml:"scenario"`
	Total    int                  `json:"total" yaml:"total"`
	Counts   map[outcome.Kind]int `json:"counts" yaml:"counts"`
	Verdict  Verdict              `json:"verdict" yaml:"verdict"`
	Outcomes []outcome.Outcome    `json:"outcomes" yaml:"outcomes"`
}

// Aggregate builds the report for a run. The verdict is Passed only when at
// least one outcome exists and every outcome Passed.
func Aggregate(name string, outcomes []outcome.Outcome) Report {
	r := Report{
		Scenario: name,
		Total:    len(outcomes),
		Counts:   make(map[outcome.Kind]int, len(outcome.Kinds)),
		Outcomes: slices.Clone(outcomes),
	}
	for _, k := range outcome.Kinds {
		r.Counts[k] = 0
	}
	slices.SortStableFunc(r.Outcomes, func(a, b outcome.Outcome) int {
		return cmp.Compare(a.RequestID, b.RequestID)
	})

	r.Verdict = VerdictPassed
	if len(outcomes) == 0 {
		r.Verdict = VerdictFailed
	}
	for _, o := range outcomes {
		r.Counts[o.Kind]++
		if !o.Passed() {
			r.Verdict = VerdictFailed
		}
	}
	return r
}

// Passed reports whether the run verdict is Passed.
func (r Report) Passed() bool {
	return r.Verdict == VerdictPassed
}

// Count returns the number of outcomes of kind k.
func (r Report) Count(k outcome.Kind) int {
	return r.Counts[k]
}
