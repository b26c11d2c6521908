// Package report prints run results for people (text) and machines (json,
// yaml). It also prints the distinct "scenario invalid" form used when a
// scenario is rejected before anything runs.
package report
