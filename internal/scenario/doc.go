// Package scenario defines the format-agnostic, in-memory model of a traffic
// scenario: the servers to target, the requests to issue against them, and
// the responses each request is expected to produce.
//
// A Scenario is produced once by a loader and is read-only afterwards. The
// `dag`, `scheduler` and `executor` packages share a single instance across
// all concurrent request tasks without locking.
package scenario
