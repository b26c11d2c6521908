// Package outcome defines the closed set of per-request execution outcomes
// and a concurrency-safe, write-once store that collects them during a run.
package outcome
