// Package dag turns the `depends` lists of a scenario's requests into a
// validated Directed Acyclic Graph (DAG) and a wave-ordered schedule.
//
// A wave is the set of requests whose dependencies are all placed in earlier
// waves. Waves are the unit of concurrency for the scheduler: members of one
// wave may run in parallel, and waves run strictly one after another.
//
// Build is the only constructor callers need. It rejects structurally invalid
// scenarios (unknown servers or dependencies, duplicate ids, cycles) before
// anything is executed, so a returned Graph is always safe to schedule.
package dag
