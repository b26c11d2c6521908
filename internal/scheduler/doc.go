// Package scheduler runs a validated scenario wave by wave.
//
// # Why Scheduler Exists
//
// Requests in a scenario may depend on other requests. The scheduler is the
// component that turns the dependency graph into actual execution: it never
// starts a request before every one of its dependencies has a final outcome,
// and it runs independent requests at the same time.
//
// # How It Works
//
// The dag package has already grouped request ids into waves. For each wave,
// in order, the scheduler:
//  1. Checks each member's dependencies in the outcome store. A member whose
//     dependencies all Passed is dispatched. Any other member is recorded as
//     Blocked without being sent, with BlockedBy naming the culprits.
//  2. Runs the dispatched members concurrently, bounded by the ceiling
//     (WithConcurrency, else the scenario rate, else unbounded).
//  3. Waits for every member to finish before moving to the next wave.
//
// Because Blocked is not Passed, blocking propagates transitively along
// dependency chains.
//
// # Cancellation
//
// Cancelling the run context stops new dispatches. Requests not yet sent are
// recorded as Blocked with the reason "run cancelled". Requests already on the
// wire finish or hit their own timeout.
package scheduler
