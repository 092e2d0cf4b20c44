// Package solver drives chain selection and materialization over a
// core.Graph already narrowed by package reduce, suspending back to the
// host whenever it needs something only the host can supply: a group's
// shape, a user-mapping resolution, a given variable's value, or a model
// call's result.
//
// A Solver runs its search on its own goroutine and talks to the caller
// through Continue, which blocks until the search either needs host input
// (a Yield) or is done. This replaces the original's libaco stackful fiber
// (fhk/coro.h) with Go's native concurrency primitive: one goroutine per
// Solver, parked on an unbuffered channel instead of a swapped-out machine
// stack. The host-visible contract is identical either way -- Continue is
// the only resume mechanism, the solver is single-threaded with respect to
// itself, and a callback serving a Yield must never itself call Continue.
//
// Chain selection departs from the original's explicit-stack, β-pruned
// two-best scan in one respect: instead of threading a tightening β bound
// through the search and restarting a candidate scan when it tightens,
// selectChain computes every candidate's exact cost up front (via ordinary,
// depth-capped recursion) and picks the minimum directly. The chosen chain
// is identical either way -- both approaches select the cheapest finite
// candidate -- the difference is purely how much work is pruned early, and
// package reduce has already done the expensive pruning at the graph level
// before the solver ever sees an instance. See DESIGN.md.
package solver
