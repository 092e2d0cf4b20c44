// Package reduce prunes a core.Graph down to the subgraph actually reachable
// from a set of requested root variables, given a set of variables the host
// will supply directly.
//
// It folds the original's two-step reduce-then-build-subgraph API (a first
// pass computing per-node cost bounds and marking which models/variables
// are selected, then a second pass copying the marked nodes into a new
// graph) into the single Reduce call: DESIGN.md records this as a
// deliberate simplification, since Go has no equivalent to the original's
// separate fhk_subgraph/fhk_build_subgraph ABI boundary to preserve.
//
// The bound search itself is ported line-for-line from fhk/reduce.c's
// r_searchv/r_searchm/r_selectv/r_selectm: for every model and variable node
// reachable from a root, compute a [lo, hi] bound on the cost of its
// cheapest chain, propagate a β-cutoff through the search so no node is
// visited with no hope of beating the current best, and select only the
// providers that could still be cheapest. A variable the host marks given
// for this particular reduction is emitted with no providers at all, even
// if the full graph has some for it -- this lets one built graph serve
// several "what if we fixed this normally-computed value" requests without
// rebuilding.
package reduce
