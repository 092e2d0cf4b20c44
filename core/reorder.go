package core

// PartitionEdges stably reorders edges so that every edge whose target is a
// computed variable precedes every edge whose target is given, returning
// the reordered slice and the partition boundary (the original's
// reorder_edges pass). Relative order within each partition is preserved.
//
// Both package builder (at initial emit) and package reduce (since
// reduction can flip a variable's given status by treating it as given for
// one particular request -- see DESIGN.md) call this, so it lives here
// rather than being duplicated in each.
func PartitionEdges(edges []Edge, givenVar func(varIdx int) bool) ([]Edge, int) {
	out := make([]Edge, 0, len(edges))
	var given []Edge
	for _, e := range edges {
		if e.Target.IsVar() && givenVar(e.Target.VarIndex()) {
			given = append(given, e)
		} else {
			out = append(out, e)
		}
	}
	boundary := len(out)
	out = append(out, given...)
	return out, boundary
}

// PartitionShadows is PartitionEdges for a model's Shadow (check) list.
func PartitionShadows(checks []Shadow, givenVar func(varIdx int) bool) ([]Shadow, int) {
	out := make([]Shadow, 0, len(checks))
	var given []Shadow
	for _, c := range checks {
		if c.Target.IsVar() && givenVar(c.Target.VarIndex()) {
			given = append(given, c)
		} else {
			out = append(out, c)
		}
	}
	boundary := len(out)
	out = append(out, given...)
	return out, boundary
}
