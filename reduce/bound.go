package reduce

import "math"

// inf stands in for the original's COST_OVERFLOW sentinel (+Inf packed into
// the SSE bound register's third lane). Go has no spare lane to smuggle an
// overflow flag through, so bound carries one explicitly instead -- see
// DESIGN.md.
var inf = float32(math.Inf(1))

// bound is a [lo, hi] cost-bound pair for one graph node: lo is
// optimistic (assumes every uncertain input is free/absent), hi is
// pessimistic (assumes the worst within what's already known), and overflow
// marks "this node's chain passes through a cycle or an exhausted β-cutoff,
// so hi is not a valid bound yet."
type bound struct {
	lo, hi   float32
	overflow bool
}

func minBound(a, b bound) bound {
	return bound{lo: min32(a.lo, b.lo), hi: min32(a.hi, b.hi), overflow: a.overflow || b.overflow}
}

func addBound(a, b bound) bound {
	return bound{lo: a.lo + b.lo, hi: a.hi + b.hi, overflow: a.overflow || b.overflow}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
