// Package arena provides the solver's scratch-buffer pool: a fixed set of up
// to 32 reusable byte buffers, handed out by a bitmask of free slots exactly
// like fhk/solve.c's S_scratch_acquire/S_scratch_release (sc_mask, sc_mem).
//
// The original also carries a bump allocator (arena_malloc) backing the
// scratch buffers, return-value tables and chain descriptors it allocates
// for the lifetime of one solve. Go's garbage collector already serves that
// role -- a bump allocator bought the original a single free-the-whole-arena
// reclaim at the end of a solve, which Go gets for free once the Solver is
// dropped -- so only the scratch pool is reproduced here; see DESIGN.md.
package arena
