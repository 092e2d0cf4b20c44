package core_test

import (
	"testing"

	"github.com/katalvlaran/fhk/core"
)

// BenchmarkSubset_EachSimple4096 measures iterating a single contiguous
// range of 4096 instances, the solver's hot path when a request or a space
// mapping covers a whole group. One Each call is O(n) with no allocation
// beyond the one-element range slice.
func BenchmarkSubset_EachSimple4096(b *testing.B) {
	s := core.NewRange(0, 4096)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum uint32
		core.Each(s, nil, func(inst uint32) bool {
			sum += inst
			return true
		})
	}
}

// BenchmarkSubset_EachComplex64 measures iterating a complex subset of 64
// disjoint ranges of 64 instances each, the worst case a user mapping can
// hand back: every member visit goes through the range table rather than a
// single start/end pair.
func BenchmarkSubset_EachComplex64(b *testing.B) {
	var tbl core.RangeTable
	ranges := make([]core.Range, 64)
	for i := range ranges {
		ranges[i] = core.Range{Start: uint32(i * 128), End: uint32(i*128 + 64)}
	}
	s := tbl.NewComplexSubset(ranges)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum uint32
		core.Each(s, &tbl, func(inst uint32) bool {
			sum += inst
			return true
		})
	}
}
