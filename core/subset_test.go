package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fhk/core"
)

func TestSubset_EmptyIsCanonicalZero(t *testing.T) {
	assert.Equal(t, core.Subset(0), core.Empty)
	assert.True(t, core.Empty.IsEmpty())
	assert.Equal(t, 0, core.Size(core.Empty, nil))
}

func TestSubset_SimpleRangeRoundTrip(t *testing.T) {
	s := core.NewRange(3, 7)
	require.False(t, s.IsEmpty())
	require.False(t, s.IsComplex())

	var got []uint32
	core.Each(s, nil, func(inst uint32) bool {
		got = append(got, inst)
		return true
	})
	assert.Equal(t, []uint32{3, 4, 5, 6}, got)
	assert.Equal(t, 4, core.Size(s, nil))
}

func TestSubset_InvertedRangeIsEmpty(t *testing.T) {
	assert.Equal(t, core.Empty, core.NewRange(5, 5))
	assert.Equal(t, core.Empty, core.NewRange(5, 2))
}

func TestSubset_Singleton(t *testing.T) {
	s := core.NewSingleton(9)
	assert.Equal(t, 1, core.Size(s, nil))
	assert.True(t, core.Contains(s, nil, 9))
	assert.False(t, core.Contains(s, nil, 8))
}

func TestSubset_ComplexRoundTrip(t *testing.T) {
	var t1 core.RangeTable
	s := t1.NewComplexSubset([]core.Range{{Start: 0, End: 2}, {Start: 10, End: 13}})
	require.True(t, s.IsComplex())

	var got []uint32
	core.Each(s, &t1, func(inst uint32) bool {
		got = append(got, inst)
		return true
	})
	assert.Equal(t, []uint32{0, 1, 10, 11, 12}, got)
	assert.Equal(t, 5, core.Size(s, &t1))
	assert.Equal(t, 3, core.IndexOf(s, &t1, 11))
}

func TestSubset_ComplexWithOneRangeCollapses(t *testing.T) {
	var tbl core.RangeTable
	s := tbl.NewComplexSubset([]core.Range{{Start: 2, End: 5}})
	assert.False(t, s.IsComplex())
	assert.Equal(t, core.NewRange(2, 5), s)
}

func TestNodeIndex_VarAndModelRefs(t *testing.T) {
	v := core.VarRef(5)
	assert.True(t, v.IsVar())
	assert.Equal(t, 5, v.VarIndex())

	m := core.ModelRef(0)
	assert.True(t, m.IsModel())
	assert.Equal(t, 0, m.ModelIndex())

	m2 := core.ModelRef(3)
	assert.Equal(t, 3, m2.ModelIndex())
	assert.NotEqual(t, m, m2)
}
