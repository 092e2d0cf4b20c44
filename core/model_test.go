package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/fhk/core"
)

// TestModel_CostMonotoneAndInvertible locks in the monotone-cost law:
// cost(S) = k + c*S is non-decreasing for S >= 0, and the precomputed
// inverse recovers S up to floating-point rounding.
func TestModel_CostMonotoneAndInvertible(t *testing.T) {
	m := core.Model{K: 1.5, C: 2.0}
	m.Ki = -m.K / m.C
	m.Ci = 1 / m.C

	prev := float32(-1)
	for s := float32(0); s <= 10; s++ {
		cost := m.Cost(s)
		assert.GreaterOrEqual(t, cost, m.K)
		assert.Greater(t, cost, prev)
		prev = cost

		gotS := m.InverseCost(cost)
		assert.InDelta(t, s, gotS, 1e-4)
	}
}

func TestVariable_Given(t *testing.T) {
	given := core.Variable{}
	assert.True(t, given.Given())

	computed := core.Variable{Providers: []core.Edge{{Target: core.ModelRef(0)}}}
	assert.False(t, computed.Given())
}
