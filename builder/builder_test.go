package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fhk/builder"
	"github.com/katalvlaran/fhk/core"
)

func TestBuilder_SimpleChain(t *testing.T) {
	b := builder.New()

	x, err := b.AddVariable(0, 8, "x")
	require.NoError(t, err)
	y, err := b.AddVariable(0, 8, "y")
	require.NoError(t, err)

	m, err := b.AddModel(0, 1, 2, "f")
	require.NoError(t, err)
	require.NoError(t, b.AddParam(m, x, builder.IdentMap()))
	require.NoError(t, b.AddReturn(m, y, builder.IdentMap()))

	g, err := b.Build()
	require.NoError(t, err)

	assert.True(t, g.Var(int(x)).Given())
	assert.False(t, g.Var(int(y)).Given())
	assert.Len(t, g.Var(int(y)).Providers, 1)
	assert.True(t, g.ModelAt(int(m)).NoReturnBuffer)
}

func TestBuilder_RejectsInvalidCost(t *testing.T) {
	b := builder.New()
	_, err := b.AddModel(0, -1, 2, "")
	assert.ErrorIs(t, err, builder.ErrInvalidCost)

	_, err = b.AddModel(0, 0, 0.5, "")
	assert.ErrorIs(t, err, builder.ErrInvalidCost)
}

func TestBuilder_RejectsIdentAcrossGroups(t *testing.T) {
	b := builder.New()
	x, _ := b.AddVariable(1, 8, "x")
	m, _ := b.AddModel(0, 1, 1, "f")
	require.NoError(t, b.AddParam(m, x, builder.IdentMap()))

	_, err := b.Build()
	assert.ErrorIs(t, err, builder.ErrIdentGroupMismatch)
}

func TestBuilder_RejectsDuplicateReturn(t *testing.T) {
	b := builder.New()
	y, _ := b.AddVariable(0, 8, "y")
	m, _ := b.AddModel(0, 1, 1, "f")
	require.NoError(t, b.AddReturn(m, y, builder.IdentMap()))

	err := b.AddReturn(m, y, builder.IdentMap())
	assert.ErrorIs(t, err, builder.ErrDuplicateReturn)
}

func TestBuilder_UnknownVarAndModel(t *testing.T) {
	b := builder.New()
	x, _ := b.AddVariable(0, 8, "x")
	err := b.AddParam(0, x, builder.IdentMap())
	assert.ErrorIs(t, err, builder.ErrUnknownModel)

	m, _ := b.AddModel(0, 1, 1, "")
	err = b.AddParam(m, 99, builder.IdentMap())
	assert.ErrorIs(t, err, builder.ErrUnknownVar)
}

func TestBuilder_InternsSharedUserMapping(t *testing.T) {
	b := builder.New()
	x, _ := b.AddVariable(0, 8, "x")
	y, _ := b.AddVariable(1, 8, "y")
	m1, _ := b.AddModel(1, 1, 1, "m1")
	m2, _ := b.AddModel(1, 1, 1, "m2")

	require.NoError(t, b.AddParam(m1, x, builder.UserMap("shared")))
	require.NoError(t, b.AddParam(m2, x, builder.UserMap("shared")))
	require.NoError(t, b.AddReturn(m1, y, builder.IdentMap()))
	require.NoError(t, b.AddReturn(m2, y, builder.IdentMap()))

	g, err := b.Build()
	require.NoError(t, err)
	require.Len(t, g.UserMappings, 1)

	p1 := g.ModelAt(int(m1)).Params[0].Map
	p2 := g.ModelAt(int(m2)).Params[0].Map
	assert.Equal(t, p1.UserIndex, p2.UserIndex)
}

func TestBuilder_PartitionsGivenParamsAfterComputed(t *testing.T) {
	b := builder.New()
	given, _ := b.AddVariable(0, 8, "given")
	computed, _ := b.AddVariable(0, 8, "computed")
	feeder, _ := b.AddModel(0, 1, 1, "feeder")
	require.NoError(t, b.AddReturn(feeder, computed, builder.IdentMap()))

	m, _ := b.AddModel(0, 1, 1, "consumer")
	require.NoError(t, b.AddParam(m, given, builder.IdentMap()))
	require.NoError(t, b.AddParam(m, computed, builder.IdentMap()))

	g, err := b.Build()
	require.NoError(t, err)

	mm := g.ModelAt(int(m))
	require.Equal(t, 1, mm.PComputedParam)
	assert.Equal(t, core.VarRef(int(computed)), mm.Params[0].Target)
	assert.Equal(t, core.VarRef(int(given)), mm.Params[1].Target)
}

func TestBuilder_Reset(t *testing.T) {
	b := builder.New()
	_, _ = b.AddVariable(0, 8, "x")
	b.Reset()

	g, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumVars())
}
