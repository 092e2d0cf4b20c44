package reduce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fhk/builder"
	"github.com/katalvlaran/fhk/fhkerr"
	"github.com/katalvlaran/fhk/reduce"
)

func TestReduce_KeepsCheaperProvider(t *testing.T) {
	b := builder.New()
	x, _ := b.AddVariable(0, 8, "x")
	y, _ := b.AddVariable(0, 8, "y")

	cheap, _ := b.AddModel(0, 1, 1, "cheap")
	require.NoError(t, b.AddParam(cheap, x, builder.IdentMap()))
	require.NoError(t, b.AddReturn(cheap, y, builder.IdentMap()))

	expensive, _ := b.AddModel(0, 100, 1, "expensive")
	require.NoError(t, b.AddParam(expensive, x, builder.IdentMap()))
	require.NoError(t, b.AddReturn(expensive, y, builder.IdentMap()))

	g, err := b.Build()
	require.NoError(t, err)

	sub, err := reduce.Reduce(g, []int{int(y)}, []int{int(x)})
	require.NoError(t, err)

	// The subgraph is renumbered; the first root becomes variable 0.
	require.Len(t, sub.Var(0).Providers, 1)
	providerModel := sub.ModelAt(sub.Var(0).Providers[0].Target.ModelIndex())
	assert.Equal(t, float32(1), providerModel.K)
}

func TestReduce_GivenOverrideSuppressesProviders(t *testing.T) {
	b := builder.New()
	x, _ := b.AddVariable(0, 8, "x")
	y, _ := b.AddVariable(0, 8, "y")
	m, _ := b.AddModel(0, 1, 1, "f")
	require.NoError(t, b.AddParam(m, x, builder.IdentMap()))
	require.NoError(t, b.AddReturn(m, y, builder.IdentMap()))

	g, err := b.Build()
	require.NoError(t, err)

	// y structurally has a provider, but this request marks it given anyway.
	sub, err := reduce.Reduce(g, []int{int(y)}, []int{int(x), int(y)})
	require.NoError(t, err)
	// The subgraph is renumbered; the first root becomes variable 0.
	assert.True(t, sub.Var(0).Given())
}

func TestReduce_FailsWhenRootHasNoProviderAndIsNotGiven(t *testing.T) {
	b := builder.New()
	y, _ := b.AddVariable(0, 8, "y")
	g, err := b.Build()
	require.NoError(t, err)

	_, err = reduce.Reduce(g, []int{int(y)}, nil)
	require.Error(t, err)

	var st fhkerr.Status
	require.ErrorAs(t, err, &st)
	assert.Equal(t, fhkerr.CHAIN, st.Code)
	assert.Equal(t, fhkerr.Reduce, st.Where)
}

// Reducing an already-reduced graph is a fixed point: the second pass finds
// nothing left to prune.
func TestReduce_Idempotent(t *testing.T) {
	b := builder.New()
	x, _ := b.AddVariable(0, 8, "x")
	y, _ := b.AddVariable(0, 8, "y")
	z, _ := b.AddVariable(0, 8, "z")

	cheap, _ := b.AddModel(0, 1, 1, "cheap")
	require.NoError(t, b.AddParam(cheap, x, builder.IdentMap()))
	require.NoError(t, b.AddReturn(cheap, y, builder.IdentMap()))

	expensive, _ := b.AddModel(0, 100, 1, "expensive")
	require.NoError(t, b.AddParam(expensive, x, builder.IdentMap()))
	require.NoError(t, b.AddReturn(expensive, y, builder.IdentMap()))

	via, _ := b.AddModel(0, 1, 1, "via")
	require.NoError(t, b.AddParam(via, y, builder.IdentMap()))
	require.NoError(t, b.AddReturn(via, z, builder.IdentMap()))

	g, err := b.Build()
	require.NoError(t, err)

	sub, err := reduce.Reduce(g, []int{int(z)}, []int{int(x)})
	require.NoError(t, err)

	// Re-reduce in the subgraph's own index space: everything the first pass
	// kept computed becomes a root, everything it left provider-less stays
	// given. A fixed point keeps every node and every provider edge.
	var roots2, given2 []int
	for i := 0; i < sub.NumVars(); i++ {
		if sub.Var(i).Given() {
			given2 = append(given2, i)
		} else {
			roots2 = append(roots2, i)
		}
	}
	require.NotEmpty(t, roots2)

	sub2, err := reduce.Reduce(sub, roots2, given2)
	require.NoError(t, err)
	assert.Equal(t, sub.NumVars(), sub2.NumVars())
	assert.Equal(t, sub.NumModels(), sub2.NumModels())
	for i := 0; i < sub.NumVars(); i++ {
		assert.Len(t, sub2.Var(i).Providers, len(sub.Var(i).Providers))
	}
}

func TestReduce_PrunesUnreachableNodes(t *testing.T) {
	b := builder.New()
	x, _ := b.AddVariable(0, 8, "x")
	y, _ := b.AddVariable(0, 8, "y")
	unrelated, _ := b.AddVariable(0, 8, "unrelated")

	m, _ := b.AddModel(0, 1, 1, "f")
	require.NoError(t, b.AddParam(m, x, builder.IdentMap()))
	require.NoError(t, b.AddReturn(m, y, builder.IdentMap()))

	other, _ := b.AddModel(0, 1, 1, "g")
	require.NoError(t, b.AddReturn(other, unrelated, builder.IdentMap()))

	g, err := b.Build()
	require.NoError(t, err)

	sub, err := reduce.Reduce(g, []int{int(y)}, []int{int(x)})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NumVars())
	assert.Equal(t, 1, sub.NumModels())
}
