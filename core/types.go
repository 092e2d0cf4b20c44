package core

// NodeIndex addresses either a Variable or a Model in one shared, signed
// index space: non-negative values are variable indices, negative values
// are model indices. Use VarRef/
// ModelRef to construct one and IsVar/IsModel/VarIndex/ModelIndex to read it
// back; never compare the raw int against a variable index directly.
type NodeIndex int32

// VarRef returns the NodeIndex naming variable i.
func VarRef(i int) NodeIndex { return NodeIndex(i) }

// ModelRef returns the NodeIndex naming model i.
func ModelRef(i int) NodeIndex { return NodeIndex(-i - 1) }

// IsVar reports whether n names a variable.
func (n NodeIndex) IsVar() bool { return n >= 0 }

// IsModel reports whether n names a model.
func (n NodeIndex) IsModel() bool { return n < 0 }

// VarIndex returns the variable index n names. Calling it on a model
// reference is a programming error.
func (n NodeIndex) VarIndex() int {
	if n < 0 {
		panic("core: VarIndex called on a model reference")
	}
	return int(n)
}

// ModelIndex returns the model index n names. Calling it on a variable
// reference is a programming error.
func (n NodeIndex) ModelIndex() int {
	if n >= 0 {
		panic("core: ModelIndex called on a variable reference")
	}
	return int(-n - 1)
}

// Variable carries a group tag, a value byte size, and the two edge lists
// that connect it to its candidate provider models (Providers, backward)
// and the models that consume it as a parameter or check (Consumers,
// forward). A variable is given iff it has no providers.
type Variable struct {
	Group GroupIndex
	Size  uint32

	// Providers lists the models that can produce this variable's value,
	// in model definition order as left by the builder/reducer.
	Providers []Edge
	// Consumers lists the models that use this variable as a parameter.
	// Package builder fills it; subgraphs emitted by package reduce leave
	// it empty. The original lays this out immediately followed by its
	// providers' own params/checks for prefetch locality; that trick
	// doesn't carry over to a Go slice-of-structs representation and is
	// not reproduced here.
	Consumers []Edge
}

// Given reports whether x has no provider models and must be supplied by
// the host.
func (x *Variable) Given() bool { return len(x.Providers) == 0 }

// Model carries group tag, affine cost coefficients, and param/return/check
// edges. Params and checks are partitioned so that edges whose target is a
// computed variable precede edges whose target is given; PComputedParam and
// PComputedCheck are the partition boundaries.
type Model struct {
	Group GroupIndex

	// K, C are the affine cost coefficients: cost(S) = K + C*S. The
	// builder enforces K >= 0, C >= 1, so cost is monotone nondecreasing.
	K, C float32
	// Ki, Ci are the precomputed inverses Ki = -K/C, Ci = 1/C, used to
	// convert a cost cutoff back into a parameter-sum cutoff.
	Ki, Ci float32

	Params         []Edge
	PComputedParam int

	Returns []Edge

	Checks         []Shadow
	PComputedCheck int

	// NoReturnBuffer is set when the model has exactly one return whose
	// mapping is identity: the solver may write its result straight into
	// the consumer's value slot and skip allocating a return buffer (the
	// original's norf flag).
	NoReturnBuffer bool
}

// Cost returns the model's cost given a parameter-sum S.
func (m *Model) Cost(s float32) float32 { return m.K + m.C*s }

// InverseCost returns the parameter-sum budget that a cost cutoff allows:
// InverseCost(Cost(s)) == s up to floating-point rounding.
func (m *Model) InverseCost(cost float32) float32 { return m.Ki + m.Ci*cost }

// Graph is the immutable, post-build constraint graph: a flat bipartite
// structure of Variables and Models connected by Edges, plus the group
// count and the user-defined mappings referenced by Edge.Map. It is
// produced once by package builder's Build and never mutated again, so it
// carries no locks -- every reader shares the same backing slices for the
// Graph's whole lifetime.
type Graph struct {
	Variables    []Variable
	Models       []Model
	NumGroups    int
	UserMappings []UserMapping

	varNames   []string
	modelNames []string
}

// Var returns a pointer to variable i's data.
func (g *Graph) Var(i int) *Variable { return &g.Variables[i] }

// ModelAt returns a pointer to model i's data.
func (g *Graph) ModelAt(i int) *Model { return &g.Models[i] }

// NumVars returns the number of variables in the graph.
func (g *Graph) NumVars() int { return len(g.Variables) }

// NumModels returns the number of models in the graph.
func (g *Graph) NumModels() int { return len(g.Models) }

// SetNames attaches debug symbol tables used by error messages and tracing
// (ported from the original's fhk_set_dsym/dv() trace macros). Either slice
// may be nil.
func (g *Graph) SetNames(vars, models []string) {
	g.varNames = vars
	g.modelNames = models
}

// VarName returns variable i's debug name, or a generic placeholder if no
// name table was set.
func (g *Graph) VarName(i int) string {
	if i >= 0 && i < len(g.varNames) && g.varNames[i] != "" {
		return g.varNames[i]
	}
	return "var"
}

// ModelName returns model i's debug name, or a generic placeholder if no
// name table was set.
func (g *Graph) ModelName(i int) string {
	if i >= 0 && i < len(g.modelNames) && g.modelNames[i] != "" {
		return g.modelNames[i]
	}
	return "model"
}
