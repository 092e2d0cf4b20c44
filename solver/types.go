package solver

import "github.com/katalvlaran/fhk/core"

// Request asks the solver to resolve Var over Subset and, if Buf is set,
// scatter the resolved values into it in subset-iteration order. A Buf
// entry's length must be at least Size(Subset)*graph.Var(Var).Size bytes;
// a nil Buf means the caller only wants the values to become available
// (e.g. as another request's dependency) without a scatter copy.
type Request struct {
	Var    int
	Subset core.Subset
	Buf    []byte
}

// Kind distinguishes the reasons Continue can suspend: shape, mapping,
// given-value and model-call requests, plus the two terminal states.
type Kind uint8

const (
	// OK means the solve finished; every request's Buf (if any) has been
	// filled in and no further Continue call does anything new.
	OK Kind = iota
	// Shape asks the host to report a group's instance count via Shape.
	Shape
	// MapCall asks the host to resolve a user mapping forward (model
	// instance -> variable subset) via ResolveMap.
	MapCall
	// MapCallInverse asks the host to resolve a user mapping backward
	// (variable instance -> candidate model-instance subset) via
	// ResolveMap.
	MapCallInverse
	// GivenValue asks the host to supply one given variable instance's
	// value via Give.
	GivenValue
	// ModelCall asks the host to run one model instance and write its
	// results into the buffers named by ModelCallInfo.Returns.
	ModelCall
	// Err means the solve failed irrecoverably; every subsequent Continue
	// call re-yields the same Yield.
	Err
)

// MapCallInfo describes a pending user-mapping resolution.
type MapCallInfo struct {
	UserIndex int
	Instance  uint32
}

// GivenInfo describes a pending given-value request.
type GivenInfo struct {
	VarIndex int
	Instance uint32
}

// Arg is one parameter or return slot of a pending model call: Buf is the
// backing storage (Count*graph.Var(target).Size bytes, laid out
// instance-major in subset-iteration order) and Count is how many instances
// it holds.
type Arg struct {
	Buf   []byte
	Count int
}

// ModelCallInfo describes a pending model call: Params and Checks are
// ready to read, Returns are ready to be written into by the host before it
// calls Continue again.
type ModelCallInfo struct {
	// ModelIndex names the model in core's shared index space, as
	// core.ModelRef returns it (negative); core.NodeIndex(ModelIndex).ModelIndex()
	// recovers the index Graph.ModelAt takes.
	ModelIndex int
	Instance   uint32
	Params     []Arg
	Checks     []Arg
	Returns    []Arg
}

// Yield is what Continue returns: exactly one of the Info fields is
// meaningful, selected by Kind.
type Yield struct {
	Kind  Kind
	Shape core.GroupIndex
	Map   MapCallInfo
	Given GivenInfo
	Model ModelCallInfo
	Err   error
}
