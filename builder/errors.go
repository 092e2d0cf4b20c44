// errors.go — sentinel errors for the builder package.
//
// Error policy: only package-level sentinel
// variables are exposed; callers branch with errors.Is. Sentinels are never
// wrapped with formatted strings at the definition site; call sites attach
// context with fmt.Errorf's %w instead.
package builder

import "errors"

// ErrIndexOverflow indicates a variable or model count exceeds core's packed
// index range (core.MaxIndex).
var ErrIndexOverflow = errors.New("builder: index overflow")

// ErrEdgeOverflow indicates an edge list exceeds one of core's edge limits:
// a model's params plus checks, or its returns (core.MaxEdgesPerModel), or a
// variable's providers (core.MaxBackwardEdges) or consumers
// (core.MaxForwardEdges).
var ErrEdgeOverflow = errors.New("builder: edge overflow")

// ErrInvalidGroup indicates a GroupIndex argument is negative.
var ErrInvalidGroup = errors.New("builder: invalid group")

// ErrUnknownVar indicates a VarID argument does not name a variable added to
// this Builder.
var ErrUnknownVar = errors.New("builder: unknown variable")

// ErrUnknownModel indicates a ModelID argument does not name a model added
// to this Builder.
var ErrUnknownModel = errors.New("builder: unknown model")

// ErrInvalidCost indicates a model's cost coefficients violate the
// monotone-cost invariant: K must be >= 0 and C must be >= 1.
var ErrInvalidCost = errors.New("builder: invalid cost coefficients")

// ErrDuplicateReturn indicates a model returns the same variable twice,
// which would make NoReturnBuffer's single-return identity check ambiguous.
var ErrDuplicateReturn = errors.New("builder: duplicate return")

// ErrMapRangeUnsupported indicates a MappingSpec requested the range-mapping
// kind, which the original stubs but never uses and this port leaves out.
var ErrMapRangeUnsupported = errors.New("builder: range mappings are not implemented")

// ErrIdentGroupMismatch indicates an IdentMap edge connects a model and a
// variable in different groups; identity only makes sense within one group.
var ErrIdentGroupMismatch = errors.New("builder: ident mapping across groups")
