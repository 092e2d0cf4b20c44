package builder

import "github.com/katalvlaran/fhk/core"

// VarID names a variable within one Builder's accumulated definition, handed
// back by AddVariable and consumed by AddParam/AddReturn/AddCheck. It is not
// the same index space as the emitted core.Graph's variable indices, though
// the two happen to coincide for this implementation (Build never reorders
// variables, only edges) -- callers should still treat VarID as opaque.
type VarID int

// ModelID is VarID's model-side counterpart.
type ModelID int

// MappingSpec describes one edge's mapping before the groups it connects are
// known to be valid (that's checked at Build time), mirroring core.Mapping's
// three kinds without requiring the caller to pre-resolve a UserMapping
// index -- the Builder interns those during Build (intern.go).
type MappingSpec struct {
	kind core.MapKind

	// target is the variable group reached via a Space mapping.
	target core.GroupIndex

	// userArg is opaque host data identifying a User mapping; two edges
	// with the same (source group, target group, userArg) intern to the
	// same core.UserMapping.
	userArg any
}

// IdentMap returns the identity mapping: model instance i reaches variable
// instance i. Source and target groups must coincide; Build rejects an
// IdentMap edge that crosses groups.
func IdentMap() MappingSpec { return MappingSpec{kind: core.MapIdent} }

// SpaceMap returns a mapping from any model instance to the whole of the
// target group.
func SpaceMap(target core.GroupIndex) MappingSpec {
	return MappingSpec{kind: core.MapSpace, target: target}
}

// UserMap returns a host-resolved mapping identified by arg. Two edges
// sharing the same source group, target group, and arg (compared with ==,
// so arg must be a comparable value -- an interned string or integer key,
// not a slice or map) share a single core.UserMapping and its cache.
func UserMap(arg any) MappingSpec { return MappingSpec{kind: core.MapUser, userArg: arg} }

// ShadowSpec describes one check edge's predicate before it is attached to a
// model via AddCheck.
type ShadowSpec struct {
	Op      core.ShadowOp
	Arg     core.ShadowArg
	Penalty float32
}

// defEdge is one accumulated param, return, or check-without-predicate edge:
// which variable, by what mapping.
type defEdge struct {
	varID VarID
	mspec MappingSpec
}

// defShadow is one accumulated check edge: a defEdge plus its predicate.
type defShadow struct {
	edge  defEdge
	op    core.ShadowOp
	arg   core.ShadowArg
	penal float32
}

// defVariable is one accumulated variable definition.
type defVariable struct {
	group core.GroupIndex
	size  uint32
	name  string
}

// defModel is one accumulated model definition.
type defModel struct {
	group   core.GroupIndex
	k, c    float32
	params  []defEdge
	returns []defEdge
	checks  []defShadow
	name    string
}
