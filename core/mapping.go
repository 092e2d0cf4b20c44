package core

// GroupIndex identifies an instance space shared by a set of variables and
// models: a group tag in [0, G), where G is Graph.NumGroups.
type GroupIndex int32

// MapKind distinguishes the three mapping shapes a model instance can use to
// reach a set of variable instances.
type MapKind uint8

const (
	// MapUser is a host-resolved mapping: the solver yields a MapCall (or
	// MapCallInverse) suspension and caches whatever the host writes back.
	MapUser MapKind = iota
	// MapIdent maps model instance i to the singleton variable instance {i}.
	// Both groups must coincide; no host round-trip is ever needed.
	MapIdent
	// MapSpace maps every model instance to the whole target group,
	// independent of which instance is asking.
	MapSpace
)

// Mapping is the contract that turns "model instance i of group Gm" into a
// Subset of variable instances of group Gv. The original packs this into 30
// bits of a uint32 map field for its C host; with no C ABI to satisfy,
// Mapping is a plain struct instead of a packed integer -- bit-exactness is
// reserved for Subset, where the encoding itself is load-bearing.
type Mapping struct {
	Kind MapKind

	// SourceGroup is the model's group. Meaningful for MapUser, where it
	// selects which half of the user mapping's cache (forward vs. source
	// group shape) applies.
	SourceGroup GroupIndex

	// TargetGroup is the variable group reached via MapSpace.
	TargetGroup GroupIndex

	// UserIndex indexes Graph.UserMappings for MapUser edges.
	UserIndex int
}

// Ident returns the identity mapping.
func Ident() Mapping { return Mapping{Kind: MapIdent} }

// Space returns a mapping from any model instance to the whole of target.
func Space(target GroupIndex) Mapping { return Mapping{Kind: MapSpace, TargetGroup: target} }

// User returns a host-resolved mapping. userIndex indexes Graph.UserMappings.
func User(source GroupIndex, userIndex int) Mapping {
	return Mapping{Kind: MapUser, SourceGroup: source, UserIndex: userIndex}
}

// UserMapping records the pair of groups a user-defined mapping connects.
// Two models sharing source group, target group and host argument intern to
// the same UserMapping; its inverse is reached through the same index with
// direction flipped at the solver boundary.
type UserMapping struct {
	SourceGroup GroupIndex
	TargetGroup GroupIndex
	// Arg is opaque host data identifying the mapping to the callback that
	// resolves it; the builder only uses it to decide whether two edges can
	// share a UserMapping (same Arg, same groups -> same index).
	Arg any
}
