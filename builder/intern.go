package builder

import "github.com/katalvlaran/fhk/core"

// userMapKey identifies a distinct core.UserMapping: two edges with the same
// source group, target group, and host argument share one UserMapping and
// its resolution cache. arg must be a comparable value;
// a non-comparable arg (slice, map, func) makes interning panic, which is
// the caller's bug to fix, not the builder's to paper over.
type userMapKey struct {
	src, tgt core.GroupIndex
	arg      any
}

// interner assigns stable indices into the emitted Graph.UserMappings table.
type interner struct {
	index map[userMapKey]int
	table []core.UserMapping
}

func newInterner() *interner {
	return &interner{index: make(map[userMapKey]int)}
}

func (it *interner) intern(src, tgt core.GroupIndex, arg any) int {
	key := userMapKey{src: src, tgt: tgt, arg: arg}
	if idx, ok := it.index[key]; ok {
		return idx
	}
	idx := len(it.table)
	it.table = append(it.table, core.UserMapping{SourceGroup: src, TargetGroup: tgt, Arg: arg})
	it.index[key] = idx
	return idx
}

// resolveMapping turns a MappingSpec plus the groups it connects into a
// core.Mapping, interning User mappings as it goes.
func resolveMapping(modelGroup, varGroup core.GroupIndex, spec MappingSpec, it *interner) (core.Mapping, error) {
	switch spec.kind {
	case core.MapIdent:
		if modelGroup != varGroup {
			return core.Mapping{}, ErrIdentGroupMismatch
		}
		return core.Ident(), nil
	case core.MapSpace:
		return core.Space(spec.target), nil
	case core.MapUser:
		idx := it.intern(modelGroup, varGroup, spec.userArg)
		return core.User(modelGroup, idx), nil
	default:
		return core.Mapping{}, ErrMapRangeUnsupported
	}
}
