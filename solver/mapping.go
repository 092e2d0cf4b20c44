package solver

import (
	"github.com/katalvlaran/fhk/core"
	"github.com/katalvlaran/fhk/fhkerr"
)

// resolveForwardSubset turns model instance minst into the subset of
// variable instances m reaches, in the same direction Edge.Map is always
// stored (model -> variable): used for a model's params, returns and
// checks.
func (s *Solver) resolveForwardSubset(m core.Mapping, minst uint32) (core.Subset, error) {
	switch m.Kind {
	case core.MapIdent:
		return core.NewSingleton(minst), nil
	case core.MapSpace:
		n, err := s.shapeOf(m.TargetGroup)
		if err != nil {
			return 0, err
		}
		return core.NewRange(0, uint32(n)), nil
	case core.MapUser:
		key := mapCacheKey{userIdx: m.UserIndex, inst: minst}
		if ss, ok := s.mapFwd[key]; ok {
			return ss, nil
		}
		s.yield(Yield{Kind: MapCall, Map: MapCallInfo{UserIndex: m.UserIndex, Instance: minst}})
		if ss, ok := s.mapFwd[key]; ok {
			return ss, nil
		}
		return 0, invalErr(fhkerr.Map, "host did not resolve the mapping before resuming")
	default:
		return 0, invalidMapKind(int(m.Kind))
	}
}

// inverseCandidates turns variable instance j, reached through provider
// edge e, into the subset of model instances that could provide it -- the
// reverse of resolveForwardSubset, needed because a Variable's Providers
// list carries the same forward Mapping its source model's Return edge
// does.
func (s *Solver) inverseCandidates(e core.Edge, j uint32) (core.Subset, error) {
	m := e.Map
	switch m.Kind {
	case core.MapIdent:
		return core.NewSingleton(j), nil
	case core.MapSpace:
		mi := e.Target.ModelIndex()
		n, err := s.shapeOf(s.g.ModelAt(mi).Group)
		if err != nil {
			return 0, err
		}
		return core.NewRange(0, uint32(n)), nil
	case core.MapUser:
		key := mapCacheKey{userIdx: m.UserIndex, inst: j}
		if ss, ok := s.mapInv[key]; ok {
			return ss, nil
		}
		s.yield(Yield{Kind: MapCallInverse, Map: MapCallInfo{UserIndex: m.UserIndex, Instance: j}})
		if ss, ok := s.mapInv[key]; ok {
			return ss, nil
		}
		return 0, invalErr(fhkerr.Map, "host did not resolve the inverse mapping before resuming")
	default:
		return 0, invalidMapKind(int(m.Kind))
	}
}
