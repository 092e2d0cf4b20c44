package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fhk/core"
)

var costInf = float32(math.Inf(1))

// selectChain picks the cheapest finite-cost provider for variable xi's
// instance j and records it on xi's varState, returning that cost. It is a
// no-op returning cost 0 for a given variable -- a given instance's value
// comes from Give/GiveAll, not a chain.
//
// Unlike the original's explicit-stack, β-pruned two-best scan, this always
// computes every candidate's exact cost and keeps the minimum; see doc.go.
// depth is capped at maxChainDepth to keep the fixed search-depth contract
// even though Go's goroutine stack does not itself need the bound.
func (s *Solver) selectChain(xi int, j uint32, depth int) (cost float32, overflow bool, err error) {
	x := s.g.Var(xi)
	if x.Given() {
		return 0, false, nil
	}

	vs, err := s.ensureVarState(xi)
	if err != nil {
		return 0, false, err
	}
	if vs.mark[j] {
		return costInf, true, nil
	}
	if vs.done[j] {
		return vs.cost[j], false, nil
	}
	if depth >= maxChainDepth {
		return 0, false, depthErr(xi, j)
	}

	vs.mark[j] = true
	defer func() { vs.mark[j] = false }()

	best := costInf
	bestEdge := -1
	var bestInst uint32

	for ei, e := range x.Providers {
		cands, cerr := s.inverseCandidates(e, j)
		if cerr != nil {
			return 0, false, cerr
		}
		mi := e.Target.ModelIndex()
		var innerErr error
		core.Each(cands, s.Table(), func(minst uint32) bool {
			c, ovf, merr := s.modelCost(mi, minst, depth+1)
			if merr != nil {
				innerErr = merr
				return false
			}
			if !ovf && c < best {
				best = c
				bestEdge = ei
				bestInst = minst
			}
			return true
		})
		if innerErr != nil {
			return 0, false, innerErr
		}
	}

	// No candidate reached a finite cost. Since a computed variable always
	// has at least one provider (Given() already filtered the zero-
	// provider case), this happens when every candidate bottomed out in a
	// cycle or no provider edge mapped j to any model instance -- surface it
	// as overflow, not a hard error, so a
	// caller higher up the search that has an alternative escape route can
	// still find one. Only the top-level request loop, which has no
	// such alternative to fall back on, turns a lingering overflow into a
	// CHAIN error.
	if bestEdge < 0 {
		return costInf, true, nil
	}

	vs.done[j] = true
	vs.cost[j] = best
	vs.chainIdx[j] = int32(bestEdge)
	vs.chainM[j] = bestInst
	if s.trace != nil {
		mi := x.Providers[bestEdge].Target.ModelIndex()
		fmt.Fprintf(s.trace, "chain %s:%d <- %s:%d cost=%g\n",
			s.g.VarName(xi), j, s.g.ModelName(mi), bestInst, best)
	}
	return best, false, nil
}

// modelCost returns the exact cost of model mi's instance minst: the
// model's affine cost over the sum of its computed params' per-subset max
// cost (the original's p_ssmax), plus C times the total penalty of any
// failed shadow check.
func (s *Solver) modelCost(mi int, minst uint32, depth int) (cost float32, overflow bool, err error) {
	ms, err := s.ensureModelState(mi)
	if err != nil {
		return 0, false, err
	}
	if ms.mark[minst] {
		return costInf, true, nil
	}
	if ms.done[minst] {
		return ms.cost[minst], false, nil
	}
	if depth >= maxChainDepth {
		return 0, false, depthErrModel(mi, minst)
	}

	ms.mark[minst] = true
	defer func() { ms.mark[minst] = false }()

	m := s.g.ModelAt(mi)
	var sum float32
	for _, e := range m.Params[:m.PComputedParam] {
		ss, serr := s.resolveForwardSubset(e.Map, minst)
		if serr != nil {
			return 0, false, serr
		}
		var maxc float32
		var anyOverflow bool
		var innerErr error
		core.Each(ss, s.Table(), func(inst uint32) bool {
			c, ovf, cerr := s.selectChain(e.Target.VarIndex(), inst, depth+1)
			if cerr != nil {
				innerErr = cerr
				return false
			}
			if ovf {
				anyOverflow = true
				return false
			}
			if c > maxc {
				maxc = c
			}
			return true
		})
		if innerErr != nil {
			return 0, false, innerErr
		}
		if anyOverflow {
			return costInf, true, nil
		}
		sum += maxc
	}

	penalty, perr := s.checkPenalty(m, minst, depth)
	if perr != nil {
		return 0, false, perr
	}
	sum += penalty

	cost = m.Cost(sum)
	ms.done[minst] = true
	ms.cost[minst] = cost
	return cost, false, nil
}

// checkPenalty sums Penalty over every shadow check on model instance
// minst that fails its predicate, materializing a computed check target
// before testing it.
func (s *Solver) checkPenalty(m *core.Model, minst uint32, depth int) (float32, error) {
	var total float32
	for _, c := range m.Checks {
		ss, err := s.resolveForwardSubset(c.Map, minst)
		if err != nil {
			return 0, err
		}
		var innerErr error
		core.Each(ss, s.Table(), func(inst uint32) bool {
			xi := c.Target.VarIndex()
			var val []byte
			if s.g.Var(xi).Given() {
				val, err = s.getGivenValue(xi, inst)
			} else {
				_, ovf, cerr := s.selectChain(xi, inst, depth+1)
				if cerr != nil {
					err = cerr
					return false
				}
				if ovf {
					total += c.Penalty
					return true
				}
				val, err = s.valueOf(xi, inst, depth+1)
			}
			if err != nil {
				innerErr = err
				return false
			}
			if !testPredicate(c.Op, c.Arg, val) {
				total += c.Penalty
			}
			return true
		})
		if innerErr != nil {
			return 0, innerErr
		}
	}
	return total, nil
}
