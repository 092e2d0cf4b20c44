package reduce

import (
	"fmt"

	"github.com/katalvlaran/fhk/core"
	"github.com/katalvlaran/fhk/fhkerr"
)

type vstate struct {
	given    bool // host will supply this variable directly for this reduction
	mark     bool // on the current search stack (cycle sentinel, like the original's MARK)
	done     bool // bound finalized, lo/hi are valid
	selected bool
	lo, hi   float32

	newIdx    int // -1 until addVar runs
	providers []core.Edge
}

type mstate struct {
	mark     bool
	done     bool
	selected bool
	lo, hi   float32

	newIdx int
}

type reducer struct {
	g  *core.Graph
	vs []vstate
	ms []mstate

	newVars   []core.Variable
	newGiven  []bool // parallel to newVars: final given status, indexed by new index
	newModels []core.Model
	mapIdx    map[int]int // old UserMappings index -> new
	mapTable  []core.UserMapping

	failVar int
	failed  bool
}

// Reduce prunes g to the subgraph reachable from roots, treating every
// variable index in given as supplied directly by the host for this
// particular request (even one that has providers in g). It
// returns fhkerr.Status{Where: fhkerr.Reduce, Code: fhkerr.CHAIN} if some
// variable needed by a root has neither a provider nor is marked given.
//
// The returned graph is densely renumbered in the order the selection first
// reaches each node, so roots[0] becomes variable 0; the old-to-new index
// map is not returned.
func Reduce(g *core.Graph, roots []int, given []int) (*core.Graph, error) {
	r := &reducer{
		g:      g,
		vs:     make([]vstate, g.NumVars()),
		ms:     make([]mstate, g.NumModels()),
		mapIdx: make(map[int]int),
	}
	for i := range r.vs {
		r.vs[i].newIdx = -1
	}
	for i := range r.ms {
		r.ms[i].newIdx = -1
	}
	for _, xi := range given {
		r.vs[xi].given = true
	}

	for _, xi := range roots {
		r.selectVar(xi)
		if r.failed {
			break
		}
	}
	if r.failed {
		x := r.failVar
		return nil, fmt.Errorf("reduce: %w", fhkerr.New(fhkerr.Reduce, fhkerr.CHAIN,
			fmt.Sprintf("variable %s has no provider and is not given", g.VarName(x))).
			WithInfo1(fhkerr.TagVar, uint32(x)))
	}

	for xi := range r.vs {
		if r.vs[xi].newIdx < 0 {
			continue
		}
		r.newVars[r.vs[xi].newIdx].Providers = r.vs[xi].providers
	}

	return &core.Graph{
		Variables:    r.newVars,
		Models:       r.newModels,
		NumGroups:    g.NumGroups,
		UserMappings: r.mapTable,
	}, nil
}

func nonEmpty(m core.Mapping) bool {
	return m.Kind == core.MapIdent || m.Kind == core.MapSpace
}

// searchVarRoot computes xi's overall bound and, separately, the per-edge
// bound against each of its provider models -- selectVar needs the latter
// to decide which providers to keep. Unlike searchVar it never memoizes on
// vstate: it must only be called once per variable, from selectVar, which
// is itself guarded by vs.selected.
func (r *reducer) searchVarRoot(xi int) (bound, []bound) {
	vs := &r.vs[xi]
	vs.mark = true
	x := r.g.Var(xi)
	edgeBounds := make([]bound, len(x.Providers))
	b := bound{lo: inf, hi: inf}
	for i, e := range x.Providers {
		mb := r.searchModel(e.Target.ModelIndex(), b.hi)
		if !nonEmpty(e.Map) {
			mb.hi = inf
		}
		b = minBound(b, mb)
		edgeBounds[i] = mb
	}
	vs.mark = false
	return b, edgeBounds
}

func (r *reducer) searchVar(xi int, beta float32) bound {
	vs := &r.vs[xi]
	if vs.done {
		return bound{lo: vs.lo, hi: vs.hi}
	}
	if vs.given {
		return bound{}
	}
	if vs.mark {
		return bound{lo: inf, hi: inf, overflow: true}
	}
	if beta <= 0 {
		return bound{lo: 0, hi: inf, overflow: true}
	}

	vs.mark = true
	x := r.g.Var(xi)
	b := bound{lo: inf, hi: inf}
	for _, e := range x.Providers {
		mb := r.searchModel(e.Target.ModelIndex(), beta)
		if !nonEmpty(e.Map) {
			mb.hi = inf
		}
		b = minBound(b, mb)
		if mb.hi < beta {
			beta = mb.hi
		}
	}
	vs.mark = false
	if !b.overflow {
		vs.done = true
		vs.lo, vs.hi = b.lo, b.hi
	}
	return b
}

func (r *reducer) searchModel(mi int, beta float32) bound {
	ms := &r.ms[mi]
	if ms.done {
		return bound{lo: ms.lo, hi: ms.hi}
	}
	m := r.g.ModelAt(mi)
	betaS := m.InverseCost(beta)
	if betaS <= 0 {
		return bound{lo: m.K, hi: inf, overflow: true}
	}

	boundS := bound{}
	for _, e := range m.Params[:m.PComputedParam] {
		xb := r.searchVar(e.Target.VarIndex(), betaS-boundS.lo)
		if !nonEmpty(e.Map) {
			xb.lo = 0
		}
		boundS = addBound(boundS, xb)
	}

	result := bound{lo: m.Cost(boundS.lo), hi: m.Cost(boundS.hi), overflow: boundS.overflow}
	if !boundS.overflow {
		var penalty float32
		for _, c := range m.Checks {
			penalty += c.Penalty
		}
		result.hi += m.C * penalty
		ms.done = true
		ms.lo, ms.hi = result.lo, result.hi
	}
	return result
}

// selectVar marks xi and its cheapest-capable providers for inclusion in
// the emitted subgraph, following fhk/reduce.c's r_selectv three-pass
// selection: (1) compute beta, the best achievable high bound; (2) keep
// every provider whose low bound beats beta, noting whether one of them
// already attains high==beta; (3) if none does, the pruning was too
// aggressive for this variable alone -- add back exactly one provider whose
// high bound equals beta, which is guaranteed to exist and keeps the overall
// bound correct even across a cycle.
func (r *reducer) selectVar(xi int) {
	if r.failed || r.vs[xi].selected {
		return
	}
	r.vs[xi].selected = true
	r.addVar(xi)

	if r.vs[xi].given {
		return
	}
	x := r.g.Var(xi)
	if len(x.Providers) == 0 {
		r.failed = true
		r.failVar = xi
		return
	}

	_, edgeBounds := r.searchVarRoot(xi)
	beta := bound{lo: inf, hi: inf}
	for _, mb := range edgeBounds {
		beta = minBound(beta, mb)
	}

	haveMin := false
	for i, e := range x.Providers {
		mb := edgeBounds[i]
		if mb.lo >= beta.hi {
			continue
		}
		if mb.hi == beta.hi {
			haveMin = true
		}
		r.addProvider(xi, e)
	}
	if haveMin {
		return
	}
	for i, e := range x.Providers {
		if edgeBounds[i].hi == beta.hi {
			r.addProvider(xi, e)
			return
		}
	}
}

func (r *reducer) addProvider(xi int, e core.Edge) {
	mi := e.Target.ModelIndex()
	m := r.addMap(e.Map)
	r.vs[xi].providers = append(r.vs[xi].providers, core.Edge{
		Target: core.ModelRef(r.selectModel(mi)),
		Map:    m,
		Aux:    e.Aux,
	})
}

// selectModel marks mi and every node it touches for inclusion, returning
// mi's new index.
func (r *reducer) selectModel(mi int) int {
	if r.ms[mi].selected {
		return r.ms[mi].newIdx
	}
	r.ms[mi].selected = true
	newIdx := r.addModel(mi)
	m := r.g.ModelAt(mi)

	params := make([]core.Edge, len(m.Params))
	for i, e := range m.Params {
		xi := e.Target.VarIndex()
		r.selectVar(xi)
		if r.failed {
			return newIdx
		}
		params[i] = core.Edge{Target: core.VarRef(r.vs[xi].newIdx), Map: r.addMap(e.Map), Aux: e.Aux}
	}

	checks := make([]core.Shadow, len(m.Checks))
	for i, c := range m.Checks {
		xi := c.Target.VarIndex()
		r.selectVar(xi)
		if r.failed {
			return newIdx
		}
		checks[i] = core.Shadow{
			Target:  core.VarRef(r.vs[xi].newIdx),
			Map:     r.addMap(c.Map),
			Op:      c.Op,
			Arg:     c.Arg,
			Penalty: c.Penalty,
		}
	}

	returns := make([]core.Edge, len(m.Returns))
	for i, e := range m.Returns {
		xi := e.Target.VarIndex()
		r.addVar(xi)
		returns[i] = core.Edge{Target: core.VarRef(r.vs[xi].newIdx), Map: r.addMap(e.Map), Aux: e.Aux}
	}

	givenVar := func(vi int) bool { return r.newGiven[vi] }
	reorderedParams, pBoundary := core.PartitionEdges(params, givenVar)
	reorderedChecks, cBoundary := core.PartitionShadows(checks, givenVar)

	r.newModels[newIdx] = core.Model{
		Group:          m.Group,
		K:              m.K,
		C:              m.C,
		Ki:             m.Ki,
		Ci:             m.Ci,
		Params:         reorderedParams,
		PComputedParam: pBoundary,
		Returns:        returns,
		Checks:         reorderedChecks,
		PComputedCheck: cBoundary,
		NoReturnBuffer: m.NoReturnBuffer,
	}
	return newIdx
}

func (r *reducer) addVar(xi int) int {
	vs := &r.vs[xi]
	if vs.newIdx >= 0 {
		return vs.newIdx
	}
	vs.newIdx = len(r.newVars)
	r.newVars = append(r.newVars, core.Variable{Group: r.g.Var(xi).Group, Size: r.g.Var(xi).Size})
	r.newGiven = append(r.newGiven, vs.given)
	return vs.newIdx
}

func (r *reducer) addModel(mi int) int {
	ms := &r.ms[mi]
	if ms.newIdx >= 0 {
		return ms.newIdx
	}
	ms.newIdx = len(r.newModels)
	r.newModels = append(r.newModels, core.Model{})
	return ms.newIdx
}

func (r *reducer) addMap(m core.Mapping) core.Mapping {
	if m.Kind != core.MapUser {
		return m
	}
	newIdx, ok := r.mapIdx[m.UserIndex]
	if !ok {
		newIdx = len(r.mapTable)
		r.mapTable = append(r.mapTable, r.g.UserMappings[m.UserIndex])
		r.mapIdx[m.UserIndex] = newIdx
	}
	m.UserIndex = newIdx
	return m
}
