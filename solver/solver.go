package solver

import (
	"io"

	"github.com/katalvlaran/fhk/core"
	"github.com/katalvlaran/fhk/fhkerr"
	"github.com/katalvlaran/fhk/internal/arena"
)

const maxChainDepth = 32

// varState is one variable's per-instance search and value state, sized to
// its group's shape the first time anything touches it. It plays the role
// of the original's V->v_ss / V->v_flags / V->v_vals arrays.
type varState struct {
	buf      []byte // shape*Size bytes; the variable's value storage
	hasValue []bool
	done     []bool
	mark     []bool
	cost     []float32
	chainIdx []int32  // index into Variable.Providers, -1 until done
	chainM   []uint32 // chosen provider's model instance

	givenSet []bool
	allGiven bool
}

// modelState is one model's per-instance search and return-value state,
// mirroring the original's M->m_ss / M->m_vals / M->retbuf.
type modelState struct {
	done    []bool
	mark    []bool
	cost    []float32
	returns [][][]byte // [instance][return edge index]

	// called marks which instances have already yielded a ModelCall and
	// had their Returns buffers filled in; a model instance is only ever
	// called once, even if several variables share it as a provider.
	called []bool
}

// Solver resolves a set of Requests against a core.Graph, suspending back
// to the caller via Continue whenever it needs shape, mapping, given-value
// or model-call input it cannot supply itself.
type Solver struct {
	g     *core.Graph
	table core.RangeTable
	reqs  []Request

	shapes map[core.GroupIndex]int

	vars   map[int]*varState
	models map[int]*modelState

	mapFwd map[mapCacheKey]core.Subset
	mapInv map[mapCacheKey]core.Subset

	scratch *arena.ScratchPool

	yieldCh  chan Yield
	resumeCh chan struct{}
	done     chan struct{}
	started  bool
	closed   bool
	final    *Yield

	trace io.Writer
}

// Option customizes a Solver at construction. Like the builder's options,
// these are construction knobs only, never solve semantics.
type Option func(*Solver)

// WithTrace logs every chain-selection decision (which provider won, at
// what cost) to w, using whatever debug names the graph carries via
// SetNames. Costs nothing when unset.
func WithTrace(w io.Writer) Option {
	return func(s *Solver) { s.trace = w }
}

type mapCacheKey struct {
	userIdx int
	inst    uint32
}

// New constructs a Solver for g over reqs. No work happens until the first
// Continue call.
func New(g *core.Graph, reqs []Request, opts ...Option) *Solver {
	s := &Solver{
		g:        g,
		reqs:     reqs,
		shapes:   make(map[core.GroupIndex]int),
		vars:     make(map[int]*varState),
		models:   make(map[int]*modelState),
		mapFwd:   make(map[mapCacheKey]core.Subset),
		mapInv:   make(map[mapCacheKey]core.Subset),
		scratch:  arena.NewScratchPool(),
		yieldCh:  make(chan Yield),
		resumeCh: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the RangeTable a host must use to build any complex
// (multi-range) Subset it hands back to the solver via ResolveMap, since a
// complex Subset is only meaningful relative to the table that produced it.
func (s *Solver) Table() *core.RangeTable { return &s.table }

// Continue resumes the solve until it either needs host input or finishes.
// The first call starts the search; every Yield but OK and Err must be
// answered (Shape/Give/GiveAll/UseMem/ResolveMap) before the next call, and
// a callback serving a Yield must never itself call Continue.
func (s *Solver) Continue() Yield {
	if s.final != nil {
		return *s.final
	}
	if !s.started {
		s.started = true
		go s.run()
	} else {
		s.resumeCh <- struct{}{}
	}
	y := <-s.yieldCh
	if y.Kind == OK || y.Kind == Err {
		final := y
		s.final = &final
	}
	return y
}

// Close cancels an in-flight solve: the solve goroutine unwinds the next
// time it would suspend, and every later Continue returns a terminal Err
// yield. Dropping a Solver without Close after OK or Err is fine (the
// goroutine has already exited); Close is only needed to abandon a solve
// mid-yield without leaking its goroutine. No partial state escapes: the
// solver's whole search state dies with it.
func (s *Solver) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	if s.final == nil {
		y := Yield{Kind: Err, Err: invalErr(fhkerr.Solver, "solver closed")}
		s.final = &y
	}
}

// cancelled unwinds the solve goroutine when Close fires mid-suspension.
type cancelled struct{}

// yield is called only from the solve goroutine: it hands a non-terminal
// Yield to whoever is blocked in Continue and waits for the matching
// resume signal.
func (s *Solver) yield(y Yield) {
	select {
	case s.yieldCh <- y:
	case <-s.done:
		panic(cancelled{})
	}
	select {
	case <-s.resumeCh:
	case <-s.done:
		panic(cancelled{})
	}
}

func (s *Solver) finish(y Yield) {
	select {
	case s.yieldCh <- y:
	case <-s.done:
	}
}

func (s *Solver) run() {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(cancelled); ok {
				return
			}
			s.finish(Yield{Kind: Err, Err: fhkerr.New(fhkerr.Solver, fhkerr.INVAL, "internal solver panic")})
		}
	}()

	for _, r := range s.reqs {
		if r.Subset.IsEmpty() {
			continue
		}
		var failErr error
		core.Each(r.Subset, &s.table, func(inst uint32) bool {
			x := s.g.Var(r.Var)
			if x.Given() {
				return true
			}
			_, overflow, err := s.selectChain(r.Var, inst, 0)
			if err != nil {
				failErr = err
				return false
			}
			if overflow {
				failErr = chainErr(r.Var, inst)
				return false
			}
			return true
		})
		if failErr != nil {
			s.finish(Yield{Kind: Err, Err: failErr})
			return
		}
	}

	for _, r := range s.reqs {
		if r.Subset.IsEmpty() {
			continue
		}
		size := int(s.g.Var(r.Var).Size)
		idx := 0
		var failErr error
		core.Each(r.Subset, &s.table, func(inst uint32) bool {
			val, err := s.valueOf(r.Var, inst, 0)
			if err != nil {
				failErr = err
				return false
			}
			if r.Buf != nil {
				off := idx * size
				copy(r.Buf[off:off+size], val)
			}
			idx++
			return true
		})
		if failErr != nil {
			s.finish(Yield{Kind: Err, Err: failErr})
			return
		}
	}

	s.finish(Yield{Kind: OK})
}

func newVarState(x *core.Variable, n int, buf []byte) *varState {
	if buf == nil {
		buf = make([]byte, n*int(x.Size))
	}
	vs := &varState{
		buf:      buf,
		hasValue: make([]bool, n),
		done:     make([]bool, n),
		mark:     make([]bool, n),
		cost:     make([]float32, n),
		chainIdx: make([]int32, n),
		chainM:   make([]uint32, n),
		givenSet: make([]bool, n),
	}
	for i := range vs.chainIdx {
		vs.chainIdx[i] = -1
	}
	return vs
}

// ensureVarState lazily sizes xi's per-instance arrays to its group's
// shape, yielding a Shape request if the host hasn't supplied one yet. It
// may only be called from the solve goroutine (it can yield); host-facing
// entry points go through hostVarState instead.
func (s *Solver) ensureVarState(xi int) (*varState, error) {
	if vs, ok := s.vars[xi]; ok {
		return vs, nil
	}
	x := s.g.Var(xi)
	n, err := s.shapeOf(x.Group)
	if err != nil {
		return nil, err
	}
	vs := newVarState(x, n, nil)
	s.vars[xi] = vs
	return vs, nil
}

// hostVarState is ensureVarState for calls arriving from the host side of
// the suspension boundary (Give, GiveAll, UseMem). It must never yield --
// nothing is waiting in Continue to receive one -- so an unknown shape is an
// INVAL error telling the host to call Shape for the group first.
func (s *Solver) hostVarState(xi int) (*varState, error) {
	if vs, ok := s.vars[xi]; ok {
		return vs, nil
	}
	x := s.g.Var(xi)
	n, ok := s.shapes[x.Group]
	if !ok {
		return nil, shapeErr(fhkerr.INVAL, int(x.Group), "shape not set; call Shape before supplying values")
	}
	vs := newVarState(x, n, nil)
	s.vars[xi] = vs
	return vs, nil
}

func (s *Solver) ensureModelState(mi int) (*modelState, error) {
	if ms, ok := s.models[mi]; ok {
		return ms, nil
	}
	m := s.g.ModelAt(mi)
	n, err := s.shapeOf(m.Group)
	if err != nil {
		return nil, err
	}
	ms := &modelState{
		done:    make([]bool, n),
		mark:    make([]bool, n),
		cost:    make([]float32, n),
		returns: make([][][]byte, n),
		called:  make([]bool, n),
	}
	s.models[mi] = ms
	return ms, nil
}

func (s *Solver) shapeOf(group core.GroupIndex) (int, error) {
	if n, ok := s.shapes[group]; ok {
		return n, nil
	}
	s.yield(Yield{Kind: Shape, Shape: group})
	n, ok := s.shapes[group]
	if !ok {
		return 0, shapeErr(fhkerr.INVAL, int(group), "host did not supply a shape before resuming")
	}
	return n, nil
}

// Shape records group's instance count. Setting the same group to a
// different value a second time is a REWRITE error.
func (s *Solver) Shape(group core.GroupIndex, n int) error {
	if n < 0 {
		return shapeErr(fhkerr.INVAL, int(group), "negative shape")
	}
	if existing, ok := s.shapes[group]; ok {
		if existing != n {
			return shapeErr(fhkerr.REWRITE, int(group), "shape already set to a different value")
		}
		return nil
	}
	s.shapes[group] = n
	return nil
}

// ShapeTable sets every group's shape at once, table[g] being group g's
// instance count. A negative entry leaves that group unset.
func (s *Solver) ShapeTable(table []int) error {
	for g, n := range table {
		if n < 0 {
			continue
		}
		if err := s.Shape(core.GroupIndex(g), n); err != nil {
			return err
		}
	}
	return nil
}

// Give supplies value as the value of varIdx's given instance inst. Calling
// Give on a variable that has a provider chain, or after GiveAll already
// supplied it, is an error.
func (s *Solver) Give(varIdx int, inst uint32, value []byte) error {
	x := s.g.Var(varIdx)
	if !x.Given() {
		return invalErr(fhkerr.Give, "variable is computed, not given")
	}
	vs, err := s.hostVarState(varIdx)
	if err != nil {
		return err
	}
	if vs.allGiven {
		return rewriteErr(fhkerr.Give, "GiveAll already supplied this variable", varIdx)
	}
	if int(inst) >= len(vs.hasValue) {
		return invalErr(fhkerr.Give, "instance out of range for this group's shape")
	}
	off := int(inst) * int(x.Size)
	copy(vs.buf[off:off+int(x.Size)], value)
	vs.hasValue[inst] = true
	vs.givenSet[inst] = true
	return nil
}

// GiveAll supplies data as the packed, shape-ordered values of every
// instance of varIdx in one call. It may only be called once per variable,
// and after it no per-instance Give for the same variable is permitted.
func (s *Solver) GiveAll(varIdx int, data []byte) error {
	x := s.g.Var(varIdx)
	if !x.Given() {
		return invalErr(fhkerr.Give, "variable is computed, not given")
	}
	vs, err := s.hostVarState(varIdx)
	if err != nil {
		return err
	}
	if vs.allGiven {
		return rewriteErr(fhkerr.Give, "GiveAll already called for this variable", varIdx)
	}
	for _, v := range vs.givenSet {
		if v {
			return rewriteErr(fhkerr.Give, "a per-instance Give already supplied this variable", varIdx)
		}
	}
	copy(vs.buf, data)
	for i := range vs.hasValue {
		vs.hasValue[i] = true
	}
	vs.allGiven = true
	return nil
}

// UseMem lets the host supply the backing storage for a computed
// variable's value array instead of letting the solver allocate it lazily.
// buf must be at least shape*Size bytes and must stay valid for the
// Solver's lifetime.
func (s *Solver) UseMem(varIdx int, buf []byte) error {
	x := s.g.Var(varIdx)
	if x.Given() {
		return invalErr(fhkerr.Give, "UseMem only applies to computed variables")
	}
	if _, ok := s.vars[varIdx]; ok {
		return rewriteErr(fhkerr.Give, "variable state already allocated; call UseMem before first use", varIdx)
	}
	n, ok := s.shapes[x.Group]
	if !ok {
		return shapeErr(fhkerr.INVAL, int(x.Group), "shape not set; call Shape before UseMem")
	}
	if len(buf) < n*int(x.Size) {
		return invalErr(fhkerr.Give, "UseMem buffer smaller than shape*size")
	}
	s.vars[varIdx] = newVarState(x, n, buf)
	return nil
}

// ResolveMap answers a pending MapCall/MapCallInverse yield, recording ss
// as the result for that (mapping, direction, instance) triple. Subsequent
// requests for the same triple are served from cache without another
// yield; mapping caches never expire during a Solver's lifetime.
func (s *Solver) ResolveMap(userIndex int, inst uint32, inverse bool, ss core.Subset) {
	key := mapCacheKey{userIdx: userIndex, inst: inst}
	if inverse {
		s.mapInv[key] = ss
	} else {
		s.mapFwd[key] = ss
	}
}
