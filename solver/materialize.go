package solver

import (
	"encoding/binary"
	"math"

	"github.com/katalvlaran/fhk/core"
)

// getGivenValue returns given variable xi's instance inst, yielding a
// GivenValue request if the host has not supplied it yet. Materialization
// proper only concerns computed variables, but a computed model's parameter
// may itself bottom out in a given one, so both paths share this helper.
func (s *Solver) getGivenValue(xi int, inst uint32) ([]byte, error) {
	vs, err := s.ensureVarState(xi)
	if err != nil {
		return nil, err
	}
	x := s.g.Var(xi)
	if !vs.hasValue[inst] {
		s.yield(Yield{Kind: GivenValue, Given: GivenInfo{VarIndex: xi, Instance: inst}})
	}
	if !vs.hasValue[inst] {
		return nil, valueErr(xi, inst)
	}
	off := int(inst) * int(x.Size)
	return vs.buf[off : off+int(x.Size)], nil
}

// valueOf materializes variable xi's instance inst and returns its value
// bytes: a given variable resolves through
// getGivenValue; a computed one first ensures a chain is selected, then
// calls its provider model (once per model instance, however many variable
// instances share it) and copies the relevant slice out of the model's
// return buffer into the variable's own value slot.
func (s *Solver) valueOf(xi int, inst uint32, depth int) ([]byte, error) {
	x := s.g.Var(xi)
	if x.Given() {
		return s.getGivenValue(xi, inst)
	}

	vs, err := s.ensureVarState(xi)
	if err != nil {
		return nil, err
	}
	off := int(inst) * int(x.Size)
	if vs.hasValue[inst] {
		return vs.buf[off : off+int(x.Size)], nil
	}

	if vs.chainIdx[inst] < 0 {
		if _, overflow, cerr := s.selectChain(xi, inst, depth); cerr != nil {
			return nil, cerr
		} else if overflow {
			return nil, chainErr(xi, inst)
		}
	}

	e := x.Providers[vs.chainIdx[inst]]
	mi := e.Target.ModelIndex()
	minst := vs.chainM[inst]

	if err := s.callModel(mi, minst, depth); err != nil {
		return nil, err
	}

	if !vs.hasValue[inst] {
		if err := s.copyReturn(xi, inst, mi, minst, e.Aux, depth); err != nil {
			return nil, err
		}
		vs.hasValue[inst] = true
	}
	return vs.buf[off : off+int(x.Size)], nil
}

// copyReturn copies model mi's instance minst's return-edge reti result for
// variable instance inst into xi's value slot, addressing the return buffer
// at the consumer's position in the return subset. Only reached on the
// non-norf path: callModel already wrote norf results straight into the
// consumer's slot.
func (s *Solver) copyReturn(xi int, inst uint32, mi int, minst uint32, reti uint8, depth int) error {
	m := s.g.ModelAt(mi)
	ms, err := s.ensureModelState(mi)
	if err != nil {
		return err
	}
	ss, err := s.resolveForwardSubset(m.Returns[reti].Map, minst)
	if err != nil {
		return err
	}
	pos := core.IndexOf(ss, s.Table(), inst)

	x := s.g.Var(xi)
	size := int(x.Size)
	src := ms.returns[minst][reti]
	off := int(inst) * size

	vs, err := s.ensureVarState(xi)
	if err != nil {
		return err
	}
	copy(vs.buf[off:off+size], src[pos*size:(pos+1)*size])
	return nil
}

// callModel runs model mi's instance minst exactly once: it gathers every
// parameter and check subset (materializing each member instance first via
// valueOf/getGivenValue), allocates return storage (or, for a NoReturnBuffer
// model, points the single return directly at its consumer's value slot),
// and yields ModelCall so the host can fill the returns in.
func (s *Solver) callModel(mi int, minst uint32, depth int) error {
	ms, err := s.ensureModelState(mi)
	if err != nil {
		return err
	}
	if ms.called[minst] {
		return nil
	}
	if depth >= maxChainDepth {
		return depthErrModel(mi, minst)
	}

	m := s.g.ModelAt(mi)
	var slots []int
	releaseAll := func() {
		for _, slot := range slots {
			s.scratch.Release(slot)
		}
	}

	params := make([]Arg, len(m.Params))
	for pi, e := range m.Params {
		arg, slot, gerr := s.gather(e.Target.VarIndex(), e.Map, minst, depth)
		if gerr != nil {
			releaseAll()
			return gerr
		}
		if slot >= 0 {
			slots = append(slots, slot)
		}
		params[pi] = arg
	}

	checks := make([]Arg, len(m.Checks))
	for ci, c := range m.Checks {
		arg, slot, gerr := s.gather(c.Target.VarIndex(), c.Map, minst, depth)
		if gerr != nil {
			releaseAll()
			return gerr
		}
		if slot >= 0 {
			slots = append(slots, slot)
		}
		checks[ci] = arg
	}

	returns := make([]Arg, len(m.Returns))
	if m.NoReturnBuffer {
		xi := m.Returns[0].Target.VarIndex()
		vs, verr := s.ensureVarState(xi)
		if verr != nil {
			releaseAll()
			return verr
		}
		x := s.g.Var(xi)
		off := int(minst) * int(x.Size)
		returns[0] = Arg{Buf: vs.buf[off : off+int(x.Size)], Count: 1}
	} else {
		if ms.returns[minst] == nil {
			ms.returns[minst] = make([][]byte, len(m.Returns))
		}
		for ri, e := range m.Returns {
			ss, serr := s.resolveForwardSubset(e.Map, minst)
			if serr != nil {
				releaseAll()
				return serr
			}
			xi := e.Target.VarIndex()
			size := int(s.g.Var(xi).Size)
			n := core.Size(ss, s.Table())
			buf := make([]byte, n*size)
			ms.returns[minst][ri] = buf
			returns[ri] = Arg{Buf: buf, Count: n}
		}
	}

	s.yield(Yield{Kind: ModelCall, Model: ModelCallInfo{
		ModelIndex: int(core.ModelRef(mi)),
		Instance:   minst,
		Params:     params,
		Checks:     checks,
		Returns:    returns,
	}})
	releaseAll()

	ms.called[minst] = true
	if m.NoReturnBuffer {
		xi := m.Returns[0].Target.VarIndex()
		s.vars[xi].hasValue[minst] = true
	}
	return nil
}

// gather materializes every instance a model edge's mapping reaches from
// minst and returns them as one instance-major Arg. A subset that maps to a
// single contiguous, already-materialized range is returned as a direct
// slice of the variable's own value buffer (slot -1, nothing to release); a
// complex (multi-range) subset is copied into a scratch buffer from the
// arena pool, whose slot the caller must release once the host has read it.
func (s *Solver) gather(xi int, m core.Mapping, minst uint32, depth int) (arg Arg, slot int, err error) {
	ss, err := s.resolveForwardSubset(m, minst)
	if err != nil {
		return Arg{}, -1, err
	}
	x := s.g.Var(xi)
	size := int(x.Size)
	n := core.Size(ss, s.Table())
	if n == 0 {
		return Arg{Count: 0}, -1, nil
	}

	vs, err := s.ensureVarState(xi)
	if err != nil {
		return Arg{}, -1, err
	}

	first := -1
	var matErr error
	core.Each(ss, s.Table(), func(inst uint32) bool {
		if first < 0 {
			first = int(inst)
		}
		if _, verr := s.valueOf(xi, inst, depth+1); verr != nil {
			matErr = verr
			return false
		}
		return true
	})
	if matErr != nil {
		return Arg{}, -1, matErr
	}

	if !ss.IsComplex() {
		off := first * size
		return Arg{Buf: vs.buf[off : off+n*size], Count: n}, -1, nil
	}

	buf, sl, ok := s.scratch.Acquire(n * size)
	if !ok {
		return Arg{}, -1, memErr("scratch pool exhausted gathering a complex subset")
	}
	j := 0
	core.Each(ss, s.Table(), func(inst uint32) bool {
		off := int(inst) * size
		copy(buf[j*size:(j+1)*size], vs.buf[off:off+size])
		j++
		return true
	})
	return Arg{Buf: buf[:n*size], Count: n}, sl, nil
}

// testPredicate evaluates a shadow check's predicate against a raw value
// slice, per the wire-stable opcode values.
func testPredicate(op core.ShadowOp, arg core.ShadowArg, val []byte) bool {
	switch op {
	case core.OpGEF64:
		return f64(val) >= arg.F64
	case core.OpLEF64:
		return f64(val) <= arg.F64
	case core.OpGEF32:
		return f32(val) >= arg.F32
	case core.OpLEF32:
		return f32(val) <= arg.F32
	case core.OpU8Mask64:
		if len(val) == 0 {
			return false
		}
		return arg.U64&(uint64(1)<<val[0]) != 0
	default:
		return false
	}
}

func f64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func f32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
