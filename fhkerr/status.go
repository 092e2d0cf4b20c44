package fhkerr

import "fmt"

// Code identifies the class of a terminal solver/builder/reducer failure.
type Code uint8

const (
	_ Code = iota
	// NYI marks a code path that is intentionally unimplemented, such as
	// the range-mapping kind.
	NYI
	// INVAL marks a bad argument from the host: out-of-bounds group,
	// double shape-set, giving a non-given variable, and similar misuse.
	INVAL
	// REWRITE marks an attempt to overwrite already-set immutable state: a
	// shape entry, a given value, or a given-all/given mix.
	REWRITE
	// DEPTH marks chain-solver stack overflow (the fixed 32-deep stack).
	DEPTH
	// VALUE marks a missing given value the solver needed but was never
	// supplied.
	VALUE
	// MEM marks scratch-pool exhaustion.
	MEM
	// CHAIN marks a variable with no finite-cost provider chain.
	CHAIN
)

func (c Code) String() string {
	switch c {
	case NYI:
		return "NYI"
	case INVAL:
		return "INVAL"
	case REWRITE:
		return "REWRITE"
	case DEPTH:
		return "DEPTH"
	case VALUE:
		return "VALUE"
	case MEM:
		return "MEM"
	case CHAIN:
		return "CHAIN"
	default:
		return "UNKNOWN"
	}
}

// Where names the subsystem a Status originated in.
type Where uint8

const (
	_ Where = iota
	Solver  // main chain-selection loop
	Cycle   // cycle / recursive chain solver
	Shape   // shape table access
	Give    // a given-variable write
	Mem     // external memory (scratch pool, arena)
	Map     // a mapping resolution
	Scratch // scratch buffer acquisition
	Build   // graph builder
	Reduce  // reducer
)

func (w Where) String() string {
	switch w {
	case Solver:
		return "solver"
	case Cycle:
		return "cycle"
	case Shape:
		return "shape"
	case Give:
		return "give"
	case Mem:
		return "mem"
	case Map:
		return "map"
	case Scratch:
		return "scratch"
	case Build:
		return "build"
	case Reduce:
		return "reduce"
	default:
		return "unknown"
	}
}

// Tag names what kind of entity an Info's value identifies.
type Tag uint8

const (
	TagNone Tag = iota
	TagGroup
	TagVar
	TagModel
	TagMap
	TagInstance
)

func (t Tag) String() string {
	switch t {
	case TagGroup:
		return "group"
	case TagVar:
		return "var"
	case TagModel:
		return "model"
	case TagMap:
		return "map"
	case TagInstance:
		return "instance"
	default:
		return "none"
	}
}

// Info is one (kind, value) pair identifying an offending entity.
type Info struct {
	Tag   Tag
	Value uint32
}

// Status is a terminal, unrecoverable failure. Once a Solver yields a
// Status, every subsequent Continue call re-yields the same Status.
type Status struct {
	Code  Code
	Where Where
	Info1 Info
	Info2 Info
	// Desc is a short, human-readable description of what failed; unlike
	// the original's #ifdef-gated debug symbol lookup, it always carries a
	// message since Go builds don't distinguish a debug/release ABI.
	Desc string
}

func (s Status) Error() string {
	msg := fmt.Sprintf("fhk: %s/%s: %s", s.Where, s.Code, s.Desc)
	if s.Info1.Tag != TagNone {
		msg += fmt.Sprintf(" (%s=%d)", s.Info1.Tag, s.Info1.Value)
	}
	if s.Info2.Tag != TagNone {
		msg += fmt.Sprintf(" (%s=%d)", s.Info2.Tag, s.Info2.Value)
	}
	return msg
}

// New builds a Status with no entity info.
func New(where Where, code Code, desc string) Status {
	return Status{Code: code, Where: where, Desc: desc}
}

// WithInfo1 returns a copy of s carrying one entity identifier.
func (s Status) WithInfo1(tag Tag, value uint32) Status {
	s.Info1 = Info{Tag: tag, Value: value}
	return s
}

// WithInfo2 returns a copy of s carrying a second entity identifier.
func (s Status) WithInfo2(tag Tag, value uint32) Status {
	s.Info2 = Info{Tag: tag, Value: value}
	return s
}
