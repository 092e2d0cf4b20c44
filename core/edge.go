package core

// Edge is an (index, mapping, auxiliary-byte) tuple: a reference from a
// Model to a Variable (param/return) or, read the other way, from a
// Variable to a Model (provider/consumer). Aux holds the edge's original
// pre-reorder position, used to address return buffers after reorder.go has
// partitioned a model's params/checks into computed-then-given order.
type Edge struct {
	Target NodeIndex
	Map    Mapping
	Aux    uint8
}

// ShadowOp is a wire-stable predicate opcode, evaluated against one
// variable's value.
type ShadowOp uint8

const (
	OpGEF64 ShadowOp = iota // x.f64 >= arg.f64
	OpLEF64                 // x.f64 <= arg.f64
	OpGEF32                 // x.f32 >= arg.f32
	OpLEF32                 // x.f32 <= arg.f32
	OpU8Mask64              // (1 << x.u8) & arg.u64 != 0
)

// ShadowArg is the 8-byte union backing a shadow's comparison argument.
type ShadowArg struct {
	F64 float64
	F32 float32
	U64 uint64
}

// Shadow is a soft constraint on a model: a predicate over one variable
// (given or computed) that adds Penalty to the model's cost when it fails.
// Target may name a computed variable, in which case the solver must first
// select and materialize its chain before the predicate can be tested.
type Shadow struct {
	Target  NodeIndex
	Map     Mapping
	Op      ShadowOp
	Arg     ShadowArg
	Penalty float32
}
