package builder

import (
	"fmt"

	"github.com/katalvlaran/fhk/core"
)

// Option customizes a Builder. Unlike AddVariable/AddModel/AddParam, which
// validate host input and return sentinel errors, an Option is a
// construction knob: it may panic on a nil argument, matching the original
// builder's option-constructor convention.
type Option func(*Builder)

// WithTrace enables debug symbol tables: names passed to AddVariable and
// AddModel are attached to the emitted core.Graph via SetNames. Without it,
// names are accepted but discarded at Build, since most graphs are built
// once and solved many times and don't need the lookup tables' upkeep.
func WithTrace() Option {
	return func(b *Builder) { b.trace = true }
}

// Builder accumulates variable and model definitions and emits a packed,
// immutable core.Graph. It is not safe for concurrent use; build one graph
// per Builder, or call Reset between builds.
type Builder struct {
	vars   []defVariable
	models []defModel
	trace  bool
}

// New returns an empty Builder.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Reset discards every accumulated definition, leaving b ready to build a
// new, unrelated graph. Options passed to New are preserved.
func (b *Builder) Reset() {
	b.vars = b.vars[:0]
	b.models = b.models[:0]
}

// AddVariable registers a new variable of the given group and per-instance
// value size, returning its VarID. name is used only when WithTrace is set.
func (b *Builder) AddVariable(group core.GroupIndex, size uint32, name string) (VarID, error) {
	if group < 0 {
		return 0, fmt.Errorf("AddVariable: %w: group %d", ErrInvalidGroup, group)
	}
	if len(b.vars) >= core.MaxIndex {
		return 0, fmt.Errorf("AddVariable: %w", ErrIndexOverflow)
	}
	id := VarID(len(b.vars))
	b.vars = append(b.vars, defVariable{group: group, size: size, name: name})
	return id, nil
}

// AddModel registers a new model with affine cost coefficients K, C
// (cost(S) = K + C*S; the monotone-cost invariant requires K >= 0, C >= 1),
// returning its ModelID.
func (b *Builder) AddModel(group core.GroupIndex, k, c float32, name string) (ModelID, error) {
	if group < 0 {
		return 0, fmt.Errorf("AddModel: %w: group %d", ErrInvalidGroup, group)
	}
	if k < 0 || c < 1 {
		return 0, fmt.Errorf("AddModel: %w: K=%g C=%g", ErrInvalidCost, k, c)
	}
	if len(b.models) >= core.MaxIndex {
		return 0, fmt.Errorf("AddModel: %w", ErrIndexOverflow)
	}
	id := ModelID(len(b.models))
	b.models = append(b.models, defModel{group: group, k: k, c: c, name: name})
	return id, nil
}

func (b *Builder) model(m ModelID) (*defModel, error) {
	if m < 0 || int(m) >= len(b.models) {
		return nil, fmt.Errorf("%w: model %d", ErrUnknownModel, m)
	}
	return &b.models[m], nil
}

func (b *Builder) checkVar(v VarID) error {
	if v < 0 || int(v) >= len(b.vars) {
		return fmt.Errorf("%w: var %d", ErrUnknownVar, v)
	}
	return nil
}

// AddParam attaches variable v to model m as a parameter reached through
// mapping spec.
func (b *Builder) AddParam(m ModelID, v VarID, spec MappingSpec) error {
	if err := b.checkVar(v); err != nil {
		return fmt.Errorf("AddParam: %w", err)
	}
	dm, err := b.model(m)
	if err != nil {
		return fmt.Errorf("AddParam: %w", err)
	}
	if len(dm.params)+len(dm.checks) >= core.MaxEdgesPerModel {
		return fmt.Errorf("AddParam: %w", ErrEdgeOverflow)
	}
	dm.params = append(dm.params, defEdge{varID: v, mspec: spec})
	return nil
}

// AddReturn attaches variable v to model m as an output reached through
// mapping spec. A model may return the same variable only once.
func (b *Builder) AddReturn(m ModelID, v VarID, spec MappingSpec) error {
	if err := b.checkVar(v); err != nil {
		return fmt.Errorf("AddReturn: %w", err)
	}
	dm, err := b.model(m)
	if err != nil {
		return fmt.Errorf("AddReturn: %w", err)
	}
	for _, r := range dm.returns {
		if r.varID == v {
			return fmt.Errorf("AddReturn: %w: var %d", ErrDuplicateReturn, v)
		}
	}
	if len(dm.returns) >= core.MaxEdgesPerModel {
		return fmt.Errorf("AddReturn: %w", ErrEdgeOverflow)
	}
	dm.returns = append(dm.returns, defEdge{varID: v, mspec: spec})
	return nil
}

// AddCheck attaches a shadow (soft) constraint to model m: when the
// predicate spec.Op fails against variable v's value, the model's cost is
// penalized by spec.Penalty instead of the model being excluded outright.
func (b *Builder) AddCheck(m ModelID, v VarID, mspec MappingSpec, spec ShadowSpec) error {
	if err := b.checkVar(v); err != nil {
		return fmt.Errorf("AddCheck: %w", err)
	}
	dm, err := b.model(m)
	if err != nil {
		return fmt.Errorf("AddCheck: %w", err)
	}
	if len(dm.params)+len(dm.checks) >= core.MaxEdgesPerModel {
		return fmt.Errorf("AddCheck: %w", ErrEdgeOverflow)
	}
	dm.checks = append(dm.checks, defShadow{
		edge:  defEdge{varID: v, mspec: mspec},
		op:    spec.Op,
		arg:   spec.Arg,
		penal: spec.Penalty,
	})
	return nil
}
