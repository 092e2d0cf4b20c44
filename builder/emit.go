package builder

import (
	"fmt"

	"github.com/katalvlaran/fhk/core"
)

// Build validates every accumulated definition, interns user mappings,
// partitions each model's params and checks into computed-then-given order,
// and emits an immutable core.Graph. b is left usable for further Add* calls
// afterward (Build does not consume the accumulator).
func (b *Builder) Build() (*core.Graph, error) {
	numGroups := 0
	for _, v := range b.vars {
		if int(v.group)+1 > numGroups {
			numGroups = int(v.group) + 1
		}
	}
	for _, m := range b.models {
		if int(m.group)+1 > numGroups {
			numGroups = int(m.group) + 1
		}
	}

	it := newInterner()

	variables := make([]core.Variable, len(b.vars))
	for i, dv := range b.vars {
		variables[i] = core.Variable{Group: dv.group, Size: dv.size}
	}

	models := make([]core.Model, len(b.models))
	for mi, dm := range b.models {
		params := make([]core.Edge, len(dm.params))
		for i, de := range dm.params {
			m, err := resolveMapping(dm.group, b.vars[de.varID].group, de.mspec, it)
			if err != nil {
				return nil, fmt.Errorf("Build: model %d param %d: %w", mi, i, err)
			}
			params[i] = core.Edge{Target: core.VarRef(int(de.varID)), Map: m, Aux: uint8(i)}
		}

		checks := make([]core.Shadow, len(dm.checks))
		for i, dc := range dm.checks {
			m, err := resolveMapping(dm.group, b.vars[dc.edge.varID].group, dc.edge.mspec, it)
			if err != nil {
				return nil, fmt.Errorf("Build: model %d check %d: %w", mi, i, err)
			}
			checks[i] = core.Shadow{
				Target:  core.VarRef(int(dc.edge.varID)),
				Map:     m,
				Op:      dc.op,
				Arg:     dc.arg,
				Penalty: dc.penal,
			}
		}

		returns := make([]core.Edge, len(dm.returns))
		for i, de := range dm.returns {
			m, err := resolveMapping(dm.group, b.vars[de.varID].group, de.mspec, it)
			if err != nil {
				return nil, fmt.Errorf("Build: model %d return %d: %w", mi, i, err)
			}
			returns[i] = core.Edge{Target: core.VarRef(int(de.varID)), Map: m, Aux: uint8(i)}
		}

		models[mi] = core.Model{
			Group:          dm.group,
			K:              dm.k,
			C:              dm.c,
			Ki:             -dm.k / dm.c,
			Ci:             1 / dm.c,
			Params:         params,
			Returns:        returns,
			Checks:         checks,
			NoReturnBuffer: len(dm.returns) == 1 && dm.returns[0].mspec.kind == core.MapIdent,
		}
	}

	// Structural given-ness at build time: a variable with no accumulated
	// return-providers. Partition each model's params/checks against it;
	// reduce.Reduce re-partitions after pruning, since reduction can flip a
	// variable's given status for one request.
	givenVar := func(xi int) bool { return len(variables[xi].Providers) == 0 }

	// First pass: wire return edges into providers so givenVar reflects the
	// final structure before any reordering happens.
	for mi, dm := range b.models {
		for i, de := range dm.returns {
			xi := int(de.varID)
			if len(variables[xi].Providers) >= core.MaxBackwardEdges {
				return nil, fmt.Errorf("Build: var %d: %w", xi, ErrEdgeOverflow)
			}
			variables[xi].Providers = append(variables[xi].Providers, core.Edge{
				Target: core.ModelRef(mi),
				Map:    models[mi].Returns[i].Map,
				Aux:    uint8(i),
			})
		}
	}

	for mi := range models {
		params, pBoundary := core.PartitionEdges(models[mi].Params, givenVar)
		models[mi].Params = params
		models[mi].PComputedParam = pBoundary

		checks, cBoundary := core.PartitionShadows(models[mi].Checks, givenVar)
		models[mi].Checks = checks
		models[mi].PComputedCheck = cBoundary

		for i, e := range models[mi].Params {
			xi := e.Target.VarIndex()
			if len(variables[xi].Consumers) >= core.MaxForwardEdges {
				return nil, fmt.Errorf("Build: var %d: %w", xi, ErrEdgeOverflow)
			}
			variables[xi].Consumers = append(variables[xi].Consumers, core.Edge{
				Target: core.ModelRef(mi),
				Map:    e.Map,
				Aux:    uint8(i),
			})
		}
	}

	g := &core.Graph{
		Variables:    variables,
		Models:       models,
		NumGroups:    numGroups,
		UserMappings: it.table,
	}
	if b.trace {
		vnames := make([]string, len(b.vars))
		for i, dv := range b.vars {
			vnames[i] = dv.name
		}
		mnames := make([]string, len(b.models))
		for i, dm := range b.models {
			mnames[i] = dm.name
		}
		g.SetNames(vnames, mnames)
	}
	return g, nil
}
