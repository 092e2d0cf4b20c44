// Package fhk is a cost-minimizing constraint-graph solver: given a
// bipartite graph of variables and models, where each model computes one
// or more variables from parameters (subject to soft shadow constraints),
// fhk resolves a requested set of variable instances by selecting, per
// instance, the minimum-cost provider chain and driving its evaluation.
//
// The solver supports grouped (batched) instances, user-defined index
// mappings between groups, cyclic dependencies, lazy value materialization,
// and cooperative suspension whenever an external value, shape, mapping, or
// model call is needed from the host.
//
// Four packages implement it, leaf-first:
//
//	core/    — the immutable post-build graph: variables, models, edges,
//	           mappings, cost coefficients, the packed Subset encoding.
//	builder/ — accumulates a mutable graph definition and emits a packed
//	           core.Graph with reordered edges.
//	reduce/  — given root variables and a given-set, computes cost bounds
//	           and prunes the graph to what a request can actually reach.
//	solver/  — per-request chain selection and value materialization; the
//	           host drives it through Solver.Continue, answering Shape,
//	           Give, ResolveMap and ModelCall requests as they arrive.
//
// fhkerr carries the shared error vocabulary reduce and solver return
// through (builder uses its own sentinel errors); internal/arena backs the
// solver's scratch-buffer pool.
//
// A minimal build-solve round trip (see solver's ExampleSolver for the full
// listing, host callbacks included):
//
//	b := builder.New()
//	a, _ := b.AddVariable(0, 8, "a")
//	y, _ := b.AddVariable(0, 8, "y")
//	m, _ := b.AddModel(0, 1, 2, "double")
//	_ = b.AddParam(m, a, builder.IdentMap())
//	_ = b.AddReturn(m, y, builder.IdentMap())
//	g, _ := b.Build()
//
//	s := solver.New(g, []solver.Request{{Var: int(y), Subset: core.NewSingleton(0), Buf: buf}})
//	for {
//		switch yv := s.Continue(); yv.Kind {
//		case solver.OK:
//			return
//		case solver.Shape:
//			_ = s.Shape(yv.Shape, 1)
//		case solver.GivenValue:
//			_ = s.Give(yv.Given.VarIndex, yv.Given.Instance, encodeF64(2.0))
//		case solver.ModelCall:
//			runModel(yv.Model)
//		case solver.Err:
//			log.Fatal(yv.Err)
//		}
//	}
package fhk
