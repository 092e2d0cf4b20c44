package solver_test

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/katalvlaran/fhk/builder"
	"github.com/katalvlaran/fhk/core"
	"github.com/katalvlaran/fhk/solver"
)

// ExampleSolver builds a one-model graph (y = 2*a), drives the solver
// through every suspension class it can reach for this graph (Shape,
// GivenValue, ModelCall), and prints the resolved value.
func ExampleSolver() {
	b := builder.New()
	a, _ := b.AddVariable(0, 8, "a")
	y, _ := b.AddVariable(0, 8, "y")
	m, _ := b.AddModel(0, 1, 2, "double")
	_ = b.AddParam(m, a, builder.IdentMap())
	_ = b.AddReturn(m, y, builder.IdentMap())
	g, err := b.Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	buf := make([]byte, 8)
	s := solver.New(g, []solver.Request{{Var: int(y), Subset: core.NewSingleton(0), Buf: buf}})

	for {
		yv := s.Continue()
		switch yv.Kind {
		case solver.OK:
			bits := binary.LittleEndian.Uint64(buf)
			fmt.Println(math.Float64frombits(bits))
			return
		case solver.Shape:
			_ = s.Shape(yv.Shape, 1)
		case solver.GivenValue:
			val := make([]byte, 8)
			binary.LittleEndian.PutUint64(val, math.Float64bits(2.0))
			_ = s.Give(yv.Given.VarIndex, yv.Given.Instance, val)
		case solver.ModelCall:
			aVal := math.Float64frombits(binary.LittleEndian.Uint64(yv.Model.Params[0].Buf))
			binary.LittleEndian.PutUint64(yv.Model.Returns[0].Buf, math.Float64bits(2*aVal))
		case solver.Err:
			fmt.Println("solve error:", yv.Err)
			return
		}
	}
	// Output:
	// 4
}
