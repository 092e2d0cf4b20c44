package solver

import (
	"fmt"

	"github.com/katalvlaran/fhk/fhkerr"
)

func depthErr(varIdx int, inst uint32) error {
	return fhkerr.New(fhkerr.Solver, fhkerr.DEPTH, "chain selection exceeded the 32-deep search stack").
		WithInfo1(fhkerr.TagVar, uint32(varIdx)).
		WithInfo2(fhkerr.TagInstance, inst)
}

func depthErrModel(modelIdx int, inst uint32) error {
	return fhkerr.New(fhkerr.Solver, fhkerr.DEPTH, "chain selection exceeded the 32-deep search stack").
		WithInfo1(fhkerr.TagModel, uint32(modelIdx)).
		WithInfo2(fhkerr.TagInstance, inst)
}

func chainErr(varIdx int, inst uint32) error {
	return fhkerr.New(fhkerr.Solver, fhkerr.CHAIN, "no finite-cost provider chain").
		WithInfo1(fhkerr.TagVar, uint32(varIdx)).
		WithInfo2(fhkerr.TagInstance, inst)
}

func valueErr(varIdx int, inst uint32) error {
	return fhkerr.New(fhkerr.Give, fhkerr.VALUE, "given variable instance was never supplied").
		WithInfo1(fhkerr.TagVar, uint32(varIdx)).
		WithInfo2(fhkerr.TagInstance, inst)
}

func shapeErr(code fhkerr.Code, group int, reason string) error {
	return fhkerr.New(fhkerr.Shape, code, reason).
		WithInfo1(fhkerr.TagGroup, uint32(group))
}

func invalErr(where fhkerr.Where, reason string) error {
	return fhkerr.New(where, fhkerr.INVAL, reason)
}

func rewriteErr(where fhkerr.Where, reason string, varIdx int) error {
	return fhkerr.New(where, fhkerr.REWRITE, reason).WithInfo1(fhkerr.TagVar, uint32(varIdx))
}

func memErr(reason string) error {
	return fhkerr.New(fhkerr.Scratch, fhkerr.MEM, reason)
}

func invalidMapKind(kind int) error {
	return fhkerr.New(fhkerr.Map, fhkerr.NYI, fmt.Sprintf("unsupported mapping kind %d", kind))
}
